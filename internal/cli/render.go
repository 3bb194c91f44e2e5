package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
	"github.com/matzehuels/sgdraw/pkg/pipeline"
	"github.com/matzehuels/sgdraw/pkg/render"
)

// =============================================================================
// Formats and Engines
// =============================================================================

// renderFormats are the artifact formats the render command can produce.
var renderFormats = map[string]bool{
	"svg": true,
	"png": true,
	"pdf": true,
	"dot": true,
}

const (
	engineHand     = "hand"
	engineGraphviz = "graphviz"
)

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !renderFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'pdf', or 'dot')", f)
		}
	}
	return nil
}

func validateEngine(engine string) error {
	if engine != engineHand && engine != engineGraphviz {
		return fmt.Errorf("invalid engine: %s (must be 'hand' or 'graphviz')", engine)
	}
	return nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output carries a format extension it is stripped, so multiple formats
// land next to each other.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if renderFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Command
// =============================================================================

// renderParams carries the render command flags.
type renderParams struct {
	output  string
	formats string
	engine  string
	labels  bool
	width   int
	height  int
	scale   float64
	noCache bool
}

// renderCommand creates the render command, which computes a layout and
// renders it in a single step.
func (c *CLI) renderCommand() *cobra.Command {
	var p renderParams
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json|graph.dot]",
		Short: "Compute a layout and render it in one step",
		Long: `Compute a layout and render it in one step.

The render command runs the full pipeline on a graph file and writes the
requested artifacts next to the input. The hand engine draws the layout
directly, including the boundary circle for hyperbolic layouts and
wrapped edges for toroidal ones. The graphviz engine exports pinned
positions as DOT and renders through neato.

PNG and PDF output converts through rsvg-convert, which must be on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyLayoutConfig(cfg.Layout, &opts)
			cc := cfg.Cache
			if p.noCache {
				cc.Disabled = true
			}
			opts.InputPath = args[0]
			return c.runRender(cmd.Context(), opts, p, cc)
		},
	}

	cmd.Flags().StringVarP(&p.output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&p.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&p.engine, "engine", engineHand, "render engine: hand (default) or graphviz")
	cmd.Flags().BoolVar(&p.labels, "labels", false, "draw node labels (hand engine)")
	cmd.Flags().IntVar(&p.width, "width", 0, "canvas width in pixels (hand engine)")
	cmd.Flags().IntVar(&p.height, "height", 0, "canvas height in pixels (hand engine)")
	cmd.Flags().Float64Var(&p.scale, "scale", 1.0, "raster scale factor for png output")
	cmd.Flags().BoolVar(&p.noCache, "no-cache", false, "disable caching")
	bindLayoutFlags(cmd, &opts)

	return cmd
}

// runRender runs the pipeline and writes the rendered artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, p renderParams, cc CacheConfig) error {
	formats := parseFormats(p.formats)
	if err := validateFormats(formats); err != nil {
		return err
	}
	if err := validateEngine(p.engine); err != nil {
		return err
	}

	runner, err := c.newRunner(cc)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	res, err := runner.Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}

	spinner.SetMessage("Rendering...")
	artifacts, err := renderArtifacts(res.Graph, res.Layout, formats, p)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(p.output, opts.InputPath)

	printSuccess("Rendered %d node graph", res.Stats.NodeCount)
	for _, a := range artifacts {
		path := base + "." + a.format
		if err := os.WriteFile(path, a.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.PairCount, res.CacheInfo.LayoutHit)

	return nil
}

// =============================================================================
// Artifact Rendering
// =============================================================================

type artifact struct {
	format string
	data   []byte
}

// renderArtifacts produces one artifact per requested format. SVG is
// rendered once and reused for the raster conversions.
func renderArtifacts(g *graph.Graph, doc graphio.LayoutDoc, formats []string, p renderParams) ([]artifact, error) {
	needSVG := false
	for _, f := range formats {
		if f != "dot" {
			needSVG = true
		}
	}

	var svg []byte
	if needSVG {
		var err error
		svg, err = renderSVG(g, doc, p)
		if err != nil {
			return nil, err
		}
	}

	out := make([]artifact, 0, len(formats))
	for _, f := range formats {
		switch f {
		case "svg":
			out = append(out, artifact{f, svg})
		case "png":
			data, err := render.ToPNG(svg, p.scale)
			if err != nil {
				return nil, fmt.Errorf("convert png: %w", err)
			}
			out = append(out, artifact{f, data})
		case "pdf":
			data, err := render.ToPDF(svg)
			if err != nil {
				return nil, fmt.Errorf("convert pdf: %w", err)
			}
			out = append(out, artifact{f, data})
		case "dot":
			dot, err := render.ToDOT(g, doc)
			if err != nil {
				return nil, fmt.Errorf("export dot: %w", err)
			}
			out = append(out, artifact{f, []byte(dot)})
		}
	}
	return out, nil
}

func renderSVG(g *graph.Graph, doc graphio.LayoutDoc, p renderParams) ([]byte, error) {
	switch p.engine {
	case engineGraphviz:
		dot, err := render.ToDOT(g, doc)
		if err != nil {
			return nil, fmt.Errorf("export dot: %w", err)
		}
		svg, err := render.RenderSVG(dot)
		if err != nil {
			return nil, fmt.Errorf("render dot: %w", err)
		}
		return svg, nil
	default:
		svg, err := render.SVG(g, doc, buildRenderOptions(p)...)
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return svg, nil
	}
}

func buildRenderOptions(p renderParams) []render.Option {
	var ro []render.Option
	if p.width > 0 || p.height > 0 {
		w, h := p.width, p.height
		if w <= 0 {
			w = render.DefaultWidth
		}
		if h <= 0 {
			h = render.DefaultHeight
		}
		ro = append(ro, render.WithSize(w, h))
	}
	if p.labels {
		ro = append(ro, render.WithLabels())
	}
	return ro
}
