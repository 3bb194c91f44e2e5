package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sgdraw/pkg/graphio"
)

// visualizeCommand creates the visualize command for rendering a
// previously computed layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		graphPath string
		p         renderParams
	)

	cmd := &cobra.Command{
		Use:   "visualize [graph.layout.json]",
		Short: "Render a previously computed layout",
		Long: `Render a previously computed layout.

The visualize command takes a layout document (produced by 'layout') and
draws it without re-running the optimization. A layout document stores
positions but not edges, so the original graph file is read alongside
it. By default it is inferred by stripping the .layout suffix from the
input; use --graph when the files do not sit next to each other.

Use 'render' as a shortcut to go directly from graph to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(args[0], graphPath, p)
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "graph file the layout was computed from")
	cmd.Flags().StringVarP(&p.output, "output", "o", "", "output base path (default: layout file without extensions)")
	cmd.Flags().StringVarP(&p.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&p.engine, "engine", engineHand, "render engine: hand (default) or graphviz")
	cmd.Flags().BoolVar(&p.labels, "labels", false, "draw node labels (hand engine)")
	cmd.Flags().IntVar(&p.width, "width", 0, "canvas width in pixels (hand engine)")
	cmd.Flags().IntVar(&p.height, "height", 0, "canvas height in pixels (hand engine)")
	cmd.Flags().Float64Var(&p.scale, "scale", 1.0, "raster scale factor for png output")

	return cmd
}

// runVisualize loads the layout and its graph and renders the artifacts.
func (c *CLI) runVisualize(layoutFile, graphPath string, p renderParams) error {
	formats := parseFormats(p.formats)
	if err := validateFormats(formats); err != nil {
		return err
	}
	if err := validateEngine(p.engine); err != nil {
		return err
	}

	doc, err := graphio.ReadLayoutFile(layoutFile)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", layoutFile, err)
	}

	if graphPath == "" {
		graphPath, err = inferGraphPath(layoutFile)
		if err != nil {
			return err
		}
	}
	g, err := graphio.ImportFile(graphPath)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", graphPath, err)
	}

	c.Logger.Debug("visualizing layout",
		"geometry", doc.Geometry, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	artifacts, err := renderArtifacts(g, doc, formats, p)
	if err != nil {
		printError("Visualization failed")
		return err
	}

	base := visualizeBase(p.output, layoutFile)

	printSuccess("Rendered %d node graph", g.NodeCount())
	for _, a := range artifacts {
		path := base + "." + a.format
		if err := os.WriteFile(path, a.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	return nil
}

// visualizeBase derives the artifact base path, stripping the layout
// extensions so artifacts land next to the original graph file.
func visualizeBase(output, layoutFile string) string {
	if output != "" {
		return basePath(output, layoutFile)
	}
	base := strings.TrimSuffix(layoutFile, filepath.Ext(layoutFile))
	return strings.TrimSuffix(base, ".layout")
}

// inferGraphPath locates the graph file a layout document was computed
// from, assuming it sits next to the layout with the same base name.
func inferGraphPath(layoutFile string) (string, error) {
	base := strings.TrimSuffix(layoutFile, filepath.Ext(layoutFile))
	base = strings.TrimSuffix(base, ".layout")
	for _, ext := range []string{".json", ".dot"} {
		candidate := base + ext
		if candidate == layoutFile {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("cannot infer graph file for %s (pass --graph)", layoutFile)
}
