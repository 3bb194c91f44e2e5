package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sgdraw/pkg/graphio"
	"github.com/matzehuels/sgdraw/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		watch   bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.dot]",
		Short: "Compute a layout from a graph file",
		Long: `Compute a layout from a graph file.

The layout command reads a node-link graph (JSON or Graphviz DOT), runs
stress-minimizing gradient descent over the chosen geometry, and writes a
layout document with one position per node. The output can be rendered
with 'visualize' or scored with 'stress'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyLayoutConfig(cfg.Layout, &opts)
			cc := cfg.Cache
			if noCache {
				cc.Disabled = true
			}
			opts.InputPath = args[0]
			return c.runLayout(cmd.Context(), opts, output, cc, watch)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&watch, "watch", false, "show live optimization progress")
	bindLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout runs the pipeline and writes the layout document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, cc CacheConfig, watch bool) error {
	runner, err := c.newRunner(cc)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	var res *pipeline.Result
	if watch {
		res, err = runWithProgress(ctx, runner, opts)
		if err != nil {
			return fmt.Errorf("compute layout: %w", err)
		}
	} else {
		spinner := newSpinnerWithContext(ctx, "Computing layout...")
		spinner.Start()
		res, err = runner.Run(ctx, opts)
		if err != nil {
			spinner.StopWithError("Layout failed")
			return fmt.Errorf("compute layout: %w", err)
		}
		spinner.Stop()
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(opts.InputPath)
	}
	if err := graphio.WriteLayoutFile(res.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete (stress %.4g, %s)",
		res.Stats.Stress, res.Stats.LayoutTime.Round(time.Millisecond))
	printFile(outputPath)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.PairCount, res.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// layoutPath derives the layout output path from the input file.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
