// Package cli implements the sgdraw command-line interface.
//
// This package provides commands for computing graph layouts, rendering
// them as images, scoring layout quality, serving the HTTP API, and
// managing the local result cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute node positions and write a layout document
//   - render: Compute a layout and render it in one step
//   - visualize: Render a previously computed layout document
//   - stress: Score a layout's quality metrics
//   - serve: Run the HTTP API server
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on the CLI struct and is shared by every command.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sgdraw/pkg/buildinfo"
	"github.com/matzehuels/sgdraw/pkg/cache"
	"github.com/matzehuels/sgdraw/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sgdraw"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config file location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sgdraw lays out graphs by stochastic gradient descent",
		Long:         `Sgdraw computes graph layouts by stress minimization: node pairs pull toward their graph-theoretic distances under an annealing schedule, on Euclidean, hyperbolic, spherical, or toroidal surfaces.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+defaultConfigHint+")")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.stressCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cc CacheConfig) (*pipeline.Runner, error) {
	store, err := newCache(cc)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache builds the local result cache. Caching quietly degrades to a
// no-op when no cache directory can be resolved.
func newCache(cc CacheConfig) (cache.Cache, error) {
	if cc.Disabled {
		return cache.NewNullCache(), nil
	}
	dir := cc.Dir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// bindLayoutFlags registers the pipeline option flags shared by the
// layout-computing commands. Zero values defer to the pipeline defaults.
func bindLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Geometry, "geometry", "g", opts.Geometry, "geometry: euclidean2d (default), euclidean, hyperbolic2d, spherical2d, torus2d")
	cmd.Flags().IntVar(&opts.Dimension, "dimension", opts.Dimension, "dimensions for the euclidean geometry")
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy, "pair strategy: sparse (default), full, full-adjusted, sparse-adjusted, omega")
	cmd.Flags().IntVar(&opts.Pivots, "pivots", opts.Pivots, "pivot count for the sparse strategies")
	cmd.Flags().IntVar(&opts.OmegaK, "omega-k", opts.OmegaK, "random pairs per node for the omega strategy")
	cmd.Flags().Float64Var(&opts.OmegaMinDist, "omega-min-dist", opts.OmegaMinDist, "minimum target distance for omega random pairs")
	cmd.Flags().Float64Var(&opts.Alpha, "alpha", opts.Alpha, "blend exponent for the adjusted strategies")
	cmd.Flags().Float64Var(&opts.MinimumDistance, "min-distance", opts.MinimumDistance, "distance floor for adjusted targets")
	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", opts.Iterations, "annealing iterations")
	cmd.Flags().Float64Var(&opts.Epsilon, "epsilon", opts.Epsilon, "learning-rate floor of the schedule")
	cmd.Flags().StringVar(&opts.Scheduler, "scheduler", opts.Scheduler, "annealing schedule: exponential (default), constant, linear, quadratic, reciprocal")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().BoolVar(&opts.RandomPlacement, "random-placement", opts.RandomPlacement, "sample the initial placement from the seed")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}
