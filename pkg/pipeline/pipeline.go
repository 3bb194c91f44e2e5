// Package pipeline runs the full graph-to-layout pipeline.
//
// This package implements the complete parse → pairs → layout flow that
// the CLI and the HTTP API share. By centralizing this logic, both entry
// points validate the same options, hit the same caches, and produce the
// same layout documents.
//
// # Architecture
//
// A run consists of three stages:
//
//  1. Parse: read the graph from JSON or DOT input
//  2. Pairs: generate the node pairs the optimizer descends over
//  3. Layout: place the nodes in the chosen geometry and run the
//     learning-rate schedule
//
// Pair sets and finished layouts are cached under content-hash keys, so
// repeating a run with equal options is a cache read.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    InputPath: "graph.json",
//	    Geometry:  "euclidean2d",
//	    Strategy:  "sparse",
//	}
//	result, err := runner.Run(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := result.Layout
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sgdraw/pkg/cache"
	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
	"github.com/matzehuels/sgdraw/pkg/layout/sgd"
	"github.com/matzehuels/sgdraw/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultIterations is the default schedule length.
	DefaultIterations = 100

	// DefaultPivots is the default pivot count for the sparse strategies.
	// Runs on graphs with fewer nodes clamp it to the node count.
	DefaultPivots = 50

	// DefaultDimension is the default coordinate width for n-dimensional
	// Euclidean layouts.
	DefaultDimension = 3

	// DefaultAlpha is the default blend factor for the distance-adjusted
	// strategies.
	DefaultAlpha = 0.5

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// DefaultGeometry is the default layout geometry.
const DefaultGeometry = GeometryEuclidean2D

// DefaultStrategy is the default pair-generation strategy.
const DefaultStrategy = StrategySparse

// DefaultScheduler is the default learning-rate decay family.
const DefaultScheduler = SchedulerExponential

// Format constants for graph input formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Geometry constants for the supported layout spaces.
const (
	GeometryEuclidean2D  = "euclidean2d"
	GeometryEuclidean    = "euclidean"
	GeometryHyperbolic2D = "hyperbolic2d"
	GeometrySpherical2D  = "spherical2d"
	GeometryTorus2D      = "torus2d"
)

// Strategy constants for the supported pair generators.
const (
	StrategyFull           = "full"
	StrategySparse         = "sparse"
	StrategyFullAdjusted   = "full-adjusted"
	StrategySparseAdjusted = "sparse-adjusted"
	StrategyOmega          = "omega"
)

// Scheduler constants for the supported decay families.
const (
	SchedulerConstant    = "constant"
	SchedulerLinear      = "linear"
	SchedulerQuadratic   = "quadratic"
	SchedulerExponential = "exponential"
	SchedulerReciprocal  = "reciprocal"
)

// ValidFormats is the set of supported input formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidGeometries is the set of supported layout geometries.
var ValidGeometries = map[string]bool{
	GeometryEuclidean2D:  true,
	GeometryEuclidean:    true,
	GeometryHyperbolic2D: true,
	GeometrySpherical2D:  true,
	GeometryTorus2D:      true,
}

// ValidStrategies is the set of supported pair-generation strategies.
var ValidStrategies = map[string]bool{
	StrategyFull:           true,
	StrategySparse:         true,
	StrategyFullAdjusted:   true,
	StrategySparseAdjusted: true,
	StrategyOmega:          true,
}

// ValidSchedulers is the set of supported decay families.
var ValidSchedulers = map[string]bool{
	SchedulerConstant:    true,
	SchedulerLinear:      true,
	SchedulerQuadratic:   true,
	SchedulerExponential: true,
	SchedulerReciprocal:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Reader takes precedence over InputPath; a reader
	// needs an explicit Format, a path can rely on its extension.
	InputPath string    `json:"input_path,omitempty"`
	Reader    io.Reader `json:"-"`
	Format    string    `json:"format,omitempty"`

	// Geometry options. Dimension applies to the n-dimensional
	// "euclidean" geometry only; the 2D geometries are fixed-width.
	Geometry  string `json:"geometry,omitempty"`
	Dimension int    `json:"dimension,omitempty"`

	// Pair-generation options. Pivots binds the sparse strategies,
	// OmegaK/OmegaMinDist the omega strategy, Alpha/MinimumDistance the
	// adjusted strategies (Alpha 0 selects the default blend).
	Strategy        string  `json:"strategy,omitempty"`
	Pivots          int     `json:"pivots,omitempty"`
	OmegaK          int     `json:"omega_k,omitempty"`
	OmegaMinDist    float64 `json:"omega_min_dist,omitempty"`
	Alpha           float64 `json:"alpha,omitempty"`
	MinimumDistance float64 `json:"minimum_distance,omitempty"`

	// Schedule options.
	Iterations int     `json:"iterations,omitempty"`
	Epsilon    float64 `json:"epsilon,omitempty"`
	Scheduler  string  `json:"scheduler,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`

	// RandomPlacement samples the initial placement from the seeded
	// generator instead of the deterministic spread. The n-dimensional
	// Euclidean geometry always places randomly, since its deterministic
	// start would put every node at the origin.
	RandomPlacement bool `json:"random_placement,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger                              `json:"-"`
	Hooks       observability.LayoutHooks                `json:"-"`
	OnIteration func(t int, eta float64, stress float64) `json:"-"`

	// validated tracks whether Validate has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed input graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph's canonical JSON form.
	GraphHash string

	// Layout is the computed layout document.
	Layout graphio.LayoutDoc

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	PairCount  int
	ParseTime  time.Duration
	PairsTime  time.Duration
	LayoutTime time.Duration

	// Stress is the final placement's stress over the optimized pair
	// set, scored against the original target distances.
	Stress float64
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PairsHit  bool // Whether the pair set came from cache
	LayoutHit bool // Whether the finished layout came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an input format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidParameter,
			"invalid format: %q (must be one of: json, dot)", format)
	}
	return nil
}

// ValidateGeometry checks that a geometry name is valid.
func ValidateGeometry(geometry string) error {
	if !ValidGeometries[geometry] {
		return errors.New(errors.ErrCodeInvalidParameter,
			"invalid geometry: %q (must be one of: euclidean2d, euclidean, hyperbolic2d, spherical2d, torus2d)", geometry)
	}
	return nil
}

// ValidateStrategy checks that a pair-generation strategy is valid.
func ValidateStrategy(strategy string) error {
	if !ValidStrategies[strategy] {
		return errors.New(errors.ErrCodeInvalidParameter,
			"invalid strategy: %q (must be one of: full, sparse, full-adjusted, sparse-adjusted, omega)", strategy)
	}
	return nil
}

// ValidateScheduler checks that a decay family is valid.
func ValidateScheduler(scheduler string) error {
	if !ValidSchedulers[scheduler] {
		return errors.New(errors.ErrCodeInvalidParameter,
			"invalid scheduler: %q (must be one of: constant, linear, quadratic, exponential, reciprocal)", scheduler)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// Validate fills defaults and checks every option against the allowed
// values. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) Validate() error {
	if o.validated {
		return nil
	}
	if o.InputPath == "" && o.Reader == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "an input path or reader is required")
	}
	o.SetDefaults()

	if o.Reader != nil && o.Format == "" {
		return errors.New(errors.ErrCodeInvalidParameter, "format is required when reading from a stream")
	}
	if o.Format != "" {
		if err := ValidateFormat(o.Format); err != nil {
			return err
		}
	}
	if err := ValidateGeometry(o.Geometry); err != nil {
		return err
	}
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if err := ValidateScheduler(o.Scheduler); err != nil {
		return err
	}
	if o.Geometry == GeometryEuclidean && o.Dimension < 1 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"dimension must be at least 1, got %d", o.Dimension)
	}
	if o.needsPivots() && o.Pivots < 1 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"pivot count must be at least 1, got %d", o.Pivots)
	}
	if o.Iterations < 1 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"iteration count must be at least 1, got %d", o.Iterations)
	}
	if o.Epsilon <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"epsilon must be positive, got %v", o.Epsilon)
	}

	o.validated = true
	return nil
}

// SetDefaults fills every zero-valued option with its default.
func (o *Options) SetDefaults() {
	if o.Geometry == "" {
		o.Geometry = DefaultGeometry
	}
	if o.Geometry == GeometryEuclidean && o.Dimension == 0 {
		o.Dimension = DefaultDimension
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.needsPivots() && o.Pivots == 0 {
		o.Pivots = DefaultPivots
	}
	if o.Strategy == StrategyOmega {
		def := sgd.DefaultOmegaOptions()
		if o.OmegaK == 0 {
			o.OmegaK = def.K
		}
		if o.OmegaMinDist == 0 {
			o.OmegaMinDist = def.MinDist
		}
	}
	if o.adjusted() && o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Epsilon == 0 {
		o.Epsilon = sgd.DefaultEpsilon
	}
	if o.Scheduler == "" {
		o.Scheduler = DefaultScheduler
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// needsPivots returns true for the strategies that select pivot nodes.
func (o *Options) needsPivots() bool {
	return o.Strategy == StrategySparse || o.Strategy == StrategySparseAdjusted
}

// adjusted returns true for the strategies that relax target distances
// between passes.
func (o *Options) adjusted() bool {
	return o.Strategy == StrategyFullAdjusted || o.Strategy == StrategySparseAdjusted
}

// pairsKeyOpts returns cache key options for pair generation.
func (o *Options) pairsKeyOpts() cache.PairsKeyOpts {
	return cache.PairsKeyOpts{
		Strategy:        o.Strategy,
		Pivots:          o.Pivots,
		OmegaK:          o.OmegaK,
		OmegaMinDist:    o.OmegaMinDist,
		Alpha:           o.Alpha,
		MinimumDistance: o.MinimumDistance,
		Seed:            o.Seed,
	}
}

// layoutKeyOpts returns cache key options for the finished layout.
func (o *Options) layoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Pairs:           o.pairsKeyOpts(),
		Geometry:        o.Geometry,
		Dimension:       o.Dimension,
		Iterations:      o.Iterations,
		Epsilon:         o.Epsilon,
		Scheduler:       o.Scheduler,
		RandomPlacement: o.RandomPlacement,
	}
}
