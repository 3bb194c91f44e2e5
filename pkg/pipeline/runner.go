package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sgdraw/pkg/cache"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
	"github.com/matzehuels/sgdraw/pkg/layout/sgd"
	"github.com/matzehuels/sgdraw/pkg/observability"
	"github.com/matzehuels/sgdraw/pkg/rng"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run executes the complete parse → pairs → layout pipeline with caching.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.applyRuntime(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: parse
	parseStart := time.Now()
	g, err := parseGraph(&opts)
	if err != nil {
		return nil, err
	}
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	graphData, err := graphio.MarshalGraph(g)
	if err != nil {
		return nil, err
	}
	result.GraphHash = cache.Hash(graphData)

	r.Logger.Info("parsed graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ParseTime)

	// A finished layout for these exact options short-circuits the run.
	layoutKey := r.Keyer.LayoutKey(result.GraphHash, opts.layoutKeyOpts())
	if data, ok := r.cacheGet(ctx, "layout", layoutKey); ok {
		if doc, err := graphio.UnmarshalLayout(data); err == nil {
			result.Layout = doc
			result.Stats.Stress = doc.Stress
			result.CacheInfo.LayoutHit = true
			r.Logger.Info("layout cache hit", "graph", shortHash(result.GraphHash))
			return result, nil
		}
	}

	// Stage 2: pairs
	pairsStart := time.Now()
	s, pairsHit, err := r.buildOptimizer(ctx, g, &opts, result.GraphHash)
	if err != nil {
		return nil, err
	}
	result.Stats.PairsTime = time.Since(pairsStart)
	result.CacheInfo.PairsHit = pairsHit
	if s != nil {
		result.Stats.PairCount = len(s.NodePairs())
	}

	r.Logger.Info("generated pairs",
		"strategy", opts.Strategy,
		"pairs", result.Stats.PairCount,
		"cached", pairsHit,
		"duration", result.Stats.PairsTime)

	// Stage 3: layout
	layoutStart := time.Now()
	doc, stress, err := r.optimize(ctx, g, s, &opts)
	if err != nil {
		return nil, err
	}
	result.Layout = doc
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Stress = stress

	r.Logger.Info("computed layout",
		"geometry", opts.Geometry,
		"iterations", opts.Iterations,
		"stress", stress,
		"duration", result.Stats.LayoutTime)

	if data, err := graphio.MarshalLayout(doc); err == nil {
		r.cacheSet(ctx, "layout", layoutKey, data, cache.TTLLayout)
	}
	return result, nil
}

// buildOptimizer returns the optimizer for the run, reading the pair set
// from cache when an equal run generated it before. A single-node graph
// has no pairs and returns a nil optimizer.
func (r *Runner) buildOptimizer(ctx context.Context, g *graph.Graph, opts *Options, graphHash string) (*sgd.Sgd, bool, error) {
	if g.NodeCount() < 2 {
		return nil, false, nil
	}

	key := r.Keyer.PairsKey(graphHash, opts.pairsKeyOpts())
	if data, ok := r.cacheGet(ctx, "pairs", key); ok {
		var pairs []sgd.NodePair
		if err := json.Unmarshal(data, &pairs); err == nil && len(pairs) > 0 {
			return sgd.New(pairs), true, nil
		}
	}

	s, err := generatePairs(g, opts)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(s.NodePairs()); err == nil {
		r.cacheSet(ctx, "pairs", key, data, cache.TTLPairs)
	}
	return s, false, nil
}

// optimize places the nodes and runs the schedule, returning the layout
// document and its final stress. The context is checked between
// iterations, so a canceled request stops mid-schedule.
func (r *Runner) optimize(ctx context.Context, g *graph.Graph, s *sgd.Sgd, opts *Options) (graphio.LayoutDoc, float64, error) {
	layoutRng := rng.SeedFrom(opts.Seed)
	d, err := buildDrawing(g.NodeCount(), opts, layoutRng)
	if err != nil {
		return graphio.LayoutDoc{}, 0, err
	}

	if s == nil {
		// Nothing to optimize; export the initial placement.
		doc, err := exportDoc(g, d, opts)
		return doc, 0, err
	}

	pairs := s.NodePairs()
	start := time.Now()
	opts.Hooks.OnLayoutStart(ctx, opts.Strategy, g.NodeCount(), len(pairs))

	finish := func(err error) error {
		opts.Hooks.OnLayoutComplete(ctx, opts.Strategy, time.Since(start), err)
		return err
	}

	sched, err := newScheduler(s, opts)
	if err != nil {
		return graphio.LayoutDoc{}, 0, finish(err)
	}

	// The adjusted strategies rewrite targets between passes; stress is
	// scored against the originals.
	adj := wrapAdjusted(s, opts)
	targets := pairs
	if adj != nil {
		targets = append([]sgd.NodePair(nil), pairs...)
	}

	stride := opts.Iterations / 20
	if stride < 1 {
		stride = 1
	}
	var stress float64
	if opts.OnIteration != nil {
		stress = pairStress(d, targets)
	}

	t := 0
	for !sched.IsFinished() {
		if err := ctx.Err(); err != nil {
			return graphio.LayoutDoc{}, 0, finish(err)
		}
		sched.Step(func(eta float64) {
			s.Shuffle(layoutRng)
			if adj != nil {
				adj.ApplyWithAdjustment(d, eta)
			} else {
				s.Apply(d, eta)
			}
			opts.Hooks.OnIteration(ctx, t, eta)
			if opts.OnIteration != nil {
				if (t+1)%stride == 0 || t+1 == opts.Iterations {
					stress = pairStress(d, targets)
				}
				opts.OnIteration(t, eta, stress)
			}
			t++
		})
	}

	doc, err := exportDoc(g, d, opts)
	if err != nil {
		return graphio.LayoutDoc{}, 0, finish(err)
	}
	final := pairStress(d, targets)
	doc.Stress = final
	return doc, final, finish(nil)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyRuntime fills the runtime options from the runner before
// validation installs the silent defaults.
func (r *Runner) applyRuntime(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.Hooks == nil {
		opts.Hooks = observability.Layout()
	}
}

// cacheGet reads one stage entry, reporting hits and misses to the cache
// hooks. Backend failures degrade to a miss; transient ones are retried.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyType, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// cacheSet stores one stage entry. Failures are logged and dropped; the
// run result never depends on the cache.
func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// shortHash abbreviates a content hash for log lines.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
