package pipeline

import (
	"math"
	"time"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
	"github.com/matzehuels/sgdraw/pkg/layout/sgd"
	"github.com/matzehuels/sgdraw/pkg/layout/spectral"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// =============================================================================
// Pair Generation
// =============================================================================

// generatePairs builds the optimizer for the configured strategy. The
// generator consumes its own seeded stream, so cached pair sets and
// fresh ones leave the placement stream untouched.
func generatePairs(g *graph.Graph, opts *Options) (*sgd.Sgd, error) {
	length := shortestpath.EdgeLengths(g)
	r := rng.SeedFrom(opts.Seed)

	switch opts.Strategy {
	case StrategyFull, StrategyFullAdjusted:
		return sgd.NewFull(g, length)

	case StrategySparse, StrategySparseAdjusted:
		h := opts.Pivots
		if n := g.NodeCount(); h > n {
			h = n
		}
		return sgd.NewSparse(g, length, h, r)

	case StrategyOmega:
		embedding, err := spectral.Embedding(g, length, spectral.DefaultOptions(), r)
		if err != nil {
			return nil, err
		}
		return sgd.NewOmega(g, length, embedding, sgd.OmegaOptions{
			K:       opts.OmegaK,
			MinDist: opts.OmegaMinDist,
		}, r)
	}
	return nil, errors.New(errors.ErrCodeInvalidParameter, "unknown strategy %q", opts.Strategy)
}

// wrapAdjusted wraps the optimizer for the adjusted strategies and
// returns nil otherwise.
func wrapAdjusted(s *sgd.Sgd, opts *Options) *sgd.DistanceAdjusted {
	if !opts.adjusted() {
		return nil
	}
	adj := sgd.NewDistanceAdjusted(s)
	adj.Alpha = opts.Alpha
	adj.MinimumDistance = opts.MinimumDistance
	return adj
}

// =============================================================================
// Drawing Construction
// =============================================================================

// buildDrawing places n nodes in the configured geometry. The generator
// is only consumed when the placement is random.
func buildDrawing(n int, opts *Options, r *rng.Rng) (drawing.Drawing, error) {
	switch opts.Geometry {
	case GeometryEuclidean2D:
		if opts.RandomPlacement {
			return drawing.NewEuclidean2DRandom(n, r), nil
		}
		return drawing.NewEuclidean2D(n), nil

	case GeometryEuclidean:
		// The deterministic n-dimensional start is all-origin, which the
		// optimizer cannot escape; always place randomly.
		return drawing.NewEuclideanRandom(n, opts.Dimension, r)

	case GeometryHyperbolic2D:
		if opts.RandomPlacement {
			return drawing.NewHyperbolic2DRandom(n, r), nil
		}
		return drawing.NewHyperbolic2D(n), nil

	case GeometrySpherical2D:
		if opts.RandomPlacement {
			return drawing.NewSpherical2DRandom(n, r), nil
		}
		return drawing.NewSpherical2D(n), nil

	case GeometryTorus2D:
		if opts.RandomPlacement {
			return drawing.NewTorus2DRandom(n, r), nil
		}
		return drawing.NewTorus2D(n), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidParameter, "unknown geometry %q", opts.Geometry)
}

// docGeometry maps a pipeline geometry name to the layout-document
// geometry it produces.
func docGeometry(geometry string) string {
	switch geometry {
	case GeometryEuclidean2D, GeometryEuclidean:
		return drawing.GeometryEuclidean
	case GeometryHyperbolic2D:
		return drawing.GeometryHyperbolic
	case GeometrySpherical2D:
		return drawing.GeometrySpherical
	case GeometryTorus2D:
		return drawing.GeometryTorus
	}
	return geometry
}

// =============================================================================
// Schedule
// =============================================================================

// newScheduler derives the learning-rate schedule for the configured
// decay family from the optimizer's pair weights.
func newScheduler(s *sgd.Sgd, opts *Options) (sgd.Scheduler, error) {
	switch opts.Scheduler {
	case SchedulerConstant:
		sched, err := s.SchedulerConstant(opts.Iterations, opts.Epsilon)
		if err != nil {
			return nil, err
		}
		return sched, nil
	case SchedulerLinear:
		sched, err := s.SchedulerLinear(opts.Iterations, opts.Epsilon)
		if err != nil {
			return nil, err
		}
		return sched, nil
	case SchedulerQuadratic:
		sched, err := s.SchedulerQuadratic(opts.Iterations, opts.Epsilon)
		if err != nil {
			return nil, err
		}
		return sched, nil
	case SchedulerExponential:
		sched, err := s.SchedulerExponential(opts.Iterations, opts.Epsilon)
		if err != nil {
			return nil, err
		}
		return sched, nil
	case SchedulerReciprocal:
		sched, err := s.SchedulerReciprocal(opts.Iterations, opts.Epsilon)
		if err != nil {
			return nil, err
		}
		return sched, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidParameter, "unknown scheduler %q", opts.Scheduler)
}

// =============================================================================
// Export
// =============================================================================

// exportDoc captures the drawing as a layout document, one node ID and
// coordinate row per node in arena order.
func exportDoc(g *graph.Graph, d drawing.Drawing, opts *Options) (graphio.LayoutDoc, error) {
	doc := graphio.LayoutDoc{
		Geometry:   docGeometry(opts.Geometry),
		Dimension:  d.Dimension(),
		Nodes:      make([]string, 0, g.NodeCount()),
		Positions:  make([][]float64, 0, g.NodeCount()),
		Seed:       opts.Seed,
		Strategy:   opts.Strategy,
		Scheduler:  opts.Scheduler,
		Iterations: opts.Iterations,
		CreatedAt:  time.Now().UTC(),
	}
	for _, u := range g.NodeIndices() {
		n, err := g.Node(u)
		if err != nil {
			return graphio.LayoutDoc{}, err
		}
		coords, err := d.Get(int(u))
		if err != nil {
			return graphio.LayoutDoc{}, err
		}
		doc.Nodes = append(doc.Nodes, n.ID)
		doc.Positions = append(doc.Positions, coords)
	}
	return doc, nil
}

// pairStress sums the squared relative error of the drawn distances
// against the pairs' target distances. Pairs without a usable target are
// skipped, matching the optimizer's own skip rule.
func pairStress(d drawing.Drawing, pairs []sgd.NodePair) float64 {
	var (
		sum float64
		buf []float64
	)
	for _, p := range pairs {
		if !(p.DistIJ > 0) || math.IsInf(p.DistIJ, 1) {
			continue
		}
		var dist float64
		buf, dist = d.Delta(p.I, p.J, buf)
		e := (dist - p.DistIJ) / p.DistIJ
		sum += e * e
	}
	return sum
}
