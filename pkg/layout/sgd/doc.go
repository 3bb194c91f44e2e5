// Package sgd lays out graphs by stochastic gradient descent over node
// pairs.
//
// # Overview
//
// The optimizer holds a list of [NodePair] values, each carrying a target
// distance and a weight per direction. One [Sgd.Apply] pass walks the
// pairs in their current order and moves both endpoints of every pair a
// half-corrective step toward the pair's target distance; repeating the
// pass under a decaying learning rate anneals the drawing into a
// low-stress configuration. Pair order is randomized between passes with
// [Sgd.Shuffle], so two runs from the same seed reproduce bit for bit.
//
// # Generators
//
// Four strategies turn a graph into a pair list:
//
//   - [NewFull]: every unordered node pair, targets from an all-sources
//     shortest-path matrix. O(n²) pairs, the reference for quality.
//   - [NewSparse]: graph edges plus pivot-to-node pairs with regional
//     weights, pivots chosen by max-min random sampling. O(h·n) pairs.
//   - [NewDistanceAdjusted]: wraps another optimizer and relaxes targets
//     toward the currently drawn distances between passes.
//   - [NewOmega]: graph edges plus randomly drawn candidate pairs,
//     filtered by separation in a precomputed spectral embedding.
//
// Unreachable pairs are dropped everywhere; a disconnected graph lays out
// as independent components.
//
// # Basic Usage
//
// Build the optimizer, derive a learning-rate schedule from its weights,
// and alternate shuffle and apply until the schedule finishes:
//
//	s, err := sgd.NewFull(g, shortestpath.EdgeLengths(g))
//	if err != nil {
//		return err
//	}
//	d := drawing.NewEuclidean2D(g.NodeCount())
//	r := rng.SeedFrom(42)
//	sched, err := s.SchedulerExponential(100, sgd.DefaultEpsilon)
//	if err != nil {
//		return err
//	}
//	sched.Run(func(eta float64) {
//		s.Shuffle(r)
//		s.Apply(d, eta)
//	})
//
// # Learning-rate schedules
//
// [Scheduler] implementations decay eta from etaMax down to etaMin over a
// fixed number of iterations. Five families are available (constant,
// linear, quadratic, exponential, reciprocal); the [Sgd.Scheduler] helpers
// derive the eta range from the pair weights so the first passes saturate
// every pair's step and the last passes move no pair by more than an
// epsilon fraction.
//
// Optimizers and schedulers are not safe for concurrent use.
package sgd
