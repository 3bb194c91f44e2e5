package sgd

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/rng"
)

// DefaultEpsilon is the fraction of a full correction the final iterations
// are allowed to move the heaviest pair. It sets the floor of the derived
// learning-rate range.
const DefaultEpsilon = 0.1

// ============================================================================
// NODE PAIRS
// ============================================================================

// NodePair is the optimization target for one unordered node pair. Targets
// and weights are stored per direction: DistIJ and WeightIJ govern the step
// applied to I, DistJI and WeightJI the step applied to J. Symmetric
// generators fill both directions with equal values; asymmetric inputs
// (regional pivot weights, directed ideal distances) use the same struct.
type NodePair struct {
	I, J     int
	DistIJ   float64
	DistJI   float64
	WeightIJ float64
	WeightJI float64
}

// pairKey normalizes an unordered node pair for set membership.
func pairKey(i, j int) [2]int {
	if j < i {
		i, j = j, i
	}
	return [2]int{i, j}
}

// usable reports whether a distance or weight is strictly positive and
// finite. NaN fails the comparison, infinities fail the explicit check.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// ============================================================================
// OPTIMIZER
// ============================================================================

// Sgd is the stochastic gradient descent optimizer: the node pairs under
// optimization and the learning-rate bounds derived from their weights.
type Sgd struct {
	pairs   []NodePair
	epsilon float64
	etaMin  float64
	etaMax  float64
}

// New builds an optimizer over pairs with [DefaultEpsilon]. The optimizer
// takes ownership of the slice.
func New(pairs []NodePair) *Sgd {
	s := &Sgd{pairs: pairs, epsilon: DefaultEpsilon}
	s.updateEtaBounds()
	return s
}

// NodePairs returns the live pair slice. Entries may be inspected freely;
// rewriting distances or weights directly bypasses the learning-rate
// bookkeeping, so prefer [Sgd.UpdateDistance] and [Sgd.UpdateWeight].
func (s *Sgd) NodePairs() []NodePair {
	return s.pairs
}

// EtaBounds reports the derived learning-rate range.
func (s *Sgd) EtaBounds() (etaMin, etaMax float64) {
	return s.etaMin, s.etaMax
}

// Shuffle permutes the pair order using the given generator. The same seed
// yields the same permutation sequence on every platform.
func (s *Sgd) Shuffle(r *rng.Rng) {
	r.Shuffle(len(s.pairs), func(i, j int) {
		s.pairs[i], s.pairs[j] = s.pairs[j], s.pairs[i]
	})
}

// Apply runs one descent pass over the pairs in their current order. For
// each pair the per-endpoint step size is mu = min(1, eta*w); both
// endpoints then move half of their direction's residual toward the target
// distance, scaled by their mu. A pair whose target or current drawn
// distance is not strictly positive and finite is skipped for this pass,
// so degenerate targets, coincident points, and geometric singularities
// stall instead of producing NaN coordinates.
func (s *Sgd) Apply(d drawing.Drawing, eta float64) {
	var buf []float64
	for _, p := range s.pairs {
		if !usable(p.DistIJ) || !usable(p.DistJI) {
			continue
		}
		muI := math.Min(eta*p.WeightIJ, 1)
		muJ := math.Min(eta*p.WeightJI, 1)
		delta, dist := d.Delta(p.I, p.J, buf)
		buf = delta
		if !usable(dist) {
			continue
		}
		rI := 0.5 * (dist - p.DistIJ) / dist
		rJ := 0.5 * (dist - p.DistJI) / dist
		d.Move(p.I, delta, -rI*muI)
		d.Move(p.J, delta, rJ*muJ)
	}
}

// UpdateFunc rewrites one direction of a pair. It receives the direction's
// endpoints with the current target distance and weight, and returns the
// new value for the field being updated.
type UpdateFunc func(i, j int, dist, weight float64) float64

// UpdateDistance rewrites the target distances of every pair, one call per
// direction, and recomputes the learning-rate bounds afterwards.
func (s *Sgd) UpdateDistance(f UpdateFunc) {
	for idx := range s.pairs {
		p := &s.pairs[idx]
		p.DistIJ = f(p.I, p.J, p.DistIJ, p.WeightIJ)
		p.DistJI = f(p.J, p.I, p.DistJI, p.WeightJI)
	}
	s.updateEtaBounds()
}

// UpdateWeight rewrites the weights of every pair, one call per direction,
// and recomputes the learning-rate bounds afterwards.
func (s *Sgd) UpdateWeight(f UpdateFunc) {
	for idx := range s.pairs {
		p := &s.pairs[idx]
		p.WeightIJ = f(p.I, p.J, p.DistIJ, p.WeightIJ)
		p.WeightJI = f(p.J, p.I, p.DistJI, p.WeightJI)
	}
	s.updateEtaBounds()
}

// updateEtaBounds derives the learning-rate range from the strictly
// positive finite pair weights. At etaMax = 1/wMin every pair still
// saturates mu = 1; at etaMin = epsilon/wMax even the heaviest pair moves
// no more than an epsilon fraction of its correction. Without any usable
// weight both bounds collapse to zero.
func (s *Sgd) updateEtaBounds() {
	wMin := math.Inf(1)
	wMax := 0.0
	for _, p := range s.pairs {
		for _, w := range [2]float64{p.WeightIJ, p.WeightJI} {
			if !usable(w) {
				continue
			}
			if w < wMin {
				wMin = w
			}
			if w > wMax {
				wMax = w
			}
		}
	}
	if wMax == 0 {
		s.etaMin, s.etaMax = 0, 0
		return
	}
	s.etaMin = s.epsilon / wMax
	s.etaMax = 1 / wMin
}

// ============================================================================
// SCHEDULER CONSTRUCTION
// ============================================================================

// Scheduler returns the default learning-rate schedule for this optimizer,
// an exponential decay over tMax iterations.
func (s *Sgd) Scheduler(tMax int, epsilon float64) (*SchedulerExponential, error) {
	return s.SchedulerExponential(tMax, epsilon)
}

// SchedulerConstant derives eta bounds from the pair weights under epsilon
// and returns a constant schedule over them.
func (s *Sgd) SchedulerConstant(tMax int, epsilon float64) (*SchedulerConstant, error) {
	etaMin, etaMax, err := s.scheduleBounds(epsilon)
	if err != nil {
		return nil, err
	}
	return NewSchedulerConstant(tMax, etaMin, etaMax)
}

// SchedulerLinear derives eta bounds from the pair weights under epsilon
// and returns a linear schedule over them.
func (s *Sgd) SchedulerLinear(tMax int, epsilon float64) (*SchedulerLinear, error) {
	etaMin, etaMax, err := s.scheduleBounds(epsilon)
	if err != nil {
		return nil, err
	}
	return NewSchedulerLinear(tMax, etaMin, etaMax)
}

// SchedulerQuadratic derives eta bounds from the pair weights under
// epsilon and returns a quadratic schedule over them.
func (s *Sgd) SchedulerQuadratic(tMax int, epsilon float64) (*SchedulerQuadratic, error) {
	etaMin, etaMax, err := s.scheduleBounds(epsilon)
	if err != nil {
		return nil, err
	}
	return NewSchedulerQuadratic(tMax, etaMin, etaMax)
}

// SchedulerExponential derives eta bounds from the pair weights under
// epsilon and returns an exponential schedule over them.
func (s *Sgd) SchedulerExponential(tMax int, epsilon float64) (*SchedulerExponential, error) {
	etaMin, etaMax, err := s.scheduleBounds(epsilon)
	if err != nil {
		return nil, err
	}
	return NewSchedulerExponential(tMax, etaMin, etaMax)
}

// SchedulerReciprocal derives eta bounds from the pair weights under
// epsilon and returns a reciprocal schedule over them.
func (s *Sgd) SchedulerReciprocal(tMax int, epsilon float64) (*SchedulerReciprocal, error) {
	etaMin, etaMax, err := s.scheduleBounds(epsilon)
	if err != nil {
		return nil, err
	}
	return NewSchedulerReciprocal(tMax, etaMin, etaMax)
}

// scheduleBounds stores epsilon, recomputes the eta bounds, and rejects
// pair sets that cannot produce a usable learning-rate range.
func (s *Sgd) scheduleBounds(epsilon float64) (etaMin, etaMax float64, err error) {
	s.epsilon = epsilon
	s.updateEtaBounds()
	if s.etaMax == 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidParameter,
			"no node pair carries a positive finite weight")
	}
	return s.etaMin, s.etaMax, nil
}
