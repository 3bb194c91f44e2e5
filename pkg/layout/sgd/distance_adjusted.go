package sgd

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/drawing"
)

// DistanceAdjusted wraps an optimizer and relaxes its target distances
// toward the currently drawn distances after every pass. Pairs the layout
// cannot satisfy stop fighting the rest of the drawing, which reduces
// clutter in dense regions. All base optimizer methods remain available
// through the embedded [Sgd].
type DistanceAdjusted struct {
	*Sgd

	// Alpha balances drawn against original distances: 0 keeps the
	// original targets, 1 follows the drawing.
	Alpha float64

	// MinimumDistance floors every adjusted target.
	MinimumDistance float64

	original map[[2]int]float64
}

// NewDistanceAdjusted wraps inner, recording its current target distances
// per direction as the reference the adjustment pulls back toward.
func NewDistanceAdjusted(inner *Sgd) *DistanceAdjusted {
	original := make(map[[2]int]float64, 2*len(inner.pairs))
	for _, p := range inner.pairs {
		original[[2]int{p.I, p.J}] = p.DistIJ
		original[[2]int{p.J, p.I}] = p.DistJI
	}
	return &DistanceAdjusted{
		Sgd:             inner,
		Alpha:           0.5,
		MinimumDistance: 0,
		original:        original,
	}
}

// ApplyWithAdjustment runs one descent pass, then blends each direction's
// target between the drawn distance and the recorded original and renews
// the weights as 1/d². The blend is clamped into [MinimumDistance, d0]
// where d0 is the original target, so a target only ever tightens below
// its original value and never changes sign.
func (a *DistanceAdjusted) ApplyWithAdjustment(d drawing.Drawing, eta float64) {
	a.Apply(d, eta)
	var buf []float64
	a.UpdateDistance(func(i, j int, _, w float64) float64 {
		var drawn float64
		buf, drawn = d.Delta(i, j, buf)
		d0 := a.original[[2]int{i, j}]
		blended := (a.Alpha*w*drawn + 2*(1-a.Alpha)*d0) /
			(a.Alpha*w + 2*(1-a.Alpha))
		return math.Min(math.Max(blended, a.MinimumDistance), d0)
	})
	a.UpdateWeight(func(_, _ int, dist, _ float64) float64 {
		return 1 / (dist * dist)
	})
}
