package sgd

import (
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// NewFull builds an optimizer over every unordered node pair of g, with
// target distances from an all-sources shortest-path matrix and weights
// 1/d². The pair count grows quadratically with the node count; prefer
// [NewSparse] beyond a few thousand nodes.
func NewFull(g *graph.Graph, length shortestpath.LengthFunc) (*Sgd, error) {
	m, err := shortestpath.NewFullMatrix(g, length)
	if err != nil {
		return nil, err
	}
	return NewFullWithMatrix(m), nil
}

// NewFullWithMatrix builds the full pair set from a precomputed distance
// matrix. Pairs whose distance is zero or not finite (coincident or
// unreachable nodes) are dropped.
func NewFullWithMatrix(m *shortestpath.FullMatrix) *Sgd {
	n, _ := m.Shape()
	pairs := make([]NodePair, 0, n*(n-1)/2)
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			d := m.At(i, graph.NodeIndex(j))
			if !usable(d) {
				continue
			}
			w := 1 / (d * d)
			pairs = append(pairs, NodePair{
				I: i, J: j,
				DistIJ: d, DistJI: d,
				WeightIJ: w, WeightJI: w,
			})
		}
	}
	return New(pairs)
}
