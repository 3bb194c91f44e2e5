// Package quality scores how faithfully a drawing realizes the distances
// of its graph. Both metrics are relative errors against target distances,
// so values are comparable across graphs of different scale; lower is
// better, and an exact drawing scores 0.
package quality

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// ============================================================================
// STRESS
// ============================================================================

// sourced is implemented by distance matrices that cover a subset of rows,
// such as [shortestpath.SubMatrix].
type sourced interface {
	Sources() []graph.NodeIndex
}

// Stress sums the squared relative distance error over the node pairs
// covered by m: for each pair, ((dist - target) / target)² with dist the
// geometry distance in d and target the shortest-path distance in m. Rows
// of a plain matrix are taken as node indices, which matches
// [shortestpath.FullMatrix] and yields the classic sum over all unordered
// pairs; a matrix exposing an explicit source list is scored over its
// source rows instead, each unordered pair counted once. Pairs whose
// target is zero or not finite are skipped, so unreachable pairs do not
// contribute. The drawing must cover every node the matrix references.
func Stress(d drawing.Drawing, m shortestpath.DistanceMatrix) float64 {
	rows, cols := m.Shape()
	nodes := rowNodes(m, rows)
	rowOf := make([]int, cols)
	for v := range rowOf {
		rowOf[v] = -1
	}
	for r, u := range nodes {
		rowOf[u] = r
	}

	var (
		sum float64
		buf []float64
	)
	for r, u := range nodes {
		for v := 0; v < cols; v++ {
			if v == int(u) {
				continue
			}
			// A pair between two sources is counted from its first row.
			if vr := rowOf[v]; vr >= 0 && vr < r {
				continue
			}
			target := m.At(r, graph.NodeIndex(v))
			if !usable(target) {
				continue
			}
			var dist float64
			buf, dist = d.Delta(int(u), v, buf)
			e := (dist - target) / target
			sum += e * e
		}
	}
	return sum
}

// rowNodes maps each row of m to the node it describes.
func rowNodes(m shortestpath.DistanceMatrix, rows int) []graph.NodeIndex {
	if s, ok := m.(sourced); ok {
		return s.Sources()
	}
	nodes := make([]graph.NodeIndex, rows)
	for r := range nodes {
		nodes[r] = graph.NodeIndex(r)
	}
	return nodes
}

// ============================================================================
// IDEAL EDGE LENGTHS
// ============================================================================

// IdealEdgeLengths returns the mean relative deviation of drawn edge
// lengths from their targets: the average over edges of
// |dist(u, v) - l| / l with l the edge's length under length. Edges whose
// target length is zero or not finite are skipped; with no scorable edge
// the result is 0. The drawing must cover every node of g.
func IdealEdgeLengths(g *graph.Graph, d drawing.Drawing, length shortestpath.LengthFunc) float64 {
	var (
		sum   float64
		count int
		buf   []float64
	)
	for _, e := range g.EdgeIndices() {
		l := length(e)
		if !usable(l) {
			continue
		}
		u, v, _ := g.EdgeEndpoints(e)
		var dist float64
		buf, dist = d.Delta(int(u), int(v), buf)
		sum += math.Abs(dist-l) / l
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// usable reports whether a target distance is strictly positive and finite.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
