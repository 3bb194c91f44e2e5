package sgd

import (
	"math"
	"sort"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// NewSparse builds a sparse optimizer with h pivot nodes: every graph edge
// becomes a pair, and each pivot pairs with every node it can reach. Pivot
// pairs are asymmetric: the pivot endpoint carries a regional weight, so a
// pivot standing in for many nearby nodes takes proportionally larger
// steps, while the far endpoint moves under the plain 1/d² weight. The
// pair count is O(h*n). h outside [1, nodeCount] fails with an
// invalid-parameter error.
func NewSparse(g *graph.Graph, length shortestpath.LengthFunc, h int, r *rng.Rng) (*Sgd, error) {
	n := g.NodeCount()
	if h < 1 || h > n {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"pivot count %d outside [1, %d]", h, n)
	}
	m, err := shortestpath.NewSubMatrix(g, length)
	if err != nil {
		return nil, err
	}
	if err := selectPivots(g, m, h, r); err != nil {
		return nil, err
	}
	return buildSparse(g, length, m), nil
}

// NewSparseWithPivots builds the sparse pair set over a caller-chosen
// pivot set. Duplicate pivots collapse to one; at least one pivot is
// required.
func NewSparseWithPivots(g *graph.Graph, length shortestpath.LengthFunc, pivots []graph.NodeIndex) (*Sgd, error) {
	if len(pivots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"at least one pivot is required")
	}
	m, err := shortestpath.NewSubMatrix(g, length)
	if err != nil {
		return nil, err
	}
	for _, p := range pivots {
		if _, err := m.AddSource(p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "pivot %d", p)
		}
	}
	return buildSparse(g, length, m), nil
}

// selectPivots chooses h pivots by max-min random sampling and records
// them as sources of m: the first uniformly, each next with probability
// proportional to its distance from the already-chosen set. A node no
// chosen pivot can reach has infinite distance and is taken outright,
// which seeds every component of a disconnected graph.
func selectPivots(g *graph.Graph, m *shortestpath.SubMatrix, h int, r *rng.Rng) error {
	nodes := g.NodeIndices()
	n := len(nodes)
	row, err := m.AddSource(nodes[r.IntN(n)])
	if err != nil {
		return err
	}
	minD := make([]float64, n)
	for j := range minD {
		minD[j] = math.Inf(1)
	}
	for len(m.Sources()) < h {
		for j := range minD {
			minD[j] = math.Min(minD[j], row[j])
		}
		next, ok := sampleProportional(minD, r)
		if !ok {
			// All remaining distances are zero; fall back to the first
			// unchosen node.
			for _, u := range nodes {
				if m.SourceIndex(u) < 0 {
					next = int(u)
					break
				}
			}
		}
		if row, err = m.AddSource(nodes[next]); err != nil {
			return err
		}
	}
	return nil
}

// sampleProportional draws an index with probability proportional to its
// value. An infinite value short-circuits to the first such index; a zero
// total reports failure.
func sampleProportional(values []float64, r *rng.Rng) (int, bool) {
	total := 0.0
	for i, v := range values {
		if math.IsInf(v, 1) {
			return i, true
		}
		total += v
	}
	if total <= 0 {
		return 0, false
	}
	x := r.Float64() * total
	sum := 0.0
	last := 0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sum += v
		last = i
		if x < sum {
			return i, true
		}
	}
	return last, true
}

// buildSparse assembles the sparse pair set: one symmetric pair per graph
// edge, one asymmetric pair per (pivot, node) combination that is neither
// an edge nor a self pair.
func buildSparse(g *graph.Graph, length shortestpath.LengthFunc, m *shortestpath.SubMatrix) *Sgd {
	n := g.NodeCount()
	pivots := m.Sources()
	h := len(pivots)

	edges := g.EdgeIndices()
	pairs := make([]NodePair, 0, len(edges)+h*(n-1))
	edgeSeen := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		u, v, _ := g.EdgeEndpoints(e)
		key := pairKey(int(u), int(v))
		if edgeSeen[key] {
			continue
		}
		edgeSeen[key] = true
		l := length(e)
		if !usable(l) {
			continue
		}
		w := 1 / (l * l)
		pairs = append(pairs, NodePair{
			I: int(u), J: int(v),
			DistIJ: l, DistJI: l,
			WeightIJ: w, WeightJI: w,
		})
	}

	// Region of a node: the earliest pivot row at minimal distance.
	region := make([]int, n)
	for j := 0; j < n; j++ {
		best := 0
		for k := 1; k < h; k++ {
			if m.At(k, graph.NodeIndex(j)) < m.At(best, graph.NodeIndex(j)) {
				best = k
			}
		}
		region[j] = best
	}

	// Per-region doubled member distances, sorted for the s lookup.
	doubled := make([][]float64, h)
	for j := 0; j < n; j++ {
		k := region[j]
		doubled[k] = append(doubled[k], 2*m.At(k, graph.NodeIndex(j)))
	}
	for k := range doubled {
		sort.Float64s(doubled[k])
	}

	for k, p := range pivots {
		i := int(p)
		for j := 0; j < n; j++ {
			if j == i || edgeSeen[pairKey(i, j)] {
				continue
			}
			d := m.At(k, graph.NodeIndex(j))
			if !usable(d) {
				continue
			}
			w := 1 / (d * d)
			s := float64(regionWithin(doubled[k], d))
			pairs = append(pairs, NodePair{
				I: i, J: j,
				DistIJ: d, DistJI: d,
				WeightIJ: s * w, WeightJI: w,
			})
		}
	}
	return New(pairs)
}

// regionWithin counts region members whose doubled pivot distance does not
// exceed d. The slice is sorted ascending.
func regionWithin(doubled []float64, d float64) int {
	return sort.Search(len(doubled), func(i int) bool { return doubled[i] > d })
}
