package sgd

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// OmegaOptions configures candidate sampling for [NewOmega].
type OmegaOptions struct {
	// K is the number of candidate draws per node.
	K int

	// MinDist is the smallest embedding separation a candidate pair may
	// have; closer draws are discarded.
	MinDist float64
}

// DefaultOmegaOptions returns the sampling defaults: 30 draws per node
// with a 1e-3 separation floor.
func DefaultOmegaOptions() OmegaOptions {
	return OmegaOptions{K: 30, MinDist: 1e-3}
}

// NewOmega builds an optimizer from graph edges plus randomly drawn
// candidate pairs. Candidates are filtered by their separation in the
// given low-dimensional embedding (typically spectral, one row per node),
// which concentrates pairs where the graph geometry says they matter;
// targets are always true shortest-path distances, never embedding
// distances.
func NewOmega(g *graph.Graph, length shortestpath.LengthFunc, embedding [][]float64, opts OmegaOptions, r *rng.Rng) (*Sgd, error) {
	n := g.NodeCount()
	if len(embedding) != n {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"embedding has %d rows for %d nodes", len(embedding), n)
	}
	for i, row := range embedding {
		if len(row) != len(embedding[0]) {
			return nil, errors.New(errors.ErrCodeInvalidParameter,
				"embedding row %d has width %d, want %d", i, len(row), len(embedding[0]))
		}
	}
	if opts.K < 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"candidate count must be non-negative, got %d", opts.K)
	}
	if opts.MinDist <= 0 || math.IsNaN(opts.MinDist) {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"minimum separation must be positive, got %v", opts.MinDist)
	}
	m, err := shortestpath.NewSubMatrix(g, length)
	if err != nil {
		return nil, err
	}

	taken := make(map[[2]int]bool)
	edges := g.EdgeIndices()
	pairs := make([]NodePair, 0, len(edges)+n*opts.K)
	for _, e := range edges {
		u, v, _ := g.EdgeEndpoints(e)
		key := pairKey(int(u), int(v))
		if taken[key] {
			continue
		}
		taken[key] = true
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

	// K draws per node; a draw that hits the node itself, an existing
	// pair, or a near-duplicate in the embedding is discarded rather than
	// redrawn.
	candidates := make([][]int, n)
	for i := 0; i < n; i++ {
		for k := 0; k < opts.K; k++ {
			j := r.IntN(n)
			if j == i || taken[pairKey(i, j)] || embeddingSep(embedding, i, j) < opts.MinDist {
				continue
			}
			taken[pairKey(i, j)] = true
			candidates[i] = append(candidates[i], j)
		}
	}

	// One Dijkstra per node that drew at least one surviving candidate.
	for i := 0; i < n; i++ {
		if len(candidates[i]) == 0 {
			continue
		}
		row, err := m.AddSource(graph.NodeIndex(i))
		if err != nil {
			return nil, err
		}
		for _, j := range candidates[i] {
			d := row[j]
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
	return New(pairs), nil
}

// embeddingSep is the Euclidean separation of embedding rows i and j.
func embeddingSep(embedding [][]float64, i, j int) float64 {
	sum := 0.0
	for k, v := range embedding[i] {
		diff := v - embedding[j][k]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
