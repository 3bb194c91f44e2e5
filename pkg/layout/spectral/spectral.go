package spectral

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// ============================================================================
// OPTIONS
// ============================================================================

// Options control the eigensolver. The zero value is invalid; start from
// [DefaultOptions].
type Options struct {
	// Dim is the number of embedding dimensions, one non-zero eigenpair
	// per dimension.
	Dim int

	// Shift is the diagonal constant c in L + cI.
	Shift float64

	// EigenIterations caps the inverse power iterations per eigenpair.
	EigenIterations int

	// CGIterations caps the conjugate-gradient iterations per solve.
	CGIterations int

	// EigenTolerance stops an eigenpair once successive eigenvalue
	// estimates differ by less than this.
	EigenTolerance float64

	// CGTolerance stops a solve once the preconditioned residual drops
	// below this.
	CGTolerance float64
}

// DefaultOptions returns the solver parameters used by the layout
// pipeline.
func DefaultOptions() Options {
	return Options{
		Dim:             2,
		Shift:           1e-3,
		EigenIterations: 1000,
		CGIterations:    100,
		EigenTolerance:  1e-1,
		CGTolerance:     1e-4,
	}
}

func (o Options) validate() error {
	if o.Dim < 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "spectral dimension %d must be at least 1", o.Dim)
	}
	if o.Shift <= 0 || math.IsInf(o.Shift, 0) || math.IsNaN(o.Shift) {
		return errors.New(errors.ErrCodeInvalidParameter, "shift %v must be a positive finite number", o.Shift)
	}
	if o.EigenIterations < 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "eigen iterations %d must be at least 1", o.EigenIterations)
	}
	if o.CGIterations < 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "cg iterations %d must be at least 1", o.CGIterations)
	}
	if o.EigenTolerance <= 0 || math.IsNaN(o.EigenTolerance) {
		return errors.New(errors.ErrCodeInvalidParameter, "eigen tolerance %v must be positive", o.EigenTolerance)
	}
	if o.CGTolerance <= 0 || math.IsNaN(o.CGTolerance) {
		return errors.New(errors.ErrCodeInvalidParameter, "cg tolerance %v must be positive", o.CGTolerance)
	}
	return nil
}

// ============================================================================
// EMBEDDING
// ============================================================================

// Embedding returns the spectral coordinates of g: one row per node,
// opts.Dim columns, row order matching the node indices. Randomness only
// enters through the start vectors, so equal seeds give identical
// embeddings.
func Embedding(g *graph.Graph, length shortestpath.LengthFunc, opts Options, r *rng.Rng) ([][]float64, error) {
	coords, _, err := Eigendecomposition(g, length, opts, r)
	return coords, err
}

// Eigendecomposition returns the spectral coordinates of g together with
// the opts.Dim smallest non-zero eigenvalues of its weighted Laplacian,
// in ascending order. Coordinate k of node i is v_k[i] / sqrt(lambda_k).
//
// The graph needs at least Dim+1 nodes and must be connected; both
// violations surface as INVALID_GRAPH errors rather than as non-finite
// coordinates.
func Eigendecomposition(g *graph.Graph, length shortestpath.LengthFunc, opts Options, r *rng.Rng) ([][]float64, []float64, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	l, err := NewLaplacian(g, length, opts.Shift)
	if err != nil {
		return nil, nil, err
	}
	n := l.NodeCount()
	if n < opts.Dim+1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidGraph,
			"graph has %d nodes, a %d-dimensional embedding needs at least %d", n, opts.Dim, opts.Dim+1)
	}
	// A second zero eigenvalue (one per extra component) can surface from
	// the iteration as an arbitrarily small positive estimate, so
	// connectivity is checked directly instead of thresholding.
	reach, err := shortestpath.DijkstraFrom(g, 0, shortestpath.UnitLengths())
	if err != nil {
		return nil, nil, err
	}
	for u, d := range reach {
		if math.IsInf(d, 1) {
			return nil, nil, errors.New(errors.ErrCodeInvalidGraph,
				"graph is disconnected: node %d is unreachable from node 0", u)
		}
	}

	values, vectors := smallestEigenpairs(l, opts, r)

	eigenvalues := make([]float64, opts.Dim)
	for k := 1; k <= opts.Dim; k++ {
		if values[k] <= 0 || math.IsNaN(values[k]) {
			return nil, nil, errors.New(errors.ErrCodeInvalidGraph,
				"inverse iteration collapsed to a non-positive eigenvalue %v for eigenpair %d", values[k], k)
		}
		eigenvalues[k-1] = values[k]
	}

	coords := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, opts.Dim)
		for k := 0; k < opts.Dim; k++ {
			row[k] = vectors[k+1][i] / math.Sqrt(eigenvalues[k])
		}
		coords[i] = row
	}
	return coords, eigenvalues, nil
}

// ============================================================================
// INVERSE POWER ITERATION
// ============================================================================

// smallestEigenpairs computes the Dim smallest non-zero eigenpairs of l.
// Index 0 of the result holds the zero eigenpair with the constant vector
// 1/sqrt(n); deflating against it keeps the iteration off the Laplacian's
// null space. Eigenvector k is found by repeatedly solving
// (L + cI) y = x, re-orthogonalizing y against all earlier vectors, and
// reading the eigenvalue off the Rayleigh quotient of the unshifted L.
func smallestEigenpairs(l *Laplacian, opts Options, r *rng.Rng) ([]float64, [][]float64) {
	n := l.NodeCount()

	values := make([]float64, opts.Dim+1)
	vectors := make([][]float64, 1, opts.Dim+1)
	vectors[0] = make([]float64, n)
	for i := range vectors[0] {
		vectors[0][i] = 1 / math.Sqrt(float64(n))
	}

	// Shared warm-start buffer for the CG solves.
	y := make([]float64, n)

	for k := 1; k <= opts.Dim; k++ {
		x := randomVector(n, r)
		orthogonalize(x, vectors)
		normalize(x)

		var prev float64
		for iter := 0; iter < opts.EigenIterations; iter++ {
			l.solveCG(x, y, opts.CGIterations, opts.CGTolerance)
			next := append([]float64(nil), y...)
			orthogonalize(next, vectors)
			normalize(next)

			est := l.QuadraticForm(next)
			converged := math.Abs(est-prev) < opts.EigenTolerance
			x = next
			prev = est
			if converged {
				break
			}
		}
		values[k] = prev
		vectors = append(vectors, x)
	}
	return values, vectors
}

// randomVector returns a vector with components uniform in [-1, 1).
func randomVector(n int, r *rng.Rng) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 2*r.Float64() - 1
	}
	return v
}

// orthogonalize subtracts from v its projection onto every basis vector.
func orthogonalize(v []float64, basis [][]float64) {
	for _, b := range basis {
		d := dot(v, b)
		for i := range v {
			v[i] -= d * b[i]
		}
	}
}

// normalize scales v to unit length; the zero vector is left alone.
func normalize(v []float64) {
	norm := math.Sqrt(dot(v, v))
	if norm > 0 {
		for i := range v {
			v[i] /= norm
		}
	}
}
