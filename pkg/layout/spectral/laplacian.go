package spectral

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// ============================================================================
// WEIGHTED LAPLACIAN
// ============================================================================

// weightedEdge is one off-diagonal entry pair of the Laplacian.
type weightedEdge struct {
	i, j int
	w    float64
}

// Laplacian is the weighted graph Laplacian L with a diagonal shift c,
// stored as an edge list so matrix operations run in O(|E|).
//
// In the unshifted L, entry (i, i) is the weighted degree of node i and
// entry (i, j) is minus the weight of edge (i, j). The shift moves every
// eigenvalue up by c, making L + cI positive definite and therefore safe
// to hand to a conjugate-gradient solve.
type Laplacian struct {
	n       int
	edges   []weightedEdge
	degrees []float64 // weighted degree plus shift, the diagonal of L + cI
}

// NewLaplacian builds the shifted Laplacian of g with edge weights drawn
// from length. Every weight must be strictly positive and finite.
// Parallel edges accumulate.
func NewLaplacian(g *graph.Graph, length shortestpath.LengthFunc, shift float64) (*Laplacian, error) {
	l := &Laplacian{
		n:       g.NodeCount(),
		edges:   make([]weightedEdge, 0, g.EdgeCount()),
		degrees: make([]float64, g.NodeCount()),
	}
	for _, e := range g.EdgeIndices() {
		u, v, err := g.EdgeEndpoints(e)
		if err != nil {
			return nil, err
		}
		w := length(e)
		if w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"edge %d: weight %v must be a positive finite number", e, w)
		}
		l.edges = append(l.edges, weightedEdge{i: int(u), j: int(v), w: w})
		l.degrees[u] += w
		l.degrees[v] += w
	}
	for i := range l.degrees {
		l.degrees[i] += shift
	}
	return l, nil
}

// NodeCount returns the order of the matrix.
func (l *Laplacian) NodeCount() int { return l.n }

// MulVec stores (L + cI) v in dst. Both slices must have length
// [Laplacian.NodeCount] and must not alias.
func (l *Laplacian) MulVec(v, dst []float64) {
	for i := range dst {
		dst[i] = l.degrees[i] * v[i]
	}
	for _, e := range l.edges {
		dst[e.i] -= e.w * v[e.j]
		dst[e.j] -= e.w * v[e.i]
	}
}

// QuadraticForm returns v'Lv for the unshifted Laplacian, via the
// identity v'Lv = sum over edges of w * (v[i] - v[j])^2. For a unit
// vector this is the Rayleigh quotient, the eigenvalue estimate driving
// the inverse power iteration.
func (l *Laplacian) QuadraticForm(v []float64) float64 {
	var sum float64
	for _, e := range l.edges {
		d := v[e.i] - v[e.j]
		sum += e.w * d * d
	}
	return sum
}

// solveCG approximately solves (L + cI) y = b by conjugate gradients with
// Jacobi preconditioning, warm-starting from the current contents of y.
// The shifted diagonal is strictly positive, so the preconditioner never
// divides by zero.
func (l *Laplacian) solveCG(b, y []float64, maxIterations int, tolerance float64) {
	n := l.n
	r := make([]float64, n)
	z := make([]float64, n)
	q := make([]float64, n)

	// r = b - (L + cI) y
	l.MulVec(y, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	for i := range z {
		z[i] = r[i] / l.degrees[i]
	}
	p := append([]float64(nil), z...)

	rs := dot(r, z)
	if rs == 0 {
		return
	}
	for iter := 0; iter < maxIterations; iter++ {
		l.MulVec(p, q)
		alpha := rs / dot(p, q)
		for i := range y {
			y[i] += alpha * p[i]
		}
		for i := range r {
			r[i] -= alpha * q[i]
		}
		for i := range z {
			z[i] = r[i] / l.degrees[i]
		}
		rsNew := dot(r, z)
		if rsNew < tolerance*tolerance {
			break
		}
		beta := rsNew / rs
		for i := range p {
			p[i] = beta*p[i] + z[i]
		}
		rs = rsNew
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
