package drawing

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/rng"
)

// ============================================================================
// EUCLIDEAN 2D
// ============================================================================

// goldenAngle spaces successive spiral points by the golden ratio.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Euclidean2D places nodes in the plane.
type Euclidean2D struct {
	points [][2]float64
}

// NewEuclidean2D creates a deterministic planar drawing: node i sits on a
// golden-angle spiral at radius 10·√i. The spiral spreads nodes without
// collisions, which matters because coincident points produce zero deltas.
func NewEuclidean2D(n int) *Euclidean2D {
	d := &Euclidean2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		r := 10 * math.Sqrt(float64(i))
		theta := goldenAngle * float64(i)
		d.points[i] = [2]float64{r * math.Cos(theta), r * math.Sin(theta)}
	}
	return d
}

// NewEuclidean2DRandom creates a planar drawing with nodes sampled uniformly
// from the unit square.
func NewEuclidean2DRandom(n int, r *rng.Rng) *Euclidean2D {
	d := &Euclidean2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		d.points[i] = [2]float64{r.Float64(), r.Float64()}
	}
	return d
}

// Len returns the number of nodes.
func (d *Euclidean2D) Len() int { return len(d.points) }

// Dimension returns 2.
func (d *Euclidean2D) Dimension() int { return 2 }

// Get returns a copy of node u's coordinates.
func (d *Euclidean2D) Get(u int) ([]float64, error) {
	if u < 0 || u >= len(d.points) {
		return nil, ErrInvalidIndex
	}
	return []float64{d.points[u][0], d.points[u][1]}, nil
}

// Set overwrites node u's coordinates.
func (d *Euclidean2D) Set(u int, coords []float64) error {
	if u < 0 || u >= len(d.points) {
		return ErrInvalidIndex
	}
	if !validCoords(coords, 2) {
		return ErrInvalidValue
	}
	d.points[u] = [2]float64{coords[0], coords[1]}
	return nil
}

// Delta returns the vector from node j to node i and its 2-norm.
func (d *Euclidean2D) Delta(i, j int, buf []float64) ([]float64, float64) {
	buf = ensureBuf(buf, 2)
	buf[0] = d.points[i][0] - d.points[j][0]
	buf[1] = d.points[i][1] - d.points[j][1]
	return buf, math.Hypot(buf[0], buf[1])
}

// Move displaces node u by scale times dir.
func (d *Euclidean2D) Move(u int, dir []float64, scale float64) {
	d.points[u][0] += scale * dir[0]
	d.points[u][1] += scale * dir[1]
}

// ============================================================================
// EUCLIDEAN N-D
// ============================================================================

// Euclidean places nodes in n-dimensional Euclidean space with a flat
// coordinate store.
type Euclidean struct {
	n, dim int
	coords []float64 // row u occupies coords[u*dim : (u+1)*dim]
}

// NewEuclidean creates a drawing with all nodes at the origin.
func NewEuclidean(n, dim int) (*Euclidean, error) {
	if dim < 1 {
		return nil, ErrInvalidDimension
	}
	n = max(n, 0)
	return &Euclidean{n: n, dim: dim, coords: make([]float64, n*dim)}, nil
}

// NewEuclideanRandom creates a drawing with nodes sampled uniformly from
// the unit cube.
func NewEuclideanRandom(n, dim int, r *rng.Rng) (*Euclidean, error) {
	d, err := NewEuclidean(n, dim)
	if err != nil {
		return nil, err
	}
	for i := range d.coords {
		d.coords[i] = r.Float64()
	}
	return d, nil
}

// Len returns the number of nodes.
func (d *Euclidean) Len() int { return d.n }

// Dimension returns the coordinate width.
func (d *Euclidean) Dimension() int { return d.dim }

// Get returns a copy of node u's coordinates.
func (d *Euclidean) Get(u int) ([]float64, error) {
	if u < 0 || u >= d.n {
		return nil, ErrInvalidIndex
	}
	out := make([]float64, d.dim)
	copy(out, d.coords[u*d.dim:(u+1)*d.dim])
	return out, nil
}

// Set overwrites node u's coordinates.
func (d *Euclidean) Set(u int, coords []float64) error {
	if u < 0 || u >= d.n {
		return ErrInvalidIndex
	}
	if !validCoords(coords, d.dim) {
		return ErrInvalidValue
	}
	copy(d.coords[u*d.dim:(u+1)*d.dim], coords)
	return nil
}

// Delta returns the vector from node j to node i and its 2-norm.
func (d *Euclidean) Delta(i, j int, buf []float64) ([]float64, float64) {
	buf = ensureBuf(buf, d.dim)
	ri := d.coords[i*d.dim : (i+1)*d.dim]
	rj := d.coords[j*d.dim : (j+1)*d.dim]
	sum := 0.0
	for k := 0; k < d.dim; k++ {
		buf[k] = ri[k] - rj[k]
		sum += buf[k] * buf[k]
	}
	return buf, math.Sqrt(sum)
}

// Move displaces node u by scale times dir.
func (d *Euclidean) Move(u int, dir []float64, scale float64) {
	row := d.coords[u*d.dim : (u+1)*d.dim]
	for k := 0; k < d.dim; k++ {
		row[k] += scale * dir[k]
	}
}
