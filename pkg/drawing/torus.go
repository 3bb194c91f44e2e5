package drawing

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/rng"
)

// Torus2D places nodes on the unit square with wraparound in both axes.
// Coordinates live in [0, 1); distances follow the minimum image, so no
// two nodes are ever farther than √2/2 apart.
type Torus2D struct {
	points [][2]float64
}

// NewTorus2D creates a deterministic toroidal drawing with nodes on a
// circle of radius 0.4 around the square's center.
func NewTorus2D(n int) *Torus2D {
	d := &Torus2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		theta := 2 * math.Pi * float64(i) / float64(len(d.points))
		d.points[i] = [2]float64{0.5 + 0.4*math.Cos(theta), 0.5 + 0.4*math.Sin(theta)}
	}
	return d
}

// NewTorus2DRandom creates a toroidal drawing with nodes sampled uniformly
// from the unit square.
func NewTorus2DRandom(n int, r *rng.Rng) *Torus2D {
	d := &Torus2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		d.points[i] = [2]float64{wrap01(r.Float64()), wrap01(r.Float64())}
	}
	return d
}

// wrap01 maps a coordinate into [0, 1).
func wrap01(x float64) float64 {
	return x - math.Floor(x)
}

// Len returns the number of nodes.
func (d *Torus2D) Len() int { return len(d.points) }

// Dimension returns 2.
func (d *Torus2D) Dimension() int { return 2 }

// Get returns a copy of node u's coordinates.
func (d *Torus2D) Get(u int) ([]float64, error) {
	if u < 0 || u >= len(d.points) {
		return nil, ErrInvalidIndex
	}
	return []float64{d.points[u][0], d.points[u][1]}, nil
}

// Set overwrites node u's coordinates, wrapping them into [0, 1).
func (d *Torus2D) Set(u int, coords []float64) error {
	if u < 0 || u >= len(d.points) {
		return ErrInvalidIndex
	}
	if !validCoords(coords, 2) {
		return ErrInvalidValue
	}
	d.points[u] = [2]float64{wrap01(coords[0]), wrap01(coords[1])}
	return nil
}

// Delta returns the minimum-image vector from node j to node i and its
// 2-norm. Per axis, differences beyond 1/2 shift across the seam.
func (d *Torus2D) Delta(i, j int, buf []float64) ([]float64, float64) {
	buf = ensureBuf(buf, 2)
	buf[0] = minImage(d.points[i][0] - d.points[j][0])
	buf[1] = minImage(d.points[i][1] - d.points[j][1])
	return buf, math.Hypot(buf[0], buf[1])
}

// minImage folds an axis difference into [-1/2, 1/2].
func minImage(dx float64) float64 {
	if dx > 0.5 {
		return dx - 1
	}
	if dx < -0.5 {
		return dx + 1
	}
	return dx
}

// Move displaces node u by scale times dir, wrapping back into the square.
func (d *Torus2D) Move(u int, dir []float64, scale float64) {
	d.points[u] = [2]float64{
		wrap01(d.points[u][0] + scale*dir[0]),
		wrap01(d.points[u][1] + scale*dir[1]),
	}
}
