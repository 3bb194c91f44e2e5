package drawing

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/rng"
)

// rimClamp keeps points strictly inside the Poincaré disk. Positions whose
// norm would reach 1 are pulled back to 1 - rimClamp.
const rimClamp = 1e-2

// Hyperbolic2D places nodes in the Poincaré disk model of the hyperbolic
// plane. Coordinates are Cartesian with |p| < 1; distances grow without
// bound toward the rim.
type Hyperbolic2D struct {
	points [][2]float64
}

// NewHyperbolic2D creates a deterministic hyperbolic drawing with nodes on
// a circle of radius 0.5.
func NewHyperbolic2D(n int) *Hyperbolic2D {
	d := &Hyperbolic2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		theta := 2 * math.Pi * float64(i) / float64(len(d.points))
		d.points[i] = [2]float64{0.5 * math.Cos(theta), 0.5 * math.Sin(theta)}
	}
	return d
}

// NewHyperbolic2DRandom creates a hyperbolic drawing with nodes sampled
// uniformly from the disk (radius √u for area uniformity).
func NewHyperbolic2DRandom(n int, r *rng.Rng) *Hyperbolic2D {
	d := &Hyperbolic2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		radius := math.Sqrt(r.Float64())
		theta := 2 * math.Pi * r.Float64()
		d.points[i] = clampDisk([2]float64{radius * math.Cos(theta), radius * math.Sin(theta)})
	}
	return d
}

// clampDisk pulls a point that escaped the open unit disk back inside.
func clampDisk(p [2]float64) [2]float64 {
	norm := math.Hypot(p[0], p[1])
	if norm >= 1 {
		s := (1 - rimClamp) / norm
		p[0] *= s
		p[1] *= s
	}
	return p
}

// Len returns the number of nodes.
func (d *Hyperbolic2D) Len() int { return len(d.points) }

// Dimension returns 2.
func (d *Hyperbolic2D) Dimension() int { return 2 }

// Get returns a copy of node u's coordinates.
func (d *Hyperbolic2D) Get(u int) ([]float64, error) {
	if u < 0 || u >= len(d.points) {
		return nil, ErrInvalidIndex
	}
	return []float64{d.points[u][0], d.points[u][1]}, nil
}

// Set overwrites node u's coordinates, clamping them into the disk.
func (d *Hyperbolic2D) Set(u int, coords []float64) error {
	if u < 0 || u >= len(d.points) {
		return ErrInvalidIndex
	}
	if !validCoords(coords, 2) {
		return ErrInvalidValue
	}
	d.points[u] = clampDisk([2]float64{coords[0], coords[1]})
	return nil
}

// Delta returns the direction from node j toward node i scaled to the
// hyperbolic distance between them. Coincident points yield a zero
// direction and zero distance.
func (d *Hyperbolic2D) Delta(i, j int, buf []float64) ([]float64, float64) {
	buf = ensureBuf(buf, 2)
	p, q := d.points[i], d.points[j]

	dx := p[0] - q[0]
	dy := p[1] - q[1]
	chord := math.Hypot(dx, dy)
	if chord < eps {
		buf[0], buf[1] = 0, 0
		return buf, 0
	}

	dist := hyperbolicDist(p, q)
	buf[0] = dx / chord * dist
	buf[1] = dy / chord * dist
	return buf, dist
}

// hyperbolicDist is the Poincaré-disk metric
// acosh(1 + 2|pq|² / ((1-|p|²)(1-|q|²))), with the denominator floored
// near the rim.
func hyperbolicDist(p, q [2]float64) float64 {
	dx := p[0] - q[0]
	dy := p[1] - q[1]
	num := 2 * (dx*dx + dy*dy)
	den := (1 - p[0]*p[0] - p[1]*p[1]) * (1 - q[0]*q[0] - q[1]*q[1])
	if den < eps {
		den = eps
	}
	return math.Acosh(1 + num/den)
}

// Move displaces node u by scale times dir, converting the hyperbolic step
// to a Euclidean one via the conformal factor (1-|p|²)/2 at u, then clamps
// back into the disk.
func (d *Hyperbolic2D) Move(u int, dir []float64, scale float64) {
	p := d.points[u]
	conformal := (1 - p[0]*p[0] - p[1]*p[1]) / 2
	p[0] += scale * dir[0] * conformal
	p[1] += scale * dir[1] * conformal
	d.points[u] = clampDisk(p)
}
