package drawing

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/rng"
)

// Spherical2D places nodes on the unit sphere. Rows hold (longitude,
// latitude) in radians with longitude in (-π, π] and latitude in
// [-π/2, π/2]; distances are great-circle angles.
type Spherical2D struct {
	points [][2]float64
}

// NewSpherical2D creates a deterministic spherical drawing with nodes
// evenly spaced on the latitude π/4 ring.
func NewSpherical2D(n int) *Spherical2D {
	d := &Spherical2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		lon := wrapLon(2 * math.Pi * float64(i) / float64(len(d.points)))
		d.points[i] = [2]float64{lon, math.Pi / 4}
	}
	return d
}

// NewSpherical2DRandom creates a spherical drawing with nodes sampled
// uniformly on the sphere (latitude via arcsine so area is uniform).
func NewSpherical2DRandom(n int, r *rng.Rng) *Spherical2D {
	d := &Spherical2D{points: make([][2]float64, max(n, 0))}
	for i := range d.points {
		lon := wrapLon(2*math.Pi*r.Float64() - math.Pi)
		lat := math.Asin(2*r.Float64() - 1)
		d.points[i] = [2]float64{lon, lat}
	}
	return d
}

// wrapLon maps a longitude into (-π, π].
func wrapLon(l float64) float64 {
	w := math.Mod(l+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}

// clampLat keeps latitude inside [-π/2, π/2]. Steps across a pole stall
// there instead of flipping hemisphere.
func clampLat(l float64) float64 {
	if l > math.Pi/2 {
		return math.Pi / 2
	}
	if l < -math.Pi/2 {
		return -math.Pi / 2
	}
	return l
}

// Len returns the number of nodes.
func (d *Spherical2D) Len() int { return len(d.points) }

// Dimension returns 2.
func (d *Spherical2D) Dimension() int { return 2 }

// Get returns a copy of node u's (lon, lat).
func (d *Spherical2D) Get(u int) ([]float64, error) {
	if u < 0 || u >= len(d.points) {
		return nil, ErrInvalidIndex
	}
	return []float64{d.points[u][0], d.points[u][1]}, nil
}

// Set overwrites node u's coordinates, wrapping longitude and clamping
// latitude.
func (d *Spherical2D) Set(u int, coords []float64) error {
	if u < 0 || u >= len(d.points) {
		return ErrInvalidIndex
	}
	if !validCoords(coords, 2) {
		return ErrInvalidValue
	}
	d.points[u] = [2]float64{wrapLon(coords[0]), clampLat(coords[1])}
	return nil
}

// Delta returns the tangent direction at node i pointing away from node j,
// decomposed into local east/north components and scaled to the
// great-circle distance. Coincident and antipodal pairs yield a zero
// direction.
func (d *Spherical2D) Delta(i, j int, buf []float64) ([]float64, float64) {
	buf = ensureBuf(buf, 2)
	pi, pj := d.points[i], d.points[j]
	dist := sphericalDist(pi, pj)

	ci, cj := toUnitSphere(pi), toUnitSphere(pj)
	dot := ci[0]*cj[0] + ci[1]*cj[1] + ci[2]*cj[2]

	// Component of j's position orthogonal to i: the tangent toward j.
	var v [3]float64
	for k := 0; k < 3; k++ {
		v[k] = cj[k] - dot*ci[k]
	}
	norm := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if norm < eps {
		buf[0], buf[1] = 0, 0
		return buf, dist
	}

	sinLon, cosLon := math.Sincos(pi[0])
	sinLat, cosLat := math.Sincos(pi[1])
	east := [3]float64{-sinLon, cosLon, 0}
	north := [3]float64{-sinLat * cosLon, -sinLat * sinLon, cosLat}

	// Away from j, projected onto the local frame.
	e := -(v[0]*east[0] + v[1]*east[1] + v[2]*east[2]) / norm
	n := -(v[0]*north[0] + v[1]*north[1] + v[2]*north[2]) / norm
	buf[0] = e * dist
	buf[1] = n * dist
	return buf, dist
}

// sphericalDist is the great-circle angle between two (lon, lat) points.
func sphericalDist(p, q [2]float64) float64 {
	c := math.Sin(p[1])*math.Sin(q[1]) + math.Cos(p[1])*math.Cos(q[1])*math.Cos(p[0]-q[0])
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// toUnitSphere converts (lon, lat) to Cartesian coordinates on the unit
// sphere.
func toUnitSphere(p [2]float64) [3]float64 {
	sinLon, cosLon := math.Sincos(p[0])
	sinLat, cosLat := math.Sincos(p[1])
	return [3]float64{cosLat * cosLon, cosLat * sinLon, sinLat}
}

// Move displaces node u by scale times dir. The east component converts to
// a longitude change through the latitude circle radius (cosine floored at
// the pole), then coordinates are renormalized.
func (d *Spherical2D) Move(u int, dir []float64, scale float64) {
	p := d.points[u]
	cosLat := math.Cos(p[1])
	if cosLat < eps {
		cosLat = eps
	}
	lon := p[0] + scale*dir[0]/cosLat
	lat := p[1] + scale*dir[1]
	d.points[u] = [2]float64{wrapLon(lon), clampLat(lat)}
}
