package drawing

import (
	"errors"
	"math"
)

var (
	// ErrInvalidIndex is returned by Get and Set for node indices outside
	// the drawing.
	ErrInvalidIndex = errors.New("invalid node index")

	// ErrInvalidValue is returned by Set for coordinate slices of the
	// wrong width or with non-finite entries.
	ErrInvalidValue = errors.New("invalid geometry value")

	// ErrInvalidDimension is returned by Euclidean constructors for
	// dimensions below 1.
	ErrInvalidDimension = errors.New("dimension must be at least 1")
)

// eps floors singular denominators across all geometries.
const eps = 1e-4

// Geometry names as used in layout documents, CLI flags, and the API.
const (
	GeometryEuclidean  = "euclidean"
	GeometryHyperbolic = "hyperbolic"
	GeometrySpherical  = "spherical"
	GeometryTorus      = "torus"
)

// ValidGeometries enumerates the accepted geometry names.
var ValidGeometries = map[string]bool{
	GeometryEuclidean:  true,
	GeometryHyperbolic: true,
	GeometrySpherical:  true,
	GeometryTorus:      true,
}

// Drawing is a mutable assignment of coordinates to nodes in one geometry.
//
// Row i corresponds to the node with arena index i in the graph being laid
// out. See the package documentation for the Delta/Move contract.
type Drawing interface {
	// Len returns the number of nodes.
	Len() int

	// Dimension returns the coordinate width of one row.
	Dimension() int

	// Get returns a copy of node u's coordinates.
	Get(u int) ([]float64, error)

	// Set overwrites node u's coordinates, normalizing them into the
	// geometry's domain.
	Set(u int, coords []float64) error

	// Delta returns the direction from node j toward node i expressed at
	// i, and the geometry distance between them. buf is reused when its
	// capacity allows.
	Delta(i, j int, buf []float64) ([]float64, float64)

	// Move displaces node u by scale times dir and renormalizes into the
	// domain.
	Move(u int, dir []float64, scale float64)
}

// ensureBuf returns buf resized to n entries, allocating only when the
// capacity falls short.
func ensureBuf(buf []float64, n int) []float64 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// validCoords reports whether coords has the wanted width and only finite
// entries.
func validCoords(coords []float64, width int) bool {
	if len(coords) != width {
		return false
	}
	for _, c := range coords {
		if math.IsInf(c, 0) || math.IsNaN(c) {
			return false
		}
	}
	return true
}
