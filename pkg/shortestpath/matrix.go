package shortestpath

import (
	"fmt"

	"github.com/matzehuels/sgdraw/pkg/graph"
)

// ============================================================================
// DISTANCE MATRICES
// ============================================================================

// DistanceMatrix is a row-addressable view of shortest-path distances.
// Rows correspond to source nodes, columns to all nodes. For a [FullMatrix]
// the row index equals the node index; for a [SubMatrix] rows follow the
// order sources were added.
type DistanceMatrix interface {
	// Shape returns the number of rows and columns.
	Shape() (rows, cols int)

	// At returns the distance from the row-th source to node v.
	At(row int, v graph.NodeIndex) float64
}

// ============================================================================
// FULL MATRIX
// ============================================================================

// FullMatrix holds all-pairs shortest-path distances, one Dijkstra run per
// node. Entry (i, j) is +Inf when j is unreachable from i.
type FullMatrix struct {
	rows [][]float64
}

// NewFullMatrix computes the n x n distance matrix of g under the given
// length function.
func NewFullMatrix(g *graph.Graph, length LengthFunc) (*FullMatrix, error) {
	if err := validateLengths(g, length); err != nil {
		return nil, err
	}
	m := &FullMatrix{rows: make([][]float64, g.NodeCount())}
	for _, u := range g.NodeIndices() {
		m.rows[u] = dijkstra(g, u, length)
	}
	return m, nil
}

// Shape returns (n, n).
func (m *FullMatrix) Shape() (rows, cols int) {
	return len(m.rows), len(m.rows)
}

// At returns the distance from node row to node v.
func (m *FullMatrix) At(row int, v graph.NodeIndex) float64 {
	return m.rows[row][v]
}

// Between is shorthand for At with two node indices.
func (m *FullMatrix) Between(u, v graph.NodeIndex) float64 {
	return m.rows[u][v]
}

// ============================================================================
// SUB MATRIX
// ============================================================================

// SubMatrix holds shortest-path distances from a growing set of source
// nodes. Pivot-based generators add sources one at a time and fold each
// fresh row into their own bookkeeping.
type SubMatrix struct {
	g      *graph.Graph
	length LengthFunc
	order  []graph.NodeIndex
	rowOf  map[graph.NodeIndex]int
	rows   [][]float64
}

// NewSubMatrix prepares an empty sub-matrix over g. Sources are added with
// [SubMatrix.AddSource].
func NewSubMatrix(g *graph.Graph, length LengthFunc) (*SubMatrix, error) {
	if err := validateLengths(g, length); err != nil {
		return nil, err
	}
	return &SubMatrix{
		g:      g,
		length: length,
		rowOf:  make(map[graph.NodeIndex]int),
	}, nil
}

// AddSource computes the distance row for u and appends it. Adding a source
// twice returns the existing row without recomputation.
func (m *SubMatrix) AddSource(u graph.NodeIndex) ([]float64, error) {
	if row, ok := m.rowOf[u]; ok {
		return m.rows[row], nil
	}
	if !m.g.ContainsNode(u) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSource, u)
	}
	row := dijkstra(m.g, u, m.length)
	m.rowOf[u] = len(m.rows)
	m.order = append(m.order, u)
	m.rows = append(m.rows, row)
	return row, nil
}

// Shape returns (number of sources, number of nodes).
func (m *SubMatrix) Shape() (rows, cols int) {
	return len(m.rows), m.g.NodeCount()
}

// At returns the distance from the row-th source to node v.
func (m *SubMatrix) At(row int, v graph.NodeIndex) float64 {
	return m.rows[row][v]
}

// SourceIndex returns the row index of source u, or -1 when u has not been
// added.
func (m *SubMatrix) SourceIndex(u graph.NodeIndex) int {
	if row, ok := m.rowOf[u]; ok {
		return row
	}
	return -1
}

// Sources returns the added sources in insertion order. The slice is shared
// with the matrix and must not be modified.
func (m *SubMatrix) Sources() []graph.NodeIndex {
	return m.order
}
