package graph

import "errors"

var (
	// ErrInvalidNodeIndex is returned by accessors and mutators when a node
	// index is negative or past the end of the arena. Indices are only valid
	// for the graph that issued them, and only until the next structural
	// mutation.
	ErrInvalidNodeIndex = errors.New("invalid node index")

	// ErrInvalidEdgeIndex is returned by accessors and mutators when an edge
	// index is negative or past the end of the arena.
	ErrInvalidEdgeIndex = errors.New("invalid edge index")

	// ErrSelfLoop is returned by [Graph.AddEdge] when source and target are
	// the same node. Layout distances are undefined for self loops.
	ErrSelfLoop = errors.New("self loops are not allowed")
)

// =============================================================================
// Indices
// =============================================================================

// NodeIndex identifies a node in a [Graph]. Indices are dense arena offsets:
// the first node added is 0, the second 1, and so on. Removal swaps the last
// node into the vacated slot, so a removal invalidates the highest index.
type NodeIndex int

// EdgeIndex identifies an edge in a [Graph], with the same arena semantics
// as [NodeIndex].
type EdgeIndex int

// =============================================================================
// Payloads
// =============================================================================

// Metadata stores arbitrary key-value pairs attached to nodes, edges, or the
// graph. The layout algorithms never interpret it; it exists so importers and
// exporters can round-trip information they do not understand.
type Metadata map[string]any

// Node is the payload attached to each node. The layout core never reads it;
// ID and Label exist for the importers, exporters, and renderers.
type Node struct {
	ID    string   // External identifier (file formats key nodes by this)
	Label string   // Display label (defaults to ID when empty)
	Meta  Metadata // Arbitrary key-value metadata
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is the payload attached to each edge. Length is the desired layout
// distance between the endpoints; importers default it to 1 when the source
// format carries none, and the shortest-path layer rejects negative values.
type Edge struct {
	Source NodeIndex
	Target NodeIndex
	Length float64
	Meta   Metadata
}
