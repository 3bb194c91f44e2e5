package graph

import "slices"

// Graph is an undirected graph backed by node and edge arenas.
//
// The zero value is not usable - use New to create a valid instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    []Node
	edges    []Edge
	incident [][]EdgeIndex // node index -> edges touching that node
	meta     Metadata
}

// New creates an empty graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{meta: meta}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode appends a node to the arena and returns its index.
// The node's Meta field is automatically initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) NodeIndex {
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes = append(g.nodes, n)
	g.incident = append(g.incident, nil)
	return NodeIndex(len(g.nodes) - 1)
}

// AddEdge appends an edge between two existing nodes and returns its index.
// Returns ErrInvalidNodeIndex if either endpoint is out of range, or
// ErrSelfLoop if the endpoints coincide. Parallel edges are allowed; the
// pair generators deduplicate them. The edge's Meta field is automatically
// initialized to an empty map if nil.
func (g *Graph) AddEdge(e Edge) (EdgeIndex, error) {
	if !g.ContainsNode(e.Source) || !g.ContainsNode(e.Target) {
		return 0, ErrInvalidNodeIndex
	}
	if e.Source == e.Target {
		return 0, ErrSelfLoop
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	idx := EdgeIndex(len(g.edges) - 1)
	g.incident[e.Source] = append(g.incident[e.Source], idx)
	g.incident[e.Target] = append(g.incident[e.Target], idx)
	return idx, nil
}

// Node returns a pointer to the node payload at the given index.
// The pointer refers into the arena, so modifications affect the graph;
// it is invalidated by the next structural mutation.
func (g *Graph) Node(u NodeIndex) (*Node, error) {
	if !g.ContainsNode(u) {
		return nil, ErrInvalidNodeIndex
	}
	return &g.nodes[u], nil
}

// Edge returns a pointer to the edge payload at the given index, with the
// same aliasing rules as [Graph.Node].
func (g *Graph) Edge(e EdgeIndex) (*Edge, error) {
	if !g.ContainsEdge(e) {
		return nil, ErrInvalidEdgeIndex
	}
	return &g.edges[e], nil
}

// EdgeEndpoints returns the two endpoints of an edge in stored order.
// The graph is undirected; callers must not read direction into the order.
func (g *Graph) EdgeEndpoints(e EdgeIndex) (NodeIndex, NodeIndex, error) {
	if !g.ContainsEdge(e) {
		return 0, 0, ErrInvalidEdgeIndex
	}
	return g.edges[e].Source, g.edges[e].Target, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ContainsNode reports whether u is a live node index.
func (g *Graph) ContainsNode(u NodeIndex) bool {
	return u >= 0 && int(u) < len(g.nodes)
}

// ContainsEdge reports whether e is a live edge index.
func (g *Graph) ContainsEdge(e EdgeIndex) bool {
	return e >= 0 && int(e) < len(g.edges)
}

// NodeIndices returns all node indices in ascending order.
// The slice is freshly allocated on every call.
func (g *Graph) NodeIndices() []NodeIndex {
	indices := make([]NodeIndex, len(g.nodes))
	for i := range indices {
		indices[i] = NodeIndex(i)
	}
	return indices
}

// EdgeIndices returns all edge indices in ascending order.
// The slice is freshly allocated on every call.
func (g *Graph) EdgeIndices() []EdgeIndex {
	indices := make([]EdgeIndex, len(g.edges))
	for i := range indices {
		indices[i] = EdgeIndex(i)
	}
	return indices
}

// Neighbors returns the edges incident to u. The returned slice should not
// be modified - use it as a read-only view. Returns nil for out-of-range
// indices or isolated nodes.
func (g *Graph) Neighbors(u NodeIndex) []EdgeIndex {
	if !g.ContainsNode(u) {
		return nil
	}
	return g.incident[u]
}

// Degree returns the number of edges incident to u, or 0 if u is out of
// range.
func (g *Graph) Degree(u NodeIndex) int { return len(g.Neighbors(u)) }

// Opposite returns the endpoint of edge e that is not u.
// Returns ErrInvalidEdgeIndex for a bad edge index and ErrInvalidNodeIndex
// if u is not an endpoint of e.
func (g *Graph) Opposite(u NodeIndex, e EdgeIndex) (NodeIndex, error) {
	if !g.ContainsEdge(e) {
		return 0, ErrInvalidEdgeIndex
	}
	switch u {
	case g.edges[e].Source:
		return g.edges[e].Target, nil
	case g.edges[e].Target:
		return g.edges[e].Source, nil
	}
	return 0, ErrInvalidNodeIndex
}

// HasEdge reports whether any edge connects u and v, in either stored order.
// O(min degree) via the incidence lists.
func (g *Graph) HasEdge(u, v NodeIndex) bool {
	if !g.ContainsNode(u) || !g.ContainsNode(v) {
		return false
	}
	a, b := u, v
	if g.Degree(b) < g.Degree(a) {
		a, b = b, a
	}
	for _, e := range g.incident[a] {
		if g.edges[e].Source == b || g.edges[e].Target == b {
			return true
		}
	}
	return false
}

// RemoveEdge removes the edge at the given index. The last edge in the arena
// is swapped into the vacated slot, so the highest edge index is invalidated.
// Returns ErrInvalidEdgeIndex for a bad index.
func (g *Graph) RemoveEdge(e EdgeIndex) error {
	if !g.ContainsEdge(e) {
		return ErrInvalidEdgeIndex
	}

	removed := g.edges[e]
	g.detachEdge(removed.Source, e)
	g.detachEdge(removed.Target, e)

	last := EdgeIndex(len(g.edges) - 1)
	if e != last {
		moved := g.edges[last]
		g.edges[e] = moved
		g.reindexEdge(moved.Source, last, e)
		g.reindexEdge(moved.Target, last, e)
	}
	g.edges = g.edges[:last]
	return nil
}

// RemoveNode removes the node at the given index along with all incident
// edges. The last node in the arena is swapped into the vacated slot, so the
// highest node index is invalidated (plus one edge index per incident edge
// removal). Returns ErrInvalidNodeIndex for a bad index.
func (g *Graph) RemoveNode(u NodeIndex) error {
	if !g.ContainsNode(u) {
		return ErrInvalidNodeIndex
	}

	// Remove incident edges from highest index down. The edge swapped in by
	// each removal always comes from past the current highest incident
	// index, so the remaining entries stay valid.
	incident := slices.Clone(g.incident[u])
	slices.Sort(incident)
	for i := len(incident) - 1; i >= 0; i-- {
		if err := g.RemoveEdge(incident[i]); err != nil {
			return err
		}
	}

	last := NodeIndex(len(g.nodes) - 1)
	if u != last {
		g.nodes[u] = g.nodes[last]
		g.incident[u] = g.incident[last]
		for _, e := range g.incident[u] {
			if g.edges[e].Source == last {
				g.edges[e].Source = u
			}
			if g.edges[e].Target == last {
				g.edges[e].Target = u
			}
		}
	}
	g.nodes = g.nodes[:last]
	g.incident = g.incident[:last]
	return nil
}

func (g *Graph) detachEdge(u NodeIndex, e EdgeIndex) {
	g.incident[u] = slices.DeleteFunc(g.incident[u], func(x EdgeIndex) bool { return x == e })
}

func (g *Graph) reindexEdge(u NodeIndex, old, now EdgeIndex) {
	for i, x := range g.incident[u] {
		if x == old {
			g.incident[u][i] = now
		}
	}
}

// IndexOfID returns the index of the first node whose payload ID matches,
// or -1 if no node has that ID. O(N); importers that need repeated lookups
// build their own map.
func (g *Graph) IndexOfID(id string) NodeIndex {
	for i, n := range g.nodes {
		if n.ID == id {
			return NodeIndex(i)
		}
	}
	return -1
}
