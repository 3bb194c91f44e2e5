// Package graph provides the undirected graph container the layout engine
// operates on.
//
// Nodes and edges live in dense arenas and are addressed by opaque integer
// indices ([NodeIndex], [EdgeIndex]). The layout algorithms hold indices,
// never pointers, which keeps coordinate stores and node-pair lists plain
// numeric slices. Payloads ([Node], [Edge]) are not interpreted by the
// layout core; ID, Label, Length, and Meta exist for importers, exporters,
// renderers, and user-supplied length functions.
//
// # Index Stability
//
// Indices issued by a graph stay valid until the next structural mutation
// (RemoveNode, RemoveEdge). Removal uses swap semantics: the last element
// moves into the vacated slot, so exactly one index is invalidated per
// removal. Drawings and SGD instances built from a graph are snapshots over
// a fixed index range and must be rebuilt after a mutation.
//
// # Usage
//
//	g := graph.New(nil)
//	a := g.AddNode(graph.Node{ID: "a"})
//	b := g.AddNode(graph.Node{ID: "b"})
//	if _, err := g.AddEdge(graph.Edge{Source: a, Target: b, Length: 1}); err != nil {
//	    return err
//	}
//
// Algorithm packages (shortestpath, layout/sgd, layout/spectral, quality)
// consume graphs through small interfaces that *Graph satisfies, so callers
// with their own graph representation can adapt it without conversion.
//
// # Concurrency
//
// A Graph is safe for concurrent reads but not concurrent writes.
package graph
