// Package shortestpath computes graph-theoretic distances for layout.
//
// Layout algorithms consume distances in three shapes, all built on a
// single-source Dijkstra with a lazy-decrease-key binary heap:
//
//   - [DijkstraFrom]: one row of distances from a source node
//   - [FullMatrix]: the complete n x n distance matrix
//   - [SubMatrix]: rows for a chosen subset of sources, grown incrementally
//
// Edge lengths come from a [LengthFunc], so callers decide whether stored
// lengths ([EdgeLengths]) or hop counts ([UnitLengths]) drive the metric.
// Lengths must be non-negative; an infinite length marks an edge as
// impassable. Unreachable nodes report a distance of +Inf.
//
// Usage:
//
//	m, err := shortestpath.NewFullMatrix(g, shortestpath.EdgeLengths(g))
//	if err != nil {
//	    return err
//	}
//	d := m.At(int(u), v)
//
// All types in this package are not safe for concurrent mutation.
package shortestpath
