// Package graphio reads and writes the file formats sgdraw works with.
//
// This package sits at the serialization boundary between the in-memory
// [graph.Graph] container and external formats:
//
//   - Graph JSON: the canonical node-link input format
//   - DOT: Graphviz files, for interoperability with existing tooling
//   - Layout JSON: positioned output documents ([LayoutDoc])
//
// # Graph JSON
//
// Graphs use a simple node-link format keyed by string IDs:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b", "label": "Beta"}],
//	  "edges": [{"source": "a", "target": "b", "length": 1.5}]
//	}
//
// Common operations:
//
//	g, _ := graphio.ImportFile("graph.json")     // File → Graph (json or dot)
//	graphio.ExportJSON(g, "out.json")            // Graph → File
//	data, _ := graphio.MarshalGraph(g)           // Graph → []byte
//
// On import, node IDs become arena indices in file order, so a file read
// twice produces identical indices. Edge "length" is optional and defaults
// to 1 during layout.
//
// # Layout Documents
//
// A [LayoutDoc] records the result of a layout run: the geometry, one
// coordinate slice per node, and enough provenance (seed, iteration count,
// stress) to reproduce or audit the run. Documents carry both json and bson
// tags so the HTTP API, the file formats, and the MongoDB store share one
// type.
//
// # Concurrency
//
// All functions are safe for concurrent use with distinct arguments.
package graphio
