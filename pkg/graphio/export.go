package graphio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
)

// ============================================================================
// JSON EXPORT
// ============================================================================

// toDoc flattens a graph into its wire representation. Nodes and edges keep
// their arena order so export followed by import round-trips indices.
func toDoc(g *graph.Graph) *graphDoc {
	doc := &graphDoc{
		Meta:  g.Meta(),
		Nodes: make([]nodeDoc, 0, g.NodeCount()),
		Edges: make([]edgeDoc, 0, g.EdgeCount()),
	}
	for _, u := range g.NodeIndices() {
		n, _ := g.Node(u)
		doc.Nodes = append(doc.Nodes, nodeDoc{ID: n.ID, Label: n.Label, Meta: n.Meta})
	}
	for _, ei := range g.EdgeIndices() {
		e, _ := g.Edge(ei)
		src, _ := g.Node(e.Source)
		dst, _ := g.Node(e.Target)
		doc.Edges = append(doc.Edges, edgeDoc{
			Source: src.ID,
			Target: dst.ID,
			Length: e.Length,
			Meta:   e.Meta,
		})
	}
	return doc
}

// MarshalGraph encodes a graph as indented node-link JSON.
func MarshalGraph(g *graph.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(toDoc(g), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode graph JSON")
	}
	return data, nil
}

// WriteJSON writes a graph to w as indented node-link JSON.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write graph JSON")
	}
	return nil
}

// ExportJSON writes a graph to a JSON file, creating or truncating path.
func ExportJSON(g *graph.Graph, path string) error {
	if err := errors.ValidateFilePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteJSON(g, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
