package graphio

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
)

// ============================================================================
// WIRE FORMAT
// ============================================================================

// graphDoc mirrors the on-disk node-link JSON format.
type graphDoc struct {
	Meta  map[string]any `json:"meta,omitempty"`
	Nodes []nodeDoc      `json:"nodes"`
	Edges []edgeDoc      `json:"edges"`
}

type nodeDoc struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

type edgeDoc struct {
	Source string         `json:"source"`
	Target string         `json:"target"`
	Length float64        `json:"length,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// ============================================================================
// JSON IMPORT
// ============================================================================

// ReadJSON decodes a node-link graph from r.
//
// Node IDs must be unique and every edge endpoint must name a declared
// node. The optional edge "length" defaults to 1 and must be a finite
// positive number when present. Nodes are added to the graph in file
// order, so reading the same file twice yields identical indices.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc graphDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode graph JSON")
	}
	return buildGraph(&doc)
}

// buildGraph converts a decoded document into a graph, validating IDs and
// endpoints along the way.
func buildGraph(doc *graphDoc) (*graph.Graph, error) {
	g := graph.New(doc.Meta)
	index := make(map[string]graph.NodeIndex, len(doc.Nodes))

	for _, n := range doc.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		if _, dup := index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node ID %q", n.ID)
		}
		index[n.ID] = g.AddNode(graph.Node{ID: n.ID, Label: n.Label, Meta: n.Meta})
	}

	for _, e := range doc.Edges {
		src, ok := index[e.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %s-%s: unknown source node", e.Source, e.Target)
		}
		dst, ok := index[e.Target]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %s-%s: unknown target node", e.Source, e.Target)
		}
		length := e.Length
		if length == 0 {
			length = 1
		}
		if length < 0 || math.IsInf(length, 0) || math.IsNaN(length) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %s-%s: length must be a finite positive number", e.Source, e.Target)
		}
		if _, err := g.AddEdge(graph.Edge{Source: src, Target: dst, Length: length, Meta: e.Meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s-%s", e.Source, e.Target)
		}
	}
	return g, nil
}

// ImportJSON reads a node-link graph from a JSON file.
func ImportJSON(path string) (*graph.Graph, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "import %s", path)
	}
	return g, nil
}

// ImportFile reads a graph from path, choosing the decoder by file
// extension: .json for node-link JSON, .dot or .gv for Graphviz DOT.
func ImportFile(path string) (*graph.Graph, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ImportJSON(path)
	case ".dot", ".gv":
		return ImportDOT(path)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q (expected .json, .dot or .gv)", ext)
	}
}
