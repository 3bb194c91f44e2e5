package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
	"github.com/matzehuels/sgdraw/pkg/quality"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// stressCommand creates the stress command for scoring a layout.
func (c *CLI) stressCommand() *cobra.Command {
	var graphPath string

	cmd := &cobra.Command{
		Use:   "stress [graph.layout.json]",
		Short: "Score a computed layout against graph distances",
		Long: `Score a computed layout against graph distances.

The stress command reconstructs the drawing from a layout document,
computes all-pairs shortest paths on the graph, and reports the
normalized stress together with the mean relative edge length error.
Lower is better for both.

The graph file is inferred like in 'visualize'; use --graph to point at
it explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStress(args[0], graphPath)
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "graph file the layout was computed from")

	return cmd
}

// runStress scores the layout and prints the quality measures.
func (c *CLI) runStress(layoutFile, graphPath string) error {
	doc, err := graphio.ReadLayoutFile(layoutFile)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", layoutFile, err)
	}

	if graphPath == "" {
		graphPath, err = inferGraphPath(layoutFile)
		if err != nil {
			return err
		}
	}
	g, err := graphio.ImportFile(graphPath)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", graphPath, err)
	}

	d, err := drawingFromDoc(g, doc)
	if err != nil {
		return fmt.Errorf("rebuild drawing: %w", err)
	}

	length := shortestpath.EdgeLengths(g)
	m, err := shortestpath.NewFullMatrix(g, length)
	if err != nil {
		return fmt.Errorf("shortest paths: %w", err)
	}

	stress := quality.Stress(d, m)
	edgeErr := quality.IdealEdgeLengths(g, d, length)

	printInfo("Layout quality for %s", layoutFile)
	printNewline()
	printKeyValue("Geometry", doc.Geometry)
	printKeyValue("Dimension", fmt.Sprintf("%d", doc.Dimension))
	printKeyValue("Nodes", fmt.Sprintf("%d", g.NodeCount()))
	printKeyValue("Edges", fmt.Sprintf("%d", g.EdgeCount()))
	printKeyValue("Stress", fmt.Sprintf("%.6g", stress))
	printKeyValue("Edge length err", fmt.Sprintf("%.6g", edgeErr))

	return nil
}

// drawingFromDoc rebuilds a drawing from a layout document, placing each
// position at the node's index in g so distances line up with the
// shortest-path matrix. Node sets must match exactly.
func drawingFromDoc(g *graph.Graph, doc graphio.LayoutDoc) (drawing.Drawing, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if len(doc.Nodes) != g.NodeCount() {
		return nil, fmt.Errorf("layout has %d nodes, graph has %d", len(doc.Nodes), g.NodeCount())
	}

	n := g.NodeCount()
	var d drawing.Drawing
	switch doc.Geometry {
	case drawing.GeometryEuclidean:
		if doc.Dimension == 2 {
			d = drawing.NewEuclidean2D(n)
		} else {
			e, err := drawing.NewEuclidean(n, doc.Dimension)
			if err != nil {
				return nil, err
			}
			d = e
		}
	case drawing.GeometryHyperbolic:
		d = drawing.NewHyperbolic2D(n)
	case drawing.GeometrySpherical:
		d = drawing.NewSpherical2D(n)
	case drawing.GeometryTorus:
		d = drawing.NewTorus2D(n)
	default:
		return nil, fmt.Errorf("unknown geometry %q", doc.Geometry)
	}

	index := make(map[string]int, n)
	for _, u := range g.NodeIndices() {
		node, err := g.Node(u)
		if err != nil {
			return nil, err
		}
		index[node.ID] = int(u)
	}
	for i, id := range doc.Nodes {
		u, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("layout node %q not in graph", id)
		}
		if err := d.Set(u, doc.Positions[i]); err != nil {
			return nil, err
		}
	}
	return d, nil
}
