// Package render turns computed layouts into images.
//
// # Overview
//
// Two render paths are provided:
//
//   - [SVG] writes a self-contained SVG directly: nodes as circles, edges
//     as lines, with a projection chosen by the layout's geometry.
//   - [ToDOT] emits Graphviz DOT with pinned positions, and [RenderSVG]
//     feeds that to the embedded Graphviz engine for its visual style.
//
// # Projections
//
// The drawing geometries map to the canvas as follows:
//
//   - euclidean: the point cloud is auto-fitted to the canvas, preserving
//     aspect. Layouts with more than two dimensions are projected onto
//     their first two coordinates.
//   - hyperbolic: the Poincaré disk fills the canvas and its boundary
//     circle is drawn.
//   - spherical: equirectangular projection, longitude across, latitude
//     down; edges crossing the date line are split.
//   - torus: the unit square fills the canvas; edges follow the minimum
//     image and are split where they wrap.
//
// # Usage
//
//	svg, err := render.SVG(g, doc, render.WithLabels())
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("layout.svg", svg, 0644)
package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
)

// Default canvas parameters.
const (
	DefaultWidth  = 800
	DefaultHeight = 800

	defaultMargin     = 40.0
	defaultNodeRadius = 6.0
)

// Option configures the SVG renderer.
type Option func(*renderer)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithLabels draws each node's ID next to its circle.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithNodeRadius sets the node circle radius in pixels.
func WithNodeRadius(radius float64) Option {
	return func(r *renderer) { r.nodeRadius = radius }
}

type renderer struct {
	width      int
	height     int
	nodeRadius float64
	labels     bool
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:      DefaultWidth,
		height:     DefaultHeight,
		nodeRadius: defaultNodeRadius,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SVG renders a layout document as a standalone SVG image. The document's
// position rows must line up with the graph's node indices, which holds
// for any document the pipeline exported from the same graph.
func SVG(g *graph.Graph, doc graphio.LayoutDoc, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	pts, err := planePoints(g, doc)
	if err != nil {
		return nil, err
	}
	proj, err := newProjection(doc.Geometry, pts, float64(r.width), float64(r.height), defaultMargin)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		r.width, r.height, r.width, r.height)

	if proj.clipped() {
		fmt.Fprintf(&buf, `  <defs><clipPath id="frame"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath></defs>`+"\n",
			proj.frameX, proj.frameY, proj.frameW, proj.frameH)
	}
	proj.renderFrame(&buf)

	renderEdges(&buf, g, pts, proj)
	renderNodes(&buf, &r, g, pts, proj)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// planePoints extracts one 2D point per node from the document, checking
// that the document belongs to the graph.
func planePoints(g *graph.Graph, doc graphio.LayoutDoc) ([]point, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if len(doc.Positions) != g.NodeCount() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"layout has %d positions for a graph with %d nodes", len(doc.Positions), g.NodeCount())
	}

	pts := make([]point, len(doc.Positions))
	for i, row := range doc.Positions {
		pts[i].x = row[0]
		if len(row) > 1 {
			pts[i].y = row[1]
		}
	}
	return pts, nil
}

func renderEdges(buf *bytes.Buffer, g *graph.Graph, pts []point, proj *projection) {
	if proj.clipped() {
		buf.WriteString(`  <g clip-path="url(#frame)">` + "\n")
	}
	for _, e := range g.EdgeIndices() {
		u, v, err := g.EdgeEndpoints(e)
		if err != nil {
			continue
		}
		for _, s := range proj.edgeSegments(pts[int(u)], pts[int(v)]) {
			fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#999999" stroke-width="1.5"/>`+"\n",
				s.x1, s.y1, s.x2, s.y2)
		}
	}
	if proj.clipped() {
		buf.WriteString("  </g>\n")
	}
}

func renderNodes(buf *bytes.Buffer, r *renderer, g *graph.Graph, pts []point, proj *projection) {
	for _, p := range pts {
		c := proj.toCanvas(p)
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.1f" fill="#4c78a8" stroke="white" stroke-width="1"/>`+"\n",
			c.x, c.y, r.nodeRadius)
	}
	if !r.labels {
		return
	}
	for i, p := range pts {
		n, err := g.Node(graph.NodeIndex(i))
		if err != nil {
			continue
		}
		c := proj.toCanvas(p)
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="11" fill="#333333">%s</text>`+"\n",
			c.x+r.nodeRadius+2, c.y+4, escapeText(n.DisplayLabel()))
	}
}

// escapeText makes a node label safe to embed in SVG text content.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
