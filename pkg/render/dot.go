package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
)

// ============================================================================
// GRAPHVIZ EXPORT
// ============================================================================

// ToDOT converts a graph and its layout to Graphviz DOT with every node
// pinned at its computed position. The neato engine honors the pins, so
// rendering the DOT reproduces the layout with Graphviz's visual style.
//
// Positions go through the same projection as [SVG], then into Graphviz
// point units. Edges on the periodic geometries are drawn straight between
// the projected endpoints; use [SVG] when wrapped edges matter.
func ToDOT(g *graph.Graph, doc graphio.LayoutDoc) (string, error) {
	pts, err := planePoints(g, doc)
	if err != nil {
		return "", err
	}
	proj, err := newProjection(doc.Geometry, pts, DefaultWidth, DefaultHeight, defaultMargin)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#4c78a8\", fontcolor=white, fontsize=12, fixedsize=true, width=0.4];\n")
	buf.WriteString("  edge [color=\"#999999\"];\n")
	buf.WriteString("\n")

	for i, pt := range pts {
		n, err := g.Node(graph.NodeIndex(i))
		if err != nil {
			return "", err
		}
		c := proj.toCanvas(pt)
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.2f,%.2f!\"];\n",
			n.ID, n.DisplayLabel(), c.x, float64(DefaultHeight)-c.y)
	}

	buf.WriteString("\n")
	for _, e := range g.EdgeIndices() {
		u, v, err := g.EdgeEndpoints(e)
		if err != nil {
			return "", err
		}
		nu, err := g.Node(u)
		if err != nil {
			return "", err
		}
		nv, err := g.Node(v)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", nu.ID, nv.ID)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
// Returns the SVG bytes ready for display or further conversion with
// [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz viewBox to start at the origin.
// Graphviz offsets its viewBox by the page translation, which trips up
// some SVG embedders.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
