package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
)

// testTriangle builds a 3-cycle with a matching euclidean layout document.
func testTriangle(t *testing.T) (*graph.Graph, graphio.LayoutDoc) {
	t.Helper()

	g := graph.New(nil)
	a := g.AddNode(graph.Node{ID: "a"})
	b := g.AddNode(graph.Node{ID: "b"})
	c := g.AddNode(graph.Node{ID: "c"})
	for _, pair := range [][2]graph.NodeIndex{{a, b}, {b, c}, {c, a}} {
		if _, err := g.AddEdge(graph.Edge{Source: pair[0], Target: pair[1], Length: 1}); err != nil {
			t.Fatalf("AddEdge() error: %v", err)
		}
	}

	doc := graphio.LayoutDoc{
		Geometry:  "euclidean",
		Dimension: 2,
		Nodes:     []string{"a", "b", "c"},
		Positions: [][]float64{{0, 0}, {1, 0}, {0.5, 0.8}},
	}
	return g, doc
}

func TestSVG(t *testing.T) {
	g, doc := testTriangle(t)

	svg, err := SVG(g, doc)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}

	out := string(svg)
	if !strings.HasPrefix(out, "<svg ") {
		t.Errorf("SVG() output does not start with an svg tag")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Errorf("SVG() output does not end with </svg>")
	}
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("circle count = %d, want 3", got)
	}
	if got := strings.Count(out, "<line"); got != 3 {
		t.Errorf("line count = %d, want 3", got)
	}
	if strings.Contains(out, "<text") {
		t.Errorf("SVG() rendered labels without WithLabels")
	}
}

func TestSVGWithSize(t *testing.T) {
	g, doc := testTriangle(t)

	svg, err := SVG(g, doc, WithSize(400, 300))
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `viewBox="0 0 400 300"`) {
		t.Errorf("SVG() viewBox does not match requested size")
	}
}

func TestSVGWithLabels(t *testing.T) {
	g, doc := testTriangle(t)

	svg, err := SVG(g, doc, WithLabels())
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}

	out := string(svg)
	if got := strings.Count(out, "<text"); got != 3 {
		t.Errorf("text count = %d, want 3", got)
	}
	if !strings.Contains(out, ">a</text>") {
		t.Errorf("SVG() output missing label for node a")
	}
}

func TestSVGGeometries(t *testing.T) {
	tests := []struct {
		geometry  string
		positions [][]float64
		frame     string
	}{
		{"euclidean", [][]float64{{0, 0}, {1, 0}, {0.5, 0.8}}, ""},
		{"hyperbolic", [][]float64{{0, 0}, {0.5, 0}, {0, 0.5}}, `fill="none"`},
		{"spherical", [][]float64{{0, 0}, {1, 0.5}, {-1, -0.5}}, "<rect"},
		{"torus", [][]float64{{0.1, 0.1}, {0.5, 0.5}, {0.6, 0.2}}, "<rect"},
	}

	for _, tt := range tests {
		t.Run(tt.geometry, func(t *testing.T) {
			g, doc := testTriangle(t)
			doc.Geometry = tt.geometry
			doc.Positions = tt.positions

			svg, err := SVG(g, doc)
			if err != nil {
				t.Fatalf("SVG() error: %v", err)
			}

			out := string(svg)
			if got := strings.Count(out, "<line"); got < 3 {
				t.Errorf("line count = %d, want at least 3", got)
			}
			if tt.frame != "" && !strings.Contains(out, tt.frame) {
				t.Errorf("SVG() output missing frame marker %q", tt.frame)
			}
		})
	}
}

func TestSVGHyperbolicBoundary(t *testing.T) {
	g, doc := testTriangle(t)
	doc.Geometry = "hyperbolic"
	doc.Positions = [][]float64{{0, 0}, {0.5, 0}, {0, 0.5}}

	svg, err := SVG(g, doc)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}

	// Three node circles plus the disk boundary.
	if got := strings.Count(string(svg), "<circle"); got != 4 {
		t.Errorf("circle count = %d, want 4", got)
	}
}

func TestSVGTorusWrappedEdge(t *testing.T) {
	g := graph.New(nil)
	a := g.AddNode(graph.Node{ID: "a"})
	b := g.AddNode(graph.Node{ID: "b"})
	if _, err := g.AddEdge(graph.Edge{Source: a, Target: b, Length: 1}); err != nil {
		t.Fatalf("AddEdge() error: %v", err)
	}
	doc := graphio.LayoutDoc{
		Geometry:  "torus",
		Dimension: 2,
		Nodes:     []string{"a", "b"},
		Positions: [][]float64{{0.05, 0.5}, {0.95, 0.5}},
	}

	svg, err := SVG(g, doc)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}

	out := string(svg)
	// The edge wraps across the vertical seam and is drawn as two pieces.
	if got := strings.Count(out, "<line"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	if !strings.Contains(out, "clip-path") {
		t.Errorf("SVG() torus output missing clip group")
	}
}

func TestSVGSphericalDateLine(t *testing.T) {
	g := graph.New(nil)
	a := g.AddNode(graph.Node{ID: "a"})
	b := g.AddNode(graph.Node{ID: "b"})
	if _, err := g.AddEdge(graph.Edge{Source: a, Target: b, Length: 1}); err != nil {
		t.Fatalf("AddEdge() error: %v", err)
	}
	doc := graphio.LayoutDoc{
		Geometry:  "spherical",
		Dimension: 2,
		Nodes:     []string{"a", "b"},
		Positions: [][]float64{{3.0, 0}, {-3.0, 0}},
	}

	svg, err := SVG(g, doc)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}

	// The short way between lon 3.0 and lon -3.0 crosses the date line.
	if got := strings.Count(string(svg), "<line"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	g := graph.New(nil)
	g.AddNode(graph.Node{ID: "a<b&c"})
	doc := graphio.LayoutDoc{
		Geometry:  "euclidean",
		Dimension: 2,
		Nodes:     []string{"a<b&c"},
		Positions: [][]float64{{0, 0}},
	}

	svg, err := SVG(g, doc, WithLabels())
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "a&lt;b&amp;c") {
		t.Errorf("SVG() output did not escape label markup")
	}
}

func TestSVGPositionCountMismatch(t *testing.T) {
	g, _ := testTriangle(t)
	doc := graphio.LayoutDoc{
		Geometry:  "euclidean",
		Dimension: 2,
		Nodes:     []string{"a", "b"},
		Positions: [][]float64{{0, 0}, {1, 0}},
	}

	if _, err := SVG(g, doc); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SVG() error = %v, want code %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestSVGUnknownGeometry(t *testing.T) {
	g, doc := testTriangle(t)
	doc.Geometry = "klein-bottle"

	if _, err := SVG(g, doc); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("SVG() error = %v, want code %s", err, errors.ErrCodeInvalidGeometry)
	}
}

func TestToDOT(t *testing.T) {
	g, doc := testTriangle(t)

	dot, err := ToDOT(g, doc)
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("ToDOT() output does not start an undirected graph")
	}
	if !strings.Contains(dot, "layout=neato;") {
		t.Errorf("ToDOT() output missing neato layout attribute")
	}
	for _, want := range []string{`"a" [`, `"b" [`, `"c" [`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing node statement %q", want)
		}
	}
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
	if got := strings.Count(dot, `!"`); got != 3 {
		t.Errorf("pinned position count = %d, want 3", got)
	}
}

func TestToDOTUnknownGeometry(t *testing.T) {
	g, doc := testTriangle(t)
	doc.Geometry = "klein-bottle"

	if _, err := ToDOT(g, doc); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("ToDOT() error = %v, want code %s", err, errors.ErrCodeInvalidGeometry)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := `<?xml version="1.0"?>` + "\n" +
		`<svg width="100pt" height="50pt" viewBox="10.00 20.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">` +
		"\n<g></g>\n</svg>"

	out := string(normalizeViewBox([]byte(in)))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("normalizeViewBox() viewBox = %s, want origin at 0 0", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() did not rewrite width and height")
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg"><g></g></svg>`

	if out := string(normalizeViewBox([]byte(in))); out != in {
		t.Errorf("normalizeViewBox() = %s, want input unchanged", out)
	}
}
