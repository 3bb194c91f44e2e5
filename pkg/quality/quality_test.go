package quality

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/layout/sgd"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// buildPath returns a path graph with the given edge lengths.
func buildPath(t *testing.T, lengths ...float64) *graph.Graph {
	t.Helper()
	g := graph.New(nil)
	prev := g.AddNode(graph.Node{ID: "0"})
	for i, l := range lengths {
		next := g.AddNode(graph.Node{ID: fmt.Sprint(i + 1)})
		if _, err := g.AddEdge(graph.Edge{Source: prev, Target: next, Length: l}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
		prev = next
	}
	return g
}

// buildGrid returns a rows x cols grid graph with unit edge lengths.
func buildGrid(t *testing.T, rows, cols int) *graph.Graph {
	t.Helper()
	g := graph.New(nil)
	for i := 0; i < rows*cols; i++ {
		g.AddNode(graph.Node{ID: fmt.Sprint(i)})
	}
	addEdge := func(u, v graph.NodeIndex) {
		if _, err := g.AddEdge(graph.Edge{Source: u, Target: v, Length: 1}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := graph.NodeIndex(r*cols + c)
			if c+1 < cols {
				addEdge(u, u+1)
			}
			if r+1 < rows {
				addEdge(u, graph.NodeIndex((r+1)*cols+c))
			}
		}
	}
	return g
}

// place overwrites the first len(coords) rows of d.
func place(t *testing.T, d drawing.Drawing, coords ...[]float64) {
	t.Helper()
	for i, c := range coords {
		if err := d.Set(i, c); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
	}
}

func TestStressExactDrawingIsZero(t *testing.T) {
	g := buildPath(t, 1, 1)
	m, err := shortestpath.NewFullMatrix(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFullMatrix: %v", err)
	}
	d := drawing.NewEuclidean2D(3)
	place(t, d, []float64{0, 0}, []float64{1, 0}, []float64{2, 0})

	if got := Stress(d, m); got != 0 {
		t.Errorf("Stress() = %v, want 0", got)
	}
}

func TestStressHandComputed(t *testing.T) {
	g := buildPath(t, 1, 1)
	m, err := shortestpath.NewFullMatrix(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFullMatrix: %v", err)
	}

	// Only the 0-2 pair misses its target: drawn sqrt(2) against 2.
	d := drawing.NewEuclidean2D(3)
	place(t, d, []float64{0, 0}, []float64{1, 0}, []float64{1, 1})

	want := (math.Sqrt2 - 2) / 2
	want *= want
	if got := Stress(d, m); math.Abs(got-want) > 1e-12 {
		t.Errorf("Stress() = %v, want %v", got, want)
	}
}

func TestStressSkipsUnreachablePairs(t *testing.T) {
	g := graph.New(nil)
	var n [4]graph.NodeIndex
	for i := range n {
		n[i] = g.AddNode(graph.Node{ID: fmt.Sprint(i)})
	}
	for _, e := range [][2]int{{0, 1}, {2, 3}} {
		if _, err := g.AddEdge(graph.Edge{Source: n[e[0]], Target: n[e[1]], Length: 1}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	m, err := shortestpath.NewFullMatrix(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFullMatrix: %v", err)
	}

	// Both components are drawn exactly; cross-component pairs are
	// unreachable and must not poison the sum.
	d := drawing.NewEuclidean2D(4)
	place(t, d, []float64{0, 0}, []float64{1, 0}, []float64{5, 0}, []float64{6, 0})

	if got := Stress(d, m); got != 0 {
		t.Errorf("Stress() = %v, want 0", got)
	}
}

func TestStressSubMatrixCountsPairsOnce(t *testing.T) {
	g := buildPath(t, 1, 1)
	full, err := shortestpath.NewFullMatrix(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFullMatrix: %v", err)
	}
	sub, err := shortestpath.NewSubMatrix(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewSubMatrix: %v", err)
	}
	// Sources out of index order, so rows 0 and 1 describe nodes 2 and 0.
	for _, u := range []graph.NodeIndex{2, 0} {
		if _, err := sub.AddSource(u); err != nil {
			t.Fatalf("AddSource(%d): %v", u, err)
		}
	}

	d := drawing.NewEuclidean2D(3)
	place(t, d, []float64{0, 0}, []float64{1, 0}, []float64{1, 1})

	// On a three-node path two sources already cover every unordered pair,
	// so the sub-matrix score must equal the full one.
	got, want := Stress(d, sub), Stress(d, full)
	if want == 0 {
		t.Fatalf("Stress(full) = 0, want a distorted drawing")
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Stress(sub) = %v, want %v (full)", got, want)
	}
}

func TestIdealEdgeLengthsExactDrawingIsZero(t *testing.T) {
	g := buildPath(t, 1, 2)
	d := drawing.NewEuclidean2D(3)
	place(t, d, []float64{0, 0}, []float64{1, 0}, []float64{3, 0})

	if got := IdealEdgeLengths(g, d, shortestpath.EdgeLengths(g)); got != 0 {
		t.Errorf("IdealEdgeLengths() = %v, want 0", got)
	}
}

func TestIdealEdgeLengthsHandComputed(t *testing.T) {
	g := buildPath(t, 1, 2)

	// First edge drawn at twice its target, second at half: (1 + 0.5) / 2.
	d := drawing.NewEuclidean2D(3)
	place(t, d, []float64{0, 0}, []float64{2, 0}, []float64{3, 0})

	if got := IdealEdgeLengths(g, d, shortestpath.EdgeLengths(g)); got != 0.75 {
		t.Errorf("IdealEdgeLengths() = %v, want 0.75", got)
	}
}

func TestIdealEdgeLengthsSkipsUnusableTargets(t *testing.T) {
	g := buildPath(t, 0, 2)
	d := drawing.NewEuclidean2D(3)
	place(t, d, []float64{0, 0}, []float64{2, 0}, []float64{3, 0})

	tests := []struct {
		name   string
		length shortestpath.LengthFunc
		want   float64
	}{
		{"stored zero length", shortestpath.EdgeLengths(g), 0.5},
		{"impassable edge", func(e graph.EdgeIndex) float64 {
			if e == 0 {
				return math.Inf(1)
			}
			return 2
		}, 0.5},
		{"no usable edge", func(graph.EdgeIndex) float64 { return 0 }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdealEdgeLengths(g, d, tt.length); got != tt.want {
				t.Errorf("IdealEdgeLengths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdealEdgeLengthsNoEdges(t *testing.T) {
	g := graph.New(nil)
	g.AddNode(graph.Node{ID: "a"})
	d := drawing.NewEuclidean2D(1)

	if got := IdealEdgeLengths(g, d, shortestpath.UnitLengths()); got != 0 {
		t.Errorf("IdealEdgeLengths() = %v, want 0", got)
	}
}

func TestStressDecreasesUnderSparseLayout(t *testing.T) {
	g := buildGrid(t, 5, 6)
	m, err := shortestpath.NewFullMatrix(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFullMatrix: %v", err)
	}

	r := rng.SeedFrom(7)
	d := drawing.NewEuclidean2DRandom(g.NodeCount(), r)
	before := Stress(d, m)

	s, err := sgd.NewSparse(g, shortestpath.EdgeLengths(g), 5, r)
	if err != nil {
		t.Fatalf("NewSparse: %v", err)
	}
	sched, err := s.SchedulerExponential(30, sgd.DefaultEpsilon)
	if err != nil {
		t.Fatalf("SchedulerExponential: %v", err)
	}
	sched.Run(func(eta float64) {
		s.Shuffle(r)
		s.Apply(d, eta)
	})

	after := Stress(d, m)
	if math.IsNaN(after) || math.IsInf(after, 0) {
		t.Fatalf("Stress() after layout = %v, want finite", after)
	}
	if after >= before {
		t.Errorf("Stress() after layout = %v, want below initial %v", after, before)
	}
}
