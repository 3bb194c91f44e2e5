package sgd

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

// buildPath constructs a path graph whose i-th edge has the i-th length.
func buildPath(t *testing.T, lengths ...float64) *graph.Graph {
	t.Helper()
	g := graph.New(nil)
	prev := g.AddNode(graph.Node{ID: "0"})
	for i, l := range lengths {
		next := g.AddNode(graph.Node{ID: fmt.Sprint(i + 1)})
		if _, err := g.AddEdge(graph.Edge{Source: prev, Target: next, Length: l}); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", prev, next, err)
		}
		prev = next
	}
	return g
}

func TestNewFullPairSet(t *testing.T) {
	g := buildPath(t, 1, 2)

	s, err := NewFull(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFull: %v", err)
	}

	want := []NodePair{
		symmetricPair(0, 1, 1, 1),
		symmetricPair(0, 2, 3, 1.0/9),
		symmetricPair(1, 2, 2, 0.25),
	}
	got := s.NodePairs()
	if len(got) != len(want) {
		t.Fatalf("NewFull produced %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNewFullDropsUnreachablePairs(t *testing.T) {
	g := graph.New(nil)
	a := g.AddNode(graph.Node{ID: "a"})
	b := g.AddNode(graph.Node{ID: "b"})
	g.AddNode(graph.Node{ID: "isolated"})
	if _, err := g.AddEdge(graph.Edge{Source: a, Target: b, Length: 1}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	s, err := NewFull(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFull: %v", err)
	}
	got := s.NodePairs()
	if len(got) != 1 {
		t.Fatalf("NewFull kept %d pairs, want 1 (pairs with the isolated node dropped)", len(got))
	}
	if got[0] != symmetricPair(0, 1, 1, 1) {
		t.Errorf("surviving pair = %+v, want %+v", got[0], symmetricPair(0, 1, 1, 1))
	}
}

func TestNewFullInvalidLength(t *testing.T) {
	g := buildPath(t, -1)
	_, err := NewFull(g, shortestpath.EdgeLengths(g))
	if !errors.Is(err, shortestpath.ErrInvalidLength) {
		t.Errorf("NewFull error = %v, want %v", err, shortestpath.ErrInvalidLength)
	}
}

func TestNewFullWithMatrix(t *testing.T) {
	g := buildPath(t, 1, 1, 1)
	m, err := shortestpath.NewFullMatrix(g, shortestpath.UnitLengths())
	if err != nil {
		t.Fatalf("NewFullMatrix: %v", err)
	}

	s := NewFullWithMatrix(m)
	got := s.NodePairs()
	if len(got) != 6 {
		t.Fatalf("NewFullWithMatrix produced %d pairs, want 6", len(got))
	}
	// The farthest pair spans the whole path.
	end := symmetricPair(0, 3, 3, 1.0/9)
	if got[3] != end {
		t.Errorf("pair 3 = %+v, want %+v", got[3], end)
	}
	wantMax := 1 / (1.0 / 9) // reciprocal of the lightest weight
	if gotMin, gotMax := s.EtaBounds(); gotMin != DefaultEpsilon || gotMax != wantMax {
		t.Errorf("EtaBounds() = (%v, %v), want (%v, %v)", gotMin, gotMax, DefaultEpsilon, wantMax)
	}
}

func TestFullPathLayoutOrdersNodes(t *testing.T) {
	g := buildPath(t, 1, 1, 1)
	s, err := NewFull(g, shortestpath.EdgeLengths(g))
	if err != nil {
		t.Fatalf("NewFull: %v", err)
	}
	d := drawing.NewEuclidean2D(g.NodeCount())
	sched, err := s.SchedulerExponential(100, DefaultEpsilon)
	if err != nil {
		t.Fatalf("SchedulerExponential: %v", err)
	}
	r := rng.SeedFrom(42)
	sched.Run(func(eta float64) {
		s.Shuffle(r)
		s.Apply(d, eta)
	})

	var xs, ys []float64
	for u := 0; u < g.NodeCount(); u++ {
		p, err := d.Get(u)
		if err != nil {
			t.Fatalf("Get(%d): %v", u, err)
		}
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Fatalf("node %d has non-finite coordinates %v", u, p)
			}
		}
		xs = append(xs, p[0])
		ys = append(ys, p[1])
	}

	// The layout straightens the path, so along the axis with the larger
	// spread the nodes appear in path order, up to reflection.
	proj := xs
	if spread(ys) > spread(xs) {
		proj = ys
	}
	asc, desc := true, true
	for i := 1; i < len(proj); i++ {
		if proj[i] <= proj[i-1] {
			asc = false
		}
		if proj[i] >= proj[i-1] {
			desc = false
		}
	}
	if !asc && !desc {
		t.Errorf("projected positions %v are not monotone in path order", proj)
	}
}

func spread(v []float64) float64 {
	lo, hi := v[0], v[0]
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return hi - lo
}
