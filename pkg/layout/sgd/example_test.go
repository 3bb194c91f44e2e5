package sgd_test

import (
	"fmt"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/layout/sgd"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

func ExampleNewFull() {
	// Two nodes one unit apart, drawn three units apart.
	g := graph.New(nil)
	a := g.AddNode(graph.Node{ID: "a"})
	b := g.AddNode(graph.Node{ID: "b"})
	_, _ = g.AddEdge(graph.Edge{Source: a, Target: b, Length: 1})

	d := drawing.NewEuclidean2D(g.NodeCount())
	_ = d.Set(0, []float64{0, 0})
	_ = d.Set(1, []float64{3, 0})

	s, _ := sgd.NewFull(g, shortestpath.EdgeLengths(g))
	fmt.Println("pairs:", len(s.NodePairs()))

	sched, _ := s.SchedulerExponential(15, sgd.DefaultEpsilon)
	r := rng.SeedFrom(42)
	sched.Run(func(eta float64) {
		s.Shuffle(r)
		s.Apply(d, eta)
	})

	_, dist := d.Delta(0, 1, nil)
	fmt.Printf("distance: %.2f\n", dist)
	// Output:
	// pairs: 1
	// distance: 1.00
}

func ExampleNewSparseWithPivots() {
	// A four-node path with node 0 as the only pivot.
	g := graph.New(nil)
	prev := g.AddNode(graph.Node{ID: "0"})
	for i := 1; i < 4; i++ {
		next := g.AddNode(graph.Node{ID: fmt.Sprint(i)})
		_, _ = g.AddEdge(graph.Edge{Source: prev, Target: next, Length: 1})
		prev = next
	}

	s, _ := sgd.NewSparseWithPivots(g, shortestpath.EdgeLengths(g), []graph.NodeIndex{0})
	for _, p := range s.NodePairs() {
		fmt.Printf("(%d, %d) distance %g weight %.2f\n", p.I, p.J, p.DistIJ, p.WeightIJ)
	}
	// Output:
	// (0, 1) distance 1 weight 1.00
	// (1, 2) distance 1 weight 1.00
	// (2, 3) distance 1 weight 1.00
	// (0, 2) distance 2 weight 0.50
	// (0, 3) distance 3 weight 0.22
}
