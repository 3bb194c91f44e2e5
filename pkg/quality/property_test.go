package quality

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/rng"
	"github.com/matzehuels/sgdraw/pkg/shortestpath"
)

func TestQualityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("stress is non-negative and translation invariant", prop.ForAll(
		func(n int, seed uint64, shift float64) bool {
			g := graph.New(nil)
			nodes := make([]graph.NodeIndex, n)
			for i := range nodes {
				nodes[i] = g.AddNode(graph.Node{ID: fmt.Sprint(i)})
			}
			for i := 0; i+1 < n; i++ {
				if _, err := g.AddEdge(graph.Edge{Source: nodes[i], Target: nodes[i+1], Length: 1}); err != nil {
					return false
				}
			}
			m, err := shortestpath.NewFullMatrix(g, shortestpath.EdgeLengths(g))
			if err != nil {
				return false
			}

			d := drawing.NewEuclidean2DRandom(n, rng.SeedFrom(seed))
			first := Stress(d, m)
			if math.IsNaN(first) || first < 0 {
				return false
			}
			for i := 0; i < n; i++ {
				p, err := d.Get(i)
				if err != nil {
					return false
				}
				if err := d.Set(i, []float64{p[0] + shift, p[1] - shift}); err != nil {
					return false
				}
			}
			second := Stress(d, m)
			return math.Abs(second-first) <= 1e-9*(1+first)
		},
		gen.IntRange(2, 16),
		gen.UInt64(),
		gen.Float64Range(-25, 25),
	))

	properties.TestingRun(t)
}
