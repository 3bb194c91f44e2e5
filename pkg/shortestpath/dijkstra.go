package shortestpath

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/sgdraw/pkg/graph"
)

var (
	// ErrInvalidSource is returned when a requested source node does not
	// exist in the graph.
	ErrInvalidSource = errors.New("invalid source node")

	// ErrInvalidLength is returned when a [LengthFunc] yields a negative
	// or NaN length for some edge.
	ErrInvalidLength = errors.New("edge length must be non-negative")
)

// LengthFunc reports the traversal length of an edge. Returning +Inf marks
// the edge as impassable.
type LengthFunc func(e graph.EdgeIndex) float64

// EdgeLengths reads the length stored on each edge of g.
func EdgeLengths(g *graph.Graph) LengthFunc {
	return func(e graph.EdgeIndex) float64 {
		edge, err := g.Edge(e)
		if err != nil {
			return math.NaN()
		}
		return edge.Length
	}
}

// UnitLengths treats every edge as length 1, turning distances into hop
// counts.
func UnitLengths() LengthFunc {
	return func(graph.EdgeIndex) float64 { return 1 }
}

// DijkstraFrom computes the shortest distance from source to every node of
// g. The result is indexed by node index and holds +Inf for unreachable
// nodes.
func DijkstraFrom(g *graph.Graph, source graph.NodeIndex, length LengthFunc) ([]float64, error) {
	if err := validateLengths(g, length); err != nil {
		return nil, err
	}
	if !g.ContainsNode(source) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSource, source)
	}
	return dijkstra(g, source, length), nil
}

// validateLengths fails fast on negative or NaN edge lengths so the search
// loops can trust the metric.
func validateLengths(g *graph.Graph, length LengthFunc) error {
	for _, e := range g.EdgeIndices() {
		l := length(e)
		if l < 0 || math.IsNaN(l) {
			return fmt.Errorf("%w: edge %d has length %v", ErrInvalidLength, e, l)
		}
	}
	return nil
}

// dijkstra runs the search without revalidating inputs. Stale heap entries
// from the lazy decrease-key are skipped via the visited set.
func dijkstra(g *graph.Graph, source graph.NodeIndex, length LengthFunc) []float64 {
	n := g.NodeCount()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0

	visited := make([]bool, n)
	pq := make(nodeQueue, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, &queueItem{node: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*queueItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, e := range g.Neighbors(u) {
			l := length(e)
			if math.IsInf(l, 1) {
				continue
			}
			v, _ := g.Opposite(u, e)
			if next := dist[u] + l; next < dist[v] {
				dist[v] = next
				heap.Push(&pq, &queueItem{node: v, dist: next})
			}
		}
	}
	return dist
}

// queueItem pairs a node with its tentative distance for heap ordering.
type queueItem struct {
	node graph.NodeIndex
	dist float64
}

type nodeQueue []*queueItem

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)        { *q = append(*q, x.(*queueItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
