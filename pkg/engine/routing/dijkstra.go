package routing

import (
	"github.com/jalur-dev/jalur/pkg"
	da "github.com/jalur-dev/jalur/pkg/datastructure"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
)

// Dijkstra single-source shortest paths over a Graph. The plain reference
// search: eval tooling and tests compare A* results against it.
type Dijkstra struct {
	g Graph

	dist   []float64
	parent []roadnetwork.Index

	numSettledNodes int
}

func NewDijkstra(g Graph) *Dijkstra {
	n := g.NumberOfVertices()

	dist := make([]float64, n)
	parent := make([]roadnetwork.Index, n)
	for i := 0; i < n; i++ {
		dist[i] = pkg.INF_WEIGHT
		parent[i] = roadnetwork.INVALID_VERTEX_ID
	}

	return &Dijkstra{g: g, dist: dist, parent: parent}
}

// ShortestPathTree settles every vertex reachable from source and returns the
// distance slice, pkg.INF_WEIGHT for unreachable vertices.
func (d *Dijkstra) ShortestPathTree(source roadnetwork.Index) []float64 {
	settled := make([]bool, d.g.NumberOfVertices())
	pqNodes := make(map[roadnetwork.Index]*da.PriorityQueueNode[roadnetwork.Index])

	pq := da.NewFourAryHeap[roadnetwork.Index]()
	d.dist[source] = 0
	sourceNode := da.NewPriorityQueueNode(0, source)
	pqNodes[source] = sourceNode
	pq.Insert(sourceNode)

	for !pq.IsEmpty() {
		minNode, err := pq.ExtractMin()
		if err != nil {
			break
		}
		u := minNode.GetItem()
		settled[u] = true
		d.numSettledNodes++

		d.g.ForOutEdgesOf(u, func(v roadnetwork.Index, length float64) {
			if settled[v] {
				return
			}
			newDist := d.dist[u] + length
			if newDist >= d.dist[v] {
				return
			}
			d.dist[v] = newDist
			d.parent[v] = u

			if vNode, inQueue := pqNodes[v]; inQueue {
				pq.DecreaseKey(vNode, newDist)
			} else {
				vNode := da.NewPriorityQueueNode(newDist, v)
				pqNodes[v] = vNode
				pq.Insert(vNode)
			}
		})
	}

	return d.dist
}

// ShortestPath returns the optimal vertex sequence from source to target.
func (d *Dijkstra) ShortestPath(source, target roadnetwork.Index) ([]roadnetwork.Index, float64, error) {
	d.ShortestPathTree(source)
	if d.dist[target] >= pkg.INF_WEIGHT {
		return nil, pkg.INF_WEIGHT, ErrNoPathFound
	}

	path := make([]roadnetwork.Index, 0, 16)
	for v := target; v != roadnetwork.INVALID_VERTEX_ID; v = d.parent[v] {
		path = append(path, v)
		if v == source {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, d.dist[target], nil
}
