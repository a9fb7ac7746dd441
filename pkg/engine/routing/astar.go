package routing

import (
	"github.com/jalur-dev/jalur/pkg"
	da "github.com/jalur-dev/jalur/pkg/datastructure"
	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"github.com/jalur-dev/jalur/pkg/util"
)

// AStar is a single-query best-first search over a Graph, ordered by
// distance-so-far plus great-circle estimate to the target. The heuristic
// never exceeds the remaining road distance, so the first settled target is
// optimal.
type AStar struct {
	g Graph

	dist    []float64
	parent  []roadnetwork.Index
	settled []bool

	pq      *da.MinHeap[roadnetwork.Index]
	pqNodes map[roadnetwork.Index]*da.PriorityQueueNode[roadnetwork.Index]

	numSettledNodes int
}

func NewAStar(g Graph) *AStar {
	n := g.NumberOfVertices()

	dist := make([]float64, n)
	parent := make([]roadnetwork.Index, n)
	for i := 0; i < n; i++ {
		dist[i] = pkg.INF_WEIGHT
		parent[i] = roadnetwork.INVALID_VERTEX_ID
	}

	return &AStar{
		g:       g,
		dist:    dist,
		parent:  parent,
		settled: make([]bool, n),
		pq:      da.NewFourAryHeap[roadnetwork.Index](),
		pqNodes: make(map[roadnetwork.Index]*da.PriorityQueueNode[roadnetwork.Index]),
	}
}

// ShortestPath runs the search from source to target and returns the vertex
// sequence and its total weight. ErrNoPathFound when the frontier empties
// before the target settles.
func (as *AStar) ShortestPath(source, target roadnetwork.Index) ([]roadnetwork.Index, float64, error) {
	targetLat, targetLon := as.g.GetVertexCoordinates(target)

	heuristic := func(v roadnetwork.Index) float64 {
		lat, lon := as.g.GetVertexCoordinates(v)
		return geo.CalculateHaversineDistance(lat, lon, targetLat, targetLon)
	}

	as.dist[source] = 0
	sourceNode := da.NewPriorityQueueNode(heuristic(source), source)
	as.pqNodes[source] = sourceNode
	as.pq.Insert(sourceNode)

	for !as.pq.IsEmpty() {
		minNode, err := as.pq.ExtractMin()
		if err != nil {
			break
		}
		u := minNode.GetItem()
		as.settled[u] = true
		as.numSettledNodes++

		if u == target {
			return as.reconstruct(source, target), as.dist[target], nil
		}

		as.g.ForOutEdgesOf(u, func(v roadnetwork.Index, length float64) {
			if as.settled[v] {
				return
			}

			newDist := as.dist[u] + length
			if newDist >= as.dist[v] {
				return
			}

			as.dist[v] = newDist
			as.parent[v] = u

			priority := newDist + heuristic(v)
			if vNode, inQueue := as.pqNodes[v]; inQueue {
				as.pq.DecreaseKey(vNode, priority)
			} else {
				vNode := da.NewPriorityQueueNode(priority, v)
				as.pqNodes[v] = vNode
				as.pq.Insert(vNode)
			}
		})
	}

	return nil, pkg.INF_WEIGHT, ErrNoPathFound
}

func (as *AStar) NumSettledNodes() int {
	return as.numSettledNodes
}

func (as *AStar) reconstruct(source, target roadnetwork.Index) []roadnetwork.Index {
	path := make([]roadnetwork.Index, 0, 16)
	for v := target; v != roadnetwork.INVALID_VERTEX_ID; v = as.parent[v] {
		path = append(path, v)
		if v == source {
			break
		}
	}
	return util.ReverseG(path)
}
