package routing

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
)

// buildNetwork places node ids on a tight coordinate cluster so that the
// great-circle estimate between any two nodes stays below the assigned edge
// lengths, keeping the heuristic admissible for hand-picked weights.
func buildNetwork(t *testing.T, nodes []roadnetwork.NodeCoord, edges []roadnetwork.EdgeSpec) *roadnetwork.RoadNetwork {
	t.Helper()
	g, err := roadnetwork.New(nodes, edges, nil)
	if err != nil {
		t.Fatalf("build network: %v", err)
	}
	return g
}

func clusterNode(id int64, row, col int) roadnetwork.NodeCoord {
	// ~1m spacing
	return roadnetwork.NodeCoord{
		ID:  id,
		Lat: 3.1390 + float64(row)*0.000009,
		Lon: 101.6869 + float64(col)*0.000009,
	}
}

func diamondNetwork(t *testing.T) *roadnetwork.RoadNetwork {
	t.Helper()
	// A=1 B=2 C=3 D=4; A->B->D costs 20, A->C->D costs 10
	return buildNetwork(t,
		[]roadnetwork.NodeCoord{
			clusterNode(1, 0, 0),
			clusterNode(2, 1, 0),
			clusterNode(3, 0, 1),
			clusterNode(4, 1, 1),
		},
		[]roadnetwork.EdgeSpec{
			{From: 1, To: 2, Length: 10, HasLength: true},
			{From: 2, To: 4, Length: 10, HasLength: true},
			{From: 1, To: 3, Length: 5, HasLength: true},
			{From: 3, To: 4, Length: 5, HasLength: true},
		})
}

func indexOf(t *testing.T, g *roadnetwork.RoadNetwork, id int64) roadnetwork.Index {
	t.Helper()
	idx, ok := g.GetVertexIndex(id)
	if !ok {
		t.Fatalf("node %d not in network", id)
	}
	return idx
}

func TestAStarPicksCheaperBranch(t *testing.T) {
	g := diamondNetwork(t)
	a, c, d := indexOf(t, g, 1), indexOf(t, g, 3), indexOf(t, g, 4)

	path, weight, err := NewAStar(g).ShortestPath(a, d)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if math.Abs(weight-10) > 1e-9 {
		t.Errorf("weight = %f, want 10", weight)
	}
	want := []roadnetwork.Index{a, c, d}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
}

func TestAStarSourceEqualsTarget(t *testing.T) {
	g := diamondNetwork(t)
	a := indexOf(t, g, 1)

	path, weight, err := NewAStar(g).ShortestPath(a, a)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if weight != 0 {
		t.Errorf("weight = %f, want 0", weight)
	}
	if len(path) != 1 || path[0] != a {
		t.Errorf("path = %v, want [%d]", path, a)
	}
}

func TestAStarUnreachableOnDirectedGraph(t *testing.T) {
	// one-way 1->2 only: 2 cannot reach 1 in the directed phase
	g := buildNetwork(t,
		[]roadnetwork.NodeCoord{clusterNode(1, 0, 0), clusterNode(2, 1, 0)},
		[]roadnetwork.EdgeSpec{{From: 1, To: 2, Length: 50, HasLength: true}})

	n1, n2 := indexOf(t, g, 1), indexOf(t, g, 2)
	if _, _, err := NewAStar(g).ShortestPath(n2, n1); err != ErrNoPathFound {
		t.Errorf("got %v, want ErrNoPathFound", err)
	}
}

// gridNetwork builds a rows x cols lattice with directed edges both ways
// between neighbors, weighted at or above the great-circle distance by a
// deterministic pseudo-random factor.
func gridNetwork(t *testing.T, rows, cols int, seed int64) *roadnetwork.RoadNetwork {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	nodes := make([]roadnetwork.NodeCoord, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			nodes = append(nodes, roadnetwork.NodeCoord{
				ID:  int64(r*cols + c),
				Lat: 3.1390 + float64(r)*0.001,
				Lon: 101.6869 + float64(c)*0.001,
			})
		}
	}

	var edges []roadnetwork.EdgeSpec
	link := func(a, b roadnetwork.NodeCoord) {
		d := geo.CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		edges = append(edges,
			roadnetwork.EdgeSpec{From: a.ID, To: b.ID, Length: d * (1 + rng.Float64()), HasLength: true},
			roadnetwork.EdgeSpec{From: b.ID, To: a.ID, Length: d * (1 + rng.Float64()), HasLength: true})
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				link(nodes[r*cols+c], nodes[r*cols+c+1])
			}
			if r+1 < rows {
				link(nodes[r*cols+c], nodes[(r+1)*cols+c])
			}
		}
	}

	return buildNetwork(t, nodes, edges)
}

func TestAStarMatchesDijkstra(t *testing.T) {
	g := gridNetwork(t, 6, 6, 42)

	pairs := [][2]int64{{0, 35}, {5, 30}, {14, 21}, {0, 1}, {35, 0}}
	for _, p := range pairs {
		t.Run(fmt.Sprintf("%d_to_%d", p[0], p[1]), func(t *testing.T) {
			src, dst := indexOf(t, g, p[0]), indexOf(t, g, p[1])

			_, astarWeight, err := NewAStar(g).ShortestPath(src, dst)
			if err != nil {
				t.Fatalf("astar: %v", err)
			}
			_, dijkstraWeight, err := NewDijkstra(g).ShortestPath(src, dst)
			if err != nil {
				t.Fatalf("dijkstra: %v", err)
			}

			if math.Abs(astarWeight-dijkstraWeight) > 1e-6 {
				t.Errorf("astar %f vs dijkstra %f", astarWeight, dijkstraWeight)
			}
		})
	}
}

func TestAStarPathIsConnected(t *testing.T) {
	g := gridNetwork(t, 10, 10, 7)
	src, dst := indexOf(t, g, 0), indexOf(t, g, 99)

	astar := NewAStar(g)
	path, weight, err := astar.ShortestPath(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if path[0] != src || path[len(path)-1] != dst {
		t.Fatalf("path endpoints %d..%d, want %d..%d", path[0], path[len(path)-1], src, dst)
	}
	if astar.NumSettledNodes() == 0 {
		t.Error("no nodes settled")
	}

	// every consecutive pair is a real edge and the weights add up
	sum := 0.0
	for i := 0; i+1 < len(path); i++ {
		length, ok := g.MinEdgeLength(path[i], path[i+1])
		if !ok {
			t.Fatalf("path pair %d->%d has no edge", path[i], path[i+1])
		}
		sum += length
	}
	if math.Abs(sum-weight) > 1e-6 {
		t.Errorf("edge sum %f vs reported weight %f", sum, weight)
	}
}
