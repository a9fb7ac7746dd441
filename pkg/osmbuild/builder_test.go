package osmbuild

import (
	"testing"

	"github.com/jalur-dev/jalur/pkg/geo"
	"go.uber.org/zap"
)

func testBuilder() *Builder {
	b := NewBuilder(zap.NewNop())
	b.coords = map[int64]geo.Coordinate{
		1: geo.NewCoordinate(3.1390, 101.6869),
		2: geo.NewCoordinate(3.1400, 101.6880),
		3: geo.NewCoordinate(3.1410, 101.6890),
	}
	return b
}

func TestAssembleTwoWay(t *testing.T) {
	b := testBuilder()
	b.ways = []way{{nodes: []int64{1, 2, 3}}}

	nodes, edges := b.assemble()
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	// each segment in both directions
	if len(edges) != 4 {
		t.Fatalf("got %d edges, want 4", len(edges))
	}

	directed := map[[2]int64]bool{}
	for _, e := range edges {
		directed[[2]int64{e.From, e.To}] = true
		if !e.HasLength || e.Length <= 0 {
			t.Errorf("edge %d->%d has no geometric length", e.From, e.To)
		}
	}
	for _, want := range [][2]int64{{1, 2}, {2, 1}, {2, 3}, {3, 2}} {
		if !directed[want] {
			t.Errorf("missing edge %d->%d", want[0], want[1])
		}
	}
}

func TestAssembleOneWay(t *testing.T) {
	b := testBuilder()
	b.ways = []way{{nodes: []int64{1, 2}, oneWay: true}}

	_, edges := b.assemble()
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	if edges[0].From != 1 || edges[0].To != 2 {
		t.Errorf("edge %d->%d, want 1->2", edges[0].From, edges[0].To)
	}
}

func TestAssembleReversedOneWay(t *testing.T) {
	b := testBuilder()
	b.ways = []way{{nodes: []int64{1, 2}, oneWay: true, reverse: true}}

	_, edges := b.assemble()
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	// oneway=-1 travels against node order
	if edges[0].From != 2 || edges[0].To != 1 {
		t.Errorf("edge %d->%d, want 2->1", edges[0].From, edges[0].To)
	}
}

func TestAssembleDropsSegmentsWithMissingCoords(t *testing.T) {
	b := testBuilder()
	// node 99 never appeared in the extract's node pass
	b.ways = []way{{nodes: []int64{1, 99, 2}}}

	nodes, edges := b.assemble()
	if len(edges) != 0 {
		t.Errorf("got %d edges, want 0", len(edges))
	}
	if len(nodes) != 0 {
		t.Errorf("got %d nodes, want 0", len(nodes))
	}
}

func TestAssembleParallelCarriageways(t *testing.T) {
	b := testBuilder()
	b.ways = []way{
		{nodes: []int64{1, 2}, oneWay: true},
		{nodes: []int64{1, 2}, oneWay: true},
	}

	_, edges := b.assemble()
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2 parallel", len(edges))
	}
}
