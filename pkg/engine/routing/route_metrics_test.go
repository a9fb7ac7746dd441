package routing

import (
	"math"
	"testing"

	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"go.uber.org/zap"
)

func TestTotalLengthUsesMinParallelEdge(t *testing.T) {
	g := buildNetwork(t,
		[]roadnetwork.NodeCoord{clusterNode(1, 0, 0), clusterNode(2, 1, 0)},
		[]roadnetwork.EdgeSpec{
			{From: 1, To: 2, Length: 50, HasLength: true},
			{From: 1, To: 2, Length: 30, HasLength: true},
		})

	route := []roadnetwork.Index{indexOf(t, g, 1), indexOf(t, g, 2)}
	got := NewRouteMetrics(zap.NewNop()).TotalLength(g, route)
	if math.Abs(got-30) > 1e-9 {
		t.Errorf("TotalLength = %f, want 30", got)
	}
}

func TestTotalLengthFallsBackToReverseOrientation(t *testing.T) {
	// fallback routes traverse one-way edges backwards; the metric must still
	// find the segment via v->u
	g := buildNetwork(t,
		[]roadnetwork.NodeCoord{clusterNode(1, 0, 0), clusterNode(2, 1, 0)},
		[]roadnetwork.EdgeSpec{{From: 1, To: 2, Length: 50, HasLength: true}})

	route := []roadnetwork.Index{indexOf(t, g, 2), indexOf(t, g, 1)}
	got := NewRouteMetrics(zap.NewNop()).TotalLength(g, route)
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("TotalLength = %f, want 50", got)
	}
}

func TestTotalLengthShortRoutes(t *testing.T) {
	g := diamondNetwork(t)
	rm := NewRouteMetrics(zap.NewNop())

	if got := rm.TotalLength(g, nil); got != 0 {
		t.Errorf("empty route length = %f, want 0", got)
	}
	if got := rm.TotalLength(g, []roadnetwork.Index{0}); got != 0 {
		t.Errorf("single node route length = %f, want 0", got)
	}
}

func TestTotalLengthSkipsMissingSegment(t *testing.T) {
	// 1->2->4 and 1->3->4 exist; 2 and 3 are not adjacent in either direction
	g := diamondNetwork(t)
	route := []roadnetwork.Index{indexOf(t, g, 1), indexOf(t, g, 2), indexOf(t, g, 3)}

	got := NewRouteMetrics(zap.NewNop()).TotalLength(g, route)
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("TotalLength = %f, want 10 (broken segment contributes 0)", got)
	}
}

func TestTotalLengthSumsWholeRoute(t *testing.T) {
	g := diamondNetwork(t)
	route := []roadnetwork.Index{indexOf(t, g, 1), indexOf(t, g, 3), indexOf(t, g, 4)}

	got := NewRouteMetrics(zap.NewNop()).TotalLength(g, route)
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("TotalLength = %f, want 10", got)
	}
}
