package routing

import (
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"go.uber.org/zap"
)

// RouteMetrics aggregates the true travelled distance along a route.
type RouteMetrics struct {
	log *zap.Logger
}

func NewRouteMetrics(log *zap.Logger) *RouteMetrics {
	return &RouteMetrics{log: log}
}

// TotalLength sums the physical length of a route in meters. Each consecutive
// pair resolves to the minimum-length parallel edge u->v; v->u is checked when
// no directed edge exists, which only happens for routes from the undirected
// fallback. A pair with no edge in either orientation is a malformed route:
// it is logged as an error and contributes zero rather than failing the whole
// query.
func (rm *RouteMetrics) TotalLength(network *roadnetwork.RoadNetwork, route []roadnetwork.Index) float64 {
	if len(route) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i+1 < len(route); i++ {
		u, v := route[i], route[i+1]

		if length, ok := network.MinEdgeLength(u, v); ok {
			total += length
			continue
		}
		if length, ok := network.MinEdgeLength(v, u); ok {
			total += length
			continue
		}

		if rm.log != nil {
			rm.log.Error("route segment has no edge in either orientation",
				zap.Int32("from", u), zap.Int32("to", v))
		}
	}
	return total
}
