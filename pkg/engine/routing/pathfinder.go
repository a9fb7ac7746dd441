package routing

import (
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"github.com/jalur-dev/jalur/pkg/util"
	"go.uber.org/zap"
)

// Route is an ordered walk through the network from source to target,
// produced per query and consumed immediately by the metrics/rendering side.
type Route struct {
	vertices    []roadnetwork.Index
	weight      float64
	viaFallback bool
}

func (r *Route) GetVertices() []roadnetwork.Index {
	return r.vertices
}

func (r *Route) GetWeight() float64 {
	return r.weight
}

// ViaFallback reports whether the route came from the undirected fallback
// search. Such a route may traverse one-way edges against their direction;
// callers decide whether that is acceptable for their use.
func (r *Route) ViaFallback() bool {
	return r.viaFallback
}

// PathFinder runs the two-phase shortest path policy: A* on the directed
// network first, then the same search on the weight-collapsed undirected view
// when directionality makes the target unreachable. Each phase is optimal for
// its own graph.
type PathFinder struct {
	network *roadnetwork.RoadNetwork
	log     *zap.Logger
}

func NewPathFinder(network *roadnetwork.RoadNetwork, log *zap.Logger) *PathFinder {
	return &PathFinder{network: network, log: log}
}

func (pf *PathFinder) ShortestPath(source, target roadnetwork.Index) (*Route, error) {
	n := roadnetwork.Index(pf.network.NumberOfVertices())
	if source < 0 || source >= n || target < 0 || target >= n {
		return nil, util.WrapErrorf(nil, ErrNodeNotFound, "source %d or target %d out of range", source, target)
	}

	directed := NewAStar(pf.network)
	vertices, weight, err := directed.ShortestPath(source, target)
	if err == nil {
		return &Route{vertices: vertices, weight: weight}, nil
	}

	// directed search exhausted: an undirected walk may still exist when
	// one-way restrictions are what cut the target off
	if pf.log != nil {
		pf.log.Debug("directed search failed, retrying on undirected view",
			zap.Int32("source", source), zap.Int32("target", target))
	}

	fallback := NewAStar(pf.network.GetUndirectedView())
	vertices, weight, err = fallback.ShortestPath(source, target)
	if err != nil {
		return nil, util.WrapErrorf(err, ErrNoPathFound, "no path from %d to %d", source, target)
	}
	return &Route{vertices: vertices, weight: weight, viaFallback: true}, nil
}
