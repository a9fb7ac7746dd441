package usecases

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/jalur-dev/jalur/pkg/engine/routing"
	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/geocoder"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"github.com/jalur-dev/jalur/pkg/spatialindex"
	"github.com/jalur-dev/jalur/pkg/util"
	"go.uber.org/zap"
)

const mapArtifactName = "route_map.html"

// RoutingService glues the query pipeline together: geocode (for free-text
// queries), snap both coordinates to nearest network nodes, run the two-phase
// shortest path, aggregate the distance and project the geometry.
type RoutingService struct {
	log          *zap.Logger
	network      *roadnetwork.RoadNetwork
	spatialIndex SpatialIndex
	pathFinder   *routing.PathFinder
	routeMetrics *routing.RouteMetrics
	geocoder     Geocoder
	renderer     Renderer
	mapDir       string
}

func NewRoutingService(log *zap.Logger, network *roadnetwork.RoadNetwork, spatialIndex SpatialIndex,
	geocoder Geocoder, renderer Renderer, mapDir string) *RoutingService {
	return &RoutingService{
		log:          log,
		network:      network,
		spatialIndex: spatialIndex,
		pathFinder:   routing.NewPathFinder(network, log),
		routeMetrics: routing.NewRouteMetrics(log),
		geocoder:     geocoder,
		renderer:     renderer,
		mapDir:       mapDir,
	}
}

func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (float64, string, []geo.Coordinate, bool, error) {
	src, err := rs.spatialIndex.NearestNode(origLat, origLon)
	if err != nil {
		return 0, "", nil, false, util.WrapErrorf(err, util.ErrBadParamInput,
			"invalid origin %f,%f", origLat, origLon)
	}
	dst, err := rs.spatialIndex.NearestNode(dstLat, dstLon)
	if err != nil {
		return 0, "", nil, false, util.WrapErrorf(err, util.ErrBadParamInput,
			"invalid destination %f,%f", dstLat, dstLon)
	}

	route, err := rs.pathFinder.ShortestPath(src, dst)
	if err != nil {
		if errors.Is(err, routing.ErrNoPathFound) {
			return 0, "", nil, false, util.WrapErrorf(err, util.ErrNotFound,
				"no path found from %f,%f to %f,%f", origLat, origLon, dstLat, dstLon)
		}
		return 0, "", nil, false, err
	}

	dist := rs.routeMetrics.TotalLength(rs.network, route.GetVertices())
	coords := rs.network.RouteCoordinates(route.GetVertices())
	pathPolyline := geo.PolylineFromCoords(coords)

	return dist, pathPolyline, coords, route.ViaFallback(), nil
}

func (rs *RoutingService) RouteBetweenPlaces(ctx context.Context, pointA, pointB string) (float64, string, string, bool, error) {
	origin, err := rs.geocoder.Resolve(ctx, pointA)
	if err != nil {
		return 0, "", "", false, wrapGeocodeErr(err, pointA)
	}
	destination, err := rs.geocoder.Resolve(ctx, pointB)
	if err != nil {
		return 0, "", "", false, wrapGeocodeErr(err, pointB)
	}

	dist, pathPolyline, coords, viaFallback, err := rs.ShortestPath(origin.Lat, origin.Lon,
		destination.Lat, destination.Lon)
	if err != nil {
		return 0, "", "", false, err
	}

	outPath := filepath.Join(rs.mapDir, mapArtifactName)
	if err := rs.renderer.Render(coords, pointA, pointB, outPath); err != nil {
		// distance is still valid without the artifact, keep the query alive
		rs.log.Error("render map artifact", zap.Error(err))
		return dist, pathPolyline, "", viaFallback, nil
	}

	return dist, pathPolyline, mapArtifactName, viaFallback, nil
}

func wrapGeocodeErr(err error, place string) error {
	if errors.Is(err, geocoder.ErrEmptyQuery) {
		return util.WrapErrorf(err, util.ErrBadParamInput, "empty location")
	}
	var domainErr *util.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return util.WrapErrorf(err, util.ErrInternalServerError, "geocode %q", place)
}

var _ SpatialIndex = (*spatialindex.NodeIndex)(nil)
