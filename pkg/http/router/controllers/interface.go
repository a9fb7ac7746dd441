package controllers

import (
	"context"

	"github.com/jalur-dev/jalur/pkg/geo"
)

type RoutingService interface {
	// ShortestPath routes between two already-resolved coordinates. Returns
	// total distance in meters, the encoded polyline, the route geometry and
	// whether the undirected fallback produced the route.
	ShortestPath(origLat, origLon, dstLat, dstLon float64) (float64, string, []geo.Coordinate, bool, error)

	// RouteBetweenPlaces geocodes two free-text places, routes between them
	// and renders the map artifact. Returns distance in meters, the encoded
	// polyline, the artifact path and the fallback flag.
	RouteBetweenPlaces(ctx context.Context, pointA, pointB string) (float64, string, string, bool, error)
}
