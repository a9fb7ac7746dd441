package controllers

import "github.com/jalur-dev/jalur/pkg/geo"

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"required,min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"required,min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"required,min=-180,max=180"`
}

type shortestPathResponse struct {
	Dist        float64          `json:"distance"`
	Path        string           `json:"path"`
	Coordinates []geo.Coordinate `json:"coordinates"`
	ViaFallback bool             `json:"via_fallback"`
}

func NewShortestPathResponse(dist float64, path string, coords []geo.Coordinate, viaFallback bool) shortestPathResponse {
	return shortestPathResponse{
		Dist:        dist,
		Path:        path,
		Coordinates: coords,
		ViaFallback: viaFallback,
	}
}

type placeRouteRequest struct {
	PointA string `json:"pointA" validate:"required"`
	PointB string `json:"pointB" validate:"required"`
}

type placeRouteResponse struct {
	PointA      string  `json:"point_a"`
	PointB      string  `json:"point_b"`
	DistanceKM  float64 `json:"distance_km"`
	Path        string  `json:"path"`
	MapRelPath  string  `json:"map_rel_path"`
	ViaFallback bool    `json:"via_fallback"`
}

func NewPlaceRouteResponse(pointA, pointB string, distMeters float64, path, mapRelPath string, viaFallback bool) placeRouteResponse {
	return placeRouteResponse{
		PointA:      pointA,
		PointB:      pointB,
		DistanceKM:  distMeters / 1000.0,
		Path:        path,
		MapRelPath:  mapRelPath,
		ViaFallback: viaFallback,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
