package spatialindex

import (
	"errors"

	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/roadnetwork"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// ErrInvalidCoordinate rejects non-finite lat/lon before they reach the
// nearest-node scan.
var ErrInvalidCoordinate = errors.New("coordinate must be finite")

const (
	// initial candidate search radius in meters, doubled until candidates
	// show up.
	initialSearchRadius = 500.0

	// beyond this the query point is far outside the network extent and a
	// full linear scan is cheaper than more r-tree rounds.
	maxSearchRadius = 512_000.0
)

// NodeIndex answers nearest-node queries over the reduced road network.
// Parallel coordinate arrays, in network enumeration order, back an exact
// haversine scan; an r-tree over the same points prunes the scan for the
// common case of a query point inside the network extent.
//
// Built once right after network reduction, read-only afterwards.
type NodeIndex struct {
	lats []float64
	lons []float64

	tr *rtree.RTreeG[roadnetwork.Index]
}

func NewNodeIndex(network *roadnetwork.RoadNetwork, log *zap.Logger) *NodeIndex {
	if log != nil {
		log.Info("building nearest-node spatial index...",
			zap.Int("nodes", network.NumberOfVertices()))
	}

	n := network.NumberOfVertices()
	idx := &NodeIndex{
		lats: make([]float64, n),
		lons: make([]float64, n),
		tr:   &rtree.RTreeG[roadnetwork.Index]{},
	}

	for v := roadnetwork.Index(0); v < roadnetwork.Index(n); v++ {
		lat, lon := network.GetVertexCoordinates(v)
		idx.lats[v] = lat
		idx.lons[v] = lon
		idx.tr.Insert([2]float64{lon, lat}, [2]float64{lon, lat}, v)
	}

	if log != nil {
		log.Info("nearest-node spatial index built.")
	}
	return idx
}

func (idx *NodeIndex) Size() int {
	return len(idx.lats)
}

// NearestNode returns the node closest to (lat, lon) by great-circle
// distance, for any finite coordinate, with no distance ceiling. Equidistant
// nodes resolve to the one first in network enumeration order.
func (idx *NodeIndex) NearestNode(lat, lon float64) (roadnetwork.Index, error) {
	if !geo.IsFiniteCoordinate(lat, lon) {
		return roadnetwork.INVALID_VERTEX_ID, ErrInvalidCoordinate
	}
	if len(idx.lats) == 0 {
		return roadnetwork.INVALID_VERTEX_ID, errors.New("spatial index is empty")
	}

	for radius := initialSearchRadius; radius <= maxSearchRadius; radius *= 2 {
		best, bestDist, found := idx.scanWithinRadius(lat, lon, radius)
		if !found {
			continue
		}
		// a candidate at bestDist proves the true nearest lies within
		// bestDist; one exact re-scan over that box settles it (the first
		// round's box can clip a closer node near its corner).
		if bestDist > radius {
			best, _, _ = idx.scanWithinRadius(lat, lon, bestDist*1.01)
		}
		return best, nil
	}

	// query point far outside the network extent
	best, _ := idx.linearScan(lat, lon)
	return best, nil
}

// scanWithinRadius collects r-tree candidates inside the bounding box of
// radius around the query point and returns the haversine-closest, ties to
// the lowest node index.
func (idx *NodeIndex) scanWithinRadius(qLat, qLon, radius float64) (roadnetwork.Index, float64, bool) {
	// bounds from due south/west/north/east moves so the box contains the
	// whole radius disk, not just its inscribed square
	lowerLat, _ := geo.GetDestinationPoint(qLat, qLon, 180, radius)
	_, lowerLon := geo.GetDestinationPoint(qLat, qLon, 270, radius)
	upperLat, _ := geo.GetDestinationPoint(qLat, qLon, 0, radius)
	_, upperLon := geo.GetDestinationPoint(qLat, qLon, 90, radius)

	best := roadnetwork.INVALID_VERTEX_ID
	bestDist := 0.0
	found := false
	idx.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, v roadnetwork.Index) bool {
			d := geo.CalculateHaversineDistance(qLat, qLon, idx.lats[v], idx.lons[v])
			if !found || d < bestDist || (d == bestDist && v < best) {
				best, bestDist, found = v, d, true
			}
			return true
		})
	return best, bestDist, found
}

// linearScan is the exact fallback over the cached coordinate arrays. Keeping
// the first of equidistant nodes gives the enumeration-order tie-break.
func (idx *NodeIndex) linearScan(qLat, qLon float64) (roadnetwork.Index, float64) {
	best := roadnetwork.Index(0)
	bestDist := geo.CalculateHaversineDistance(qLat, qLon, idx.lats[0], idx.lons[0])
	for v := 1; v < len(idx.lats); v++ {
		d := geo.CalculateHaversineDistance(qLat, qLon, idx.lats[v], idx.lons[v])
		if d < bestDist {
			best, bestDist = roadnetwork.Index(v), d
		}
	}
	return best, bestDist
}
