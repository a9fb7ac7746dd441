package geo

import (
	"github.com/golang/geo/s2"
)

// BoundsOf returns the latlng rectangle enclosing coords.
func BoundsOf(coords []Coordinate) s2.Rect {
	rect := s2.EmptyRect()
	for _, c := range coords {
		rect = rect.AddPoint(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}
	return rect
}

// CenterOf returns the center of the enclosing rectangle of coords, used to
// center the rendered map.
func CenterOf(coords []Coordinate) Coordinate {
	center := BoundsOf(coords).Center()
	return NewCoordinate(center.Lat.Degrees(), center.Lng.Degrees())
}

// SpanMeters returns the larger side of the bounding rectangle of coords in
// meters, an input for picking the map zoom level.
func SpanMeters(coords []Coordinate) float64 {
	rect := s2.EmptyRect()
	for _, c := range coords {
		rect = rect.AddPoint(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}
	size := rect.Size()

	center := rect.Center()
	latSpan := CalculateHaversineDistance(
		center.Lat.Degrees()-size.Lat.Degrees()/2, center.Lng.Degrees(),
		center.Lat.Degrees()+size.Lat.Degrees()/2, center.Lng.Degrees())
	lonSpan := CalculateHaversineDistance(
		center.Lat.Degrees(), center.Lng.Degrees()-size.Lng.Degrees()/2,
		center.Lat.Degrees(), center.Lng.Degrees()+size.Lng.Degrees()/2)

	if latSpan > lonSpan {
		return latSpan
	}
	return lonSpan
}
