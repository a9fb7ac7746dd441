package geo

import (
	"math"
	"testing"
)

func TestPolylineRoundtrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(3.1390, 101.6869),
		NewCoordinate(3.1450, 101.6920),
		NewCoordinate(3.1578, 101.7123),
	}

	encoded := PolylineFromCoords(coords)
	if encoded == "" {
		t.Fatal("empty polyline")
	}

	decoded, err := DecodePolyline(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(coords) {
		t.Fatalf("got %d coords, want %d", len(decoded), len(coords))
	}
	for i := range coords {
		// precision 5 quantizes to ~1m
		if math.Abs(decoded[i].Lat-coords[i].Lat) > 1e-5 || math.Abs(decoded[i].Lon-coords[i].Lon) > 1e-5 {
			t.Errorf("coord %d: got %v, want %v", i, decoded[i], coords[i])
		}
	}
}
