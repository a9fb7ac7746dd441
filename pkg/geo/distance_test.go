package geo

import (
	"math"
	"testing"
)

const eps = 1e-6

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantMin, wantMax       float64
	}{
		{
			name: "zero distance",
			lat1: 3.1390, lon1: 101.6869,
			lat2: 3.1390, lon2: 101.6869,
			wantMin: 0, wantMax: eps,
		},
		{
			// KLCC area to Ampang area, roughly 3.4-3.6 km
			name: "kuala lumpur pair",
			lat1: 3.1390, lon1: 101.6869,
			lat2: 3.1578, lon2: 101.7123,
			wantMin: 3300, wantMax: 3600,
		},
		{
			// one degree of longitude on the equator
			name: "equator degree",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 1,
			wantMin: 111100, wantMax: 111300,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("got %f, want within [%f, %f]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	d1 := CalculateHaversineDistance(3.1390, 101.6869, 3.1578, 101.7123)
	d2 := CalculateHaversineDistance(3.1578, 101.7123, 3.1390, 101.6869)
	if math.Abs(d1-d2) > eps {
		t.Errorf("distance should be symmetric: %f vs %f", d1, d2)
	}
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(3.1390, 101.6869, 0, 1000)

	if lon-101.6869 > 1e-3 || 101.6869-lon > 1e-3 {
		t.Errorf("moving due north should not change longitude much, got %f", lon)
	}
	back := CalculateHaversineDistance(3.1390, 101.6869, lat, lon)
	if math.Abs(back-1000) > 1.0 {
		t.Errorf("destination point should be 1000m away, got %f", back)
	}
}

func TestIsFiniteCoordinate(t *testing.T) {
	if !IsFiniteCoordinate(3.1390, 101.6869) {
		t.Error("finite coordinate rejected")
	}
	if IsFiniteCoordinate(math.NaN(), 101.6869) {
		t.Error("NaN latitude accepted")
	}
	if IsFiniteCoordinate(3.1390, math.Inf(1)) {
		t.Error("infinite longitude accepted")
	}
}
