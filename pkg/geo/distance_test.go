package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{89.9, 179.9},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetry(t *testing.T) {
	// New York -> Los Angeles both ways
	nyLat, nyLng := 40.7128, -74.0060
	laLat, laLng := 34.0522, -118.2437

	forward := Distance(nyLat, nyLng, laLat, laLng)
	backward := Distance(laLat, laLng, nyLat, nyLng)

	assert.InDelta(t, forward, backward, 1e-9)
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantMiles              float64
		tolerance              float64
	}{
		{
			name: "new york to los angeles",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			wantMiles: 2445, tolerance: 15,
		},
		{
			name: "one degree of latitude",
			lat1: 40, lng1: -74,
			lat2: 41, lng2: -74,
			wantMiles: 69, tolerance: 1,
		},
		{
			name: "short hop within a city",
			lat1: 40.7484, lng1: -73.9857,
			lat2: 40.7580, lng2: -73.9855,
			wantMiles: 0.66, tolerance: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.wantMiles, got, tt.tolerance)
		})
	}
}
