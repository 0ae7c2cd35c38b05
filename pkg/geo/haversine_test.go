package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		want       float64 // metres
		delta      float64 // relative tolerance
	}{
		{"one degree of latitude", 0, 0, 1, 0, 111_195, 0.001},
		{"one degree of longitude at the equator", 0, 100, 0, 101, 111_195, 0.001},
		{"Kuala Lumpur to Singapore", 3.1390, 101.6869, 1.3521, 103.8198, 309_000, 0.01},
		{"antipodes", 0, 0, 0, 180, 20_015_087, 0.001},
		{"across the antimeridian", 0, 179.5, 0, -179.5, 111_195, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InEpsilon(t, tt.want, got, tt.delta)
			assert.InDelta(t, got, Haversine(tt.lat2, tt.lon2, tt.lat1, tt.lon1), 1e-6, "symmetric")
		})
	}
}

func TestHaversineSamePoint(t *testing.T) {
	assert.Zero(t, Haversine(1.3521, 103.8198, 1.3521, 103.8198))
}

func TestEquirectangularDistTracksHaversine(t *testing.T) {
	// Snapping distances stay under a kilometre, where the approximation
	// is within a fraction of a percent.
	for _, lat := range []float64{0, 1.35, 45, 60} {
		h := Haversine(lat, 103.8, lat+0.004, 103.806)
		e := EquirectangularDist(lat, 103.8, lat+0.004, 103.806)
		assert.InEpsilon(t, h, e, 0.005, "latitude %v", lat)
	}
}

func TestEnvelope(t *testing.T) {
	lat, lon := 1.3521, 103.8198
	minLat, minLon, maxLat, maxLon := Envelope(lat, lon, 500)

	// Each edge of the box lies at least the radius from the centre.
	for _, p := range [][2]float64{{minLat, lon}, {maxLat, lon}, {lat, minLon}, {lat, maxLon}} {
		assert.GreaterOrEqual(t, Haversine(lat, lon, p[0], p[1]), 499.0, "edge %v", p)
	}
	assert.Less(t, maxLat-minLat, 0.01)
}

func TestEnvelopeWidensWithLatitude(t *testing.T) {
	_, eqMin, _, eqMax := Envelope(0, 10, 1000)
	_, hiMin, _, hiMax := Envelope(60, 10, 1000)
	assert.Greater(t, hiMax-hiMin, eqMax-eqMin)

	_, poleMin, _, poleMax := Envelope(90, 10, 1000)
	assert.Equal(t, 10.0-180, poleMin)
	assert.Equal(t, 10.0+180, poleMax)
}

func BenchmarkHaversine(b *testing.B) {
	for b.Loop() {
		Haversine(1.3521, 103.8198, 1.2905, 103.8520)
	}
}

func BenchmarkEquirectangularDist(b *testing.B) {
	for b.Loop() {
		EquirectangularDist(1.3521, 103.8198, 1.2905, 103.8520)
	}
}
