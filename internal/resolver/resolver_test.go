package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline/freezethaw-cli/internal/model"
)

var coloradoStations = []model.StationRecord{
	{State: "Colorado", County: "Denver", Latitude: 39.7392, Longitude: -104.9903, TotalCycles: 50, DamagingCycles: 10},
	{State: "Colorado", County: "Weld", Latitude: 40.5, Longitude: -104.3, TotalCycles: 30, DamagingCycles: 5},
}

func TestHaversineKM(t *testing.T) {
	// Austin to Dallas is roughly 293 km.
	d := HaversineKM(30.2672, -97.7431, 32.7767, -96.7970)
	assert.InDelta(t, 293, d, 5)

	assert.InDelta(t, 0, HaversineKM(30.0, -97.0, 30.0, -97.0), 0.001)
}

func TestResolve_NearestWithinRadius(t *testing.T) {
	rec, dist, err := Resolve(39.74, -104.99, coloradoStations, DefaultMaxRadiusKM)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Denver", rec.County)
	assert.InDelta(t, 0.08, dist, 0.03)
	assert.GreaterOrEqual(t, dist, 0.0)
}

func TestResolve_EmptyCandidates(t *testing.T) {
	rec, dist, err := Resolve(39.74, -104.99, nil, DefaultMaxRadiusKM)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Zero(t, dist)
}

func TestResolve_AllBeyondRadius(t *testing.T) {
	// Target in Kansas, both stations > 300 km away.
	rec, _, err := Resolve(38.5, -98.0, coloradoStations, DefaultMaxRadiusKM)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestResolve_RadiusBoundary(t *testing.T) {
	candidates := []model.StationRecord{
		{County: "Larimer", Latitude: 40.0, Longitude: -105.0},
	}
	// ~55.6 km north of the station: outside a 50 km radius, inside 60.
	rec, _, err := Resolve(40.5, -105.0, candidates, 50)
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, dist, err := Resolve(40.5, -105.0, candidates, 60)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.InDelta(t, 55.6, dist, 0.5)
}

func TestResolve_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude too high", 90.1, 0},
		{"latitude too low", -90.1, 0},
		{"longitude too high", 0, 180.1},
		{"longitude too low", 0, -180.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(tt.lat, tt.lon, coloradoStations, DefaultMaxRadiusKM)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "out of range")
		})
	}
}

func TestResolve_DeterministicTieBreak(t *testing.T) {
	// Two stations equidistant from the target (symmetric about it).
	a := model.StationRecord{County: "Adams", Latitude: 39.9, Longitude: -104.9}
	b := model.StationRecord{County: "Boulder", Latitude: 39.7, Longitude: -104.9}

	forward := []model.StationRecord{a, b}
	reversed := []model.StationRecord{b, a}

	r1, d1, err := Resolve(39.8, -104.9, forward, DefaultMaxRadiusKM)
	require.NoError(t, err)
	r2, d2, err := Resolve(39.8, -104.9, reversed, DefaultMaxRadiusKM)
	require.NoError(t, err)

	require.NotNil(t, r1)
	require.NotNil(t, r2)
	assert.Equal(t, "Adams", r1.County)
	assert.Equal(t, r1.County, r2.County)
	assert.Equal(t, d1, d2)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	candidates := []model.StationRecord{
		{County: "Denver", Latitude: 39.7392, Longitude: -104.9903},
	}
	rec, _, err := Resolve(39.74, -104.99, candidates, DefaultMaxRadiusKM)
	require.NoError(t, err)
	require.NotNil(t, rec)

	rec.County = "changed"
	assert.Equal(t, "Denver", candidates[0].County)
}

func TestResolve_ZeroRadiusUsesDefault(t *testing.T) {
	rec, _, err := Resolve(39.74, -104.99, coloradoStations, 0)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Denver", rec.County)
}
