// Package resolver matches a target coordinate to the nearest monitoring
// station within a bounded radius. Resolution is a pure function: same
// inputs, same station, regardless of candidate ordering.
package resolver

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/frostline/freezethaw-cli/internal/model"
)

// DefaultMaxRadiusKM bounds how far away a "nearest" station may be.
// Beyond this the match is treated as absent rather than misleading.
const DefaultMaxRadiusKM = 50.0

// distanceToleranceKM is the band within which two candidate distances are
// considered tied and the deterministic tie-break applies.
const distanceToleranceKM = 1e-9

const earthRadiusKM = 6371.0

// Resolve returns the candidate nearest to (lat, lon) and its great-circle
// distance in kilometers. Candidates must already be filtered to one state.
//
// A nil record with a nil error means no station lies within maxRadiusKM
// (or the candidate set was empty) — an expected outcome the caller must
// branch on, distinct from the error returned for out-of-range coordinates.
//
// Ties within numeric tolerance resolve to the lowest (county, latitude,
// longitude) so repeated calls never depend on input order.
func Resolve(lat, lon float64, candidates []model.StationRecord, maxRadiusKM float64) (*model.StationRecord, float64, error) {
	if lat < -90 || lat > 90 {
		return nil, 0, eris.Errorf("resolver: latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, 0, eris.Errorf("resolver: longitude %v out of range [-180, 180]", lon)
	}
	if maxRadiusKM <= 0 {
		maxRadiusKM = DefaultMaxRadiusKM
	}

	var best *model.StationRecord
	bestDist := math.Inf(1)

	for i := range candidates {
		c := &candidates[i]
		d := HaversineKM(lat, lon, c.Latitude, c.Longitude)
		switch {
		case d < bestDist-distanceToleranceKM:
			best = c
			bestDist = d
		case d <= bestDist+distanceToleranceKM && best != nil && lessStation(c, best):
			best = c
			bestDist = math.Min(bestDist, d)
		}
	}

	if best == nil || bestDist > maxRadiusKM {
		return nil, 0, nil
	}
	rec := *best
	return &rec, bestDist, nil
}

// HaversineKM returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// lessStation orders candidates for tie-breaking: lowest county name first,
// then latitude, then longitude.
func lessStation(a, b *model.StationRecord) bool {
	if a.County != b.County {
		return a.County < b.County
	}
	if a.Latitude != b.Latitude {
		return a.Latitude < b.Latitude
	}
	return a.Longitude < b.Longitude
}
