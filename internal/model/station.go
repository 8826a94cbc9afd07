// Package model defines the domain types shared across the freeze-thaw query core.
package model

import "strings"

// StationRecord is one monitoring station's freeze-thaw data for one season.
// Counts come from upstream spreadsheets and are passed through untrusted:
// DamagingCycles may exceed TotalCycles in noisy source data.
type StationRecord struct {
	State          string  `json:"state"`
	County         string  `json:"county"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TotalCycles    int     `json:"total_cycles"`
	DamagingCycles int     `json:"damaging_cycles"`
}

// Key returns the normalized cross-season join key for this record.
func (r StationRecord) Key() LocationKey {
	return NewLocationKey(r.State, r.County)
}

// LocationKey identifies a station across seasons by normalized (state, county).
// Coordinates are intentionally not part of the key; they only break ties when
// a season carries duplicate county rows.
type LocationKey struct {
	State  string `json:"state"`
	County string `json:"county"`
}

// NewLocationKey builds a LocationKey with both parts trimmed and uppercased.
func NewLocationKey(state, county string) LocationKey {
	return LocationKey{
		State:  strings.ToUpper(strings.TrimSpace(state)),
		County: strings.ToUpper(strings.TrimSpace(county)),
	}
}
