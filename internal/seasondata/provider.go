// Package seasondata supplies per-season station records to the query core.
// Implementations read one file (or one snapshot-store season) per SeasonID;
// the core only sees the Provider interface.
package seasondata

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/frostline/freezethaw-cli/internal/model"
)

// ErrDataUnavailable reports that a season has no backing data at all.
// A season that exists but holds zero usable rows is returned as an empty
// slice, not this error.
var ErrDataUnavailable = eris.New("seasondata: season data unavailable")

// Provider is the collaborator the resolver and trend aggregator consume.
// Implementations must return a consistent snapshot for the duration of one
// call; they may cache between calls however they like.
type Provider interface {
	// AvailableSeasons returns every season with backing data.
	// Callers must not rely on the ordering.
	AvailableSeasons(ctx context.Context) ([]model.SeasonID, error)

	// LoadSeason returns all station records for one season.
	// Returns ErrDataUnavailable when the season has no backing data.
	LoadSeason(ctx context.Context, season model.SeasonID) ([]model.StationRecord, error)

	// States returns the distinct, sorted state names present in a season.
	States(ctx context.Context, season model.SeasonID) ([]string, error)
}
