// Package store persists imported season snapshots so queries can run
// without the source spreadsheets present. Two drivers are supported:
// SQLite for single-machine use and Postgres for shared deployments.
package store

import (
	"context"

	"github.com/frostline/freezethaw-cli/internal/model"
)

// Store is the persistence interface for season snapshots.
type Store interface {
	// ReplaceSeason atomically replaces all station rows for a season and
	// records its source file. Returns the number of rows inserted.
	ReplaceSeason(ctx context.Context, season model.SeasonID, sourceFile string, records []model.StationRecord) (int64, error)

	// ListSeasons returns every imported season, most recent first.
	ListSeasons(ctx context.Context) ([]model.SeasonID, error)

	// HasSeason reports whether a season has been imported, even if it
	// contained zero usable rows.
	HasSeason(ctx context.Context, season model.SeasonID) (bool, error)

	// GetSeason returns all station rows for a season.
	GetSeason(ctx context.Context, season model.SeasonID) ([]model.StationRecord, error)

	// ListStates returns the distinct state names in a season, sorted.
	ListStates(ctx context.Context, season model.SeasonID) ([]string, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
