package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/seasondata"
)

// Provider adapts a snapshot Store to the seasondata.Provider interface
// consumed by the query core.
type Provider struct {
	store Store
}

// NewProvider wraps a Store as a season data provider.
func NewProvider(s Store) *Provider {
	return &Provider{store: s}
}

func (p *Provider) AvailableSeasons(ctx context.Context) ([]model.SeasonID, error) {
	return p.store.ListSeasons(ctx)
}

// LoadSeason returns a season's records from the snapshot store.
// A season that was imported with zero usable rows yields an empty slice;
// a season never imported yields ErrDataUnavailable.
func (p *Provider) LoadSeason(ctx context.Context, season model.SeasonID) ([]model.StationRecord, error) {
	records, err := p.store.GetSeason(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		ok, err := p.store.HasSeason(ctx, season)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, eris.Wrapf(seasondata.ErrDataUnavailable, "store: season %s not imported", season)
		}
	}
	return records, nil
}

func (p *Provider) States(ctx context.Context, season model.SeasonID) ([]string, error) {
	return p.store.ListStates(ctx, season)
}
