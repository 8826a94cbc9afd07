package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/frostline/freezethaw-cli/internal/seasondata"
	"github.com/frostline/freezethaw-cli/internal/store"
)

// newProvider builds the season data provider selected by config.
// The returned closer releases any store resources; it is a no-op for the
// dir driver.
func newProvider(ctx context.Context) (seasondata.Provider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Data.Driver {
	case "dir":
		p, err := seasondata.NewDirProvider(cfg.Data.Dir)
		if err != nil {
			return nil, nil, err
		}
		return p, noop, nil

	case "sqlite":
		s, err := store.NewSQLite(cfg.Data.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store.NewProvider(s), s.Close, nil

	case "postgres":
		s, err := store.NewPostgres(ctx, cfg.Data.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewProvider(s), s.Close, nil

	default:
		return nil, nil, eris.Errorf("unknown data driver %q", cfg.Data.Driver)
	}
}

// newStore builds the snapshot store selected by config. Used by the import
// command, which cannot target the dir driver.
func newStore(ctx context.Context) (store.Store, error) {
	switch cfg.Data.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Data.SQLitePath)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Data.DatabaseURL)
	default:
		return nil, eris.Errorf("import requires the sqlite or postgres data driver, not %q", cfg.Data.Driver)
	}
}
