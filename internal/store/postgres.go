package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/frostline/freezethaw-cli/internal/db"
	"github.com/frostline/freezethaw-cli/internal/model"
)

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with its own connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS seasons (
	season      TEXT PRIMARY KEY,
	source_file TEXT NOT NULL DEFAULT '',
	imported_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS stations (
	id              BIGSERIAL PRIMARY KEY,
	season          TEXT NOT NULL REFERENCES seasons(season),
	state           TEXT NOT NULL,
	county          TEXT NOT NULL,
	latitude        DOUBLE PRECISION NOT NULL,
	longitude       DOUBLE PRECISION NOT NULL,
	total_cycles    INTEGER NOT NULL,
	damaging_cycles INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stations_season ON stations(season);
CREATE INDEX IF NOT EXISTS idx_stations_season_state ON stations(season, state);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var stationColumns = []string{"season", "state", "county", "latitude", "longitude", "total_cycles", "damaging_cycles"}

func (s *PostgresStore) ReplaceSeason(ctx context.Context, season model.SeasonID, sourceFile string, records []model.StationRecord) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO seasons (season, source_file, imported_at) VALUES ($1, $2, now())
		ON CONFLICT (season) DO UPDATE SET source_file = EXCLUDED.source_file, imported_at = now()`,
		string(season), sourceFile,
	); err != nil {
		return 0, eris.Wrap(err, "postgres: upsert season")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM stations WHERE season = $1`, string(season)); err != nil {
		return 0, eris.Wrap(err, "postgres: delete season stations")
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{string(season), r.State, r.County, r.Latitude, r.Longitude, r.TotalCycles, r.DamagingCycles}
	}
	n, err := db.CopyFrom(ctx, tx, "stations", stationColumns, rows)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit")
	}
	return n, nil
}

func (s *PostgresStore) ListSeasons(ctx context.Context) ([]model.SeasonID, error) {
	rows, err := s.pool.Query(ctx, `SELECT season FROM seasons ORDER BY season DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list seasons")
	}
	defer rows.Close()

	var seasons []model.SeasonID
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return nil, eris.Wrap(err, "postgres: scan season")
		}
		seasons = append(seasons, model.SeasonID(season))
	}
	return seasons, eris.Wrap(rows.Err(), "postgres: iterate seasons")
}

func (s *PostgresStore) HasSeason(ctx context.Context, season model.SeasonID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seasons WHERE season = $1)`, string(season)).Scan(&exists)
	if err != nil {
		return false, eris.Wrap(err, "postgres: has season")
	}
	return exists, nil
}

func (s *PostgresStore) GetSeason(ctx context.Context, season model.SeasonID) ([]model.StationRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT state, county, latitude, longitude, total_cycles, damaging_cycles
		FROM stations WHERE season = $1 ORDER BY state, county, latitude, longitude`,
		string(season))
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get season")
	}
	defer rows.Close()

	var records []model.StationRecord
	for rows.Next() {
		var r model.StationRecord
		if err := rows.Scan(&r.State, &r.County, &r.Latitude, &r.Longitude, &r.TotalCycles, &r.DamagingCycles); err != nil {
			return nil, eris.Wrap(err, "postgres: scan station")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate stations")
}

func (s *PostgresStore) ListStates(ctx context.Context, season model.SeasonID) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT state FROM stations WHERE season = $1 ORDER BY state`, string(season))
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list states")
	}
	defer rows.Close()

	var states []string
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, eris.Wrap(err, "postgres: scan state")
		}
		states = append(states, state)
	}
	return states, eris.Wrap(rows.Err(), "postgres: iterate states")
}
