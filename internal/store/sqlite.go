package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/frostline/freezethaw-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS seasons (
	season      TEXT PRIMARY KEY,
	source_file TEXT NOT NULL DEFAULT '',
	imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS stations (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	season          TEXT NOT NULL REFERENCES seasons(season),
	state           TEXT NOT NULL,
	county          TEXT NOT NULL,
	latitude        REAL NOT NULL,
	longitude       REAL NOT NULL,
	total_cycles    INTEGER NOT NULL,
	damaging_cycles INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stations_season ON stations(season);
CREATE INDEX IF NOT EXISTS idx_stations_season_state ON stations(season, state);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ReplaceSeason(ctx context.Context, season model.SeasonID, sourceFile string, records []model.StationRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations WHERE season = ?`, string(season)); err != nil {
		return 0, eris.Wrap(err, "sqlite: delete season stations")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO seasons (season, source_file, imported_at) VALUES (?, ?, ?)
		ON CONFLICT (season) DO UPDATE SET source_file = excluded.source_file, imported_at = excluded.imported_at`,
		string(season), sourceFile, time.Now().UTC(),
	); err != nil {
		return 0, eris.Wrap(err, "sqlite: upsert season")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stations (season, state, county, latitude, longitude, total_cycles, damaging_cycles)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	var n int64
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, string(season), r.State, r.County, r.Latitude, r.Longitude, r.TotalCycles, r.DamagingCycles); err != nil {
			return 0, eris.Wrap(err, "sqlite: insert station")
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return n, nil
}

func (s *SQLiteStore) ListSeasons(ctx context.Context) ([]model.SeasonID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT season FROM seasons ORDER BY season DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list seasons")
	}
	defer rows.Close()

	var seasons []model.SeasonID
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan season")
		}
		seasons = append(seasons, model.SeasonID(season))
	}
	return seasons, eris.Wrap(rows.Err(), "sqlite: iterate seasons")
}

func (s *SQLiteStore) HasSeason(ctx context.Context, season model.SeasonID) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM seasons WHERE season = ?`, string(season)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrap(err, "sqlite: has season")
	}
	return true, nil
}

func (s *SQLiteStore) GetSeason(ctx context.Context, season model.SeasonID) ([]model.StationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT state, county, latitude, longitude, total_cycles, damaging_cycles
		FROM stations WHERE season = ? ORDER BY state, county, latitude, longitude`,
		string(season))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get season")
	}
	defer rows.Close()

	var records []model.StationRecord
	for rows.Next() {
		var r model.StationRecord
		if err := rows.Scan(&r.State, &r.County, &r.Latitude, &r.Longitude, &r.TotalCycles, &r.DamagingCycles); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan station")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate stations")
}

func (s *SQLiteStore) ListStates(ctx context.Context, season model.SeasonID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT state FROM stations WHERE season = ? ORDER BY state`,
		string(season))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list states")
	}
	defer rows.Close()

	var states []string
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan state")
		}
		states = append(states, state)
	}
	return states, eris.Wrap(rows.Err(), "sqlite: iterate states")
}
