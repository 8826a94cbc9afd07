// Package trend gathers one location's record from each available season and
// computes multi-window summary statistics over the resulting series.
package trend

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/seasondata"
	"github.com/frostline/freezethaw-cli/internal/stats"
)

// DefaultRecentWindow is the "last N years" window length. The original
// deployment used 5; 20 is a supported configuration for long-horizon
// durability studies.
const DefaultRecentWindow = 5

// Aggregator computes trend statistics for a resolved location.
type Aggregator struct {
	provider     seasondata.Provider
	recentWindow int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithRecentWindow sets the most-recent-N window length.
// Non-positive values fall back to the default.
func WithRecentWindow(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.recentWindow = n
		}
	}
}

// New creates an Aggregator over the given provider.
func New(provider seasondata.Provider, opts ...Option) *Aggregator {
	a := &Aggregator{provider: provider, recentWindow: DefaultRecentWindow}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate builds the cross-season statistics for one location.
//
// Each season is loaded independently: a season the provider cannot load is
// logged and skipped, and a season with no record for the location is skipped
// silently. A nil result with a nil error means no season yielded a match —
// expected for stations that only appear in recent data.
//
// The target coordinates break ties when a season carries duplicate rows for
// the same normalized (state, county): the row nearest the target wins.
// Results are deterministic for unchanged provider data.
func (a *Aggregator) Aggregate(ctx context.Context, key model.LocationKey, lat, lon float64, seasons []model.SeasonID) (*model.Statistics, error) {
	if strings.TrimSpace(key.State) == "" {
		return nil, eris.New("trend: location state must not be empty")
	}
	if strings.TrimSpace(key.County) == "" {
		return nil, eris.New("trend: location county must not be empty")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, eris.Errorf("trend: coordinates (%v, %v) out of range", lat, lon)
	}

	var points []model.SeasonPoint
	for _, season := range seasons {
		records, err := a.provider.LoadSeason(ctx, season)
		if err != nil {
			zap.L().Warn("trend: skipping season",
				zap.String("season", string(season)),
				zap.Error(err),
			)
			continue
		}

		rec, ok := matchSeason(records, key, lat, lon)
		if !ok {
			continue
		}
		points = append(points, model.SeasonPoint{
			Season:         season,
			TotalCycles:    rec.TotalCycles,
			DamagingCycles: rec.DamagingCycles,
		})
	}

	if len(points) == 0 {
		return nil, nil
	}

	// Most recent first. Windows below are prefixes of this ordering.
	sort.Slice(points, func(i, j int) bool { return points[i].Season > points[j].Season })

	totals := make([]float64, len(points))
	damaging := make([]float64, len(points))
	for i, p := range points {
		totals[i] = float64(p.TotalCycles)
		damaging[i] = float64(p.DamagingCycles)
	}

	window := a.recentWindow
	if window > len(points) {
		window = len(points)
	}

	return &model.Statistics{
		Location:       key,
		Points:         points,
		AllTotal:       windowStats(totals),
		AllDamaging:    windowStats(damaging),
		RecentWindow:   a.recentWindow,
		RecentTotal:    windowStats(totals[:window]),
		RecentDamaging: windowStats(damaging[:window]),
		YearsAvailable: len(points),
	}, nil
}

// matchSeason finds the record for the location key within one season's
// records. Duplicate county rows resolve to the one nearest the target by
// Euclidean distance on raw degrees; the pool is already one county, so the
// planar approximation is fine.
func matchSeason(records []model.StationRecord, key model.LocationKey, lat, lon float64) (model.StationRecord, bool) {
	var best model.StationRecord
	bestDist := math.Inf(1)
	found := false

	for _, r := range records {
		if r.Key() != key {
			continue
		}
		d := math.Hypot(r.Latitude-lat, r.Longitude-lon)
		if d < bestDist {
			best = r
			bestDist = d
			found = true
		}
	}
	return best, found
}

func windowStats(xs []float64) model.WindowStats {
	return model.WindowStats{
		Mean: stats.Mean(xs),
		COV:  stats.COV(xs),
	}
}
