// Package query composes the location resolver and trend aggregator into the
// single lookup the CLI and HTTP surfaces expose: season + state + coordinate
// in, nearest station and its cross-season statistics out.
package query

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/resolver"
	"github.com/frostline/freezethaw-cli/internal/seasondata"
	"github.com/frostline/freezethaw-cli/internal/trend"
)

// Request is one location lookup.
type Request struct {
	Season    model.SeasonID `json:"season"`
	State     string         `json:"state"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`

	// MaxRadiusKM bounds the station search; 0 means the default (50 km).
	MaxRadiusKM float64 `json:"max_radius_km,omitempty"`
}

// Result is the structured answer to one Request. Exactly one of three
// shapes comes back without an error:
//   - StateFound false: the requested state has no records this season
//     (AvailableStates lists what the season does carry).
//   - StateFound true, Station nil: no station within the radius;
//     StationsInState lists the candidates that were considered.
//   - Station set: the nearest match, with Statistics when any season of
//     history exists for it (nil Statistics means no historical data).
type Result struct {
	QueryID string         `json:"query_id"`
	Season  model.SeasonID `json:"season"`

	StateFound      bool     `json:"state_found"`
	AvailableStates []string `json:"available_states,omitempty"`

	Station         *model.StationRecord  `json:"station,omitempty"`
	DistanceKM      float64               `json:"distance_km,omitempty"`
	StationsInState []model.StationRecord `json:"stations_in_state,omitempty"`

	Statistics *model.Statistics `json:"statistics,omitempty"`
}

// Service runs lookups against a season data provider.
type Service struct {
	provider   seasondata.Provider
	aggregator *trend.Aggregator
}

// NewService creates a query service. Trend options (e.g. the recent window
// length) are passed through to the aggregator.
func NewService(provider seasondata.Provider, opts ...trend.Option) *Service {
	return &Service{
		provider:   provider,
		aggregator: trend.New(provider, opts...),
	}
}

// Run executes one lookup. Input violations (empty state, bad coordinates)
// and an unavailable requested season return errors; absent stations and
// absent history are reported in the Result, not as errors.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.State) == "" {
		return nil, eris.New("query: state must not be empty")
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return nil, eris.Errorf("query: latitude %v out of range [-90, 90]", req.Latitude)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return nil, eris.Errorf("query: longitude %v out of range [-180, 180]", req.Longitude)
	}

	// The requested season must load; there is nothing to resolve against
	// otherwise. This is the one provider failure that is fatal.
	records, err := s.provider.LoadSeason(ctx, req.Season)
	if err != nil {
		return nil, eris.Wrapf(err, "query: load season %s", req.Season)
	}

	result := &Result{
		QueryID: uuid.NewString(),
		Season:  req.Season,
	}

	candidates := FilterByState(records, req.State)
	if len(candidates) == 0 {
		states, err := s.provider.States(ctx, req.Season)
		if err != nil {
			zap.L().Warn("query: listing states after state miss", zap.Error(err))
		}
		result.AvailableStates = states
		return result, nil
	}
	result.StateFound = true

	station, distKM, err := resolver.Resolve(req.Latitude, req.Longitude, candidates, req.MaxRadiusKM)
	if err != nil {
		return nil, err
	}
	if station == nil {
		result.StationsInState = candidates
		return result, nil
	}
	result.Station = station
	result.DistanceKM = distKM

	seasons, err := s.provider.AvailableSeasons(ctx)
	if err != nil {
		// History is additive; the resolved station is still a valid answer.
		zap.L().Warn("query: listing seasons for trend aggregation", zap.Error(err))
		return result, nil
	}

	stats, err := s.aggregator.Aggregate(ctx, station.Key(), station.Latitude, station.Longitude, seasons)
	if err != nil {
		return nil, err
	}
	result.Statistics = stats

	return result, nil
}

// FilterByState keeps records whose state contains the requested name,
// case-insensitively. Containment (not equality) tolerates source data
// with decorated state cells like "Colorado (CDOT)".
func FilterByState(records []model.StationRecord, state string) []model.StationRecord {
	needle := strings.ToUpper(strings.TrimSpace(state))
	var out []model.StationRecord
	for _, r := range records {
		if strings.Contains(strings.ToUpper(r.State), needle) {
			out = append(out, r)
		}
	}
	return out
}
