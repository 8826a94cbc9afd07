package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/query"
	"github.com/frostline/freezethaw-cli/internal/seasondata"
)

type stubProvider struct {
	seasons map[model.SeasonID][]model.StationRecord
}

func (s *stubProvider) AvailableSeasons(ctx context.Context) ([]model.SeasonID, error) {
	var out []model.SeasonID
	for season := range s.seasons {
		out = append(out, season)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *stubProvider) LoadSeason(ctx context.Context, season model.SeasonID) ([]model.StationRecord, error) {
	records, ok := s.seasons[season]
	if !ok {
		return nil, seasondata.ErrDataUnavailable
	}
	return records, nil
}

func (s *stubProvider) States(ctx context.Context, season model.SeasonID) ([]string, error) {
	records, ok := s.seasons[season]
	if !ok {
		return nil, seasondata.ErrDataUnavailable
	}
	seen := map[string]bool{}
	var states []string
	for _, r := range records {
		if !seen[r.State] {
			seen[r.State] = true
			states = append(states, r.State)
		}
	}
	sort.Strings(states)
	return states, nil
}

func testRouter() http.Handler {
	provider := &stubProvider{seasons: map[model.SeasonID][]model.StationRecord{
		"2023-2024": {
			{State: "Colorado", County: "Denver", Latitude: 39.7392, Longitude: -104.9903, TotalCycles: 50, DamagingCycles: 10},
			{State: "Colorado", County: "Weld", Latitude: 40.5, Longitude: -104.3, TotalCycles: 30, DamagingCycles: 5},
		},
		"2022-2023": {
			{State: "Colorado", County: "Denver", Latitude: 39.7392, Longitude: -104.9903, TotalCycles: 60, DamagingCycles: 12},
		},
	}}
	return newRouter(provider, query.NewService(provider), 0)
}

func doGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServe_Health(t *testing.T) {
	rec := doGet(t, testRouter(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServe_Seasons(t *testing.T) {
	rec := doGet(t, testRouter(), "/api/seasons")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Seasons []model.SeasonID `json:"seasons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []model.SeasonID{"2023-2024", "2022-2023"}, body.Seasons)
}

func TestServe_States(t *testing.T) {
	rec := doGet(t, testRouter(), "/api/states?season=2023-2024")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Colorado")

	rec = doGet(t, testRouter(), "/api/states")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, testRouter(), "/api/states?season=1999-2000")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_Stations(t *testing.T) {
	rec := doGet(t, testRouter(), "/api/stations?season=2023-2024&state=colorado")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stations []model.StationRecord `json:"stations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Stations, 2)
}

func TestServe_Query(t *testing.T) {
	rec := doGet(t, testRouter(), "/api/query?season=2023-2024&state=Colorado&lat=39.74&lon=-104.99")
	require.Equal(t, http.StatusOK, rec.Code)

	var res query.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Station)
	assert.Equal(t, "Denver", res.Station.County)
	require.NotNil(t, res.Statistics)
	assert.Equal(t, 2, res.Statistics.YearsAvailable)
}

func TestServe_QueryBadInput(t *testing.T) {
	router := testRouter()

	rec := doGet(t, router, "/api/query?season=2023-2024&state=Colorado&lat=abc&lon=-104.99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, router, "/api/query?season=2023-2024&state=Colorado&lat=99&lon=-104.99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, router, "/api/query?season=2023-2024&state=&lat=39.74&lon=-104.99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_QueryUnknownSeason(t *testing.T) {
	rec := doGet(t, testRouter(), "/api/query?season=1999-2000&state=Colorado&lat=39.74&lon=-104.99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_QueryNoStationInRange(t *testing.T) {
	rec := doGet(t, testRouter(), "/api/query?season=2023-2024&state=Colorado&lat=37.0&lon=-102.1")
	require.Equal(t, http.StatusOK, rec.Code)

	var res query.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.StateFound)
	assert.Nil(t, res.Station)
	assert.Len(t, res.StationsInState, 2)
}

func TestServe_RateLimit(t *testing.T) {
	provider := &stubProvider{seasons: map[model.SeasonID][]model.StationRecord{}}
	router := newRouter(provider, query.NewService(provider), 1)

	// Burst is limit+1; the third immediate request must be rejected.
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := doGet(t, router, "/health")
		codes = append(codes, rec.Code)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
