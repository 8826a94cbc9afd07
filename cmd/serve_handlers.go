package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/query"
	"github.com/frostline/freezethaw-cli/internal/seasondata"
)

type apiHandlers struct {
	provider seasondata.Provider
	svc      *query.Service
}

func (h *apiHandlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *apiHandlers) seasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.provider.AvailableSeasons(r.Context())
	if err != nil {
		writeProviderError(w, err)
		return
	}
	model.SortSeasonsDesc(seasons)
	writeJSON(w, http.StatusOK, map[string]any{"seasons": seasons})
}

func (h *apiHandlers) states(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		writeError(w, http.StatusBadRequest, "season parameter is required")
		return
	}
	states, err := h.provider.States(r.Context(), model.SeasonID(season))
	if err != nil {
		writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"season": season, "states": states})
}

func (h *apiHandlers) stations(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		writeError(w, http.StatusBadRequest, "season parameter is required")
		return
	}
	records, err := h.provider.LoadSeason(r.Context(), model.SeasonID(season))
	if err != nil {
		writeProviderError(w, err)
		return
	}
	if state := r.URL.Query().Get("state"); state != "" {
		records = query.FilterByState(records, state)
	}
	writeJSON(w, http.StatusOK, map[string]any{"season": season, "stations": records})
}

func (h *apiHandlers) query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat must be a decimal degree value")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon must be a decimal degree value")
		return
	}

	req := query.Request{
		Season:    model.SeasonID(q.Get("season")),
		State:     q.Get("state"),
		Latitude:  lat,
		Longitude: lon,
	}
	if radius := q.Get("radius_km"); radius != "" {
		req.MaxRadiusKM, err = strconv.ParseFloat(radius, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "radius_km must be numeric")
			return
		}
	}

	res, err := h.svc.Run(r.Context(), req)
	if err != nil {
		switch {
		case eris.Is(err, seasondata.ErrDataUnavailable):
			writeError(w, http.StatusNotFound, "no data for the requested season")
		case isInputViolation(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			zap.L().Error("query failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// isInputViolation distinguishes malformed-input errors from infrastructure
// failures so the API can answer 400 instead of 500.
func isInputViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "out of range") || strings.Contains(msg, "must not be empty")
}

func writeProviderError(w http.ResponseWriter, err error) {
	if eris.Is(err, seasondata.ErrDataUnavailable) {
		writeError(w, http.StatusNotFound, "no data for the requested season")
		return
	}
	zap.L().Error("provider error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
