package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
	"github.com/anatolykoptev/go_vetjobs/internal/toolutil"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, engine.FormatMetrics())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var in toolutil.SearchInput
	if !decode(w, r, &in) {
		return
	}
	p := in.Params()
	listings, err := s.svc.Search(r.Context(), p)
	if err != nil {
		respondServiceError(w, "search", err)
		return
	}
	respondJSON(w, http.StatusOK, toolutil.NewSearchOutput(p, listings))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var in toolutil.MatchInput
	if !decode(w, r, &in) {
		return
	}
	results, err := s.svc.Match(r.Context(), in.Filters.Params(), in.Skills)
	if err != nil {
		respondServiceError(w, "match", err)
		return
	}
	respondJSON(w, http.StatusOK, toolutil.NewMatchOutput(results))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var in toolutil.RecommendInput
	if !decode(w, r, &in) {
		return
	}
	limit := in.Limit
	if limit == 0 {
		limit = toolutil.DefaultRecommendLimit
	}
	recs, err := s.svc.Recommend(r.Context(), in.Filters.Params(), in.Profile, limit)
	if err != nil {
		respondServiceError(w, "recommend", err)
		return
	}
	respondJSON(w, http.StatusOK, toolutil.NewRecommendOutput(recs))
}

// decode reads and validates a JSON body. An empty body decodes to the zero value.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := toolutil.Validate(v); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func respondServiceError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, jobs.ErrAllSourcesExhausted):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	slog.Warn("api: "+op+" failed", slog.Int("status", status), slog.Any("error", err))
	respondError(w, status, err.Error())
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
