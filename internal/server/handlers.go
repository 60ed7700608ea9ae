package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jimezsa/creatorleads/internal/export"
	"github.com/jimezsa/creatorleads/internal/extract"
	"github.com/jimezsa/creatorleads/internal/models"
)

const maxBodyBytes = 1 << 20

type searchRequest struct {
	Query             *models.SearchQuery `json:"query"`
	ExistingUsernames []string            `json:"existingUsernames"`
}

type exportRequest struct {
	Leads []models.CreatorLead `json:"leads"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := s.searcher.Search(r.Context(), *req.Query, req.ExistingUsernames)
	if err != nil {
		status, message := classifyError(err)
		s.logger.Error().Err(err).Int("status", status).Msg("search failed")
		writeError(w, status, message)
		return
	}

	if result.Leads == nil {
		result.Leads = []models.CreatorLead{}
	}
	if result.Sources == nil {
		result.Sources = []models.Source{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(s.now())))
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, req.Leads); err != nil {
		s.logger.Warn().Err(err).Msg("write csv")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

func classifyError(err error) (int, string) {
	var cfgErr *extract.ConfigurationError
	if errors.As(err, &cfgErr) {
		return http.StatusInternalServerError, cfgErr.Error()
	}
	var upstreamErr *extract.UpstreamError
	if errors.As(err, &upstreamErr) {
		return http.StatusBadGateway, upstreamErr.Error()
	}
	return http.StatusInternalServerError, "lead search failed"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
