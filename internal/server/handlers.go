package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ateneolabs/concordia/internal/models"
)

// scoreRequest is the wire form of a scoring job. Rows and catalog
// entries arrive as loose field maps and go through the resolver, so
// clients can post spreadsheet-shaped records without renaming columns.
type scoreRequest struct {
	Strategy string           `json:"strategy,omitempty"`
	Rows     []map[string]any `json:"rows"`
	Catalog  []map[string]any `json:"catalog,omitempty"`
	Save     bool             `json:"save,omitempty"`
}

type scoreResponse struct {
	RunID string `json:"run_id,omitempty"`
	*models.ScoreResult
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scoreReq := &models.ScoreRequest{
		Strategy: req.Strategy,
		Rows:     s.resolver.Records(req.Rows),
		Catalog:  s.resolver.Catalog(req.Catalog),
	}
	if scoreReq.Strategy == "" {
		scoreReq.Strategy = s.config.Scoring.Strategy
	}
	if err := scoreReq.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("Score request",
		zap.String("strategy", scoreReq.Strategy),
		zap.Int("rows", len(scoreReq.Rows)),
		zap.Int("catalog", len(scoreReq.Catalog)),
		zap.Bool("save", req.Save))

	result, err := s.engine.Score(r.Context(), scoreReq)
	if err != nil {
		s.logger.Error("Scoring failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "scoring failed")
		return
	}

	resp := scoreResponse{ScoreResult: result}
	if req.Save {
		run := models.NewRunFromResult(uuid.New().String(), result)
		if err := s.storage.CreateRun(r.Context(), run, result.Rows); err != nil {
			s.logger.Error("Failed to persist run", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, "failed to persist run")
			return
		}
		resp.RunID = run.ID
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	offset := 0
	limit := 20
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	runs, err := s.storage.ListRuns(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("Failed to list runs", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []*models.ScoringRun{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.storage.GetRun(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "run not found")
		return
	}
	rows, err := s.storage.GetRunRows(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to load run rows", zap.Error(err), zap.String("run_id", id))
		s.respondError(w, http.StatusInternalServerError, "failed to load run rows")
		return
	}
	if rows == nil {
		rows = []models.ScoredRow{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"run":  run,
		"rows": rows,
	})
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Probe first so a missing run maps to 404 rather than a storage error.
	if _, err := s.storage.GetRun(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, "run not found")
		return
	}
	if err := s.storage.DeleteRun(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete run", zap.Error(err), zap.String("run_id", id))
		s.respondError(w, http.StatusInternalServerError, "failed to delete run")
		return
	}

	s.logger.Info("Run deleted", zap.String("run_id", id))
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "run_id": id})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"categories":       s.config.Scoring.Categories,
		"default_category": s.config.Scoring.DefaultCategory,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	runCount, err := s.storage.CountRuns(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to count runs")
		return
	}
	rowCount, err := s.storage.CountRows(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to count rows")
		return
	}

	resp := map[string]any{
		"runs":        runCount,
		"scored_rows": rowCount,
		"config": map[string]any{
			"strategy":         s.config.Scoring.Strategy,
			"workers":          s.config.Scoring.Workers,
			"ngram_min":        s.config.Scoring.NgramMin,
			"ngram_max":        s.config.Scoring.NgramMax,
			"categories":       len(s.config.Scoring.Categories),
			"default_category": s.config.Scoring.DefaultCategory,
			"database_path":    s.config.Storage.DatabasePath,
		},
	}
	if size, err := s.storage.DiskUsageBytes(); err == nil {
		resp["disk_usage_bytes"] = size
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
