package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/resumelens/resumelens/internal/extract"
	"github.com/resumelens/resumelens/internal/models"
	"github.com/resumelens/resumelens/internal/storage"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// analyzeResponse is the AnalysisResult contract plus the history record ID.
type analyzeResponse struct {
	ID string `json:"id"`
	models.AnalysisResult
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("analyze request",
		zap.Int("resume_chars", len(req.ResumeText)),
		zap.Int("jd_chars", len(req.JobDescription)),
	)
	rec, err := s.service.AnalyzeText(r.Context(), &req)
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, analyzeResponse{ID: rec.ID, AnalysisResult: rec.Result})
}

func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	jd := r.FormValue("jobDescription")
	s.logger.Debug("analyze file request",
		zap.String("filename", header.Filename),
		zap.Int("size", len(content)),
	)

	rec, err := s.service.AnalyzeFile(r.Context(), header.Filename, content, jd)
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, analyzeResponse{ID: rec.ID, AnalysisResult: rec.Result})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	recs, err := s.storage.ListAnalyses(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("history list failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recs == nil {
		recs = []*models.AnalysisRecord{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"analyses": recs})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.storage.GetAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "analysis not found")
			return
		}
		s.logger.Error("history get failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete analysis request", zap.String("id", id))
	if err := s.storage.DeleteAnalysis(r.Context(), id); err != nil {
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.storage.CountAnalyses(r.Context())
	if err != nil {
		s.logger.Error("status: count analyses failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": count,
		"strategy": s.service.Strategy().Name(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondAnalysisError maps pipeline error kinds to HTTP statuses.
func (s *Server) respondAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInputLength):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, extract.ErrUnsupportedFormat):
		s.respondError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, extract.ErrCorruptDocument), errors.Is(err, extract.ErrEmptyDocument):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, extract.ErrTimeout):
		s.respondError(w, http.StatusGatewayTimeout, err.Error())
	default:
		s.logger.Error("analysis failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
