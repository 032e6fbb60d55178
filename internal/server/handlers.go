package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hyperjump/homefax/internal/catalog"
	"github.com/hyperjump/homefax/internal/export"
	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
	"go.uber.org/zap"
)

// exportIDHeader carries a unique id for each download, for log correlation.
const exportIDHeader = "X-Export-ID"

// homeDetail is the single-home response.
type homeDetail struct {
	models.ScoredHome
	Band      scoring.Band      `json:"band"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "homes": s.catalog.Len()})
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	weights := s.config.Scoring.Weights
	percentages := make(map[string]int, models.NumSystems)
	for k, p := range weights.Percentages() {
		percentages[models.SystemKey(k).String()] = p
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"weights":     weights,
		"percentages": percentages,
	})
}

// query parses criteria and weights shared by listing and export.
func (s *Server) query(r *http.Request) (models.FilterCriteria, models.Weights, error) {
	q := r.URL.Query()
	criteria, err := parseCriteria(q, s.config.Search.YearMin, s.engine.Scorer().CurrentYear())
	if err != nil {
		return criteria, models.Weights{}, err
	}
	weights, err := parseWeights(q, s.config.Scoring.Weights)
	return criteria, weights, err
}

func (s *Server) handleListHomes(w http.ResponseWriter, r *http.Request) {
	criteria, weights, err := s.query(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("list homes request", zap.String("q", criteria.SearchText), zap.Int("min_score", criteria.MinScore))
	response := s.engine.Search(r.Context(), s.catalog.Homes(), criteria, weights)
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetHome(w http.ResponseWriter, r *http.Request) {
	home, ok := s.lookup(w, r)
	if !ok {
		return
	}
	weights, err := parseWeights(r.URL.Query(), s.config.Scoring.Weights)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	scorer := s.engine.Scorer()
	scored := scorer.Score(home, weights)
	s.respondJSON(w, http.StatusOK, homeDetail{
		ScoredHome: scored,
		Band:       scoring.BandFor(scored.Score),
		Breakdown:  scorer.Breakdown(&home, weights),
	})
}

func (s *Server) handleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("update notes request", zap.String("id", id))
	home, err := s.catalog.SetNotes(id, req.Notes)
	if err != nil {
		s.respondCatalogError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, home)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	home, ok := s.lookup(w, r)
	if !ok {
		return
	}
	format, ok := s.format(w, r, export.FormatHTML, export.ReportFormats...)
	if !ok {
		return
	}
	weights, err := parseWeights(r.URL.Query(), s.config.Scoring.Weights)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	report := export.BuildReport(s.engine.Scorer(), home, weights, s.now())
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, format, report); err != nil {
		s.logger.Error("report rendering failed", zap.String("id", home.ID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	name := strings.TrimSuffix(export.ReportFilename(home), ".html") + "." + format.Extension()
	s.respondDownload(w, format, name, buf.Bytes())
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	home, ok := s.lookup(w, r)
	if !ok {
		return
	}
	format, ok := s.format(w, r, export.FormatJSON, export.FormatJSON, export.FormatYAML)
	if !ok {
		return
	}
	var buf bytes.Buffer
	var err error
	if format == export.FormatYAML {
		err = export.DumpYAML(&buf, home)
	} else {
		err = export.DumpJSON(&buf, home)
	}
	if err != nil {
		s.logger.Error("raw dump failed", zap.String("id", home.ID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondDownload(w, format, export.RawFilename(home, format), buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r, export.FormatCSV, export.CollectionFormats...)
	if !ok {
		return
	}
	criteria, weights, err := s.query(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows := s.engine.FilterScored(s.catalog.Homes(), criteria, weights)
	var buf bytes.Buffer
	if err := export.WriteCollection(&buf, format, rows); err != nil {
		s.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondDownload(w, format, export.CollectionFilename(len(rows), format), buf.Bytes())
}

// lookup resolves the {id} URL parameter, responding 404 when absent.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (models.Home, bool) {
	home, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondCatalogError(w, err)
		return models.Home{}, false
	}
	return home, true
}

// format reads the format parameter, defaulting to def and accepting only allowed.
func (s *Server) format(w http.ResponseWriter, r *http.Request, def export.Format, allowed ...export.Format) (export.Format, bool) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return def, true
	}
	f, err := export.ParseFormatFor(raw, allowed)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return f, true
}

func (s *Server) respondCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrHomeNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrEmptyNote):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("catalog operation failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// respondDownload sends body as an attachment named name.
func (s *Server) respondDownload(w http.ResponseWriter, format export.Format, name string, body []byte) {
	id := uuid.New().String()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set(exportIDHeader, id)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("download write failed", zap.String("export_id", id), zap.Error(err))
		return
	}
	s.logger.Debug("download sent", zap.String("export_id", id), zap.String("file", name), zap.Int("bytes", len(body)))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
