package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amityadav/sitefinder/internal/core"
	"github.com/amityadav/sitefinder/internal/enrich"
	"github.com/amityadav/sitefinder/internal/history"
	"github.com/amityadav/sitefinder/internal/leads"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Enricher fills contact details for a record from its website
type Enricher interface {
	Enrich(ctx context.Context, b leads.Business) (leads.Business, error)
}

// Handler serves the JSON API over one search session
type Handler struct {
	core     *core.SearchCore
	history  history.Store
	enricher Enricher
	logger   *zap.Logger
}

func NewHandler(c *core.SearchCore, hist history.Store, enricher Enricher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		core:     c,
		history:  hist,
		enricher: enricher,
		logger:   logger.Named("api"),
	}
}

// Register mounts the API routes on r
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", h.search)
		r.Get("/session", h.session)
		r.Put("/session/tab", h.setTab)

		r.Get("/businesses", h.businesses)
		r.Get("/businesses/{id}/prompt", h.prompt)
		r.Get("/businesses/{id}/outreach", h.outreach)
		r.Post("/businesses/{id}/enrich", h.enrich)

		r.Get("/export/csv", h.exportCSV)
		r.Get("/export/json", h.exportJSON)

		r.Get("/history", h.listHistory)
		r.Delete("/history", h.clearHistory)
	})
}

type searchRequest struct {
	Query string `json:"query"`
}

type tabRequest struct {
	Tab string `json:"tab"`
}

type textResponse struct {
	Text string `json:"text"`
}

type historyResponse struct {
	Queries []string `json:"queries"`
}

type errorResponse struct {
	Error   string         `json:"error"`
	Session *core.Snapshot `json:"session,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.core.Search(r.Context(), req.Query)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, core.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "query is required")
	case errors.Is(err, core.ErrSearchInProgress):
		writeError(w, http.StatusConflict, "a search is already in progress")
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: res.State.Error, Session: &res.Snapshot})
	}
}

func (h *Handler) session(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.core.Snapshot())
}

func (h *Handler) setTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tab, err := leads.ParseTab(req.Tab)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.core.SetTab(tab)
	writeJSON(w, http.StatusOK, h.core.Snapshot())
}

func (h *Handler) businesses(w http.ResponseWriter, r *http.Request) {
	tab, ok := h.tabParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.core.ResultsFor(tab))
}

func (h *Handler) prompt(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: leads.BuildPrompt(b)})
}

func (h *Handler) outreach(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: leads.OutreachMessage(b)})
}

func (h *Handler) enrich(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if h.enricher == nil {
		writeError(w, http.StatusServiceUnavailable, "enrichment is disabled")
		return
	}

	enriched, err := h.enricher.Enrich(r.Context(), b)
	if err != nil {
		if errors.Is(err, enrich.ErrNoWebsite) || errors.Is(err, enrich.ErrPrivateAddress) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Warn("enrichment failed", zap.String("id", b.ID), zap.String("website", b.Website), zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to read the business website")
		return
	}

	if err := h.core.ReplaceBusiness(enriched); err != nil {
		// A new search replaced the batch while the website was being read.
		writeError(w, http.StatusConflict, "results changed during enrichment")
		return
	}
	writeJSON(w, http.StatusOK, enriched)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, leads.CSVFileName, "text/csv; charset=utf-8", leads.WriteCSV)
}

func (h *Handler) exportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, leads.JSONFileName, "application/json", leads.WriteJSON)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, filename, contentType string, write func(io.Writer, []leads.Business) error) {
	tab, ok := h.tabParam(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, h.core.ResultsFor(tab)); err != nil {
		h.logger.Error("export failed", zap.String("file", filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to export results")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	queries, err := h.history.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if queries == nil {
		queries = []string{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Queries: queries})
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// tabParam reads ?tab=, falling back to the session's active tab
func (h *Handler) tabParam(w http.ResponseWriter, r *http.Request) (leads.Tab, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("tab"))
	if raw == "" {
		return h.core.Snapshot().ActiveTab, true
	}
	tab, err := leads.ParseTab(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return tab, true
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (leads.Business, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	b, err := h.core.Business(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "business not found")
		return leads.Business{}, false
	}
	return b, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
