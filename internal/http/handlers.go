package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"neonspend/internal/core"
	"neonspend/internal/report"
	"neonspend/internal/session"
	"neonspend/internal/store"
)

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "Neon Spend API"})
}

// handleList returns every record, newest-created first.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	if items == nil {
		items = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, items)
}

type createRequest struct {
	Title    string      `json:"title"`
	Amount   *core.Money `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Amount == nil {
		writeError(w, http.StatusBadRequest, "title and amount are required")
		return
	}

	date := core.Today()
	if strings.TrimSpace(req.Date) != "" {
		var err error
		date, err = core.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
	}

	e := core.Expense{
		Title:    req.Title,
		Amount:   *req.Amount,
		Category: core.ParseCategory(req.Category),
		Date:     date,
	}
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateExpense(r.Context(), e)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create expense failed", "error", err, "title", e.Title)
		writeError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	s.afterMutation(r, func() error { return s.publisher.PublishCreated(r.Context(), created) })
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := s.store.DeleteExpense(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	s.afterMutation(r, func() error { return s.publisher.PublishDeleted(r.Context(), deleted) })
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAllExpenses(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Clear expenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear expenses")
		return
	}

	s.afterMutation(r, func() error { return s.publisher.PublishCleared(r.Context()) })
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleStats serves the full dashboard snapshot for the filtered
// collection. Snapshots are cached per filter until the next mutation.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := filterKey(filter)
	if snap, found := s.statsCache.Get(key); found {
		slog.DebugContext(r.Context(), "Stats cache hit", "key", key)
		writeJSON(w, http.StatusOK, snap)
		return
	}

	items, err := s.store.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}

	snap := session.New(items).WithFilter(filter).Snapshot()
	s.statsCache.Set(key, snap)
	writeJSON(w, http.StatusOK, snap)
}

// handleExport streams the filtered subset as csv (default), json, or yaml.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.store.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}

	enc := report.EncoderFor(strings.TrimSpace(r.URL.Query().Get("format")))
	filtered := report.ByDateDesc(report.Apply(items, filter))
	data, err := report.Export(filtered, enc)
	if errors.Is(err, report.ErrNoRows) {
		writeError(w, http.StatusNotFound, "no expenses to export")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export expenses")
		return
	}

	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="expenses.%s"`, enc.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// afterMutation purges cached snapshots and publishes the mutation event.
// Event failures are logged, never surfaced: the store write already
// succeeded.
func (s *Server) afterMutation(r *http.Request, publish func() error) {
	s.statsCache.Purge()
	if s.publisher == nil {
		return
	}
	if err := publish(); err != nil {
		slog.ErrorContext(r.Context(), "Failed to publish event", "error", err)
	}
}
