// Package ui serves a read-only HTML view of stored runs.
package ui

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/me/rrsim/internal/report"
	"github.com/me/rrsim/internal/store"
	"github.com/me/rrsim/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a new UI handler.
func New(st store.Store, logger *slog.Logger) *UI {
	return &UI{
		store:  st,
		logger: logger.With("component", "ui"),
	}
}

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Get("/", ui.HandleDashboard)
	r.Get("/runs/{id}", ui.HandleRunDetail)
}

// processRow is a process with its derived statistics pre-rendered.
type processRow struct {
	*model.Process
	State      model.ProcessState
	Turnaround string
	Waiting    string
}

// HandleDashboard lists stored runs, newest first.
func (ui *UI) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	opts := model.DefaultListOptions()
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		opts.Offset = v
	}
	opts.Name = r.URL.Query().Get("name")
	opts.Clamp()

	runs, total, err := ui.store.ListRuns(r.Context(), opts)
	if err != nil {
		ui.renderError(w, "Failed to list runs", err)
		return
	}

	ui.render(w, http.StatusOK, "dashboard", map[string]any{
		"Title":      "Runs - rrsim",
		"Runs":       runs,
		"Total":      total,
		"Name":       opts.Name,
		"HasMore":    opts.Offset+len(runs) < total,
		"NextOffset": opts.Offset + len(runs),
	})
}

// HandleRunDetail shows one run's timeline and process statistics.
func (ui *UI) HandleRunDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := ui.store.GetRun(r.Context(), id)
	if err != nil {
		ui.renderError(w, "Failed to load run", err)
		return
	}
	if run == nil {
		ui.renderNotFound(w, "Run "+id+" not found")
		return
	}

	rows := make([]processRow, len(run.Processes))
	for i, p := range run.Processes {
		tat, tatOK := p.TurnaroundTime()
		wt, wtOK := p.WaitingTime()
		rows[i] = processRow{
			Process:    p,
			State:      p.State(),
			Turnaround: formatOptional(tat, tatOK),
			Waiting:    formatOptional(wt, wtOK),
		}
	}

	ui.render(w, http.StatusOK, "run", map[string]any{
		"Title":  run.ID + " - rrsim",
		"Run":    run,
		"Blocks": report.Blocks(run.Timeline),
		"Units":  len(run.Timeline),
		"Rows":   rows,
	})
}

func formatOptional(v int, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.Itoa(v)
}

func (ui *UI) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, name, data); err != nil {
		ui.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	ui.logger.Error(message, "error", err)
	ui.render(w, http.StatusInternalServerError, "error", map[string]any{
		"Title":   "Error - rrsim",
		"Message": message,
	})
}

func (ui *UI) renderNotFound(w http.ResponseWriter, message string) {
	ui.render(w, http.StatusNotFound, "error", map[string]any{
		"Title":   "Not Found - rrsim",
		"Message": message,
	})
}
