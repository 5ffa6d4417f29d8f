package ui

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/me/rrsim/internal/simulation"
	"github.com/me/rrsim/internal/store"
	"github.com/me/rrsim/pkg/model"
)

func testUI(t *testing.T) (*chi.Mux, store.Store) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	r := chi.NewRouter()
	New(st, logger).RegisterRoutes(r)
	return r, st
}

func storeRun(t *testing.T, st store.Store, name string, maxTime int, procs ...*model.Process) *model.Run {
	t.Helper()
	out, err := simulation.Execute(simulation.Request{Name: name, TimeQuantum: 3, MaxTime: maxTime, Processes: procs}, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	out.Run.CreatedAt = time.Now().Add(-2 * time.Hour)
	if err := st.CreateRun(context.Background(), out.Run); err != nil {
		t.Fatalf("create run: %v", err)
	}
	return out.Run
}

func get(t *testing.T, h http.Handler, path string, wantStatus int) string {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("GET %s: status=%d, want %d, body=%s", path, w.Code, wantStatus, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("GET %s: content type = %q, want text/html", path, ct)
	}
	return w.Body.String()
}

func TestDashboard_Empty(t *testing.T) {
	h, _ := testUI(t)
	body := get(t, h, "/", http.StatusOK)
	if !strings.Contains(body, "No runs stored yet") {
		t.Errorf("empty dashboard missing hint:\n%s", body)
	}
}

func TestDashboard_ListsRuns(t *testing.T) {
	h, st := testUI(t)
	run := storeRun(t, st, "textbook", 50,
		model.NewProcess(1, 0, 5), model.NewProcess(2, 1, 3), model.NewProcess(3, 2, 1))
	storeRun(t, st, "late", 4, model.NewProcess(1, 10, 1))

	body := get(t, h, "/", http.StatusOK)
	for _, want := range []string{"/runs/" + run.ID, "textbook", "3 / 3", "3.33", "2 hours ago", "(cut off)"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestDashboard_NameFilter(t *testing.T) {
	h, st := testUI(t)
	storeRun(t, st, "textbook", 50, model.NewProcess(1, 0, 2))
	storeRun(t, st, "late", 4, model.NewProcess(1, 10, 1))

	body := get(t, h, "/?name=TEXT", http.StatusOK)
	if !strings.Contains(body, "textbook") || strings.Contains(body, ">late<") {
		t.Errorf("filtered dashboard should list only textbook:\n%s", body)
	}
	body = get(t, h, "/?name=nothing", http.StatusOK)
	if !strings.Contains(body, "No runs match") {
		t.Errorf("missing no-match hint:\n%s", body)
	}
}

func TestRunDetail(t *testing.T) {
	h, st := testUI(t)
	run := storeRun(t, st, "cutoff", 4, model.NewProcess(1, 0, 2), model.NewProcess(2, 1, 9))

	body := get(t, h, "/runs/"+run.ID, http.StatusOK)
	for _, want := range []string{"CPU timeline", ">P1<", "COMPLETED", "STARTED", "Simulation stopped at t=4"} {
		if !strings.Contains(body, want) {
			t.Errorf("detail page missing %q", want)
		}
	}
}

func TestRunDetail_NotFound(t *testing.T) {
	h, _ := testUI(t)
	body := get(t, h, "/runs/run_missing", http.StatusNotFound)
	if !strings.Contains(body, "Run run_missing not found") {
		t.Errorf("not-found page missing message:\n%s", body)
	}
}

func TestRenderTemplate_Unknown(t *testing.T) {
	var sb strings.Builder
	if err := renderTemplate(&sb, "missing", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
