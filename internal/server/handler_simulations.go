package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/me/rrsim/internal/report"
	"github.com/me/rrsim/internal/simulation"
	"github.com/me/rrsim/internal/store"
	"github.com/me/rrsim/internal/workload"
	"github.com/me/rrsim/pkg/model"
)

// listOne is the cheapest list query, used when only the total is needed.
var listOne = model.ListOptions{Limit: 1}

type randomRequest struct {
	workload.RandomParams
	Seed *uint64 `json:"seed,omitempty"`
}

// createSimulationRequest accepts either explicit processes or a random
// generator spec. Zero time_quantum / max_time fall back to server defaults.
type createSimulationRequest struct {
	workload.Workload
	Random *randomRequest `json:"random,omitempty"`
}

// processView adds the derived statistics to a process.
type processView struct {
	*model.Process
	TurnaroundTime *int               `json:"turnaround_time"`
	WaitingTime    *int               `json:"waiting_time"`
	State          model.ProcessState `json:"state"`
}

type runView struct {
	*model.Run
	Processes []processView `json:"processes"`
	Blocks    []model.Block `json:"blocks,omitempty"`
	Seed      *uint64       `json:"seed,omitempty"`
}

func newRunView(run *model.Run) runView {
	v := runView{Run: run, Processes: make([]processView, len(run.Processes))}
	for i, p := range run.Processes {
		pv := processView{Process: p, State: p.State()}
		if tat, ok := p.TurnaroundTime(); ok {
			pv.TurnaroundTime = &tat
		}
		if wt, ok := p.WaitingTime(); ok {
			pv.WaitingTime = &wt
		}
		v.Processes[i] = pv
	}
	if run.Timeline != nil {
		v.Blocks = report.Blocks(run.Timeline)
	}
	return v
}

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req createSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	sim, seed, apiErr := s.buildRequest(&req)
	if apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	out, err := simulation.Execute(sim, s.logger)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError(err.Error()))
		return
	}
	view := newRunView(out.Run)
	view.Seed = seed

	if r.URL.Query().Get("dry_run") == "true" {
		respondOK(w, reqID, view)
		return
	}

	if err := s.store.CreateRun(r.Context(), out.Run); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	respondCreated(w, reqID, view)
}

// buildRequest validates the request and applies server defaults.
func (s *Server) buildRequest(req *createSimulationRequest) (simulation.Request, *uint64, *model.APIError) {
	limits := s.config.Simulation
	sim := simulation.Request{
		Name:        req.Name,
		TimeQuantum: req.TimeQuantum,
		MaxTime:     req.MaxTime,
	}
	if sim.TimeQuantum == 0 {
		sim.TimeQuantum = limits.TimeQuantum
	}
	if sim.MaxTime == 0 {
		sim.MaxTime = limits.MaxTime
	}

	var details []model.FieldError
	if sim.TimeQuantum < 0 {
		details = append(details, model.FieldError{Field: "time_quantum", Message: "must be a positive integer"})
	}
	if sim.MaxTime < 0 {
		details = append(details, model.FieldError{Field: "max_time", Message: "must be a positive integer"})
	}
	if limits.MaxTimeLimit > 0 && sim.MaxTime > limits.MaxTimeLimit {
		details = append(details, model.FieldError{Field: "max_time", Message: "must be <= " + strconv.Itoa(limits.MaxTimeLimit)})
	}
	if req.Random != nil && len(req.Processes) > 0 {
		details = append(details, model.FieldError{Field: "random", Message: "cannot be combined with processes"})
	}
	if len(details) > 0 {
		return sim, nil, model.NewValidationError("invalid simulation request", details...)
	}

	var seed *uint64
	if req.Random != nil {
		v := s.seed()
		if req.Random.Seed != nil {
			v = *req.Random.Seed
		}
		seed = &v
		if apiErr := s.checkProcessCount(req.Random.Count); apiErr != nil {
			return sim, nil, apiErr
		}
		procs, err := workload.Random(workload.NewRand(v), req.Random.RandomParams)
		if err != nil {
			return sim, nil, asAPIError(err)
		}
		sim.Processes = procs
		return sim, seed, nil
	}

	if apiErr := s.checkProcessCount(len(req.Processes)); apiErr != nil {
		return sim, nil, apiErr
	}
	procs, err := req.Workload.Build()
	if err != nil {
		return sim, nil, asAPIError(err)
	}
	sim.Processes = procs
	return sim, nil, nil
}

func (s *Server) checkProcessCount(n int) *model.APIError {
	limit := s.config.Simulation.MaxProcesses
	if limit > 0 && n > limit {
		return model.NewValidationError("too many processes",
			model.FieldError{Field: "processes", Message: "at most " + strconv.Itoa(limit) + " processes are allowed"})
	}
	return nil
}

func asAPIError(err error) *model.APIError {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return model.NewValidationError(err.Error())
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	opts.Name = r.URL.Query().Get("name")
	opts.Clamp()

	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}

	views := make([]runView, len(runs))
	for i, run := range runs {
		views[i] = newRunView(run)
	}
	respondList(w, reqID, views, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(runs) < total,
	})
}

// loadRun fetches a run or writes the error response. ok is false when the
// response has already been written.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*model.Run, bool) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return nil, false
	}
	if run == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run", id))
		return nil, false
	}
	return run, true
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	respondOK(w, RequestIDFromContext(r.Context()), newRunView(run))
}

// handleGetGantt renders a stored run as text.
// Query: compact=true merges consecutive units; all=true lists unfinished
// processes in the table too.
func (s *Server) handleGetGantt(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if r.URL.Query().Get("compact") == "true" {
		report.CompactGantt(&buf, run.Timeline)
		buf.WriteString("\n")
	} else {
		report.Gantt(&buf, run.Timeline)
	}
	rows := run.CompletedProcesses()
	if r.URL.Query().Get("all") == "true" {
		rows = run.Processes
	}
	if len(rows) > 0 {
		report.ProcessTable(&buf, rows)
	}
	report.Averages(&buf, run.Summary)

	respondText(w, http.StatusOK, buf.String())
}

func (s *Server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteRun(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run", id))
			return
		}
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err.Error()))
		return
	}
	respondOK(w, reqID, map[string]string{"id": id, "status": "deleted"})
}

type randomWorkloadResponse struct {
	Seed uint64 `json:"seed"`
	*workload.Workload
}

func (s *Server) handleRandomWorkload(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	req := randomRequest{RandomParams: workload.DefaultRandomParams()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if apiErr := s.checkProcessCount(req.Count); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	seed := s.seed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	procs, err := workload.Random(workload.NewRand(seed), req.RandomParams)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, asAPIError(err))
		return
	}
	respondOK(w, reqID, randomWorkloadResponse{
		Seed:     seed,
		Workload: workload.FromProcesses("random", procs),
	})
}
