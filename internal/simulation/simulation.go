// Package simulation turns a process set into a persisted-ready model.Run:
// it copies the input, drives the Round Robin scheduler and summarises the
// outcome.
package simulation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/me/rrsim/internal/logging"
	"github.com/me/rrsim/internal/report"
	"github.com/me/rrsim/internal/scheduler"
	"github.com/me/rrsim/pkg/model"
)

// Request describes one simulation.
type Request struct {
	Name        string
	TimeQuantum int
	MaxTime     int
	Processes   []*model.Process
}

// Outcome pairs the stored run with the scheduler's raw result.
type Outcome struct {
	Run    *model.Run
	Result *scheduler.Result
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return "run_" + uuid.New().String()
}

// Execute simulates req on copies of its processes, leaving the caller's
// records untouched. A nil logger discards output.
func Execute(req Request, logger *slog.Logger) (*Outcome, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	cfg := scheduler.Config{TimeQuantum: req.TimeQuantum, MaxTime: req.MaxTime}
	procs := model.CloneAll(req.Processes)
	for _, p := range procs {
		p.Reset()
	}

	rr := scheduler.NewRoundRobin(cfg, logger)
	res, err := rr.Simulate(procs)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	completed := make([]int, len(res.Completed))
	for i, p := range res.Completed {
		completed[i] = p.ID
	}

	run := &model.Run{
		ID:          NewRunID(),
		Name:        req.Name,
		TimeQuantum: rr.Config().TimeQuantum,
		MaxTime:     rr.Config().MaxTime,
		Processes:   procs,
		Timeline:    res.Timeline,
		Completed:   completed,
		Summary:     report.Summarize(procs, res.Completed, res.Timeline),
		CreatedAt:   time.Now().UTC(),
	}
	if run.Timeline == nil {
		run.Timeline = []model.TimelineEntry{}
	}
	logging.ForRun(logger, run.ID).Info("simulation complete",
		"processes", run.Summary.ProcessCount,
		"completed", run.Summary.CompletedCount,
		"elapsed", run.Summary.TotalTime,
		"cut_off", run.Summary.CutOff,
	)
	return &Outcome{Run: run, Result: res}, nil
}
