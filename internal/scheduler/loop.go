package scheduler

import (
	"log/slog"
	"sort"

	"github.com/me/rrsim/pkg/model"
)

// RoundRobin implements Scheduler with a fixed time quantum on a single CPU.
// It is safe for concurrent use as long as concurrent calls do not share
// Process records.
type RoundRobin struct {
	config Config
	logger *slog.Logger
}

// NewRoundRobin creates a Round Robin scheduler. A nil logger discards output.
func NewRoundRobin(cfg Config, logger *slog.Logger) *RoundRobin {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RoundRobin{
		config: cfg,
		logger: logger.With("component", "scheduler"),
	}
}

// Config returns the scheduler's configuration.
func (rr *RoundRobin) Config() Config {
	return rr.config
}

// Simulate runs a Round Robin simulation over processes with the given
// quantum and time bound, discarding log output.
func Simulate(processes []*model.Process, timeQuantum, maxTime int) (*Result, error) {
	return NewRoundRobin(Config{TimeQuantum: timeQuantum, MaxTime: maxTime}, nil).Simulate(processes)
}

// Simulate advances time one unit per iteration until every process has
// completed or MaxTime units have elapsed.
//
// Within a unit, newly arrived processes join the ready queue before a
// process whose quantum expired in that unit is re-enqueued.
func (rr *RoundRobin) Simulate(processes []*model.Process) (*Result, error) {
	if err := rr.config.Validate(); err != nil {
		return nil, err
	}

	// Arrival backlog, stable on equal arrival times. Records that already
	// completed in an earlier run have nothing left to execute.
	backlog := make([]*model.Process, 0, len(processes))
	for _, p := range processes {
		if !p.State().IsTerminal() {
			backlog = append(backlog, p)
		}
	}
	sort.SliceStable(backlog, func(i, j int) bool {
		return backlog[i].ArrivalTime < backlog[j].ArrivalTime
	})

	var (
		quantum = rr.config.TimeQuantum
		maxTime = rr.config.MaxTime
		queue   readyQueue
		current *model.Process
		next    int // index of the first unarrived process in backlog
		used    int // units the current process has run in this slice
		t       int
		res     = &Result{Completed: make([]*model.Process, 0, len(backlog))}
	)

	for t < maxTime && (next < len(backlog) || queue.len() > 0 || current != nil) {
		for next < len(backlog) && backlog[next].ArrivalTime <= t {
			queue.push(backlog[next])
			next++
		}

		if current == nil && queue.len() > 0 {
			current = queue.pop()
			current.MarkStarted(t)
			used = 0
			rr.logger.Debug("dispatch", "t", t, "pid", current.ID, "remaining", current.RemainingTime)
		}

		if current == nil {
			res.Timeline = append(res.Timeline, model.TimelineEntry{Time: t, Idle: true})
			t++
			continue
		}

		res.Timeline = append(res.Timeline, model.TimelineEntry{Time: t, PID: current.ID})
		current.RemainingTime--
		used++
		t++

		switch {
		case current.RemainingTime == 0:
			current.MarkCompleted(t)
			res.Completed = append(res.Completed, current)
			rr.logger.Debug("complete", "t", t, "pid", current.ID)
			current = nil
			used = 0
		case used == quantum:
			queue.push(current)
			rr.logger.Debug("preempt", "t", t, "pid", current.ID, "remaining", current.RemainingTime)
			current = nil
			used = 0
		}
	}

	rr.logger.Debug("simulation finished",
		"elapsed", t,
		"completed", len(res.Completed),
		"processes", len(backlog),
	)
	return res, nil
}
