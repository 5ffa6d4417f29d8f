package model

import "time"

// Run is a persisted simulation: its parameters, the final state of every
// process, and the outputs the scheduler produced.
type Run struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TimeQuantum int             `json:"time_quantum"`
	MaxTime     int             `json:"max_time"`
	Processes   []*Process      `json:"processes"`
	Timeline    []TimelineEntry `json:"timeline"`
	Completed   []int           `json:"completed"` // pids in completion order
	Summary     Summary         `json:"summary"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CompletedProcesses returns the run's processes in completion order.
func (r *Run) CompletedProcesses() []*Process {
	byID := make(map[int]*Process, len(r.Processes))
	for _, p := range r.Processes {
		byID[p.ID] = p
	}
	out := make([]*Process, 0, len(r.Completed))
	for _, id := range r.Completed {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Summary aggregates completion statistics for one run.
// The averages are only meaningful when CompletedCount > 0.
type Summary struct {
	ProcessCount      int     `json:"process_count"`
	CompletedCount    int     `json:"completed_count"`
	AvgWaitingTime    float64 `json:"avg_waiting_time"`
	AvgTurnaroundTime float64 `json:"avg_turnaround_time"`
	TotalTime         int     `json:"total_time"`
	CutOff            bool    `json:"cut_off"` // some processes were unfinished at max_time
}

// HasCompletions reports whether any process finished.
func (s Summary) HasCompletions() bool {
	return s.CompletedCount > 0
}
