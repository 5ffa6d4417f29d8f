package model

import "fmt"

// Process is one schedulable unit of CPU-bound work.
//
// ID, ArrivalTime and BurstTime are fixed by the caller. RemainingTime,
// StartTime and CompletionTime are mutated by the scheduler during a run.
type Process struct {
	ID             int  `json:"id"`
	ArrivalTime    int  `json:"arrival_time"`
	BurstTime      int  `json:"burst_time"`
	RemainingTime  int  `json:"remaining_time"`
	StartTime      *int `json:"start_time"`
	CompletionTime *int `json:"completion_time"`
}

// NewProcess creates a Process with RemainingTime set to the full burst.
func NewProcess(id, arrival, burst int) *Process {
	return &Process{
		ID:            id,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		RemainingTime: burst,
	}
}

// Started reports whether the process has held the CPU at least once.
func (p *Process) Started() bool {
	return p.StartTime != nil
}

// Completed reports whether the process has finished its burst.
func (p *Process) Completed() bool {
	return p.CompletionTime != nil
}

// MarkStarted records the first dispatch. It is a no-op unless the process
// is still pending.
func (p *Process) MarkStarted(t int) {
	if !p.State().CanTransitionTo(ProcessStateStarted) {
		return
	}
	p.StartTime = &t
}

// MarkCompleted records the completion time. It is a no-op once the process
// is completed.
func (p *Process) MarkCompleted(t int) {
	if !p.State().CanTransitionTo(ProcessStateCompleted) {
		return
	}
	p.CompletionTime = &t
}

// TurnaroundTime returns completion - arrival. ok is false until completion.
func (p *Process) TurnaroundTime() (int, bool) {
	if p.CompletionTime == nil {
		return 0, false
	}
	return *p.CompletionTime - p.ArrivalTime, true
}

// WaitingTime returns turnaround - burst. ok is false until completion.
func (p *Process) WaitingTime() (int, bool) {
	tat, ok := p.TurnaroundTime()
	if !ok {
		return 0, false
	}
	return tat - p.BurstTime, true
}

// State returns the lifecycle state derived from the timing fields.
func (p *Process) State() ProcessState {
	switch {
	case p.CompletionTime != nil:
		return ProcessStateCompleted
	case p.StartTime != nil:
		return ProcessStateStarted
	default:
		return ProcessStatePending
	}
}

// Reset restores the mutable fields to their pre-simulation values.
func (p *Process) Reset() {
	p.RemainingTime = p.BurstTime
	p.StartTime = nil
	p.CompletionTime = nil
}

// Clone returns a deep copy of p.
func (p *Process) Clone() *Process {
	c := *p
	if p.StartTime != nil {
		v := *p.StartTime
		c.StartTime = &v
	}
	if p.CompletionTime != nil {
		v := *p.CompletionTime
		c.CompletionTime = &v
	}
	return &c
}

// Label returns the display name used in charts, e.g. "P3".
func (p *Process) Label() string {
	return fmt.Sprintf("P%d", p.ID)
}

// Validate checks the caller-supplied fields.
func (p *Process) Validate() []FieldError {
	var errs []FieldError
	if p.ID <= 0 {
		errs = append(errs, FieldError{Field: "id", Message: "must be a positive integer"})
	}
	if p.ArrivalTime < 0 {
		errs = append(errs, FieldError{Field: "arrival_time", Message: "must be >= 0"})
	}
	if p.BurstTime <= 0 {
		errs = append(errs, FieldError{Field: "burst_time", Message: "must be >= 1"})
	}
	return errs
}

// CloneAll deep-copies a process set.
func CloneAll(procs []*Process) []*Process {
	out := make([]*Process, len(procs))
	for i, p := range procs {
		out[i] = p.Clone()
	}
	return out
}

// ValidateSet validates every process and checks that ids are unique.
// Field paths are prefixed with the process index, e.g. "processes[2].burst_time".
func ValidateSet(procs []*Process) []FieldError {
	var errs []FieldError
	seen := make(map[int]int, len(procs))
	for i, p := range procs {
		for _, fe := range p.Validate() {
			fe.Field = fmt.Sprintf("processes[%d].%s", i, fe.Field)
			errs = append(errs, fe)
		}
		if p.ID > 0 {
			if j, dup := seen[p.ID]; dup {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("processes[%d].id", i),
					Message: fmt.Sprintf("duplicate id %d (also processes[%d])", p.ID, j),
				})
				continue
			}
			seen[p.ID] = i
		}
	}
	return errs
}
