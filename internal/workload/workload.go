// Package workload supplies process sets to the scheduler: from workload
// files, from a seeded random generator, or from interactive prompts.
package workload

import (
	"fmt"

	"github.com/me/rrsim/pkg/model"
)

// ProcessSpec is a process as written in a workload file. ID may be omitted,
// in which case it is assigned from the process's position.
type ProcessSpec struct {
	ID          int `yaml:"id,omitempty" json:"id,omitempty"`
	ArrivalTime int `yaml:"arrival_time" json:"arrival_time"`
	BurstTime   int `yaml:"burst_time" json:"burst_time"`
}

// Workload is a named process set with optional simulation parameters.
// Zero TimeQuantum or MaxTime means "use the caller's default".
type Workload struct {
	Name        string        `yaml:"name,omitempty" json:"name,omitempty"`
	TimeQuantum int           `yaml:"time_quantum,omitempty" json:"time_quantum,omitempty"`
	MaxTime     int           `yaml:"max_time,omitempty" json:"max_time,omitempty"`
	Processes   []ProcessSpec `yaml:"processes" json:"processes"`
}

// Build converts the specs into fresh Process records. Missing ids are
// assigned densely as 1..n in file order; a mix of explicit and missing ids
// is rejected. The result is validated, including id uniqueness.
func (w *Workload) Build() ([]*model.Process, error) {
	explicit := 0
	for _, s := range w.Processes {
		if s.ID != 0 {
			explicit++
		}
	}
	if explicit != 0 && explicit != len(w.Processes) {
		return nil, model.NewValidationError("invalid workload",
			model.FieldError{Field: "processes", Message: "either every process sets an id or none does"})
	}

	procs := make([]*model.Process, len(w.Processes))
	for i, s := range w.Processes {
		id := s.ID
		if explicit == 0 {
			id = i + 1
		}
		procs[i] = model.NewProcess(id, s.ArrivalTime, s.BurstTime)
	}
	if errs := model.ValidateSet(procs); len(errs) > 0 {
		return nil, model.NewValidationError("invalid workload", errs...)
	}
	return procs, nil
}

// FromProcesses captures a process set as a Workload, e.g. to write a
// generated set back out.
func FromProcesses(name string, procs []*model.Process) *Workload {
	w := &Workload{Name: name, Processes: make([]ProcessSpec, len(procs))}
	for i, p := range procs {
		w.Processes[i] = ProcessSpec{ID: p.ID, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime}
	}
	return w
}

// String summarises the workload for log lines.
func (w *Workload) String() string {
	name := w.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s (%d processes)", name, len(w.Processes))
}
