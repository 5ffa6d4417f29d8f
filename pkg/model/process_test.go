package model

import (
	"strings"
	"testing"
)

func TestNewProcess(t *testing.T) {
	p := NewProcess(1, 2, 5)
	if p.RemainingTime != 5 {
		t.Errorf("RemainingTime = %d, want 5", p.RemainingTime)
	}
	if p.Started() || p.Completed() {
		t.Error("new process should be neither started nor completed")
	}
	if p.State() != ProcessStatePending {
		t.Errorf("State = %s, want PENDING", p.State())
	}
	if _, ok := p.TurnaroundTime(); ok {
		t.Error("TurnaroundTime should be undefined before completion")
	}
	if _, ok := p.WaitingTime(); ok {
		t.Error("WaitingTime should be undefined before completion")
	}
}

func TestProcess_SetOnce(t *testing.T) {
	p := NewProcess(1, 0, 3)
	p.MarkStarted(2)
	p.MarkStarted(7)
	if *p.StartTime != 2 {
		t.Errorf("StartTime = %d, want 2", *p.StartTime)
	}
	if p.State() != ProcessStateStarted {
		t.Errorf("State = %s, want STARTED", p.State())
	}

	p.MarkCompleted(9)
	p.MarkCompleted(12)
	if *p.CompletionTime != 9 {
		t.Errorf("CompletionTime = %d, want 9", *p.CompletionTime)
	}
	if p.State() != ProcessStateCompleted {
		t.Errorf("State = %s, want COMPLETED", p.State())
	}
}

func TestProcess_NoStartAfterCompletion(t *testing.T) {
	p := NewProcess(1, 0, 1)
	p.MarkCompleted(1)
	p.MarkStarted(0)
	if p.StartTime != nil {
		t.Errorf("StartTime = %d, want nil on a completed process", *p.StartTime)
	}
	if p.State() != ProcessStateCompleted {
		t.Errorf("State = %s, want COMPLETED", p.State())
	}
}

func TestProcess_DerivedTimes(t *testing.T) {
	p := NewProcess(2, 1, 3)
	p.MarkStarted(3)
	p.MarkCompleted(6)

	tat, ok := p.TurnaroundTime()
	if !ok || tat != 5 {
		t.Errorf("TurnaroundTime = %d,%v, want 5,true", tat, ok)
	}
	wt, ok := p.WaitingTime()
	if !ok || wt != 2 {
		t.Errorf("WaitingTime = %d,%v, want 2,true", wt, ok)
	}
}

func TestProcess_CloneIsDeep(t *testing.T) {
	p := NewProcess(1, 0, 4)
	p.MarkStarted(0)
	c := p.Clone()
	*c.StartTime = 42
	c.RemainingTime = 1
	if *p.StartTime != 0 {
		t.Errorf("original StartTime changed to %d", *p.StartTime)
	}
	if p.RemainingTime != 4 {
		t.Errorf("original RemainingTime changed to %d", p.RemainingTime)
	}
}

func TestProcess_Reset(t *testing.T) {
	p := NewProcess(1, 0, 4)
	p.RemainingTime = 0
	p.MarkStarted(0)
	p.MarkCompleted(4)
	p.Reset()
	if p.RemainingTime != 4 || p.StartTime != nil || p.CompletionTime != nil {
		t.Errorf("Reset left %+v", p)
	}
}

func TestProcess_Validate(t *testing.T) {
	if errs := NewProcess(1, 0, 1).Validate(); len(errs) != 0 {
		t.Errorf("valid process: got %v", errs)
	}
	errs := (&Process{ID: 0, ArrivalTime: -1, BurstTime: 0}).Validate()
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}
}

func TestValidateSet_Duplicates(t *testing.T) {
	procs := []*Process{NewProcess(1, 0, 2), NewProcess(2, 0, 2), NewProcess(1, 3, 1)}
	errs := ValidateSet(procs)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Field != "processes[2].id" {
		t.Errorf("Field = %q, want processes[2].id", errs[0].Field)
	}
	if !strings.Contains(errs[0].Message, "duplicate id 1") {
		t.Errorf("Message = %q", errs[0].Message)
	}
}

func TestRun_CompletedProcesses(t *testing.T) {
	r := &Run{
		Processes: []*Process{NewProcess(1, 0, 1), NewProcess(2, 0, 1), NewProcess(3, 0, 1)},
		Completed: []int{3, 1},
	}
	got := r.CompletedProcesses()
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("CompletedProcesses = %v", got)
	}
}
