package model

import "testing"

func TestProcessState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    ProcessState
		terminal bool
	}{
		{ProcessStatePending, false},
		{ProcessStateStarted, false},
		{ProcessStateCompleted, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.terminal {
			t.Errorf("ProcessState(%q).IsTerminal() = %v, want %v", tt.state, got, tt.terminal)
		}
	}
}

func TestProcessState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from  ProcessState
		to    ProcessState
		valid bool
	}{
		{ProcessStatePending, ProcessStateStarted, true},
		{ProcessStatePending, ProcessStateCompleted, true},
		{ProcessStateStarted, ProcessStateCompleted, true},
		{ProcessStateStarted, ProcessStatePending, false},
		{ProcessStateCompleted, ProcessStateStarted, false},
		{ProcessStateCompleted, ProcessStatePending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}
