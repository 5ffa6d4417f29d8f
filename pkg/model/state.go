package model

// ProcessState is the lifecycle state of a Process within one simulation.
type ProcessState string

const (
	ProcessStatePending   ProcessState = "PENDING"
	ProcessStateStarted   ProcessState = "STARTED"
	ProcessStateCompleted ProcessState = "COMPLETED"
)

// String returns the string representation of the process state.
func (s ProcessState) String() string {
	return string(s)
}

// IsTerminal returns true if the process can no longer change.
func (s ProcessState) IsTerminal() bool {
	return s == ProcessStateCompleted
}

// ValidProcessTransitions defines the allowed state transitions for Processes.
// A process may complete on its first dispatch, so PENDING can skip STARTED
// from an observer's point of view.
var ValidProcessTransitions = map[ProcessState][]ProcessState{
	ProcessStatePending: {ProcessStateStarted, ProcessStateCompleted},
	ProcessStateStarted: {ProcessStateCompleted},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s ProcessState) CanTransitionTo(next ProcessState) bool {
	for _, allowed := range ValidProcessTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
