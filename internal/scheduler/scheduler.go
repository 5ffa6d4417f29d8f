package scheduler

import (
	"errors"
	"fmt"

	"github.com/me/rrsim/pkg/model"
)

// Scheduler runs a CPU scheduling simulation over a process set.
type Scheduler interface {
	// Simulate runs the simulation to completion or to the configured time
	// bound. It mutates RemainingTime, StartTime and CompletionTime of the
	// given processes in place.
	Simulate(processes []*model.Process) (*Result, error)
}

// Result holds the outputs of one simulation run.
type Result struct {
	// Timeline has one entry per simulated time unit, starting at 0.
	Timeline []model.TimelineEntry
	// Completed lists finished processes in completion order.
	Completed []*model.Process
}

// Elapsed returns the number of time units simulated.
func (r *Result) Elapsed() int {
	return len(r.Timeline)
}

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid scheduler config")

// ConfigError reports a configuration field that must be positive.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s must be a positive integer, got %d", ErrInvalidConfig, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config holds scheduler configuration.
type Config struct {
	// TimeQuantum is the most consecutive units a process may hold the CPU.
	TimeQuantum int
	// MaxTime bounds the number of simulated units.
	MaxTime int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{TimeQuantum: 3, MaxTime: 50}
}

// Validate rejects non-positive quantum or time bound.
func (c Config) Validate() error {
	if c.TimeQuantum <= 0 {
		return &ConfigError{Field: "time_quantum", Value: c.TimeQuantum}
	}
	if c.MaxTime <= 0 {
		return &ConfigError{Field: "max_time", Value: c.MaxTime}
	}
	return nil
}
