package store

import (
	"context"
	"errors"

	"github.com/me/rrsim/pkg/model"
)

// ErrNotFound is returned by mutations that target a missing record.
var ErrNotFound = errors.New("not found")

// Store defines the persistence layer for simulation runs.
type Store interface {
	// CreateRun persists a finished simulation.
	CreateRun(ctx context.Context, run *model.Run) error
	// GetRun returns nil, nil when no run has the given id.
	GetRun(ctx context.Context, id string) (*model.Run, error)
	// ListRuns returns runs newest first, without their timelines, plus the
	// total number of runs.
	ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error)
	DeleteRun(ctx context.Context, id string) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
