package core

import (
	"context"
	"time"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

// StateRepository holds the latest known state per vehicle.
type StateRepository interface {
	// Get retrieves the current state of a vehicle, or ErrNotFound.
	Get(ctx context.Context, vehicleID string) (*model.VehicleState, error)

	// List returns a snapshot of every vehicle's current state. Order is
	// unspecified.
	List(ctx context.Context) ([]*model.VehicleState, error)

	// Upsert unconditionally replaces the state for the vehicle, creating
	// the entry if absent. Writes to the same vehicle are serialized.
	Upsert(ctx context.Context, state *model.VehicleState) error
}

// HistoryQuery selects a slice of a vehicle's telemetry history.
// From and To are inclusive; a nil bound is open.
type HistoryQuery struct {
	VehicleID string
	From      *time.Time
	To        *time.Time

	// Limit caps the result size; 0 means DefaultHistoryLimit.
	Limit int
}

// DefaultHistoryLimit is applied when a query does not set a limit.
const DefaultHistoryLimit = 100

// HistoryRepository is the append-only telemetry log.
type HistoryRepository interface {
	// Append records a sample. It never mutates prior entries.
	Append(ctx context.Context, sample *model.TelemetrySample) error

	// Query returns matching samples sorted by timestamp descending,
	// truncated to the query limit.
	Query(ctx context.Context, q HistoryQuery) ([]*model.TelemetrySample, error)
}

// CommandRepository persists dispatched commands.
type CommandRepository interface {
	// Create stores a newly dispatched command.
	Create(ctx context.Context, cmd *model.Command) error

	// Get retrieves a command by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Command, error)

	// UpdateStatus persists an externally reported lifecycle transition
	// after validating it.
	UpdateStatus(ctx context.Context, id string, status model.CommandStatus) error
}
