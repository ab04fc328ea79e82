package service

import (
	"context"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

// GetLatest returns the latest known state of one vehicle, or
// core.ErrNotFound when the vehicle has never reported.
func (s *Service) GetLatest(ctx context.Context, vehicleID string) (*model.VehicleState, error) {
	if vehicleID == "" {
		return nil, core.NewValidationError("vehicle_id", "required")
	}
	return s.state.Get(ctx, vehicleID)
}

// ListLatest returns a snapshot of every tracked vehicle's current state.
func (s *Service) ListLatest(ctx context.Context) ([]*model.VehicleState, error) {
	return s.state.List(ctx)
}

// GetHistory returns a vehicle's telemetry history, newest first, bounded by
// the inclusive time range and the limit.
func (s *Service) GetHistory(ctx context.Context, q core.HistoryQuery) ([]*model.TelemetrySample, error) {
	if q.VehicleID == "" {
		return nil, core.NewValidationError("vehicle_id", "required")
	}
	if q.Limit < 0 {
		return nil, core.NewValidationError("limit", "must not be negative")
	}
	if q.Limit == 0 {
		q.Limit = core.DefaultHistoryLimit
	}
	return s.history.Query(ctx, q)
}
