package service

import (
	"context"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/pkg/log"
)

// Ingest validates and normalizes a telemetry report, appends it to the
// history, replaces the vehicle's latest state and notifies live
// subscribers.
//
// The state write is a full-record replacement in ingestion order: a field
// the vehicle omitted reverts to its default even if an earlier report had
// set it, and no comparison is made against the currently stored timestamp.
func (s *Service) Ingest(ctx context.Context, update *model.TelemetryUpdate) error {
	if err := validateUpdate(update); err != nil {
		return err
	}

	sample := update.Normalize(s.now())

	// History first: the immutable log must hold the sample before the
	// mutable state can claim it as latest.
	if err := s.history.Append(ctx, sample); err != nil {
		return &core.StorageError{Op: "append", Err: err}
	}

	if err := s.state.Upsert(ctx, sample.State()); err != nil {
		return &core.StorageError{Op: "upsert", Err: err}
	}

	// Best-effort fan-out; subscriber failures never surface to the
	// producer.
	s.broadcaster.Broadcast(model.Event{
		Type: model.EventLocationUpdate,
		Data: sample,
	})

	log.Debug("Ingested telemetry", "vehicleID", sample.VehicleID, "lat", sample.Lat, "lon", sample.Lon)
	return nil
}

func validateUpdate(update *model.TelemetryUpdate) error {
	if update == nil {
		return core.NewValidationError("sample", "missing body")
	}
	if update.VehicleID == "" {
		return core.NewValidationError("vehicle_id", "required")
	}
	if update.Lat == nil {
		return core.NewValidationError("lat", "required")
	}
	if update.Lon == nil {
		return core.NewValidationError("lon", "required")
	}
	if err := update.Extras.Validate(); err != nil {
		return core.NewValidationError("extras", err.Error())
	}
	return nil
}
