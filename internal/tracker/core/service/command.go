package service

import (
	"context"

	"github.com/rs/xid"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/pkg/log"
)

// CommandRequest is a command as submitted by an operator.
type CommandRequest struct {
	VehicleID  string       `json:"vehicle_id"`
	Name       string       `json:"command"`
	Parameters model.Extras `json:"parameters,omitempty"`
}

// SubmitCommand records a command and pushes it toward the vehicle. Dispatch
// is store-and-notify: the returned command is pending and the vehicle
// reports lifecycle progress separately.
func (s *Service) SubmitCommand(ctx context.Context, req *CommandRequest) (*model.Command, error) {
	if req == nil {
		return nil, core.NewValidationError("command", "missing body")
	}
	if req.VehicleID == "" {
		return nil, core.NewValidationError("vehicle_id", "required")
	}
	if req.Name == "" {
		return nil, core.NewValidationError("command", "required")
	}
	if err := req.Parameters.Validate(); err != nil {
		return nil, core.NewValidationError("parameters", err.Error())
	}

	cmd := &model.Command{
		ID:         xid.New().String(),
		VehicleID:  req.VehicleID,
		Name:       req.Name,
		Parameters: req.Parameters,
		Status:     model.CommandStatusPending,
		Timestamp:  s.now(),
	}

	if err := s.commands.Create(ctx, cmd); err != nil {
		return nil, &core.StorageError{Op: "create", Err: err}
	}

	// The notifier is fire-and-forget. A push failure does not undo the
	// stored command; the vehicle can still pick it up on reconnect.
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, cmd); err != nil {
			log.Warn("Command notification failed", "commandID", cmd.ID, "vehicleID", cmd.VehicleID, "error", err)
		}
	}

	s.broadcaster.Broadcast(model.Event{
		Type: model.EventCommand,
		Data: cmd,
	})

	log.Info("Dispatched command", "commandID", cmd.ID, "vehicleID", cmd.VehicleID, "command", cmd.Name)
	return cmd, nil
}

// GetCommand returns a previously dispatched command.
func (s *Service) GetCommand(ctx context.Context, id string) (*model.Command, error) {
	if id == "" {
		return nil, core.NewValidationError("id", "required")
	}
	return s.commands.Get(ctx, id)
}

// ReportCommandStatus applies a lifecycle transition reported by the vehicle.
// The hub validates the transition but never initiates one itself.
func (s *Service) ReportCommandStatus(ctx context.Context, id string, status model.CommandStatus) (*model.Command, error) {
	if id == "" {
		return nil, core.NewValidationError("id", "required")
	}

	cmd, err := s.commands.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cmd.TransitionTo(ctx, status); err != nil {
		return nil, core.NewValidationError("status", err.Error())
	}

	if err := s.commands.UpdateStatus(ctx, id, cmd.Status); err != nil {
		return nil, &core.StorageError{Op: "update", Err: err}
	}

	log.Info("Command status updated", "commandID", id, "status", cmd.Status)
	return cmd, nil
}
