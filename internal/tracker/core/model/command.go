package model

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"
)

// CommandStatus is the lifecycle phase of a dispatched command.
type CommandStatus string

const (
	CommandStatusPending      CommandStatus = "pending"
	CommandStatusAcknowledged CommandStatus = "acknowledged"
	CommandStatusCompleted    CommandStatus = "completed"
	CommandStatusFailed       CommandStatus = "failed"
)

// Lifecycle event names. Transitions are reported by the vehicle; the hub
// only validates and persists them.
const (
	eventAcknowledge = "acknowledge"
	eventComplete    = "complete"
	eventFail        = "fail"
)

// Command is an instruction dispatched to a vehicle. Dispatch is
// store-and-notify: there is no delivery confirmation.
type Command struct {
	ID         string        `json:"id"`
	VehicleID  string        `json:"vehicle_id"`
	Name       string        `json:"command"`
	Parameters Extras        `json:"parameters,omitempty"`
	Status     CommandStatus `json:"status"`
	Timestamp  time.Time     `json:"timestamp"`
}

// statusEvents maps a target status to the lifecycle event reaching it.
var statusEvents = map[CommandStatus]string{
	CommandStatusAcknowledged: eventAcknowledge,
	CommandStatusCompleted:    eventComplete,
	CommandStatusFailed:       eventFail,
}

func newLifecycle(initial CommandStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: eventAcknowledge, Src: []string{string(CommandStatusPending)}, Dst: string(CommandStatusAcknowledged)},
			{Name: eventComplete, Src: []string{string(CommandStatusAcknowledged)}, Dst: string(CommandStatusCompleted)},
			{Name: eventFail, Src: []string{string(CommandStatusPending), string(CommandStatusAcknowledged)}, Dst: string(CommandStatusFailed)},
		},
		fsm.Callbacks{},
	)
}

// TransitionTo advances the command to the reported status after validating
// it against the lifecycle. Terminal states reject further transitions.
func (c *Command) TransitionTo(ctx context.Context, to CommandStatus) error {
	event, ok := statusEvents[to]
	if !ok {
		return fmt.Errorf("unknown command status %q", to)
	}

	machine := newLifecycle(c.Status)
	if err := machine.Event(ctx, event); err != nil {
		return fmt.Errorf("invalid transition %s -> %s: %w", c.Status, to, err)
	}

	c.Status = CommandStatus(machine.Current())
	return nil
}
