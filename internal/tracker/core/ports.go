package core

import (
	"context"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

// Broadcaster fans an event out to every live subscriber. Delivery is
// best-effort; failures are absorbed and never reach the caller.
type Broadcaster interface {
	Broadcast(event model.Event)
}

// CommandNotifier pushes a dispatched command toward the vehicle,
// fire-and-forget.
type CommandNotifier interface {
	Notify(ctx context.Context, cmd *model.Command) error
}

// ArchiveStore persists history exports in object storage.
type ArchiveStore interface {
	Put(ctx context.Context, key string, data []byte) error
}
