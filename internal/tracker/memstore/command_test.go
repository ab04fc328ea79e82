package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func TestCommandStoreRoundTrip(t *testing.T) {
	c := NewCommandStore()
	ctx := context.Background()

	cmd := &model.Command{
		ID:        "cmd-1",
		VehicleID: "truck-17",
		Name:      "reboot",
		Status:    model.CommandStatusPending,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := c.Create(ctx, cmd); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.Get(ctx, "cmd-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "reboot" || got.Status != model.CommandStatusPending {
		t.Errorf("got %+v", got)
	}
}

func TestCommandStoreGetUnknown(t *testing.T) {
	c := NewCommandStore()
	if _, err := c.Get(context.Background(), "ghost"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCommandStoreUpdateStatus(t *testing.T) {
	c := NewCommandStore()
	ctx := context.Background()

	if err := c.Create(ctx, &model.Command{ID: "cmd-1", Status: model.CommandStatusPending}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := c.UpdateStatus(ctx, "cmd-1", model.CommandStatusAcknowledged); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, _ := c.Get(ctx, "cmd-1")
	if got.Status != model.CommandStatusAcknowledged {
		t.Errorf("status = %q, want acknowledged", got.Status)
	}

	if err := c.UpdateStatus(ctx, "ghost", model.CommandStatusFailed); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
