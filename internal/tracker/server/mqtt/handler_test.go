package mqtt

import (
	"context"
	"errors"
	"testing"

	"github.com/trackhub-io/trackhub/internal/tracker/broadcast"
	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
	"github.com/trackhub-io/trackhub/internal/tracker/memstore"
)

func newTestHandler() (*handler, *service.Service) {
	svc := service.New(
		memstore.NewStateStore(),
		memstore.NewHistoryStore(),
		memstore.NewCommandStore(),
		broadcast.NewHub(),
	)
	return &handler{svc: svc}, svc
}

func TestHandleTelemetry(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	h.handleTelemetry(ctx, "fleet/v1/telemetry/truck-17",
		[]byte(`{"lat":48.1,"lon":11.5,"speed":30}`))

	st, err := svc.GetLatest(ctx, "truck-17")
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if st.Speed != 30 {
		t.Errorf("speed = %v, want 30", st.Speed)
	}
}

func TestHandleTelemetryTopicOverridesPayloadIdentity(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	// A vehicle claiming another identity in the payload is pinned to its
	// topic.
	h.handleTelemetry(ctx, "fleet/v1/telemetry/truck-17",
		[]byte(`{"vehicle_id":"impostor","lat":48.1,"lon":11.5}`))

	if _, err := svc.GetLatest(ctx, "truck-17"); err != nil {
		t.Errorf("expected state under topic identity: %v", err)
	}
	if _, err := svc.GetLatest(ctx, "impostor"); err == nil {
		t.Error("payload identity must not be trusted")
	}
}

func TestHandleTelemetryDiscardsBadPayloads(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	// Malformed JSON and a report missing coordinates are both dropped
	// without faulting the stream.
	h.handleTelemetry(ctx, "fleet/v1/telemetry/truck-17", []byte(`{not json`))
	h.handleTelemetry(ctx, "fleet/v1/telemetry/truck-17", []byte(`{"speed":30}`))

	if _, err := svc.GetLatest(ctx, "truck-17"); err == nil {
		t.Error("no state should exist after discarded payloads")
	}
}

func TestHandleCommandAck(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	cmd, err := svc.SubmitCommand(ctx, &service.CommandRequest{
		VehicleID: "truck-17", Name: "reboot",
	})
	if err != nil {
		t.Fatalf("SubmitCommand: %v", err)
	}

	h.handleCommandAck(ctx, "fleet/v1/command/ack/truck-17",
		[]byte(`{"command_id":"`+cmd.ID+`","status":"acknowledged"}`))

	got, err := svc.GetCommand(ctx, cmd.ID)
	if err != nil {
		t.Fatalf("GetCommand: %v", err)
	}
	if got.Status != model.CommandStatusAcknowledged {
		t.Errorf("status = %q, want acknowledged", got.Status)
	}
}

func TestHandleCommandAckUnknownCommand(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	// Must not panic or create anything.
	h.handleCommandAck(ctx, "fleet/v1/command/ack/truck-17",
		[]byte(`{"command_id":"ghost","status":"acknowledged"}`))

	if _, err := svc.GetCommand(ctx, "ghost"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
