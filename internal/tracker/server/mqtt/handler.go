package mqtt

import (
	"context"
	"encoding/json"

	"github.com/trackhub-io/trackhub/internal/pkg/metrics"
	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
	"github.com/trackhub-io/trackhub/pkg/log"
	"github.com/trackhub-io/trackhub/pkg/mqtt/topic"
)

type handler struct {
	svc *service.Service
}

// handleTelemetry ingests one report published on {root}/telemetry/{id}.
// The topic is authoritative for the vehicle identity; a vehicle_id in the
// payload is overridden rather than trusted.
func (h *handler) handleTelemetry(ctx context.Context, t string, payload []byte) {
	vehicleID := topic.VehicleID(t)
	if vehicleID == "" {
		log.Warn("Telemetry on malformed topic", "topic", t)
		return
	}

	var update model.TelemetryUpdate
	if err := json.Unmarshal(payload, &update); err != nil {
		metrics.IngestTotal.WithLabelValues(metrics.OutcomeValidationError, "mqtt").Inc()
		log.Warn("Discarded malformed telemetry payload", "topic", t, "error", err)
		return
	}
	update.VehicleID = vehicleID

	if err := h.svc.Ingest(ctx, &update); err != nil {
		outcome := metrics.OutcomeStorageError
		if core.IsValidation(err) {
			outcome = metrics.OutcomeValidationError
		}
		metrics.IngestTotal.WithLabelValues(outcome, "mqtt").Inc()
		log.Warn("Telemetry rejected", "vehicleID", vehicleID, "error", err)
		return
	}
	metrics.IngestTotal.WithLabelValues(metrics.OutcomeAccepted, "mqtt").Inc()
}

// commandAck is the payload vehicles publish on {root}/command/ack/{id}.
type commandAck struct {
	CommandID string              `json:"command_id"`
	Status    model.CommandStatus `json:"status"`
}

func (h *handler) handleCommandAck(ctx context.Context, t string, payload []byte) {
	var ack commandAck
	if err := json.Unmarshal(payload, &ack); err != nil {
		log.Warn("Discarded malformed command ack", "topic", t, "error", err)
		return
	}

	if _, err := h.svc.ReportCommandStatus(ctx, ack.CommandID, ack.Status); err != nil {
		log.Warn("Command status report rejected", "commandID", ack.CommandID, "status", ack.Status, "error", err)
	}
}
