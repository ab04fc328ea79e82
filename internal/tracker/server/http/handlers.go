package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/trackhub-io/trackhub/internal/pkg/metrics"
	"github.com/trackhub-io/trackhub/internal/tracker/broadcast"
	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
)

type handler struct {
	svc *service.Service
	hub *broadcast.Hub
}

func (h *handler) ingestTelemetry(w http.ResponseWriter, r *http.Request) {
	var update model.TelemetryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, core.NewValidationError("body", "malformed JSON"))
		return
	}

	if err := h.svc.Ingest(r.Context(), &update); err != nil {
		metrics.IngestTotal.WithLabelValues(ingestOutcome(err), "http").Inc()
		writeError(w, err)
		return
	}

	metrics.IngestTotal.WithLabelValues(metrics.OutcomeAccepted, "http").Inc()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func ingestOutcome(err error) string {
	if core.IsValidation(err) {
		return metrics.OutcomeValidationError
	}
	return metrics.OutcomeStorageError
}

func (h *handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	states, err := h.svc.ListLatest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.GetLatest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) getHistory(w http.ResponseWriter, r *http.Request) {
	q, err := historyQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	samples, err := h.svc.GetHistory(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (h *handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	q, err := historyQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	key, err := h.svc.ExportHistory(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

// historyQuery parses the {id} path segment and the from/to/limit query
// parameters. Timestamps are RFC 3339.
func historyQuery(r *http.Request) (core.HistoryQuery, error) {
	q := core.HistoryQuery{VehicleID: mux.Vars(r)["id"]}

	params := r.URL.Query()
	if v := params.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, core.NewValidationError("from", "must be RFC 3339")
		}
		q.From = &t
	}
	if v := params.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, core.NewValidationError("to", "must be RFC 3339")
		}
		q.To = &t
	}
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, core.NewValidationError("limit", "must be an integer")
		}
		q.Limit = n
	}
	return q, nil
}

func (h *handler) submitCommand(w http.ResponseWriter, r *http.Request) {
	var req service.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, core.NewValidationError("body", "malformed JSON"))
		return
	}

	cmd, err := h.svc.SubmitCommand(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.CommandsDispatchedTotal.WithLabelValues(cmd.Name).Inc()
	writeJSON(w, http.StatusCreated, cmd)
}

func (h *handler) getCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.svc.GetCommand(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmd)
}

func (h *handler) reportCommandStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status model.CommandStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, core.NewValidationError("body", "malformed JSON"))
		return
	}

	cmd, err := h.svc.ReportCommandStatus(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmd)
}
