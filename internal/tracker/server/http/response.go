package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
	"github.com/trackhub-io/trackhub/pkg/log"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error(err, "Failed to encode response")
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Unknown errors become a
// 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, service.ErrArchiveDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	case core.IsStorage(err):
		log.Error(err, "Storage failure")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "storage failure"})
	default:
		log.Error(err, "Unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
