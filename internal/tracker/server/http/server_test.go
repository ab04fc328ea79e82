package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trackhub-io/trackhub/internal/tracker/broadcast"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
	"github.com/trackhub-io/trackhub/internal/tracker/memstore"
	"github.com/trackhub-io/trackhub/pkg/options"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := broadcast.NewHub()
	svc := service.New(
		memstore.NewStateStore(),
		memstore.NewHistoryStore(),
		memstore.NewCommandStore(),
		hub,
	)

	srv := NewServer(options.NewHTTPOptions(), svc, hub)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestIngestAndQueryRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/telemetry",
		`{"vehicle_id":"truck-17","lat":48.1,"lon":11.5,"speed":30}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("ingest status = %d, want 202", resp.StatusCode)
	}

	resp, err := http.Get(ts.URL + "/api/v1/vehicles/truck-17")
	if err != nil {
		t.Fatalf("GET vehicle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	state := decodeBody[model.VehicleState](t, resp)
	if state.Speed != 30 {
		t.Errorf("speed = %v, want 30", state.Speed)
	}

	resp, err = http.Get(ts.URL + "/api/v1/vehicles/truck-17/history")
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	samples := decodeBody[[]model.TelemetrySample](t, resp)
	if len(samples) != 1 {
		t.Errorf("history length = %d, want 1", len(samples))
	}
}

func TestIngestRejectsInvalidPayloads(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing vehicle id", `{"lat":1,"lon":2}`},
		{"missing coordinates", `{"vehicle_id":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/v1/telemetry", tt.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestGetUnknownVehicleReturns404(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/vehicles/ghost")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHistoryQueryValidation(t *testing.T) {
	ts := newTestServer(t)

	for _, url := range []string{
		"/api/v1/vehicles/v/history?from=yesterday",
		"/api/v1/vehicles/v/history?limit=many",
	} {
		resp, err := http.Get(ts.URL + url)
		if err != nil {
			t.Fatalf("GET %s: %v", url, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", url, resp.StatusCode)
		}
	}
}

func TestCommandLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/commands",
		`{"vehicle_id":"truck-17","command":"reboot","parameters":{"delay_s":5}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201", resp.StatusCode)
	}
	cmd := decodeBody[model.Command](t, resp)
	if cmd.Status != model.CommandStatusPending {
		t.Errorf("status = %q, want pending", cmd.Status)
	}

	req, _ := http.NewRequest(http.MethodPut,
		ts.URL+"/api/v1/commands/"+cmd.ID+"/status",
		strings.NewReader(`{"status":"acknowledged"}`))
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT status: %v", err)
	}
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("status update = %d, want 200", resp2.StatusCode)
	}
	updated := decodeBody[model.Command](t, resp2)
	if updated.Status != model.CommandStatusAcknowledged {
		t.Errorf("status = %q, want acknowledged", updated.Status)
	}

	// An invalid transition is rejected without mutating the command.
	req, _ = http.NewRequest(http.MethodPut,
		ts.URL+"/api/v1/commands/"+cmd.ID+"/status",
		strings.NewReader(`{"status":"pending"}`))
	resp3, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT status: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid transition status = %d, want 400", resp3.StatusCode)
	}
}

func TestExportWithoutArchiveReturns503(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/vehicles/truck-17/export", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}
