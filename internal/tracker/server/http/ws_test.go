package http

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func TestWebsocketReceivesLocationUpdates(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	resp.Body.Close()

	// Give the server a moment to register the subscriber before
	// broadcasting.
	time.Sleep(50 * time.Millisecond)

	r := postJSON(t, ts.URL+"/api/v1/telemetry",
		`{"vehicle_id":"truck-17","lat":48.1,"lon":11.5}`)
	r.Body.Close()
	if r.StatusCode != http.StatusAccepted {
		t.Fatalf("ingest status = %d, want 202", r.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event struct {
		Type model.EventType       `json:"type"`
		Data model.TelemetrySample `json:"data"`
	}
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("reading event: %v", err)
	}
	if event.Type != model.EventLocationUpdate {
		t.Errorf("event type = %q, want %q", event.Type, model.EventLocationUpdate)
	}
	if event.Data.VehicleID != "truck-17" {
		t.Errorf("vehicleID = %q, want truck-17", event.Data.VehicleID)
	}
}

func TestWebsocketClientDisconnectIsClean(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	resp.Body.Close()
	conn.Close()

	// A broadcast after the client went away must not fault the server.
	time.Sleep(50 * time.Millisecond)
	r := postJSON(t, ts.URL+"/api/v1/telemetry",
		`{"vehicle_id":"truck-17","lat":48.1,"lon":11.5}`)
	r.Body.Close()
	if r.StatusCode != http.StatusAccepted {
		t.Fatalf("ingest status = %d, want 202", r.StatusCode)
	}
}
