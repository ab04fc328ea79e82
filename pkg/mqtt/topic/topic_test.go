package topic

import "testing"

func TestBuilder(t *testing.T) {
	b := NewBuilder("fleet/v1")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"telemetry", b.Telemetry("V001"), "fleet/v1/telemetry/V001"},
		{"telemetry wildcard", b.TelemetryWildcard(), "fleet/v1/telemetry/+"},
		{"command", b.Command("V001"), "fleet/v1/command/V001"},
		{"command ack", b.CommandAck("V001"), "fleet/v1/command/ack/V001"},
		{"command ack wildcard", b.CommandAckWildcard(), "fleet/v1/command/ack/+"},
		{"shared", b.Shared("hub", b.TelemetryWildcard()), "$share/hub/fleet/v1/telemetry/+"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestVehicleID(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"fleet/v1/telemetry/V001", "V001"},
		{"fleet/v1/command/ack/truck-7", "truck-7"},
		{"fleet/v1/telemetry/", ""},
		{"novehicle", ""},
	}

	for _, tt := range tests {
		if got := VehicleID(tt.topic); got != tt.want {
			t.Errorf("VehicleID(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}
