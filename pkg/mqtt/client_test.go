package mqtt

import "testing"

func TestTopicsMatch(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		{"fleet/v1/telemetry/V001", "fleet/v1/telemetry/V001", true},
		{"fleet/v1/telemetry/+", "fleet/v1/telemetry/V001", true},
		{"fleet/v1/telemetry/+", "fleet/v1/telemetry/V001/extra", false},
		{"fleet/v1/#", "fleet/v1/command/ack/V9", true},
		{"fleet/v1/command/ack/+", "fleet/v1/command/ack/V9", true},
		{"fleet/v1/command/ack/+", "fleet/v1/command/V9", false},
		{"fleet/v1/telemetry/+", "fleet/v1/telemetry", false},
		{"other/+", "fleet/v1/telemetry/V001", false},
	}

	for _, tt := range tests {
		if got := TopicsMatch(tt.filter, tt.topic); got != tt.want {
			t.Errorf("TopicsMatch(%q, %q) = %v, want %v", tt.filter, tt.topic, got, tt.want)
		}
	}
}

func TestStripSharedPrefix(t *testing.T) {
	if got := stripSharedPrefix("$share/hub/fleet/v1/telemetry/+"); got != "fleet/v1/telemetry/+" {
		t.Errorf("unexpected filter %q", got)
	}
	if got := stripSharedPrefix("fleet/v1/telemetry/+"); got != "fleet/v1/telemetry/+" {
		t.Errorf("non-shared filter changed: %q", got)
	}
}
