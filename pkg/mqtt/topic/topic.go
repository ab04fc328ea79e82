// Package topic centralizes the MQTT topic layout shared by the hub and the
// vehicle agents. Changing these segments breaks deployed vehicles.
package topic

import (
	"fmt"
	"strings"
)

const (
	// SuffixTelemetry is the upstream telemetry topic (vehicle -> hub).
	// Structure: {root}/telemetry/{vehicleID}
	SuffixTelemetry = "telemetry"

	// SuffixCommand is the downstream command topic (hub -> vehicle).
	// Structure: {root}/command/{vehicleID}
	SuffixCommand = "command"

	// SuffixCommandAck is the upstream command status topic (vehicle -> hub).
	// Structure: {root}/command/ack/{vehicleID}
	SuffixCommandAck = "command/ack"
)

// Builder constructs topic strings under a fixed root namespace.
type Builder struct {
	root string
}

// NewBuilder creates a Builder for the given root namespace (e.g. "fleet/v1").
func NewBuilder(root string) *Builder {
	return &Builder{root: strings.TrimSuffix(root, "/")}
}

// Telemetry returns the topic a specific vehicle publishes telemetry on.
func (b *Builder) Telemetry(vehicleID string) string {
	return b.build(SuffixTelemetry, vehicleID)
}

// TelemetryWildcard returns the filter the hub subscribes to for all vehicles.
func (b *Builder) TelemetryWildcard() string {
	return b.build(SuffixTelemetry, "+")
}

// Command returns the topic for sending commands to a specific vehicle.
func (b *Builder) Command(vehicleID string) string {
	return b.build(SuffixCommand, vehicleID)
}

// CommandAck returns the topic a vehicle reports command status on.
func (b *Builder) CommandAck(vehicleID string) string {
	return b.build(SuffixCommandAck, vehicleID)
}

// CommandAckWildcard returns the filter for all command acknowledgements.
func (b *Builder) CommandAckWildcard() string {
	return b.build(SuffixCommandAck, "+")
}

// Shared wraps a filter in an MQTT v5 shared-subscription group so multiple
// hub replicas split the ingest load.
func (b *Builder) Shared(group, filter string) string {
	return fmt.Sprintf("$share/%s/%s", group, filter)
}

// VehicleID extracts the trailing vehicle identifier from a concrete topic.
func VehicleID(topic string) string {
	idx := strings.LastIndexByte(topic, '/')
	if idx == -1 || idx == len(topic)-1 {
		return ""
	}
	return topic[idx+1:]
}

func (b *Builder) build(suffix, id string) string {
	return fmt.Sprintf("%s/%s/%s", b.root, suffix, id)
}
