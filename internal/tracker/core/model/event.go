package model

// EventType discriminates the live event stream.
type EventType string

const (
	// EventLocationUpdate is emitted for every ingested telemetry sample.
	EventLocationUpdate EventType = "location_update"

	// EventCommand is emitted when a command is dispatched.
	EventCommand EventType = "command"
)

// Event is one entry on the live subscriber stream.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}
