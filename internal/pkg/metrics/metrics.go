// Package metrics defines the Prometheus instrumentation shared by the
// tracker's ingest and fan-out paths. Everything registers on the default
// registry and is served from the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestTotal counts telemetry ingest attempts by outcome
	// (accepted, validation_error, storage_error).
	IngestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackhub_ingest_total",
			Help: "Total number of telemetry ingest attempts by outcome.",
		},
		[]string{"outcome", "source"}, // source: http/mqtt
	)

	// DecodeFailuresTotal counts raw GPS sentences that could not be
	// decoded into a fix.
	DecodeFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trackhub_nmea_decode_failures_total",
			Help: "Total number of discarded undecodable NMEA sentences.",
		},
	)

	// BroadcastDroppedTotal counts events dropped because a subscriber's
	// buffer was full.
	BroadcastDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trackhub_broadcast_dropped_total",
			Help: "Total number of events dropped for slow subscribers.",
		},
	)

	// Subscribers tracks the number of live event subscribers.
	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trackhub_subscribers",
			Help: "Number of currently connected event subscribers.",
		},
	)

	// CommandsDispatchedTotal counts commands submitted for dispatch.
	CommandsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackhub_commands_dispatched_total",
			Help: "Total number of commands dispatched by command name.",
		},
		[]string{"command"},
	)
)

// IngestOutcome labels for IngestTotal.
const (
	OutcomeAccepted        = "accepted"
	OutcomeValidationError = "validation_error"
	OutcomeStorageError    = "storage_error"
)
