// Package gpsfeed turns a line-oriented stream of raw NMEA sentences into
// telemetry reports for one vehicle.
package gpsfeed

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/trackhub-io/trackhub/internal/nmea"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
	"github.com/trackhub-io/trackhub/pkg/log"
)

// Accepter receives the telemetry reports produced from decoded fixes.
type Accepter interface {
	Ingest(ctx context.Context, update *model.TelemetryUpdate) error
}

// Reader decodes a GPS receiver's sentence stream on behalf of one vehicle.
// It is not safe for concurrent use; run one Reader per stream.
type Reader struct {
	vehicleID string
	accept    Accepter
	interval  time.Duration
	now       func() time.Time

	// prior carries the last known speed/heading across sentences that do
	// not encode them.
	prior nmea.Fix

	lastSent time.Time
}

// Option customizes a Reader.
type Option func(*Reader)

// WithInterval throttles submissions: fixes decoded less than d after the
// previous submission still update the carried state but are not reported.
// Receivers emit several sentences per second; the hub does not need them
// all.
func WithInterval(d time.Duration) Option {
	return func(r *Reader) { r.interval = d }
}

func withClock(now func() time.Time) Option {
	return func(r *Reader) { r.now = now }
}

// NewReader creates a reader feeding decoded fixes for vehicleID into accept.
func NewReader(vehicleID string, accept Accepter, opts ...Option) *Reader {
	r := &Reader{
		vehicleID: vehicleID,
		accept:    accept,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run consumes src line by line until EOF, a read error or context
// cancellation. Undecodable lines are logged and skipped; the stream always
// continues. Ingest rejections are likewise logged and skipped, the producer
// owning any retry.
func (r *Reader) Run(ctx context.Context, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		fix, ok := nmea.Decode(line, r.prior)
		if !ok {
			log.Debug("Discarded undecodable sentence", "vehicleID", r.vehicleID, "line", line)
			continue
		}
		r.prior = fix

		now := r.now()
		if r.interval > 0 && now.Sub(r.lastSent) < r.interval {
			continue
		}
		r.lastSent = now

		if err := r.accept.Ingest(ctx, r.update(fix)); err != nil {
			log.Warn("Telemetry from GPS feed rejected", "vehicleID", r.vehicleID, "error", err)
		}
	}
	return scanner.Err()
}

func (r *Reader) update(fix nmea.Fix) *model.TelemetryUpdate {
	lat, lon := fix.Lat, fix.Lon
	speed, heading := fix.Speed, fix.Heading
	return &model.TelemetryUpdate{
		VehicleID: r.vehicleID,
		Lat:       &lat,
		Lon:       &lon,
		Speed:     &speed,
		Heading:   &heading,
	}
}
