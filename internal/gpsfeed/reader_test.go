package gpsfeed

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

type captureAccepter struct {
	updates []*model.TelemetryUpdate
	err     error
}

func (c *captureAccepter) Ingest(_ context.Context, u *model.TelemetryUpdate) error {
	c.updates = append(c.updates, u)
	return c.err
}

const (
	rmcLine = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"
	ggaLine = "$GPGGA,123520,4807.100,N,01131.100,E,1,08,0.9,545.4,M,46.9,M,,*47"
)

func TestRunFeedsDecodedFixes(t *testing.T) {
	acc := &captureAccepter{}
	r := NewReader("truck-17", acc)

	stream := strings.Join([]string{
		rmcLine,
		"garbage line",
		"$GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
		ggaLine,
	}, "\n")

	if err := r.Run(context.Background(), strings.NewReader(stream)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Only the two decodable sentences produce reports.
	if len(acc.updates) != 2 {
		t.Fatalf("updates = %d, want 2", len(acc.updates))
	}

	first := acc.updates[0]
	if first.VehicleID != "truck-17" {
		t.Errorf("vehicleID = %q, want truck-17", first.VehicleID)
	}
	if first.Lat == nil || math.Abs(*first.Lat-48.1173) > 1e-3 {
		t.Errorf("lat = %v, want ~48.1173", first.Lat)
	}
	if first.Speed == nil || math.Abs(*first.Speed-41.4848) > 1e-3 {
		t.Errorf("speed = %v, want ~41.48", first.Speed)
	}

	// The GGA sentence carries the RMC's speed and heading forward.
	second := acc.updates[1]
	if second.Speed == nil || math.Abs(*second.Speed-41.4848) > 1e-3 {
		t.Errorf("carried speed = %v, want ~41.48", second.Speed)
	}
	if second.Heading == nil || math.Abs(*second.Heading-84.4) > 1e-3 {
		t.Errorf("carried heading = %v, want 84.4", second.Heading)
	}
}

func TestRunThrottlesToInterval(t *testing.T) {
	acc := &captureAccepter{}

	// A fake clock advancing one second per decoded sentence.
	var tick int
	clock := func() time.Time {
		tick++
		return time.Date(2025, 6, 1, 12, 0, tick, 0, time.UTC)
	}

	r := NewReader("truck-17", acc, WithInterval(3*time.Second), withClock(clock))

	stream := strings.Repeat(rmcLine+"\n", 7)
	if err := r.Run(context.Background(), strings.NewReader(stream)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Sentences arrive at 1 Hz; a 3 s interval passes roughly every third
	// one (the first always goes through).
	if len(acc.updates) != 3 {
		t.Errorf("updates = %d, want 3", len(acc.updates))
	}
}

func TestRunContinuesPastIngestErrors(t *testing.T) {
	acc := &captureAccepter{err: errors.New("store wedged")}
	r := NewReader("truck-17", acc)

	stream := rmcLine + "\n" + rmcLine + "\n"
	if err := r.Run(context.Background(), strings.NewReader(stream)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(acc.updates) != 2 {
		t.Errorf("updates = %d, want both attempted", len(acc.updates))
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewReader("truck-17", &captureAccepter{})
	err := r.Run(ctx, strings.NewReader(rmcLine+"\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
