package tracker

import (
	"context"
	"time"

	"github.com/trackhub-io/trackhub/internal/tracker/notifier"
	"github.com/trackhub-io/trackhub/internal/tracker/server"
	"github.com/trackhub-io/trackhub/pkg/log"
)

const egressShutdownTimeout = 5 * time.Second

// TrackerServer is the assembled hub process.
type TrackerServer struct {
	manager *server.Manager
	egress  *notifier.MQTTNotifier
}

// Run serves until ctx is cancelled, then shuts the frontends and the egress
// client down.
func (s *TrackerServer) Run(ctx context.Context) error {
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), egressShutdownTimeout)
		defer cancel()
		if err := s.egress.Close(shutdownCtx); err != nil {
			log.Warn("Egress client shutdown failed", "error", err)
		}
	}()

	return s.manager.Start(ctx)
}
