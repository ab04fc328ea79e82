// Package server runs the tracker's protocol frontends side by side.
package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/trackhub-io/trackhub/pkg/log"
)

// Server is one protocol frontend. Start blocks until ctx is cancelled or
// the server fails.
type Server interface {
	Start(ctx context.Context) error
}

// Manager runs a set of servers and stops all of them when one fails.
type Manager struct {
	servers []Server
}

// NewManager creates a manager over the given servers.
func NewManager(servers ...Server) *Manager {
	return &Manager{servers: servers}
}

// Start launches every server and waits. The first failure cancels the
// shared context, taking the rest down with it.
func (m *Manager) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, srv := range m.servers {
		srv := srv
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	log.Info("All servers starting", "count", len(m.servers))
	return g.Wait()
}
