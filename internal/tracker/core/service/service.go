package service

import (
	"time"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
)

// Service implements the core use cases of the tracker: telemetry ingestion,
// state and history queries, and command dispatch. It orchestrates calls
// between the repositories and the outbound adapters.
type Service struct {
	state       core.StateRepository
	history     core.HistoryRepository
	commands    core.CommandRepository
	broadcaster core.Broadcaster
	notifier    core.CommandNotifier
	archive     core.ArchiveStore

	now func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier attaches the vehicle-facing command notifier.
func WithNotifier(n core.CommandNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithArchive attaches the history archive store.
func WithArchive(a core.ArchiveStore) Option {
	return func(s *Service) { s.archive = a }
}

// New creates the core service. Dependency injection happens here.
func New(
	state core.StateRepository,
	history core.HistoryRepository,
	commands core.CommandRepository,
	broadcaster core.Broadcaster,
	opts ...Option,
) *Service {
	s := &Service{
		state:       state,
		history:     history,
		commands:    commands,
		broadcaster: broadcaster,
		now:         func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
