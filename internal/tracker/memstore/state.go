// Package memstore provides the in-memory repositories backing the tracker.
// Everything lives in process memory; a restart starts from scratch.
package memstore

import (
	"context"
	"sync"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

// stateEntry serializes writes to one vehicle independently of the others.
type stateEntry struct {
	mu    sync.Mutex
	state *model.VehicleState
}

// StateStore keeps the latest known state per vehicle. Reads see either the
// state before or after a concurrent replacement, never a mix of both.
type StateStore struct {
	mu      sync.RWMutex
	entries map[string]*stateEntry
}

var _ core.StateRepository = (*StateStore)(nil)

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{entries: map[string]*stateEntry{}}
}

func (s *StateStore) entry(vehicleID string) *stateEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[vehicleID]
	if !ok {
		e = &stateEntry{}
		s.entries[vehicleID] = e
	}
	return e
}

// Get implements core.StateRepository.
func (s *StateStore) Get(_ context.Context, vehicleID string) (*model.VehicleState, error) {
	s.mu.RLock()
	e, ok := s.entries[vehicleID]
	s.mu.RUnlock()
	if !ok {
		return nil, core.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil, core.ErrNotFound
	}
	clone := *e.state
	return &clone, nil
}

// List implements core.StateRepository. The snapshot is taken under the map
// lock but carries no ordering guarantee.
func (s *StateStore) List(_ context.Context) ([]*model.VehicleState, error) {
	s.mu.RLock()
	entries := make([]*stateEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]*model.VehicleState, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.state != nil {
			clone := *e.state
			out = append(out, &clone)
		}
		e.mu.Unlock()
	}
	return out, nil
}

// Upsert implements core.StateRepository. The whole record is replaced under
// the per-vehicle lock, so two concurrent writers to the same vehicle land in
// some serial order and the later one wins outright.
func (s *StateStore) Upsert(_ context.Context, state *model.VehicleState) error {
	e := s.entry(state.VehicleID)

	clone := *state
	e.mu.Lock()
	e.state = &clone
	e.mu.Unlock()
	return nil
}
