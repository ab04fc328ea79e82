package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

// HistoryStore is the append-only telemetry log, bucketed per vehicle.
// Appended samples are never mutated or dropped.
type HistoryStore struct {
	mu      sync.RWMutex
	samples map[string][]*model.TelemetrySample
}

var _ core.HistoryRepository = (*HistoryStore)(nil)

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{samples: map[string][]*model.TelemetrySample{}}
}

// Append implements core.HistoryRepository.
func (h *HistoryStore) Append(_ context.Context, sample *model.TelemetrySample) error {
	clone := *sample
	h.mu.Lock()
	h.samples[sample.VehicleID] = append(h.samples[sample.VehicleID], &clone)
	h.mu.Unlock()
	return nil
}

// Query implements core.HistoryRepository. Bounds are inclusive, results are
// sorted newest first and truncated to the limit.
func (h *HistoryStore) Query(_ context.Context, q core.HistoryQuery) ([]*model.TelemetrySample, error) {
	h.mu.RLock()
	bucket := h.samples[q.VehicleID]
	out := make([]*model.TelemetrySample, 0, len(bucket))
	for _, s := range bucket {
		if q.From != nil && s.Timestamp.Before(*q.From) {
			continue
		}
		if q.To != nil && s.Timestamp.After(*q.To) {
			continue
		}
		out = append(out, s)
	}
	h.mu.RUnlock()

	// Stable: equal timestamps keep their append order relative to each
	// other.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}
