package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/pkg/log"
)

// ErrArchiveDisabled is returned when no archive store is configured.
var ErrArchiveDisabled = fmt.Errorf("history archiving is not enabled")

// ExportHistory snapshots a vehicle's history into the archive store and
// returns the object key it was written under.
func (s *Service) ExportHistory(ctx context.Context, q core.HistoryQuery) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}

	samples, err := s.GetHistory(ctx, q)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(samples)
	if err != nil {
		return "", fmt.Errorf("encoding history export: %w", err)
	}

	key := fmt.Sprintf("%s/%s.json", q.VehicleID, s.now().Format("20060102T150405Z"))
	if err := s.archive.Put(ctx, key, data); err != nil {
		return "", &core.StorageError{Op: "archive", Err: err}
	}

	log.Info("Exported history", "vehicleID", q.VehicleID, "key", key, "samples", len(samples))
	return key, nil
}
