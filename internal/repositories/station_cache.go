package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
)

// StationCacheAdapter implements tasks.StationCacher using StationRepository.
//
// Provides automatic station caching with deduplication via the stream_url constraint.
// A station seen again refreshes its validation status instead of inserting a duplicate.
type StationCacheAdapter struct {
	repo *StationRepository
}

// NewStationCacheAdapter creates a new StationCacheAdapter with the given repository
func NewStationCacheAdapter(repo *StationRepository) *StationCacheAdapter {
	return &StationCacheAdapter{repo: repo}
}

// CacheStation persists a validated station.
// When the stream URL is already cached, the existing row's status and
// last-checked timestamp are refreshed. Only returns errors for actual
// failures (not constraint violations).
func (a *StationCacheAdapter) CacheStation(station models.RadioStation, result *streamcheck.Result) error {
	status := statusFor(result)

	existing, err := a.repo.GetByStreamURL(station.StreamURL)
	if err == nil && existing != nil {
		existing.Station = station
		existing.Status = status
		existing.LastCheckedAt = time.Now()
		if err := a.repo.Update(existing); err != nil {
			return fmt.Errorf("failed to refresh cached station: %w", err)
		}
		return nil
	}

	persisted := models.NewPersistedStation(0, station, status)
	persisted.LastCheckedAt = time.Now()

	if err := a.repo.Create(&persisted); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache station: %w", err)
	}

	return nil
}

func statusFor(result *streamcheck.Result) string {
	if result == nil {
		return models.StationStatusError
	}
	switch result.Status {
	case streamcheck.StatusValid:
		return models.StationStatusValid
	case streamcheck.StatusInvalid:
		return models.StationStatusInvalid
	default:
		return models.StationStatusError
	}
}
