package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/tunebridge/internal/shared"
)

// Station validation statuses stored alongside cached stations.
const (
	StationStatusValid   = "valid"
	StationStatusInvalid = "invalid"
	StationStatusError   = "error"
)

// PersistedStation is a directory station cached locally after validation.
type PersistedStation struct {
	Key           string
	Sequence      int
	Station       RadioStation
	Status        string
	LastCheckedAt time.Time
	Created       time.Time
	Updated       time.Time
	Deleted       *time.Time
}

// NewPersistedStation wraps a directory station for persistence. Sequence may
// be zero; repositories assign one on insert.
func NewPersistedStation(sequence int, station RadioStation, status string) PersistedStation {
	now := time.Now()
	return PersistedStation{
		Key:      shared.GenerateID(),
		Sequence: sequence,
		Station:  station,
		Status:   status,
		Created:  now,
		Updated:  now,
	}
}

func (s PersistedStation) ID() string           { return s.Key }
func (s PersistedStation) CreatedAt() time.Time { return s.Created }
func (s PersistedStation) UpdatedAt() time.Time { return s.Updated }

// Validate checks required station fields before persistence.
func (s PersistedStation) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("%w: station has no id", shared.ErrInvalidInput)
	}
	if s.Station.Name == "" {
		return fmt.Errorf("%w: station has no name", shared.ErrInvalidInput)
	}
	if s.Station.StreamURL == "" {
		return fmt.Errorf("%w: station has no stream URL", shared.ErrInvalidInput)
	}
	switch s.Status {
	case StationStatusValid, StationStatusInvalid, StationStatusError:
	default:
		return fmt.Errorf("%w: unknown station status %q", shared.ErrInvalidInput, s.Status)
	}
	return nil
}

// CachedLyrics is a lyrics lookup cached locally with a fetch timestamp.
type CachedLyrics struct {
	Key       string
	Lyrics    Lyrics
	FetchedAt time.Time
}

// NewCachedLyrics wraps a lyrics result for persistence.
func NewCachedLyrics(lyrics Lyrics) CachedLyrics {
	return CachedLyrics{
		Key:       shared.GenerateID(),
		Lyrics:    lyrics,
		FetchedAt: time.Now(),
	}
}

func (c CachedLyrics) ID() string           { return c.Key }
func (c CachedLyrics) CreatedAt() time.Time { return c.FetchedAt }
func (c CachedLyrics) UpdatedAt() time.Time { return c.FetchedAt }

// Expired reports whether the cached entry is older than the TTL.
func (c CachedLyrics) Expired(ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return time.Since(c.FetchedAt) > ttl
}

// Validate checks required lyric fields before persistence.
func (c CachedLyrics) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("%w: lyrics entry has no id", shared.ErrInvalidInput)
	}
	if c.Lyrics.Artist == "" || c.Lyrics.Title == "" {
		return fmt.Errorf("%w: lyrics entry requires artist and title", shared.ErrInvalidInput)
	}
	return nil
}
