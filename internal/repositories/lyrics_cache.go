package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/shared"
)

// LyricsCacheRepository persists lyrics lookups keyed by artist and title.
//
// Entries carry a fetch timestamp so callers can apply a TTL; expired entries
// are replaced on the next Put.
type LyricsCacheRepository struct {
	db *sql.DB
}

// NewLyricsCacheRepository creates a new LyricsCacheRepository with the given database connection
func NewLyricsCacheRepository(db *sql.DB) *LyricsCacheRepository {
	return &LyricsCacheRepository{db: db}
}

// Put stores a lyrics lookup, replacing any existing entry for the same track
func (r *LyricsCacheRepository) Put(entry models.CachedLyrics) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	content, err := json.Marshal(entry.Lyrics.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode lyric lines: %w", err)
	}

	query := `
		INSERT INTO lyrics_cache (id, artist, title, synced, content, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(artist, title) DO UPDATE SET
			synced = excluded.synced,
			content = excluded.content,
			fetched_at = excluded.fetched_at
	`

	_, err = r.db.Exec(query,
		entry.Key,
		entry.Lyrics.Artist,
		entry.Lyrics.Title,
		entry.Lyrics.Synced,
		string(content),
		entry.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to cache lyrics: %w", err)
	}

	return nil
}

// Get retrieves a cached lyrics lookup by track identity.
// Matching is case-insensitive on both artist and title.
func (r *LyricsCacheRepository) Get(artist, title string) (*models.CachedLyrics, error) {
	query := `
		SELECT id, artist, title, synced, content, fetched_at
		FROM lyrics_cache
		WHERE artist = ? COLLATE NOCASE AND title = ? COLLATE NOCASE
	`

	var (
		id        string
		rowArtist string
		rowTitle  string
		synced    bool
		content   string
		fetchedAt time.Time
	)

	err := r.db.QueryRow(query, strings.TrimSpace(artist), strings.TrimSpace(title)).
		Scan(&id, &rowArtist, &rowTitle, &synced, &content, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrLyricsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan lyrics entry: %w", err)
	}

	var lines []models.LyricLine
	if err := json.Unmarshal([]byte(content), &lines); err != nil {
		return nil, fmt.Errorf("failed to decode lyric lines: %w", err)
	}

	return &models.CachedLyrics{
		Key: id,
		Lyrics: models.Lyrics{
			Artist: rowArtist,
			Title:  rowTitle,
			Synced: synced,
			Lines:  lines,
		},
		FetchedAt: fetchedAt,
	}, nil
}

// Delete removes a cached lyrics entry by ID
func (r *LyricsCacheRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM lyrics_cache WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lyrics entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lyrics entry not found: %s", id)
	}

	return nil
}

// Purge removes all entries older than the given TTL and returns the count removed
func (r *LyricsCacheRepository) Purge(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)

	result, err := r.db.Exec("DELETE FROM lyrics_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge lyrics cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}
