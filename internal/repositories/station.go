package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tunebridge/internal/models"
)

// StationRepository implements models.Repository[*models.PersistedStation] for station caching.
//
// Handles station CRUD operations with soft delete support and stream URL lookups.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new StationRepository with the given database connection
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// Create inserts a new station into the database with a generated sequence
func (r *StationRepository) Create(station *models.PersistedStation) error {
	sequence, err := NextSequence(r.db, "stations")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	station.Sequence = sequence

	if err := station.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO stations (id, sequence, name, stream_url, homepage, genre, country, bitrate, codec, status, last_checked_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		station.Key,
		station.Sequence,
		station.Station.Name,
		station.Station.StreamURL,
		station.Station.Homepage,
		station.Station.Genre,
		station.Station.Country,
		station.Station.Bitrate,
		station.Station.Codec,
		station.Status,
		station.LastCheckedAt,
		station.Created,
		station.Updated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert station: %w", err)
	}

	return nil
}

// Get retrieves a station by ID, excluding soft-deleted stations
func (r *StationRepository) Get(id string) (*models.PersistedStation, error) {
	query := `
		SELECT id, sequence, name, stream_url, homepage, genre, country, bitrate, codec, status, last_checked_at, created_at, updated_at, deleted_at
		FROM stations
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByStreamURL retrieves a station by its stream URL
func (r *StationRepository) GetByStreamURL(streamURL string) (*models.PersistedStation, error) {
	query := `
		SELECT id, sequence, name, stream_url, homepage, genre, country, bitrate, codec, status, last_checked_at, created_at, updated_at, deleted_at
		FROM stations
		WHERE stream_url = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, streamURL))
}

// Update modifies an existing station's metadata and validation status
func (r *StationRepository) Update(station *models.PersistedStation) error {
	if err := station.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	station.Updated = now

	query := `
		UPDATE stations
		SET name = ?, homepage = ?, genre = ?, country = ?, bitrate = ?, codec = ?, status = ?, last_checked_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		station.Station.Name,
		station.Station.Homepage,
		station.Station.Genre,
		station.Station.Country,
		station.Station.Bitrate,
		station.Station.Codec,
		station.Status,
		station.LastCheckedAt,
		now,
		station.Key,
	)
	if err != nil {
		return fmt.Errorf("failed to update station: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("station not found or already deleted: %s", station.Key)
	}

	return nil
}

// Delete soft-deletes a station by ID
func (r *StationRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE stations
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("station not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all stations matching the given criteria, excluding soft-deleted stations
func (r *StationRepository) List(criteria map[string]any) ([]*models.PersistedStation, error) {
	query := `
		SELECT id, sequence, name, stream_url, homepage, genre, country, bitrate, codec, status, last_checked_at, created_at, updated_at, deleted_at
		FROM stations
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if country, ok := criteria["country"].(string); ok && country != "" {
		query += " AND country = ?"
		args = append(args, country)
	}

	if genre, ok := criteria["genre"].(string); ok && genre != "" {
		query += " AND genre = ?"
		args = append(args, genre)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []*models.PersistedStation
	for rows.Next() {
		station, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stations, nil
}

// scanOne scans a single row into a [models.PersistedStation]
func (r *StationRepository) scanOne(row *sql.Row) (*models.PersistedStation, error) {
	var (
		id            string
		sequence      int
		name          string
		streamURL     string
		homepage      sql.NullString
		genre         sql.NullString
		country       sql.NullString
		bitrate       int
		codec         sql.NullString
		status        string
		lastCheckedAt sql.NullTime
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &streamURL, &homepage, &genre, &country, &bitrate, &codec, &status, &lastCheckedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("station not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan station: %w", err)
	}

	return buildStation(id, sequence, name, streamURL, homepage, genre, country, bitrate, codec, status, lastCheckedAt, createdAt, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.PersistedStation]
func (r *StationRepository) scanRow(rows *sql.Rows) (*models.PersistedStation, error) {
	var (
		id            string
		sequence      int
		name          string
		streamURL     string
		homepage      sql.NullString
		genre         sql.NullString
		country       sql.NullString
		bitrate       int
		codec         sql.NullString
		status        string
		lastCheckedAt sql.NullTime
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &name, &streamURL, &homepage, &genre, &country, &bitrate, &codec, &status, &lastCheckedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan station: %w", err)
	}

	return buildStation(id, sequence, name, streamURL, homepage, genre, country, bitrate, codec, status, lastCheckedAt, createdAt, updatedAt, deletedAt), nil
}

func buildStation(id string, sequence int, name, streamURL string, homepage, genre, country sql.NullString, bitrate int, codec sql.NullString, status string, lastCheckedAt sql.NullTime, createdAt, updatedAt time.Time, deletedAt sql.NullTime) *models.PersistedStation {
	station := &models.PersistedStation{
		Key:      id,
		Sequence: sequence,
		Station: models.RadioStation{
			Name:      name,
			StreamURL: streamURL,
			Homepage:  homepage.String,
			Genre:     genre.String,
			Country:   country.String,
			Bitrate:   bitrate,
			Codec:     codec.String,
		},
		Status:  status,
		Created: createdAt,
		Updated: updatedAt,
	}
	if lastCheckedAt.Valid {
		station.LastCheckedAt = lastCheckedAt.Time
	}
	if deletedAt.Valid {
		station.Deleted = &deletedAt.Time
	}
	return station
}
