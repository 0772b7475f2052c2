package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the tunebridge service.
// Implementations include PersistedStation and CachedLyrics.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Song represents a single track in the music library.
type Song struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	ArtistID string   `json:"artistId,omitempty"`
	Album    string   `json:"album"`
	AlbumID  string   `json:"albumId,omitempty"`
	Genre    string   `json:"genre,omitempty"`
	Year     int      `json:"year,omitempty"`
	Duration int      `json:"duration"` // seconds
	Track    int      `json:"track,omitempty"`
	BitRate  int      `json:"bitRate,omitempty"`
	Starred  bool     `json:"starred"`
	Tags     []string `json:"tags,omitempty"`
}

// Album represents an album in the music library.
type Album struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	ArtistID  string `json:"artistId,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Year      int    `json:"year,omitempty"`
	SongCount int    `json:"songCount"`
	Duration  int    `json:"duration"` // seconds
	Starred   bool   `json:"starred"`
}

// Artist represents an artist in the music library.
type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AlbumCount int    `json:"albumCount"`
	Starred    bool   `json:"starred"`
}

// Playlist represents a playlist in the music library.
type Playlist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Comment   string `json:"comment,omitempty"`
	Owner     string `json:"owner,omitempty"`
	Public    bool   `json:"public"`
	SongCount int    `json:"songCount"`
	Duration  int    `json:"duration"` // seconds
}

// PlaylistExport represents a playlist with its complete track listing.
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Songs    []Song   `json:"songs"`
}

// QueueState represents the play queue of the library account.
type QueueState struct {
	Current  string    `json:"current,omitempty"` // song ID at the playhead
	Position int64     `json:"position"`          // milliseconds into the current song
	Songs    []Song    `json:"songs"`
	Changed  time.Time `json:"changed,omitzero"`
	By       string    `json:"changedBy,omitempty"`
}

// Tag represents a user-defined tag attached to library entities.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Page wraps one page of list results with pagination cursors.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RadioStation represents a station directory entry.
type RadioStation struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	StreamURL  string `json:"streamUrl"`
	Homepage   string `json:"homepage,omitempty"`
	Favicon    string `json:"favicon,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Country    string `json:"country,omitempty"`
	Language   string `json:"language,omitempty"`
	Codec      string `json:"codec,omitempty"`
	Bitrate    int    `json:"bitrate,omitempty"`
	Votes      int    `json:"votes"`
	ClickCount int    `json:"clickCount,omitempty"`
}

// LyricLine is one timed line of synced lyrics.
type LyricLine struct {
	// TimestampMs is the offset from the start of the song; -1 for plain lyrics.
	TimestampMs int64  `json:"timestampMs"`
	Text        string `json:"text"`
}

// Lyrics is a lyrics lookup result, synced when timestamps are present.
type Lyrics struct {
	Artist string      `json:"artist"`
	Title  string      `json:"title"`
	Synced bool        `json:"synced"`
	Lines  []LyricLine `json:"lines"`
}

// SimilarArtist is one entry of a similar-artist discovery result.
type SimilarArtist struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Match float64 `json:"match"` // 0..1 similarity
}

// SimilarTrack is one entry of a similar-track discovery result.
type SimilarTrack struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Match  float64 `json:"match"`
}

// ChartEntry is one position of a trending chart.
type ChartEntry struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title,omitempty"` // empty for artist charts
	Artist string `json:"artist"`
	Plays  int64  `json:"plays,omitempty"`
}

// ArtistBio is a biography retrieval result.
type ArtistBio struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
}
