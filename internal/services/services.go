// package services defines clients for the upstream systems tunebridge bridges
//
// Music library (Subsonic-compatible), radio station directory, music-metadata
// provider, lyrics provider
package services

import (
	"context"

	"github.com/desertthunder/tunebridge/internal/models"
)

// ListOpts carries pagination parameters for library list operations.
type ListOpts struct {
	Offset int
	Limit  int
}

// Clamp bounds pagination to sane values; zero limit becomes the default.
func (o ListOpts) Clamp(defaultLimit, maxLimit int) ListOpts {
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// LibraryService defines operations against the remote music library.
type LibraryService interface {
	// Ping verifies connectivity and credentials.
	Ping(ctx context.Context) error

	// Search runs a full-text search across songs, albums, and artists.
	Search(ctx context.Context, query string, opts ListOpts) (*SearchResult, error)

	// GetSong retrieves a single song by ID.
	GetSong(ctx context.Context, id string) (*models.Song, error)

	// ListAlbums retrieves a page of albums ordered by the given sort.
	ListAlbums(ctx context.Context, sort string, opts ListOpts) (*models.Page[models.Album], error)

	// GetAlbum retrieves an album and its songs.
	GetAlbum(ctx context.Context, id string) (*models.Album, []models.Song, error)

	// ListArtists retrieves all library artists.
	ListArtists(ctx context.Context) ([]models.Artist, error)

	// GetPlaylists retrieves all playlists visible to the account.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a playlist with its full track listing.
	GetPlaylist(ctx context.Context, id string) (*models.PlaylistExport, error)

	// CreatePlaylist creates a playlist from song IDs and returns it.
	CreatePlaylist(ctx context.Context, name string, songIDs []string) (*models.Playlist, error)

	// DeletePlaylist removes a playlist by ID.
	DeletePlaylist(ctx context.Context, id string) error

	// GetQueue retrieves the account's saved play queue.
	GetQueue(ctx context.Context) (*models.QueueState, error)

	// SaveQueue replaces the saved play queue.
	SaveQueue(ctx context.Context, songIDs []string, current string, positionMs int64) error

	// ListTags retrieves genre tags with usage counts.
	ListTags(ctx context.Context) ([]models.Tag, error)

	// SetStarred stars or unstars a song, album, or artist by ID.
	SetStarred(ctx context.Context, id string, starred bool) error

	// Name returns the service name for logging and display.
	Name() string
}

// SearchResult groups full-text search matches by entity type.
type SearchResult struct {
	Songs   []models.Song   `json:"songs"`
	Albums  []models.Album  `json:"albums"`
	Artists []models.Artist `json:"artists"`
}

// StationSearch carries station directory search parameters.
type StationSearch struct {
	Name    string
	Tag     string
	Country string
	Offset  int
	Limit   int
	Order   string // votes, clickcount, name
}

// DirectoryService defines operations against the radio station directory.
type DirectoryService interface {
	// SearchStations queries the directory for stations matching the filters.
	SearchStations(ctx context.Context, query StationSearch) ([]models.RadioStation, error)

	// ClickStation records a listen event, which directories use for ranking.
	ClickStation(ctx context.Context, uuid string) error

	// VoteStation casts a vote for a station.
	VoteStation(ctx context.Context, uuid string) error

	// Name returns the service name for logging and display.
	Name() string
}

// MetadataService defines lookups against the third-party metadata provider.
type MetadataService interface {
	// SimilarArtists returns artists similar to the named one.
	SimilarArtists(ctx context.Context, artist string, limit int) ([]models.SimilarArtist, error)

	// SimilarTracks returns tracks similar to the given title and artist.
	SimilarTracks(ctx context.Context, title, artist string, limit int) ([]models.SimilarTrack, error)

	// TopArtists returns the current trending artist chart.
	TopArtists(ctx context.Context, limit int) ([]models.ChartEntry, error)

	// TopTracks returns the current trending track chart.
	TopTracks(ctx context.Context, limit int) ([]models.ChartEntry, error)

	// ArtistBio retrieves a biography for the named artist.
	ArtistBio(ctx context.Context, artist string) (*models.ArtistBio, error)

	// Name returns the service name for logging and display.
	Name() string
}

// LyricsService defines lyrics lookup operations.
type LyricsService interface {
	// GetLyrics looks up lyrics for a track, preferring synced lines.
	GetLyrics(ctx context.Context, artist, title string) (*models.Lyrics, error)

	// Name returns the service name for logging and display.
	Name() string
}
