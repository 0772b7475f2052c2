// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
)

// MockLibrary is a test double for [services.LibraryService].
// Unset func fields return empty values.
type MockLibrary struct {
	PingFunc    func(ctx context.Context) error
	SearchFunc  func(ctx context.Context, query string, opts services.ListOpts) (*services.SearchResult, error)
	GetSongFunc func(ctx context.Context, id string) (*models.Song, error)
}

func (m *MockLibrary) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockLibrary) Search(ctx context.Context, query string, opts services.ListOpts) (*services.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return &services.SearchResult{}, nil
}

func (m *MockLibrary) GetSong(ctx context.Context, id string) (*models.Song, error) {
	if m.GetSongFunc != nil {
		return m.GetSongFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockLibrary) ListAlbums(ctx context.Context, sort string, opts services.ListOpts) (*models.Page[models.Album], error) {
	return &models.Page[models.Album]{}, nil
}

func (m *MockLibrary) GetAlbum(ctx context.Context, id string) (*models.Album, []models.Song, error) {
	return nil, nil, nil
}

func (m *MockLibrary) ListArtists(ctx context.Context) ([]models.Artist, error) {
	return []models.Artist{}, nil
}

func (m *MockLibrary) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return []models.Playlist{}, nil
}

func (m *MockLibrary) GetPlaylist(ctx context.Context, id string) (*models.PlaylistExport, error) {
	return nil, nil
}

func (m *MockLibrary) CreatePlaylist(ctx context.Context, name string, songIDs []string) (*models.Playlist, error) {
	return nil, nil
}

func (m *MockLibrary) DeletePlaylist(ctx context.Context, id string) error { return nil }

func (m *MockLibrary) GetQueue(ctx context.Context) (*models.QueueState, error) { return nil, nil }

func (m *MockLibrary) SaveQueue(ctx context.Context, songIDs []string, current string, positionMs int64) error {
	return nil
}

func (m *MockLibrary) ListTags(ctx context.Context) ([]models.Tag, error) {
	return []models.Tag{}, nil
}

func (m *MockLibrary) SetStarred(ctx context.Context, id string, starred bool) error { return nil }

func (m *MockLibrary) Name() string { return "mock-library" }

// MockDirectory is a test double for [services.DirectoryService].
type MockDirectory struct {
	SearchStationsFunc func(ctx context.Context, query services.StationSearch) ([]models.RadioStation, error)
	ClickStationFunc   func(ctx context.Context, uuid string) error
	VoteStationFunc    func(ctx context.Context, uuid string) error

	Clicks []string
	Votes  []string
}

func (m *MockDirectory) SearchStations(ctx context.Context, query services.StationSearch) ([]models.RadioStation, error) {
	if m.SearchStationsFunc != nil {
		return m.SearchStationsFunc(ctx, query)
	}
	return []models.RadioStation{}, nil
}

func (m *MockDirectory) ClickStation(ctx context.Context, uuid string) error {
	m.Clicks = append(m.Clicks, uuid)
	if m.ClickStationFunc != nil {
		return m.ClickStationFunc(ctx, uuid)
	}
	return nil
}

func (m *MockDirectory) VoteStation(ctx context.Context, uuid string) error {
	m.Votes = append(m.Votes, uuid)
	if m.VoteStationFunc != nil {
		return m.VoteStationFunc(ctx, uuid)
	}
	return nil
}

func (m *MockDirectory) Name() string { return "mock-directory" }

// MockMetadata is a test double for [services.MetadataService].
type MockMetadata struct {
	SimilarArtistsFunc func(ctx context.Context, artist string, limit int) ([]models.SimilarArtist, error)
	SimilarTracksFunc  func(ctx context.Context, title, artist string, limit int) ([]models.SimilarTrack, error)
	TopArtistsFunc     func(ctx context.Context, limit int) ([]models.ChartEntry, error)
	TopTracksFunc      func(ctx context.Context, limit int) ([]models.ChartEntry, error)
	ArtistBioFunc      func(ctx context.Context, artist string) (*models.ArtistBio, error)
}

func (m *MockMetadata) SimilarArtists(ctx context.Context, artist string, limit int) ([]models.SimilarArtist, error) {
	if m.SimilarArtistsFunc != nil {
		return m.SimilarArtistsFunc(ctx, artist, limit)
	}
	return []models.SimilarArtist{}, nil
}

func (m *MockMetadata) SimilarTracks(ctx context.Context, title, artist string, limit int) ([]models.SimilarTrack, error) {
	if m.SimilarTracksFunc != nil {
		return m.SimilarTracksFunc(ctx, title, artist, limit)
	}
	return []models.SimilarTrack{}, nil
}

func (m *MockMetadata) TopArtists(ctx context.Context, limit int) ([]models.ChartEntry, error) {
	if m.TopArtistsFunc != nil {
		return m.TopArtistsFunc(ctx, limit)
	}
	return []models.ChartEntry{}, nil
}

func (m *MockMetadata) TopTracks(ctx context.Context, limit int) ([]models.ChartEntry, error) {
	if m.TopTracksFunc != nil {
		return m.TopTracksFunc(ctx, limit)
	}
	return []models.ChartEntry{}, nil
}

func (m *MockMetadata) ArtistBio(ctx context.Context, artist string) (*models.ArtistBio, error) {
	if m.ArtistBioFunc != nil {
		return m.ArtistBioFunc(ctx, artist)
	}
	return nil, nil
}

func (m *MockMetadata) Name() string { return "mock-metadata" }

// MockLyrics is a test double for [services.LyricsService].
type MockLyrics struct {
	GetLyricsFunc func(ctx context.Context, artist, title string) (*models.Lyrics, error)
}

func (m *MockLyrics) GetLyrics(ctx context.Context, artist, title string) (*models.Lyrics, error) {
	if m.GetLyricsFunc != nil {
		return m.GetLyricsFunc(ctx, artist, title)
	}
	return &models.Lyrics{Artist: artist, Title: title}, nil
}

func (m *MockLyrics) Name() string { return "mock-lyrics" }

// MockValidator is a test double for tasks.StreamValidator.
type MockValidator struct {
	ValidateFunc func(ctx context.Context, req streamcheck.Request) (*streamcheck.Result, error)
	CallCount    int
}

func (m *MockValidator) Validate(ctx context.Context, req streamcheck.Request) (*streamcheck.Result, error) {
	m.CallCount++
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, req)
	}
	return &streamcheck.Result{URL: req.URL, Status: streamcheck.StatusValid, Success: true, HTTPAccessible: true}, nil
}

// MockCacher is a test double for tasks.StationCacher.
type MockCacher struct {
	CacheStationFunc func(station models.RadioStation, result *streamcheck.Result) error
	Cached           []models.RadioStation
}

func (m *MockCacher) CacheStation(station models.RadioStation, result *streamcheck.Result) error {
	m.Cached = append(m.Cached, station)
	if m.CacheStationFunc != nil {
		return m.CacheStationFunc(station, result)
	}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// RoundTripFunc adapts a function into an [http.RoundTripper]
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
