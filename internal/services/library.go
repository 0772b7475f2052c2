// Subsonic-compatible music library client.
//
// API reference: http://www.subsonic.org/pages/api.jsp (rest protocol 1.16.1)
package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/shared"
)

const (
	subsonicAPIVersion = "1.16.1"
	defaultListLimit   = 50
	maxListLimit       = 500
)

// LibraryClient implements [LibraryService] against a Subsonic-compatible server.
type LibraryClient struct {
	baseURL    string
	username   string
	password   string
	clientName string
	extra      map[string]string // replayed on every request (from a parsed cURL file)
	httpClient *http.Client
}

// NewLibraryClient creates a library client for the configured server.
//
// When cfg.HeadersPath is set, the cURL command saved there is parsed and its
// headers are replayed on every request, for instances behind auth proxies.
func NewLibraryClient(cfg shared.LibraryConfig, client *http.Client) (*LibraryClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: library base_url is required", shared.ErrInvalidConfig)
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: library username and password are required", shared.ErrMissingCredentials)
	}
	if cfg.ClientName == "" {
		cfg.ClientName = "tunebridge"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	extra := map[string]string{}
	if cfg.HeadersPath != "" {
		parsed, err := shared.ParseCurlFile(cfg.HeadersPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load extra headers: %w", err)
		}
		extra = parsed.Headers
		if parsed.Cookie != "" {
			extra["Cookie"] = parsed.Cookie
		}
	}

	return &LibraryClient{
		baseURL:    cfg.BaseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		clientName: cfg.ClientName,
		extra:      extra,
		httpClient: client,
	}, nil
}

// Name returns the service name.
func (l *LibraryClient) Name() string { return "Library" }

// subsonicEnvelope is the outer wrapper every Subsonic response carries.
type subsonicEnvelope struct {
	Response subsonicResponse `json:"subsonic-response"`
}

type subsonicResponse struct {
	Status string         `json:"status"`
	Error  *subsonicError `json:"error,omitempty"`

	SearchResult3 *searchResult3     `json:"searchResult3,omitempty"`
	Song          *subsonicSong      `json:"song,omitempty"`
	AlbumList2    *albumList2        `json:"albumList2,omitempty"`
	Album         *subsonicAlbum     `json:"album,omitempty"`
	Artists       *artistsIndex      `json:"artists,omitempty"`
	Playlists     *subsonicPlaylists `json:"playlists,omitempty"`
	Playlist      *subsonicPlaylist  `json:"playlist,omitempty"`
	PlayQueue     *subsonicPlayQueue `json:"playQueue,omitempty"`
	Genres        *subsonicGenres    `json:"genres,omitempty"`
}

type subsonicError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type subsonicSong struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	ArtistID string `json:"artistId"`
	Album    string `json:"album"`
	AlbumID  string `json:"albumId"`
	Genre    string `json:"genre"`
	Year     int    `json:"year"`
	Duration int    `json:"duration"`
	Track    int    `json:"track"`
	BitRate  int    `json:"bitRate"`
	Starred  string `json:"starred"` // timestamp when starred, absent otherwise
}

type subsonicAlbum struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Artist    string         `json:"artist"`
	ArtistID  string         `json:"artistId"`
	Genre     string         `json:"genre"`
	Year      int            `json:"year"`
	SongCount int            `json:"songCount"`
	Duration  int            `json:"duration"`
	Starred   string         `json:"starred"`
	Songs     []subsonicSong `json:"song"`
}

type subsonicArtist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AlbumCount int    `json:"albumCount"`
	Starred    string `json:"starred"`
}

type searchResult3 struct {
	Songs   []subsonicSong   `json:"song"`
	Albums  []subsonicAlbum  `json:"album"`
	Artists []subsonicArtist `json:"artist"`
}

type albumList2 struct {
	Albums []subsonicAlbum `json:"album"`
}

type artistsIndex struct {
	Index []struct {
		Name    string           `json:"name"`
		Artists []subsonicArtist `json:"artist"`
	} `json:"index"`
}

type subsonicPlaylist struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Comment   string         `json:"comment"`
	Owner     string         `json:"owner"`
	Public    bool           `json:"public"`
	SongCount int            `json:"songCount"`
	Duration  int            `json:"duration"`
	Entries   []subsonicSong `json:"entry"`
}

type subsonicPlaylists struct {
	Playlists []subsonicPlaylist `json:"playlist"`
}

type subsonicPlayQueue struct {
	Current   string         `json:"current"`
	Position  int64          `json:"position"`
	Changed   time.Time      `json:"changed"`
	ChangedBy string         `json:"changedBy"`
	Entries   []subsonicSong `json:"entry"`
}

type subsonicGenres struct {
	Genres []struct {
		Name      string `json:"value"`
		SongCount int    `json:"songCount"`
	} `json:"genre"`
}

// authParams builds the token+salt authentication query parameters.
func (l *LibraryClient) authParams() url.Values {
	salt := shared.GenerateID()[:8]
	sum := md5.Sum([]byte(l.password + salt))

	params := url.Values{}
	params.Set("u", l.username)
	params.Set("t", hex.EncodeToString(sum[:]))
	params.Set("s", salt)
	params.Set("v", subsonicAPIVersion)
	params.Set("c", l.clientName)
	params.Set("f", "json")
	return params
}

// call issues one REST request and unwraps the Subsonic envelope.
func (l *LibraryClient) call(ctx context.Context, method string, params url.Values) (*subsonicResponse, error) {
	query := l.authParams()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	endpoint := fmt.Sprintf("%s/rest/%s?%s", l.baseURL, method, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range l.extra {
		req.Header.Set(key, value)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", shared.ErrAPIRequest, method, resp.StatusCode)
	}

	var envelope subsonicEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", method, err)
	}
	if envelope.Response.Status != "ok" {
		if envelope.Response.Error != nil {
			return nil, fmt.Errorf("%w: %s: %s (code %d)", shared.ErrAPIRequest, method,
				envelope.Response.Error.Message, envelope.Response.Error.Code)
		}
		return nil, fmt.Errorf("%w: %s returned status %q", shared.ErrAPIRequest, method, envelope.Response.Status)
	}

	return &envelope.Response, nil
}

// Ping verifies connectivity and credentials.
func (l *LibraryClient) Ping(ctx context.Context) error {
	_, err := l.call(ctx, "ping", nil)
	return err
}

// Search runs a full-text search across songs, albums, and artists.
func (l *LibraryClient) Search(ctx context.Context, query string, opts ListOpts) (*SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}
	opts = opts.Clamp(defaultListLimit, maxListLimit)

	params := url.Values{}
	params.Set("query", query)
	params.Set("songCount", strconv.Itoa(opts.Limit))
	params.Set("songOffset", strconv.Itoa(opts.Offset))
	params.Set("albumCount", strconv.Itoa(opts.Limit))
	params.Set("albumOffset", strconv.Itoa(opts.Offset))
	params.Set("artistCount", strconv.Itoa(opts.Limit))
	params.Set("artistOffset", strconv.Itoa(opts.Offset))

	resp, err := l.call(ctx, "search3", params)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Songs: []models.Song{}, Albums: []models.Album{}, Artists: []models.Artist{}}
	if resp.SearchResult3 != nil {
		for _, song := range resp.SearchResult3.Songs {
			result.Songs = append(result.Songs, convertSong(song))
		}
		for _, album := range resp.SearchResult3.Albums {
			result.Albums = append(result.Albums, convertAlbum(album))
		}
		for _, artist := range resp.SearchResult3.Artists {
			result.Artists = append(result.Artists, convertArtist(artist))
		}
	}
	return result, nil
}

// GetSong retrieves a single song by ID.
func (l *LibraryClient) GetSong(ctx context.Context, id string) (*models.Song, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("id", id)
	resp, err := l.call(ctx, "getSong", params)
	if err != nil {
		return nil, err
	}
	if resp.Song == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	song := convertSong(*resp.Song)
	return &song, nil
}

// ListAlbums retrieves a page of albums.
//
// Sort accepts the Subsonic list types: newest, recent, frequent, random,
// alphabeticalByName, alphabeticalByArtist, starred.
func (l *LibraryClient) ListAlbums(ctx context.Context, sort string, opts ListOpts) (*models.Page[models.Album], error) {
	if sort == "" {
		sort = "alphabeticalByName"
	}
	opts = opts.Clamp(defaultListLimit, maxListLimit)

	params := url.Values{}
	params.Set("type", sort)
	params.Set("size", strconv.Itoa(opts.Limit))
	params.Set("offset", strconv.Itoa(opts.Offset))

	resp, err := l.call(ctx, "getAlbumList2", params)
	if err != nil {
		return nil, err
	}

	page := &models.Page[models.Album]{
		Items:  []models.Album{},
		Offset: opts.Offset,
		Limit:  opts.Limit,
	}
	if resp.AlbumList2 != nil {
		for _, album := range resp.AlbumList2.Albums {
			page.Items = append(page.Items, convertAlbum(album))
		}
	}
	page.Total = opts.Offset + len(page.Items)
	return page, nil
}

// GetAlbum retrieves an album and its songs.
func (l *LibraryClient) GetAlbum(ctx context.Context, id string) (*models.Album, []models.Song, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("%w: album id is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("id", id)
	resp, err := l.call(ctx, "getAlbum", params)
	if err != nil {
		return nil, nil, err
	}
	if resp.Album == nil {
		return nil, nil, fmt.Errorf("%w: %s", shared.ErrAlbumNotFound, id)
	}

	album := convertAlbum(*resp.Album)
	songs := make([]models.Song, 0, len(resp.Album.Songs))
	for _, song := range resp.Album.Songs {
		songs = append(songs, convertSong(song))
	}
	return &album, songs, nil
}

// ListArtists retrieves all library artists, flattening the index groups.
func (l *LibraryClient) ListArtists(ctx context.Context) ([]models.Artist, error) {
	resp, err := l.call(ctx, "getArtists", nil)
	if err != nil {
		return nil, err
	}

	artists := []models.Artist{}
	if resp.Artists != nil {
		for _, index := range resp.Artists.Index {
			for _, artist := range index.Artists {
				artists = append(artists, convertArtist(artist))
			}
		}
	}
	return artists, nil
}

// GetPlaylists retrieves all playlists visible to the account.
func (l *LibraryClient) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	resp, err := l.call(ctx, "getPlaylists", nil)
	if err != nil {
		return nil, err
	}

	playlists := []models.Playlist{}
	if resp.Playlists != nil {
		for _, playlist := range resp.Playlists.Playlists {
			playlists = append(playlists, convertPlaylist(playlist))
		}
	}
	return playlists, nil
}

// GetPlaylist retrieves a playlist with its full track listing.
func (l *LibraryClient) GetPlaylist(ctx context.Context, id string) (*models.PlaylistExport, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("id", id)
	resp, err := l.call(ctx, "getPlaylist", params)
	if err != nil {
		return nil, err
	}
	if resp.Playlist == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	export := &models.PlaylistExport{
		Playlist: convertPlaylist(*resp.Playlist),
		Songs:    make([]models.Song, 0, len(resp.Playlist.Entries)),
	}
	for _, song := range resp.Playlist.Entries {
		export.Songs = append(export.Songs, convertSong(song))
	}
	return export, nil
}

// CreatePlaylist creates a playlist from song IDs and returns it.
func (l *LibraryClient) CreatePlaylist(ctx context.Context, name string, songIDs []string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("name", name)
	for _, id := range songIDs {
		params.Add("songId", id)
	}

	resp, err := l.call(ctx, "createPlaylist", params)
	if err != nil {
		return nil, err
	}
	if resp.Playlist == nil {
		// Older servers return an empty ok response; refetch by listing.
		playlists, err := l.GetPlaylists(ctx)
		if err != nil {
			return nil, err
		}
		for _, playlist := range playlists {
			if playlist.Name == name {
				return &playlist, nil
			}
		}
		return nil, fmt.Errorf("%w: created playlist %q not found", shared.ErrPlaylistNotFound, name)
	}

	playlist := convertPlaylist(*resp.Playlist)
	return &playlist, nil
}

// DeletePlaylist removes a playlist by ID.
func (l *LibraryClient) DeletePlaylist(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("id", id)
	_, err := l.call(ctx, "deletePlaylist", params)
	return err
}

// GetQueue retrieves the account's saved play queue.
func (l *LibraryClient) GetQueue(ctx context.Context) (*models.QueueState, error) {
	resp, err := l.call(ctx, "getPlayQueue", nil)
	if err != nil {
		return nil, err
	}

	queue := &models.QueueState{Songs: []models.Song{}}
	if resp.PlayQueue != nil {
		queue.Current = resp.PlayQueue.Current
		queue.Position = resp.PlayQueue.Position
		queue.Changed = resp.PlayQueue.Changed
		queue.By = resp.PlayQueue.ChangedBy
		for _, song := range resp.PlayQueue.Entries {
			queue.Songs = append(queue.Songs, convertSong(song))
		}
	}
	return queue, nil
}

// SaveQueue replaces the saved play queue.
func (l *LibraryClient) SaveQueue(ctx context.Context, songIDs []string, current string, positionMs int64) error {
	if len(songIDs) == 0 {
		return fmt.Errorf("%w: at least one song id is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	for _, id := range songIDs {
		params.Add("id", id)
	}
	if current != "" {
		params.Set("current", current)
	}
	if positionMs > 0 {
		params.Set("position", strconv.FormatInt(positionMs, 10))
	}

	_, err := l.call(ctx, "savePlayQueue", params)
	return err
}

// ListTags retrieves genre tags with usage counts.
func (l *LibraryClient) ListTags(ctx context.Context) ([]models.Tag, error) {
	resp, err := l.call(ctx, "getGenres", nil)
	if err != nil {
		return nil, err
	}

	tags := []models.Tag{}
	if resp.Genres != nil {
		for _, genre := range resp.Genres.Genres {
			tags = append(tags, models.Tag{Name: genre.Name, Count: genre.SongCount})
		}
	}
	return tags, nil
}

// SetStarred stars or unstars a song, album, or artist by ID.
func (l *LibraryClient) SetStarred(ctx context.Context, id string, starred bool) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", shared.ErrMissingArgument)
	}

	method := "star"
	if !starred {
		method = "unstar"
	}
	params := url.Values{}
	params.Set("id", id)
	_, err := l.call(ctx, method, params)
	return err
}

func convertSong(s subsonicSong) models.Song {
	return models.Song{
		ID:       s.ID,
		Title:    s.Title,
		Artist:   s.Artist,
		ArtistID: s.ArtistID,
		Album:    s.Album,
		AlbumID:  s.AlbumID,
		Genre:    s.Genre,
		Year:     s.Year,
		Duration: s.Duration,
		Track:    s.Track,
		BitRate:  s.BitRate,
		Starred:  s.Starred != "",
	}
}

func convertAlbum(a subsonicAlbum) models.Album {
	return models.Album{
		ID:        a.ID,
		Name:      a.Name,
		Artist:    a.Artist,
		ArtistID:  a.ArtistID,
		Genre:     a.Genre,
		Year:      a.Year,
		SongCount: a.SongCount,
		Duration:  a.Duration,
		Starred:   a.Starred != "",
	}
}

func convertArtist(a subsonicArtist) models.Artist {
	return models.Artist{
		ID:         a.ID,
		Name:       a.Name,
		AlbumCount: a.AlbumCount,
		Starred:    a.Starred != "",
	}
}

func convertPlaylist(p subsonicPlaylist) models.Playlist {
	return models.Playlist{
		ID:        p.ID,
		Name:      p.Name,
		Comment:   p.Comment,
		Owner:     p.Owner,
		Public:    p.Public,
		SongCount: p.SongCount,
		Duration:  p.Duration,
	}
}
