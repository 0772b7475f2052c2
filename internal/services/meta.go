// Music-metadata provider client (similar artists/tracks, charts, biographies).
//
// Authenticates with the OAuth2 client-credentials flow; the token source
// refreshes transparently.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultMetaLimit = 20

// MetadataClient implements [MetadataService].
type MetadataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMetadataClient creates a metadata client. The returned client owns an
// oauth2 transport that injects and refreshes bearer tokens.
func NewMetadataClient(cfg shared.MetadataConfig) (*MetadataClient, error) {
	if cfg.BaseURL == "" || cfg.TokenURL == "" {
		return nil, fmt.Errorf("%w: metadata base_url and token_url are required", shared.ErrInvalidConfig)
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: metadata client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	httpClient := credentials.Client(context.Background())
	httpClient.Timeout = 20 * time.Second

	return &MetadataClient{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}, nil
}

// Name returns the service name.
func (m *MetadataClient) Name() string { return "Metadata" }

func (m *MetadataClient) get(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := m.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrArtistNotFound, path)
	default:
		return fmt.Errorf("%w: metadata provider returned HTTP %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to parse metadata response: %w", err)
	}
	return nil
}

// SimilarArtists returns artists similar to the named one.
func (m *MetadataClient) SimilarArtists(ctx context.Context, artist string, limit int) ([]models.SimilarArtist, error) {
	if artist == "" {
		return nil, fmt.Errorf("%w: artist name is required", shared.ErrMissingArgument)
	}
	if limit <= 0 {
		limit = defaultMetaLimit
	}

	params := url.Values{}
	params.Set("name", artist)
	params.Set("limit", strconv.Itoa(limit))

	var payload struct {
		Artists []struct {
			ID    string  `json:"id"`
			Name  string  `json:"name"`
			Match float64 `json:"match"`
		} `json:"artists"`
	}
	if err := m.get(ctx, "/similar/artists", params, &payload); err != nil {
		return nil, err
	}

	similar := make([]models.SimilarArtist, 0, len(payload.Artists))
	for _, entry := range payload.Artists {
		similar = append(similar, models.SimilarArtist{ID: entry.ID, Name: entry.Name, Match: entry.Match})
	}
	return similar, nil
}

// SimilarTracks returns tracks similar to the given title and artist.
func (m *MetadataClient) SimilarTracks(ctx context.Context, title, artist string, limit int) ([]models.SimilarTrack, error) {
	if title == "" || artist == "" {
		return nil, fmt.Errorf("%w: track title and artist are required", shared.ErrMissingArgument)
	}
	if limit <= 0 {
		limit = defaultMetaLimit
	}

	params := url.Values{}
	params.Set("title", title)
	params.Set("artist", artist)
	params.Set("limit", strconv.Itoa(limit))

	var payload struct {
		Tracks []struct {
			ID     string  `json:"id"`
			Title  string  `json:"title"`
			Artist string  `json:"artist"`
			Match  float64 `json:"match"`
		} `json:"tracks"`
	}
	if err := m.get(ctx, "/similar/tracks", params, &payload); err != nil {
		return nil, err
	}

	similar := make([]models.SimilarTrack, 0, len(payload.Tracks))
	for _, entry := range payload.Tracks {
		similar = append(similar, models.SimilarTrack{
			ID:     entry.ID,
			Title:  entry.Title,
			Artist: entry.Artist,
			Match:  entry.Match,
		})
	}
	return similar, nil
}

type chartPayload struct {
	Entries []struct {
		Rank   int    `json:"rank"`
		Title  string `json:"title"`
		Artist string `json:"artist"`
		Plays  int64  `json:"plays"`
	} `json:"entries"`
}

func (p chartPayload) convert() []models.ChartEntry {
	entries := make([]models.ChartEntry, 0, len(p.Entries))
	for i, entry := range p.Entries {
		rank := entry.Rank
		if rank == 0 {
			rank = i + 1
		}
		entries = append(entries, models.ChartEntry{
			Rank:   rank,
			Title:  entry.Title,
			Artist: entry.Artist,
			Plays:  entry.Plays,
		})
	}
	return entries
}

// TopArtists returns the current trending artist chart.
func (m *MetadataClient) TopArtists(ctx context.Context, limit int) ([]models.ChartEntry, error) {
	if limit <= 0 {
		limit = defaultMetaLimit
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var payload chartPayload
	if err := m.get(ctx, "/charts/artists", params, &payload); err != nil {
		return nil, err
	}
	return payload.convert(), nil
}

// TopTracks returns the current trending track chart.
func (m *MetadataClient) TopTracks(ctx context.Context, limit int) ([]models.ChartEntry, error) {
	if limit <= 0 {
		limit = defaultMetaLimit
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var payload chartPayload
	if err := m.get(ctx, "/charts/tracks", params, &payload); err != nil {
		return nil, err
	}
	return payload.convert(), nil
}

// ArtistBio retrieves a biography for the named artist.
func (m *MetadataClient) ArtistBio(ctx context.Context, artist string) (*models.ArtistBio, error) {
	if artist == "" {
		return nil, fmt.Errorf("%w: artist name is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("name", artist)

	var payload struct {
		Name    string `json:"name"`
		Summary string `json:"summary"`
		Content string `json:"content"`
		URL     string `json:"url"`
	}
	if err := m.get(ctx, "/artists/bio", params, &payload); err != nil {
		return nil, err
	}
	if payload.Name == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, artist)
	}

	return &models.ArtistBio{
		Name:    payload.Name,
		Summary: payload.Summary,
		Content: payload.Content,
		URL:     payload.URL,
	}, nil
}
