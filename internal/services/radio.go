// Radio-browser style station directory client.
//
// API reference: https://api.radio-browser.info/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

const (
	defaultStationLimit = 25
	maxStationLimit     = 200
)

var genreCaser = cases.Title(language.English)

// DirectoryClient implements [DirectoryService] against a radio-browser
// compatible API. Directory etiquette asks for an identifying User-Agent and a
// modest request rate; the client enforces both.
type DirectoryClient struct {
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewDirectoryClient creates a directory client. Zero rateLimit disables
// client-side throttling.
func NewDirectoryClient(cfg shared.RadioConfig, client *http.Client) *DirectoryClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://de1.api.radio-browser.info"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tunebridge/1.0"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &DirectoryClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
		httpClient: client,
	}
}

// Name returns the service name.
func (d *DirectoryClient) Name() string { return "RadioBrowser" }

// directoryStation mirrors the directory's station JSON shape.
type directoryStation struct {
	UUID        string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	Tags        string `json:"tags"`
	Country     string `json:"country"`
	Language    string `json:"language"`
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`
	Votes       int    `json:"votes"`
	ClickCount  int    `json:"clickcount"`
}

func (d *DirectoryClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
	}

	endpoint := d.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: directory returned HTTP %d", shared.ErrAPIRequest, resp.StatusCode)
	}
	return body, nil
}

// SearchStations queries the directory for stations matching the filters.
func (d *DirectoryClient) SearchStations(ctx context.Context, query StationSearch) ([]models.RadioStation, error) {
	if query.Name == "" && query.Tag == "" && query.Country == "" {
		return nil, fmt.Errorf("%w: at least one of name, tag, or country is required", shared.ErrMissingArgument)
	}
	if query.Limit <= 0 {
		query.Limit = defaultStationLimit
	}
	if query.Limit > maxStationLimit {
		query.Limit = maxStationLimit
	}
	if query.Order == "" {
		query.Order = "votes"
	}

	params := url.Values{}
	if query.Name != "" {
		params.Set("name", query.Name)
	}
	if query.Tag != "" {
		params.Set("tag", strings.ToLower(query.Tag))
	}
	if query.Country != "" {
		params.Set("country", query.Country)
	}
	params.Set("limit", strconv.Itoa(query.Limit))
	params.Set("offset", strconv.Itoa(max(query.Offset, 0)))
	params.Set("order", query.Order)
	params.Set("reverse", "true")
	params.Set("hidebroken", "true")

	body, err := d.get(ctx, "/json/stations/search", params)
	if err != nil {
		return nil, err
	}

	var entries []directoryStation
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse station list: %w", err)
	}

	stations := make([]models.RadioStation, 0, len(entries))
	for _, entry := range entries {
		stations = append(stations, convertStation(entry))
	}
	return stations, nil
}

// ClickStation records a listen event, which directories use for ranking.
func (d *DirectoryClient) ClickStation(ctx context.Context, uuid string) error {
	if uuid == "" {
		return fmt.Errorf("%w: station uuid is required", shared.ErrMissingArgument)
	}
	_, err := d.get(ctx, "/json/url/"+url.PathEscape(uuid), nil)
	return err
}

// VoteStation casts a vote for a station.
func (d *DirectoryClient) VoteStation(ctx context.Context, uuid string) error {
	if uuid == "" {
		return fmt.Errorf("%w: station uuid is required", shared.ErrMissingArgument)
	}

	body, err := d.get(ctx, "/json/vote/"+url.PathEscape(uuid), nil)
	if err != nil {
		return err
	}

	// The vote endpoint returns 200 with {"ok": false} on rejection
	// (e.g. repeat votes from the same address), so the body is checked too.
	var result struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err == nil && !result.OK {
		return fmt.Errorf("%w: vote rejected: %s", shared.ErrAPIRequest, result.Message)
	}
	return nil
}

// convertStation reshapes a directory entry, preferring the resolved URL and
// title-casing the first genre tag for display.
func convertStation(entry directoryStation) models.RadioStation {
	streamURL := entry.URLResolved
	if streamURL == "" {
		streamURL = entry.URL
	}

	genre := ""
	if entry.Tags != "" {
		genre = genreCaser.String(strings.TrimSpace(strings.Split(entry.Tags, ",")[0]))
	}

	return models.RadioStation{
		UUID:       entry.UUID,
		Name:       strings.TrimSpace(entry.Name),
		StreamURL:  streamURL,
		Homepage:   entry.Homepage,
		Favicon:    entry.Favicon,
		Genre:      genre,
		Country:    entry.Country,
		Language:   entry.Language,
		Codec:      strings.ToLower(entry.Codec),
		Bitrate:    entry.Bitrate,
		Votes:      entry.Votes,
		ClickCount: entry.ClickCount,
	}
}
