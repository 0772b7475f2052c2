// Lyrics provider client with LRC timestamp parsing.
//
// Modeled on the lrclib.net API: https://lrclib.net/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/shared"
)

// LyricsClient implements [LyricsService].
type LyricsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLyricsClient creates a lyrics client.
func NewLyricsClient(cfg shared.LyricsConfig, client *http.Client) *LyricsClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://lrclib.net"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &LyricsClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: client,
	}
}

// Name returns the service name.
func (c *LyricsClient) Name() string { return "Lyrics" }

type lyricsPayload struct {
	TrackName    string `json:"trackName"`
	ArtistName   string `json:"artistName"`
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
	Instrumental bool   `json:"instrumental"`
}

// GetLyrics looks up lyrics for a track, preferring synced lines.
func (c *LyricsClient) GetLyrics(ctx context.Context, artist, title string) (*models.Lyrics, error) {
	if artist == "" || title == "" {
		return nil, fmt.Errorf("%w: artist and title are required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)

	endpoint := c.baseURL + "/api/get?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s - %s", shared.ErrLyricsNotFound, artist, title)
	default:
		return nil, fmt.Errorf("%w: lyrics provider returned HTTP %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var payload lyricsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse lyrics response: %w", err)
	}

	lyrics := &models.Lyrics{
		Artist: firstNonEmpty(payload.ArtistName, artist),
		Title:  firstNonEmpty(payload.TrackName, title),
		Lines:  []models.LyricLine{},
	}

	if payload.SyncedLyrics != "" {
		lyrics.Synced = true
		lyrics.Lines = ParseLRC(payload.SyncedLyrics)
		return lyrics, nil
	}
	if payload.PlainLyrics != "" {
		for _, line := range strings.Split(payload.PlainLyrics, "\n") {
			lyrics.Lines = append(lyrics.Lines, models.LyricLine{TimestampMs: -1, Text: line})
		}
		return lyrics, nil
	}
	if payload.Instrumental {
		return lyrics, nil
	}
	return nil, fmt.Errorf("%w: %s - %s", shared.ErrLyricsNotFound, artist, title)
}

// lrcTimestamp matches [mm:ss.xx] and [mm:ss.xxx] LRC tags, possibly several
// per line.
var lrcTimestamp = regexp.MustCompile(`\[(\d+):(\d{2})(?:\.(\d{2,3}))?\]`)

// ParseLRC parses LRC-format synced lyrics into timed lines sorted by the
// order they appear. Lines carrying multiple timestamps are duplicated per
// timestamp. Metadata tags like [ar:...] produce no lines.
func ParseLRC(lrc string) []models.LyricLine {
	lines := []models.LyricLine{}

	for _, raw := range strings.Split(lrc, "\n") {
		raw = strings.TrimRight(raw, "\r")
		matches := lrcTimestamp.FindAllStringSubmatchIndex(raw, -1)
		if len(matches) == 0 {
			continue
		}

		text := strings.TrimSpace(raw[matches[len(matches)-1][1]:])
		for _, match := range matches {
			minutes, _ := strconv.Atoi(raw[match[2]:match[3]])
			seconds, _ := strconv.Atoi(raw[match[4]:match[5]])

			var millis int
			if match[6] != -1 {
				frac := raw[match[6]:match[7]]
				value, _ := strconv.Atoi(frac)
				if len(frac) == 2 {
					value *= 10
				}
				millis = value
			}

			timestamp := int64(minutes)*60_000 + int64(seconds)*1_000 + int64(millis)
			lines = append(lines, models.LyricLine{TimestampMs: timestamp, Text: text})
		}
	}
	return lines
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
