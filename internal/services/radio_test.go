package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/tunebridge/internal/shared"
)

func TestDirectoryClient(t *testing.T) {
	t.Run("NewDirectoryClient", func(t *testing.T) {
		t.Run("Defaults", func(t *testing.T) {
			client := NewDirectoryClient(shared.RadioConfig{}, nil)

			if client.baseURL != "https://de1.api.radio-browser.info" {
				t.Errorf("expected default base URL, got %s", client.baseURL)
			}
			if client.userAgent != "tunebridge/1.0" {
				t.Errorf("expected default user agent, got %s", client.userAgent)
			}
			if client.limiter != nil {
				t.Error("expected no limiter when rate limit is zero")
			}
			if client.Name() != "RadioBrowser" {
				t.Errorf("expected service name 'RadioBrowser', got %s", client.Name())
			}
		})

		t.Run("Trims Trailing Slash", func(t *testing.T) {
			client := NewDirectoryClient(shared.RadioConfig{BaseURL: "https://example.com/"}, nil)
			if client.baseURL != "https://example.com" {
				t.Errorf("expected trimmed base URL, got %s", client.baseURL)
			}
		})

		t.Run("Rate Limit Enabled", func(t *testing.T) {
			client := NewDirectoryClient(shared.RadioConfig{RateLimit: 2}, nil)
			if client.limiter == nil {
				t.Error("expected limiter when rate limit is positive")
			}
		})
	})

	t.Run("SearchStations", func(t *testing.T) {
		t.Run("Requires A Filter", func(t *testing.T) {
			client := NewDirectoryClient(shared.RadioConfig{}, nil)

			_, err := client.SearchStations(context.Background(), StationSearch{})
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})

		t.Run("Query Parameters", func(t *testing.T) {
			var gotPath string
			var gotQuery map[string][]string
			var gotUserAgent string

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				gotUserAgent = r.Header.Get("User-Agent")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte("[]"))
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL, UserAgent: "test-agent/1.0"}, nil)
			_, err := client.SearchStations(context.Background(), StationSearch{Tag: "Jazz"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if gotPath != "/json/stations/search" {
				t.Errorf("expected search path, got %s", gotPath)
			}
			if gotUserAgent != "test-agent/1.0" {
				t.Errorf("expected configured user agent, got %s", gotUserAgent)
			}

			checks := map[string]string{
				"tag":        "jazz",
				"limit":      "25",
				"offset":     "0",
				"order":      "votes",
				"reverse":    "true",
				"hidebroken": "true",
			}
			for key, want := range checks {
				if got := gotQuery[key]; len(got) != 1 || got[0] != want {
					t.Errorf("expected %s=%s, got %v", key, want, got)
				}
			}
		})

		t.Run("Limit Is Capped", func(t *testing.T) {
			var gotLimit string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotLimit = r.URL.Query().Get("limit")
				w.Write([]byte("[]"))
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL}, nil)
			_, err := client.SearchStations(context.Background(), StationSearch{Name: "test", Limit: 9999})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotLimit != "200" {
				t.Errorf("expected limit capped at 200, got %s", gotLimit)
			}
		})

		t.Run("Converts Stations", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{
					"stationuuid": "abc-123",
					"name": "  Groove FM  ",
					"url": "http://stream.example/listen",
					"url_resolved": "http://cdn.example/live",
					"homepage": "http://groovefm.example",
					"tags": "smooth jazz,lounge,chill",
					"country": "Germany",
					"codec": "MP3",
					"bitrate": 192,
					"votes": 42,
					"clickcount": 7
				}]`))
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL}, nil)
			stations, err := client.SearchStations(context.Background(), StationSearch{Country: "Germany"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(stations) != 1 {
				t.Fatalf("expected 1 station, got %d", len(stations))
			}

			station := stations[0]
			if station.UUID != "abc-123" {
				t.Errorf("expected uuid abc-123, got %s", station.UUID)
			}
			if station.Name != "Groove FM" {
				t.Errorf("expected trimmed name, got %q", station.Name)
			}
			if station.StreamURL != "http://cdn.example/live" {
				t.Errorf("expected resolved URL to win, got %s", station.StreamURL)
			}
			if station.Genre != "Smooth Jazz" {
				t.Errorf("expected title-cased first tag, got %q", station.Genre)
			}
			if station.Codec != "mp3" {
				t.Errorf("expected lowercased codec, got %s", station.Codec)
			}
			if station.Bitrate != 192 || station.Votes != 42 || station.ClickCount != 7 {
				t.Errorf("unexpected numeric fields: %+v", station)
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL}, nil)
			_, err := client.SearchStations(context.Background(), StationSearch{Name: "test"})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected API request error, got %v", err)
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL}, nil)
			_, err := client.SearchStations(context.Background(), StationSearch{Name: "test"})
			if err == nil {
				t.Error("expected parse error for malformed body")
			}
		})
	})

	t.Run("ClickStation", func(t *testing.T) {
		t.Run("Requires UUID", func(t *testing.T) {
			client := NewDirectoryClient(shared.RadioConfig{}, nil)
			err := client.ClickStation(context.Background(), "")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})

		t.Run("Hits Click Endpoint", func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`{"ok": true}`))
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL}, nil)
			if err := client.ClickStation(context.Background(), "abc-123"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotPath != "/json/url/abc-123" {
				t.Errorf("expected click path, got %s", gotPath)
			}
		})
	})

	t.Run("VoteStation", func(t *testing.T) {
		t.Run("Requires UUID", func(t *testing.T) {
			client := NewDirectoryClient(shared.RadioConfig{}, nil)
			err := client.VoteStation(context.Background(), "")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})

		t.Run("Accepted Vote", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok": true, "message": "voted"}`))
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL}, nil)
			if err := client.VoteStation(context.Background(), "abc-123"); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Rejected Vote", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok": false, "message": "already voted"}`))
			}))
			defer server.Close()

			client := NewDirectoryClient(shared.RadioConfig{BaseURL: server.URL}, nil)
			err := client.VoteStation(context.Background(), "abc-123")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected API request error for rejected vote, got %v", err)
			}
		})
	})
}

func TestConvertStation(t *testing.T) {
	t.Run("Falls Back To Unresolved URL", func(t *testing.T) {
		station := convertStation(directoryStation{URL: "http://stream.example/listen"})
		if station.StreamURL != "http://stream.example/listen" {
			t.Errorf("expected fallback URL, got %s", station.StreamURL)
		}
	})

	t.Run("Empty Tags Leave Genre Blank", func(t *testing.T) {
		station := convertStation(directoryStation{Name: "Test"})
		if station.Genre != "" {
			t.Errorf("expected empty genre, got %q", station.Genre)
		}
	})
}
