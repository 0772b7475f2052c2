package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tunebridge/internal/shared"
)

func okEnvelope(inner string) string {
	if inner == "" {
		return `{"subsonic-response": {"status": "ok"}}`
	}
	return fmt.Sprintf(`{"subsonic-response": {"status": "ok", %s}}`, inner)
}

func newLibraryFixture(t *testing.T, handler http.HandlerFunc) (*LibraryClient, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewLibraryClient(shared.LibraryConfig{
		BaseURL:  server.URL,
		Username: "admin",
		Password: "hunter2",
	}, nil)
	if err != nil {
		t.Fatalf("failed to create library client: %v", err)
	}
	return client, server
}

func TestLibraryClient(t *testing.T) {
	t.Run("NewLibraryClient", func(t *testing.T) {
		t.Run("Requires Base URL", func(t *testing.T) {
			_, err := NewLibraryClient(shared.LibraryConfig{Username: "u", Password: "p"}, nil)
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected invalid config error, got %v", err)
			}
		})

		t.Run("Requires Credentials", func(t *testing.T) {
			_, err := NewLibraryClient(shared.LibraryConfig{BaseURL: "http://music.example"}, nil)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected missing credentials error, got %v", err)
			}
		})

		t.Run("Default Client Name", func(t *testing.T) {
			client, err := NewLibraryClient(shared.LibraryConfig{
				BaseURL:  "http://music.example",
				Username: "u",
				Password: "p",
			}, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if client.clientName != "tunebridge" {
				t.Errorf("expected default client name, got %s", client.clientName)
			}
			if client.Name() != "Library" {
				t.Errorf("expected service name 'Library', got %s", client.Name())
			}
		})

		t.Run("Loads Extra Headers From Curl File", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "headers.sh")
			content := `curl 'http://music.example/' -H 'X-Auth-Proxy: secret-value' -b 'session=abc123'`
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("failed to write curl file: %v", err)
			}

			client, err := NewLibraryClient(shared.LibraryConfig{
				BaseURL:     "http://music.example",
				Username:    "u",
				Password:    "p",
				HeadersPath: path,
			}, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if client.extra["X-Auth-Proxy"] != "secret-value" {
				t.Errorf("expected parsed header, got %v", client.extra)
			}
			if client.extra["Cookie"] != "session=abc123" {
				t.Errorf("expected cookie from -b flag, got %v", client.extra)
			}
		})
	})

	t.Run("Authentication Parameters", func(t *testing.T) {
		var gotQuery url.Values
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Write([]byte(okEnvelope("")))
		})

		if err := client.Ping(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotQuery.Get("u") != "admin" {
			t.Errorf("expected username param, got %s", gotQuery.Get("u"))
		}
		if gotQuery.Get("v") != "1.16.1" {
			t.Errorf("expected protocol version, got %s", gotQuery.Get("v"))
		}
		if gotQuery.Get("c") != "tunebridge" {
			t.Errorf("expected client name, got %s", gotQuery.Get("c"))
		}
		if gotQuery.Get("f") != "json" {
			t.Errorf("expected json format, got %s", gotQuery.Get("f"))
		}

		salt := gotQuery.Get("s")
		if len(salt) != 8 {
			t.Fatalf("expected 8 character salt, got %q", salt)
		}
		sum := md5.Sum([]byte("hunter2" + salt))
		if gotQuery.Get("t") != hex.EncodeToString(sum[:]) {
			t.Error("token does not match md5(password + salt)")
		}
	})

	t.Run("Error Envelope", func(t *testing.T) {
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"subsonic-response": {"status": "failed", "error": {"code": 40, "message": "Wrong username or password"}}}`))
		})

		err := client.Ping(context.Background())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected API request error, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "Wrong username or password") {
			t.Errorf("expected upstream message in error, got %q", got)
		}
	})

	t.Run("HTTP Error", func(t *testing.T) {
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		err := client.Ping(context.Background())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected API request error, got %v", err)
		}
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("Requires Query", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {})
			_, err := client.Search(context.Background(), "", ListOpts{})
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})

		t.Run("Parses All Entity Types", func(t *testing.T) {
			var gotPath string
			var gotQuery url.Values
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				w.Write([]byte(okEnvelope(`"searchResult3": {
					"song": [{"id": "s1", "title": "So What", "artist": "Miles Davis", "duration": 545, "starred": "2024-01-01T00:00:00Z"}],
					"album": [{"id": "al1", "name": "Kind of Blue", "artist": "Miles Davis", "year": 1959, "songCount": 5}],
					"artist": [{"id": "ar1", "name": "Miles Davis", "albumCount": 12}]
				}`)))
			})

			result, err := client.Search(context.Background(), "miles", ListOpts{Limit: 10})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if gotPath != "/rest/search3" {
				t.Errorf("expected search3 path, got %s", gotPath)
			}
			if gotQuery.Get("query") != "miles" {
				t.Errorf("expected query param, got %s", gotQuery.Get("query"))
			}
			if gotQuery.Get("songCount") != "10" {
				t.Errorf("expected songCount 10, got %s", gotQuery.Get("songCount"))
			}

			if len(result.Songs) != 1 || len(result.Albums) != 1 || len(result.Artists) != 1 {
				t.Fatalf("expected one of each type, got %d/%d/%d",
					len(result.Songs), len(result.Albums), len(result.Artists))
			}
			if !result.Songs[0].Starred {
				t.Error("expected starred timestamp to convert to true")
			}
			if result.Albums[0].Year != 1959 {
				t.Errorf("expected album year, got %d", result.Albums[0].Year)
			}
			if result.Artists[0].AlbumCount != 12 {
				t.Errorf("expected album count, got %d", result.Artists[0].AlbumCount)
			}
		})

		t.Run("Empty Result", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(okEnvelope("")))
			})

			result, err := client.Search(context.Background(), "nothing", ListOpts{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.Songs) != 0 || len(result.Albums) != 0 || len(result.Artists) != 0 {
				t.Error("expected empty result sets")
			}
		})
	})

	t.Run("GetSong", func(t *testing.T) {
		t.Run("Requires ID", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {})
			_, err := client.GetSong(context.Background(), "")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})

		t.Run("Missing Song", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(okEnvelope("")))
			})

			_, err := client.GetSong(context.Background(), "s404")
			if !errors.Is(err, shared.ErrSongNotFound) {
				t.Errorf("expected song not found error, got %v", err)
			}
		})

		t.Run("Found", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(okEnvelope(`"song": {"id": "s1", "title": "Blue in Green", "track": 3, "bitRate": 320}`)))
			})

			song, err := client.GetSong(context.Background(), "s1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if song.Title != "Blue in Green" || song.Track != 3 || song.BitRate != 320 {
				t.Errorf("unexpected song: %+v", song)
			}
		})
	})

	t.Run("ListAlbums", func(t *testing.T) {
		var gotQuery url.Values
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Write([]byte(okEnvelope(`"albumList2": {"album": [
				{"id": "al1", "name": "Kind of Blue"},
				{"id": "al2", "name": "Sketches of Spain"}
			]}`)))
		})

		page, err := client.ListAlbums(context.Background(), "", ListOpts{Offset: 10, Limit: 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotQuery.Get("type") != "alphabeticalByName" {
			t.Errorf("expected default sort, got %s", gotQuery.Get("type"))
		}
		if gotQuery.Get("size") != "2" || gotQuery.Get("offset") != "10" {
			t.Errorf("expected pagination params, got size=%s offset=%s",
				gotQuery.Get("size"), gotQuery.Get("offset"))
		}

		if len(page.Items) != 2 {
			t.Fatalf("expected 2 albums, got %d", len(page.Items))
		}
		if page.Offset != 10 || page.Limit != 2 || page.Total != 12 {
			t.Errorf("unexpected page metadata: %+v", page)
		}
	})

	t.Run("GetAlbum", func(t *testing.T) {
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(okEnvelope(`"album": {
				"id": "al1", "name": "Kind of Blue", "songCount": 2,
				"song": [{"id": "s1", "title": "So What"}, {"id": "s2", "title": "Freddie Freeloader"}]
			}`)))
		})

		album, songs, err := client.GetAlbum(context.Background(), "al1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if album.Name != "Kind of Blue" {
			t.Errorf("expected album name, got %s", album.Name)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 songs, got %d", len(songs))
		}
	})

	t.Run("ListArtists Flattens Index", func(t *testing.T) {
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(okEnvelope(`"artists": {"index": [
				{"name": "B", "artist": [{"id": "ar1", "name": "Bill Evans"}]},
				{"name": "M", "artist": [{"id": "ar2", "name": "Miles Davis"}, {"id": "ar3", "name": "McCoy Tyner"}]}
			]}`)))
		})

		artists, err := client.ListArtists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(artists) != 3 {
			t.Errorf("expected 3 artists across index groups, got %d", len(artists))
		}
	})

	t.Run("Playlists", func(t *testing.T) {
		t.Run("GetPlaylist Not Found", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(okEnvelope("")))
			})

			_, err := client.GetPlaylist(context.Background(), "p404")
			if !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Errorf("expected playlist not found error, got %v", err)
			}
		})

		t.Run("GetPlaylist With Tracks", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(okEnvelope(`"playlist": {
					"id": "p1", "name": "Late Night", "songCount": 2,
					"entry": [{"id": "s1", "title": "So What"}, {"id": "s2", "title": "Naima"}]
				}`)))
			})

			export, err := client.GetPlaylist(context.Background(), "p1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if export.Playlist.Name != "Late Night" {
				t.Errorf("expected playlist name, got %s", export.Playlist.Name)
			}
			if len(export.Songs) != 2 {
				t.Errorf("expected 2 songs, got %d", len(export.Songs))
			}
		})

		t.Run("CreatePlaylist Sends Song IDs", func(t *testing.T) {
			var gotQuery url.Values
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Write([]byte(okEnvelope(`"playlist": {"id": "p2", "name": "New Mix", "songCount": 2}`)))
			})

			playlist, err := client.CreatePlaylist(context.Background(), "New Mix", []string{"s1", "s2"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlist.ID != "p2" {
				t.Errorf("expected created playlist, got %+v", playlist)
			}
			if got := gotQuery["songId"]; len(got) != 2 {
				t.Errorf("expected 2 songId params, got %v", got)
			}
		})

		t.Run("CreatePlaylist Refetches On Empty Response", func(t *testing.T) {
			calls := 0
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				if calls == 1 {
					w.Write([]byte(okEnvelope("")))
					return
				}
				w.Write([]byte(okEnvelope(`"playlists": {"playlist": [{"id": "p3", "name": "New Mix"}]}`)))
			})

			playlist, err := client.CreatePlaylist(context.Background(), "New Mix", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlist.ID != "p3" {
				t.Errorf("expected refetched playlist, got %+v", playlist)
			}
		})
	})

	t.Run("Queue", func(t *testing.T) {
		t.Run("GetQueue", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(okEnvelope(`"playQueue": {
					"current": "s2", "position": 15000, "changedBy": "web",
					"entry": [{"id": "s1"}, {"id": "s2"}]
				}`)))
			})

			queue, err := client.GetQueue(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if queue.Current != "s2" || queue.Position != 15000 {
				t.Errorf("unexpected queue state: %+v", queue)
			}
			if len(queue.Songs) != 2 {
				t.Errorf("expected 2 queued songs, got %d", len(queue.Songs))
			}
		})

		t.Run("SaveQueue Requires Songs", func(t *testing.T) {
			client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {})
			err := client.SaveQueue(context.Background(), nil, "", 0)
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})
	})

	t.Run("ListTags", func(t *testing.T) {
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(okEnvelope(`"genres": {"genre": [
				{"value": "Jazz", "songCount": 120},
				{"value": "Rock", "songCount": 300}
			]}`)))
		})

		tags, err := client.ListTags(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tags) != 2 {
			t.Fatalf("expected 2 tags, got %d", len(tags))
		}
		if tags[0].Name != "Jazz" || tags[0].Count != 120 {
			t.Errorf("unexpected tag: %+v", tags[0])
		}
	})

	t.Run("SetStarred", func(t *testing.T) {
		var gotPath string
		client, _ := newLibraryFixture(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(okEnvelope("")))
		})

		if err := client.SetStarred(context.Background(), "s1", true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPath != "/rest/star" {
			t.Errorf("expected star path, got %s", gotPath)
		}

		if err := client.SetStarred(context.Background(), "s1", false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPath != "/rest/unstar" {
			t.Errorf("expected unstar path, got %s", gotPath)
		}
	})
}
