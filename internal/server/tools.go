package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
	"github.com/desertthunder/tunebridge/internal/tasks"
)

// ToolHandler exposes the integration operations as JSON POST endpoints.
// Implements the Handler interface for registration with a Router.
//
// Any service may be nil; endpoints backed by a missing service respond 503.
type ToolHandler struct {
	library   services.LibraryService
	directory services.DirectoryService
	metadata  services.MetadataService
	lyrics    services.LyricsService
	validator tasks.StreamValidator
	engine    tasks.Engine
	logger    *log.Logger
}

// NewToolHandler creates a ToolHandler over the given services.
func NewToolHandler(
	library services.LibraryService,
	directory services.DirectoryService,
	metadata services.MetadataService,
	lyrics services.LyricsService,
	validator tasks.StreamValidator,
	engine tasks.Engine,
	logger *log.Logger,
) *ToolHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ToolHandler{
		library:   library,
		directory: directory,
		metadata:  metadata,
		lyrics:    lyrics,
		validator: validator,
		engine:    engine,
		logger:    logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *ToolHandler) Routes() []string {
	return []string{
		"/healthz",
		"/tools/validate_stream",
		"/tools/search_stations",
		"/tools/vote_station",
		"/tools/discover_stations",
		"/tools/search_library",
		"/tools/get_lyrics",
		"/tools/similar_artists",
		"/tools/trending",
	}
}

// ServeHTTP dispatches tool calls by path.
func (h *ToolHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/healthz" {
		if r.Method != http.MethodGet {
			h.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	switch r.URL.Path {
	case "/tools/validate_stream":
		h.validateStream(w, r)
	case "/tools/search_stations":
		h.searchStations(w, r)
	case "/tools/vote_station":
		h.voteStation(w, r)
	case "/tools/discover_stations":
		h.discoverStations(w, r)
	case "/tools/search_library":
		h.searchLibrary(w, r)
	case "/tools/get_lyrics":
		h.getLyrics(w, r)
	case "/tools/similar_artists":
		h.similarArtists(w, r)
	case "/tools/trending":
		h.trending(w, r)
	default:
		h.writeError(w, http.StatusNotFound, errors.New("unknown tool"))
	}
}

type validateStreamRequest struct {
	URL             string `json:"url"`
	TimeoutMs       int64  `json:"timeoutMs,omitempty"`
	FollowRedirects *bool  `json:"followRedirects,omitempty"`
}

func (h *ToolHandler) validateStream(w http.ResponseWriter, r *http.Request) {
	if h.validator == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body validateStreamRequest
	if !h.decode(w, r, &body) {
		return
	}

	req := streamcheck.Request{
		URL:             body.URL,
		Timeout:         time.Duration(body.TimeoutMs) * time.Millisecond,
		FollowRedirects: true,
	}
	if body.FollowRedirects != nil {
		req.FollowRedirects = *body.FollowRedirects
	}

	result, err := h.validator.Validate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type searchStationsRequest struct {
	Name    string `json:"name,omitempty"`
	Tag     string `json:"tag,omitempty"`
	Country string `json:"country,omitempty"`
	Offset  int    `json:"offset,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Order   string `json:"order,omitempty"`
}

func (s searchStationsRequest) search() services.StationSearch {
	return services.StationSearch{
		Name:    s.Name,
		Tag:     s.Tag,
		Country: s.Country,
		Offset:  s.Offset,
		Limit:   s.Limit,
		Order:   s.Order,
	}
}

func (h *ToolHandler) searchStations(w http.ResponseWriter, r *http.Request) {
	if h.directory == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body searchStationsRequest
	if !h.decode(w, r, &body) {
		return
	}

	stations, err := h.directory.SearchStations(r.Context(), body.search())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":    len(stations),
		"stations": stations,
	})
}

func (h *ToolHandler) voteStation(w http.ResponseWriter, r *http.Request) {
	if h.directory == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body struct {
		UUID string `json:"uuid"`
	}
	if !h.decode(w, r, &body) {
		return
	}
	if body.UUID == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("uuid is required"))
		return
	}

	if err := h.directory.VoteStation(r.Context(), body.UUID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type discoverStationsRequest struct {
	searchStationsRequest
	TimeoutMs       int64 `json:"timeoutMs,omitempty"`
	FollowRedirects bool  `json:"followRedirects,omitempty"`
	Workers         int   `json:"workers,omitempty"`
	Persist         bool  `json:"persist,omitempty"`
}

func (h *ToolHandler) discoverStations(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body discoverStationsRequest
	if !h.decode(w, r, &body) {
		return
	}
	if body.Name == "" && body.Tag == "" && body.Country == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("one of name, tag, or country is required"))
		return
	}

	result, err := h.engine.Discover(r.Context(), nil, tasks.DiscoverOpts{
		Search:          body.search(),
		TimeoutMs:       body.TimeoutMs,
		FollowRedirects: body.FollowRedirects,
		NumWorkers:      body.Workers,
		Persist:         body.Persist,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *ToolHandler) searchLibrary(w http.ResponseWriter, r *http.Request) {
	if h.library == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body struct {
		Query  string `json:"query"`
		Offset int    `json:"offset,omitempty"`
		Limit  int    `json:"limit,omitempty"`
	}
	if !h.decode(w, r, &body) {
		return
	}
	if body.Query == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("query is required"))
		return
	}

	result, err := h.library.Search(r.Context(), body.Query, services.ListOpts{Offset: body.Offset, Limit: body.Limit})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *ToolHandler) getLyrics(w http.ResponseWriter, r *http.Request) {
	if h.lyrics == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body struct {
		Artist string `json:"artist"`
		Title  string `json:"title"`
	}
	if !h.decode(w, r, &body) {
		return
	}
	if body.Artist == "" || body.Title == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("artist and title are required"))
		return
	}

	lyrics, err := h.lyrics.GetLyrics(r.Context(), body.Artist, body.Title)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lyrics)
}

func (h *ToolHandler) similarArtists(w http.ResponseWriter, r *http.Request) {
	if h.metadata == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body struct {
		Artist string `json:"artist"`
		Limit  int    `json:"limit,omitempty"`
	}
	if !h.decode(w, r, &body) {
		return
	}
	if body.Artist == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("artist is required"))
		return
	}

	similar, err := h.metadata.SimilarArtists(r.Context(), body.Artist, body.Limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"artists": similar})
}

func (h *ToolHandler) trending(w http.ResponseWriter, r *http.Request) {
	if h.metadata == nil {
		h.writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var body struct {
		Kind  string `json:"kind,omitempty"` // artists or tracks
		Limit int    `json:"limit,omitempty"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	var (
		entries []models.ChartEntry
		err     error
	)
	switch body.Kind {
	case "", "tracks":
		entries, err = h.metadata.TopTracks(r.Context(), body.Limit)
	case "artists":
		entries, err = h.metadata.TopArtists(r.Context(), body.Limit)
	default:
		h.writeError(w, http.StatusBadRequest, errors.New("kind must be artists or tracks"))
		return
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"kind": body.Kind, "entries": entries})
}

// decode reads a JSON request body; writes a 400 and returns false on failure.
func (h *ToolHandler) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return false
	}
	return true
}

func (h *ToolHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *ToolHandler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeServiceError maps sentinel errors onto HTTP status codes.
func (h *ToolHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidStreamURL),
		errors.Is(err, shared.ErrInvalidTimeout),
		errors.Is(err, shared.ErrInvalidPagination),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidArgument):
		h.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, shared.ErrSongNotFound),
		errors.Is(err, shared.ErrAlbumNotFound),
		errors.Is(err, shared.ErrArtistNotFound),
		errors.Is(err, shared.ErrPlaylistNotFound),
		errors.Is(err, shared.ErrStationNotFound),
		errors.Is(err, shared.ErrLyricsNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, shared.ErrServiceUnavailable):
		h.writeError(w, http.StatusServiceUnavailable, err)
	default:
		h.writeError(w, http.StatusBadGateway, err)
	}
}
