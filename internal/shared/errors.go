package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Upstream service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Library and directory errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrAlbumNotFound    = fmt.Errorf("album not found")
	ErrArtistNotFound   = fmt.Errorf("artist not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrStationNotFound  = fmt.Errorf("station not found")
	ErrLyricsNotFound   = fmt.Errorf("lyrics not found")

	// Input validation errors
	ErrInvalidInput      = fmt.Errorf("invalid input")
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrInvalidFlag       = fmt.Errorf("invalid flag value")
	ErrInvalidStreamURL  = fmt.Errorf("invalid stream URL")
	ErrInvalidTimeout    = fmt.Errorf("invalid timeout")
	ErrInvalidPagination = fmt.Errorf("invalid pagination parameters")
)
