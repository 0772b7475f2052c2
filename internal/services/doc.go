// Package services implements HTTP clients for the upstream systems tunebridge
// integrates: the Subsonic-compatible music library, the radio-browser style
// station directory, the OAuth2 metadata provider, and the lrclib-style lyrics
// provider.
//
// Each client implements the matching interface from services.go, accepts a
// context on every call, and reshapes upstream JSON payloads into the smaller
// structs defined in internal/models. Upstream failures are wrapped with the
// sentinel errors from internal/shared so callers can branch with errors.Is.
//
// All clients take an optional *http.Client; passing nil uses a default with a
// conservative timeout. Tests inject httptest servers through the base URL.
package services
