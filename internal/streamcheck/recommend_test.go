package streamcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsSubstring(t *testing.T, recs []string, substr string) bool {
	t.Helper()
	for _, r := range recs {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}

func TestGenerateRecommendations(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		recs := GenerateRecommendations(nil)
		require.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("unreachable stream", func(t *testing.T) {
		r := newResult("http://dead.example/stream")
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "could not be reached"))
		assert.True(t, containsSubstring(t, recs, "moved to HTTPS"), "http scheme prompts an https hint")
	})

	t.Run("unreachable https stream omits scheme hint", func(t *testing.T) {
		r := newResult("https://dead.example/stream")
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "could not be reached"))
		assert.False(t, containsSubstring(t, recs, "moved to HTTPS"))
	})

	t.Run("playlist url", func(t *testing.T) {
		r := newResult("https://radio.example/listen.m3u")
		r.HTTPAccessible = true
		r.ContentType = "audio/x-mpegurl"
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "playlist file"))
		assert.True(t, containsSubstring(t, recs, "direct stream URL"))
	})

	t.Run("head rejected", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		r.HasAudioContentType = true
		r.ContentType = "audio/mpeg"
		r.AudioDataDetected = true
		r.EvidenceBytes = 512
		r.addWarning("HEAD request returned HTTP 405")
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "rejected HEAD requests"))
	})

	t.Run("missing content type", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		r.AudioDataDetected = true
		r.EvidenceBytes = 512
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "did not return a Content-Type"))
	})

	t.Run("unrecognized content type", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		r.ContentType = "application/octet-stream"
		r.AudioDataDetected = true
		r.EvidenceBytes = 512
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "not a recognized audio type"))
	})

	t.Run("missing streaming headers", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		r.HasAudioContentType = true
		r.ContentType = "audio/mpeg"
		r.AudioDataDetected = true
		r.EvidenceBytes = 512
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "metadata headers"))
	})

	t.Run("clean success with full metadata", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		r.HasAudioContentType = true
		r.ContentType = "audio/mpeg"
		r.HasStreamingHeaders = true
		r.StreamingHeaders = map[string]string{"icy-name": "Test FM"}
		r.AudioDataDetected = true
		r.EvidenceBytes = 512
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "full metadata"))
		assert.False(t, containsSubstring(t, recs, "Consider serving the stream over HTTPS"))
	})

	t.Run("headers only shortcut is called out", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		r.HasAudioContentType = true
		r.ContentType = "audio/mpeg"
		r.HasStreamingHeaders = true
		r.StreamingHeaders = map[string]string{"icy-name": "Test FM"}
		r.AudioDataDetected = true
		r.EvidenceBytes = 0
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "without sampling bytes"))
	})

	t.Run("warnings suppress success message", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		r.HasAudioContentType = true
		r.ContentType = "audio/mpeg"
		r.AudioDataDetected = true
		r.EvidenceBytes = 512
		r.addWarning("audio sampling request failed: timeout")
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.False(t, containsSubstring(t, recs, "validated successfully"))
	})

	t.Run("insecure scheme on a working stream", func(t *testing.T) {
		r := newResult("http://radio.example/stream")
		r.HTTPAccessible = true
		r.HasAudioContentType = true
		r.ContentType = "audio/mpeg"
		r.AudioDataDetected = true
		r.EvidenceBytes = 512
		r.finalize()
		recs := GenerateRecommendations(r)

		assert.True(t, containsSubstring(t, recs, "Consider serving the stream over HTTPS"))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		r := newResult("https://radio.example/stream")
		r.HTTPAccessible = true
		before := len(r.Recommendations)
		GenerateRecommendations(r)
		assert.Equal(t, before, len(r.Recommendations))
	})
}
