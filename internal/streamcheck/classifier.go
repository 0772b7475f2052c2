package streamcheck

import (
	"bytes"
	"net/http"
	"strings"
)

// audioContentTypes is the allow-list of MIME types that denote raw audio.
// Playlist types (m3u, pls, HLS manifests) are deliberately excluded: a
// playlist URL is not itself a stream.
var audioContentTypes = []string{
	"audio/mpeg",
	"audio/mp3",
	"audio/aac",
	"audio/aacp",
	"audio/ogg",
	"audio/vorbis",
	"audio/opus",
	"audio/flac",
	"audio/x-flac",
	"audio/wav",
	"audio/wave",
	"audio/x-wav",
	"audio/mp4",
	"audio/webm",
	"application/ogg",
}

// playlistContentTypes identify playlist documents commonly mistaken for
// stream URLs. Recognized separately so recommendations can call them out.
var playlistContentTypes = []string{
	"audio/x-mpegurl",
	"audio/mpegurl",
	"application/vnd.apple.mpegurl",
	"application/x-mpegurl",
	"audio/x-scpls",
	"application/pls+xml",
}

// streamingHeaderNames is the fixed set of broadcast-metadata headers emitted
// by Icecast/Shoutcast-family servers.
var streamingHeaderNames = []string{
	"icy-name",
	"icy-genre",
	"icy-description",
	"icy-url",
	"icy-br",
	"icy-sr",
	"icy-channels",
	"icy-metaint",
	"icy-pub",
	"icy-notice1",
	"icy-notice2",
	"icy-version",
	"icy-audio-info",
	"ice-audio-info",
	"x-audiocast-name",
	"x-audiocast-genre",
	"x-audiocast-bitrate",
}

// normalizeContentType lowercases and strips parameters (";charset=...") from
// a MIME type.
func normalizeContentType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

// IsAudioContentType reports whether the MIME type denotes raw audio content.
// Matching is case-insensitive and ignores parameters such as ";charset=utf-8".
func IsAudioContentType(contentType string) bool {
	normalized := normalizeContentType(contentType)
	if normalized == "" {
		return false
	}
	for _, audioType := range audioContentTypes {
		if normalized == audioType {
			return true
		}
	}
	return false
}

// IsPlaylistContentType reports whether the MIME type denotes a playlist
// document rather than a stream.
func IsPlaylistContentType(contentType string) bool {
	normalized := normalizeContentType(contentType)
	for _, playlistType := range playlistContentTypes {
		if normalized == playlistType {
			return true
		}
	}
	return false
}

// ExtractStreamingHeaders returns the broadcast-metadata headers present in
// the response as a lowercase name → value map. An empty map means the server
// emitted none, which is itself evidence the endpoint is not a radio stream.
func ExtractStreamingHeaders(headers http.Header) map[string]string {
	found := map[string]string{}
	if headers == nil {
		return found
	}
	for _, name := range streamingHeaderNames {
		if value := headers.Get(name); value != "" {
			found[name] = strings.TrimSpace(value)
		}
	}
	return found
}

// signature maps a magic-byte prefix to a format name.
type signature struct {
	prefix []byte
	format string
}

var magicSignatures = []signature{
	{[]byte("OggS"), "ogg"},
	{[]byte("fLaC"), "flac"},
	{[]byte("ID3"), "mp3"},
	{[]byte{0x1A, 0x45, 0xDF, 0xA3}, "webm"},
}

// DetectAudioFormat sniffs the leading bytes of a sampled buffer against known
// audio container and frame signatures. The function is deterministic and
// tolerates buffers shorter than any signature.
func DetectAudioFormat(buf []byte) FormatResult {
	result := FormatResult{Evidence: len(buf)}
	if len(buf) < 2 {
		return result
	}

	for _, sig := range magicSignatures {
		if bytes.HasPrefix(buf, sig.prefix) {
			result.Detected = true
			result.Format = sig.format
			return result
		}
	}

	if buf[0] == 'R' && len(buf) >= 12 &&
		bytes.HasPrefix(buf, []byte("RIFF")) && bytes.Equal(buf[8:12], []byte("WAVE")) {
		result.Detected = true
		result.Format = "wav"
		return result
	}

	// Frame sync: eleven set bits open both MPEG audio and ADTS AAC frames.
	// ADTS sets layer bits to 00; MPEG audio layers I-III set them non-zero.
	if buf[0] == 0xFF && buf[1]&0xE0 == 0xE0 {
		if buf[1]&0xF6 == 0xF0 {
			result.Detected = true
			result.Format = "aac"
			return result
		}
		if buf[1]&0x06 != 0 {
			result.Detected = true
			result.Format = "mp3"
			return result
		}
	}

	return result
}
