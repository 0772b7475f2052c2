package streamcheck

import (
	"fmt"
	"strings"
)

// GenerateRecommendations maps a result's coded flags onto a prioritized list
// of actionable remarks. Pure: no I/O, and the input is never mutated.
func GenerateRecommendations(result *Result) []string {
	recs := []string{}
	if result == nil {
		return recs
	}

	if !result.HTTPAccessible {
		recs = append(recs, "The stream URL could not be reached. Verify the URL is correct and the server is online.")
		if strings.HasPrefix(result.URL, "http://") {
			recs = append(recs, "If the server has moved to HTTPS, update the URL scheme.")
		}
		return recs
	}

	if IsPlaylistContentType(result.ContentType) {
		recs = append(recs, fmt.Sprintf("The URL serves a playlist file (%s), not a stream. Use the direct stream URL found inside the playlist.", normalizeContentType(result.ContentType)))
	}

	headRejected := false
	for _, warning := range result.Warnings {
		if strings.Contains(warning, "HEAD") {
			headRejected = true
			break
		}
	}
	if headRejected {
		recs = append(recs, "The server rejected HEAD requests but may still serve audio over GET. Some clients probe with HEAD first and will report this stream as offline.")
	}

	if !result.HasAudioContentType {
		if result.ContentType == "" {
			recs = append(recs, "The server did not return a Content-Type header. Configure the stream server to send an audio MIME type such as audio/mpeg.")
		} else if !IsPlaylistContentType(result.ContentType) {
			recs = append(recs, fmt.Sprintf("Content-Type %q is not a recognized audio type. Players that trust MIME types may refuse this stream.", result.ContentType))
		}
	}

	if !result.HasStreamingHeaders {
		recs = append(recs, "No Icecast/Shoutcast metadata headers were found. Station name and now-playing info will be unavailable to listeners.")
	}

	if !result.AudioDataDetected && result.Success {
		recs = append(recs, "Audio format could not be confirmed from sampled bytes. The stream may still play, but codec detection failed.")
	}

	if result.Success && len(result.Warnings) == 0 {
		if result.AudioDataDetected && len(result.StreamingHeaders) > 0 {
			recs = append(recs, "Stream validated successfully with full metadata. Ready to use.")
		} else {
			recs = append(recs, "Stream validated successfully.")
		}
		if detectedByHeadersOnly(result) {
			recs = append(recs, "Audio was confirmed from response headers without sampling bytes.")
		}
	}

	if strings.HasPrefix(result.URL, "http://") {
		recs = append(recs, "Consider serving the stream over HTTPS. Browsers block insecure audio on secure pages.")
	}

	return recs
}

// detectedByHeadersOnly reports whether the audio verdict came from the
// skip-sampling shortcut rather than byte evidence.
func detectedByHeadersOnly(result *Result) bool {
	return result.AudioDataDetected && result.EvidenceBytes == 0
}
