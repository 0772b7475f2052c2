package streamcheck

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebridge/internal/shared"
)

// Timeout bounds for a single validation call.
const (
	MinTimeout     = 1 * time.Second
	MaxTimeout     = 30 * time.Second
	DefaultTimeout = 8 * time.Second
)

// probeState tracks progress through the probe sequence.
type probeState int

const (
	stateNotStarted probeState = iota
	stateHeadDone
	stateSamplingSkipped
	stateSamplingDone
	stateFinished
)

func (s probeState) String() string {
	switch s {
	case stateNotStarted:
		return "not_started"
	case stateHeadDone:
		return "head_done"
	case stateSamplingSkipped:
		return "sampling_skipped"
	case stateSamplingDone:
		return "sampling_done"
	case stateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// validationContext carries one run's request plus its start time, from which
// the remaining budget is computed before each step.
type validationContext struct {
	req     Request
	started time.Time
}

func (vc *validationContext) remaining() time.Duration {
	return vc.req.Timeout - time.Since(vc.started)
}

// Validator orchestrates probes against the classifier and applies the
// decision policy for one URL at a time. Validators are stateless between
// calls and safe for concurrent use.
type Validator struct {
	prober prober
	logger *log.Logger
}

// NewValidator creates a Validator backed by real network probes.
func NewValidator(logger *log.Logger) *Validator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Validator{
		prober: NewProber(nil, logger),
		logger: logger,
	}
}

// NewValidatorWithProber creates a Validator with a custom probe
// implementation. Used by tests to script probe outcomes.
func NewValidatorWithProber(p prober, logger *log.Logger) *Validator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Validator{prober: p, logger: logger}
}

// checkRequest validates request fields before any network activity.
func checkRequest(req Request) error {
	parsed, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidStreamURL, err)
	}
	if !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: URL must be absolute http or https, got %q", shared.ErrInvalidStreamURL, req.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: URL has no host", shared.ErrInvalidStreamURL)
	}
	if req.Timeout < MinTimeout || req.Timeout > MaxTimeout {
		return fmt.Errorf("%w: timeout %dms outside [%d, %d]ms",
			shared.ErrInvalidTimeout, req.Timeout.Milliseconds(),
			MinTimeout.Milliseconds(), MaxTimeout.Milliseconds())
	}
	return nil
}

// Validate runs the full probe sequence for one URL and always returns a
// structured Result. Malformed input is the only error path that surfaces as
// an error value; ordinary network failure is folded into the result.
func (v *Validator) Validate(ctx context.Context, req Request) (*Result, error) {
	if req.Timeout == 0 {
		req.Timeout = DefaultTimeout
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	vc := &validationContext{req: req, started: time.Now()}
	deadline, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	result := newResult(req.URL)
	state := stateNotStarted

	head := v.prober.ValidateWithHead(deadline, req.URL, req.FollowRedirects, vc.remaining())
	state = stateHeadDone
	if head.Err != "" {
		result.addWarning(head.Err)
	}

	// Skip-sampling shortcut: a successful HEAD whose headers already prove
	// audio content settles the verdict in one round trip. Sampling can also
	// be skipped because the budget ran out, which proves nothing, so the
	// shortcut is tracked separately from the state.
	var sampled Outcome
	shortcut := false
	headStreaming := ExtractStreamingHeaders(head.Headers)
	headIsAudio := head.OK() && IsAudioContentType(head.Headers.Get("Content-Type"))
	if head.OK() && (headIsAudio || len(headStreaming) > 0) {
		state = stateSamplingSkipped
		shortcut = true
		v.logger.Debug("header evidence sufficient, skipping byte sampling",
			"url", req.URL, "content_type", head.Headers.Get("Content-Type"))
	} else {
		remaining := vc.remaining()
		if remaining < sampleFloor {
			state = stateSamplingSkipped
			if deadline.Err() == nil {
				result.addWarning(fmt.Sprintf("insufficient time remaining for audio sampling (%dms)", remaining.Milliseconds()))
			}
		} else {
			sampled = v.prober.SampleAudioData(deadline, req.URL, remaining)
			state = stateSamplingDone
			if sampled.Err != "" {
				if head.OK() {
					result.addWarning(sampled.Err)
				} else {
					result.addError(sampled.Err)
				}
			}
		}
	}

	v.merge(result, head, sampled, shortcut)
	state = stateFinished
	v.logger.Debug("validation finished", "url", req.URL, "state", state.String(),
		"accessible", result.HTTPAccessible)

	if deadline.Err() == context.DeadlineExceeded && !result.HTTPAccessible {
		result.addError(fmt.Sprintf("validation timed out after %dms", req.Timeout.Milliseconds()))
	}
	if !result.HTTPAccessible && len(result.Errors) == 0 {
		result.addError("stream URL is not accessible")
	}

	result.finalize()
	result.Recommendations = GenerateRecommendations(result)
	result.TestDurationMs = time.Since(vc.started).Milliseconds()
	return result, nil
}

// merge folds probe outcomes into the result. HEAD fields take precedence;
// the sampling probe only fills gaps the HEAD probe left open.
func (v *Validator) merge(result *Result, head, sampled Outcome, provenByHeaders bool) {
	effectiveHeaders := head.Headers
	if effectiveHeaders == nil || (len(ExtractStreamingHeaders(effectiveHeaders)) == 0 && effectiveHeaders.Get("Content-Type") == "") {
		if sampled.Headers != nil {
			effectiveHeaders = sampled.Headers
		}
	}

	result.HTTPAccessible = head.OK() || sampled.OK()

	if head.FinalURL != "" && head.FinalURL != result.URL {
		result.FinalURL = head.FinalURL
	} else if sampled.FinalURL != "" && sampled.FinalURL != result.URL {
		result.FinalURL = sampled.FinalURL
	}

	if effectiveHeaders != nil {
		result.ContentType = effectiveHeaders.Get("Content-Type")
		result.HasAudioContentType = IsAudioContentType(result.ContentType)
		result.StreamingHeaders = ExtractStreamingHeaders(effectiveHeaders)
		result.HasStreamingHeaders = len(result.StreamingHeaders) > 0

		if result.ContentType != "" && !result.HasAudioContentType && !IsPlaylistContentType(result.ContentType) && result.HTTPAccessible {
			if len(sampled.Sample) > 0 || result.HasStreamingHeaders {
				result.addWarning(fmt.Sprintf("content type %q does not indicate audio", result.ContentType))
			}
		}
	}

	if len(sampled.Sample) > 0 {
		format := DetectAudioFormat(sampled.Sample)
		result.AudioDataDetected = format.Detected
		result.AudioFormat = format.Format
		result.EvidenceBytes = format.Evidence
		return
	}

	// Shortcut policy: header evidence alone counts as detected audio. The
	// verdict trades certainty for latency; recommendations note it.
	if provenByHeaders {
		result.AudioDataDetected = true
		result.AudioFormat = formatFromContentType(result.ContentType)
	}
}

// formatFromContentType infers a codec name from an audio MIME type for
// results settled without byte evidence.
func formatFromContentType(contentType string) string {
	switch normalizeContentType(contentType) {
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	case "audio/aac", "audio/aacp", "audio/mp4":
		return "aac"
	case "audio/ogg", "audio/vorbis", "audio/opus", "application/ogg":
		return "ogg"
	case "audio/flac", "audio/x-flac":
		return "flac"
	case "audio/wav", "audio/wave", "audio/x-wav":
		return "wav"
	default:
		return ""
	}
}
