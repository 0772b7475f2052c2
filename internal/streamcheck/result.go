package streamcheck

import (
	"net/http"
	"time"
)

// Status classifies the overall outcome of a validation run.
type Status string

const (
	// StatusValid means the URL is reachable and at least one signal confirms audio content.
	StatusValid Status = "valid"
	// StatusInvalid means the URL is reachable but nothing confirms audio content.
	StatusInvalid Status = "invalid"
	// StatusError means validation failed before any accessibility signal could be established.
	StatusError Status = "error"
)

// Request describes one validation call. It is immutable once constructed.
type Request struct {
	URL             string        `json:"url"`
	Timeout         time.Duration `json:"-"`
	FollowRedirects bool          `json:"followRedirects"`
}

// Outcome is the result of a single network probe. Fields are zero-valued when
// the probe could not establish them; Err carries the failure reason, if any.
type Outcome struct {
	StatusCode int
	FinalURL   string
	Headers    http.Header
	Sample     []byte
	Err        string
}

// OK reports whether the probe produced a usable HTTP response.
func (o Outcome) OK() bool {
	return o.Err == "" && o.StatusCode >= 200 && o.StatusCode < 400
}

// FormatResult is the verdict of magic-byte sniffing over a sampled buffer.
type FormatResult struct {
	Detected bool   `json:"detected"`
	Format   string `json:"format,omitempty"`
	Evidence int    `json:"evidenceBytes"`
}

// Result is the externally visible verdict of one validation run.
//
// Errors and Warnings are append-only: once an entry is recorded it is never
// cleared, so callers can see every signal gathered along the way.
type Result struct {
	URL                 string            `json:"url"`
	FinalURL            string            `json:"finalUrl,omitempty"`
	HTTPAccessible      bool              `json:"httpAccessible"`
	HasAudioContentType bool              `json:"hasAudioContentType"`
	HasStreamingHeaders bool              `json:"hasStreamingHeaders"`
	AudioDataDetected   bool              `json:"audioDataDetected"`
	ContentType         string            `json:"contentType,omitempty"`
	AudioFormat         string            `json:"audioFormat,omitempty"`
	EvidenceBytes       int               `json:"evidenceBytes"`
	StreamingHeaders    map[string]string `json:"streamingHeaders"`
	Errors              []string          `json:"errors"`
	Warnings            []string          `json:"warnings"`
	Status              Status            `json:"status"`
	Success             bool              `json:"success"`
	Recommendations     []string          `json:"recommendations"`
	TestDurationMs      int64             `json:"testDurationMs"`
}

func newResult(url string) *Result {
	return &Result{
		URL:              url,
		StreamingHeaders: map[string]string{},
		Errors:           []string{},
		Warnings:         []string{},
		Recommendations:  []string{},
	}
}

func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *Result) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// finalize derives Success and Status from the coded fields.
//
// Success requires accessibility plus at least one positive content signal.
// Status is "error" only when errors were recorded and no accessibility signal
// exists; otherwise "valid" or "invalid" tracks Success.
func (r *Result) finalize() {
	r.Success = r.HTTPAccessible &&
		(r.HasAudioContentType || r.AudioDataDetected || r.HasStreamingHeaders)

	switch {
	case len(r.Errors) > 0 && !r.HTTPAccessible:
		r.Status = StatusError
	case r.Success:
		r.Status = StatusValid
	default:
		r.Status = StatusInvalid
	}
}
