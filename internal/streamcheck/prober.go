package streamcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// sampleCap bounds how many bytes the sampling probe reads before it
	// aborts the connection. Enough for every known magic signature.
	sampleCap = 4096

	// sampleFloor is the minimum remaining budget required to attempt the
	// sampling probe. Below this a fetch is doomed and is not attempted.
	sampleFloor = time.Second

	defaultUserAgent = "tunebridge/1.0 (+https://github.com/desertthunder/tunebridge)"
)

// prober gathers accessibility and content evidence for a URL. Abstracted so
// the orchestrator can be exercised against scripted probe outcomes.
type prober interface {
	ValidateWithHead(ctx context.Context, url string, followRedirects bool, remaining time.Duration) Outcome
	SampleAudioData(ctx context.Context, url string, remaining time.Duration) Outcome
}

// Prober performs the two real network probes: a header-only existence check
// and a bounded partial-content sample.
type Prober struct {
	transport http.RoundTripper
	logger    *log.Logger
}

// NewProber creates a Prober. A nil transport uses http.DefaultTransport.
func NewProber(transport http.RoundTripper, logger *log.Logger) *Prober {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Prober{transport: transport, logger: logger}
}

// client builds a per-probe HTTP client bounded by the remaining budget.
// Redirect policy is per-request, so clients are not shared across probes.
func (p *Prober) client(followRedirects bool, remaining time.Duration) *http.Client {
	client := &http.Client{
		Transport: p.transport,
		Timeout:   remaining,
	}
	if !followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

// ValidateWithHead issues a header-only request bounded by the remaining
// budget. A failed HEAD is informative rather than fatal, since many stream
// servers reject HEAD but serve GET; failures come back in the outcome's Err
// field.
func (p *Prober) ValidateWithHead(ctx context.Context, url string, followRedirects bool, remaining time.Duration) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Outcome{Err: fmt.Sprintf("failed to create HEAD request: %v", err)}
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "audio/*,*/*")
	req.Header.Set("Icy-MetaData", "1")

	resp, err := p.client(followRedirects, remaining).Do(req)
	if err != nil {
		p.logger.Debug("HEAD probe failed", "url", url, "error", err)
		return Outcome{Err: fmt.Sprintf("HEAD request failed: %v", err)}
	}
	defer resp.Body.Close()

	outcome := Outcome{
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		Headers:    resp.Header,
	}
	if resp.StatusCode >= 400 {
		outcome.Err = fmt.Sprintf("HEAD request returned HTTP %d", resp.StatusCode)
	}
	return outcome
}

// SampleAudioData issues a ranged GET and reads at most sampleCap bytes, then
// aborts the connection. It never waits for stream end. When the remaining
// budget is below the floor the probe is not attempted at all.
func (p *Prober) SampleAudioData(ctx context.Context, url string, remaining time.Duration) Outcome {
	if remaining < sampleFloor {
		return Outcome{Err: fmt.Sprintf("insufficient time remaining for audio sampling (%dms)", remaining.Milliseconds())}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Err: fmt.Sprintf("failed to create sampling request: %v", err)}
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "audio/*,*/*")
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", sampleCap-1))

	resp, err := p.client(true, remaining).Do(req)
	if err != nil {
		p.logger.Debug("sampling probe failed", "url", url, "error", err)
		return Outcome{Err: fmt.Sprintf("audio sampling request failed: %v", err)}
	}
	defer resp.Body.Close()

	outcome := Outcome{
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		Headers:    resp.Header,
	}

	// 200 and 206 both carry usable bytes; live streams routinely ignore Range.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		outcome.Err = fmt.Sprintf("audio sampling returned HTTP %d", resp.StatusCode)
		return outcome
	}

	sample, readErr := readSample(resp.Body, sampleCap)
	outcome.Sample = sample
	if len(sample) == 0 {
		if readErr != nil {
			outcome.Err = fmt.Sprintf("no audio data received: %v", readErr)
		} else {
			outcome.Err = "no audio data received"
		}
	}
	return outcome
}

// readSample reads up to cap bytes, returning whatever arrived before an
// error. Live streams never EOF, so a short read with an error is still data.
func readSample(body io.Reader, limit int) ([]byte, error) {
	buf := make([]byte, limit)
	total := 0
	for total < limit {
		n, err := body.Read(buf[total:])
		total += n
		if err != nil {
			return buf[:total], err
		}
	}
	return buf[:total], nil
}
