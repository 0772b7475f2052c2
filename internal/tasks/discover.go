package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
	"golang.org/x/time/rate"
)

// DiscoverOpts contains configuration for a discovery run.
type DiscoverOpts struct {
	Search          services.StationSearch // Directory search filters
	TimeoutMs       int64                  // Per-station validation budget (default: 5000)
	FollowRedirects bool                   // Follow redirects during validation
	NumWorkers      int                    // Concurrent validators (default: 5)
	RateLimit       float64                // Validations started per second (default: 5)
	Persist         bool                   // Cache validated stations locally
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Discover searches the directory and validates every candidate stream
// concurrently. Each station gets an independent deadline, so one hung stream
// never stalls the batch. Partial failure is the normal case: unreachable
// stations land in the result with their error verdicts intact.
func (e *StationEngine) Discover(ctx context.Context, progress chan<- ProgressUpdate, opts DiscoverOpts) (*DiscoverResult, error) {
	if e.directory == nil {
		return nil, fmt.Errorf("%w: directory service not initialized", shared.ErrServiceUnavailable)
	}
	if e.validator == nil {
		return nil, fmt.Errorf("%w: validator not initialized", shared.ErrServiceUnavailable)
	}

	if opts.TimeoutMs <= 0 {
		opts.TimeoutMs = 5000
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	label := opts.Search.Name
	if label == "" {
		label = opts.Search.Tag
	}
	if label == "" {
		label = opts.Search.Country
	}
	e.sendProgress(progress, searchingUpdate(label))

	stations, err := e.directory.SearchStations(ctx, opts.Search)
	if err != nil {
		return nil, fmt.Errorf("directory search failed: %w", err)
	}

	result := &DiscoverResult{
		Query:    opts.Search,
		Total:    len(stations),
		Stations: make([]StationValidation, len(stations)),
	}
	if len(stations) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan int, len(stations))
	done := make(chan int, len(stations))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				station := stations[idx]
				verdict, err := e.validator.Validate(ctx, streamcheck.Request{
					URL:             station.StreamURL,
					Timeout:         millis(opts.TimeoutMs),
					FollowRedirects: opts.FollowRedirects,
				})
				result.Stations[idx] = StationValidation{
					Station: station,
					Result:  verdict,
					Error:   err,
				}
				done <- idx
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range stations {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			e.sendProgress(progress, validatingUpdate(i+1, len(stations), stations[i].Name))
			jobs <- i
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for index := range done {
		completed++
		validation := result.Stations[index]
		ok := validation.Result != nil && validation.Result.Success
		e.sendProgress(progress, validatedUpdate(completed, len(stations), validation.Station.Name, ok))
	}

	for _, validation := range result.Stations {
		switch {
		case validation.Result == nil:
			result.ErrorCount++
		case validation.Result.Status == streamcheck.StatusValid:
			result.ValidCount++
		case validation.Result.Status == streamcheck.StatusInvalid:
			result.InvalidCount++
		default:
			result.ErrorCount++
		}
	}

	if opts.Persist && e.cache != nil {
		for i, validation := range result.Stations {
			if validation.Result == nil {
				continue
			}
			e.sendProgress(progress, persistingUpdate(i+1, len(result.Stations), validation.Station.Name))
			if err := e.cache.CacheStation(validation.Station, validation.Result); err != nil {
				e.logger.Warn("failed to cache station", "station", validation.Station.Name, "error", err)
			}
		}
	}

	return result, nil
}
