package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
)

// StationValidation pairs a directory station with its validation verdict.
type StationValidation struct {
	Station models.RadioStation `json:"station"`
	Result  *streamcheck.Result `json:"result,omitempty"`
	Error   error               `json:"-"`
}

// DiscoverResult contains all data from one discovery run.
type DiscoverResult struct {
	Query        services.StationSearch `json:"-"`
	Total        int                    `json:"total"`
	ValidCount   int                    `json:"validCount"`
	InvalidCount int                    `json:"invalidCount"`
	ErrorCount   int                    `json:"errorCount"`
	Stations     []StationValidation    `json:"stations"`
}

// StationCacher persists validated stations. Implemented by
// repositories.StationCacheAdapter; nil disables persistence.
type StationCacher interface {
	CacheStation(station models.RadioStation, result *streamcheck.Result) error
}

// StreamValidator validates one stream URL. Satisfied by
// *streamcheck.Validator; abstracted for engine tests.
type StreamValidator interface {
	Validate(ctx context.Context, req streamcheck.Request) (*streamcheck.Result, error)
}

// Engine defines discovery operations over the station directory.
type Engine interface {
	// Discover searches the directory and batch-validates candidate streams.
	Discover(ctx context.Context, progress chan<- ProgressUpdate, opts DiscoverOpts) (*DiscoverResult, error)

	// ValidateStation validates a single station's stream and reports the
	// listen to the directory when validation succeeds.
	ValidateStation(ctx context.Context, station models.RadioStation, opts ValidateOpts) (*StationValidation, error)
}

// StationEngine implements [Engine] against a directory service and the
// stream validation engine.
type StationEngine struct {
	directory services.DirectoryService
	validator StreamValidator
	cache     StationCacher
	logger    *log.Logger
}

// NewStationEngine creates a StationEngine. The cacher may be nil, in which
// case discovery results are not persisted.
func NewStationEngine(directory services.DirectoryService, validator StreamValidator, cache StationCacher, logger *log.Logger) *StationEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &StationEngine{
		directory: directory,
		validator: validator,
		cache:     cache,
		logger:    logger,
	}
}

// sendProgress delivers an update without blocking when no listener drains
// the channel.
func (e *StationEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ValidateOpts bounds a single station validation.
type ValidateOpts struct {
	Timeout         int64 // per-station budget in milliseconds; 0 uses the engine default
	FollowRedirects bool
	ReportListen    bool // record a directory click on success
}

// ValidateStation validates a single station's stream.
func (e *StationEngine) ValidateStation(ctx context.Context, station models.RadioStation, opts ValidateOpts) (*StationValidation, error) {
	if e.validator == nil {
		return nil, fmt.Errorf("%w: validator not initialized", shared.ErrServiceUnavailable)
	}
	if station.StreamURL == "" {
		return nil, fmt.Errorf("%w: station has no stream URL", shared.ErrInvalidInput)
	}

	req := streamcheck.Request{
		URL:             station.StreamURL,
		FollowRedirects: opts.FollowRedirects,
	}
	if opts.Timeout > 0 {
		req.Timeout = millis(opts.Timeout)
	}

	result, err := e.validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	validation := &StationValidation{Station: station, Result: result}
	if opts.ReportListen && result.Success && e.directory != nil && station.UUID != "" {
		if err := e.directory.ClickStation(ctx, station.UUID); err != nil {
			// Listen reporting is best-effort ranking feedback, not a failure.
			e.logger.Warn("failed to report listen", "station", station.Name, "error", err)
		}
	}
	return validation, nil
}
