package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/tunebridge/internal/formatter"
	"github.com/desertthunder/tunebridge/internal/repositories"
	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
	"github.com/desertthunder/tunebridge/internal/tasks"
	"github.com/urfave/cli/v3"
)

// RadioSearch searches the station directory.
func (r *Runner) RadioSearch(ctx context.Context, cmd *cli.Command) error {
	if r.directory == nil {
		return fmt.Errorf("%w: directory service not initialized", shared.ErrServiceUnavailable)
	}

	query := services.StationSearch{
		Name:    cmd.String("name"),
		Tag:     cmd.String("tag"),
		Country: cmd.String("country"),
		Limit:   int(cmd.Int("limit")),
		Offset:  int(cmd.Int("offset")),
	}
	if query.Name == "" && query.Tag == "" && query.Country == "" {
		return fmt.Errorf("%w: one of --name, --tag, or --country is required", shared.ErrMissingArgument)
	}

	stations, err := r.directory.SearchStations(ctx, query)
	if err != nil {
		return fmt.Errorf("station search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stations, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Stations (%d)", len(stations)))
	for i, station := range stations {
		r.writePlain("%d. %s\n", i+1, station.Name)
		r.writePlain("   %s\n", station.StreamURL)
		if station.Genre != "" || station.Country != "" {
			r.writePlain("   %s • %s • %d votes\n", station.Genre, station.Country, station.Votes)
		}
	}
	return nil
}

// validationBudget resolves a validation timeout from the flag value, falling
// back to the configured default and enforcing the configured bounds.
func validationBudget(cfg shared.ValidationConfig, flagMs int64) (time.Duration, error) {
	timeout := time.Duration(flagMs) * time.Millisecond
	if timeout <= 0 {
		timeout = cfg.DefaultTimeout()
	}
	if timeout < cfg.MinTimeout() || timeout > cfg.MaxTimeout() {
		return 0, fmt.Errorf("%w: timeout %dms outside configured [%d, %d]ms",
			shared.ErrInvalidTimeout, timeout.Milliseconds(),
			cfg.MinTimeout().Milliseconds(), cfg.MaxTimeout().Milliseconds())
	}
	return timeout, nil
}

// discoveryWorkers resolves the worker count from the flag value, falling
// back to the configured count.
func discoveryWorkers(cfg shared.ValidationConfig, flagWorkers int64) int {
	if flagWorkers > 0 {
		return int(flagWorkers)
	}
	return cfg.Workers()
}

// RadioValidate validates a single stream URL.
func (r *Runner) RadioValidate(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: stream URL argument is required", shared.ErrMissingArgument)
	}

	timeout, err := validationBudget(r.config.Validation, int64(cmd.Int("timeout")))
	if err != nil {
		return err
	}

	req := streamcheck.Request{
		URL:             url,
		Timeout:         timeout,
		FollowRedirects: !cmd.Bool("no-redirects"),
	}

	r.logger.Info("validating stream", "url", url)

	result, err := r.validator.Validate(ctx, req)
	if err != nil {
		return fmt.Errorf("validation rejected: %w", err)
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteValidationReport(result, output)
		if err != nil {
			return err
		}
		r.writePlain("Report written to %s\n", path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	text, err := formatter.ValidationToText(result)
	if err != nil {
		return err
	}
	r.writePlain("%s", string(text))
	return nil
}

// drainProgress renders discovery progress updates until progressCh closes.
// The returned channel closes once every update has been written, so callers
// can join before printing anything else to the shared output.
func (r *Runner) drainProgress(progressCh <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.SearchDirectory:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.ValidateStreams:
				r.writePlain("   %s\n", update.Message)
			case tasks.PersistStations:
				r.writePlain("💾 %s\n", update.Message)
			}
		}
	}()
	return done
}

// RadioDiscover searches the directory and validates every candidate stream.
func (r *Runner) RadioDiscover(ctx context.Context, cmd *cli.Command) error {
	query := services.StationSearch{
		Name:    cmd.String("name"),
		Tag:     cmd.String("tag"),
		Country: cmd.String("country"),
		Limit:   int(cmd.Int("limit")),
	}
	if query.Name == "" && query.Tag == "" && query.Country == "" {
		return fmt.Errorf("%w: one of --name, --tag, or --country is required", shared.ErrMissingArgument)
	}

	engine := r.engine
	if cmd.Bool("persist") {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		cache := repositories.NewStationCacheAdapter(repositories.NewStationRepository(db))
		engine = tasks.NewStationEngine(r.directory, r.validator, cache, r.logger)
	}

	timeout, err := validationBudget(r.config.Validation, int64(cmd.Int("timeout")))
	if err != nil {
		return err
	}

	r.writePlain("Discovering stations...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := r.drainProgress(progressCh)

	result, err := engine.Discover(ctx, progressCh, tasks.DiscoverOpts{
		Search:     query,
		TimeoutMs:  timeout.Milliseconds(),
		NumWorkers: discoveryWorkers(r.config.Validation, int64(cmd.Int("workers"))),
		Persist:    cmd.Bool("persist"),
	})
	close(progressCh)
	<-drained

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Discovery Complete")
	r.writePlain("Candidates: %d\n", result.Total)
	r.writePlain("Valid: %d\n", result.ValidCount)
	r.writePlain("Invalid: %d\n", result.InvalidCount)
	r.writePlain("Errors: %d\n", result.ErrorCount)

	for i, validation := range result.Stations {
		status := "error"
		if validation.Result != nil {
			status = string(validation.Result.Status)
		}
		r.writePlain("  %d. [%s] %s\n", i+1, status, validation.Station.Name)
	}

	if export := cmd.String("export"); export != "" {
		files, err := formatter.WriteDiscoveryExport(result, export)
		if err != nil {
			return err
		}
		r.writePlainln("Exported %s and %s", files.StationsFile, files.ManifestFile)
	}

	return nil
}

// RadioVote votes for a station in the directory.
func (r *Runner) RadioVote(ctx context.Context, cmd *cli.Command) error {
	if r.directory == nil {
		return fmt.Errorf("%w: directory service not initialized", shared.ErrServiceUnavailable)
	}

	uuid := cmd.StringArg("uuid")
	if uuid == "" {
		return fmt.Errorf("%w: station UUID argument is required", shared.ErrMissingArgument)
	}

	if err := r.directory.VoteStation(ctx, uuid); err != nil {
		return fmt.Errorf("vote failed: %w", err)
	}

	r.writePlain("✓ Vote recorded for station %s\n", uuid)
	return nil
}
