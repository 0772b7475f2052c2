package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunebridge/internal/repositories"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStations lists stations cached by discovery runs.
func (r *Runner) CacheStations(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := repositories.NewStationRepository(db)
	stations, err := repo.List(map[string]any{"status": cmd.String("status")})
	if err != nil {
		return fmt.Errorf("failed to list cached stations: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stations, true)
	}

	r.writePlainHeader(fmt.Sprintf("Cached Stations (%d)", len(stations)))
	for _, station := range stations {
		r.writePlain("#%d [%s] %s\n", station.Sequence, station.Status, station.Station.Name)
		r.writePlain("   %s\n", station.Station.StreamURL)
		if !station.LastCheckedAt.IsZero() {
			r.writePlain("   last checked %s\n", station.LastCheckedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

// CacheClear removes a cached station.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: station ID argument is required", shared.ErrMissingArgument)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := repositories.NewStationRepository(db)
	if err := repo.Delete(id); err != nil {
		return fmt.Errorf("failed to remove station: %w", err)
	}

	r.writePlain("✓ Removed station %s from the cache\n", id)
	return nil
}
