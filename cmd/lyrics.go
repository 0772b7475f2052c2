package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/repositories"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/urfave/cli/v3"
)

// LyricsGet looks up lyrics for a track, consulting the local cache first.
func (r *Runner) LyricsGet(ctx context.Context, cmd *cli.Command) error {
	if r.lyrics == nil {
		return fmt.Errorf("%w: lyrics service not initialized", shared.ErrServiceUnavailable)
	}

	artist := cmd.String("artist")
	title := cmd.String("title")

	var cache *repositories.LyricsCacheRepository
	if !cmd.Bool("no-cache") {
		if _, err := os.Stat(r.config.Database.Path); err == nil {
			db, err := shared.NewDatabase(r.config.Database.Path)
			if err == nil {
				defer db.Close()
				cache = repositories.NewLyricsCacheRepository(db)
			}
		}
	}

	var lyrics *models.Lyrics
	if cache != nil {
		if entry, err := cache.Get(artist, title); err == nil && !entry.Expired(r.config.Lyrics.TTL()) {
			r.logger.Debug("lyrics cache hit", "artist", artist, "title", title)
			lyrics = &entry.Lyrics
		}
	}

	if lyrics == nil {
		fetched, err := r.lyrics.GetLyrics(ctx, artist, title)
		if err != nil {
			if errors.Is(err, shared.ErrLyricsNotFound) {
				r.writePlain("No lyrics found for %s - %s\n", artist, title)
				return nil
			}
			return fmt.Errorf("lyrics lookup failed: %w", err)
		}
		lyrics = fetched

		if cache != nil {
			if err := cache.Put(models.NewCachedLyrics(*lyrics)); err != nil {
				r.logger.Warn("failed to cache lyrics", "error", err)
			}
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(lyrics, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", lyrics.Artist, lyrics.Title))
	showTimestamps := cmd.Bool("synced") && lyrics.Synced
	for _, line := range lyrics.Lines {
		if showTimestamps && line.TimestampMs >= 0 {
			r.writePlain("[%s] %s\n", shared.FormatDuration(int(line.TimestampMs/1000)), line.Text)
		} else {
			r.writePlain("%s\n", line.Text)
		}
	}
	return nil
}
