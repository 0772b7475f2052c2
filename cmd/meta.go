package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/urfave/cli/v3"
)

// MetaSimilar finds similar artists, or similar tracks when --title is set.
func (r *Runner) MetaSimilar(ctx context.Context, cmd *cli.Command) error {
	if r.metadata == nil {
		return fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	artist := cmd.String("artist")
	title := cmd.String("title")
	limit := int(cmd.Int("limit"))

	if title != "" {
		tracks, err := r.metadata.SimilarTracks(ctx, title, artist, limit)
		if err != nil {
			return fmt.Errorf("similar track lookup failed: %w", err)
		}
		if cmd.Bool("json") {
			return r.writeJSON(tracks, true)
		}
		r.writePlainHeader(fmt.Sprintf("Tracks similar to %s - %s", artist, title))
		for i, track := range tracks {
			r.writePlain("%d. %s - %s (%.0f%% match)\n", i+1, track.Artist, track.Title, track.Match*100)
		}
		return nil
	}

	artists, err := r.metadata.SimilarArtists(ctx, artist, limit)
	if err != nil {
		return fmt.Errorf("similar artist lookup failed: %w", err)
	}
	if cmd.Bool("json") {
		return r.writeJSON(artists, true)
	}
	r.writePlainHeader(fmt.Sprintf("Artists similar to %s", artist))
	for i, similar := range artists {
		r.writePlain("%d. %s (%.0f%% match)\n", i+1, similar.Name, similar.Match*100)
	}
	return nil
}

// MetaTrending shows trending charts.
func (r *Runner) MetaTrending(ctx context.Context, cmd *cli.Command) error {
	if r.metadata == nil {
		return fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	kind := cmd.String("kind")
	limit := int(cmd.Int("limit"))

	var entries []models.ChartEntry
	var err error
	switch kind {
	case "artists":
		entries, err = r.metadata.TopArtists(ctx, limit)
	case "tracks":
		entries, err = r.metadata.TopTracks(ctx, limit)
	default:
		return fmt.Errorf("%w: kind must be artists or tracks", shared.ErrInvalidFlag)
	}
	if err != nil {
		return fmt.Errorf("chart lookup failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	r.writePlainHeader(fmt.Sprintf("Trending %s", kind))
	for _, entry := range entries {
		if entry.Title != "" {
			r.writePlain("%d. %s - %s\n", entry.Rank, entry.Artist, entry.Title)
		} else {
			r.writePlain("%d. %s\n", entry.Rank, entry.Artist)
		}
	}
	return nil
}

// MetaBio shows an artist biography.
func (r *Runner) MetaBio(ctx context.Context, cmd *cli.Command) error {
	if r.metadata == nil {
		return fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	artist := cmd.StringArg("artist")
	if artist == "" {
		return fmt.Errorf("%w: artist argument is required", shared.ErrMissingArgument)
	}

	bio, err := r.metadata.ArtistBio(ctx, artist)
	if err != nil {
		return fmt.Errorf("biography lookup failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(bio, true)
	}

	r.writePlainHeader(bio.Name)
	r.writePlain("%s\n", bio.Summary)
	if bio.URL != "" {
		r.writePlain("\nMore: %s\n", bio.URL)
	}
	return nil
}
