package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryPing checks library server connectivity.
func (r *Runner) LibraryPing(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.library.Ping(ctx); err != nil {
		return fmt.Errorf("library ping failed: %w", err)
	}

	r.writePlain("✓ Library server is reachable\n")
	return nil
}

// LibrarySearch searches songs, albums, and artists.
func (r *Runner) LibrarySearch(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query argument is required", shared.ErrMissingArgument)
	}

	result, err := r.library.Search(ctx, query, services.ListOpts{Limit: int(cmd.Int("limit"))})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	if len(result.Songs) > 0 {
		r.writePlain("Songs:\n")
		for _, song := range result.Songs {
			r.writePlain("  %s - %s [%s]\n", song.Artist, song.Title, shared.FormatDuration(song.Duration))
		}
	}
	if len(result.Albums) > 0 {
		r.writePlain("Albums:\n")
		for _, album := range result.Albums {
			r.writePlain("  %s - %s (%d songs)\n", album.Artist, album.Name, album.SongCount)
		}
	}
	if len(result.Artists) > 0 {
		r.writePlain("Artists:\n")
		for _, artist := range result.Artists {
			r.writePlain("  %s (%d albums)\n", artist.Name, artist.AlbumCount)
		}
	}
	if len(result.Songs) == 0 && len(result.Albums) == 0 && len(result.Artists) == 0 {
		r.writePlain("No results.\n")
	}
	return nil
}

// LibraryAlbums lists albums.
func (r *Runner) LibraryAlbums(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	page, err := r.library.ListAlbums(ctx, cmd.String("sort"), services.ListOpts{
		Limit:  int(cmd.Int("limit")),
		Offset: int(cmd.Int("offset")),
	})
	if err != nil {
		return fmt.Errorf("failed to list albums: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Albums (%d)", len(page.Items)))
	for i, album := range page.Items {
		r.writePlain("%d. %s - %s", page.Offset+i+1, album.Artist, album.Name)
		if album.Year > 0 {
			r.writePlain(" (%d)", album.Year)
		}
		r.writePlain("\n")
	}
	return nil
}

// LibraryArtists lists artists.
func (r *Runner) LibraryArtists(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	artists, err := r.library.ListArtists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list artists: %w", err)
	}

	r.writePlainHeader(fmt.Sprintf("Artists (%d)", len(artists)))
	for _, artist := range artists {
		r.writePlain("  %s (%d albums)\n", artist.Name, artist.AlbumCount)
	}
	return nil
}

// LibraryPlaylists lists playlists.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	playlists, err := r.library.GetPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(playlists)))
	for _, playlist := range playlists {
		r.writePlain("  %s (%d songs)\n", playlist.Name, playlist.SongCount)
	}
	return nil
}

// LibraryStar stars or unstars a library entity.
func (r *Runner) LibraryStar(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: entity ID argument is required", shared.ErrMissingArgument)
	}

	starred := !cmd.Bool("remove")
	if err := r.library.SetStarred(ctx, id, starred); err != nil {
		return fmt.Errorf("failed to update star: %w", err)
	}

	if starred {
		r.writePlain("★ Starred %s\n", id)
	} else {
		r.writePlain("☆ Unstarred %s\n", id)
	}
	return nil
}
