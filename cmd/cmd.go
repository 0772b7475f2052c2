// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// radioCommand handles station directory operations
func radioCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "radio",
		Usage: "Radio station directory operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the station directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Station name to search for",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Genre tag to filter by",
					},
					&cli.StringFlag{
						Name:  "country",
						Usage: "Country to filter by",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of stations to return",
						Value: 25,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Result offset for pagination",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RadioSearch,
			},
			{
				Name:  "validate",
				Usage: "Validate that a stream URL serves audio",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "url",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Validation budget in milliseconds (defaults to the configured default_timeout_ms)",
					},
					&cli.BoolFlag{
						Name:  "no-redirects",
						Usage: "Do not follow HTTP redirects",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write a plain text report to this path",
					},
				},
				Action: r.RadioValidate,
			},
			{
				Name:  "discover",
				Usage: "Search the directory and validate every candidate stream",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Station name to search for",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Genre tag to filter by",
					},
					&cli.StringFlag{
						Name:  "country",
						Usage: "Country to filter by",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum candidates to validate",
						Value: 25,
					},
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Per-station validation budget in milliseconds (defaults to the configured default_timeout_ms)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent validators (defaults to the configured discovery_workers)",
					},
					&cli.BoolFlag{
						Name:  "persist",
						Usage: "Cache validated stations in the local database",
					},
					&cli.StringFlag{
						Name:    "export",
						Aliases: []string{"e"},
						Usage:   "Base path for CSV + manifest export files",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RadioDiscover,
			},
			{
				Name:  "vote",
				Usage: "Vote for a station in the directory",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "uuid",
					},
				},
				Action: r.RadioVote,
			},
		},
	}
}

// libraryCommand handles music library operations
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Music library operations",
		Commands: []*cli.Command{
			{
				Name:   "ping",
				Usage:  "Check library server connectivity",
				Action: r.LibraryPing,
			},
			{
				Name:  "search",
				Usage: "Search songs, albums, and artists",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results per category",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibrarySearch,
			},
			{
				Name:  "albums",
				Usage: "List albums",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order (newest, recent, frequent, alphabetical)",
						Value: "alphabetical",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum albums to return",
						Value: 25,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Result offset for pagination",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryAlbums,
			},
			{
				Name:   "artists",
				Usage:  "List artists",
				Action: r.LibraryArtists,
			},
			{
				Name:  "playlists",
				Usage: "List playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryPlaylists,
			},
			{
				Name:  "star",
				Usage: "Star or unstar a song, album, or artist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "remove",
						Usage: "Remove the star instead of adding it",
					},
				},
				Action: r.LibraryStar,
			},
		},
	}
}

// lyricsCommand handles lyrics lookups
func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lyrics",
		Usage: "Look up lyrics for a track",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "artist",
				Usage:    "Artist name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "title",
				Usage:    "Track title",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "synced",
				Usage: "Show timestamps for synced lyrics",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Bypass the local lyrics cache",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.LyricsGet,
	}
}

// metaCommand handles metadata provider operations
func metaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "meta",
		Usage: "Music metadata operations",
		Commands: []*cli.Command{
			{
				Name:  "similar",
				Usage: "Find similar artists or tracks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Track title (searches similar tracks instead of artists)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MetaSimilar,
			},
			{
				Name:  "trending",
				Usage: "Show trending charts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Chart kind (artists or tracks)",
						Value: "tracks",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum entries",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MetaTrending,
			},
			{
				Name:  "bio",
				Usage: "Show an artist biography",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "artist",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MetaBio,
			},
		},
	}
}

// cacheCommand handles the local station cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and manage cached stations",
		Commands: []*cli.Command{
			{
				Name:  "stations",
				Usage: "List cached stations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by validation status (valid, invalid, error)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheStations,
			},
			{
				Name:  "clear",
				Usage: "Remove a cached station",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.CacheClear,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive station browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for station browsing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Genre tag to browse",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Country to browse",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Station name to search for",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum stations to load",
				Value: 50,
			},
		},
		Action: r.TUI,
	}
}
