package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var libraryService services.LibraryService
	if config.Library.BaseURL != "" && config.Library.Username != "" {
		if svc, err := services.NewLibraryClient(config.Library, nil); err == nil {
			libraryService = svc
		} else {
			logger.Warn("library client unavailable", "error", err)
		}
	}

	var metadataService services.MetadataService
	if config.Metadata.ClientID != "" && config.Metadata.ClientSecret != "" {
		if svc, err := services.NewMetadataClient(config.Metadata); err == nil {
			metadataService = svc
		} else {
			logger.Warn("metadata client unavailable", "error", err)
		}
	}

	directoryService := services.NewDirectoryClient(config.Radio, nil)
	lyricsService := services.NewLyricsClient(config.Lyrics, nil)

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Library:   libraryService,
		Directory: directoryService,
		Metadata:  metadataService,
		Lyrics:    lyricsService,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "tunebridge",
		Usage:    "Bridge music libraries, radio directories, and metadata services",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
