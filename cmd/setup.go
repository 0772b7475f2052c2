package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/urfave/cli/v3"
)

// setupCommand handles setup operations for the database and library authentication.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupDatabase,
			},
			{
				Name:    "library",
				Aliases: []string{"lib"},
				Usage:   "Verify library credentials and custom headers",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing a cURL command with library headers",
					},
				},
				Action: r.SetupLibrary,
			},
		},
	}
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupLibrary verifies that library credentials work, including any custom
// headers captured from a browser session via a cURL file.
func (r *Runner) SetupLibrary(ctx context.Context, cmd *cli.Command) error {
	curlFile := cmd.String("curl-file")

	if curlFile != "" {
		r.logger.Info("parsing cURL file for library headers", "file", curlFile)

		curlHeaders, err := shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}

		r.writePlain("✓ Parsed %d headers from %s\n", len(curlHeaders.Headers), curlFile)
		r.writePlainln("Next steps:")
		r.writePlain("1. Update config.toml with: library.headers_path = \"%s\"\n", curlFile)
		r.writePlain("2. Run 'tunebridge library ping' to test authentication\n")
	}

	if r.library == nil {
		r.writePlain("Library client not configured; set library.base_url and credentials in config.toml\n")
		return nil
	}

	if err := r.library.Ping(ctx); err != nil {
		return fmt.Errorf("library ping failed: %w", err)
	}

	r.writePlain("✓ Library server reachable and credentials accepted\n")
	return nil
}
