package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebridge/internal/services"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/desertthunder/tunebridge/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for station browsing.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.directory == nil {
		return fmt.Errorf("%w: directory service not initialized", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: station engine not initialized", shared.ErrServiceUnavailable)
	}

	search := services.StationSearch{
		Name:    cmd.String("name"),
		Tag:     cmd.String("tag"),
		Country: cmd.String("country"),
		Limit:   int(cmd.Int("limit")),
	}
	if search.Name == "" && search.Tag == "" && search.Country == "" {
		search.Tag = "jazz"
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tunebridge-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.directory, r.engine, search)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
