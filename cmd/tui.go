package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/sorting"
	"github.com/desertthunder/tunebox/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI over the runner's playlists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	model := ui.NewModel(r.repo, ui.Options{
		Logger:       r.logger,
		Palette:      ui.PaletteFromConfig(r.config.UI),
		PlayInterval: playInterval(r.config.Playback.SongsPerSecond),
		SortBy:       sorting.Parse(r.config.Display.DefaultSort),
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return r.fail(model.Err())
}

// playInterval converts a songs-per-second rate to the delay between songs.
func playInterval(songsPerSecond float64) time.Duration {
	if songsPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / songsPerSecond)
}
