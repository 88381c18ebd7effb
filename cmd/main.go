package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.WithLogger(shared.NewLogger(nil), "session", shared.GenerateID())

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := newApp(runner)

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case shared.IsFatal(err):
			runner.Close()
			logger.Fatal("fatal error, all playlists released", "error", err)
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

// newApp builds the root command. Without a subcommand it starts the menu console.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "tunebox",
		Usage:    "Manage playlists of songs from the terminal",
		Version:  "0.1.0",
		Writer:   r.output,
		Reader:   r.input,
		Flags:    globalFlags(),
		Before:   r.Before,
		Action:   r.Shell,
		Commands: r.register(),
	}
}
