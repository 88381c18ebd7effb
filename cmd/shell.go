package main

import (
	"context"

	"github.com/desertthunder/tunebox/internal/console"
	"github.com/urfave/cli/v3"
)

// Shell runs the numbered-menu console on the runner's input and output.
func (r *Runner) Shell(ctx context.Context, cmd *cli.Command) error {
	c := console.New(r.repo, console.Options{
		Input:          r.input,
		Output:         r.output,
		Logger:         r.logger,
		SongsPerSecond: r.config.Playback.SongsPerSecond,
	})

	r.logger.Debug("console started", "playlists", r.repo.Count())
	return r.fail(c.Run(ctx))
}
