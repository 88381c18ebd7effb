package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunebox/internal/formatter"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/sorting"
	"github.com/urfave/cli/v3"
)

// playlistSummary is the JSON shape of one entry of 'playlists list'.
type playlistSummary struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Songs  int    `json:"songs"`
}

// PlaylistsList prints every playlist with its song count.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	summaries := make([]playlistSummary, 0, r.repo.Count())
	for i, name := range r.repo.List() {
		p, _ := r.repo.Get(i)
		summaries = append(summaries, playlistSummary{Number: i + 1, Name: name, Songs: p.Len()})
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, true)
	}

	if len(summaries) == 0 {
		return r.writePlain("No playlists. Import some with --library <dir>.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(summaries)))
	for _, s := range summaries {
		if err := r.writePlain("%d. %s (%d songs)\n", s.Number, s.Name, s.Songs); err != nil {
			return err
		}
	}
	return nil
}

// PlaylistsShow prints one playlist, sorted by --sort or the configured default.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	number := int(cmd.Int("playlist"))
	playlist, ok := r.repo.Get(number - 1)
	if !ok {
		return fmt.Errorf("%w: no playlist number %d", shared.ErrPlaylistNotFound, number)
	}

	by := r.config.Display.DefaultSort
	if cmd.IsSet("sort") {
		by = cmd.String("sort")
	}
	if by != "" {
		comparator := sorting.Parse(by)
		if err := playlist.Sort(comparator); err != nil {
			return r.fail(err)
		}
		r.logger.Debug("playlist sorted", "playlist", playlist.Name(), "by", comparator)
	}

	export := playlist.Export()
	format := cmd.String("format")
	if format == "json" {
		return r.writeJSON(export, true)
	}

	data, err := formatter.Render(export, format)
	if err != nil {
		return err
	}

	if format == "" || format == formatter.FormatText || format == "txt" {
		r.writePlainHeader(playlist.Name())
	}
	return r.writePlain("%s", data)
}
