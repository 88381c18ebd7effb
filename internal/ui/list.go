package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
)

// playlistItem wraps a playlist name and size to implement [list.Item].
type playlistItem struct {
	name  string
	songs int
}

func (i playlistItem) FilterValue() string { return i.name }
func (i playlistItem) Title() string       { return i.name }
func (i playlistItem) Description() string {
	if i.songs == 1 {
		return "1 song"
	}
	return fmt.Sprintf("%d songs", i.songs)
}

// songItem wraps [models.SongView] to implement [list.Item].
type songItem struct {
	position int
	song     models.SongView
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return fmt.Sprintf("%d. %s", i.position, i.song.Title) }
func (i songItem) Description() string {
	desc := fmt.Sprintf("%d • %s streams", i.song.Year, shared.FormatStreams(i.song.Streams))
	if i.song.Artist != "" {
		desc = fmt.Sprintf("%s • %s", i.song.Artist, desc)
	}
	return desc
}

// newList creates a list without filtering or its own quit keys; the model handles those.
func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}
