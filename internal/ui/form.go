package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebox/internal/shared"
)

// openForm replaces the form with one focused input per label.
func (m *Model) openForm(labels ...string) tea.Cmd {
	m.form = make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%s: ", label)
		ti.Width = 48
		m.form[i] = ti
	}
	m.focus = 0
	m.status = ""
	return m.form[0].Focus()
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		return m.closeForm(), nil
	case key.Matches(msg, m.keys.enter):
		if m.focus < len(m.form)-1 {
			return m, m.focusField(m.focus + 1)
		}
		return m.submitForm()
	case key.Matches(msg, m.keys.next):
		return m, m.focusField((m.focus + 1) % len(m.form))
	case key.Matches(msg, m.keys.prev):
		return m, m.focusField((m.focus + len(m.form) - 1) % len(m.form))
	}

	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.form[m.focus].Blur()
	m.focus = i
	return m.form[i].Focus()
}

// closeForm returns to the list the form was opened from.
func (m *Model) closeForm() *Model {
	if m.view == NewSongView {
		m.view = SongListView
		m.refreshSongs()
	} else {
		m.view = PlaylistListView
		m.refreshPlaylists()
	}
	m.form = nil
	return m
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	values := make([]string, len(m.form))
	for i, input := range m.form {
		values[i] = input.Value()
	}

	switch m.view {
	case NewPlaylistView:
		m.closeForm()
		if _, err := m.collection.Create(values[0]); err != nil {
			return m.check(err)
		}
		m.logger.Debug("playlist created", "name", values[0], "count", m.collection.Count())
		m.refreshPlaylists()
		m.playlistList.Select(m.collection.Count() - 1)
		return m, nil

	case NewSongView:
		m.closeForm()
		playlist, ok := m.collection.Get(m.current)
		if !ok {
			return m, nil
		}

		year, err := shared.ParseChoice(values[2])
		if err != nil {
			year = 0
		}
		if err := playlist.AddSong(values[0], values[1], year, values[3]); err != nil {
			return m.check(err)
		}
		m.logger.Debug("song added", "playlist", playlist.Name(), "title", values[0])
		m.status = m.palette.ok.Render(fmt.Sprintf("Added %s", values[0]))
		m.refreshSongs()
		m.songList.Select(playlist.Len() - 1)
		return m, nil
	}

	return m, nil
}

func (m *Model) renderForm() string {
	heading := "New playlist"
	if m.view == NewSongView {
		heading = "Enter song's details"
	}

	fields := make([]string, len(m.form))
	for i, input := range m.form {
		fields[i] = input.View()
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.enter, m.keys.back}
	return fmt.Sprintf("%s\n%s\n\n%s",
		m.palette.title.Render(heading), strings.Join(fields, "\n"), m.help.ShortHelpView(helpKeys))
}
