package ui

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/sorting"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	SongListView
	NewPlaylistView
	NewSongView
	ConfirmView
	LyricsView
	ErrorView
)

// Collection is the store the TUI drives.
type Collection interface {
	models.Repository[*models.Playlist]
	Err() error
}

// Options configures a [Model].
type Options struct {
	Logger       *log.Logger
	Palette      *Palette
	PlayInterval time.Duration      // Delay between songs during play-all
	SortBy       sorting.Comparator // First selector applied by the cycle key
}

// nowPlaying is the song shown in [LyricsView].
type nowPlaying struct {
	title    string
	lyrics   string
	streams  int
	position int
	total    int
}

// playQueue is a pulled play-all iteration.
type playQueue struct {
	gen    int
	next   func() (*models.Song, int, bool)
	stop   func()
	played int
	total  int
}

// Model represents the TUI application state.
type Model struct {
	view         ViewState
	collection   Collection
	logger       *log.Logger
	palette      *Palette
	width        int
	height       int
	playlistList list.Model
	songList     list.Model
	current      int
	sortBy       sorting.Comparator
	form         []textinput.Model
	focus        int
	playing      *nowPlaying
	queue        *playQueue
	generation   int
	interval     time.Duration
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model over collection.
func NewModel(collection Collection, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Palette == nil {
		opts.Palette = styles
	}

	m := &Model{
		view:         PlaylistListView,
		collection:   collection,
		logger:       opts.Logger,
		palette:      opts.Palette,
		playlistList: newList("Playlists"),
		songList:     newList("Songs"),
		sortBy:       sorting.Decode(int(opts.SortBy)),
		interval:     opts.PlayInterval,
		help:         help.New(),
		keys:         newKeyMap(),
	}
	m.refreshPlaylists()
	return m
}

// Init implements [tea.Model]. The collection is already loaded, so there is nothing to fetch.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Err returns the fatal error that stopped the TUI, if any.
func (m *Model) Err() error {
	return m.err
}

// ViewState returns the current view.
func (m *Model) ViewState() ViewState {
	return m.view
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		m.songList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopPlayback()
			return m, tea.Quit
		}

		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case NewPlaylistView, NewSongView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case LyricsView:
			return m.handleLyricsKeys(msg)
		case ErrorView:
			return m, tea.Quit
		}

	case Msg:
		switch msg.kind {
		case MsgPlayNext:
			if m.queue == nil || msg.data != m.queue.gen {
				return m, nil
			}
			return m.playNext()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case PlaylistListView:
		body = m.renderPlaylistList()
	case SongListView:
		body = m.renderSongList()
	case NewPlaylistView, NewSongView:
		body = m.renderForm()
	case ConfirmView:
		body = m.renderConfirm()
	case LyricsView:
		body = m.renderLyrics()
	case ErrorView:
		return m.palette.err.Render(fmt.Sprintf("Error: %v\n\nPress any key to quit", m.err))
	}

	if m.status != "" {
		body = fmt.Sprintf("%s\n%s", body, m.status)
	}
	return body
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if _, ok := m.collection.Get(m.playlistList.Index()); ok {
			m.current = m.playlistList.Index()
			m.songList.ResetSelected()
			m.refreshSongs()
			m.view = SongListView
		}
		return m, nil
	case key.Matches(msg, m.keys.create):
		m.view = NewPlaylistView
		return m, m.openForm("Name")
	case key.Matches(msg, m.keys.remove):
		if _, ok := m.collection.Get(m.playlistList.Index()); ok {
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	playlist, ok := m.collection.Get(m.current)
	if !ok {
		m.view = PlaylistListView
		m.refreshPlaylists()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		m.refreshPlaylists()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m.playSelected(playlist)
	case key.Matches(msg, m.keys.add):
		m.view = NewSongView
		return m, m.openForm("Title", "Artist", "Year of release", "Lyrics")
	case key.Matches(msg, m.keys.remove):
		if playlist.RemoveSongAt(m.songList.Index()) {
			m.logger.Debug("song deleted", "playlist", playlist.Name(), "index", m.songList.Index())
			m.status = m.palette.ok.Render("Song deleted successfully.")
			m.refreshSongs()
			return m, nil
		}
		return m.check(playlist.Err())
	case key.Matches(msg, m.keys.play):
		return m.startPlayback(playlist)
	case key.Matches(msg, m.keys.sort):
		by := m.sortBy
		m.sortBy = m.sortBy.Next()
		return m.sortPlaylist(playlist, by)
	case key.Matches(msg, m.keys.sortBy):
		raw, _ := shared.ParseChoice(msg.String())
		return m.sortPlaylist(playlist, sorting.Decode(raw-1))
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		index := m.playlistList.Index()
		if m.collection.Delete(index) {
			m.logger.Debug("playlist deleted", "index", index)
			m.status = m.palette.ok.Render("Playlist deleted.")
		}
		m.view = PlaylistListView
		m.refreshPlaylists()
		return m, nil
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = PlaylistListView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleLyricsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.stopPlayback()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.stopPlayback()
		m.playing = nil
		m.status = ""
		m.view = SongListView
		m.refreshSongs()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) playSelected(playlist *models.Playlist) (tea.Model, tea.Cmd) {
	index := m.songList.Index()
	song, ok := playlist.Song(index)
	if !ok {
		return m, nil
	}

	lyrics, ok := playlist.PlaySongAt(index)
	if !ok {
		return m.check(playlist.Err())
	}

	m.playing = &nowPlaying{title: song.Title(), lyrics: lyrics, streams: song.Streams(), position: 1, total: 1}
	m.view = LyricsView
	return m, nil
}

func (m *Model) sortPlaylist(playlist *models.Playlist, by sorting.Comparator) (tea.Model, tea.Cmd) {
	if err := playlist.Sort(by); err != nil {
		return m.check(err)
	}
	m.logger.Debug("playlist sorted", "playlist", playlist.Name(), "by", by)
	m.status = m.palette.ok.Render(fmt.Sprintf("Sorted: %s", by.Label()))
	m.refreshSongs()
	return m, nil
}

// startPlayback begins a play-all run. Each [MsgPlayNext] pulls one more song.
func (m *Model) startPlayback(playlist *models.Playlist) (tea.Model, tea.Cmd) {
	if playlist.Len() == 0 {
		m.status = m.palette.warn.Render("Playlist is empty")
		return m, nil
	}

	m.stopPlayback()
	m.generation++
	next, stop := iter.Pull2(playlist.PlayAll())
	m.queue = &playQueue{gen: m.generation, next: next, stop: stop, total: playlist.Len()}
	m.view = LyricsView
	return m.playNext()
}

func (m *Model) playNext() (tea.Model, tea.Cmd) {
	song, streams, ok := m.queue.next()
	if !ok {
		played := m.queue.played
		m.stopPlayback()
		if err := m.collection.Err(); err != nil {
			return m.check(err)
		}
		m.status = m.palette.ok.Render(fmt.Sprintf("Played %d songs", played))
		return m, nil
	}

	m.queue.played++
	m.playing = &nowPlaying{
		title:    song.Title(),
		lyrics:   song.Lyrics(),
		streams:  streams,
		position: m.queue.played,
		total:    m.queue.total,
	}
	return m, schedulePlayNext(m.queue.gen, m.interval)
}

// stopPlayback ends the current play-all run, leaving unplayed songs untouched.
func (m *Model) stopPlayback() {
	if m.queue == nil {
		return
	}
	m.queue.stop()
	m.queue = nil
}

// check turns a fatal error into [ErrorView] and quits; other errors become a warning.
func (m *Model) check(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return m, nil
	}
	if shared.IsFatal(err) {
		m.stopPlayback()
		m.err = err
		m.view = ErrorView
		m.logger.Error("fatal error", "error", err)
		return m, tea.Quit
	}
	m.logger.Warn("operation rejected", "error", err)
	m.status = m.palette.warn.Render(err.Error())
	return m, nil
}

func (m *Model) refreshPlaylists() {
	items := make([]list.Item, 0, m.collection.Count())
	for i, name := range m.collection.List() {
		songs := 0
		if p, ok := m.collection.Get(i); ok {
			songs = p.Len()
		}
		items = append(items, playlistItem{name: name, songs: songs})
	}
	m.playlistList.SetItems(items)
	if n := len(items); n > 0 && m.playlistList.Index() >= n {
		m.playlistList.Select(n - 1)
	}
}

func (m *Model) refreshSongs() {
	playlist, ok := m.collection.Get(m.current)
	if !ok {
		m.songList.SetItems(nil)
		return
	}

	items := make([]list.Item, 0, playlist.Len())
	for i, song := range playlist.Songs() {
		items = append(items, songItem{position: i + 1, song: song})
	}
	m.songList.Title = playlist.Name()
	m.songList.SetItems(items)
	if n := len(items); n > 0 && m.songList.Index() >= n {
		m.songList.Select(n - 1)
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.remove, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderSongList() string {
	playKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play"))
	sortKey := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", m.sortBy.String()))
	helpKeys := []key.Binding{playKey, m.keys.add, m.keys.remove, m.keys.play, sortKey, m.keys.sortBy, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	name := ""
	songs := 0
	if p, ok := m.collection.Get(m.playlistList.Index()); ok {
		name = p.Name()
		songs = p.Len()
	}

	title := m.palette.title.Render(fmt.Sprintf("Delete playlist '%s'?", name))
	info := m.palette.warn.Render(fmt.Sprintf("%d songs will be deleted with it.", songs))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

func (m *Model) renderLyrics() string {
	if m.playing == nil {
		return ""
	}

	heading := fmt.Sprintf("Now playing %s:", m.playing.title)
	if m.playing.total > 1 {
		heading = fmt.Sprintf("%s (%d/%d)", heading, m.playing.position, m.playing.total)
	}

	var b strings.Builder
	b.WriteString(m.palette.title.Render(heading))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("$ %s $\n\n", m.playing.lyrics))
	b.WriteString(m.palette.help.Render(fmt.Sprintf("%s streams", shared.FormatStreams(m.playing.streams))))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
	return b.String()
}
