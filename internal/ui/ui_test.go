package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/sorting"
	tu "github.com/desertthunder/tunebox/internal/testing"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func newTestModel(t *testing.T, repo *repositories.PlaylistRepository) *Model {
	t.Helper()
	m := NewModel(repo, Options{})
	send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func titles(repo *repositories.PlaylistRepository, index int) []string {
	p, _ := repo.Get(index)
	var out []string
	for _, v := range p.Songs() {
		out = append(out, v.Title)
	}
	return out
}

func TestModelPlaylists(t *testing.T) {
	t.Run("creates a playlist through the form", func(t *testing.T) {
		repo := tu.NewRepository(t)
		m := newTestModel(t, repo)

		send(m, keyRunes("n"))
		if m.ViewState() != NewPlaylistView {
			t.Fatalf("expected NewPlaylistView, got %v", m.ViewState())
		}

		send(m, keyRunes("Road Trip"), enterKey)
		if m.ViewState() != PlaylistListView {
			t.Errorf("expected PlaylistListView, got %v", m.ViewState())
		}
		if repo.Count() != 1 {
			t.Fatalf("expected 1 playlist, got %d", repo.Count())
		}
		if p, _ := repo.Get(0); p.Name() != "Road Trip" {
			t.Errorf("expected Road Trip, got %q", p.Name())
		}
		if !strings.Contains(m.View(), "Road Trip") {
			t.Error("expected view to list the new playlist")
		}
	})

	t.Run("escape cancels the form", func(t *testing.T) {
		repo := tu.NewRepository(t)
		m := newTestModel(t, repo)

		send(m, keyRunes("n"), keyRunes("Draft"), escKey)
		if m.ViewState() != PlaylistListView || repo.Count() != 0 {
			t.Errorf("expected cancelled form, view %v count %d", m.ViewState(), repo.Count())
		}
	})

	t.Run("deletes a playlist after confirmation", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "First", tu.Mixtape...)
		tu.SeedPlaylist(t, repo, "Second")
		m := newTestModel(t, repo)

		send(m, keyRunes("d"))
		if m.ViewState() != ConfirmView {
			t.Fatalf("expected ConfirmView, got %v", m.ViewState())
		}
		if !strings.Contains(m.View(), "3 songs will be deleted") {
			t.Errorf("expected confirmation to mention songs, got %q", m.View())
		}

		send(m, keyRunes("y"))
		if repo.Count() != 1 {
			t.Fatalf("expected 1 playlist, got %d", repo.Count())
		}
		if p, _ := repo.Get(0); p.Name() != "Second" {
			t.Errorf("expected Second to remain, got %q", p.Name())
		}
	})

	t.Run("declining keeps the playlist", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Keep")
		m := newTestModel(t, repo)

		send(m, keyRunes("d"), keyRunes("n"))
		if repo.Count() != 1 || m.ViewState() != PlaylistListView {
			t.Errorf("expected playlist kept, count %d view %v", repo.Count(), m.ViewState())
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := newTestModel(t, tu.NewRepository(t))
		cmd := send(m, keyRunes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestModelSongs(t *testing.T) {
	t.Run("adds a song through the form", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Mix")
		m := newTestModel(t, repo)

		send(m, enterKey, keyRunes("a"))
		if m.ViewState() != NewSongView {
			t.Fatalf("expected NewSongView, got %v", m.ViewState())
		}

		send(m,
			keyRunes("Hurricane"), enterKey,
			keyRunes("Bob Dylan"), enterKey,
			keyRunes("1975"), enterKey,
			keyRunes("Pistol shots ring out"), enterKey,
		)
		if m.ViewState() != SongListView {
			t.Errorf("expected SongListView, got %v", m.ViewState())
		}

		p, _ := repo.Get(0)
		song, ok := p.Song(0)
		if !ok {
			t.Fatal("expected song to be added")
		}
		if song.Title() != "Hurricane" || song.Artist() != "Bob Dylan" || song.Year() != 1975 || song.Lyrics() != "Pistol shots ring out" {
			t.Errorf("unexpected song %+v", song.View())
		}
	})

	t.Run("empty title is rejected with a warning", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Mix")
		m := newTestModel(t, repo)

		send(m, enterKey, keyRunes("a"), enterKey, enterKey, keyRunes("soon"), enterKey, enterKey)
		if p, _ := repo.Get(0); p.Len() != 0 {
			t.Errorf("expected no songs, got %d", p.Len())
		}
		if !strings.Contains(m.View(), "song title is required") {
			t.Errorf("expected warning in view, got %q", m.View())
		}
	})

	t.Run("plays the selected song", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Mix", tu.Mixtape...)
		m := newTestModel(t, repo)

		send(m, enterKey, enterKey)
		if m.ViewState() != LyricsView {
			t.Fatalf("expected LyricsView, got %v", m.ViewState())
		}
		view := m.View()
		if !strings.Contains(view, "Now playing Hurricane:") || !strings.Contains(view, "$ Pistol shots ring out $") {
			t.Errorf("unexpected lyrics view %q", view)
		}

		p, _ := repo.Get(0)
		if song, _ := p.Song(0); song.Streams() != 3 {
			t.Errorf("expected 3 streams, got %d", song.Streams())
		}

		send(m, escKey)
		if m.ViewState() != SongListView {
			t.Errorf("expected SongListView, got %v", m.ViewState())
		}
	})

	t.Run("deletes the selected song", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Mix", tu.Mixtape...)
		m := newTestModel(t, repo)

		send(m, enterKey, keyRunes("j"), keyRunes("d"))
		got := strings.Join(titles(repo, 0), ",")
		if got != "Hurricane,Motion Sickness" {
			t.Errorf("unexpected songs %s", got)
		}
	})

	t.Run("sorts by explicit selector", func(t *testing.T) {
		tests := []struct {
			key  string
			want string
		}{
			{"1", "Hurricane,Anthem,Motion Sickness"},
			{"2", "Motion Sickness,Hurricane,Anthem"},
			{"3", "Anthem,Hurricane,Motion Sickness"},
			{"4", "Anthem,Hurricane,Motion Sickness"},
		}

		for _, tt := range tests {
			t.Run(tt.key, func(t *testing.T) {
				repo := tu.NewRepository(t)
				tu.SeedPlaylist(t, repo, "Mix", tu.Mixtape...)
				m := newTestModel(t, repo)

				send(m, enterKey, keyRunes(tt.key))
				if got := strings.Join(titles(repo, 0), ","); got != tt.want {
					t.Errorf("expected %s, got %s", tt.want, got)
				}
			})
		}
	})

	t.Run("sort key cycles from the configured selector", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Mix", tu.Mixtape...)
		m := NewModel(repo, Options{SortBy: sorting.StreamsAsc})

		send(m, enterKey, keyRunes("s"))
		if got := strings.Join(titles(repo, 0), ","); got != "Motion Sickness,Hurricane,Anthem" {
			t.Errorf("expected ascending streams, got %s", got)
		}

		send(m, keyRunes("s"))
		if got := strings.Join(titles(repo, 0), ","); got != "Anthem,Hurricane,Motion Sickness" {
			t.Errorf("expected descending streams, got %s", got)
		}
	})
}

func TestModelPlayAll(t *testing.T) {
	t.Run("plays every song one message at a time", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Mix", tu.Mixtape...)
		m := newTestModel(t, repo)

		cmd := send(m, enterKey, keyRunes("p"))
		if !strings.Contains(m.View(), "Now playing Hurricane: (1/3)") {
			t.Errorf("expected first song, got %q", m.View())
		}

		for cmd != nil {
			cmd = send(m, cmd())
		}

		if !strings.Contains(m.View(), "Played 3 songs") {
			t.Errorf("expected finished status, got %q", m.View())
		}

		p, _ := repo.Get(0)
		for i, want := range []int{3, 6, 1} {
			if song, _ := p.Song(i); song.Streams() != want {
				t.Errorf("song %d: expected %d streams, got %d", i, want, song.Streams())
			}
		}
	})

	t.Run("leaving stops playback", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Mix", tu.Mixtape...)
		m := newTestModel(t, repo)

		cmd := send(m, enterKey, keyRunes("p"))
		pending := cmd()
		send(m, escKey, pending)

		p, _ := repo.Get(0)
		for i, want := range []int{3, 5, 0} {
			if song, _ := p.Song(i); song.Streams() != want {
				t.Errorf("song %d: expected %d streams, got %d", i, want, song.Streams())
			}
		}
		if m.ViewState() != SongListView {
			t.Errorf("expected SongListView, got %v", m.ViewState())
		}
	})

	t.Run("empty playlist", func(t *testing.T) {
		repo := tu.NewRepository(t)
		tu.SeedPlaylist(t, repo, "Empty")
		m := newTestModel(t, repo)

		send(m, enterKey, keyRunes("p"))
		if m.ViewState() != SongListView {
			t.Errorf("expected to stay on SongListView, got %v", m.ViewState())
		}
		if !strings.Contains(m.View(), "Playlist is empty") {
			t.Error("expected empty playlist warning")
		}
	})
}

func TestModelLatchedDelete(t *testing.T) {
	repo := repositories.NewPlaylistRepository(shared.NewBudget(2))
	playlist, err := repo.Create("Mix")
	if err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}
	if err := playlist.AddSong("Kept", "Someone", 2000, "words"); err != nil {
		t.Fatalf("failed to add song: %v", err)
	}
	if err := playlist.AddSong("Overflow", "Someone", 2001, "more"); !shared.IsFatal(err) {
		t.Fatalf("expected fatal error, got %v", err)
	}

	m := newTestModel(t, repo)
	cmd := send(m, enterKey, keyRunes("d"))

	if m.ViewState() != ErrorView {
		t.Fatalf("expected ErrorView, got %v", m.ViewState())
	}
	if !shared.IsFatal(m.Err()) {
		t.Errorf("expected fatal error, got %v", m.Err())
	}
	if playlist.Len() != 1 {
		t.Errorf("expected song to remain, got %d songs", playlist.Len())
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelFatal(t *testing.T) {
	repo := repositories.NewPlaylistRepository(shared.NewBudget(1))
	m := newTestModel(t, repo)

	send(m, keyRunes("n"), keyRunes("Only"), enterKey, enterKey, keyRunes("a"))
	cmd := send(m,
		keyRunes("Song"), enterKey,
		keyRunes("Someone"), enterKey,
		keyRunes("2000"), enterKey,
		keyRunes("words"), enterKey,
	)

	if m.ViewState() != ErrorView {
		t.Fatalf("expected ErrorView, got %v", m.ViewState())
	}
	if !shared.IsFatal(m.Err()) {
		t.Errorf("expected fatal error, got %v", m.Err())
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
