package models

import (
	"fmt"
	"iter"

	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/sorting"
)

// Playlist is a named, ordered sequence of songs.
//
// Names are not unique. Insertion order is the display order until [Playlist.Sort] is called.
type Playlist struct {
	name   string
	songs  []*Song
	alloc  shared.Allocator
	closed bool
}

// NewPlaylist creates an empty playlist whose songs are accounted through alloc.
//
// A nil alloc means [shared.Unbounded].
func NewPlaylist(name string, alloc shared.Allocator) *Playlist {
	if alloc == nil {
		alloc = shared.Unbounded{}
	}
	return &Playlist{name: name, alloc: alloc}
}

// Name returns the playlist name.
func (p *Playlist) Name() string { return p.name }

// Len returns the number of songs.
func (p *Playlist) Len() int { return len(p.songs) }

// Err returns the latched fatal error of the playlist's allocator, if any.
func (p *Playlist) Err() error { return p.alloc.Err() }

// usable reports whether the playlist may still be mutated.
func (p *Playlist) usable() bool {
	return !p.closed && p.alloc.Err() == nil
}

// AddSong appends a new song with zero streams.
//
// Returns [shared.ErrInvalidInput] for an empty title and a [*shared.FatalError] when the song
// cannot be allocated; in both cases the playlist is unchanged.
func (p *Playlist) AddSong(title, artist string, year int, lyrics string) error {
	if err := p.alloc.Err(); err != nil {
		return err
	}
	if p.closed {
		return fmt.Errorf("add song to %q: %w", p.name, shared.ErrPlaylistNotFound)
	}

	song := NewSong(title, artist, year, lyrics)
	if err := song.Validate(); err != nil {
		return err
	}

	if err := p.alloc.Reserve(1); err != nil {
		return fmt.Errorf("add song %q: %w", title, err)
	}

	p.songs = append(p.songs, song)
	return nil
}

// RemoveSongAt removes the song at index and shifts later songs left by one.
//
// Out-of-range indexes are a no-op and report false.
func (p *Playlist) RemoveSongAt(index int) bool {
	if !p.usable() || index < 0 || index >= len(p.songs) {
		return false
	}

	copy(p.songs[index:], p.songs[index+1:])
	p.songs[len(p.songs)-1] = nil
	p.songs = p.songs[:len(p.songs)-1]
	p.alloc.Release(1)
	return true
}

// Song returns the song at index.
func (p *Playlist) Song(index int) (*Song, bool) {
	if index < 0 || index >= len(p.songs) {
		return nil, false
	}
	return p.songs[index], true
}

// Songs enumerates index and display snapshot pairs in the current order.
func (p *Playlist) Songs() iter.Seq2[int, SongView] {
	return func(yield func(int, SongView) bool) {
		for i, s := range p.songs {
			if !yield(i, s.View()) {
				return
			}
		}
	}
}

// PlaySongAt plays the song at index and returns its lyrics.
func (p *Playlist) PlaySongAt(index int) (string, bool) {
	if !p.usable() {
		return "", false
	}
	song, ok := p.Song(index)
	if !ok {
		return "", false
	}
	return song.Play(), true
}

// PlayAll lazily plays every song from first to last, yielding each song with its updated streams.
//
// Stopping the iteration early leaves the remaining songs unplayed.
func (p *Playlist) PlayAll() iter.Seq2[*Song, int] {
	return func(yield func(*Song, int) bool) {
		for i := 0; i < len(p.songs) && p.usable(); i++ {
			song := p.songs[i]
			song.Play()
			if !yield(song, song.Streams()) {
				return
			}
		}
	}
}

// Sort reorders the songs in place by c. Unknown selectors sort by title.
func (p *Playlist) Sort(c sorting.Comparator) error {
	if err := p.alloc.Err(); err != nil {
		return err
	}
	if p.closed {
		return fmt.Errorf("sort %q: %w", p.name, shared.ErrPlaylistNotFound)
	}
	if err := sorting.Sort(p.songs, c, p.alloc); err != nil {
		return fmt.Errorf("sort %q by %s: %w", p.name, sorting.Decode(int(c)), err)
	}
	return nil
}

// Close destroys all songs and releases their cells. The playlist cannot be used afterwards.
func (p *Playlist) Close() {
	if p.closed {
		return
	}
	p.alloc.Release(len(p.songs))
	clear(p.songs)
	p.songs = nil
	p.closed = true
}

// PlaylistExport is a display snapshot of a playlist with its songs.
type PlaylistExport struct {
	Name  string     `json:"name"`
	Songs []SongView `json:"songs"`
}

// Export returns a snapshot of the playlist in its current order.
func (p *Playlist) Export() *PlaylistExport {
	export := &PlaylistExport{Name: p.name, Songs: make([]SongView, 0, len(p.songs))}
	for _, v := range p.Songs() {
		export.Songs = append(export.Songs, v)
	}
	return export
}
