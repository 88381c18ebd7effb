package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tunebox/internal/shared"
)

// Song is a track record with a play counter.
//
// Text fields are fixed at creation; only the streams counter changes, through [Song.Play].
type Song struct {
	title   string
	artist  string
	year    int
	lyrics  string
	streams int
}

// SongView is a read-only snapshot of a song used for display.
type SongView struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Year    int    `json:"year"`
	Streams int    `json:"streams"`
}

var _ Model = (*Song)(nil)

// NewSong creates a song that has never been played.
func NewSong(title, artist string, year int, lyrics string) *Song {
	return &Song{
		title:  title,
		artist: artist,
		year:   year,
		lyrics: lyrics,
	}
}

func (s *Song) Title() string  { return s.title }
func (s *Song) Artist() string { return s.artist }
func (s *Song) Year() int      { return s.year }
func (s *Song) Lyrics() string { return s.lyrics }
func (s *Song) Streams() int   { return s.streams }

// Play increments the streams counter by one and returns the lyrics for display.
func (s *Song) Play() string {
	s.streams++
	return s.lyrics
}

// View returns a display snapshot of the song.
func (s *Song) View() SongView {
	return SongView{
		Title:   s.title,
		Artist:  s.artist,
		Year:    s.year,
		Streams: s.streams,
	}
}

// Validate rejects songs without a title.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.title) == "" {
		return fmt.Errorf("%w: song title is required", shared.ErrInvalidInput)
	}
	return nil
}
