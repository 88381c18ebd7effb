// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
)

// SongFixture describes a song to seed into a playlist.
type SongFixture struct {
	Title  string
	Artist string
	Year   int
	Lyrics string
	Plays  int
}

// Mixtape is a small playlist with distinct years, streams and titles.
var Mixtape = []SongFixture{
	{Title: "Hurricane", Artist: "Bob Dylan", Year: 1975, Lyrics: "Pistol shots ring out", Plays: 2},
	{Title: "Anthem", Artist: "Leonard Cohen", Year: 1992, Lyrics: "Ring the bells", Plays: 5},
	{Title: "Motion Sickness", Artist: "Phoebe Bridgers", Year: 2017, Lyrics: "I hate you for what you did", Plays: 0},
}

// NewRepository returns an unbounded repository.
func NewRepository(t *testing.T) *repositories.PlaylistRepository {
	t.Helper()
	return repositories.NewPlaylistRepository(shared.Unbounded{})
}

// SeedPlaylist creates a playlist, adds songs and plays each one Plays times.
func SeedPlaylist(t *testing.T, repo *repositories.PlaylistRepository, name string, songs ...SongFixture) {
	t.Helper()
	playlist, err := repo.Create(name)
	if err != nil {
		t.Fatalf("failed to create playlist %q: %v", name, err)
	}

	for i, s := range songs {
		if err := playlist.AddSong(s.Title, s.Artist, s.Year, s.Lyrics); err != nil {
			t.Fatalf("failed to add song %q: %v", s.Title, err)
		}
		for range s.Plays {
			playlist.PlaySongAt(i)
		}
	}
}

// AssertInOrder checks that every fragment appears in output after the previous one.
func AssertInOrder(t *testing.T, output string, fragments ...string) {
	t.Helper()
	rest := output
	for _, fragment := range fragments {
		idx := strings.Index(rest, fragment)
		if idx < 0 {
			t.Errorf("expected output to contain %q after previous fragments\noutput:\n%s", fragment, output)
			return
		}
		rest = rest[idx+len(fragment):]
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// FReader always returns an error on Read
type FReader struct{}

func (f *FReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
