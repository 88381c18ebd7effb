// Package library imports playlists from a directory of audio files.
//
// Each subdirectory of the library root becomes a playlist named after the directory. Audio
// files found below it become songs, in lexical path order, with title, artist, year and lyrics
// read from their embedded tags. Files without readable tags are still imported, titled after
// the file name.
package library

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/dhowden/tag"
)

// Extensions lists the file extensions imported as songs.
var Extensions = []string{".mp3", ".flac", ".m4a", ".ogg"}

// Track is the song data read from one audio file.
type Track struct {
	Path   string
	Title  string
	Artist string
	Year   int
	Lyrics string
}

// Loader reads library directories into a playlist collection.
type Loader struct {
	logger *log.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger}
}

// Load creates one playlist per subdirectory of dir and returns the number of songs imported.
//
// Errors from the collection are returned as is, so a fatal allocation error stops the import.
func (l *Loader) Load(dir string, collection models.Repository[*models.Playlist]) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read library %s: %w", dir, err)
	}

	total := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		tracks, err := l.Scan(filepath.Join(dir, entry.Name()))
		if err != nil {
			return total, err
		}

		playlist, err := collection.Create(entry.Name())
		if err != nil {
			return total, err
		}

		added := 0
		for _, track := range tracks {
			if err := playlist.AddSong(track.Title, track.Artist, track.Year, track.Lyrics); err != nil {
				if shared.IsFatal(err) {
					return total, err
				}
				l.logger.Warn("skipping track", "path", track.Path, "error", err)
				continue
			}
			added++
		}
		total += added

		l.logger.Info("playlist imported", "name", entry.Name(), "songs", added)
	}

	return total, nil
}

// Scan walks a playlist directory and reads every audio file below it.
func (l *Loader) Scan(dir string) ([]Track, error) {
	var tracks []Track

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsAudio(d.Name()) {
			return nil
		}

		track, err := l.ReadTrack(path)
		if err != nil {
			l.logger.Warn("skipping unreadable file", "path", path, "error", err)
			return nil
		}
		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return tracks, nil
}

// ReadTrack opens an audio file and reads its tags.
//
// Only a failure to open the file is an error; missing or broken tags fall back to the file name.
func (l *Loader) ReadTrack(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()

	name := filepath.Base(path)
	track := Track{Path: path, Title: strings.TrimSuffix(name, filepath.Ext(name))}

	m, err := tag.ReadFrom(f)
	if err != nil {
		l.logger.Debug("no tags found", "path", path, "error", err)
		return track, nil
	}

	if title := strings.TrimSpace(m.Title()); title != "" {
		track.Title = title
	}
	track.Artist = m.Artist()
	track.Year = m.Year()
	track.Lyrics = m.Lyrics()
	return track, nil
}

// IsAudio reports whether name has one of the imported [Extensions].
func IsAudio(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}
