package repositories

import (
	"fmt"
	"iter"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

// PlaylistRepository implements models.Repository[*models.Playlist] as an ordered in-memory collection.
type PlaylistRepository struct {
	playlists []*models.Playlist
	alloc     shared.Allocator
}

// NewPlaylistRepository creates an empty collection. A nil alloc means [shared.Unbounded].
func NewPlaylistRepository(alloc shared.Allocator) *PlaylistRepository {
	if alloc == nil {
		alloc = shared.Unbounded{}
	}
	return &PlaylistRepository{alloc: alloc}
}

// Create appends a new empty playlist to the end of the collection.
//
// Duplicate names are allowed. The only failure is a fatal allocation error.
func (r *PlaylistRepository) Create(name string) (*models.Playlist, error) {
	if err := r.alloc.Err(); err != nil {
		return nil, err
	}
	if err := r.alloc.Reserve(1); err != nil {
		return nil, fmt.Errorf("create playlist %q: %w", name, err)
	}

	playlist := models.NewPlaylist(name, r.alloc)
	r.playlists = append(r.playlists, playlist)
	return playlist, nil
}

// Get returns the playlist at index.
func (r *PlaylistRepository) Get(index int) (*models.Playlist, bool) {
	if index < 0 || index >= len(r.playlists) {
		return nil, false
	}
	return r.playlists[index], true
}

// Delete destroys the playlist at index with all its songs and shifts later playlists left.
//
// Out-of-range indexes are a no-op and report false.
func (r *PlaylistRepository) Delete(index int) bool {
	if r.alloc.Err() != nil || index < 0 || index >= len(r.playlists) {
		return false
	}

	r.playlists[index].Close()
	r.alloc.Release(1)

	copy(r.playlists[index:], r.playlists[index+1:])
	r.playlists[len(r.playlists)-1] = nil
	r.playlists = r.playlists[:len(r.playlists)-1]
	return true
}

// List enumerates index and name pairs in collection order. Each call starts a fresh enumeration.
func (r *PlaylistRepository) List() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, p := range r.playlists {
			if !yield(i, p.Name()) {
				return
			}
		}
	}
}

// Count returns the number of playlists.
func (r *PlaylistRepository) Count() int {
	return len(r.playlists)
}

// Err returns the latched fatal error, if an allocation has failed.
func (r *PlaylistRepository) Err() error {
	return r.alloc.Err()
}

// Clear destroys every playlist and releases every cell.
//
// It works on a latched repository too; hosts call it before exiting on a fatal error.
func (r *PlaylistRepository) Clear() {
	for _, p := range r.playlists {
		p.Close()
		r.alloc.Release(1)
	}
	clear(r.playlists)
	r.playlists = nil
}
