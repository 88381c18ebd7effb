// Package repositories implements the in-memory collection store for playlists.
//
// [PlaylistRepository] owns the ordered sequence of playlists of a session. Playlists are
// addressed by their current position: deleting one destroys its songs and shifts every later
// playlist down by one. Nothing is written to storage.
//
// All cells (playlists and songs) are accounted through one [shared.Allocator] shared with the
// playlists the repository creates. After an allocation failure the repository is latched: [PlaylistRepository.Err]
// reports the failure and every mutation returns it or does nothing.
package repositories
