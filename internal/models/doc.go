// Package models defines the in-memory entities of a tunebox session.
//
// A [Song] is a track record (title, artist, year, lyrics) with a play counter. A [Playlist] owns an
// ordered sequence of songs and carries the song editing operations: append, remove with shift,
// play and play-all, and sorting through the sorting package.
//
// Songs are owned by exactly one playlist and playlists by exactly one collection
// (see repositories.PlaylistRepository). Indexes are positions in the current sequence, so any
// removal shifts later elements down by one.
//
// Every cell a playlist holds is accounted through a [shared.Allocator]. When the allocator
// reports a failure, the playlist refuses further mutation and returns the latched
// [shared.FatalError].
package models
