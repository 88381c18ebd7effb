// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI drives the same playlist collection as the menu console:
//  1. [PlaylistListView] : Browse, create and delete playlists
//  2. [SongListView] : Browse songs, add, delete, sort and play them
//  3. [NewPlaylistView] and [NewSongView] : Text input forms
//  4. [ConfirmView] : Confirm deleting a playlist with all its songs
//  5. [LyricsView] : Show the song being played; play-all advances on a timer
//  6. [ErrorView] : A fatal error, after which the program quits
//
// All collection calls happen inside Update, so the core is never touched from another goroutine.
// Play-all pulls one song at a time from [models.Playlist.PlayAll]; leaving the view stops the
// iteration and the remaining songs stay unplayed.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
