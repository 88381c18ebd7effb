package console

import (
	"context"
	"errors"
	"iter"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/sorting"
)

func (c *Console) playlistMenu(ctx context.Context, playlist *models.Playlist) error {
	menu := func(c *Console) {
		c.printf("playlist %s:\n", playlist.Name())
		c.printf("\t1. Show Playlist\n\t2. Add Song\n\t3. Delete Song\n\t4. Sort\n\t5. Play\n\t6. exit\n")
	}

	for {
		choice, err := c.menuChoice(menu, showSongs, exitPlaylist)
		if err != nil {
			return err
		}

		switch choice {
		case showSongs:
			err = c.showAndPlay(playlist)
		case addSong:
			err = c.addSong(playlist)
		case deleteSong:
			err = c.deleteSong(playlist)
		case sortSongs:
			err = c.sortSongs(playlist)
		case playSongs:
			err = c.playAll(ctx, playlist)
		case exitPlaylist:
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// showAndPlay lists the songs, then plays picked songs until 0 is entered.
func (c *Console) showAndPlay(playlist *models.Playlist) error {
	if err := c.showSongs(playlist); err != nil {
		return err
	}

	for {
		c.printf("choose a song to play, or 0 to quit:\n")
		choice, ok, err := c.readInt()
		if err != nil {
			return err
		}
		if ok && choice == 0 {
			return nil
		}

		song, found := playlist.Song(choice - 1)
		if !ok || !found {
			c.printf(invalidOption)
			continue
		}

		lyrics, _ := playlist.PlaySongAt(choice - 1)
		c.nowPlaying(song.Title(), lyrics)
	}
}

func (c *Console) addSong(playlist *models.Playlist) error {
	c.printf("Enter song's details\n")

	c.printf("Title:\n")
	title, err := c.readLine()
	if err != nil {
		return err
	}

	c.printf("Artist:\n")
	artist, err := c.readLine()
	if err != nil {
		return err
	}

	c.printf("Year of release:\n")
	year, _, err := c.readInt()
	if err != nil {
		return err
	}

	c.printf("Lyrics:\n")
	lyrics, err := c.readLine()
	if err != nil {
		return err
	}

	err = playlist.AddSong(title, artist, year, lyrics)
	switch {
	case err == nil:
		c.logger.Debug("song added", "playlist", playlist.Name(), "title", title, "songs", playlist.Len())
		return nil
	case errors.Is(err, shared.ErrInvalidInput):
		c.logger.Warn("song not added", "playlist", playlist.Name(), "error", err)
		return nil
	default:
		return err
	}
}

func (c *Console) deleteSong(playlist *models.Playlist) error {
	if err := c.showSongs(playlist); err != nil {
		return err
	}

	c.printf("choose a song to delete, or 0 to quit:\n")
	choice, ok, err := c.readInt()
	if err != nil || !ok || choice == 0 {
		return err
	}

	if playlist.RemoveSongAt(choice - 1) {
		c.logger.Debug("song deleted", "playlist", playlist.Name(), "position", choice)
		c.printf("Song deleted successfully.\n")
	}
	return playlist.Err()
}

func (c *Console) sortSongs(playlist *models.Playlist) error {
	c.printf("choose:\n")
	for i, comparator := range sorting.Comparators() {
		c.printf("%d. %s\n", i+1, comparator.Label())
	}

	choice, ok, err := c.readInt()
	if err != nil {
		return err
	}

	comparator := decodeSortChoice(choice, ok)
	if err := playlist.Sort(comparator); err != nil {
		return err
	}

	c.logger.Debug("playlist sorted", "playlist", playlist.Name(), "by", comparator)
	c.printf("sorted\n")
	return nil
}

// playAll plays every song in order, paced by the console's limiter.
//
// Each song is pulled only after its wait succeeds, so a cancelled wait leaves it unplayed.
func (c *Console) playAll(ctx context.Context, playlist *models.Playlist) error {
	next, stop := iter.Pull2(playlist.PlayAll())
	defer stop()

	for range playlist.Len() {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		song, _, ok := next()
		if !ok {
			break
		}
		c.nowPlaying(song.Title(), song.Lyrics())
	}
	return playlist.Err()
}
