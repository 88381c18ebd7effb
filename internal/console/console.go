package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/formatter"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/desertthunder/tunebox/internal/sorting"
	"golang.org/x/time/rate"
)

const (
	watchChoice = iota + 1
	addChoice
	removeChoice
	exitChoice
)

const (
	showSongs = iota + 1
	addSong
	deleteSong
	sortSongs
	playSongs
	exitPlaylist
)

const invalidOption = "Invalid option\n"

// Collection is the store the console drives.
type Collection interface {
	models.Repository[*models.Playlist]
	Err() error
}

// Options configures a [Console].
type Options struct {
	Input          io.Reader   // Defaults to [os.Stdin]
	Output         io.Writer   // Defaults to [os.Stdout]
	Logger         *log.Logger // Defaults to a discarding logger
	SongsPerSecond float64     // Play-all pacing; 0 disables it
}

// Console is a line-oriented menu session over a [Collection].
type Console struct {
	collection Collection
	in         *bufio.Scanner
	out        io.Writer
	logger     *log.Logger
	limiter    *rate.Limiter
}

// New creates a console over collection.
func New(collection Collection, opts Options) *Console {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	limit := rate.Inf
	if opts.SongsPerSecond > 0 {
		limit = rate.Limit(opts.SongsPerSecond)
	}

	return &Console{
		collection: collection,
		in:         bufio.NewScanner(opts.Input),
		out:        opts.Output,
		logger:     opts.Logger,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Run drives the main menu until exit, end of input, cancellation or a fatal error.
func (c *Console) Run(ctx context.Context) error {
	for {
		choice, err := c.menuChoice(mainMenu, watchChoice, exitChoice)
		if err == nil {
			switch choice {
			case watchChoice:
				err = c.watchPlaylists(ctx)
			case addChoice:
				err = c.addPlaylist()
			case removeChoice:
				err = c.removePlaylist()
			case exitChoice:
				c.printf("Goodbye!\n")
				return nil
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			c.logger.Debug("input closed")
			c.printf("Goodbye!\n")
			return nil
		default:
			c.logger.Error("console stopped", "error", err)
			return err
		}
	}
}

func mainMenu(c *Console) {
	c.printf("Please Choose:\n")
	c.printf("\t1. Watch playlists\n\t2. Add playlist\n\t3. Remove playlist\n\t4. exit\n")
}

// menuChoice prints a menu until a choice in [low, high] is entered.
func (c *Console) menuChoice(menu func(*Console), low, high int) (int, error) {
	for {
		menu(c)
		choice, ok, err := c.readInt()
		if err != nil {
			return 0, err
		}
		if ok && choice >= low && choice <= high {
			return choice, nil
		}
		c.printf(invalidOption)
	}
}

// playlistChoice returns a zero-based playlist index, or Count() for "Back to main menu".
func (c *Console) playlistChoice() (int, error) {
	count := c.collection.Count()
	menu := func(c *Console) {
		c.printf("Choose a playlist:\n")
		for i, name := range c.collection.List() {
			c.printf("\t%d. %s\n", i+1, name)
		}
		c.printf("\t%d. Back to main menu\n", count+1)
	}

	choice, err := c.menuChoice(menu, 1, count+1)
	if err != nil {
		return 0, err
	}
	return choice - 1, nil
}

func (c *Console) watchPlaylists(ctx context.Context) error {
	for {
		index, err := c.playlistChoice()
		if err != nil {
			return err
		}

		playlist, ok := c.collection.Get(index)
		if !ok {
			return nil
		}

		if err := c.playlistMenu(ctx, playlist); err != nil {
			return err
		}
	}
}

func (c *Console) addPlaylist() error {
	c.printf("Enter playlist's name:\n")
	name, err := c.readLine()
	if err != nil {
		return err
	}

	if _, err := c.collection.Create(name); err != nil {
		return err
	}
	c.logger.Debug("playlist created", "name", name, "count", c.collection.Count())
	return nil
}

func (c *Console) removePlaylist() error {
	index, err := c.playlistChoice()
	if err != nil {
		return err
	}

	if c.collection.Delete(index) {
		c.logger.Debug("playlist deleted", "index", index, "count", c.collection.Count())
		c.printf("Playlist deleted.\n")
	}
	return nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine returns the next input line without its line ending, or [io.EOF].
func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

// readInt reads a line and parses it; ok is false for malformed numbers.
func (c *Console) readInt() (int, bool, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, false, err
	}
	n, err := shared.ParseChoice(line)
	if err != nil {
		c.logger.Debug("malformed number", "input", line)
		return 0, false, nil
	}
	return n, true, nil
}

func (c *Console) showSongs(playlist *models.Playlist) error {
	data, err := formatter.ExportToText(playlist.Export())
	if err != nil {
		return err
	}
	_, err = c.out.Write(data)
	return err
}

func (c *Console) nowPlaying(title, lyrics string) {
	c.printf("Now playing %s:\n$ %s $\n\n", title, lyrics)
}

// decodeSortChoice maps the 1-based sort menu answer to a selector; malformed input sorts by title.
func decodeSortChoice(choice int, ok bool) sorting.Comparator {
	if !ok {
		return sorting.Default
	}
	return sorting.Decode(choice - 1)
}
