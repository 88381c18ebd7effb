package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	tu "github.com/desertthunder/tunebox/internal/testing"
)

// runApp runs the CLI with args against r and returns what it wrote.
func runApp(t *testing.T, r *Runner, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	r.output = output
	app := newApp(r)
	err := app.Run(context.Background(), append([]string{"tunebox"}, args...))
	return output.String(), err
}

func seededRunner(t *testing.T, input string) *Runner {
	t.Helper()
	repo := tu.NewRepository(t)
	tu.SeedPlaylist(t, repo, "Mixtape", tu.Mixtape...)
	tu.SeedPlaylist(t, repo, "Empty")
	return NewRunner(RunnerOpts{
		Config:     shared.DefaultConfig(),
		Logger:     shared.NewLogger(&bytes.Buffer{}),
		Input:      strings.NewReader(input),
		Repository: repo,
	})
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			repo := repositories.NewPlaylistRepository(nil)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				Input:      input,
				Repository: repo,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.repo != repo {
				t.Error("expected repository to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil input uses stdin", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: nil})
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("Close releases every playlist", func(t *testing.T) {
		runner := seededRunner(t, "")
		runner.Close()
		if runner.repo.Count() != 0 {
			t.Errorf("expected empty repository, got %d", runner.repo.Count())
		}
	})
}

func TestBefore(t *testing.T) {
	t.Run("missing default config falls back to defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Input: strings.NewReader("4\n")})

		if _, err := runApp(t, runner, "shell"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.config == nil || runner.repo == nil {
			t.Fatal("expected config and repository to be created")
		}
		if runner.config.Display.DefaultSort != "title" {
			t.Errorf("expected default sort title, got %q", runner.config.Display.DefaultSort)
		}
	})

	t.Run("explicit missing config", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})

		_, err := runApp(t, runner, "--config", filepath.Join(t.TempDir(), "nope.toml"), "playlists", "list")
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("config limits the repository", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		tu.MustWriteFile(t, path, []byte("[limits]\nmax_items = 1\n"))

		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Input:  strings.NewReader("2\nMix\n2\nSecond\n4\n"),
		})

		_, err := runApp(t, runner, "--config", path)
		if !shared.IsFatal(err) {
			t.Fatalf("expected fatal allocation error, got %v", err)
		}
		if runner.config.Limits.MaxItems != 1 {
			t.Errorf("expected max_items 1, got %d", runner.config.Limits.MaxItems)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: shared.DefaultConfig(), Logger: shared.NewLogger(&bytes.Buffer{})})

		_, err := runApp(t, runner, "--log-level", "loud", "playlists", "list")
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("imports library", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, "Road Trip")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create library: %v", err)
		}
		tu.MustWriteFile(t, filepath.Join(dir, "Song One.mp3"), []byte("no tags here"))

		runner := NewRunner(RunnerOpts{Config: shared.DefaultConfig(), Logger: shared.NewLogger(&bytes.Buffer{})})

		output, err := runApp(t, runner, "--library", root, "playlists", "list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "1. Road Trip (1 songs)") {
			t.Errorf("expected imported playlist, got %q", output)
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("root runs the console", func(t *testing.T) {
		runner := seededRunner(t, "1\n1\n1\n0\n6\n3\n4\n")

		output, err := runApp(t, runner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertInOrder(t, output,
			"Choose a playlist:\n\t1. Mixtape\n\t2. Empty\n\t3. Back to main menu\n",
			"1. Title: Hurricane\n",
			"Goodbye!\n",
		)
	})

	t.Run("shell", func(t *testing.T) {
		runner := seededRunner(t, "2\nNew\n4\n")

		if _, err := runApp(t, runner, "shell"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.repo.Count() != 3 {
			t.Errorf("expected 3 playlists, got %d", runner.repo.Count())
		}
	})

	t.Run("playlists list", func(t *testing.T) {
		output, err := runApp(t, seededRunner(t, ""), "playlists", "list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertInOrder(t, output, "Playlists (2)", "1. Mixtape (3 songs)\n", "2. Empty (0 songs)\n")
	})

	t.Run("playlists list json", func(t *testing.T) {
		output, err := runApp(t, seededRunner(t, ""), "playlists", "list", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []playlistSummary
		if err := json.Unmarshal([]byte(output), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", output, err)
		}
		if len(got) != 2 || got[0].Name != "Mixtape" || got[0].Songs != 3 || got[1].Number != 2 {
			t.Errorf("unexpected summaries %+v", got)
		}
	})

	t.Run("playlists show", func(t *testing.T) {
		tests := []struct {
			name     string
			args     []string
			expected []string
		}{
			{
				name:     "default sort from config",
				args:     []string{"--playlist", "1"},
				expected: []string{"Mixtape", "1. Title: Anthem\n", "2. Title: Hurricane\n", "3. Title: Motion Sickness\n"},
			},
			{
				name:     "sort by year",
				args:     []string{"--playlist", "1", "--sort", "year"},
				expected: []string{"1. Title: Hurricane\n", "2. Title: Anthem\n"},
			},
			{
				name:     "markdown streams descending",
				args:     []string{"-p", "1", "-s", "streams-desc", "-f", "markdown"},
				expected: []string{"# Mixtape", "**Songs**: 3", "1. Leonard Cohen - Anthem (1992) [5 streams]"},
			},
			{
				name:     "csv",
				args:     []string{"--playlist", "1", "--format", "csv"},
				expected: []string{"#,Title,Artist,Year,Streams\n", "1,Anthem,Leonard Cohen,1992,5\n"},
			},
			{
				name:     "json",
				args:     []string{"--playlist", "1", "--format", "json"},
				expected: []string{`"name": "Mixtape"`, `"title": "Anthem"`},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				output, err := runApp(t, seededRunner(t, ""), append([]string{"playlists", "show"}, tt.args...)...)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				tu.AssertInOrder(t, output, tt.expected...)
			})
		}
	})

	t.Run("playlists show unknown playlist", func(t *testing.T) {
		_, err := runApp(t, seededRunner(t, ""), "playlists", "show", "--playlist", "9")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("playlists show unknown format", func(t *testing.T) {
		_, err := runApp(t, seededRunner(t, ""), "playlists", "show", "--playlist", "1", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("setup config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.toml")

		output, err := runApp(t, seededRunner(t, ""), "setup", "config", "--output", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.Contains(output, "Configuration written to") {
			t.Errorf("expected confirmation, got %q", output)
		}
		if !strings.Contains(tu.MustReadFile(t, path), "[limits]") {
			t.Error("expected example config content")
		}

		_, err = runApp(t, seededRunner(t, ""), "setup", "config", "--output", path)
		if !errors.Is(err, os.ErrExist) {
			t.Errorf("expected os.ErrExist on second run, got %v", err)
		}
	})
}

func TestPlayInterval(t *testing.T) {
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{0, 0},
		{-1, 0},
		{1, time.Second},
		{4, 250 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := playInterval(tt.rate); got != tt.want {
			t.Errorf("playInterval(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
