package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Logging  LoggingConfig  `toml:"logging"`
	Playback PlaybackConfig `toml:"playback"`
	Limits   LimitsConfig   `toml:"limits"`
	Display  DisplayConfig  `toml:"display"`
	UI       UIConfig       `toml:"ui"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// PlaybackConfig controls "play all" pacing.
type PlaybackConfig struct {
	SongsPerSecond float64 `toml:"songs_per_second"`
}

// LimitsConfig bounds the in-memory collection.
type LimitsConfig struct {
	MaxItems int `toml:"max_items"`
}

// DisplayConfig contains presentation defaults.
type DisplayConfig struct {
	DefaultSort string `toml:"default_sort"`
}

// UIConfig contains TUI colours as hex strings.
type UIConfig struct {
	Accent string `toml:"accent"`
	OK     string `toml:"ok"`
	Error  string `toml:"error"`
	Warn   string `toml:"warn"`
	Muted  string `toml:"muted"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks value ranges and the log level.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Playback.SongsPerSecond < 0 {
		return fmt.Errorf("%w: playback.songs_per_second must not be negative", ErrInvalidConfig)
	}
	if c.Limits.MaxItems < 0 {
		return fmt.Errorf("%w: limits.max_items must not be negative", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, os.ErrExist)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
