// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultBackend      = BackendAuto
	DefaultRedisPrefix  = "panelo:"
	DefaultTitleTimeout = "5s"
	DefaultRowHeight    = 2
)

// Storage backend names.
const (
	BackendAuto  = "auto"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config represents the panelo configuration.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Title     TitleConfig     `toml:"title"`
	TUI       TUIConfig       `toml:"tui"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Backend       string `toml:"backend"`        // auto, file, redis
	File          string `toml:"file"`           // Empty = DataPath()/storage.json
	RedisAddr     string `toml:"redis_addr"`     // host:port; empty disables redis in auto mode
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// TitleConfig controls page-title fetching for new boxes.
type TitleConfig struct {
	Fetch     bool   `toml:"fetch"`
	Timeout   string `toml:"timeout"` // Go duration
	UserAgent string `toml:"user_agent"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp  bool `toml:"show_help"`
	RowHeight int  `toml:"row_height"` // Terminal lines per grid row
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Empty = system clipboard
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     DefaultBackend,
			RedisPrefix: DefaultRedisPrefix,
		},
		Title: TitleConfig{
			Fetch:   true,
			Timeout: DefaultTitleTimeout,
		},
		TUI: TUIConfig{
			ShowHelp:  true,
			RowHeight: DefaultRowHeight,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "panelo", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "panelo")
}

// StoragePath returns the default path of the file backend.
func StoragePath() string {
	return filepath.Join(DataPath(), "storage.json")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerated and duration fields.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendAuto, BackendFile, BackendRedis:
	case "":
		c.Storage.Backend = DefaultBackend
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendRedis && c.Storage.RedisAddr == "" {
		return errors.New("storage.redis_addr is required when storage.backend is redis")
	}
	if c.Title.Timeout != "" {
		if _, err := time.ParseDuration(c.Title.Timeout); err != nil {
			return fmt.Errorf("title.timeout: %w", err)
		}
	}
	if c.TUI.RowHeight < 1 {
		c.TUI.RowHeight = DefaultRowHeight
	}
	return nil
}

// TitleTimeout returns the parsed title fetch timeout.
func (c *Config) TitleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Title.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTitleTimeout)
	}
	return d
}

// StorageFile returns the configured file backend path or the default.
func (c *Config) StorageFile() string {
	if c.Storage.File != "" {
		return c.Storage.File
	}
	return StoragePath()
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
