package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "auto", cfg.Storage.Backend)
	assert.Equal(t, "panelo:", cfg.Storage.RedisPrefix)
	assert.Empty(t, cfg.Storage.RedisAddr)
	assert.True(t, cfg.Title.Fetch)
	assert.Equal(t, "5s", cfg.Title.Timeout)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.Equal(t, 2, cfg.TUI.RowHeight)
	assert.Empty(t, cfg.Clipboard.Command)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Storage.Backend, cfg.Storage.Backend)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[storage]
backend = "redis"
redis_addr = "localhost:6379"
redis_db = 2
redis_prefix = "dash:"

[title]
fetch = false
timeout = "2s"
user_agent = "custom-agent"

[tui]
show_help = false
row_height = 3

[clipboard]
command = "wl-copy"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
	assert.Equal(t, "dash:", cfg.Storage.RedisPrefix)
	assert.False(t, cfg.Title.Fetch)
	assert.Equal(t, 2*time.Second, cfg.TitleTimeout())
	assert.Equal(t, "custom-agent", cfg.Title.UserAgent)
	assert.False(t, cfg.TUI.ShowHelp)
	assert.Equal(t, 3, cfg.TUI.RowHeight)
	assert.Equal(t, "wl-copy", cfg.Clipboard.Command)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[storage]
file = "/tmp/panelo.json"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/panelo.json", cfg.StorageFile())

	// Unchanged fields should have defaults
	assert.Equal(t, "auto", cfg.Storage.Backend)
	assert.True(t, cfg.Title.Fetch)
	assert.Equal(t, 5*time.Second, cfg.TitleTimeout())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	err := os.WriteFile(path, []byte(`this is not valid toml [`), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "[storage]\nbackend = \"sqlite\"\n"},
		{"redis without addr", "[storage]\nbackend = \"redis\"\n"},
		{"bad timeout", "[title]\ntimeout = \"soon\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Storage.RedisAddr = "redis:6379"
	cfg.TUI.RowHeight = 4

	err := cfg.Save(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", loaded.Storage.RedisAddr)
	assert.Equal(t, 4, loaded.TUI.RowHeight)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/panelo/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "panelo/config.toml")
}

func TestDataPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	assert.Equal(t, "/custom/data/panelo", DataPath())
}

func TestStoragePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	assert.Equal(t, "/custom/data/panelo/storage.json", StoragePath())
	assert.Equal(t, "/custom/data/panelo/storage.json", DefaultConfig().StorageFile())
}

func TestEnsureDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	err := EnsureDataDir()
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "panelo"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
