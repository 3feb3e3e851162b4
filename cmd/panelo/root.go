// Package main provides the CLI entrypoint for panelo.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelo/internal/config"
	"github.com/jmylchreest/panelo/internal/store"
	"github.com/jmylchreest/panelo/internal/title"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		backend    string
		dataFile   string
	}
	logger *slog.Logger

	// boardStore is the global store instance
	boardStore *store.Store
	kvBackend  store.KV
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "panelo",
	Short: "Dashboards of website panels, in the terminal",
	Long: `panelo keeps named dashboards of website panels ("boxes") laid out
on a 12-column grid, up to 15 boxes per dashboard.

Dashboards are stored in a local JSON file or, when configured, in redis.

Running panelo without a subcommand launches the interactive TUI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		return openStore(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		// Closing the store closes the backend too
		if boardStore != nil {
			return boardStore.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Errors are not usage mistakes once flags have parsed
	rootCmd.SilenceUsage = true

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/panelo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.backend, "backend", "",
		"Storage backend (auto, file, redis; default from config)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.dataFile, "data-file", "",
		"Path to storage file (default: ~/.local/share/panelo/storage.json)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// applyFlagOverrides lets global flags win over the config file.
func applyFlagOverrides(c *config.Config) {
	if globalOpts.backend != "" {
		c.Storage.Backend = globalOpts.backend
	}
	if globalOpts.dataFile != "" {
		c.Storage.File = globalOpts.dataFile
		// An explicit file means the file backend unless redis was forced
		if globalOpts.backend == "" {
			c.Storage.Backend = config.BackendFile
		}
	}
}

// openStore opens the storage backend and hydrates the global store.
func openStore(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Storage.File == "" {
		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	kv, err := store.OpenKV(ctx, store.KVOptions{
		Backend:       cfg.Storage.Backend,
		FilePath:      cfg.StorageFile(),
		RedisAddr:     cfg.Storage.RedisAddr,
		RedisPassword: cfg.Storage.RedisPassword,
		RedisDB:       cfg.Storage.RedisDB,
		RedisPrefix:   cfg.Storage.RedisPrefix,
	})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	kvBackend = kv
	logger.Debug("storage opened", "backend", kv.Name())

	boardStore = store.NewStore(store.NewKVPersistence(kv), newResolver(cfg, false))
	boardStore.SetTitleTimeout(cfg.TitleTimeout())

	if err := boardStore.Hydrate(ctx); err != nil {
		_ = boardStore.Close()
		boardStore = nil
		return fmt.Errorf("failed to load dashboards: %w", err)
	}
	return nil
}

// newResolver returns the title resolver for new boxes.
// A zero title.Static never resolves, so the fallback title is used.
func newResolver(c *config.Config, noFetch bool) title.Resolver {
	if noFetch || !c.Title.Fetch {
		return title.Static{}
	}
	return title.NewHTTPResolver(title.Options{
		Timeout:   c.TitleTimeout(),
		UserAgent: c.Title.UserAgent,
	})
}

// getStore returns the global store instance.
func getStore() *store.Store {
	return boardStore
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
