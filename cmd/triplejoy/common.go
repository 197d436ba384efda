package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/triplejoy/internal/achievements"
	"github.com/vovakirdan/triplejoy/internal/config"
	"github.com/vovakirdan/triplejoy/internal/core"
	"github.com/vovakirdan/triplejoy/internal/games/gems"
	"github.com/vovakirdan/triplejoy/internal/storage"
)

const defaultDBPath = "~/.triplejoy/scores.db"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "triplejoy",
})

// setupLogging applies --log-level and --config.
func setupLogging() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	gems.SetConfigPath(flagConfig)
	return nil
}

// defaultPlayer names the local player after the OS user.
func defaultPlayer() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "player"
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failure is logged and play
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newTracker loads the local player's achievements.
func newTracker(store *storage.Store) *achievements.Tracker {
	opts := []achievements.Option{achievements.WithLogger(logger)}
	if store != nil {
		opts = append(opts, achievements.WithStore(store))
	}

	tracker, err := achievements.NewTracker(flagPlayer, opts...)
	if err != nil {
		logger.Warn("could not load achievements", "player", flagPlayer, "error", err)
		tracker, _ = achievements.NewTracker(flagPlayer, achievements.WithLogger(logger))
	}
	return tracker
}

// loadGemsConfig loads gems.yaml, falling back to defaults with a warning.
func loadGemsConfig() config.GemsConfig {
	cfg, err := config.LoadGems(flagConfig)
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", flagConfig, "error", err)
		return config.DefaultGemsConfig()
	}
	return cfg
}

// defaultGameID returns the game of the configured default difficulty.
func defaultGameID() string {
	d, err := loadGemsConfig().DefaultDifficulty()
	if err != nil {
		logger.Warn("invalid default difficulty", "error", err)
	}
	return gems.GameID(d)
}
