package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/triplejoy/internal/games/gems"
	"github.com/vovakirdan/triplejoy/internal/match3"
	"github.com/vovakirdan/triplejoy/internal/platform/tui"
	"github.com/vovakirdan/triplejoy/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [difficulty]",
	Short: "Play a game",
	Long: `Start playing at the given difficulty (easy, medium or hard, or a
game ID such as gems_hard). Without an argument the configured default
difficulty is used.

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Select a gem, then a neighbour to swap
  Mouse click  - Select or swap the clicked gem
  H            - Show a hint
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Examples:
  triplejoy play
  triplejoy play hard
  triplejoy play medium --seed 42
  triplejoy play --config ./my-gems.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// resolveGameID maps a difficulty name or game ID to a registered game.
func resolveGameID(arg string) (string, error) {
	if arg == "" {
		return defaultGameID(), nil
	}
	if registry.Exists(arg) {
		return arg, nil
	}
	d, err := match3.ParseDifficulty(strings.TrimPrefix(arg, "gems_"))
	if err != nil {
		return "", fmt.Errorf("unknown game %q, run 'triplejoy list' to see available games", arg)
	}
	return gems.GameID(d), nil
}

func runPlay(_ *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveGameID(arg)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Tracker: newTracker(store),
		Logger:  logger,
	}
	if err := tui.Run(game, store, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
