package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/triplejoy/internal/platform/tui"
	"github.com/vovakirdan/triplejoy/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start TripleJoy with a difficulty picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a difficulty.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select difficulty
  Tab          - High scores
  A            - Achievements
  Q            - Quit

Examples:
  triplejoy menu
  triplejoy menu --fps 60
  triplejoy menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	tracker := newTracker(store)

	cfg := runtimeConfig()
	focus := defaultGameID()

	for {
		menu := tui.NewMenuModel(store, cfg, focus).
			WithAchievementsLabel(fmt.Sprintf("%d/%d", tracker.UnlockedCount(), tracker.TotalCount()))

		menuResult, err := tui.RunMenu(menu)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}
			continue

		case menuResult.WantsAchievements:
			goBack, err := tui.RunAchievements(tracker, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("achievements: %w", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}
		focus = menuResult.GameID

		if err := tui.Run(game, store, cfg, tui.Options{Tracker: tracker, Logger: logger}); err != nil {
			logger.Error("game ended with an error", "game", menuResult.GameID, "error", err)
		}

		// Loop back to menu
	}
}
