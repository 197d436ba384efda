package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/triplejoy/internal/achievements"
	"github.com/vovakirdan/triplejoy/internal/storage"
)

var flagResetAchievements bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievement progress",
	Long: `Print every achievement with its progress for --player.

Examples:
  triplejoy achievements
  triplejoy achievements --player alice
  triplejoy achievements --reset`,
	Args: cobra.NoArgs,
	RunE: runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVar(&flagResetAchievements, "reset", false, "Clear all progress of the player")
}

func runAchievements(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	tracker, err := achievements.NewTracker(flagPlayer,
		achievements.WithStore(store),
		achievements.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if flagResetAchievements {
		if err := tracker.ResetAll(); err != nil {
			return err
		}
		fmt.Printf("Reset achievements for %s\n", flagPlayer)
		return nil
	}

	fmt.Printf("Achievements - %s\n", tracker.Player())
	fmt.Println()

	for _, a := range tracker.Achievements() {
		mark := " "
		status := fmt.Sprintf("%d/%d", min(a.Current, a.Target), a.Target)
		if a.Unlocked {
			mark = string(a.Icon)
			status = "unlocked"
			if !a.UnlockedAt.IsZero() {
				status += " " + humanize.Time(a.UnlockedAt)
			}
		}
		fmt.Printf("  %s %-18s %-45s %s\n", mark, a.Title, a.Description, status)
	}

	fmt.Println()
	fmt.Printf("Unlocked %d of %d (%.0f%%)  Total score: %s  Levels: %d\n",
		tracker.UnlockedCount(), tracker.TotalCount(), tracker.Completion()*100,
		humanize.Comma(int64(tracker.TotalScore())), tracker.LevelsCompleted(),
	)
	return nil
}
