package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/triplejoy/internal/registry"
	"github.com/vovakirdan/triplejoy/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game or difficulty.

Examples:
  triplejoy scores gems_easy
  triplejoy scores hard --limit 20
  triplejoy scores medium --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := resolveGameID(args[0])
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'triplejoy play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Ended", "When")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n",
			humanize.Ordinal(i+1),
			humanize.Comma(int64(entry.Score)),
			endedLabel(entry.Reason),
			humanize.Time(entry.CreatedAt),
		)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %s  Runs: %s  Average: %.0f  Cleared boards: %d\n",
			humanize.Comma(int64(stats.HighScore)),
			humanize.Comma(int64(stats.GamesCount)),
			stats.AvgScore,
			stats.Completed,
		)
	}
	return nil
}

// endedLabel describes a stored end reason.
func endedLabel(reason string) string {
	switch reason {
	case "timeout":
		return "time up"
	case "no-moves":
		return "cleared"
	default:
		return "-"
	}
}
