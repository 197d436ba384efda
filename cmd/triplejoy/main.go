// triplejoy is a match-three gem game for the terminal.
//
// Usage:
//
//	triplejoy list                  - List available difficulties
//	triplejoy play [difficulty]     - Play a game
//	triplejoy menu                  - Start menu to pick a difficulty interactively
//	triplejoy serve                 - Start SSH server for remote play
//	triplejoy scores <game>         - Show high scores for a game
//	triplejoy achievements          - Show achievement progress
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.triplejoy/scores.db)
//	--config <path>     - Use a custom gems.yaml
//	--player <name>     - Name achievements are saved under
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/triplejoy/internal/games/gems"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPlayer   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "triplejoy",
	Short: "TripleJoy - match gems in your terminal",
	Long: `TripleJoy is a timed match-three game for the terminal.

Swap neighbouring gems to line up three or more of a kind. Cleared gems
score points, the gems above fall and new ones drop in. The round ends
when the clock runs out or no swap can make a match.

Available commands:
  list          - Show all difficulties
  play          - Play a difficulty directly
  menu          - Interactive difficulty picker
  serve         - Start SSH server for remote play
  scores        - View high scores
  achievements  - View or reset achievement progress

Examples:
  triplejoy play
  triplejoy play hard --seed 42
  triplejoy menu
  triplejoy serve --ssh :2222
  triplejoy scores gems_easy`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gems.yaml")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name for achievements")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(achievementsCmd)
}
