package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/triplejoy/internal/config"
	"github.com/vovakirdan/triplejoy/internal/games/gems"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all difficulties",
	Long:  `Shows every registered game with its grid size and time limit.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	presets := config.Presets()

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if n := len(gems.GameID(p.Difficulty)); n > maxIDLen {
			maxIDLen = n
		}
	}

	fmt.Printf("  %-*s  %-8s  %-5s  %s\n", maxIDLen, "ID", "Level", "Grid", "Time")
	fmt.Printf("  %-*s  %-8s  %-5s  %s\n", maxIDLen, "--", "-----", "----", "----")

	for _, p := range presets {
		grid := fmt.Sprintf("%dx%d", p.GridSize, p.GridSize)
		fmt.Printf("  %-*s  %-8s  %-5s  %d:%02d\n",
			maxIDLen, gems.GameID(p.Difficulty), p.Difficulty, grid, p.TimeLimit/60, p.TimeLimit%60)
	}

	fmt.Println()
	fmt.Println("Run 'triplejoy play <difficulty>' to play.")
}
