// Package tui provides the Bubble Tea integration for TripleJoy.
// It handles the terminal UI loop, input mapping, the menu and scoreboard
// screens, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/triplejoy/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at the rate in cfg.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.Interval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
