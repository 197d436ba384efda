package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/triplejoy/internal/achievements"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	tracker, err := achievements.NewTracker("tester")
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}
	return NewSessionModel(openStore(t), testConfig(), SessionOptions{
		Player:        "tester",
		Tracker:       tracker,
		DefaultGameID: "gems_medium",
	})
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(t)
	if m.Current() != "menu" {
		t.Fatalf("Current() = %q, want menu", m.Current())
	}
	if m.SessionID() == "" {
		t.Error("session should have an ID")
	}

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Current() != "game" {
		t.Fatalf("Current() = %q, want game", m.Current())
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if m.game.game.ID() != "gems_medium" {
		t.Errorf("started %q, want gems_medium", m.game.game.ID())
	}

	// Pause, then B returns to the menu
	m, _ = updateSession(t, m, runeKey("p"))
	m, _ = updateSession(t, m, TickMsg{})
	m, _ = updateSession(t, m, runeKey("b"))
	if m.Current() != "menu" {
		t.Fatalf("Current() = %q, want menu after back", m.Current())
	}
	if m.quitting {
		t.Error("back must not end the session")
	}
	if m.menu.Items()[m.menu.cursor].GameID != "gems_medium" {
		t.Error("menu should focus the last played game")
	}
}

func TestSessionScoreboardAndAchievements(t *testing.T) {
	m := newTestSession(t)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Current() != "scoreboard" {
		t.Fatalf("Current() = %q, want scoreboard", m.Current())
	}
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.Current() != "menu" {
		t.Fatalf("Current() = %q, want menu", m.Current())
	}

	m, _ = updateSession(t, m, runeKey("a"))
	if m.Current() != "achievements" {
		t.Fatalf("Current() = %q, want achievements", m.Current())
	}
	m, _ = updateSession(t, m, runeKey("b"))
	if m.Current() != "menu" {
		t.Fatalf("Current() = %q, want menu", m.Current())
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := newTestSession(t)
	m, cmd := updateSession(t, m, runeKey("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := newTestSession(t)
	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.game.config.ScreenW != 100 || m.game.config.ScreenH != 40 {
		t.Errorf("game config = %dx%d, want 100x40", m.game.config.ScreenW, m.game.config.ScreenH)
	}
}
