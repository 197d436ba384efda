package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/triplejoy/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"w up", runeKey("w"), core.ActionUp, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s down", runeKey("s"), core.ActionDown, false},
		{"a left", runeKey("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space taps", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, false},
		{"enter taps", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"h hint", runeKey("h"), core.ActionHint, false},
		{"p pause", runeKey("p"), core.ActionPause, false},
		{"esc pause", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause, false},
		{"b back", runeKey("b"), core.ActionBack, false},
		{"r restart", runeKey("r"), core.ActionRestart, false},
		{"x nothing", runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("d"), &frame) {
		t.Fatal("d should not quit")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("frame should hold Right")
	}

	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is reported, not queued")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name  string
		msg   tea.MouseMsg
		click bool
	}{
		{"left press", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"left release", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false},
		{"right press", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false},
		{"motion", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionMotion}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			got := km.MapMouseToFrame(tt.msg, &frame)
			if got != tt.click {
				t.Fatalf("MapMouseToFrame() = %v, want %v", got, tt.click)
			}
			if tt.click && (frame.Click == nil || frame.Click.X != 4 || frame.Click.Y != 7) {
				t.Errorf("Click = %+v, want (4,7)", frame.Click)
			}
			if !tt.click && frame.Click != nil {
				t.Errorf("unexpected click %+v", frame.Click)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("a"), MenuActionAchievements},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
