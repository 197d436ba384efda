package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/triplejoy/internal/achievements"
)

const progressBarWidth = 20

// AchievementsKeyMap defines the key bindings for the achievements screen.
type AchievementsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k AchievementsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k AchievementsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultAchievementsKeyMap returns default key bindings.
func DefaultAchievementsKeyMap() AchievementsKeyMap {
	return AchievementsKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("up/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("down/j", "down")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// AchievementsModel lists a player's achievements with their progress.
type AchievementsModel struct {
	tracker   *achievements.Tracker
	items     []achievements.Achievement
	cursor    int
	keys      AchievementsKeyMap
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewAchievementsModel creates the achievements screen for tracker.
func NewAchievementsModel(tracker *achievements.Tracker, width, height int) AchievementsModel {
	m := AchievementsModel{
		tracker: tracker,
		keys:    DefaultAchievementsKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	if tracker != nil {
		m.items = tracker.Achievements()
	}
	m.help.Width = width
	return m
}

// Init initializes the model.
func (m AchievementsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the achievements screen.
func (m AchievementsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the achievements screen.
func (m AchievementsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	unlockedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	activeStyle := lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("57"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("ACHIEVEMENTS"), m.width))
	b.WriteString("\n\n")

	if m.tracker == nil {
		b.WriteString(centerText(dimStyle.Render("Achievements are not being tracked."), m.width))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.help.View(m.keys)))
		return b.String()
	}

	summary := fmt.Sprintf("%s  |  %d/%d unlocked (%.0f%%)  |  total score %s  |  %d levels",
		m.tracker.Player(),
		m.tracker.UnlockedCount(), m.tracker.TotalCount(), m.tracker.Completion()*100,
		humanize.Comma(int64(m.tracker.TotalScore())),
		m.tracker.LevelsCompleted(),
	)
	b.WriteString(centerText(dimStyle.Render(summary), m.width))
	b.WriteString("\n\n")

	for i, a := range m.items {
		line := achievementLine(a)
		switch {
		case i == m.cursor:
			line = activeStyle.Render(line)
		case a.Unlocked:
			line = unlockedStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(achievementDetail(m.items[m.cursor])), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// achievementLine renders "★ Title  [####------]  3/5".
func achievementLine(a achievements.Achievement) string {
	icon := a.Icon
	if !a.Unlocked {
		icon = '·'
	}
	return fmt.Sprintf("%c %-18s %s %s",
		icon, a.Title, progressBar(a.Fraction(), progressBarWidth), progressCount(a))
}

func progressCount(a achievements.Achievement) string {
	current := a.Current
	if current > a.Target {
		current = a.Target
	}
	return fmt.Sprintf("%d/%d", current, a.Target)
}

// achievementDetail describes the achievement under the cursor.
func achievementDetail(a achievements.Achievement) string {
	if a.Unlocked && !a.UnlockedAt.IsZero() {
		return fmt.Sprintf("%s (unlocked %s)", a.Description, humanize.Time(a.UnlockedAt))
	}
	return a.Description
}

// progressBar renders fraction f of width cells.
func progressBar(f float64, width int) string {
	filled := int(f * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// IsGoingBack returns true if user wants to go back to menu.
func (m AchievementsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m AchievementsModel) IsQuitting() bool {
	return m.quitting
}

// RunAchievements runs the achievements screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunAchievements(tracker *achievements.Tracker, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewAchievementsModel(tracker, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(AchievementsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
