package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/triplejoy/internal/achievements"
	"github.com/vovakirdan/triplejoy/internal/core"
	"github.com/vovakirdan/triplejoy/internal/match3"
	"github.com/vovakirdan/triplejoy/internal/registry"
	"github.com/vovakirdan/triplejoy/internal/storage"
)

// toastSeconds is how long an achievement notice stays on screen.
const toastSeconds = 3

// Options tunes a GameModel beyond the runtime config.
type Options struct {
	// Tracker receives every engine event of the game, when set.
	Tracker *achievements.Tracker

	// Logger reports storage failures. Defaults to a discarding logger.
	Logger *log.Logger

	// Embedded makes B return to the caller instead of doing nothing.
	Embedded bool
}

// observable is implemented by games that publish engine events.
type observable interface {
	SetObserver(o match3.Observer)
}

type toast struct {
	text  string
	ticks int
}

// GameModel is the Bubble Tea model for running one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      string
	reseed     bool // Pick a new seed on restart
	toasts     []toast
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	reseed := cfg.Seed == 0
	// Use time-based seed if not specified
	if reseed {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.TickRate = cfg.Rate()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	if o, ok := game.(observable); ok && opts.Tracker != nil {
		o.SetObserver(opts.Tracker)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		runID:      uuid.NewString(),
		reseed:     reseed,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)

	// Start the tick loop
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when nothing is running
	if m.inputFrame.Has(core.ActionBack) && m.opts.Embedded && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize restart at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.collectToasts()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config)
}

func (m *GameModel) restart() {
	if m.reseed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runID = uuid.NewString()
	m.scoreSaved = false
	m.inputFrame.Clear()
}

// saveScore records the finished run. Failures are logged and play goes on.
func (m *GameModel) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Reason: m.gameState.Reason,
		RunID:  m.runID,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// collectToasts ages the visible notices and adds newly unlocked achievements.
func (m *GameModel) collectToasts() {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		t.ticks--
		if t.ticks > 0 {
			kept = append(kept, t)
		}
	}
	m.toasts = kept

	if m.opts.Tracker == nil {
		return
	}
	for _, a := range m.opts.Tracker.Drain() {
		m.toasts = append(m.toasts, toast{
			text:  fmt.Sprintf("%c Achievement unlocked: %s", a.Icon, a.Title),
			ticks: m.config.Ticks(toastSeconds),
		})
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".triplejoy", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)

	// Newest notice sits on the bottom row
	for i, t := range m.toasts {
		y := m.screen.Height() - len(m.toasts) + i
		if y >= 0 {
			m.screen.DrawTextCentered(y, t.text, core.ColorBrightYellow)
		}
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state seen on the last tick.
func (m GameModel) GameState() core.GameState {
	return m.gameState
}

// Run starts a Bubble Tea program for game and blocks until it exits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks tap cells
	)

	_, err := p.Run()
	return err
}
