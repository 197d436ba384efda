package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/triplejoy/internal/achievements"
	"github.com/vovakirdan/triplejoy/internal/core"
	"github.com/vovakirdan/triplejoy/internal/registry"
	"github.com/vovakirdan/triplejoy/internal/storage"
)

// shutdownTimeout bounds how long Shutdown waits for open sessions.
const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.triplejoy/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// DefaultGameID is where the menu cursor starts.
	DefaultGameID string

	// Logger receives server logs. Defaults to stderr with a prefix.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.triplejoy/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultTickRate,
	}
}

// SSHServer wraps a Wish SSH server for TripleJoy.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "triplejoy-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath returns path, or the default key location, with its
// directory created.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".triplejoy", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	player := sshSession.User()
	logger := s.logger.With("user", player)

	var opts []achievements.Option
	opts = append(opts, achievements.WithLogger(logger))
	if s.store != nil {
		opts = append(opts, achievements.WithStore(s.store))
	}
	tracker, err := achievements.NewTracker(player, opts...)
	if err != nil {
		logger.Warn("could not load achievements", "error", err)
		tracker, _ = achievements.NewTracker(player, achievements.WithLogger(logger))
	}

	model := NewSessionModel(s.store, cfg, SessionOptions{
		Player:        player,
		Tracker:       tracker,
		Logger:        logger,
		DefaultGameID: s.config.DefaultGameID,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or the
// listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.closeStore()
		if ok {
			s.logger.Error("server error", "error", err)
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Player        string
	Tracker       *achievements.Tracker
	Logger        *log.Logger
	DefaultGameID string
}

// screen is the page a SessionModel is showing.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScoreboard
	screenAchievements
)

// SessionModel manages one player's flow: menu -> game -> menu, with the
// scoreboard and achievements reachable from the menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store        *storage.Store
	config       core.RuntimeConfig
	opts         SessionOptions
	sessionID    string
	lastGameID   string
	current      screen
	menu         MenuModel
	game         GameModel
	scoreboard   ScoreboardModel
	achievements AchievementsModel
	quitting     bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	m := SessionModel{
		store:      store,
		config:     cfg,
		opts:       opts,
		sessionID:  uuid.NewString(),
		lastGameID: opts.DefaultGameID,
	}
	m.menu = m.newMenu()
	return m
}

// SessionID identifies this session in logs.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.store, m.config, m.lastGameID)
	if t := m.opts.Tracker; t != nil {
		menu = menu.WithAchievementsLabel(fmt.Sprintf("%d/%d", t.UnlockedCount(), t.TotalCount()))
	}
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenAchievements:
		return m.updateAchievements(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch res := m.menu.result(); {
	case m.menu.Selected() != nil:
		return m.startGame(res.GameID)
	case res.WantsScoreboard:
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScoreboard
		return m, m.scoreboard.Init()
	case res.WantsAchievements:
		m.achievements = NewAchievementsModel(m.opts.Tracker, m.config.ScreenW, m.config.ScreenH)
		m.current = screenAchievements
		return m, m.achievements.Init()
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// startGame creates gameID and switches to it.
func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		m.menu = m.newMenu()
		return m, nil
	}

	m.lastGameID = gameID
	m.game = NewGameModel(game, m.store, m.config, Options{
		Tracker:  m.opts.Tracker,
		Logger:   m.opts.Logger,
		Embedded: true,
	})
	m.current = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateAchievements(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.achievements.Update(msg)
	if am, ok := newModel.(AchievementsModel); ok {
		m.achievements = am
	}

	switch {
	case m.achievements.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.achievements.IsGoingBack():
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.current = screenMenu
	m.menu = m.newMenu()
}

// Current reports which page is showing.
func (m SessionModel) Current() string {
	switch m.current {
	case screenGame:
		return "game"
	case screenScoreboard:
		return "scoreboard"
	case screenAchievements:
		return "achievements"
	default:
		return "menu"
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	case screenAchievements:
		return m.achievements.View()
	default:
		return m.menu.View()
	}
}
