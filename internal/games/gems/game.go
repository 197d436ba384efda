// Package gems is the tile-matching game: a match3.Session driven by the
// platform's fixed-tick loop, with a keyboard cursor, mouse taps and a short
// animation of each cascade step.
package gems

import (
	"github.com/vovakirdan/triplejoy/internal/config"
	"github.com/vovakirdan/triplejoy/internal/core"
	"github.com/vovakirdan/triplejoy/internal/match3"
	"github.com/vovakirdan/triplejoy/internal/registry"
)

const hintSeconds = 2

// Game implements registry.Game for one difficulty.
type Game struct {
	difficulty match3.Difficulty
	cfg        config.GemsConfig
	session    *match3.Session
	observer   match3.Observer
	seed       int64
	err        error // Last engine error, shown in the HUD

	tick        uint64
	tickRate    int
	secondTicks int // Simulation ticks since the last engine Tick

	cursor    match3.Position
	hint      *match3.Move
	hintTicks int
	anim      *animation

	screenW  int
	screenH  int
	tooSmall bool
}

// Package-level variables for config
var (
	configPath string
)

// SetConfigPath sets a custom gems.yaml path used by subsequent Resets.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a gems game for d.
func New(d match3.Difficulty) *Game {
	return &Game{
		difficulty: d,
		cfg:        config.DefaultGemsConfig(),
	}
}

func init() {
	for _, d := range match3.Difficulties() {
		registry.Register(GameID(d), func() registry.Game {
			return New(d)
		})
	}
}

// GameID returns the registry ID for d, e.g. "gems_easy".
func GameID(d match3.Difficulty) string {
	return "gems_" + config.PresetFor(d).Name
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.difficulty)
}

// Title returns the display name.
func (g *Game) Title() string {
	return "TripleJoy (" + g.difficulty.String() + ")"
}

// Difficulty returns the game difficulty.
func (g *Game) Difficulty() match3.Difficulty {
	return g.difficulty
}

// Rank lists the gems games in difficulty order.
func (g *Game) Rank() int {
	return int(g.difficulty)
}

// SetObserver forwards every engine event to o. It may be called before or
// after Reset.
func (g *Game) SetObserver(o match3.Observer) {
	g.observer = o
}

func (g *Game) forward(e match3.Event) {
	if g.observer != nil {
		g.observer.Observe(e)
	}
}

// Reset initializes/restarts the game. Calling it again with the same seed
// deals a fresh board from the same random stream.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if loaded, err := config.LoadGems(configPath); err == nil {
		g.cfg = loaded
	} else {
		g.cfg = config.DefaultGemsConfig()
	}

	g.tickRate = cfg.Rate()
	g.tick = 0
	g.secondTicks = 0
	g.cursor = match3.Pos(0, 0)
	g.hint = nil
	g.hintTicks = 0
	g.anim = nil
	g.err = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	if g.session != nil && g.seed == cfg.Seed && g.session.Rules() == g.cfg.EngineRules() {
		if _, err := g.session.Reset(); err != nil {
			g.err = err
		}
		return
	}

	g.seed = cfg.Seed
	s, err := match3.NewSession(g.difficulty,
		match3.WithSeed(cfg.Seed),
		match3.WithRules(g.cfg.EngineRules()),
		match3.WithObserver(match3.ObserverFunc(g.forward)),
	)
	if err != nil {
		g.session = nil
		g.err = err
		return
	}
	g.session = s
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := minScreen(g.difficulty.GridSize())
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	g.stepAnimation()

	if g.session.State() == match3.StateEnded {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.session.State() == match3.StatePaused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	if g.session.State() == match3.StateEnded {
		return core.StepResult{State: g.State()}
	}
	g.stepClock()

	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) togglePause() {
	var err error
	if g.session.State() == match3.StatePaused {
		_, err = g.session.Resume()
	} else {
		_, err = g.session.Pause()
	}
	if err != nil {
		g.err = err
	}
}

// handleInput moves the cursor and forwards taps to the engine.
func (g *Game) handleInput(in core.InputFrame) {
	n := g.difficulty.GridSize()

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, n-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, n-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, n-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, n-1)
	}

	if in.Has(core.ActionHint) {
		if m, ok := g.session.Hint(); ok {
			g.hint = &m
			g.hintTicks = g.tickRate * hintSeconds
		}
	}

	if in.Click != nil {
		if p, ok := layoutFor(g.screenW, n).cellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = p
			g.tap(p)
		}
		return
	}

	if in.Has(core.ActionSelect) {
		g.tap(g.cursor)
	}
}

// tap selects or swaps at p and starts the cascade animation.
func (g *Game) tap(p match3.Position) {
	before := g.session.Snapshot().Board

	out, err := g.session.SelectOrSwap(p)
	if err != nil {
		g.err = err
		return
	}
	g.err = nil
	if out.Kind != match3.OutcomeSwapped || out.Swap == nil {
		return
	}

	g.hint = nil
	g.hintTicks = 0

	before.Swap(out.Swap.Move.From, out.Swap.Move.To)
	g.anim = newAnimation(before, out.Swap.Steps, g.cfg.Animation.StepTicks)
	if g.anim != nil && g.session.State() == match3.StateActive {
		g.session.SetBusy(true)
	}
}

// stepAnimation advances the cascade animation and releases the engine when
// it finishes.
func (g *Game) stepAnimation() {
	if g.anim == nil {
		return
	}
	if g.anim.advance() {
		return
	}
	g.anim = nil
	g.session.SetBusy(false)
}

// stepClock sends one engine Tick per second of simulation.
func (g *Game) stepClock() {
	g.secondTicks++
	if g.secondTicks < g.tickRate {
		return
	}
	g.secondTicks = 0
	if _, err := g.session.Tick(1); err != nil {
		g.err = err
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.tooSmall}
	}

	gs := g.session.GameState()
	state := core.GameState{
		Score:  gs.Score,
		Paused: gs.Paused || g.tooSmall,
	}
	if g.session.State() == match3.StateEnded {
		state.GameOver = true
		state.Reason = g.session.EndReason().String()
	}
	return state
}

// Stats returns the engine counters of the current session.
func (g *Game) Stats() match3.GameState {
	if g.session == nil {
		return match3.GameState{Difficulty: g.difficulty}
	}
	return g.session.GameState()
}
