package match3

import (
	"fmt"
	"math/rand"
)

// GameState holds the counters of a session.
type GameState struct {
	Score         int
	TimeRemaining int
	Level         int
	Difficulty    Difficulty
	Active        bool // Started and not ended; true while paused
	Paused        bool
	Elapsed       int // Seconds ticked while active
	Pauses        int
	Swaps         int
	GemsCleared   int
}

// OutcomeKind classifies the result of SelectOrSwap.
type OutcomeKind int

const (
	OutcomeIgnored    OutcomeKind = iota // Paused or busy; nothing changed
	OutcomeSelected                      // First cell selected
	OutcomeDeselected                    // Selected cell tapped again
	OutcomeMoved                         // Selection moved to a non-adjacent cell
	OutcomeSwapped                       // Adjacent swap performed and resolved
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeMoved:
		return "moved"
	case OutcomeSwapped:
		return "swapped"
	default:
		return "unknown"
	}
}

// SwapResult describes a resolved swap.
type SwapResult struct {
	Move       Move
	ScoreDelta int
	Board      *Board     // Settled board (copy)
	Matched    []Position // Every cleared cell over the cascade
	Steps      []CascadeStep
}

// Outcome is returned by SelectOrSwap.
type Outcome struct {
	Kind      OutcomeKind
	Selection *Position
	Swap      *SwapResult // Set when Kind == OutcomeSwapped
	Events    []Event
}

// TickResult is returned by Tick.
type TickResult struct {
	TimeRemaining int
	EndReason     EndReason // EndTimeout if this tick ended the session
	Events        []Event
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Board         *Board
	Score         int
	TimeRemaining int
	Level         int
	Difficulty    Difficulty
	State         State
	Active        bool
	Paused        bool
	Busy          bool
	Selection     *Position
	EndReason     EndReason
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source for generation and refill.
func WithRand(r Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithSeed uses a math/rand source seeded with seed.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRules overrides DefaultRules.
func WithRules(r Rules) Option {
	return func(s *Session) {
		s.rules = r
	}
}

// WithBoard deals a clone of b instead of a generated board when the
// session starts. Later resets generate as usual. b must match the
// difficulty's grid size and hold no run.
func WithBoard(b *Board) Option {
	return func(s *Session) {
		s.initial = b.Clone()
	}
}

// WithObserver publishes every event to o as well as returning it.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// globalRand draws from the auto-seeded math/rand top-level source.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// Session is the game controller: it owns the board and the game state and
// runs the Setup → Active ⇄ Paused → Ended state machine.
//
// A Session is not safe for concurrent use. Every call runs to completion,
// including a full cascade, before returning.
type Session struct {
	difficulty Difficulty
	rules      Rules
	rng        Rand
	observer   Observer
	initial    *Board

	board     *Board
	state     State
	game      GameState
	selection *Position
	busy      bool
	endReason EndReason
}

// NewSession generates a board for d and starts the session.
func NewSession(d Difficulty, opts ...Option) (*Session, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: difficulty %d", ErrInvalidRules, d)
	}

	s := &Session{
		difficulty: d,
		rules:      DefaultRules(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = globalRand{}
	}
	if err := s.rules.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.setup(); err != nil {
		return nil, err
	}
	return s, nil
}

// setup generates a fresh board, zeroes the counters and enters Active.
func (s *Session) setup() ([]Event, error) {
	s.state = StateSetup
	s.selection = nil
	s.busy = false
	s.endReason = EndNone

	board, err := s.deal()
	if err != nil {
		return nil, err
	}

	s.board = board
	s.game = GameState{
		TimeRemaining: s.difficulty.TimeLimit(),
		Level:         1,
		Difficulty:    s.difficulty,
	}
	s.state = StateActive

	var evs []Event
	s.emit(&evs, SessionReset{Difficulty: s.difficulty, TimeLimit: s.game.TimeRemaining})
	return evs, nil
}

// deal returns the board for a new round: the WithBoard fixture on the
// first setup, a generated board afterwards.
func (s *Session) deal() (*Board, error) {
	n := s.difficulty.GridSize()
	if s.initial == nil {
		return Generate(n, s.rng, s.rules)
	}

	b := s.initial
	s.initial = nil
	if b.Size() != n {
		return nil, fmt.Errorf("%w: board size %d, want %d", ErrInvalidRules, b.Size(), n)
	}
	if FindMatches(b).Len() > 0 {
		return nil, fmt.Errorf("%w: initial board holds a run", ErrInvalidRules)
	}
	return b, nil
}

func (s *Session) emit(evs *[]Event, e Event) {
	*evs = append(*evs, e)
	if s.observer != nil {
		s.observer.Observe(e)
	}
}

// SelectOrSwap handles a tap on p.
//
// With no selection p becomes selected. Tapping the selected cell clears
// the selection. Tapping a cell adjacent to the selection swaps the two and
// resolves the cascade; the selection is cleared whether or not anything
// matched. Tapping any other cell moves the selection there.
//
// Taps while paused or busy are ignored. p outside the board is a
// *PreconditionError; a session that is not running returns ErrNotActive.
func (s *Session) SelectOrSwap(p Position) (Outcome, error) {
	if s.state != StateActive && s.state != StatePaused {
		return Outcome{}, ErrNotActive
	}
	if !s.board.InBounds(p) {
		return Outcome{}, outOfBounds("select", p)
	}
	if s.state == StatePaused || s.busy {
		return Outcome{Kind: OutcomeIgnored, Selection: s.Selection()}, nil
	}

	var evs []Event
	switch {
	case s.selection == nil:
		s.setSelection(&evs, &p)
		return Outcome{Kind: OutcomeSelected, Selection: s.Selection(), Events: evs}, nil

	case *s.selection == p:
		s.setSelection(&evs, nil)
		return Outcome{Kind: OutcomeDeselected, Events: evs}, nil

	case Adjacent(*s.selection, p):
		from := *s.selection
		s.setSelection(&evs, nil)
		result, err := s.swap(&evs, from, p)
		if err != nil {
			return Outcome{Kind: OutcomeSwapped, Events: evs}, err
		}
		return Outcome{Kind: OutcomeSwapped, Swap: result, Events: evs}, nil

	default:
		s.setSelection(&evs, &p)
		return Outcome{Kind: OutcomeMoved, Selection: s.Selection(), Events: evs}, nil
	}
}

func (s *Session) setSelection(evs *[]Event, p *Position) {
	if p == nil {
		s.selection = nil
		s.emit(evs, SelectionChanged{})
		return
	}
	sel := *p
	s.selection = &sel
	out := sel
	s.emit(evs, SelectionChanged{Selection: &out})
}

func (s *Session) swap(evs *[]Event, a, c Position) (*SwapResult, error) {
	before := s.board.Clone()
	res, err := Resolve(s.board, a, c, s.rng, s.rules)
	if err != nil {
		// Restore the pre-swap board
		s.board = before
		return nil, err
	}

	s.game.Swaps++
	s.game.Score += res.ScoreDelta
	s.game.GemsCleared += res.Cleared()

	s.emit(evs, Swapped{From: a, To: c})
	for i, step := range res.Steps {
		s.emit(evs, Matched{
			Step:       i,
			Positions:  step.Matched,
			Runs:       step.Runs,
			ScoreDelta: step.ScoreDelta,
		})
	}
	s.emit(evs, Settled{
		ScoreDelta: res.ScoreDelta,
		Score:      s.game.Score,
		Steps:      len(res.Steps),
		Board:      s.board.Clone(),
	})

	if res.NoMovesLeft {
		s.end(evs, EndNoMoves)
	}

	return &SwapResult{
		Move:       Move{From: a, To: c},
		ScoreDelta: res.ScoreDelta,
		Board:      s.board.Clone(),
		Matched:    res.Matched,
		Steps:      res.Steps,
	}, nil
}

func (s *Session) end(evs *[]Event, reason EndReason) {
	s.state = StateEnded
	s.endReason = reason
	s.selection = nil
	s.busy = false

	if reason == EndNoMoves {
		s.emit(evs, LevelComplete{
			Difficulty: s.difficulty,
			Level:      s.game.Level,
			Score:      s.game.Score,
			Elapsed:    s.game.Elapsed,
			Pauses:     s.game.Pauses,
		})
	}
	s.emit(evs, GameOver{
		Difficulty: s.difficulty,
		Reason:     reason,
		Score:      s.game.Score,
		Elapsed:    s.game.Elapsed,
	})
}

// Tick advances the countdown by delta seconds. Paused sessions do not
// count down. The tick that brings the time to zero ends the session with
// EndTimeout.
func (s *Session) Tick(delta int) (TickResult, error) {
	if delta < 0 {
		return TickResult{}, &PreconditionError{Op: "tick", Err: fmt.Errorf("%w: %d", ErrNegativeTick, delta)}
	}
	if s.state != StateActive && s.state != StatePaused {
		return TickResult{TimeRemaining: s.game.TimeRemaining, EndReason: s.endReason}, ErrNotActive
	}
	if s.state == StatePaused || delta == 0 {
		return TickResult{TimeRemaining: s.game.TimeRemaining}, nil
	}

	step := min(delta, s.game.TimeRemaining)
	s.game.TimeRemaining -= step
	s.game.Elapsed += step

	var evs []Event
	s.emit(&evs, TimeChanged{Remaining: s.game.TimeRemaining})

	result := TickResult{TimeRemaining: s.game.TimeRemaining}
	if s.game.TimeRemaining == 0 {
		s.end(&evs, EndTimeout)
		result.EndReason = EndTimeout
	}
	result.Events = evs
	return result, nil
}

// Pause freezes the countdown and input. Pausing a paused session does
// nothing.
func (s *Session) Pause() ([]Event, error) {
	switch s.state {
	case StatePaused:
		return nil, nil
	case StateActive:
	default:
		return nil, ErrNotActive
	}

	s.state = StatePaused
	s.game.Pauses++
	var evs []Event
	s.emit(&evs, Paused{})
	return evs, nil
}

// Resume continues a paused session. Resuming a running session does
// nothing.
func (s *Session) Resume() ([]Event, error) {
	switch s.state {
	case StateActive:
		return nil, nil
	case StatePaused:
	default:
		return nil, ErrNotActive
	}

	s.state = StateActive
	var evs []Event
	s.emit(&evs, Resumed{})
	return evs, nil
}

// Reset discards the current game and starts a new one with a fresh board.
// It is accepted in every state.
func (s *Session) Reset() ([]Event, error) {
	return s.setup()
}

// SetBusy marks the session as busy while the host presents a resolution.
// Taps are ignored until it is cleared.
func (s *Session) SetBusy(busy bool) {
	s.busy = busy
}

// Busy reports the host busy flag.
func (s *Session) Busy() bool {
	return s.busy
}

// State returns the lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// EndReason returns why the session ended, or EndNone.
func (s *Session) EndReason() EndReason {
	return s.endReason
}

// Difficulty returns the session difficulty.
func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// Rules returns the rules in effect.
func (s *Session) Rules() Rules {
	return s.rules
}

// Selection returns a copy of the selected position, or nil.
func (s *Session) Selection() *Position {
	if s.selection == nil {
		return nil
	}
	p := *s.selection
	return &p
}

// GameState returns the current counters.
func (s *Session) GameState() GameState {
	gs := s.game
	gs.Active = s.state == StateActive || s.state == StatePaused
	gs.Paused = s.state == StatePaused
	return gs
}

// Token returns the token at p.
func (s *Session) Token(p Position) Token {
	return s.board.Get(p)
}

// Hint returns a legal move on the current board.
func (s *Session) Hint() (Move, bool) {
	if s.state != StateActive {
		return Move{}, false
	}
	moves := LegalMoves(s.board)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[0], true
}

// Snapshot returns a copy of everything a renderer needs.
func (s *Session) Snapshot() Snapshot {
	gs := s.GameState()
	return Snapshot{
		Board:         s.board.Clone(),
		Score:         gs.Score,
		TimeRemaining: gs.TimeRemaining,
		Level:         gs.Level,
		Difficulty:    s.difficulty,
		State:         s.state,
		Active:        gs.Active,
		Paused:        gs.Paused,
		Busy:          s.busy,
		Selection:     s.Selection(),
		EndReason:     s.endReason,
	}
}
