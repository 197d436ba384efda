package gems

import "github.com/vovakirdan/triplejoy/internal/match3"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateTimeUp      GameStateType = "time_up"
	StateNoMoves     GameStateType = "no_moves"
	StatePausedSmall GameStateType = "paused_small_window"
	StateBroken      GameStateType = "broken" // Session could not start
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick          uint64
	Difficulty    match3.Difficulty
	Score         int
	TimeRemaining int
	Level         int
	Board         *match3.Board
	Cursor        match3.Position
	Selection     *match3.Position
	Hint          *match3.Move
	State         GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		Difficulty: g.difficulty,
		Cursor:     g.cursor,
		Hint:       g.hint,
	}
	if g.session == nil {
		snap.State = StateBroken
		return snap
	}

	s := g.session.Snapshot()
	snap.Score = s.Score
	snap.TimeRemaining = s.TimeRemaining
	snap.Level = s.Level
	snap.Board = s.Board
	snap.Selection = s.Selection

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case s.EndReason == match3.EndTimeout:
		snap.State = StateTimeUp
	case s.EndReason == match3.EndNoMoves:
		snap.State = StateNoMoves
	case s.Paused:
		snap.State = StatePaused
	case g.anim != nil:
		snap.State = StateAnimating
	default:
		snap.State = StatePlaying
	}
	return snap
}
