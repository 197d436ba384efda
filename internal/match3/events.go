package match3

// Event is a state change emitted by a Session. Every mutating call returns
// the events it produced, in order, and also hands them to the session's
// Observer if one is set.
type Event interface {
	event()
}

// Observer receives session events as they happen.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// SelectionChanged is emitted whenever the highlighted cell changes.
// Selection is nil when nothing is selected.
type SelectionChanged struct {
	Selection *Position
}

func (SelectionChanged) event() {}

// Swapped is emitted when two adjacent tokens are exchanged.
type Swapped struct {
	From Position
	To   Position
}

func (Swapped) event() {}

// Matched is emitted once per cascade step.
type Matched struct {
	Step       int // 0 for the runs made by the swap itself
	Positions  []Position
	Runs       []Run
	ScoreDelta int
}

func (Matched) event() {}

// Settled is emitted after a swap has fully resolved.
type Settled struct {
	ScoreDelta int
	Score      int
	Steps      int
	Board      *Board
}

func (Settled) event() {}

// TimeChanged is emitted when the countdown moves.
type TimeChanged struct {
	Remaining int
}

func (TimeChanged) event() {}

// Paused is emitted when the session is paused.
type Paused struct{}

func (Paused) event() {}

// Resumed is emitted when a paused session resumes.
type Resumed struct{}

func (Resumed) event() {}

// LevelComplete is emitted before GameOver when the session ends because no
// legal move is left.
type LevelComplete struct {
	Difficulty Difficulty
	Level      int
	Score      int
	Elapsed    int // Seconds played
	Pauses     int
}

func (LevelComplete) event() {}

// GameOver is emitted once when the session reaches Ended.
type GameOver struct {
	Difficulty Difficulty
	Reason     EndReason
	Score      int
	Elapsed    int
}

func (GameOver) event() {}

// SessionReset is emitted when a session (re)enters Active with a fresh
// board.
type SessionReset struct {
	Difficulty Difficulty
	TimeLimit  int
}

func (SessionReset) event() {}
