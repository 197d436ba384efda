// Package match3 implements the match-resolution and board-mutation engine
// of the gems game: board generation, run detection, swap validation,
// cascading clear/drop/refill and the session state machine.
//
// The package is pure and deterministic given its Rand. It knows nothing
// about rendering, timing sources or persistence; hosts drive it with taps
// and tick calls and consume the events it returns.
package match3

import (
	"fmt"
	"strings"
)

// MinRun is the shortest line of identical tokens that clears.
const MinRun = 3

// Token is one kind of gem. Tokens have no identity beyond their kind.
type Token uint8

const (
	Red Token = iota
	Blue
	Green
	Yellow
	Purple
	Orange
)

// PaletteSize is the number of distinct tokens.
const PaletteSize = 6

var tokenNames = [PaletteSize]string{"red", "blue", "green", "yellow", "purple", "orange"}

// String returns the lowercase token name.
func (t Token) String() string {
	if int(t) < PaletteSize {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Letter returns the single-letter code used by ParseBoard and Board.String.
func (t Token) Letter() byte {
	if int(t) < PaletteSize {
		return "RBGYPO"[t]
	}
	return '?'
}

// ParseToken decodes a single-letter token code (case-insensitive).
func ParseToken(r rune) (Token, bool) {
	i := strings.IndexRune("RBGYPO", toUpper(r))
	if i < 0 {
		return 0, false
	}
	return Token(i), true
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// Position is a 0-indexed (row, column) pair. Row 0 is the top.
type Position struct {
	Row int
	Col int
}

// Pos is a convenience constructor for Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p offset by (dr, dc).
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Adjacent reports whether a and b differ by exactly one step along exactly
// one axis. Diagonals are not adjacent.
func Adjacent(a, b Position) bool {
	return abs(a.Row-b.Row)+abs(a.Col-b.Col) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Difficulty selects grid size and time budget.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every difficulty in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is one of the defined difficulties.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// GridSize returns the board dimension for d.
func (d Difficulty) GridSize() int {
	switch d {
	case Medium:
		return 7
	case Hard:
		return 9
	default:
		return 5
	}
}

// TimeLimit returns the session time budget in seconds.
func (d Difficulty) TimeLimit() int {
	switch d {
	case Medium:
		return 180
	case Hard:
		return 240
	default:
		return 120
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// ParseDifficulty parses "easy", "medium" or "hard" (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium", "normal":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("match3: unknown difficulty %q", s)
}

// State is the session lifecycle phase.
type State int

const (
	StateSetup State = iota
	StateActive
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason says why a session ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndTimeout
	EndNoMoves
)

func (r EndReason) String() string {
	switch r {
	case EndTimeout:
		return "timeout"
	case EndNoMoves:
		return "no-moves"
	default:
		return "none"
	}
}

// Rand is the random source used for generation and refill.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

func randomToken(rng Rand, palette int) Token {
	return Token(rng.Intn(palette))
}
