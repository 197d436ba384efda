package match3

import (
	"fmt"
	"strings"
)

// Cell is one grid square. Matched is only set between detection and refill
// inside a resolution step.
type Cell struct {
	Token   Token
	Matched bool
}

// Board is a square grid of cells stored row-major: index = row*size + col.
// Accessing a position outside the board panics with a *PreconditionError.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard returns a size×size board filled with Red.
func NewBoard(size int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("match3: board size %d", size))
	}
	return &Board{size: size, cells: make([]Cell, size*size)}
}

// NewBoardFromTokens builds a board from rows of tokens. Rows must form a
// square.
func NewBoardFromTokens(rows [][]Token) (*Board, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrInvalidRules)
	}
	b := NewBoard(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidRules, r, len(row), n)
		}
		for c, t := range row {
			if int(t) >= PaletteSize {
				return nil, fmt.Errorf("%w: token %d at (%d,%d)", ErrInvalidRules, t, r, c)
			}
			b.cells[r*n+c].Token = t
		}
	}
	return b, nil
}

// ParseBoard builds a board from whitespace-separated rows of token letters,
// e.g. "RGB BGR GRB".
func ParseBoard(s string) (*Board, error) {
	fields := strings.Fields(s)
	rows := make([][]Token, len(fields))
	for r, f := range fields {
		rows[r] = make([]Token, 0, len(f))
		for _, ch := range f {
			t, ok := ParseToken(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown token %q in row %d", ErrInvalidRules, ch, r)
			}
			rows[r] = append(rows[r], t)
		}
	}
	return NewBoardFromTokens(rows)
}

// MustParseBoard is ParseBoard that panics on error.
func MustParseBoard(s string) *Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

func (b *Board) index(op string, p Position) int {
	if !b.InBounds(p) {
		panic(outOfBounds(op, p))
	}
	return p.Row*b.size + p.Col
}

// Get returns the token at p.
func (b *Board) Get(p Position) Token {
	return b.cells[b.index("get", p)].Token
}

// Set places t at p and clears its matched flag.
func (b *Board) Set(p Position, t Token) {
	b.cells[b.index("set", p)] = Cell{Token: t}
}

// Cell returns the full cell at p.
func (b *Board) Cell(p Position) Cell {
	return b.cells[b.index("cell", p)]
}

func (b *Board) mark(p Position) {
	b.cells[b.index("mark", p)].Matched = true
}

// Swap exchanges the tokens at a and c.
func (b *Board) Swap(a, c Position) {
	i, j := b.index("swap", a), b.index("swap", c)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether both boards have the same size and tokens.
// Matched flags are ignored.
func (b *Board) Equal(o *Board) bool {
	if o == nil || b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i].Token != o.cells[i].Token {
			return false
		}
	}
	return true
}

// Tokens returns the tokens as rows.
func (b *Board) Tokens() [][]Token {
	rows := make([][]Token, b.size)
	for r := range rows {
		rows[r] = make([]Token, b.size)
		for c := range rows[r] {
			rows[r][c] = b.cells[r*b.size+c].Token
		}
	}
	return rows
}

// String returns the board as space-separated rows of token letters, the
// format accepted by ParseBoard.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.size * (b.size + 1))
	for r := 0; r < b.size; r++ {
		if r > 0 {
			sb.WriteByte(' ')
		}
		for c := 0; c < b.size; c++ {
			sb.WriteByte(b.cells[r*b.size+c].Token.Letter())
		}
	}
	return sb.String()
}
