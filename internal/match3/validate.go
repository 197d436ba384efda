package match3

import "fmt"

// Move is a swap of two adjacent positions.
type Move struct {
	From Position
	To   Position
}

func (m Move) String() string {
	return fmt.Sprintf("%v<->%v", m.From, m.To)
}

// WouldMatch reports whether swapping the tokens at a and c would create a
// run. The board is never written: tokens are read through a swapped view,
// and only the row and column through each of the two positions are
// scanned. On a settled board this is equivalent to swapping and running
// full detection.
func WouldMatch(b *Board, a, c Position) bool {
	if !b.InBounds(a) {
		panic(outOfBounds("would match", a))
	}
	if !b.InBounds(c) {
		panic(outOfBounds("would match", c))
	}
	if !Adjacent(a, c) {
		panic(&PreconditionError{Op: "would match", Err: fmt.Errorf("%w: %v %v", ErrNotAdjacent, a, c)})
	}

	n := b.size
	view := func(p Position) Token {
		switch p {
		case a:
			p = c
		case c:
			p = a
		}
		return b.cells[p.Row*n+p.Col].Token
	}

	return linesHaveRun(n, a, view) || linesHaveRun(n, c, view)
}

// linesHaveRun scans the row and the column through p.
func linesHaveRun(n int, p Position, at func(Position) Token) bool {
	found := false
	hit := func(int, int) { found = true }

	scanLine(n, func(i int) Token { return at(Pos(p.Row, i)) }, hit)
	if found {
		return true
	}
	scanLine(n, func(i int) Token { return at(Pos(i, p.Col)) }, hit)
	return found
}

// HasAnyLegalMove reports whether some adjacent swap would produce a run.
// Each unordered pair is tried once (right and down neighbours) and the
// scan stops at the first hit.
func HasAnyLegalMove(b *Board) bool {
	n := b.size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			p := Pos(r, c)
			if c+1 < n && WouldMatch(b, p, Pos(r, c+1)) {
				return true
			}
			if r+1 < n && WouldMatch(b, p, Pos(r+1, c)) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every distinct swap that would produce a run, in
// row-major order of the first position.
func LegalMoves(b *Board) []Move {
	var moves []Move
	n := b.size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			p := Pos(r, c)
			if c+1 < n && WouldMatch(b, p, Pos(r, c+1)) {
				moves = append(moves, Move{From: p, To: Pos(r, c+1)})
			}
			if r+1 < n && WouldMatch(b, p, Pos(r+1, c)) {
				moves = append(moves, Move{From: p, To: Pos(r+1, c)})
			}
		}
	}
	return moves
}
