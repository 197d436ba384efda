package match3

import "fmt"

// CascadeStep is one clear/drop/refill iteration of a resolution.
type CascadeStep struct {
	Matched    []Position // Cleared cells, row-major
	Runs       []Run
	ScoreDelta int
	Board      *Board // Board after this step's refill
}

// Resolution is the outcome of resolving one swap.
type Resolution struct {
	ScoreDelta  int
	Steps       []CascadeStep
	Matched     []Position // Union of every step's cleared cells, row-major
	NoMovesLeft bool       // Settled board has no legal swap
}

// Cleared returns the total number of cells cleared over all steps. A cell
// cleared in two steps counts twice.
func (r Resolution) Cleared() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Matched)
	}
	return n
}

// Resolve swaps a and c and cascades until the board settles. The swap is
// kept even when it produces no run.
func Resolve(b *Board, a, c Position, rng Rand, rules Rules) (Resolution, error) {
	if !b.InBounds(a) {
		return Resolution{}, outOfBounds("resolve", a)
	}
	if !b.InBounds(c) {
		return Resolution{}, outOfBounds("resolve", c)
	}
	if !Adjacent(a, c) {
		return Resolution{}, &PreconditionError{Op: "resolve", Err: fmt.Errorf("%w: %v %v", ErrNotAdjacent, a, c)}
	}

	b.Swap(a, c)
	return Settle(b, rng, rules)
}

// Settle runs detect → clear → drop → refill until no run remains.
// Each step scores len(matched)*rules.PointsPerGem.
func Settle(b *Board, rng Rand, rules Rules) (Resolution, error) {
	var res Resolution
	cleared := make(PositionSet)

	for {
		runs := Runs(b)
		if len(runs) == 0 {
			break
		}
		if len(res.Steps) >= rules.MaxCascades {
			res.Matched = cleared.Sorted()
			return res, fmt.Errorf("%w after %d steps", ErrCascadeLimit, len(res.Steps))
		}

		matched := runsToSet(runs)
		positions := matched.Sorted()
		for _, p := range positions {
			b.mark(p)
			cleared.Add(p)
		}

		delta := len(positions) * rules.PointsPerGem
		collapseColumns(b)
		refill(b, rng, rules.Palette)

		res.ScoreDelta += delta
		res.Steps = append(res.Steps, CascadeStep{
			Matched:    positions,
			Runs:       runs,
			ScoreDelta: delta,
			Board:      b.Clone(),
		})
	}

	res.Matched = cleared.Sorted()
	res.NoMovesLeft = !HasAnyLegalMove(b)
	return res, nil
}

// collapseColumns drops unmatched cells to the bottom of each column,
// keeping their order, and leaves the vacated top cells marked.
func collapseColumns(b *Board) {
	n := b.size
	for c := 0; c < n; c++ {
		write := n - 1
		for r := n - 1; r >= 0; r-- {
			cell := b.cells[r*n+c]
			if cell.Matched {
				continue
			}
			b.cells[write*n+c] = cell
			write--
		}
		for r := write; r >= 0; r-- {
			b.cells[r*n+c] = Cell{Matched: true}
		}
	}
}

// refill draws a token for every marked cell, columns left to right and
// rows top to bottom, and clears the marks.
func refill(b *Board, rng Rand, palette int) {
	n := b.size
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			if b.cells[r*n+c].Matched {
				b.cells[r*n+c] = Cell{Token: randomToken(rng, palette)}
			}
		}
	}
}
