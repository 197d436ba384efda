package match3

import "fmt"

// Generate returns a size×size board with no runs. Every cell is drawn
// uniformly from the first rules.Palette tokens, then cells taking part in
// a run are re-rolled until none remain. With RequireOpeningMove a settled
// board that offers no legal swap is thrown away and drawn again.
//
// Re-roll passes and whole-board retries are each bounded by
// rules.GenerateAttempts; running out returns ErrGenerateLimit.
func Generate(size int, rng Rand, rules Rules) (*Board, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if size < MinRun {
		return nil, fmt.Errorf("%w: board size %d", ErrInvalidRules, size)
	}

	b := NewBoard(size)
	for attempt := 0; attempt < rules.GenerateAttempts; attempt++ {
		for i := range b.cells {
			b.cells[i] = Cell{Token: randomToken(rng, rules.Palette)}
		}
		if !rerollMatches(b, rng, rules) {
			continue
		}
		if rules.RequireOpeningMove && !HasAnyLegalMove(b) {
			continue
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: size %d after %d attempts", ErrGenerateLimit, size, rules.GenerateAttempts)
}

// rerollMatches re-draws matched cells until the board settles. Cells are
// visited in row-major order so a seeded source gives a reproducible board.
func rerollMatches(b *Board, rng Rand, rules Rules) bool {
	for pass := 0; pass < rules.GenerateAttempts; pass++ {
		matched := FindMatches(b)
		if matched.Len() == 0 {
			return true
		}
		for _, p := range matched.Sorted() {
			b.Set(p, randomToken(rng, rules.Palette))
		}
	}
	return false
}
