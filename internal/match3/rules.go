package match3

import "fmt"

// Rules are the tunable parameters of generation and resolution.
type Rules struct {
	PointsPerGem       int  // Score per cleared cell
	Palette            int  // Number of token kinds in play, 3..PaletteSize
	MaxCascades        int  // Resolution steps before ErrCascadeLimit
	GenerateAttempts   int  // Re-roll passes and whole-board retries in Generate
	RequireOpeningMove bool // Reject generated boards with no legal move
}

// DefaultRules returns the standard rules: 10 points per gem, all six
// tokens.
func DefaultRules() Rules {
	return Rules{
		PointsPerGem:       10,
		Palette:            PaletteSize,
		MaxCascades:        100,
		GenerateAttempts:   1000,
		RequireOpeningMove: true,
	}
}

// Validate checks that the rules can produce and resolve boards.
func (r Rules) Validate() error {
	switch {
	case r.PointsPerGem < 0:
		return fmt.Errorf("%w: points per gem %d", ErrInvalidRules, r.PointsPerGem)
	case r.Palette < MinRun || r.Palette > PaletteSize:
		return fmt.Errorf("%w: palette %d not in [%d, %d]", ErrInvalidRules, r.Palette, MinRun, PaletteSize)
	case r.MaxCascades < 1:
		return fmt.Errorf("%w: max cascades %d", ErrInvalidRules, r.MaxCascades)
	case r.GenerateAttempts < 1:
		return fmt.Errorf("%w: generate attempts %d", ErrInvalidRules, r.GenerateAttempts)
	}
	return nil
}
