package match3

import (
	"errors"
	"fmt"
)

// Contract violations. These are wrapped in a *PreconditionError so callers
// can tell a host bug from a game outcome.
var (
	ErrOutOfBounds  = errors.New("position out of bounds")
	ErrNotAdjacent  = errors.New("positions are not adjacent")
	ErrNegativeTick = errors.New("negative tick delta")
)

var (
	// ErrNotActive is returned by gameplay operations on a session that is
	// not running (ended, or still in setup).
	ErrNotActive = errors.New("match3: session is not active")

	// ErrCascadeLimit is returned when a resolution does not settle within
	// Rules.MaxCascades steps.
	ErrCascadeLimit = errors.New("match3: cascade did not settle")

	// ErrGenerateLimit is returned when no settled board could be produced
	// within Rules.GenerateAttempts.
	ErrGenerateLimit = errors.New("match3: could not generate a settled board")

	// ErrInvalidRules is returned for unusable rule or board parameters.
	ErrInvalidRules = errors.New("match3: invalid rules")
)

// PreconditionError reports an operation called with arguments the caller
// was responsible for validating.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("match3: %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func outOfBounds(op string, p Position) *PreconditionError {
	return &PreconditionError{Op: op, Err: fmt.Errorf("%w: %v", ErrOutOfBounds, p)}
}
