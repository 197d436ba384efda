package match3

import "testing"

// scriptRand replays vals in order, wrapping each into [0, n).
type scriptRand struct {
	vals []int
	i    int
}

func (r *scriptRand) Intn(n int) int {
	if r.i >= len(r.vals) {
		panic("scriptRand: script exhausted")
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

// constRand always returns v.
type constRand int

func (r constRand) Intn(n int) int { return int(r) % n }

// newFixtureSession returns an active Easy session playing board, drawing
// refills from script.
func newFixtureSession(t *testing.T, board string, script ...int) *Session {
	t.Helper()
	s, err := NewSession(Easy, WithSeed(1))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.board = MustParseBoard(board)
	s.rng = &scriptRand{vals: script}
	return s
}
