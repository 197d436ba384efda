package gems

import "github.com/vovakirdan/triplejoy/internal/match3"

// animation replays the steps of one resolution. Each step lasts stepTicks:
// during the first half the cleared cells flash on the board as it was
// before the step, during the second half the refilled board is shown.
type animation struct {
	boards    []*match3.Board // boards[i] is the board before step i; last is settled
	cleared   []match3.PositionSet
	stepTicks int
	ticks     int
}

// newAnimation returns nil when there is nothing to show.
func newAnimation(swapped *match3.Board, steps []match3.CascadeStep, stepTicks int) *animation {
	if stepTicks <= 0 || len(steps) == 0 {
		return nil
	}

	a := &animation{
		boards:    make([]*match3.Board, 0, len(steps)+1),
		cleared:   make([]match3.PositionSet, len(steps)),
		stepTicks: stepTicks,
	}
	a.boards = append(a.boards, swapped)
	for i, s := range steps {
		a.boards = append(a.boards, s.Board)
		set := make(match3.PositionSet, len(s.Matched))
		for _, p := range s.Matched {
			set.Add(p)
		}
		a.cleared[i] = set
	}
	return a
}

// advance moves one tick forward. It returns false once the last step has
// been shown.
func (a *animation) advance() bool {
	a.ticks++
	return a.ticks < a.stepTicks*len(a.cleared)
}

// step returns the index of the step on screen.
func (a *animation) step() int {
	return min(a.ticks/a.stepTicks, len(a.cleared)-1)
}

// flashing reports whether the current step is in its clear phase.
func (a *animation) flashing() bool {
	return a.ticks%a.stepTicks < (a.stepTicks+1)/2
}

// board returns the board to draw and the cells to highlight as cleared.
func (a *animation) board() (*match3.Board, match3.PositionSet) {
	i := a.step()
	if a.flashing() {
		return a.boards[i], a.cleared[i]
	}
	return a.boards[i+1], nil
}
