package match3

import "sort"

// PositionSet is a set of board positions.
type PositionSet map[Position]struct{}

// Add inserts p.
func (s PositionSet) Add(p Position) {
	s[p] = struct{}{}
}

// Contains reports whether p is in the set.
func (s PositionSet) Contains(p Position) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of positions.
func (s PositionSet) Len() int {
	return len(s)
}

// Sorted returns the positions in row-major order.
func (s PositionSet) Sorted() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Run is a maximal line of at least MinRun identical tokens.
type Run struct {
	Token      Token
	Start      Position // Leftmost or topmost cell
	Length     int
	Horizontal bool
}

// Positions lists the cells covered by the run.
func (r Run) Positions() []Position {
	out := make([]Position, r.Length)
	for i := range out {
		if r.Horizontal {
			out[i] = r.Start.Add(0, i)
		} else {
			out[i] = r.Start.Add(i, 0)
		}
	}
	return out
}

// scanLine walks a line of n tokens and calls emit for every maximal run of
// at least MinRun equal tokens.
func scanLine(n int, at func(i int) Token, emit func(start, length int)) {
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && at(i) == at(start) {
			continue
		}
		if i-start >= MinRun {
			emit(start, i-start)
		}
		start = i
	}
}

// Runs returns every run on the board: rows top to bottom, then columns left
// to right.
func Runs(b *Board) []Run {
	var runs []Run
	n := b.size

	for r := 0; r < n; r++ {
		row := r
		scanLine(n, func(i int) Token { return b.cells[row*n+i].Token }, func(start, length int) {
			runs = append(runs, Run{
				Token:      b.cells[row*n+start].Token,
				Start:      Pos(row, start),
				Length:     length,
				Horizontal: true,
			})
		})
	}

	for c := 0; c < n; c++ {
		col := c
		scanLine(n, func(i int) Token { return b.cells[i*n+col].Token }, func(start, length int) {
			runs = append(runs, Run{
				Token:  b.cells[start*n+col].Token,
				Start:  Pos(start, col),
				Length: length,
			})
		})
	}

	return runs
}

// FindMatches returns every position that belongs to at least one run.
// A cell where a horizontal and a vertical run cross appears once.
func FindMatches(b *Board) PositionSet {
	return runsToSet(Runs(b))
}

func runsToSet(runs []Run) PositionSet {
	set := make(PositionSet)
	for _, r := range runs {
		for _, p := range r.Positions() {
			set.Add(p)
		}
	}
	return set
}
