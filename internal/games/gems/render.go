package gems

import (
	"fmt"

	"github.com/vovakirdan/triplejoy/internal/core"
	"github.com/vovakirdan/triplejoy/internal/match3"
)

const (
	cellWidth = 3 // Marker, glyph, marker
	hudHeight = 3
	minWidth  = 50 // Controls line
)

// Glyphs and colors per token. Shapes differ so the board reads without
// color too.
var (
	tokenGlyphs = [match3.PaletteSize]rune{'●', '◆', '▲', '★', '♥', '■'}
	tokenColors = [match3.PaletteSize]core.Color{
		core.ColorBrightRed,
		core.ColorBrightBlue,
		core.ColorBrightGreen,
		core.ColorBrightYellow,
		core.ColorBrightMagenta,
		core.ColorOrange,
	}
)

// layout is the on-screen placement of the board.
type layout struct {
	x, y int // Top-left corner of the border
	n    int
}

func layoutFor(screenW, n int) layout {
	return layout{
		x: (screenW - boardWidth(n)) / 2,
		y: hudHeight,
		n: n,
	}
}

func boardWidth(n int) int {
	return n*cellWidth + 2
}

// minScreen returns the smallest screen that fits an n×n board.
func minScreen(n int) (int, int) {
	// HUD, bordered board, blank line, controls
	return max(minWidth, boardWidth(n)), hudHeight + n + 2 + 2
}

// cellOrigin returns the screen column of p's left marker and its row.
func (l layout) cellOrigin(p match3.Position) (int, int) {
	return l.x + 1 + p.Col*cellWidth, l.y + 1 + p.Row
}

// cellAt maps a screen coordinate to a board cell.
func (l layout) cellAt(x, y int) (match3.Position, bool) {
	row := y - l.y - 1
	dx := x - l.x - 1
	if row < 0 || row >= l.n || dx < 0 || dx >= l.n*cellWidth {
		return match3.Position{}, false
	}
	return match3.Pos(row, dx/cellWidth), true
}

func (l layout) rect() core.Rect {
	return core.NewRect(l.x, l.y, boardWidth(l.n), l.n+2)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		dst.DrawTextCentered(g.screenH/2, "Could not start game", core.ColorBrightRed)
		if g.err != nil {
			dst.DrawTextCentered(g.screenH/2+1, g.err.Error(), core.ColorGray)
		}
		return
	}

	snap := g.session.Snapshot()
	l := layoutFor(g.screenW, g.difficulty.GridSize())

	g.renderHUD(dst, snap, l)
	g.renderBoard(dst, snap, l)
	dst.DrawTextCentered(l.y+l.n+3, g.Controls(), core.ColorGray)
	g.renderOverlays(dst, snap, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)

	w, h := minScreen(g.difficulty.GridSize())
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h), core.ColorGray)
}

// renderHUD draws the title, score, clock and status line.
func (g *Game) renderHUD(dst *core.Screen, snap match3.Snapshot, l layout) {
	dst.DrawTextCentered(0, "TripleJoy - "+snap.Difficulty.String(), core.ColorBrightCyan)

	left := max(0, (g.screenW-minWidth)/2)
	right := left + minWidth

	score := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawTextColor(left, 1, score, core.ColorBrightWhite)

	level := fmt.Sprintf("Level %d", snap.Level)
	dst.DrawTextCentered(1, level, core.ColorDefault)

	clock := "Time: " + formatClock(snap.TimeRemaining)
	clockColor := core.ColorBrightWhite
	if snap.TimeRemaining <= 10 {
		clockColor = core.ColorBrightRed
	}
	dst.DrawTextColor(right-len(clock), 1, clock, clockColor)

	if status := g.statusLine(); status != "" {
		dst.DrawTextCentered(2, status, core.ColorGray)
	}
}

func (g *Game) statusLine() string {
	switch {
	case g.err != nil:
		return g.err.Error()
	case g.hint != nil:
		return "Try " + g.hint.String()
	}
	return ""
}

// formatClock renders seconds as m:ss.
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// renderBoard draws the bordered grid, the tokens and the markers.
func (g *Game) renderBoard(dst *core.Screen, snap match3.Snapshot, l layout) {
	dst.DrawBox(l.rect(), core.ColorGray)

	board, cleared := snap.Board, match3.PositionSet(nil)
	if g.anim != nil {
		board, cleared = g.anim.board()
	}

	for r := 0; r < l.n; r++ {
		for c := 0; c < l.n; c++ {
			p := match3.Pos(r, c)
			x, y := l.cellOrigin(p)

			if cleared.Contains(p) {
				dst.SetColor(x+1, y, '✦', core.ColorBrightWhite)
			} else {
				tok := board.Get(p)
				dst.SetColor(x+1, y, tokenGlyphs[tok], tokenColors[tok])
			}

			if open, shut, color, ok := g.markers(snap, p); ok {
				dst.SetColor(x, y, open, color)
				dst.SetColor(x+2, y, shut, color)
			}
		}
	}
}

// markers picks the brackets drawn around p.
func (g *Game) markers(snap match3.Snapshot, p match3.Position) (rune, rune, core.Color, bool) {
	selected := snap.Selection != nil && *snap.Selection == p
	cursor := g.cursor == p && snap.State == match3.StateActive

	switch {
	case selected && cursor:
		return '{', '}', core.ColorBrightYellow, true
	case selected:
		return '(', ')', core.ColorBrightYellow, true
	case cursor:
		return '[', ']', core.ColorBrightWhite, true
	case g.hint != nil && (g.hint.From == p || g.hint.To == p):
		return '>', '<', core.ColorBrightCyan, true
	}
	return 0, 0, core.ColorDefault, false
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, snap match3.Snapshot, l layout) {
	cx, cy := l.rect().Center()

	if snap.Paused {
		drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
		return
	}

	if snap.State != match3.StateEnded || g.anim != nil {
		return
	}

	score := fmt.Sprintf("Score: %d", snap.Score)
	switch snap.EndReason {
	case match3.EndTimeout:
		drawOverlay(dst, cx, cy, "TIME'S UP", score, "Press R to restart")
	case match3.EndNoMoves:
		drawOverlay(dst, cx, cy, "LEVEL COMPLETE", "No more moves", score, "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColor(x, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "WASD: Move  Space: Tap  H: Hint  P: Pause  Q: Quit"
}
