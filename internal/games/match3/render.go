package match3

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

// pieceStyle is the glyph and color of each piece type. Glyphs differ
// so the board stays readable without colors.
var pieceStyle = map[m3.MatchType]struct {
	glyph rune
	color core.Color
}{
	m3.Yellow:  {'●', core.ColorBrightYellow},
	m3.Blue:    {'■', core.ColorBrightBlue},
	m3.Magenta: {'▲', core.ColorBrightMagenta},
	m3.Indigo:  {'◆', core.ColorIndigo},
	m3.Green:   {'♣', core.ColorBrightGreen},
	m3.Teal:    {'♦', core.ColorTeal},
	m3.Red:     {'♥', core.ColorBrightRed},
	m3.Cyan:    {'★', core.ColorBrightCyan},
	m3.Wild:    {'✦', core.ColorBrightWhite},
}

const fadeGlyph = '✶'

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.failed != nil {
		g.renderMessage(dst, "Cannot start game", g.failed.Error())
		return
	}
	if g.board == nil {
		return
	}
	if g.tooSmall {
		g.renderMessage(dst, "Window too small", "Please resize terminal")
		return
	}

	grid := g.board.Grid()
	frame := core.NewRect(g.boardX, g.boardY, grid.Width()*cellW+2, grid.Height()+2)

	g.renderHUD(dst, frame)
	dst.DrawBox(frame, core.ColorGray)
	g.renderPieces(dst, frame)
	g.renderSelection(dst)
	g.renderHelp(dst, frame)
	g.renderOverlays(dst, frame)
}

func (g *Game) renderMessage(dst *core.Screen, title, detail string) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, title, core.ColorBrightRed)
	dst.DrawTextCentered(y+1, detail, core.ColorDefault)
}

// renderHUD draws the title, score and move counters.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightWhite)

	moves := fmt.Sprintf("Moves: %d", g.board.Moves())
	if g.mode == ModeMoves {
		moves = fmt.Sprintf("Moves left: %d", max(g.movesLeft(), 0))
	}
	line := fmt.Sprintf("Score: %d  %s  Best chain: x%d", g.board.Score(), moves, g.board.BestCascade())
	dst.DrawTextCentered(1, line, core.ColorDefault)

	var status string
	switch {
	case g.board.Cascade() > 1 && g.board.Busy():
		status = fmt.Sprintf("Chain x%d!", g.board.Cascade())
	case g.hint != nil:
		status = fmt.Sprintf("Try %v <-> %v", g.hint.From, g.hint.To)
	}
	if status != "" {
		dst.DrawTextCentered(frame.Y-1, status, core.ColorBrightYellow)
	}
}

// renderPieces draws sprites at their animated positions, then the
// fading remains of cleared pieces, then highlight emphasis.
func (g *Game) renderPieces(dst *core.Screen, frame core.Rect) {
	inner := core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2)

	for _, f := range g.anim.fades {
		sx, sy := g.screenPos(f.x, f.y)
		if inner.Contains(sx, sy) {
			dst.SetColored(sx, sy, fadeGlyph, pieceStyle[f.kind].color)
		}
	}

	// Newer pieces draw last so overlaps resolve the same way every frame.
	for _, id := range slices.Sorted(maps.Keys(g.anim.sprites)) {
		s := g.anim.sprites[id]
		sx, sy := g.screenPos(s.x, s.y)
		if !inner.Contains(sx, sy) {
			continue
		}
		st := pieceStyle[s.kind]
		dst.SetColored(sx, sy, st.glyph, st.color)
	}

	for c := range g.anim.highlights {
		sx, sy := g.screenPos(float64(c.X), float64(c.Y))
		cell := dst.GetCell(sx, sy)
		cell.Reverse = true
		dst.SetCell(sx, sy, cell)
	}
}

// renderSelection brackets the cursor, the selected cell and the target.
func (g *Game) renderSelection(dst *core.Screen) {
	bracket := func(c m3.Coord, left, right rune, color core.Color) {
		sx, sy := g.screenPos(float64(c.X), float64(c.Y))
		dst.SetColored(sx-1, sy, left, color)
		dst.SetColored(sx+1, sy, right, color)
	}

	if !g.gameOver {
		bracket(g.cursor, '[', ']', core.ColorWhite)
	}
	sel := g.board.Selection()
	if c, ok := sel.Clicked(); ok {
		bracket(c, '[', ']', core.ColorBrightYellow)
	}
	if c, ok := sel.Target(); ok {
		bracket(c, '<', '>', core.ColorBrightCyan)
	}
}

func (g *Game) renderHelp(dst *core.Screen, frame core.Rect) {
	y := frame.Bottom()
	dst.DrawTextCentered(y, "arrows move  enter select  h hint  p pause", core.ColorGray)
	dst.DrawTextCentered(y+1, "mouse: drag a piece onto a neighbour", core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	_, cy := frame.Center()

	switch {
	case g.gameOver:
		lines := []string{
			" GAME OVER ",
			fmt.Sprintf(" Score: %d ", g.board.Score()),
			" R restart  B menu ",
		}
		for i, l := range lines {
			dst.DrawTextCentered(cy-1+i, l, core.ColorBrightRed)
		}
	case g.paused:
		dst.DrawTextCentered(cy, " PAUSED ", core.ColorBrightYellow)
	}
}
