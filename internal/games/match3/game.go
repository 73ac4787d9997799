// Package match3 binds the match-3 board engine to the arcade runtime:
// tick-driven animation, keyboard and mouse input, and rendering.
package match3

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeEndless Mode = "endless"
	ModeMoves   Mode = "moves"
)

const (
	hintDuration = 1500 * time.Millisecond
	cellW        = 3 // screen columns per board cell
)

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes game and engine logs to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_moves", func() registry.Game {
		return NewMoves()
	})
}

// Game implements the match-3 puzzle.
type Game struct {
	mode Mode
	tick uint64

	cfg        config.Match3Config
	palette    []m3.MatchType
	difficulty *config.DifficultyManager
	board      *m3.Board
	anim       *animator

	cursor    m3.Coord
	moveLimit int
	hint      *m3.Swap

	// Screen layout
	screenW, screenH int
	boardX, boardY   int

	gameOver bool
	paused   bool
	tooSmall bool
	failed   error // configuration could not produce a board
}

// New creates an endless match-3 game.
func New() *Game {
	return &Game{mode: ModeEndless}
}

// NewMoves creates a match-3 game with a fixed move budget.
func NewMoves() *Game {
	return &Game{mode: ModeMoves}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMoves {
		return "match3_moves"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMoves {
		return "Match-3 (Moves)"
	}
	return "Match-3"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.hint = nil
	g.failed = nil

	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "path", configPath, "err", err)
		cfg = config.DefaultMatch3Config()
	}
	g.cfg = cfg
	g.moveLimit = cfg.Gameplay.MoveLimit

	bc, err := cfg.BoardConfig(rc.Seed)
	if err != nil {
		g.fail(err)
		return
	}
	g.palette = bc.Types
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.difficulty.ApplyPreset(difficultyPreset)
	bc.Types = g.difficulty.TypesAt(g.palette, 0, 0)

	g.anim = newAnimator(rc.TickRate)
	board, err := m3.NewBoard(bc, g.anim.collaborators(), logger)
	if err != nil {
		g.fail(err)
		return
	}
	board.OnSettled(g.onSettled)
	board.Fill()
	if !m3.HasValidMove(board.Grid(), bc.MinMatch) {
		board.Shuffle()
		// The opening board appears at once.
		g.anim.fades = nil
	}
	g.board = board
	g.cursor = m3.Coord{X: bc.Width / 2, Y: bc.Height / 2}

	g.layout(rc.ScreenW, rc.ScreenH)
	logger.Debug("game reset", "mode", g.mode, "seed", rc.Seed, "types", len(bc.Types))
}

func (g *Game) fail(err error) {
	logger.Error("cannot build board", "err", err)
	g.failed = err
	g.gameOver = true
}

// layout centers the board and checks the screen is large enough.
func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h
	if g.board == nil {
		return
	}
	gw := g.board.Grid().Width()*cellW + 2
	gh := g.board.Grid().Height() + 2
	hud := 3
	help := 2

	g.tooSmall = w < max(gw, 34) || h < gh+hud+help
	g.boardX = (w - gw) / 2
	g.boardY = hud
}

// Resize re-centers the board without restarting the game.
func (g *Game) Resize(w, h int) {
	g.layout(w, h)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.board == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.checkOutOfMoves()
	if !g.gameOver {
		g.handleKeys(in)
		g.handlePointer(in.Pointer)
	}

	g.anim.advance()
	g.checkOutOfMoves()

	return core.StepResult{State: g.State()}
}

// checkOutOfMoves ends a moves-mode game once the budget is spent and the
// last cascade has finished.
func (g *Game) checkOutOfMoves() {
	if g.mode != ModeMoves || g.gameOver || g.movesLeft() > 0 {
		return
	}
	if g.board.Busy() || g.anim.busy() {
		return
	}
	g.gameOver = true
	logger.Info("out of moves", "score", g.board.Score())
}

// handleKeys maps the cursor keys onto the press/enter/release machine:
// Confirm presses the cursor cell, a direction while a cell is selected
// targets the neighbour and releases.
func (g *Game) handleKeys(in core.InputFrame) {
	sel := g.board.Selection()

	if in.Has(core.ActionHint) {
		g.showHint()
	}

	if in.Has(core.ActionConfirm) {
		if sel.State() == m3.Idle {
			g.board.Press(g.cursor)
		} else {
			g.board.Release()
		}
	}

	dir, ok := directionFor(in)
	if !ok {
		return
	}
	grid := g.board.Grid()
	next := g.cursor.Add(dir.Offset())
	next.X = core.Clamp(next.X, 0, grid.Width()-1)
	next.Y = core.Clamp(next.Y, 0, grid.Height()-1)
	if next == g.cursor {
		return
	}

	if sel.State() == m3.Idle {
		g.cursor = next
		return
	}
	g.board.Enter(next)
	if g.board.Release() {
		g.cursor = next
		g.clearHint()
	}
}

// directionFor returns the board direction of an arrow action.
// Screen up is board up since rows grow upward.
func directionFor(in core.InputFrame) (m3.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return m3.Up, true
	case in.Has(core.ActionDown):
		return m3.Down, true
	case in.Has(core.ActionLeft):
		return m3.Left, true
	case in.Has(core.ActionRight):
		return m3.Right, true
	}
	return 0, false
}

// handlePointer feeds mouse events to the selection state machine.
func (g *Game) handlePointer(events []core.PointerEvent) {
	for _, ev := range events {
		c, inside := g.cellAt(ev.X, ev.Y)
		switch ev.Kind {
		case core.PointerPress:
			if inside && g.board.Press(c) {
				g.cursor = c
			}
		case core.PointerMotion:
			if inside {
				g.board.Enter(c)
			}
		case core.PointerRelease:
			if g.board.Release() {
				g.clearHint()
			}
		}
	}
}

// cellAt converts screen coordinates to a board cell.
func (g *Game) cellAt(sx, sy int) (m3.Coord, bool) {
	grid := g.board.Grid()
	area := core.NewRect(g.boardX+1, g.boardY+1, grid.Width()*cellW, grid.Height())
	if !area.Contains(sx, sy) {
		return m3.Coord{}, false
	}
	x := (sx - area.X) / cellW
	row := sy - area.Y
	return m3.Coord{X: x, Y: grid.Height() - 1 - row}, true
}

// screenPos converts a board position to the screen cell of its glyph.
func (g *Game) screenPos(x, y float64) (int, int) {
	h := g.board.Grid().Height()
	sx := g.boardX + 1 + int(x*cellW+0.5) + 1
	sy := g.boardY + 1 + int(float64(h-1)-y+0.5)
	return sx, sy
}

func (g *Game) showHint() {
	if g.board.Busy() {
		return
	}
	g.clearHint()
	s, ok := g.board.Hint()
	if !ok {
		return
	}
	g.hint = &s
	g.anim.After(hintDuration, func() {
		if g.hint != nil && *g.hint == s {
			g.clearHint()
		}
	})
}

// clearHint drops the hint emphasis. A hint cell that is part of a live
// match keeps the match highlight.
func (g *Game) clearHint() {
	if g.hint == nil {
		return
	}
	g.board.HighlightMatchesAt(g.hint.From)
	g.board.HighlightMatchesAt(g.hint.To)
	g.hint = nil
}

// onSettled applies difficulty progression once the board is idle.
func (g *Game) onSettled(matched bool) {
	if !matched {
		return
	}
	types := g.difficulty.TypesAt(g.palette, g.board.Score(), g.board.Moves())
	if len(types) == len(g.board.Types()) {
		return
	}
	if err := g.board.SetTypes(types); err != nil {
		logger.Error("difficulty update failed", "err", err)
		return
	}
	logger.Info("difficulty increased", "types", len(types), "score", g.board.Score())
}

func (g *Game) movesLeft() int {
	return g.moveLimit - g.board.Moves()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
	if g.board != nil {
		st.Score = g.board.Score()
		st.Moves = g.board.Moves()
		st.BestCascade = g.board.BestCascade()
	}
	return st
}
