package match3

import (
	"strings"

	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// typeLetters abbreviates piece types in snapshots.
var typeLetters = map[m3.MatchType]byte{
	m3.Yellow:  'Y',
	m3.Blue:    'B',
	m3.Magenta: 'M',
	m3.Indigo:  'I',
	m3.Green:   'G',
	m3.Teal:    'T',
	m3.Red:     'R',
	m3.Cyan:    'C',
	m3.Wild:    'W',
}

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Mode        string
	Score       int
	Moves       int
	MovesLeft   int // -1 in endless mode
	BestCascade int
	Types       int // piece types currently spawning
	Cursor      m3.Coord
	Board       []string // one letter per piece, top row first, '.' for empty
	State       GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		MovesLeft: -1,
		Cursor:    g.cursor,
		State:     StatePlaying,
	}
	if g.board == nil {
		snap.State = StateGameOver
		return snap
	}

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case g.gameOver:
		snap.State = StateGameOver
	case g.paused:
		snap.State = StatePaused
	case g.board.Busy():
		snap.State = StateResolving
	}

	snap.Score = g.board.Score()
	snap.Moves = g.board.Moves()
	snap.BestCascade = g.board.BestCascade()
	snap.Types = len(g.board.Types())
	if g.mode == ModeMoves {
		snap.MovesLeft = g.movesLeft()
	}
	snap.Board = boardRows(g.board.Grid())
	return snap
}

func boardRows(grid *m3.Grid) []string {
	rows := make([]string, 0, grid.Height())
	for y := grid.Height() - 1; y >= 0; y-- {
		var sb strings.Builder
		for x := 0; x < grid.Width(); x++ {
			if p := grid.At(x, y); p != nil {
				sb.WriteByte(typeLetters[p.Type])
			} else {
				sb.WriteByte('.')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}
