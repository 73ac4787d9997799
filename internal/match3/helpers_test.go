package match3

import (
	"time"
)

var letterTypes = map[rune]MatchType{
	'Y': Yellow,
	'B': Blue,
	'M': Magenta,
	'I': Indigo,
	'G': Green,
	'T': Teal,
	'R': Red,
	'C': Cyan,
	'W': Wild,
}

// gridFromRows builds a grid from rows listed top row first. '.' is empty.
func gridFromRows(rows ...string) *Grid {
	return loadRows(&SequentialFactory{}, rows...)
}

func loadRows(f PieceFactory, rows ...string) *Grid {
	height := len(rows)
	width := len(rows[0])
	g := NewGrid(width, height)
	for i, row := range rows {
		y := height - 1 - i
		for x, r := range row {
			if r == '.' {
				continue
			}
			g.Place(f.NewPiece(letterTypes[r], Coord{X: x, Y: y}), x, y)
		}
	}
	return g
}

// testBoard returns a board whose grid is loaded from rows.
func testBoard(collab Collaborators, rows ...string) *Board {
	cfg := DefaultConfig()
	cfg.Width = len(rows[0])
	cfg.Height = len(rows)
	cfg.Types = []MatchType{Yellow, Blue, Magenta, Indigo}
	cfg.Seed = 7

	b, err := NewBoard(cfg, collab, nil)
	if err != nil {
		panic(err)
	}
	b.grid = loadRows(b.collab.Factory, rows...)
	return b
}

func coordsOf(set *MatchSet) map[Coord]bool {
	out := make(map[Coord]bool, set.Len())
	for _, c := range set.Coords() {
		out[c] = true
	}
	return out
}

// queuedMover holds completion callbacks until flush is called.
type queuedMover struct {
	pending []func()
	moved   []Move
}

func (m *queuedMover) Move(p *Piece, to Coord, _ time.Duration, done func()) {
	m.moved = append(m.moved, Move{Piece: p, To: to})
	m.pending = append(m.pending, done)
}

func (m *queuedMover) flush() {
	for len(m.pending) > 0 {
		fns := m.pending
		m.pending = nil
		for _, fn := range fns {
			fn()
		}
	}
}

type recordingDestroyer struct {
	destroyed []PieceID
}

func (d *recordingDestroyer) Destroy(p *Piece) {
	d.destroyed = append(d.destroyed, p.ID)
}

type recordingHighlighter struct {
	on map[Coord]MatchType
}

func (h *recordingHighlighter) HighlightOn(c Coord, t MatchType) {
	if h.on == nil {
		h.on = make(map[Coord]MatchType)
	}
	h.on[c] = t
}

func (h *recordingHighlighter) HighlightOff(c Coord) {
	delete(h.on, c)
}

// spawnRecorder remembers where each piece was created.
type spawnRecorder struct {
	SequentialFactory
	spawned []Coord
}

func (f *spawnRecorder) NewPiece(t MatchType, at Coord) *Piece {
	f.spawned = append(f.spawned, at)
	return f.SequentialFactory.NewPiece(t, at)
}

// discardRecorder remembers which pieces the board dropped unseen.
type discardRecorder struct {
	SequentialFactory
	discarded []PieceID
}

func (f *discardRecorder) Discard(p *Piece) {
	f.discarded = append(f.discarded, p.ID)
}
