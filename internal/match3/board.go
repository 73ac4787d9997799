package match3

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoPieceTypes means the configuration offers nothing to spawn.
	ErrNoPieceTypes = errors.New("match3: no valid piece types configured")
	// ErrInvalidSize means width, height or min match is not positive.
	ErrInvalidSize = errors.New("match3: invalid board size")
)

// maxShuffleAttempts bounds the search for a seeded board that still
// has a playable swap.
const maxShuffleAttempts = 16

// Config holds the static board parameters.
type Config struct {
	Width          int
	Height         int
	MinMatch       int
	Types          []MatchType
	SwapTime       time.Duration
	CollapseTime   time.Duration
	PointsPerPiece int
	Seed           int64
}

// DefaultConfig returns an 8x8 board with six piece types.
func DefaultConfig() Config {
	return Config{
		Width:          8,
		Height:         8,
		MinMatch:       DefaultMinMatch,
		Types:          StandardTypes()[:6],
		SwapTime:       500 * time.Millisecond,
		CollapseTime:   100 * time.Millisecond,
		PointsPerPiece: 10,
	}
}

// Validate reports configuration defects the board cannot recover from.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.MinMatch <= 0 {
		return fmt.Errorf("%w: min match %d", ErrInvalidSize, c.MinMatch)
	}
	if len(c.Types) == 0 {
		return ErrNoPieceTypes
	}
	return nil
}

// Board owns the grid and drives the swap/clear/collapse/refill cycle
// through its collaborators. It is not safe for concurrent use: every
// call, including collaborator callbacks, must happen on one goroutine.
type Board struct {
	cfg    Config
	grid   *Grid
	types  []MatchType
	rng    *rand.Rand
	collab Collaborators
	logger *log.Logger

	selection Selection
	busy      bool

	score       int
	moves       int
	cascade     int
	bestCascade int
	shuffles    int

	onSettled func(matched bool)
}

// NewBoard validates cfg and returns an empty board. Call Fill to seed it.
// A nil logger discards output.
func NewBoard(cfg Config, collab Collaborators, logger *log.Logger) (*Board, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid board configuration", "err", err)
		return nil, err
	}

	types := make([]MatchType, len(cfg.Types))
	copy(types, cfg.Types)

	return &Board{
		cfg:    cfg,
		grid:   NewGrid(cfg.Width, cfg.Height),
		types:  types,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		collab: collab.withDefaults(),
		logger: logger,
	}, nil
}

// Grid returns the live grid. Callers must not mutate it.
func (b *Board) Grid() *Grid { return b.grid }

// Config returns the configuration the board was built with.
func (b *Board) Config() Config { return b.cfg }

// Busy reports whether a swap is being resolved.
func (b *Board) Busy() bool { return b.busy }

// Score returns the accumulated score.
func (b *Board) Score() int { return b.score }

// Moves returns the number of swaps that produced a match.
func (b *Board) Moves() int { return b.moves }

// Cascade returns the cascade level of the current resolution.
func (b *Board) Cascade() int { return b.cascade }

// BestCascade returns the deepest cascade seen so far.
func (b *Board) BestCascade() int { return b.bestCascade }

// Shuffles returns how many times the board has been reshuffled,
// including the automatic reshuffle after a dead board.
func (b *Board) Shuffles() int { return b.shuffles }

// Selection exposes the press-drag-release state.
func (b *Board) Selection() *Selection { return &b.selection }

// Types returns the piece types currently used for spawning.
func (b *Board) Types() []MatchType { return b.types }

// SetTypes changes the spawnable types for future fills and refills.
func (b *Board) SetTypes(types []MatchType) error {
	if len(types) == 0 {
		b.logger.Error("refusing empty piece type set")
		return ErrNoPieceTypes
	}
	b.types = append(b.types[:0:0], types...)
	return nil
}

// OnSettled registers fn to run whenever a swap has been fully resolved.
// matched is false when the swap was reverted.
func (b *Board) OnSettled(fn func(matched bool)) {
	b.onSettled = fn
}

// Fill seeds every empty cell with a random piece, re-rolling any piece
// that would complete a run with the cells to its left or below.
func (b *Board) Fill() {
	for x := 0; x < b.grid.Width(); x++ {
		for y := 0; y < b.grid.Height(); y++ {
			if !b.grid.Empty(x, y) {
				continue
			}
			b.fillCell(Coord{X: x, Y: y})
		}
	}
}

// fillCell places a random piece at c that does not match on fill.
// Each re-roll excludes the types already tried, so the loop ends even
// on boards configured with fewer than three types.
func (b *Board) fillCell(c Coord) {
	tried := make(map[MatchType]bool, len(b.types))
	for {
		t := b.randomType(tried)
		repeat := tried[t]
		tried[t] = true
		b.fillAt(c, t)

		if !HasMatchOnFill(b.grid, c, b.cfg.MinMatch) {
			return
		}
		if repeat {
			b.logger.Warn("no piece type avoids a match", "cell", c)
			return
		}
		b.discardAt(c)
	}
}

// discardAt drops a re-rolled piece without destroying it.
func (b *Board) discardAt(c Coord) {
	p := b.grid.Remove(c.X, c.Y)
	if d, ok := b.collab.Factory.(Discarder); ok && p != nil {
		d.Discard(p)
	}
}

func (b *Board) fillAt(c Coord, t MatchType) *Piece {
	p := b.collab.Factory.NewPiece(t, c)
	b.grid.Place(p, c.X, c.Y)
	return p
}

// randomType picks uniformly among the configured types not in exclude.
func (b *Board) randomType(exclude map[MatchType]bool) MatchType {
	candidates := make([]MatchType, 0, len(b.types))
	for _, t := range b.types {
		if !exclude[t] {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		candidates = b.types
	}
	return candidates[b.rng.Intn(len(candidates))]
}

// Press handles a cell press event.
func (b *Board) Press(c Coord) bool {
	if !b.grid.InBounds(c.X, c.Y) {
		return false
	}
	return b.selection.Press(c)
}

// Enter handles the pointer entering a cell during a drag.
func (b *Board) Enter(c Coord) bool {
	if !b.grid.InBounds(c.X, c.Y) {
		return false
	}
	return b.selection.Enter(c)
}

// Release ends the interaction and attempts the swap if a target was
// reached. The selection returns to Idle regardless of the outcome.
func (b *Board) Release() bool {
	from, to, ok := b.selection.Release()
	if !ok {
		return false
	}
	return b.Swap(from, to)
}

// Swap starts resolving an exchange of two adjacent occupied cells.
// It returns false without side effects when the board is busy or the
// cells are not a valid pair.
func (b *Board) Swap(from, to Coord) bool {
	if b.busy || !Adjacent(from, to) {
		return false
	}
	clicked := b.grid.AtCoord(from)
	target := b.grid.AtCoord(to)
	if clicked == nil || target == nil {
		return false
	}

	b.busy = true
	b.logger.Debug("swap", "from", from, "to", to)

	b.grid.Swap(from, to)
	done := join(2, func() { b.checkSwap(from, to) })
	b.collab.Mover.Move(clicked, to, b.cfg.SwapTime, done)
	b.collab.Mover.Move(target, from, b.cfg.SwapTime, done)
	return true
}

// checkSwap runs once both swapped pieces have arrived.
func (b *Board) checkSwap(from, to Coord) {
	matches := FindMatchesAt(b.grid, from, b.cfg.MinMatch)
	matches.Union(FindMatchesAt(b.grid, to, b.cfg.MinMatch))

	if matches.Len() == 0 {
		b.revert(from, to)
		return
	}

	b.moves++
	b.cascade = 0
	b.highlight(matches)
	b.collab.Scheduler.After(b.cfg.SwapTime, func() { b.resolve(matches) })
}

// revert moves both pieces back to where they started.
func (b *Board) revert(from, to Coord) {
	b.logger.Debug("swap reverted", "from", from, "to", to)
	clicked := b.grid.AtCoord(to)
	target := b.grid.AtCoord(from)
	b.grid.Swap(from, to)

	done := join(2, func() { b.settle(false) })
	b.collab.Mover.Move(clicked, from, b.cfg.SwapTime/2, done)
	b.collab.Mover.Move(target, to, b.cfg.SwapTime/2, done)
}

// resolve clears a match set, collapses the affected columns, refills
// the board and repeats while the refill produces new matches.
func (b *Board) resolve(matches *MatchSet) {
	b.cascade++
	b.bestCascade = max(b.bestCascade, b.cascade)
	b.score += matches.Len() * b.cfg.PointsPerPiece * b.cascade
	b.logger.Debug("clearing", "pieces", matches.Len(), "cascade", b.cascade, "score", b.score)

	b.clearPieces(matches)
	moves := CollapseColumns(b.grid, matches.Columns())

	b.animate(moves, b.cfg.CollapseTime, func() {
		b.animate(b.refill(), b.cfg.CollapseTime, func() {
			next := FindAllMatches(b.grid, b.cfg.MinMatch)
			if next.Len() == 0 {
				b.settle(true)
				return
			}
			b.highlight(next)
			b.collab.Scheduler.After(b.cfg.CollapseTime, func() { b.resolve(next) })
		})
	})
}

// refill creates a piece for every empty cell. New pieces are spawned
// one board height above their destination and moved into place.
func (b *Board) refill() []Move {
	var moves []Move
	for _, c := range b.grid.EmptyCells() {
		spawn := Coord{X: c.X, Y: c.Y + b.grid.Height()}
		p := b.collab.Factory.NewPiece(b.randomType(nil), spawn)
		b.grid.Place(p, c.X, c.Y)
		moves = append(moves, Move{Piece: p, From: spawn, To: c})
	}
	return moves
}

// animate hands every move to the Mover and calls done after the last
// one completes.
func (b *Board) animate(moves []Move, d time.Duration, done func()) {
	if len(moves) == 0 {
		done()
		return
	}
	arrived := join(len(moves), done)
	for _, m := range moves {
		b.collab.Mover.Move(m.Piece, m.To, d, arrived)
	}
}

// settle ends a resolution. A board left without any playable swap is
// reshuffled.
func (b *Board) settle(matched bool) {
	b.busy = false
	if matched && !HasValidMove(b.grid, b.cfg.MinMatch) {
		b.logger.Info("no valid moves left, reshuffling")
		b.Shuffle()
	}
	if b.onSettled != nil {
		b.onSettled(matched)
	}
}

// Shuffle clears the board and seeds it again until a playable swap exists.
func (b *Board) Shuffle() {
	b.shuffles++
	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		b.ClearBoard()
		b.Fill()
		if HasValidMove(b.grid, b.cfg.MinMatch) {
			return
		}
	}
	b.logger.Warn("shuffle could not produce a playable board", "attempts", maxShuffleAttempts)
}

// ClearBoard removes every piece.
func (b *Board) ClearBoard() {
	for x := 0; x < b.grid.Width(); x++ {
		for y := 0; y < b.grid.Height(); y++ {
			b.clearPieceAt(Coord{X: x, Y: y})
		}
	}
}

func (b *Board) clearPieceAt(c Coord) {
	if p := b.grid.Remove(c.X, c.Y); p != nil {
		b.collab.Destroyer.Destroy(p)
	}
	b.collab.Highlighter.HighlightOff(c)
}

func (b *Board) clearPieces(set *MatchSet) {
	for _, p := range set.Pieces() {
		b.clearPieceAt(p.Coord())
	}
}

func (b *Board) highlight(set *MatchSet) {
	for _, p := range set.Pieces() {
		b.collab.Highlighter.HighlightOn(p.Coord(), p.Type)
	}
}

// HighlightMatchesAt clears the emphasis at c and then highlights every
// piece in a match through c.
func (b *Board) HighlightMatchesAt(c Coord) {
	b.collab.Highlighter.HighlightOff(c)
	b.highlight(FindMatchesAt(b.grid, c, b.cfg.MinMatch))
}

// Hint highlights the best available swap and returns it.
func (b *Board) Hint() (Swap, bool) {
	moves := FindValidMoves(b.grid, b.cfg.MinMatch)
	if len(moves) == 0 {
		return Swap{}, false
	}
	best := moves[0]
	for _, c := range []Coord{best.From, best.To} {
		if p := b.grid.AtCoord(c); p != nil {
			b.collab.Highlighter.HighlightOn(c, p.Type)
		}
	}
	return best, true
}

// join returns a callback that runs done on its n-th invocation.
func join(n int, done func()) func() {
	remaining := n
	return func() {
		remaining--
		if remaining == 0 {
			done()
		}
	}
}
