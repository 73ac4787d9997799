package match3

import "time"

// PieceFactory creates piece handles. at is where the piece first
// appears; refilled pieces are created above the board and then moved in.
type PieceFactory interface {
	NewPiece(t MatchType, at Coord) *Piece
}

// Discarder is implemented by factories that want to hear about pieces
// dropped before they were ever shown, such as re-rolls during a fill.
// Discarded pieces skip the Destroyer.
type Discarder interface {
	Discard(p *Piece)
}

// Mover relocates a piece visually over d and calls done once the piece
// has arrived. The grid has already been updated when Move is called.
type Mover interface {
	Move(p *Piece, to Coord, d time.Duration, done func())
}

// Destroyer removes the visual representation of a cleared piece.
type Destroyer interface {
	Destroy(p *Piece)
}

// Highlighter sets or clears cosmetic emphasis on a cell.
type Highlighter interface {
	HighlightOn(c Coord, t MatchType)
	HighlightOff(c Coord)
}

// Scheduler resumes fn after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Collaborators bundles the external contracts a Board drives.
// Nil fields fall back to the synchronous implementations below.
type Collaborators struct {
	Factory     PieceFactory
	Mover       Mover
	Destroyer   Destroyer
	Highlighter Highlighter
	Scheduler   Scheduler
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Factory == nil {
		c.Factory = &SequentialFactory{}
	}
	if c.Mover == nil {
		c.Mover = ImmediateMover{}
	}
	if c.Destroyer == nil {
		c.Destroyer = NopDestroyer{}
	}
	if c.Highlighter == nil {
		c.Highlighter = NopHighlighter{}
	}
	if c.Scheduler == nil {
		c.Scheduler = ImmediateScheduler{}
	}
	return c
}

// SequentialFactory hands out pieces with increasing IDs.
type SequentialFactory struct {
	next PieceID
}

// NewPiece implements PieceFactory.
func (f *SequentialFactory) NewPiece(t MatchType, at Coord) *Piece {
	f.next++
	return &Piece{ID: f.next, Type: t, X: at.X, Y: at.Y}
}

// ImmediateMover completes every move synchronously.
type ImmediateMover struct{}

// Move implements Mover.
func (ImmediateMover) Move(_ *Piece, _ Coord, _ time.Duration, done func()) {
	if done != nil {
		done()
	}
}

// ImmediateScheduler runs continuations without waiting.
type ImmediateScheduler struct{}

// After implements Scheduler.
func (ImmediateScheduler) After(_ time.Duration, fn func()) {
	fn()
}

// NopDestroyer ignores destroy requests.
type NopDestroyer struct{}

// Destroy implements Destroyer.
func (NopDestroyer) Destroy(*Piece) {}

// NopHighlighter ignores highlight requests.
type NopHighlighter struct{}

// HighlightOn implements Highlighter.
func (NopHighlighter) HighlightOn(Coord, MatchType) {}

// HighlightOff implements Highlighter.
func (NopHighlighter) HighlightOff(Coord) {}
