package match3

import (
	"time"

	m3 "github.com/vovakirdan/tui-match3/internal/match3"
)

// Animation constants
const (
	fadeTicks = 12 // ~200ms at 60fps
)

// sprite is the on-screen representation of a piece. Its position is
// in board cells and may lie above the board while a refill drops in.
type sprite struct {
	id   m3.PieceID
	kind m3.MatchType

	x, y         float64
	fromX, fromY float64
	toX, toY     float64
	ticks, total int
	moving       bool
	done         func()
}

// fade is a cleared piece shown briefly after it left the grid.
type fade struct {
	kind      m3.MatchType
	x, y      float64
	remaining int
}

type timer struct {
	remaining int
	fn        func()
}

// animator drives the board's collaborators from the game tick.
// Durations are converted to whole ticks; a zero-tick wait completes
// synchronously.
type animator struct {
	tickRate int
	nextID   m3.PieceID

	sprites    map[m3.PieceID]*sprite
	moving     []*sprite
	fades      []fade
	timers     []timer
	highlights map[m3.Coord]m3.MatchType
}

func newAnimator(tickRate int) *animator {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &animator{
		tickRate:   tickRate,
		sprites:    make(map[m3.PieceID]*sprite),
		highlights: make(map[m3.Coord]m3.MatchType),
	}
}

func (a *animator) collaborators() m3.Collaborators {
	return m3.Collaborators{
		Factory:     a,
		Mover:       a,
		Destroyer:   a,
		Highlighter: a,
		Scheduler:   a,
	}
}

// ticksFor rounds d up to whole ticks.
func (a *animator) ticksFor(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d*time.Duration(a.tickRate) + time.Second - 1) / time.Second)
}

// NewPiece implements match3.PieceFactory.
func (a *animator) NewPiece(t m3.MatchType, at m3.Coord) *m3.Piece {
	a.nextID++
	p := &m3.Piece{ID: a.nextID, Type: t, X: at.X, Y: at.Y}
	a.sprites[p.ID] = &sprite{id: p.ID, kind: t, x: float64(at.X), y: float64(at.Y)}
	return p
}

// Move implements match3.Mover.
func (a *animator) Move(p *m3.Piece, to m3.Coord, d time.Duration, done func()) {
	s, ok := a.sprites[p.ID]
	if !ok {
		s = &sprite{id: p.ID, kind: p.Type, x: float64(to.X), y: float64(to.Y)}
		a.sprites[p.ID] = s
	}
	if s.moving && s.done != nil {
		// A new target supersedes the old one; the old waiter is released.
		prev := s.done
		s.done = nil
		prev()
	}

	s.fromX, s.fromY = s.x, s.y
	s.toX, s.toY = float64(to.X), float64(to.Y)
	s.ticks = 0
	s.total = a.ticksFor(d)
	s.done = done

	if s.total == 0 {
		s.x, s.y = s.toX, s.toY
		s.moving = false
		s.done = nil
		if done != nil {
			done()
		}
		return
	}
	if !s.moving {
		s.moving = true
		a.moving = append(a.moving, s)
	}
}

// Destroy implements match3.Destroyer.
func (a *animator) Destroy(p *m3.Piece) {
	s, ok := a.sprites[p.ID]
	if !ok {
		return
	}
	delete(a.sprites, p.ID)
	a.fades = append(a.fades, fade{kind: s.kind, x: s.x, y: s.y, remaining: fadeTicks})
}

// Discard implements match3.Discarder. The sprite goes without a fade.
func (a *animator) Discard(p *m3.Piece) {
	delete(a.sprites, p.ID)
}

// HighlightOn implements match3.Highlighter.
func (a *animator) HighlightOn(c m3.Coord, t m3.MatchType) {
	a.highlights[c] = t
}

// HighlightOff implements match3.Highlighter.
func (a *animator) HighlightOff(c m3.Coord) {
	delete(a.highlights, c)
}

// After implements match3.Scheduler.
func (a *animator) After(d time.Duration, fn func()) {
	n := a.ticksFor(d)
	if n == 0 {
		fn()
		return
	}
	a.timers = append(a.timers, timer{remaining: n, fn: fn})
}

// busy reports whether any move or timer is pending.
func (a *animator) busy() bool {
	return len(a.moving) > 0 || len(a.timers) > 0
}

// advance moves every animation forward one tick. Completion callbacks
// run after all state is updated, in the order the work was started.
func (a *animator) advance() {
	var callbacks []func()

	still := a.moving[:0]
	for _, s := range a.moving {
		if !s.moving {
			continue
		}
		s.ticks++
		t := easeOutQuad(float64(s.ticks) / float64(s.total))
		s.x = s.fromX + (s.toX-s.fromX)*t
		s.y = s.fromY + (s.toY-s.fromY)*t
		if s.ticks < s.total {
			still = append(still, s)
			continue
		}
		s.x, s.y = s.toX, s.toY
		s.moving = false
		if s.done != nil {
			callbacks = append(callbacks, s.done)
			s.done = nil
		}
	}
	a.moving = still

	pending := a.timers[:0]
	for _, tm := range a.timers {
		tm.remaining--
		if tm.remaining <= 0 {
			callbacks = append(callbacks, tm.fn)
			continue
		}
		pending = append(pending, tm)
	}
	a.timers = pending

	fades := a.fades[:0]
	for _, f := range a.fades {
		f.remaining--
		if f.remaining > 0 {
			fades = append(fades, f)
		}
	}
	a.fades = fades

	for _, fn := range callbacks {
		fn()
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return t * (2 - t)
}
