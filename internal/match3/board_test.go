package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One swap of (2,0) and (3,0) completes Y Y Y on the bottom row.
var matchRows = []string{
	"BMIY",
	"MIYB",
	"IYBM",
	"YYBY",
}

// No single swap along the bottom row produces a match here.
var staleRows = []string{
	"YBMI",
	"BMIY",
	"MIYB",
	"IYBM",
}

func TestNewBoardValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types = nil
	_, err := NewBoard(cfg, Collaborators{}, nil)
	assert.ErrorIs(t, err, ErrNoPieceTypes)

	cfg = DefaultConfig()
	cfg.Width = 0
	_, err = NewBoard(cfg, Collaborators{}, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)

	cfg = DefaultConfig()
	cfg.MinMatch = 0
	_, err = NewBoard(cfg, Collaborators{}, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestFillHasNoMatches(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		cfg := DefaultConfig()
		cfg.Types = []MatchType{Yellow, Blue, Magenta}
		cfg.Seed = seed

		b, err := NewBoard(cfg, Collaborators{}, nil)
		require.NoError(t, err)
		b.Fill()

		g := b.Grid()
		assert.Empty(t, g.EmptyCells(), "seed %d", seed)
		for _, p := range g.Pieces() {
			assert.False(t, HasMatchOnFill(g, p.Coord(), cfg.MinMatch), "seed %d at %v", seed, p.Coord())
		}
		assert.Zero(t, FindAllMatches(g, cfg.MinMatch).Len(), "seed %d", seed)
	}
}

func TestFillTerminatesWithTwoTypes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types = []MatchType{Yellow, Blue}
	cfg.Seed = 3

	b, err := NewBoard(cfg, Collaborators{}, nil)
	require.NoError(t, err)
	b.Fill()
	assert.Empty(t, b.Grid().EmptyCells())
}

func TestFillRerollDiscardsQuietly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types = []MatchType{Yellow, Blue}
	d := &recordingDestroyer{}
	f := &discardRecorder{}

	b, err := NewBoard(cfg, Collaborators{Factory: f, Destroyer: d}, nil)
	require.NoError(t, err)
	b.Fill()

	assert.Empty(t, d.destroyed, "re-rolls must not reach the destroyer")
	require.NotEmpty(t, f.discarded, "two types always force re-rolls")
	for _, id := range f.discarded {
		for _, p := range b.Grid().Pieces() {
			assert.NotEqual(t, id, p.ID)
		}
	}
}

func TestSettleReshufflesDeadBoard(t *testing.T) {
	b := testBoard(Collaborators{}, staleRows...)
	require.False(t, HasValidMove(b.Grid(), b.Config().MinMatch))

	var settled []bool
	b.OnSettled(func(matched bool) { settled = append(settled, matched) })

	b.settle(false)
	assert.Zero(t, b.Shuffles(), "a reverted swap leaves the board alone")

	b.settle(true)
	assert.Equal(t, 1, b.Shuffles())
	assert.Empty(t, b.Grid().EmptyCells())
	assert.Equal(t, []bool{false, true}, settled)

	b.Shuffle()
	assert.Equal(t, 2, b.Shuffles())
}

func TestSwapRejectsNonAdjacent(t *testing.T) {
	b, err := NewBoard(DefaultConfig(), Collaborators{}, nil)
	require.NoError(t, err)
	b.Fill()
	before := b.Grid().Clone()

	assert.True(t, b.Press(Coord{0, 0}))
	assert.False(t, b.Enter(Coord{5, 5}))
	_, ok := b.Selection().Target()
	assert.False(t, ok, "no target set")

	assert.False(t, b.Release())
	assert.Equal(t, Idle, b.Selection().State())
	assert.False(t, b.Swap(Coord{0, 0}, Coord{5, 5}))
	assert.False(t, b.Busy())

	for _, p := range b.Grid().Pieces() {
		assert.Equal(t, before.At(p.X, p.Y).ID, p.ID)
	}
}

func TestSwapIgnoresOutOfBoundsInput(t *testing.T) {
	b := testBoard(Collaborators{}, matchRows...)
	assert.False(t, b.Press(Coord{-1, 0}))
	assert.True(t, b.Press(Coord{3, 0}))
	assert.False(t, b.Enter(Coord{4, 0}))
	assert.False(t, b.Release())
}

func TestSwapWithoutMatchReverts(t *testing.T) {
	mover := &queuedMover{}
	b := testBoard(Collaborators{Mover: mover}, staleRows...)

	a := b.Grid().At(0, 0)
	c := b.Grid().At(1, 0)
	var settled []bool
	b.OnSettled(func(matched bool) { settled = append(settled, matched) })

	require.True(t, b.Press(Coord{0, 0}))
	require.True(t, b.Enter(Coord{1, 0}))
	require.True(t, b.Release())
	assert.True(t, b.Busy())
	assert.Len(t, mover.pending, 2)

	mover.flush()

	assert.False(t, b.Busy())
	assert.Equal(t, Coord{0, 0}, a.Coord())
	assert.Equal(t, Coord{1, 0}, c.Coord())
	assert.Same(t, a, b.Grid().At(0, 0))
	assert.Same(t, c, b.Grid().At(1, 0))
	assert.Zero(t, b.Moves())
	assert.Zero(t, b.Score())
	assert.Equal(t, []bool{false}, settled)
	assert.Len(t, mover.moved, 4)
}

func TestSwapWaitsForBothMoves(t *testing.T) {
	mover := &queuedMover{}
	b := testBoard(Collaborators{Mover: mover}, matchRows...)

	require.True(t, b.Swap(Coord{2, 0}, Coord{3, 0}))
	assert.False(t, b.Swap(Coord{0, 0}, Coord{1, 0}), "busy board rejects swaps")

	// Only one piece has arrived; nothing may be cleared yet.
	first := mover.pending[0]
	mover.pending = mover.pending[1:]
	first()
	assert.Zero(t, b.Moves())
	assert.Empty(t, b.Grid().EmptyCells())

	mover.flush()
	assert.False(t, b.Busy())
	assert.Equal(t, 1, b.Moves())
}

func TestSwapWithMatchClearsAndRefills(t *testing.T) {
	d := &recordingDestroyer{}
	h := &recordingHighlighter{}
	b := testBoard(Collaborators{Destroyer: d, Highlighter: h}, matchRows...)

	cleared := []PieceID{
		b.Grid().At(0, 0).ID,
		b.Grid().At(1, 0).ID,
		b.Grid().At(3, 0).ID, // the yellow that moves into (2,0)
	}
	var settled []bool
	b.OnSettled(func(matched bool) { settled = append(settled, matched) })

	require.True(t, b.Swap(Coord{2, 0}, Coord{3, 0}))

	assert.False(t, b.Busy())
	assert.Equal(t, 1, b.Moves())
	assert.GreaterOrEqual(t, b.Score(), 3*b.Config().PointsPerPiece)
	assert.GreaterOrEqual(t, b.BestCascade(), 1)
	assert.Subset(t, d.destroyed, cleared)
	assert.Empty(t, b.Grid().EmptyCells())
	assert.Zero(t, FindAllMatches(b.Grid(), b.Config().MinMatch).Len())
	assert.Equal(t, []bool{true}, settled)

	for _, p := range b.Grid().Pieces() {
		assert.True(t, b.Grid().InBounds(p.X, p.Y))
		assert.Same(t, p, b.Grid().At(p.X, p.Y))
	}
}

func TestRefillSpawnsAboveBoard(t *testing.T) {
	f := &spawnRecorder{}
	b := testBoard(Collaborators{Factory: f}, matchRows...)
	f.spawned = nil

	require.True(t, b.Swap(Coord{2, 0}, Coord{3, 0}))

	height := b.Grid().Height()
	var above int
	for _, at := range f.spawned {
		if at.Y >= height {
			above++
			assert.Less(t, at.Y-height, height)
		}
	}
	assert.GreaterOrEqual(t, above, 3)
}

func TestShuffleLeavesNoMatches(t *testing.T) {
	b := testBoard(Collaborators{}, staleRows...)
	b.Shuffle()
	assert.Empty(t, b.Grid().EmptyCells())
	assert.Zero(t, FindAllMatches(b.Grid(), 3).Len())
}

func TestHintHighlightsBestSwap(t *testing.T) {
	h := &recordingHighlighter{}
	b := testBoard(Collaborators{Highlighter: h}, matchRows...)

	s, ok := b.Hint()
	require.True(t, ok)
	assert.GreaterOrEqual(t, s.Cleared, 3)
	assert.True(t, Adjacent(s.From, s.To))
	assert.Contains(t, h.on, s.From)
	assert.Contains(t, h.on, s.To)
}

func TestHighlightMatchesAt(t *testing.T) {
	h := &recordingHighlighter{}
	b := testBoard(Collaborators{Highlighter: h}, "YYY", "BMI")

	b.HighlightMatchesAt(Coord{1, 0})
	assert.Empty(t, h.on)

	h.HighlightOn(Coord{2, 1}, Blue)
	b.HighlightMatchesAt(Coord{2, 1})
	assert.Len(t, h.on, 3)
	assert.Equal(t, Yellow, h.on[Coord{0, 1}])
	assert.Equal(t, Yellow, h.on[Coord{2, 1}], "stale emphasis is replaced")
}

func TestSetTypesRejectsEmpty(t *testing.T) {
	b := testBoard(Collaborators{}, staleRows...)
	assert.ErrorIs(t, b.SetTypes(nil), ErrNoPieceTypes)
	require.NoError(t, b.SetTypes([]MatchType{Green, Teal, Red}))
	assert.Equal(t, []MatchType{Green, Teal, Red}, b.Types())
}

func TestFindValidMoves(t *testing.T) {
	g := gridFromRows(matchRows...)
	moves := FindValidMoves(g, 3)
	require.NotEmpty(t, moves)
	for i := 1; i < len(moves); i++ {
		assert.GreaterOrEqual(t, moves[i-1].Cleared, moves[i].Cleared)
	}

	var found bool
	for _, m := range moves {
		if m.From == (Coord{2, 0}) && m.To == (Coord{3, 0}) {
			found = true
			assert.Equal(t, 3, m.Cleared)
		}
	}
	assert.True(t, found)

	// The search must not disturb the caller's grid.
	assert.Equal(t, Blue, g.At(2, 0).Type)

	assert.False(t, HasValidMove(gridFromRows("YB", "BY"), 3))
}
