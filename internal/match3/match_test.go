package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatchesThreeInRow(t *testing.T) {
	g := gridFromRows(
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"YYB.....",
	)

	assert.Zero(t, FindMatchesAt(g, Coord{X: 0, Y: 0}, 3).Len())

	g.Remove(2, 0)
	g.Place(&Piece{ID: 99, Type: Yellow}, 2, 0)

	set := FindMatchesAt(g, Coord{X: 2, Y: 0}, 3)
	require.Equal(t, 3, set.Len())
	assert.Equal(t, map[Coord]bool{
		{X: 0, Y: 0}: true,
		{X: 1, Y: 0}: true,
		{X: 2, Y: 0}: true,
	}, coordsOf(set))
}

func TestFindMatchesNeverReturnsShortRun(t *testing.T) {
	g := gridFromRows(
		"YYBBB",
	)

	tests := []struct {
		name   string
		start  Coord
		dir    Direction
		minLen int
		want   int
	}{
		{"pair below min", Coord{X: 0, Y: 0}, Right, 3, 0},
		{"pair at min", Coord{X: 0, Y: 0}, Right, 2, 2},
		{"triple", Coord{X: 2, Y: 0}, Right, 3, 3},
		{"triple backwards", Coord{X: 4, Y: 0}, Left, 3, 3},
		{"stops at type change", Coord{X: 1, Y: 0}, Right, 2, 0},
		{"out of bounds start", Coord{X: 9, Y: 0}, Right, 1, 0},
		{"runs off edge", Coord{X: 4, Y: 0}, Right, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := FindMatches(g, tt.start, tt.dir, tt.minLen)
			if tt.want == 0 {
				assert.False(t, ok)
				assert.Zero(t, set.Len())
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, set.Len())
			assert.GreaterOrEqual(t, set.Len(), tt.minLen)
		})
	}
}

func TestFindMatchesEmptyStart(t *testing.T) {
	g := gridFromRows("Y.YY")
	_, ok := FindMatches(g, Coord{X: 1, Y: 0}, Right, 1)
	assert.False(t, ok)
}

func TestFindMatchesStopsAtGap(t *testing.T) {
	g := gridFromRows("YY.YY")
	_, ok := FindMatches(g, Coord{X: 0, Y: 0}, Right, 3)
	assert.False(t, ok)
}

func TestAxisMatchMiddlePiece(t *testing.T) {
	// The middle of a run sees one neighbour on each side.
	g := gridFromRows("BYYYB")

	set, ok := FindHorizontalMatches(g, Coord{X: 2, Y: 0}, 3)
	require.True(t, ok)
	assert.Equal(t, 3, set.Len())
}

func TestAxisMatchSymmetric(t *testing.T) {
	g := gridFromRows(
		"Y",
		"Y",
		"Y",
		"Y",
		"B",
	)
	start := Coord{X: 0, Y: 2}

	a, okA := findAxisMatches(g, start, Up, Down, 3)
	b, okB := findAxisMatches(g, start, Down, Up, 3)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, coordsOf(a), coordsOf(b))
	assert.Equal(t, 4, a.Len())
}

func TestFindMatchesAtCombinesAxes(t *testing.T) {
	g := gridFromRows(
		"Y..",
		"Y..",
		"YYY",
	)

	set := FindMatchesAt(g, Coord{X: 0, Y: 0}, 3)
	assert.Equal(t, 5, set.Len(), "corner piece is counted once")

	none := FindMatchesAt(g, Coord{X: 1, Y: 1}, 3)
	assert.Zero(t, none.Len())
}

func TestWildMatchesOnlyWild(t *testing.T) {
	g := gridFromRows("YWY", "WWW")

	assert.Zero(t, FindMatchesAt(g, Coord{X: 0, Y: 1}, 3).Len())
	assert.Equal(t, 3, FindMatchesAt(g, Coord{X: 1, Y: 0}, 3).Len())
}

func TestFindAllMatches(t *testing.T) {
	g := gridFromRows(
		"BBBY",
		"MIYI",
		"MYIM",
		"MIMY",
	)

	set := FindAllMatches(g, 3)
	assert.Equal(t, 6, set.Len())
	cols := set.Columns()
	assert.ElementsMatch(t, []int{0, 1, 2}, cols)
}

func TestHasMatchOnFillLooksBackwardOnly(t *testing.T) {
	g := gridFromRows(
		"...",
		"Y..",
		"YYY",
	)

	assert.True(t, HasMatchOnFill(g, Coord{X: 2, Y: 0}, 3))
	// The run to the right of (0,0) is not visible during a fill.
	assert.False(t, HasMatchOnFill(g, Coord{X: 0, Y: 0}, 3))

	g.Place(&Piece{ID: 50, Type: Yellow}, 0, 2)
	assert.True(t, HasMatchOnFill(g, Coord{X: 0, Y: 2}, 3))
}

func TestMatchSetDeduplicates(t *testing.T) {
	p := &Piece{ID: 1}
	q := &Piece{ID: 2}

	var s MatchSet
	assert.True(t, s.Add(p))
	assert.False(t, s.Add(p))
	assert.False(t, s.Add(nil))

	other := NewMatchSet(p, q)
	s.Union(other)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(q))
	var empty *MatchSet
	assert.False(t, empty.Contains(q))
	assert.Zero(t, empty.Len())
}

func TestMatchSetSharedByPointer(t *testing.T) {
	a := &Piece{ID: 1}
	b := &Piece{ID: 2}

	s := NewMatchSet(a)
	alias := s
	alias.Add(b)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []*Piece{a, b}, s.Pieces())

	c := s.Clone()
	c.Add(&Piece{ID: 3})
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(&Piece{ID: 3}))
	assert.Equal(t, 3, c.Len())
	assert.False(t, s.Add(b))
}

func TestFindMatchesShortRunIsNil(t *testing.T) {
	g := gridFromRows("YYB")
	run, ok := FindMatches(g, Coord{X: 0, Y: 0}, Right, 3)
	assert.False(t, ok)
	assert.Nil(t, run)
	assert.Zero(t, FindMatchesAt(g, Coord{X: 0, Y: 0}, 3).Len())
}
