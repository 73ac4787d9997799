package match3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseColumnAfterClear(t *testing.T) {
	g := gridFromRows(
		"..Y",
		"..B",
		"..M",
		"..I",
		"..G",
		"..T",
	)
	g.Remove(2, 0)
	g.Remove(2, 1)

	var before []PieceID
	for y := 2; y < 6; y++ {
		before = append(before, g.At(2, y).ID)
	}

	moves := CollapseColumn(g, 2)
	require.Len(t, moves, 4)

	for y := 0; y < 4; y++ {
		p := g.At(2, y)
		require.NotNil(t, p, "row %d", y)
		assert.Equal(t, before[y], p.ID)
		assert.Equal(t, Coord{X: 2, Y: y}, p.Coord())
	}
	assert.True(t, g.Empty(2, 4))
	assert.True(t, g.Empty(2, 5))

	for _, m := range moves {
		assert.Equal(t, m.To, m.Piece.Coord())
		assert.Greater(t, m.From.Y, m.To.Y)
	}
}

func TestCollapseColumnNoGaps(t *testing.T) {
	g := gridFromRows("Y", "B", "M")
	assert.Empty(t, CollapseColumn(g, 0))
	assert.Empty(t, CollapseColumn(g, 5))
}

func TestCollapsePreservesColumnContents(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := &SequentialFactory{}

	for round := 0; round < 50; round++ {
		height := 3 + rng.Intn(8)
		g := NewGrid(1, height)
		var want []PieceID
		for y := 0; y < height; y++ {
			if rng.Intn(3) == 0 {
				continue
			}
			p := f.NewPiece(MatchType(rng.Intn(4)), Coord{Y: y})
			g.Place(p, 0, y)
			want = append(want, p.ID)
		}

		CollapseColumn(g, 0)

		var got []PieceID
		sawEmpty := false
		for y := 0; y < height; y++ {
			p := g.At(0, y)
			if p == nil {
				sawEmpty = true
				continue
			}
			assert.False(t, sawEmpty, "gap below occupied cell at y=%d", y)
			assert.Equal(t, y, p.Y)
			got = append(got, p.ID)
		}
		assert.Equal(t, want, got)
	}
}

func TestCollapseColumnsAccumulates(t *testing.T) {
	g := gridFromRows(
		"YBM",
		"...",
		"IGT",
	)
	g.Remove(0, 0)
	g.Remove(2, 0)

	moves := CollapseColumns(g, []int{0, 2, 0})
	require.Len(t, moves, 2)
	cols := map[int]int{}
	for _, m := range moves {
		cols[m.To.X]++
		assert.Equal(t, 0, m.To.Y)
	}
	assert.Equal(t, map[int]int{0: 1, 2: 1}, cols)
	assert.Nil(t, g.At(1, 1))
	assert.NotNil(t, g.At(1, 2), "untouched column keeps its gap")
}
