package match3

// Move records a piece relocation produced by collapse or refill.
type Move struct {
	Piece *Piece
	From  Coord
	To    Coord
}

// CollapseColumn lets the pieces of column x fall into the empty cells
// beneath them. Relative order within the column is preserved and no
// empty cell is left under an occupied one. Each moved piece appears
// once in the result, in the order it landed.
func CollapseColumn(g *Grid, x int) []Move {
	if x < 0 || x >= g.Width() {
		return nil
	}

	var moves []Move
	for y := 0; y < g.Height()-1; y++ {
		if !g.Empty(x, y) {
			continue
		}
		for above := y + 1; above < g.Height(); above++ {
			p := g.Remove(x, above)
			if p == nil {
				continue
			}
			g.Place(p, x, y)
			moves = append(moves, Move{
				Piece: p,
				From:  Coord{X: x, Y: above},
				To:    Coord{X: x, Y: y},
			})
			break
		}
	}
	return moves
}

// CollapseColumns collapses every distinct column in cols and
// accumulates the moves of all of them.
func CollapseColumns(g *Grid, cols []int) []Move {
	var moves []Move
	seen := make(map[int]bool, len(cols))
	for _, x := range cols {
		if seen[x] {
			continue
		}
		seen[x] = true
		moves = append(moves, CollapseColumn(g, x)...)
	}
	return moves
}
