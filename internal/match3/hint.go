package match3

import "sort"

// Swap is a candidate exchange of two adjacent cells.
type Swap struct {
	From, To Coord
	// Cleared is the number of pieces the swap would clear immediately.
	Cleared int
}

// FindValidMoves returns every adjacent swap that produces a match,
// best (most pieces cleared) first. Ties keep scan order.
func FindValidMoves(g *Grid, minLen int) []Swap {
	var moves []Swap
	scratch := g.Clone()

	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			from := Coord{X: x, Y: y}
			for _, dir := range []Direction{Right, Up} {
				to := from.Add(dir.Offset())
				if scratch.Empty(from.X, from.Y) || scratch.Empty(to.X, to.Y) {
					continue
				}
				if n := swapClears(scratch, from, to, minLen); n > 0 {
					moves = append(moves, Swap{From: from, To: to, Cleared: n})
				}
			}
		}
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Cleared > moves[j].Cleared
	})
	return moves
}

// swapClears tries the swap on g, measures it, and swaps back.
func swapClears(g *Grid, a, b Coord, minLen int) int {
	if g.AtCoord(a).Type == g.AtCoord(b).Type {
		return 0
	}
	g.Swap(a, b)
	set := FindMatchesAt(g, a, minLen)
	set.Union(FindMatchesAt(g, b, minLen))
	g.Swap(a, b)
	return set.Len()
}

// HasValidMove reports whether any swap on g produces a match.
func HasValidMove(g *Grid, minLen int) bool {
	return len(FindValidMoves(g, minLen)) > 0
}
