package match3

// DefaultMinMatch is the shortest run that counts as a match.
const DefaultMinMatch = 3

// axisMinMatch is the per-side minimum used when combining two opposite
// runs: a single equal neighbour on one side still contributes.
const axisMinMatch = 2

// FindMatches walks from start in dir collecting the run of pieces that
// share the start piece's type. The run includes the start piece.
// It returns nil and false when the start cell is empty or the run is
// shorter than minLen; a short run is never returned.
func FindMatches(g *Grid, start Coord, dir Direction, minLen int) (*MatchSet, bool) {
	origin := g.AtCoord(start)
	if origin == nil {
		return nil, false
	}

	run := NewMatchSet(origin)
	step := dir.Offset()
	maxSteps := max(g.Width(), g.Height())

	next := start
	for i := 1; i < maxSteps; i++ {
		next = next.Add(step)
		if !g.InBounds(next.X, next.Y) {
			break
		}
		p := g.AtCoord(next)
		if p == nil || p.Type != origin.Type {
			break
		}
		if !run.Add(p) {
			break
		}
	}

	if run.Len() < minLen {
		return nil, false
	}
	return run, true
}

// findAxisMatches unions the runs in two opposite directions and accepts
// the union only when it reaches minLen.
func findAxisMatches(g *Grid, start Coord, a, b Direction, minLen int) (*MatchSet, bool) {
	combined := NewMatchSet()
	if run, ok := FindMatches(g, start, a, axisMinMatch); ok {
		combined.Union(run)
	}
	if run, ok := FindMatches(g, start, b, axisMinMatch); ok {
		combined.Union(run)
	}
	if combined.Len() < minLen {
		return nil, false
	}
	return combined, true
}

// FindHorizontalMatches returns the left/right run through start.
func FindHorizontalMatches(g *Grid, start Coord, minLen int) (*MatchSet, bool) {
	return findAxisMatches(g, start, Right, Left, minLen)
}

// FindVerticalMatches returns the up/down run through start.
func FindVerticalMatches(g *Grid, start Coord, minLen int) (*MatchSet, bool) {
	return findAxisMatches(g, start, Up, Down, minLen)
}

// FindMatchesAt combines the horizontal and vertical matches through a
// cell. The result is empty when neither axis qualifies.
func FindMatchesAt(g *Grid, c Coord, minLen int) *MatchSet {
	all := NewMatchSet()
	if h, ok := FindHorizontalMatches(g, c, minLen); ok {
		all.Union(h)
	}
	if v, ok := FindVerticalMatches(g, c, minLen); ok {
		all.Union(v)
	}
	return all
}

// FindAllMatches scans every cell and returns the union of all matches.
func FindAllMatches(g *Grid, minLen int) *MatchSet {
	all := NewMatchSet()
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if g.Empty(x, y) {
				continue
			}
			all.Union(FindMatchesAt(g, Coord{X: x, Y: y}, minLen))
		}
	}
	return all
}

// HasMatchOnFill reports whether the piece at c completes a run looking
// only left and down. During a column-major bottom-up fill those are the
// only neighbours that already exist.
func HasMatchOnFill(g *Grid, c Coord, minLen int) bool {
	if _, ok := FindMatches(g, c, Left, minLen); ok {
		return true
	}
	_, ok := FindMatches(g, c, Down, minLen)
	return ok
}
