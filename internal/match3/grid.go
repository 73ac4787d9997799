package match3

// PieceID identifies a piece for the lifetime of a board.
type PieceID uint64

// Piece is a typed occupant of a grid cell. X and Y always equal the
// cell the grid holds it in while the piece is on the board.
type Piece struct {
	ID   PieceID
	Type MatchType
	X, Y int
}

// Coord returns the piece's current coordinate.
func (p *Piece) Coord() Coord {
	return Coord{X: p.X, Y: p.Y}
}

// SetCoord updates the piece's coordinate.
func (p *Piece) SetCoord(x, y int) {
	p.X = x
	p.Y = y
}

// Grid is a dense width*height buffer of optional pieces.
type Grid struct {
	width  int
	height int
	cells  []*Piece
}

// NewGrid allocates an empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]*Piece, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// At returns the piece at (x, y), or nil for empty or out-of-bounds cells.
func (g *Grid) At(x, y int) *Piece {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[g.index(x, y)]
}

// AtCoord is At for a Coord.
func (g *Grid) AtCoord(c Coord) *Piece {
	return g.At(c.X, c.Y)
}

// Place puts p at (x, y) and updates its coordinate. Out-of-bounds
// placements only update the coordinate; this is how pieces are staged
// above the board before dropping in.
func (g *Grid) Place(p *Piece, x, y int) {
	if p == nil {
		return
	}
	if g.InBounds(x, y) {
		g.cells[g.index(x, y)] = p
	}
	p.SetCoord(x, y)
}

// Remove empties (x, y) and returns the piece that was there.
func (g *Grid) Remove(x, y int) *Piece {
	if !g.InBounds(x, y) {
		return nil
	}
	i := g.index(x, y)
	p := g.cells[i]
	g.cells[i] = nil
	return p
}

// Swap exchanges the occupants of a and b, keeping coordinates in sync.
func (g *Grid) Swap(a, b Coord) {
	if !g.InBounds(a.X, a.Y) || !g.InBounds(b.X, b.Y) {
		return
	}
	pa := g.Remove(a.X, a.Y)
	pb := g.Remove(b.X, b.Y)
	g.Place(pa, b.X, b.Y)
	g.Place(pb, a.X, a.Y)
}

// Empty reports whether the cell holds no piece.
func (g *Grid) Empty(x, y int) bool {
	return g.At(x, y) == nil
}

// Pieces returns all pieces column by column, bottom to top.
func (g *Grid) Pieces() []*Piece {
	out := make([]*Piece, 0, len(g.cells))
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if p := g.At(x, y); p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// EmptyCells returns the coordinates of all empty cells, column by
// column, bottom to top.
func (g *Grid) EmptyCells() []Coord {
	var out []Coord
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.Empty(x, y) {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// Clone returns a deep copy. Cloned pieces keep their IDs.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for i, p := range g.cells {
		if p != nil {
			cp := *p
			c.cells[i] = &cp
		}
	}
	return c
}
