package match3

import "github.com/kamstrup/intmap"

// MatchSet is an insertion-ordered set of pieces, deduplicated by ID.
// Sets are shared by pointer; use Clone for an independent copy.
// Read methods accept a nil set and treat it as empty.
type MatchSet struct {
	pieces []*Piece
	index  *intmap.Map[PieceID, int]
}

// NewMatchSet returns a set holding the given pieces.
func NewMatchSet(pieces ...*Piece) *MatchSet {
	s := &MatchSet{index: intmap.New[PieceID, int](max(len(pieces), 8))}
	for _, p := range pieces {
		s.Add(p)
	}
	return s
}

// Add inserts p unless it is nil or already present.
// Returns true if the set grew.
func (s *MatchSet) Add(p *Piece) bool {
	if p == nil {
		return false
	}
	if s.index == nil {
		s.index = intmap.New[PieceID, int](8)
	}
	if _, ok := s.index.Get(p.ID); ok {
		return false
	}
	s.index.Put(p.ID, len(s.pieces))
	s.pieces = append(s.pieces, p)
	return true
}

// Union adds every piece of other to s.
func (s *MatchSet) Union(other *MatchSet) {
	if other == nil {
		return
	}
	for _, p := range other.pieces {
		s.Add(p)
	}
}

// Clone returns a copy that shares no state with s.
func (s *MatchSet) Clone() *MatchSet {
	out := NewMatchSet()
	out.Union(s)
	return out
}

// Contains reports whether a piece with p's ID is in the set.
func (s *MatchSet) Contains(p *Piece) bool {
	if s == nil || p == nil || s.index == nil {
		return false
	}
	_, ok := s.index.Get(p.ID)
	return ok
}

// Len returns the number of pieces.
func (s *MatchSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pieces)
}

// Pieces returns the pieces in insertion order. The slice is shared.
func (s *MatchSet) Pieces() []*Piece {
	if s == nil {
		return nil
	}
	return s.pieces
}

// Coords returns the current coordinate of every piece in insertion order.
func (s *MatchSet) Coords() []Coord {
	pieces := s.Pieces()
	out := make([]Coord, len(pieces))
	for i, p := range pieces {
		out[i] = p.Coord()
	}
	return out
}

// Columns returns the distinct x coordinates in first-seen order.
func (s *MatchSet) Columns() []int {
	pieces := s.Pieces()
	seen := make(map[int]bool, len(pieces))
	var cols []int
	for _, p := range pieces {
		if !seen[p.X] {
			seen[p.X] = true
			cols = append(cols, p.X)
		}
	}
	return cols
}
