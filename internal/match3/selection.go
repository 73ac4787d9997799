package match3

// SelectionState is the phase of the press-drag-release interaction.
type SelectionState int

const (
	Idle SelectionState = iota
	Selected
	Targeted
)

func (s SelectionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Targeted:
		return "targeted"
	}
	return "unknown"
}

// Selection tracks the clicked cell and the adjacent drag target.
type Selection struct {
	clicked Coord
	target  Coord
	state   SelectionState
}

// State returns the current phase.
func (s *Selection) State() SelectionState {
	return s.state
}

// Clicked returns the pressed cell, if any.
func (s *Selection) Clicked() (Coord, bool) {
	return s.clicked, s.state != Idle
}

// Target returns the drag target, if any.
func (s *Selection) Target() (Coord, bool) {
	return s.target, s.state == Targeted
}

// Press registers the first click. Presses while a cell is already
// selected are ignored.
func (s *Selection) Press(c Coord) bool {
	if s.state != Idle {
		return false
	}
	s.clicked = c
	s.state = Selected
	return true
}

// Enter records c as the target when it is adjacent to the clicked
// cell. Non-adjacent cells leave the current target unchanged.
func (s *Selection) Enter(c Coord) bool {
	if s.state == Idle || !Adjacent(s.clicked, c) {
		return false
	}
	s.target = c
	s.state = Targeted
	return true
}

// Release ends the interaction and returns the swap pair when a target
// was reached. The selection is always back to Idle afterwards.
func (s *Selection) Release() (from, to Coord, ok bool) {
	from, to, ok = s.clicked, s.target, s.state == Targeted
	s.Reset()
	return from, to, ok
}

// Reset returns to Idle without producing a swap.
func (s *Selection) Reset() {
	*s = Selection{}
}
