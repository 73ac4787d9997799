// Package match3 implements the board logic of a tile-matching puzzle:
// grid state, run detection, gravity collapse, seeding and the swap
// resolution sequence. It has no terminal dependencies; rendering,
// animation and input devices are reached through the collaborator
// interfaces in collaborators.go.
package match3

import (
	"errors"
	"fmt"
	"strings"
)

// MatchType is the categorical tag of a piece. Pieces match only when
// their tags are equal.
type MatchType uint8

const (
	Yellow MatchType = iota
	Blue
	Magenta
	Indigo
	Green
	Teal
	Red
	Cyan
	Wild
)

var matchTypeNames = [...]string{
	Yellow:  "yellow",
	Blue:    "blue",
	Magenta: "magenta",
	Indigo:  "indigo",
	Green:   "green",
	Teal:    "teal",
	Red:     "red",
	Cyan:    "cyan",
	Wild:    "wild",
}

// ErrUnknownMatchType is returned by ParseMatchType for unrecognized names.
var ErrUnknownMatchType = errors.New("match3: unknown match type")

// String returns the lowercase name of the type.
func (t MatchType) String() string {
	if int(t) < len(matchTypeNames) {
		return matchTypeNames[t]
	}
	return fmt.Sprintf("MatchType(%d)", t)
}

// ParseMatchType converts a config name (case-insensitive) to a MatchType.
func ParseMatchType(name string) (MatchType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range matchTypeNames {
		if n == name {
			return MatchType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMatchType, name)
}

// ParseMatchTypes converts a list of names, failing on the first unknown one.
func ParseMatchTypes(names []string) ([]MatchType, error) {
	types := make([]MatchType, 0, len(names))
	for _, n := range names {
		t, err := ParseMatchType(n)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// StandardTypes returns every non-wild type in declaration order.
func StandardTypes() []MatchType {
	return []MatchType{Yellow, Blue, Magenta, Indigo, Green, Teal, Red, Cyan}
}

// Coord is a cell coordinate. Row 0 is the bottom row; pieces fall
// toward decreasing y.
type Coord struct {
	X, Y int
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four cardinal search directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Offset returns the unit step for the direction.
func (d Direction) Offset() Coord {
	switch d {
	case Up:
		return Coord{X: 0, Y: 1}
	case Down:
		return Coord{X: 0, Y: -1}
	case Left:
		return Coord{X: -1, Y: 0}
	case Right:
		return Coord{X: 1, Y: 0}
	}
	return Coord{}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Adjacent reports whether two cells share an edge (no diagonals).
func Adjacent(a, b Coord) bool {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
