package core

import (
	"strings"
	"testing"
)

// lines joins rows the way Screen.String does.
func lines(rows ...string) string {
	return strings.Join(rows, "\n")
}

func TestScreenStartsBlank(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if got, want := s.String(), lines("    ", "    "); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenBoardFrame(t *testing.T) {
	// A 2x2 board three columns per cell wide, framed as the game draws it.
	s := NewScreen(8, 4)
	s.DrawBox(NewRect(0, 0, 8, 4), ColorGray)
	s.DrawTextColored(2, 1, "●", ColorBrightYellow)
	s.DrawTextColored(5, 1, "■", ColorBrightBlue)
	s.DrawTextColored(2, 2, "▲  ♥", ColorBrightMagenta)

	want := lines(
		"┌──────┐",
		"│ ●  ■ │",
		"│ ▲  ♥ │",
		"└──────┘",
	)
	if got := s.String(); got != want {
		t.Errorf("frame:\n%s\nwant:\n%s", got, want)
	}
	if c := s.GetCell(0, 0); c.Color != ColorGray {
		t.Errorf("frame color = %v, want gray", c.Color)
	}
	if c := s.GetCell(5, 1); c.Color != ColorBrightBlue {
		t.Errorf("piece color = %v, want bright blue", c.Color)
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(3, 0, "Score")
	s.DrawText(-2, 1, "xyHi")
	s.Set(9, 9, 'Z')
	s.SetCell(-1, -1, Cell{Rune: 'Z'})

	if got, want := s.String(), lines("   Sc", "Hi   "); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if r := s.Get(-1, 0); r != ' ' {
		t.Errorf("Get outside = %q, want space", r)
	}
	if row := s.Row(7); row != "     " {
		t.Errorf("Row outside = %q, want blanks", row)
	}
}

func TestScreenCenteredHUD(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "x3!", ColorBrightYellow)
	if got := s.Row(0); got != "    x3!    " {
		t.Errorf("Row(0) = %q", got)
	}

	// Centering counts runes, not bytes.
	s.Clear()
	s.DrawTextCentered(0, "★★★", ColorBrightCyan)
	if got := s.Row(0); got != "    ★★★    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "abcdef")
	s.DrawText(0, 2, "ghijkl")

	s.Resize(3, 2)
	if got, want := s.String(), lines("abc", "   "); got != want {
		t.Errorf("after shrink = %q, want %q", got, want)
	}

	s.Resize(4, 3)
	if got, want := s.String(), lines("abc ", "    ", "    "); got != want {
		t.Errorf("after grow = %q, want %q", got, want)
	}
}

func TestScreenClearResetsStyle(t *testing.T) {
	s := NewScreen(3, 1)
	s.SetCell(1, 0, Cell{Rune: '◆', Color: ColorIndigo, Reverse: true})

	if c := s.GetCell(1, 0); !c.Reverse || c.Color != ColorIndigo {
		t.Fatalf("GetCell = %+v, want reversed indigo", c)
	}

	s.Clear()
	if c := s.GetCell(1, 0); c != blankCell {
		t.Errorf("after Clear = %+v, want blank", c)
	}
}
