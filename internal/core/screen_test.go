package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("NewScreen(6, 3) size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got, expected := s.String(), "      \n      \n      "; got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}

	empty := NewScreen(-2, 4)
	if empty.Width() != 0 || empty.String() != "\n\n\n" {
		t.Errorf("NewScreen(-2, 4) = %dx%d %q, expected an empty 0x4 screen", empty.Width(), empty.Height(), empty.String())
	}
}

func TestScreenBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		in   bool
	}{
		{"origin", 0, 0, true},
		{"last cell", 4, 2, true},
		{"left of screen", -1, 0, false},
		{"right of screen", 5, 0, false},
		{"above", 0, -1, false},
		{"below", 0, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 3)
			s.SetColored(tt.x, tt.y, '@', ColorRed)

			got := s.GetCell(tt.x, tt.y)
			if tt.in && (got.Rune != '@' || got.Color != ColorRed) {
				t.Errorf("GetCell(%d, %d) = %+v, expected red '@'", tt.x, tt.y, got)
			}
			if !tt.in && got != blankCell {
				t.Errorf("GetCell(%d, %d) = %+v, expected a blank", tt.x, tt.y, got)
			}
		})
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{"inside", 1, "cat", " cat    "},
		{"clipped right", 6, "fish", "      fi"},
		{"clipped left", -2, "boss", "ss      "},
		{"multibyte", 0, "·x·", "·x·     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			s.DrawText(tt.x, 0, tt.text)
			if got := s.Row(0); got != tt.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextCentered(1, "Hi", ColorCyan)

	if got := s.Row(1); got != "    Hi    " {
		t.Errorf("Row(1) = %q, expected centered text", got)
	}
	if c := s.GetCell(5, 1).Color; c != ColorCyan {
		t.Errorf("GetCell(5, 1).Color = %v, expected %v", c, ColorCyan)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorGray)

	expected := []string{
		"┌───┐ ",
		"│   │ ",
		"└───┘ ",
		"      ",
	}
	for y, row := range expected {
		if got := s.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}
	if c := s.GetCell(4, 2).Color; c != ColorGray {
		t.Errorf("corner color = %v, expected %v", c, ColorGray)
	}
}

func TestScreenFillRectAndClear(t *testing.T) {
	s := NewScreen(5, 3)
	s.Fill('#')
	s.FillRect(NewRect(1, 1, 3, 5), '.', ColorBlue)

	if got := s.String(); got != "#####\n#...#\n#...#" {
		t.Errorf("String() = %q after FillRect", got)
	}
	if c := s.GetCell(2, 2).Color; c != ColorBlue {
		t.Errorf("GetCell(2, 2).Color = %v, expected %v", c, ColorBlue)
	}

	s.Clear()
	if got := s.GetCell(2, 2); got != blankCell {
		t.Errorf("GetCell(2, 2) after Clear = %+v, expected a blank", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size after Resize(4, 2) = %dx%d", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Hell" {
		t.Errorf("Row(0) = %q, expected the kept prefix", got)
	}

	s.Resize(8, 7)
	if got := s.Row(0); got != "Hell    " {
		t.Errorf("Row(0) after growing = %q", got)
	}
	if got := s.Row(5); strings.TrimSpace(got) != "" {
		t.Errorf("Row(5) = %q, expected dropped rows to stay blank", got)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(4); got != "   " {
		t.Errorf("Row(4) = %q, expected blanks", got)
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c        Color
		expected string
	}{
		{ColorDefault, "default"},
		{ColorBrightYellow, "bright-yellow"},
		{ColorGray, "gray"},
		{Color(200), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.expected {
			t.Errorf("Color(%d).String() = %q, expected %q", uint8(tt.c), got, tt.expected)
		}
	}
}
