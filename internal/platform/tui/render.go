package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/greedycat/internal/core"
)

// palette holds the ANSI color for each core.Color. Empty means the
// terminal default.
var palette = [core.NumColors]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var cellStyles = func() (styles [core.NumColors]lipgloss.Style) {
	for c, fg := range palette {
		styles[c] = lipgloss.NewStyle()
		if fg != "" {
			styles[c] = styles[c].Foreground(fg)
		}
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(cellStyles) {
		return cellStyles[core.ColorDefault]
	}
	return cellStyles[c]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is split into runs of one color; blanks join whatever run they
// sit in since their color is invisible.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		run = run[:0]
		runColor := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' && cell.Color != runColor {
				flushRun(&sb, run, runColor)
				run = run[:0]
				runColor = cell.Color
			}
			run = append(run, cell.Rune)
		}
		flushRun(&sb, run, runColor)
	}
	return sb.String()
}

func flushRun(sb *strings.Builder, run []rune, c core.Color) {
	if len(run) == 0 {
		return
	}
	if c == core.ColorDefault {
		sb.WriteString(string(run))
		return
	}
	sb.WriteString(styleFor(c).Render(string(run)))
}
