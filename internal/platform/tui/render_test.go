package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/greedycat/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "Cat", core.ColorBrightYellow)
	s.DrawTextColored(4, 0, "fish", core.ColorCyan)
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	for _, want := range []string{"Cat", "fish", "plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", n)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("styleFor(unknown).Render(\"x\") = %q, expected plain text", got)
	}
}
