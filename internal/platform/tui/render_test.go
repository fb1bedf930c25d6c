package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/watersort/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "██", core.ColorRed)
	s.DrawTextColor(2, 0, "██", core.ColorBlue)
	s.DrawText(0, 1, "│ok│")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if got := strings.Count(out, "█"); got != 4 {
		t.Errorf("expected 4 unit cells, got %d", got)
	}
}

func TestRenderScreenUnknownColorFallsBack(t *testing.T) {
	s := core.NewScreen(1, 1)
	s.SetCell(0, 0, 'x', core.Color(200))

	if out := RenderScreen(s); !strings.Contains(out, "x") {
		t.Errorf("expected x in %q", out)
	}
}
