package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/PabloKostenko/airplane/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(0, 0, "HUD", core.ColorBrightCyan)
	s.DrawTextColored(2, 1, "-=>", core.ColorBrightYellow)
	s.DrawTextColored(6, 2, "[F]", core.ColorOrange)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	want := []string{"HUD         ", "  -=>       ", "      [F]   "}
	for i, line := range lines {
		if got := ansi.Strip(line); got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestCellStyleUnknownColor(t *testing.T) {
	// Out-of-range colors render unstyled instead of panicking.
	if got := cellStyle(core.Color(250), false).Render("x"); ansi.Strip(got) != "x" {
		t.Errorf("Render = %q", got)
	}
}
