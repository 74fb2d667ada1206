package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PabloKostenko/airplane/internal/core"
)

// palette maps core.Color to ANSI color codes, indexed by core.Color.
var palette = [...]string{
	core.ColorDefault:      "",
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightCyan:   "14",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
}

// hudBackground shades the status row so it reads as a bar.
const hudBackground = "236"

func cellStyle(c core.Color, hud bool) lipgloss.Style {
	style := lipgloss.NewStyle()
	if int(c) < len(palette) && palette[c] != "" {
		style = style.Foreground(lipgloss.Color(palette[c]))
	}
	if hud {
		style = style.Background(lipgloss.Color(hudBackground)).Bold(true)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Row 0 is drawn as the HUD bar. Adjacent cells with the same color are
// grouped to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		renderRow(&sb, s, y, y == 0)
	}
	return sb.String()
}

func renderRow(sb *strings.Builder, s *core.Screen, y int, hud bool) {
	var run strings.Builder
	x := 0
	for x < s.Width() {
		color := s.GetCell(x, y).Color
		run.Reset()
		for x < s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}
		sb.WriteString(cellStyle(color, hud).Render(run.String()))
	}
}
