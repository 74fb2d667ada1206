package airplane

import (
	"fmt"

	"github.com/PabloKostenko/airplane/internal/core"
)

// Sprites, each centered on its world position.
const (
	CloudSprite = "(≈≈≈)"
	FuelSprite  = "[F]"
	PlaneSprite = "-=>"
	SkyChar     = '·'
)

// Render draws the current frame to dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.engine.Snapshot()

	// Ground line; sprites draw over it
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), SkyChar, core.ColorGray)

	for _, o := range s.Obstacles {
		g.drawSprite(dst, o, CloudSprite, core.ColorBrightWhite)
	}
	for _, f := range s.Fuels {
		g.drawSprite(dst, f, FuelSprite, core.ColorOrange)
	}

	planeColor := core.ColorBrightYellow
	if s.JustCollected {
		planeColor = core.ColorBrightGreen
	}
	g.drawSprite(dst, s.Airplane, PlaneSprite, planeColor)

	g.drawHUD(dst, s)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.GameOver {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Time: %s", s.Score, core.FormatDuration(s.Elapsed)),
			"R restart | Q quit")
	}
}

// cell maps a world position to a screen cell, accounting for the HUD row.
func (g *Game) cell(p core.Vec2) (int, int) {
	x := int(p.X / g.cfg.Render.CellWidth)
	y := int(p.Y/g.cfg.Render.CellHeight) + hudRows
	return x, y
}

func (g *Game) drawSprite(dst *core.Screen, p core.Vec2, sprite string, c core.Color) {
	x, y := g.cell(p)
	if y < hudRows {
		return
	}
	x -= len([]rune(sprite)) / 2
	dst.DrawTextColored(x, y, sprite, c)
}

func (g *Game) drawHUD(dst *core.Screen, s Snapshot) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	hud := fmt.Sprintf(" Time: %s  Score: %d  Spd: x%.1f  Best: %d ",
		core.FormatDuration(s.Elapsed), s.Score, s.SpeedMultiplier, s.HighScore)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightRed)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
