package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/asteroid-racer/internal/game"
)

var (
	colorBackground = color.RGBA{0, 0, 0, 255}
	colorAsteroid   = color.RGBA{150, 140, 130, 255}
	colorShip       = color.RGBA{80, 200, 255, 255}
	colorStar       = color.RGBA{255, 255, 255, 255}
)

// Draw renders the current state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	snap := g.loop.State.Snapshot()
	cfg := g.loop.State.Config

	for _, st := range snap.Stars {
		g.drawText(screen, g.labelFace, "*", st.X, st.Y, text.AlignStart, text.AlignEnd, colorStar)
	}
	for _, a := range snap.Asteroids {
		x, y := g.toScreen(a.X, a.Y)
		vector.DrawFilledCircle(screen, x, y, float32(a.Width/2), colorAsteroid, true)
	}
	g.drawShip(screen, snap.Ship)

	x, y := cfg.ScoreLabelPos()
	g.drawText(screen, g.labelFace, snap.ScoreText, x, y, text.AlignStart, text.AlignEnd, colorStar)

	if snap.GameOver && snap.Alpha > 0 {
		x, y = cfg.FinalLabelPos()
		g.drawText(screen, g.titleFace, snap.FinalText, x, y, text.AlignCenter, text.AlignCenter,
			color.NRGBA{255, 255, 255, snap.Alpha})
		x, y = cfg.ButtonCenter()
		g.drawText(screen, g.titleFace, game.RestartLabel, x, y, text.AlignCenter, text.AlignCenter,
			color.NRGBA{255, 0, 0, snap.Alpha})
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  speed %d  rocks %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), snap.Speed, len(snap.Asteroids)), 4, 4)
	}
}

// drawShip outlines the ship as an upward triangle.
func (g *Game) drawShip(screen *ebiten.Image, s game.Ship) {
	half := s.Width / 2
	nx, ny := g.toScreen(s.X, s.Y+half)
	lx, ly := g.toScreen(s.X-half, s.Y-half)
	rx, ry := g.toScreen(s.X+half, s.Y-half)
	vector.StrokeLine(screen, nx, ny, lx, ly, 2, colorShip, true)
	vector.StrokeLine(screen, lx, ly, rx, ry, 2, colorShip, true)
	vector.StrokeLine(screen, rx, ry, nx, ny, 2, colorShip, true)
}

func (g *Game) drawText(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float64,
	primary, secondary text.Align, clr color.Color) {
	if face == nil {
		return
	}
	sx, sy := g.toScreen(x, y)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(sx), float64(sy))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = primary
	op.SecondaryAlign = secondary
	text.Draw(screen, s, face, op)
}

// toScreen converts field coordinates (y up) to screen coordinates (y down).
func (g *Game) toScreen(x, y float64) (float32, float32) {
	return float32(x), float32(g.loop.State.Config.FieldHeight - y)
}
