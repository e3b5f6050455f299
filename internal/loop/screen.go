package loop

import (
	"time"

	"github.com/tomz197/asteroid-racer/internal/draw"
	"github.com/tomz197/asteroid-racer/internal/game"
)

// drawFrame erases the render area and draws the current game state in one
// flushed write. The border outside the area is redrawn over itself.
func (rn *Runner) drawFrame(now time.Time) error {
	snap := rn.game.State.Snapshot()
	cfg := rn.game.State.Config

	rn.cw.EraseArea(rn.canvas.TerminalWidth(), rn.canvas.TerminalHeight())
	rn.canvas.Clear()

	for _, a := range snap.Asteroids {
		rn.canvas.FillCircle(rn.toCanvas(a.X, a.Y), a.Width/2)
	}
	rn.drawShip(snap.Ship)

	rn.canvas.Render(rn.cw)
	rn.canvas.RenderBorder(rn.cw)

	for _, st := range snap.Stars {
		rn.writeAt(st.X, st.Y, 0, "", "*")
	}

	x, y := cfg.ScoreLabelPos()
	rn.writeAt(x, y, 0, "", snap.ScoreText)

	if snap.GameOver && snap.Alpha > 0 {
		x, y = cfg.FinalLabelPos()
		rn.writeCentered(x, y, draw.FadedRGB(255, 255, 255, snap.Alpha), snap.FinalText)
		x, y = cfg.ButtonCenter()
		rn.writeCentered(x, y, draw.FadedRGB(255, 0, 0, snap.Alpha), game.RestartLabel)
	}

	rn.drawIdleWarning(now)

	return rn.cw.Flush()
}

// drawShip draws the ship as a filled upward triangle.
func (rn *Runner) drawShip(s game.Ship) {
	half := s.Width / 2
	pts := rn.canvas.BorrowPoints(3)
	pts[0] = rn.toCanvas(s.X, s.Y+half)
	pts[1] = rn.toCanvas(s.X-half, s.Y-half)
	pts[2] = rn.toCanvas(s.X+half, s.Y-half)
	rn.canvas.DrawPolygon(pts, true)
}

// drawIdleWarning shows a countdown during the last quarter of the idle timeout.
func (rn *Runner) drawIdleWarning(now time.Time) {
	if rn.idleTimeout <= 0 {
		return
	}
	idle := now.Sub(rn.lastInput)
	if idle < rn.idleTimeout*3/4 {
		return
	}
	left := (rn.idleTimeout - idle).Round(time.Second)
	msg := "Idle: disconnecting in " + left.String()
	cfg := rn.game.State.Config
	rn.writeCentered(cfg.FieldWidth/2, cfg.FieldHeight-20, draw.RGB(255, 200, 0), msg)
}

// toCanvas flips field coordinates (y up) to canvas coordinates (y down).
func (rn *Runner) toCanvas(x, y float64) draw.Point {
	return draw.Point{X: x, Y: rn.game.State.Config.FieldHeight - y}
}

// writeCentered writes s centered on field position (x, y).
func (rn *Runner) writeCentered(x, y float64, color, s string) {
	rn.writeAt(x, y, len(s)/2, color, s)
}

// writeAt writes s at field position (x, y), shifted left by shift columns.
// Text starting outside the render area is dropped.
func (rn *Runner) writeAt(x, y float64, shift int, color, s string) {
	p := rn.toCanvas(x, y)
	col, row := rn.canvas.LogicalToTerminal(p.X, p.Y)
	col -= shift
	if row < 1 || row > rn.canvas.TerminalHeight() {
		return
	}
	if col < 1 || col > rn.canvas.TerminalWidth() {
		return
	}
	if color == "" {
		rn.cw.WriteAt(col, row, s)
		return
	}
	rn.cw.WriteColoredAt(col, row, color, s)
}
