package draw

import (
	"io"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// Canvas is a monochrome pixel buffer rendered with half-block characters,
// giving two pixel lines per terminal row. Drawing calls take logical
// coordinates (x right, y down) that are scaled to the terminal size.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []bool // row-major, subPixelHeight x termWidth

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based columns/rows skipped before the canvas starts.
	offsetCol int
	offsetRow int

	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates an unscaled canvas: one logical unit per pixel.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a termWidth x termHeight cell canvas that maps a
// logicalWidth x logicalHeight coordinate space onto its pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize changes the terminal cell size, keeping the logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset places the canvas at terminal cell (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

func (c *Canvas) OffsetCol() int      { return c.offsetCol }
func (c *Canvas) OffsetRow() int      { return c.offsetRow }
func (c *Canvas) TerminalWidth() int  { return c.termWidth }
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear unsets every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the pixel at (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// SetFloat sets the pixel under logical point (x, y).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(c.toPixel(x, y))
}

// DrawLine draws a Bresenham line between two logical points.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon outlines a closed polygon, filling it first when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

// fillPolygon is an even-odd scanline fill in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	c.scaledBuf = slices.Grow(c.scaledBuf[:0], len(points))[:len(points)]
	scaled := c.scaledBuf
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = min(minY, scaled[i].Y)
		maxY = max(maxY, scaled[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			a, b := scaled[i], scaled[(i+1)%len(scaled)]
			if (a.Y <= scanY) != (b.Y <= scanY) {
				xs = append(xs, a.X+(scanY-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
		}
		slices.Sort(xs)
		c.intersectionBuf = xs

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// FillCircle fills a circle given in logical coordinates. The radius is
// scaled per axis.
func (c *Canvas) FillCircle(center Point, radius float64) {
	if radius <= 0 {
		c.SetFloat(center.X, center.Y)
		return
	}
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(cx - half - 0.5)); x <= int(math.Floor(cx+half-0.5)); x++ {
			c.setPixel(x, y)
		}
	}
	// Circles smaller than a pixel may miss every pixel center.
	c.SetFloat(center.X, center.Y)
}

// Render writes every non-empty cell as a positioned half-block character.
// Empty cells are skipped, so the area must be erased beforehand.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	for row := 0; row < c.termHeight; row++ {
		top := c.pixels[row*2*c.termWidth:]
		bottom := c.pixels[(row*2+1)*c.termWidth:]
		for col := 0; col < c.termWidth; col++ {
			var ch rune
			switch {
			case top[col] && bottom[col]:
				ch = BlockFull
			case top[col]:
				ch = BlockUpperHalf
			case bottom[col]:
				ch = BlockLowerHalf
			default:
				continue
			}
			buf = appendMove(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			buf = utf8.AppendRune(buf, ch)
		}
	}
	c.renderBuf = buf
	return writeChunks(w, buf)
}

// RenderBorder frames the canvas when it is centered inside a larger
// terminal: horizontal bars need a row offset, vertical bars a column offset.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasSides := c.offsetCol >= 1
	hasBars := c.offsetRow >= 1
	if !hasSides && !hasBars {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf []byte
	if hasBars {
		for _, edge := range []struct {
			row        int
			start, end string
		}{{top, "┌", "┐"}, {bottom, "└", "┘"}} {
			if hasSides {
				buf = appendMove(buf, left, edge.row)
				buf = append(buf, edge.start+line+edge.end...)
			} else {
				buf = appendMove(buf, left+1, edge.row)
				buf = append(buf, line...)
			}
		}
	}
	if hasSides {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf = appendMove(buf, left, row)
			buf = append(buf, "│"...)
			buf = appendMove(buf, right, row)
			buf = append(buf, "│"...)
		}
	}
	return writeChunks(w, buf)
}

// LogicalToTerminal converts logical coordinates to the 1-based terminal
// cell (col, row) relative to the canvas origin.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal position (col, row), as
// reported by mouse events, to logical coordinates at the cell's center.
// Positions outside the canvas map outside the logical area.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-c.offsetCol-1) + 0.5
	py := float64(row-c.offsetRow-1)*2 + 1
	return px / c.scaleX, py / c.scaleY
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	c.polygonBuf = slices.Grow(c.polygonBuf[:0], n)[:n]
	return c.polygonBuf
}
