// Package draw renders to ANSI terminals: a half-block canvas for shapes and
// a chunked writer for text, both sized with golang.org/x/term.
package draw

import (
	"io"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Half-block glyphs; each terminal cell holds two vertical pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Control sequences written outside of frames.
const (
	ColorReset  = "\033[0m"
	clearScreen = "\033[H\033[2J"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// maxChunkSize is the largest single write, about one TCP segment, so SSH
// sessions receive frames in steady pieces.
const maxChunkSize = 1400

// RGB returns a 24-bit foreground color sequence.
func RGB(r, g, b uint8) string {
	buf := make([]byte, 0, 19)
	buf = append(buf, "\033[38;2;"...)
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	return string(append(buf, 'm'))
}

// FadedRGB returns a foreground color scaled toward black by alpha/255.
// Terminals have no text transparency, so fading over a black background
// is rendered as darkening.
func FadedRGB(r, g, b, alpha uint8) string {
	scale := func(c uint8) uint8 {
		return uint8(uint16(c) * uint16(alpha) / 255)
	}
	return RGB(scale(r), scale(g), scale(b))
}

// ClearScreen erases the whole terminal and homes the cursor. Frames erase
// only their own area; this is for startup, resizes and exit.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreen)
}

func HideCursor(w io.Writer) { io.WriteString(w, hideCursor) }
func ShowCursor(w io.Writer) { io.WriteString(w, showCursor) }

// appendMove appends a cursor move to the 1-based absolute cell (col, row).
func appendMove(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

// writeChunks writes data in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
