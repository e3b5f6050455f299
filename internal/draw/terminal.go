package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// ChunkWriter buffers one frame of terminal output. Positions passed to it
// are 1-based cells of the render area; the area's offset inside the
// terminal is added on write. Nothing reaches the terminal before Flush.
type ChunkWriter struct {
	frame  []byte
	out    *bufio.Writer
	offCol int
	offRow int
}

// NewChunkWriter returns a ChunkWriter on w for a render area placed at the
// given offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

func (cw *ChunkWriter) moveTo(col, row int) {
	cw.frame = appendMove(cw.frame, col+cw.offCol, row+cw.offRow)
}

// EraseArea blanks a width x height block of cells at the top left of the
// render area, row by row, leaving the rest of the terminal untouched.
func (cw *ChunkWriter) EraseArea(width, height int) {
	if width <= 0 {
		return
	}
	for row := 1; row <= height; row++ {
		cw.moveTo(1, row)
		cw.frame = append(cw.frame, "\033["...)
		cw.frame = strconv.AppendInt(cw.frame, int64(width), 10)
		cw.frame = append(cw.frame, 'X')
	}
}

// Write appends raw, already positioned output such as a rendered canvas.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt writes s starting at cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveTo(col, row)
	cw.frame = append(cw.frame, s...)
}

// WriteColoredAt writes s at (col, row) in color, then resets the color.
func (cw *ChunkWriter) WriteColoredAt(col, row int, color, s string) {
	cw.moveTo(col, row)
	cw.frame = append(cw.frame, color...)
	cw.frame = append(cw.frame, s...)
	cw.frame = append(cw.frame, ColorReset...)
}

// Flush sends the buffered frame in chunks and starts a new one.
func (cw *ChunkWriter) Flush() error {
	err := writeChunks(cw.out, cw.frame)
	cw.frame = cw.frame[:0]
	if err != nil {
		return err
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc measures os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports width x height.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}
