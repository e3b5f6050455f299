// Package input turns a raw terminal byte stream into per-frame input state.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals send no key-release events, only auto-repeat.
const keyHoldDuration = 30 * time.Millisecond

// Mouse reporting: press/release tracking with SGR (1006) coordinates.
const (
	EnableMouse  = "\033[?1000h\033[?1006h"
	DisableMouse = "\033[?1000l\033[?1006l"
)

// Click is a left-button press at a 1-based terminal cell.
type Click struct {
	Col int
	Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Restart bool // pressed this frame; never held over
	Clicks  []Click
	Pressed []byte
}

// keyState tracks the last time each steering key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state between frames.
type Stream struct {
	ch     chan byte
	state  keyState
	now    func() time.Time
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the keys held as of now plus any clicks received since the last call.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				s.ch = nil
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := parse(&s.state, buf, now)
	if s.closed {
		// Reader is gone (session closed or stdin EOF): treat as quit.
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets held keys, so a key used to restart does not leak
// into the first frames of the next round.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse applies buf to the key state and builds the frame's Input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'C': // Right arrow
				state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/Down: unused
				i += 2
				continue
			case '<':
				if click, n, ok := parseSGRMouse(buf[i+3:]); ok {
					if click != nil {
						in.Clicks = append(in.Clicks, *click)
					}
					i += 2 + n
					continue
				}
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'a', 'A', 'h', 'H':
			state.left = now
		case 'd', 'D', 'l', 'L':
			state.right = now
		case ' ', '\r', '\n', 'r', 'R':
			in.Restart = true
		}
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	return in
}

// parseSGRMouse parses the body of an SGR mouse report, "b;col;row" followed
// by 'M' (press) or 'm' (release), starting right after "ESC [ <".
// It returns the click for a left-button press (nil for any other report),
// the number of bytes consumed, and whether a complete report was found.
func parseSGRMouse(buf []byte) (*Click, int, bool) {
	var fields [3]int
	field := 0
	start := 0
	for i, b := range buf {
		switch {
		case b >= '0' && b <= '9':
			continue
		case b == ';':
			if field >= 2 {
				return nil, 0, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return nil, 0, false
			}
			fields[field] = v
			field++
			start = i + 1
		case b == 'M' || b == 'm':
			if field != 2 {
				return nil, 0, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return nil, 0, false
			}
			fields[2] = v
			// Low two bits select the button; 32 marks motion, 64 the wheel.
			if b == 'M' && fields[0]&0b11 == 0 && fields[0]&(32|64) == 0 {
				return &Click{Col: fields[1], Row: fields[2]}, i + 1, true
			}
			return nil, i + 1, true
		default:
			return nil, 0, false
		}
	}
	return nil, 0, false
}
