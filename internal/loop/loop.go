// Package loop runs a game in a terminal with the standard
// Input → Update → Draw cycle at a fixed frame rate.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroid-racer/internal/clock"
	"github.com/tomz197/asteroid-racer/internal/draw"
	"github.com/tomz197/asteroid-racer/internal/game"
	"github.com/tomz197/asteroid-racer/internal/input"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// MaxTermWidth caps the render width in columns; larger terminals get a
// centered, bordered field.
const MaxTermWidth = 160

// ErrQuit ends the frame loop. Run reports it as a clean exit.
var ErrQuit = errors.New("quit")

// Options configures Run. Zero fields get defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Sounds       game.Sounds
	Logger       *log.Logger
	Config       game.Config
	Rand         game.Rand
	IdleTimeout  time.Duration // 0 disables
}

// Runner owns one terminal game: its clock, canvas, and input stream.
type Runner struct {
	game         *game.Loop
	clock        *clock.Clock
	canvas       *draw.Canvas
	cw           *draw.ChunkWriter
	w            io.Writer
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	idleTimeout  time.Duration
	held         game.Input
	lastInput    time.Time
}

// Run plays a game on r and w until the player quits, the input closes, or
// ctx is done. It returns nil in those cases and the write error if the
// terminal goes away mid-frame.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return newRunner(r, w, opts).run(ctx)
}

func newRunner(r *bufio.Reader, w io.Writer, opts Options) *Runner {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Config == (game.Config{}) {
		opts.Config = game.DefaultConfig()
	}

	rn := &Runner{
		clock:        clock.New(),
		w:            w,
		stream:       input.StartStream(r),
		termSizeFunc: opts.TermSizeFunc,
		logger:       opts.Logger,
		idleTimeout:  opts.IdleTimeout,
		lastInput:    time.Now(),
	}

	state := game.NewState(opts.Config, opts.Rand)
	rn.game = game.NewLoop(state, rn.clock, game.LoopOptions{
		Sounds: opts.Sounds,
		Events: logEvents{logger: opts.Logger},
		Input:  func() game.Input { return rn.held },
	})

	termWidth, termHeight, _ := rn.termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitCanvas(termWidth, termHeight, opts.Config)
	rn.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, opts.Config.FieldWidth, opts.Config.FieldHeight)
	rn.canvas.SetOffset(offsetCol, offsetRow)
	rn.cw = draw.NewChunkWriter(w, offsetCol, offsetRow)
	return rn
}

func (rn *Runner) run(ctx context.Context) error {
	draw.HideCursor(rn.w)
	io.WriteString(rn.w, input.EnableMouse)
	defer func() {
		io.WriteString(rn.w, input.DisableMouse)
		draw.ShowCursor(rn.w)
	}()
	draw.ClearScreen(rn.w)

	rn.game.Start()
	defer rn.game.Stop()

	ticker := time.NewTicker(targetFrameTime)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := rn.frame(frameStart, delta); err != nil {
			if errors.Is(err, ErrQuit) {
				draw.ClearScreen(rn.w)
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			draw.ClearScreen(rn.w)
			return nil
		case <-ticker.C:
		}
	}
}

// frame runs one Input → Update → Draw pass.
func (rn *Runner) frame(now time.Time, delta time.Duration) error {
	if err := rn.processInput(now); err != nil {
		return err
	}
	rn.updateScreen()
	rn.clock.Advance(delta)
	if err := rn.drawFrame(now); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// processInput reads pending input, handles quit and restart, and stores
// the held keys for the next game ticks.
func (rn *Runner) processInput(now time.Time) error {
	in := input.ReadInput(rn.stream)

	if len(in.Pressed) > 0 {
		rn.lastInput = now
	}
	if in.Quit {
		return ErrQuit
	}
	if rn.idleTimeout > 0 && now.Sub(rn.lastInput) > rn.idleTimeout {
		rn.logger.Info("idle timeout", "after", rn.idleTimeout)
		return ErrQuit
	}

	rn.held = game.Input{Left: in.Left, Right: in.Right}

	restarted := false
	for _, c := range in.Clicks {
		x, y := rn.toField(c.Col, c.Row)
		if rn.game.Click(x, y) {
			restarted = true
			break
		}
	}
	if !restarted && in.Restart {
		restarted = rn.game.Restart()
	}
	if restarted {
		input.ResetKeyInput(rn.stream)
	}
	return nil
}

// updateScreen follows terminal resizes, keeping the field's aspect ratio.
func (rn *Runner) updateScreen() {
	termWidth, termHeight, err := rn.termSizeFunc()
	if err != nil {
		return
	}
	cfg := rn.game.State.Config
	renderWidth, renderHeight, offsetCol, offsetRow := fitCanvas(termWidth, termHeight, cfg)

	if renderWidth != rn.canvas.TerminalWidth() || renderHeight != rn.canvas.TerminalHeight() ||
		offsetCol != rn.canvas.OffsetCol() || offsetRow != rn.canvas.OffsetRow() {
		draw.ClearScreen(rn.w)
	}

	rn.canvas.Resize(renderWidth, renderHeight)
	rn.canvas.SetOffset(offsetCol, offsetRow)
	rn.cw.SetOffset(offsetCol, offsetRow)
}

// fitCanvas picks the largest render area with the field's aspect ratio that
// fits the terminal, and the offset that centers it. Half-block pixels are
// about square, so one row holds two pixel lines.
func fitCanvas(termWidth, termHeight int, cfg game.Config) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = int(float64(renderWidth) * cfg.FieldHeight / (2 * cfg.FieldWidth))
	if renderHeight > termHeight {
		renderHeight = termHeight
		renderWidth = int(float64(renderHeight) * 2 * cfg.FieldWidth / cfg.FieldHeight)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// toField converts a 1-based terminal cell to field coordinates (y up).
func (rn *Runner) toField(col, row int) (x, y float64) {
	x, y = rn.canvas.TerminalToLogical(col, row)
	return x, rn.game.State.Config.FieldHeight - y
}

// logEvents reports game transitions to a logger.
type logEvents struct {
	logger *log.Logger
}

func (e logEvents) GameOver(score, highscore int) {
	e.logger.Info("game over", "score", score, "highscore", highscore)
}

func (e logEvents) Restarted(highscore int) {
	e.logger.Debug("restart", "highscore", highscore)
}
