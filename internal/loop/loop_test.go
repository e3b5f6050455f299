package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroid-racer/internal/draw"
	"github.com/tomz197/asteroid-racer/internal/game"
	"github.com/tomz197/asteroid-racer/internal/input"
)

// zeroRand never spawns asteroids and puts every star at x = 0.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func testOptions() Options {
	return Options{
		TermSizeFunc: draw.FixedTermSize(80, 24),
		Logger:       log.New(io.Discard),
		Rand:         zeroRand{},
	}
}

// newTestRunner returns a runner whose input never arrives.
func newTestRunner(t *testing.T, w io.Writer, opts Options) *Runner {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return newRunner(bufio.NewReader(pr), w, opts)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFitCanvas(t *testing.T) {
	cfg := game.DefaultConfig()
	tests := []struct {
		name               string
		termW, termH       int
		wantW, wantH       int
		wantOffC, wantOffR int
	}{
		{"height bound", 80, 24, 64, 24, 8, 0},
		{"exact", 64, 24, 64, 24, 0, 0},
		{"width bound", 64, 40, 64, 24, 0, 8},
		{"capped", 200, 100, 160, 60, 20, 20},
		{"degenerate", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, offC, offR := fitCanvas(tt.termW, tt.termH, cfg)
			if w != tt.wantW || h != tt.wantH || offC != tt.wantOffC || offR != tt.wantOffR {
				t.Errorf("fitCanvas(%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					tt.termW, tt.termH, w, h, offC, offR,
					tt.wantW, tt.wantH, tt.wantOffC, tt.wantOffR)
			}
		})
	}
}

func TestToFieldFlipsY(t *testing.T) {
	rn := newTestRunner(t, io.Discard, testOptions())

	// 80x24 renders a 64x24 field at column offset 8.
	x, y := rn.toField(8+33, 13)
	if !near(x, 325) || !near(y, 230) {
		t.Errorf("toField() = (%v, %v), want (325, 230)", x, y)
	}
	x, y = rn.toField(9, 24)
	if !near(x, 5) || !near(y, 10) {
		t.Errorf("toField() bottom-left = (%v, %v), want (5, 10)", x, y)
	}
}

func TestClickOnRestartButton(t *testing.T) {
	rn := newTestRunner(t, io.Discard, testOptions())
	rn.game.Start()
	rn.game.State.GameOver = true
	rn.game.State.Score = 12

	if !rn.game.Click(rn.toField(8+33, 13)) {
		t.Fatal("click on the RESTART label did not restart")
	}
	if rn.game.State.GameOver || rn.game.State.Score != 0 {
		t.Errorf("state after restart: %+v", rn.game.State.Snapshot())
	}
}

func TestFrameAdvancesAndDraws(t *testing.T) {
	var out bytes.Buffer
	rn := newTestRunner(t, &out, testOptions())
	rn.game.Start()

	if err := rn.frame(time.Now(), 20*time.Millisecond); err != nil {
		t.Fatalf("frame() error = %v", err)
	}
	if got := rn.game.State.Score; got != 4 {
		t.Errorf("Score = %d after 20ms, want 4", got)
	}
	if !strings.Contains(out.String(), "Score: 4 Highscore: 4") {
		t.Errorf("frame output missing HUD: %q", out.String())
	}
	if strings.Contains(out.String(), game.RestartLabel) {
		t.Error("RESTART drawn while playing")
	}
}

func TestFrameErasesOnlyRenderArea(t *testing.T) {
	var out bytes.Buffer
	rn := newTestRunner(t, &out, testOptions())
	rn.game.Start()

	if err := rn.frame(time.Now(), targetFrameTime); err != nil {
		t.Fatalf("frame() error = %v", err)
	}
	got := out.String()
	if strings.Contains(got, "\033[2J") {
		t.Error("frame cleared the whole screen")
	}
	// 80x24 fits a 64x24 area eight columns in.
	if !strings.HasPrefix(got, "\033[1;9H\033[64X") {
		t.Errorf("frame does not start by erasing the render area: %.40q", got)
	}
	if n := strings.Count(got, "\033[64X"); n != 24 {
		t.Errorf("erased %d rows, want 24", n)
	}
}

func TestFrameDrawsGameOverOverlay(t *testing.T) {
	var out bytes.Buffer
	rn := newTestRunner(t, &out, testOptions())
	rn.game.Start()
	rn.game.State.GameOver = true
	rn.game.State.FinalScore = 7

	if err := rn.frame(time.Now(), targetFrameTime); err != nil {
		t.Fatalf("frame() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{
		draw.FadedRGB(255, 255, 255, 255) + "Game Over! Your Score: 7",
		draw.FadedRGB(255, 0, 0, 255) + game.RestartLabel,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("frame output missing %q", want)
		}
	}
}

func TestFrameIdleTimeout(t *testing.T) {
	opts := testOptions()
	opts.IdleTimeout = time.Minute
	rn := newTestRunner(t, io.Discard, opts)

	now := time.Now()
	rn.lastInput = now.Add(-30 * time.Second)
	if err := rn.frame(now, targetFrameTime); err != nil {
		t.Fatalf("frame() error = %v before the timeout", err)
	}
	rn.lastInput = now.Add(-2 * time.Minute)
	if err := rn.frame(now, targetFrameTime); !errors.Is(err, ErrQuit) {
		t.Errorf("frame() error = %v, want ErrQuit", err)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(pr), &out, testOptions())
	}()

	if _, err := pw.Write([]byte("q")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}

	got := out.String()
	for _, want := range []string{"\033[?25l", input.EnableMouse, input.DisableMouse, "\033[?25h"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(pr), io.Discard, testOptions())
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

var errBroken = errors.New("broken pipe")

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestRunReturnsWriteError(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	err := Run(context.Background(), bufio.NewReader(pr), brokenWriter{}, testOptions())
	if !errors.Is(err, errBroken) {
		t.Errorf("Run() error = %v, want %v", err, errBroken)
	}
}
