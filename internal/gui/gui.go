// Package gui runs the game in a desktop window with ebiten.
package gui

import (
	"bytes"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tomz197/asteroid-racer/internal/clock"
	"github.com/tomz197/asteroid-racer/internal/game"
)

// Font sizes in logical pixels.
const (
	labelSize = 12
	titleSize = 24
)

// Options configures NewGame. Zero fields get defaults.
type Options struct {
	Sounds game.Sounds
	Logger *log.Logger
	Config game.Config
	Rand   game.Rand
}

// Game implements ebiten.Game for one player.
type Game struct {
	loop     *game.Loop
	clock    *clock.Clock
	controls controls
	logger   *log.Logger
	held     game.Input
	debug    bool

	labelFace *text.GoTextFace
	titleFace *text.GoTextFace
}

var _ ebiten.Game = (*Game)(nil)

// NewGame loads the fonts and builds a started game.
func NewGame(opts Options) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	g := newGame(opts, ebitenControls{})
	g.labelFace = &text.GoTextFace{Source: src, Size: labelSize}
	g.titleFace = &text.GoTextFace{Source: src, Size: titleSize}
	return g, nil
}

func newGame(opts Options, c controls) *Game {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Config == (game.Config{}) {
		opts.Config = game.DefaultConfig()
	}

	g := &Game{
		clock:    clock.New(),
		controls: c,
		logger:   opts.Logger,
	}
	state := game.NewState(opts.Config, opts.Rand)
	g.loop = game.NewLoop(state, g.clock, game.LoopOptions{
		Sounds: opts.Sounds,
		Events: logEvents{logger: opts.Logger},
		Input:  func() game.Input { return g.held },
	})
	g.loop.Start()
	return g
}

// State exposes the game state for the window title and tests.
func (g *Game) State() *game.State {
	return g.loop.State
}

// Close stops the game's schedules.
func (g *Game) Close() {
	g.loop.Stop()
}

// Update reads input and advances the game by one ebiten tick.
func (g *Game) Update() error {
	if g.controls.quitPressed() {
		return ebiten.Termination
	}
	if g.controls.debugPressed() {
		g.debug = !g.debug
	}

	g.held = g.controls.held()

	if x, y, ok := g.controls.click(); ok {
		fx, fy := g.toField(float64(x), float64(y))
		g.loop.Click(fx, fy)
	}
	if g.controls.restartPressed() {
		g.loop.Restart()
	}

	g.clock.Advance(tickStep())
	return nil
}

// Layout keeps the logical field size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.loop.State.Config
	return int(cfg.FieldWidth), int(cfg.FieldHeight)
}

// tickStep is the game time covered by one Update call.
func tickStep() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

// toField converts screen coordinates (y down) to field coordinates (y up).
func (g *Game) toField(x, y float64) (float64, float64) {
	return x, g.loop.State.Config.FieldHeight - y
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
