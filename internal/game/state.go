// Package game implements the Asteroid Racer rules: a ship dodging falling
// asteroids while the score ticks up.
//
// State is a plain owned struct. The Advance* methods are the per-tick update
// steps and touch nothing outside the struct, so they can be exercised without
// a terminal, a window, or a timer. Loop binds a State to a clock.Clock and
// a Sounds sink.
package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Rand is the subset of *rand.Rand the game draws from.
type Rand interface {
	Intn(n int) int
}

// Phase is the game's top-level state.
type Phase int

const (
	PhasePlaying  Phase = iota // Ship flying, score ticking
	PhaseGameOver              // Collision happened, overlay fading
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Ship is the player sprite. Y never changes.
type Ship struct {
	X, Y  float64
	Width float64
}

// Asteroid is a falling rock.
type Asteroid struct {
	X, Y  float64
	Width float64
}

// Star is a decorative glyph falling in the background.
type Star struct {
	X, Y float64
}

// Input is the held-key state sampled for one tick.
type Input struct {
	Left  bool
	Right bool
}

// State holds everything one game mutates.
type State struct {
	Config Config

	Ship      Ship
	Asteroids []Asteroid
	Stars     []Star

	Score      int
	Highscore  int
	Speed      int
	GameOver   bool
	FinalScore int
	Opacity    int

	rng Rand
}

// NewState creates a game in the Playing phase. A nil rng seeds one from
// cfg.Seed, or from the current time when the seed is zero.
func NewState(cfg Config, rng Rand) *State {
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	return &State{
		Config: cfg,
		Ship: Ship{
			X:     cfg.ShipStartX,
			Y:     cfg.ShipY,
			Width: cfg.ShipWidth,
		},
		Asteroids: []Asteroid{},
		Stars:     []Star{},
		Speed:     cfg.InitialSpeed,
		Opacity:   FullOpacity,
		rng:       rng,
	}
}

// Phase derives the current phase from the game-over flag.
func (s *State) Phase() Phase {
	if s.GameOver {
		return PhaseGameOver
	}
	return PhasePlaying
}

// Fading reports whether the game-over overlay is still visible.
func (s *State) Fading() bool {
	return s.GameOver && s.Opacity > 0
}

// OverlayAlpha returns Opacity clamped to a displayable [0, 255].
func (s *State) OverlayAlpha() uint8 {
	switch {
	case s.Opacity <= 0:
		return 0
	case s.Opacity >= FullOpacity:
		return FullOpacity
	default:
		return uint8(s.Opacity)
	}
}

// ScoreText is the always-visible HUD line.
func (s *State) ScoreText() string {
	return fmt.Sprintf("Score: %d Highscore: %d", s.Score, s.Highscore)
}

// FinalText is the game-over label.
func (s *State) FinalText() string {
	if !s.GameOver {
		return ""
	}
	return fmt.Sprintf("Game Over! Your Score: %d", s.FinalScore)
}

// Snapshot is a copy of the drawable state, safe to keep across ticks.
type Snapshot struct {
	Ship       Ship
	Asteroids  []Asteroid
	Stars      []Star
	Score      int
	Highscore  int
	Speed      int
	GameOver   bool
	FinalScore int
	Alpha      uint8
	ScoreText  string
	FinalText  string
}

// Snapshot copies the drawable state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Ship:       s.Ship,
		Asteroids:  append([]Asteroid(nil), s.Asteroids...),
		Stars:      append([]Star(nil), s.Stars...),
		Score:      s.Score,
		Highscore:  s.Highscore,
		Speed:      s.Speed,
		GameOver:   s.GameOver,
		FinalScore: s.FinalScore,
		Alpha:      s.OverlayAlpha(),
		ScoreText:  s.ScoreText(),
		FinalText:  s.FinalText(),
	}
}
