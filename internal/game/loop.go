package game

import (
	"time"

	"github.com/tomz197/asteroid-racer/internal/clock"
)

// Schedule names used on the clock.
const (
	TickSchedule  = "game.tick"
	FadeSchedule  = "game.fade"
	MusicSchedule = "game.music"
)

// Sounds receives the game's audio cues. Implementations must not block.
type Sounds interface {
	Explosion()
	Music()
}

// Events receives game transitions, e.g. for logging.
type Events interface {
	GameOver(score, highscore int)
	Restarted(highscore int)
}

// InputFunc samples the held keys at the start of a tick.
type InputFunc func() Input

// Loop drives a State from a clock: the game tick while playing, the fade
// after a collision, and the background music throughout.
type Loop struct {
	State *State

	clock  *clock.Clock
	sounds Sounds
	events Events
	input  InputFunc
}

// LoopOptions configures NewLoop. Nil fields get no-op defaults.
type LoopOptions struct {
	Sounds Sounds
	Events Events
	Input  InputFunc
}

// NewLoop creates a loop for state on c. Call Start to schedule it.
func NewLoop(state *State, c *clock.Clock, opts LoopOptions) *Loop {
	l := &Loop{
		State:  state,
		clock:  c,
		sounds: opts.Sounds,
		events: opts.Events,
		input:  opts.Input,
	}
	if l.sounds == nil {
		l.sounds = nopSounds{}
	}
	if l.events == nil {
		l.events = nopEvents{}
	}
	if l.input == nil {
		l.input = func() Input { return Input{} }
	}
	return l
}

// Start plays the music once and schedules the game tick and the music
// repeat. A game that is already over resumes fading instead.
func (l *Loop) Start() {
	l.sounds.Music()
	if l.State.Config.MusicInterval > 0 {
		l.clock.Schedule(MusicSchedule, l.State.Config.MusicInterval, func(time.Duration) {
			l.sounds.Music()
		})
	}
	if l.State.GameOver {
		l.scheduleFade()
		return
	}
	l.scheduleTick()
}

// Stop removes every schedule the loop owns.
func (l *Loop) Stop() {
	l.clock.Unschedule(TickSchedule)
	l.clock.Unschedule(FadeSchedule)
	l.clock.Unschedule(MusicSchedule)
}

// Click handles a mouse press at field coordinates (x, y). It restarts the
// game when the press lands on the RESTART button while the game is over.
func (l *Loop) Click(x, y float64) bool {
	if !l.State.GameOver || !l.State.InRestartButton(x, y) {
		return false
	}
	l.Restart()
	return true
}

// Restart resets the round and resumes the game tick. It is a no-op while
// the game is still running.
func (l *Loop) Restart() bool {
	if !l.State.GameOver {
		return false
	}
	l.State.Restart()
	l.clock.Unschedule(FadeSchedule)
	l.scheduleTick()
	l.events.Restarted(l.State.Highscore)
	return true
}

func (l *Loop) scheduleTick() {
	l.clock.Schedule(TickSchedule, l.State.Config.TickInterval, l.tick)
}

func (l *Loop) scheduleFade() {
	l.clock.Schedule(FadeSchedule, l.State.Config.FadeInterval, l.fade)
}

func (l *Loop) tick(time.Duration) {
	if !l.State.Tick(l.input()) {
		return
	}
	l.clock.Unschedule(TickSchedule)
	l.sounds.Explosion()
	l.events.GameOver(l.State.FinalScore, l.State.Highscore)
	l.scheduleFade()
}

func (l *Loop) fade(time.Duration) {
	if l.State.FadeOut() {
		l.clock.Unschedule(FadeSchedule)
	}
}

type nopSounds struct{}

func (nopSounds) Explosion() {}
func (nopSounds) Music()     {}

type nopEvents struct{}

func (nopEvents) GameOver(int, int) {}
func (nopEvents) Restarted(int)     {}
