package game

import (
	"testing"
	"time"

	"github.com/tomz197/asteroid-racer/internal/clock"
)

type countingSounds struct {
	explosions int
	music      int
}

func (c *countingSounds) Explosion() { c.explosions++ }
func (c *countingSounds) Music()     { c.music++ }

type recordingEvents struct {
	gameOvers []int
	restarts  int
}

func (r *recordingEvents) GameOver(score, _ int) { r.gameOvers = append(r.gameOvers, score) }
func (r *recordingEvents) Restarted(int)         { r.restarts++ }

func newTestLoop(t *testing.T) (*Loop, *clock.Clock, *countingSounds, *recordingEvents) {
	t.Helper()
	s, _ := newTestState()
	c := clock.New()
	sounds := &countingSounds{}
	events := &recordingEvents{}
	l := NewLoop(s, c, LoopOptions{Sounds: sounds, Events: events})
	l.Start()
	return l, c, sounds, events
}

// placeOnShip puts an asteroid that will hit the ship on the next tick.
func placeOnShip(s *State) {
	s.Asteroids = append(s.Asteroids, Asteroid{
		X:     s.Ship.X,
		Y:     s.Ship.Y + float64(s.Speed),
		Width: AsteroidWidth,
	})
}

func TestLoopTicksAtInterval(t *testing.T) {
	l, c, sounds, _ := newTestLoop(t)

	if sounds.music != 1 {
		t.Errorf("music played %d times on start, want 1", sounds.music)
	}
	if !c.Scheduled(TickSchedule) || c.Scheduled(FadeSchedule) {
		t.Fatal("expected only the tick to be scheduled")
	}

	c.Advance(16 * time.Millisecond)
	if l.State.Score != 3 {
		t.Errorf("Score = %d after 16ms, want 3", l.State.Score)
	}
	c.Advance(4 * time.Millisecond)
	if l.State.Score != 4 {
		t.Errorf("Score = %d after 20ms, want 4", l.State.Score)
	}
}

func TestLoopCollisionStopsTickAndFades(t *testing.T) {
	l, c, sounds, events := newTestLoop(t)
	c.Advance(50 * time.Millisecond)
	score := l.State.Score

	placeOnShip(l.State)
	c.Advance(TickInterval)

	if !l.State.GameOver {
		t.Fatal("expected game over")
	}
	if c.Scheduled(TickSchedule) {
		t.Error("tick still scheduled after collision")
	}
	if !c.Scheduled(FadeSchedule) {
		t.Error("fade not scheduled after collision")
	}
	if sounds.explosions != 1 {
		t.Errorf("explosions = %d, want 1", sounds.explosions)
	}
	if len(events.gameOvers) != 1 || events.gameOvers[0] != score {
		t.Errorf("game over events = %v, want [%d]", events.gameOvers, score)
	}

	// The fade runs at its own interval and unschedules itself.
	c.Advance(FadeInterval)
	if l.State.Opacity != FullOpacity-FadeStep {
		t.Errorf("Opacity = %d after one fade tick", l.State.Opacity)
	}
	for i := 0; i < 40; i++ {
		c.Advance(FadeInterval)
	}
	if c.Scheduled(FadeSchedule) {
		t.Error("fade still scheduled after full fade")
	}
	if l.State.Opacity > 0 {
		t.Errorf("Opacity = %d, want <= 0", l.State.Opacity)
	}
	if l.State.Score != score+1 {
		t.Errorf("Score = %d during game over, want %d", l.State.Score, score+1)
	}
	if sounds.explosions != 1 {
		t.Errorf("explosions = %d after fade, want 1", sounds.explosions)
	}
}

func TestLoopClickRestarts(t *testing.T) {
	l, c, _, events := newTestLoop(t)
	bx, by := l.State.Config.ButtonCenter()

	if l.Click(bx, by) {
		t.Error("click restarted a running game")
	}

	c.Advance(100 * time.Millisecond)
	placeOnShip(l.State)
	c.Advance(TickInterval)
	c.Advance(5 * FadeInterval)

	if l.Click(0, 0) {
		t.Error("click outside the button restarted")
	}
	if !l.Click(bx+10, by-5) {
		t.Fatal("click on the button did not restart")
	}

	if l.State.GameOver || l.State.Score != 0 || l.State.Speed != InitialSpeed {
		t.Errorf("state not reset: %+v", l.State.Snapshot())
	}
	if len(l.State.Asteroids) != 0 || len(l.State.Stars) != 0 {
		t.Error("collections not emptied")
	}
	if l.State.Opacity != FullOpacity {
		t.Errorf("Opacity = %d, want %d", l.State.Opacity, FullOpacity)
	}
	if !c.Scheduled(TickSchedule) || c.Scheduled(FadeSchedule) {
		t.Error("schedules not swapped back after restart")
	}
	if events.restarts != 1 {
		t.Errorf("restarts = %d, want 1", events.restarts)
	}

	c.Advance(TickInterval)
	if l.State.Score != 1 {
		t.Errorf("Score = %d after restart tick, want 1", l.State.Score)
	}
}

func TestLoopMusicRepeats(t *testing.T) {
	_, c, sounds, _ := newTestLoop(t)
	c.SetMaxStep(0)

	c.Advance(MusicInterval)
	if sounds.music != 2 {
		t.Errorf("music = %d, want 2", sounds.music)
	}
}

func TestLoopStop(t *testing.T) {
	l, c, _, _ := newTestLoop(t)
	l.Stop()

	for _, name := range []string{TickSchedule, FadeSchedule, MusicSchedule} {
		if c.Scheduled(name) {
			t.Errorf("%s still scheduled", name)
		}
	}
	c.Advance(time.Second)
	if l.State.Score != 0 {
		t.Errorf("Score = %d after Stop, want 0", l.State.Score)
	}
}

func TestLoopUsesInput(t *testing.T) {
	s, _ := newTestState()
	c := clock.New()
	l := NewLoop(s, c, LoopOptions{Input: func() Input { return Input{Right: true} }})
	l.Start()

	c.Advance(10 * TickInterval)

	if want := ShipStartX + 10*ShipStep; l.State.Ship.X != float64(want) {
		t.Errorf("ship X = %v, want %v", l.State.Ship.X, want)
	}
}
