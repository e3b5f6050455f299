// Package clock provides a fixed-step scheduler for interval callbacks.
//
// A Clock never looks at wall time on its own. The owner feeds it elapsed time
// through Advance (once per rendered frame, once per ebiten tick, or from a
// test) and every scheduled callback fires once per whole interval that has
// accumulated.
package clock

import "time"

// DefaultMaxStep caps the time a single Advance may account for, so a stalled
// frame does not replay seconds of game ticks at once.
const DefaultMaxStep = 250 * time.Millisecond

// Func is a scheduled callback. dt is the callback's interval.
type Func func(dt time.Duration)

type entry struct {
	name     string
	interval time.Duration
	fn       Func
	acc      time.Duration
	active   bool
}

// Clock runs named interval callbacks. It is not safe for concurrent use;
// all calls must come from the goroutine that owns the game state.
type Clock struct {
	entries []*entry
	maxStep time.Duration
	now     time.Duration
}

// New creates an empty clock using DefaultMaxStep.
func New() *Clock {
	return &Clock{maxStep: DefaultMaxStep}
}

// SetMaxStep changes the per-Advance cap. Non-positive values disable it.
func (c *Clock) SetMaxStep(d time.Duration) {
	c.maxStep = d
}

// Schedule registers fn to run every interval. A callback already registered
// under the same name is replaced and its accumulated time discarded.
func (c *Clock) Schedule(name string, interval time.Duration, fn Func) {
	if interval <= 0 {
		interval = time.Millisecond
	}
	c.Unschedule(name)
	c.entries = append(c.entries, &entry{
		name:     name,
		interval: interval,
		fn:       fn,
		active:   true,
	})
}

// Unschedule removes the callback registered under name. It is a no-op if
// nothing is registered, and safe to call from inside a callback.
func (c *Clock) Unschedule(name string) {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.name == name {
			e.active = false
			continue
		}
		kept = append(kept, e)
	}
	clear(c.entries[len(kept):])
	c.entries = kept
}

// Scheduled reports whether a callback is registered under name.
func (c *Clock) Scheduled(name string) bool {
	for _, e := range c.entries {
		if e.name == name {
			return true
		}
	}
	return false
}

// Now returns the total time the clock has been advanced by.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by elapsed and fires every due callback,
// in schedule order. Callbacks scheduled during Advance start accumulating
// on the next call.
func (c *Clock) Advance(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	if c.maxStep > 0 && elapsed > c.maxStep {
		elapsed = c.maxStep
	}
	c.now += elapsed

	// Iterate over a copy: callbacks may reshape c.entries.
	due := make([]*entry, len(c.entries))
	copy(due, c.entries)

	for _, e := range due {
		if !e.active {
			continue
		}
		e.acc += elapsed
		for e.active && e.acc >= e.interval {
			e.acc -= e.interval
			e.fn(e.interval)
		}
	}
}
