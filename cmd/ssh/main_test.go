package main

import (
	"testing"
	"time"
)

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	if w, h, err := s.getSize(); w != 80 || h != 24 || err != nil {
		t.Fatalf("getSize() = %d, %d, %v", w, h, err)
	}
	s.update(120, 40)
	if w, h, _ := s.getSize(); w != 120 || h != 40 {
		t.Errorf("getSize() after update = %d, %d", w, h)
	}
}

func TestArcadeWait(t *testing.T) {
	a := &arcade{}
	if !a.wait(time.Second) {
		t.Error("wait with no sessions timed out")
	}

	a.sessions.Add(1)
	if a.wait(10 * time.Millisecond) {
		t.Error("wait returned true with an open session")
	}
	a.sessions.Done()
	if !a.wait(time.Second) {
		t.Error("wait timed out after the session ended")
	}
}
