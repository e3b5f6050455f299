package main

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/asteroid-racer/internal/config"
	"github.com/tomz197/asteroid-racer/internal/gui"
)

func TestRunReturnsGameError(t *testing.T) {
	settings := config.Settings{Seed: 1}
	errWindow := errors.New("no display")

	var ran *gui.Game
	err := run(settings, log.New(io.Discard), func(g ebiten.Game) error {
		ran, _ = g.(*gui.Game)
		return errWindow
	})
	if !errors.Is(err, errWindow) {
		t.Fatalf("run() error = %v, want %v", err, errWindow)
	}
	if ran == nil {
		t.Error("runGame did not receive the game")
	}
}

func TestRunCleanExit(t *testing.T) {
	settings := config.Settings{Seed: 1}

	err := run(settings, log.New(io.Discard), func(ebiten.Game) error { return nil })
	if err != nil {
		t.Errorf("run() error = %v", err)
	}
}
