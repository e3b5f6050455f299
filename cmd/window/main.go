package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/asteroid-racer/internal/audio"
	"github.com/tomz197/asteroid-racer/internal/config"
	"github.com/tomz197/asteroid-racer/internal/game"
	"github.com/tomz197/asteroid-racer/internal/gui"
)

func main() {
	settings := config.Load()
	logger := settings.NewLogger(os.Stderr, "window")

	if err := run(settings, logger, ebiten.RunGame); err != nil {
		logger.Error("window closed", "err", err)
		os.Exit(1)
	}
}

// run opens the window and blocks until it closes. The audio player and the
// game are closed before it returns, whatever the outcome.
func run(settings config.Settings, logger *log.Logger, runGame func(ebiten.Game) error) error {
	var sounds game.Sounds = audio.Silent{}
	if settings.Audio {
		player := audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer player.Close()
			sounds = player
		}
	}

	cfg := game.DefaultConfig()
	cfg.Seed = settings.Seed

	g, err := gui.NewGame(gui.Options{
		Sounds: sounds,
		Logger: logger,
		Config: cfg,
	})
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	defer g.Close()

	ebiten.SetWindowSize(int(cfg.FieldWidth), int(cfg.FieldHeight))
	ebiten.SetWindowTitle("Asteroid Racer")
	ebiten.SetWindowResizable(true)

	if err := runGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	logger.Info("bye", "highscore", g.State().Highscore)
	return nil
}
