package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroid-racer/internal/audio"
	"github.com/tomz197/asteroid-racer/internal/config"
	"github.com/tomz197/asteroid-racer/internal/game"
	"github.com/tomz197/asteroid-racer/internal/loop"
	"golang.org/x/term"
)

func main() {
	settings := config.Load()

	// Log lines would tear the raw-mode screen, so they are held until the
	// terminal is restored.
	var logBuf bytes.Buffer
	logger := settings.NewLogger(&logBuf, "game")

	err := run(settings, logger)
	io.Copy(os.Stderr, &logBuf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, logger *log.Logger) error {
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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := game.DefaultConfig()
	cfg.Seed = settings.Seed

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.Options{
		Sounds: sounds,
		Logger: logger,
		Config: cfg,
	})
}
