package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/asteroid-racer/internal/audio"
	"github.com/tomz197/asteroid-racer/internal/config"
	"github.com/tomz197/asteroid-racer/internal/draw"
	"github.com/tomz197/asteroid-racer/internal/game"
	"github.com/tomz197/asteroid-racer/internal/loop"
)

// sessionDrainTimeout bounds how long shutdown waits for games to end.
const sessionDrainTimeout = 15 * time.Second

// arcade runs one independent game per SSH session.
type arcade struct {
	settings config.Settings
	logger   *log.Logger
	ctx      context.Context // Canceled on shutdown
	sessions sync.WaitGroup
	active   atomic.Int64
}

func main() {
	settings := config.Load()
	logger := settings.NewLogger(os.Stderr, "ssh")

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config",
		"host", settings.SSHHost, "port", settings.SSHPort,
		"hostKeyPath", settings.HostKeyPath, "workingDir", workingDir)

	ctx, cancelGames := context.WithCancel(context.Background())
	a := &arcade{settings: settings, logger: logger, ctx: ctx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if settings.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(settings.SSHHost, settings.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...", "sessions", a.active.Load())

	// End every game, then wait for the sessions to close.
	cancelGames()
	if !a.wait(sessionDrainTimeout) {
		logger.Warn("sessions still open after drain timeout", "sessions", a.active.Load())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// wait blocks until every session ended or timeout passed, reporting which.
func (a *arcade) wait(timeout time.Duration) bool {
	drained := make(chan struct{})
	go func() {
		a.sessions.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return true
	case <-time.After(timeout):
		return false
	}
}

// gameMiddleware handles SSH sessions and runs a private game in each.
func (a *arcade) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		a.sessions.Add(1)
		defer a.sessions.Done()
		active := a.active.Add(1)
		defer a.active.Add(-1)

		logger := a.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session",
			"terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
			"sessions", active)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// The game ends when the server shuts down or the client goes away.
		ctx, cancel := context.WithCancel(a.ctx)
		defer cancel()
		stop := context.AfterFunc(sess.Context(), cancel)
		defer stop()

		cfg := game.DefaultConfig()
		cfg.Seed = a.settings.Seed

		reader := bufio.NewReader(sess)
		err := loop.Run(ctx, reader, sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Sounds:       audio.Silent{},
			Logger:       logger,
			Config:       cfg,
			IdleTimeout:  a.settings.IdleTimeout,
		})
		if err != nil {
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
