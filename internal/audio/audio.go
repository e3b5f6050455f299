// Package audio plays the game's sound cues through the system speaker.
// Every sound is synthesized, so the binary carries no asset files.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player implements game.Sounds on the system speaker. The zero value is
// silent until Init succeeds.
type Player struct {
	mu          sync.Mutex
	initialized bool
	logger      *log.Logger
	sr          beep.SampleRate
}

// NewPlayer creates a player that reports playback failures to logger.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{logger: logger, sr: sampleRate}
}

// Init opens the speaker. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Explosion plays the collision cue.
func (p *Player) Explosion() {
	p.play("explosion", Explosion(p.sr))
}

// Music plays one pass of the background phrase.
func (p *Player) Music() {
	s, err := Music(p.sr)
	if err != nil {
		p.logger.Warn("music unavailable", "err", err)
		return
	}
	p.play("music", s)
}

func (p *Player) play(name string, s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.logger.Debug("play", "sound", name)
	speaker.Play(s)
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Explosion() {}
func (Silent) Music()     {}
