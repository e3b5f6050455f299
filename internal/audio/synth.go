package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Explosion cue shape.
const (
	explosionDuration = 600 * time.Millisecond
	explosionDecay    = 6.0  // Envelope exponent per second
	explosionRumble   = 55.0 // Hz
)

// Music phrase shape.
const (
	noteDuration = 425 * time.Millisecond
	noteRelease  = 120 * time.Millisecond
	musicVolume  = -2.5 // Log2 gain
)

// phrase is the bass line in Hz, repeated to fill one music pass.
var phrase = []float64{
	110.00, 110.00, 130.81, 110.00, 146.83, 130.81, 98.00, 98.00,
	110.00, 110.00, 130.81, 164.81, 146.83, 130.81, 123.47, 98.00,
}

// phraseRepeats fills the pass just under the music interval.
const phraseRepeats = 2

// noiseBurst is white noise plus a low rumble under an exponential decay.
type noiseBurst struct {
	sr  beep.SampleRate
	rng *rand.Rand
	pos int
}

func newNoiseBurst(sr beep.SampleRate, seed int64) *noiseBurst {
	return &noiseBurst{sr: sr, rng: rand.New(rand.NewSource(seed))}
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * explosionDecay)
		noise := g.rng.Float64()*2 - 1
		rumble := math.Sin(2 * math.Pi * explosionRumble * t)
		v := env * (0.6*noise + 0.4*rumble)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error {
	return nil
}

// release fades the last samples of a fixed-length stream to silence.
type release struct {
	s       beep.Streamer
	pos     int
	total   int
	release int
}

func (r *release) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.s.Stream(samples)
	for i := 0; i < n; i++ {
		if left := r.total - r.pos; left < r.release {
			vol := float64(left) / float64(r.release)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		r.pos++
	}
	return n, ok
}

func (r *release) Err() error {
	return r.s.Err()
}

// Explosion returns the collision cue, a finite decaying noise burst.
func Explosion(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(explosionDuration), newNoiseBurst(sr, time.Now().UnixNano()))
}

// Music returns one pass of the background phrase.
func Music(sr beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(phrase)*phraseRepeats)
	total := sr.N(noteDuration)
	for i := 0; i < phraseRepeats; i++ {
		for _, freq := range phrase {
			tone, err := generators.SineTone(sr, freq)
			if err != nil {
				return nil, err
			}
			notes = append(notes, &release{
				s:       beep.Take(total, tone),
				total:   total,
				release: sr.N(noteRelease),
			})
		}
	}
	return &effects.Volume{
		Streamer: beep.Seq(notes...),
		Base:     2,
		Volume:   musicVolume,
	}, nil
}

// MusicDuration is the length of one pass returned by Music.
func MusicDuration() time.Duration {
	return time.Duration(len(phrase)*phraseRepeats) * noteDuration
}
