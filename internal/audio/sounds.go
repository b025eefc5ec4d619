// Package audio plays the game's sound effects. Sounds are synthesized at
// runtime with beep; when no audio device is available the game uses Nop.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect names a sound effect.
type Effect int

const (
	EffectFlap Effect = iota
	EffectScore
	EffectDeath
)

// String returns a human-readable name for the effect.
func (e Effect) String() string {
	switch e {
	case EffectFlap:
		return "flap"
	case EffectScore:
		return "score"
	case EffectDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Sounds plays effects without blocking the caller.
type Sounds interface {
	Play(e Effect)
}

// Nop discards every effect.
type Nop struct{}

func (Nop) Play(Effect) {}

// Player mixes effects onto the speaker.
type Player struct {
	mixer  *beep.Mixer
	volume float64
}

var speakerOnce struct {
	sync.Once
	err error
}

// NewPlayer initializes the speaker and starts the mixer.
// volume is linear in (0, 1]. The speaker is process-wide, so every Player
// shares the first initialization.
func NewPlayer(volume float64) (*Player, error) {
	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond))
	})
	if speakerOnce.err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", speakerOnce.err)
	}
	p := &Player{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(p.mixer)
	return p, nil
}

// Open returns a beep Player, or Nop with a warning if the device cannot be opened.
func Open(enabled bool, volume float64, logger *log.Logger) Sounds {
	if !enabled {
		return Nop{}
	}
	p, err := NewPlayer(volume)
	if err != nil {
		if logger != nil {
			logger.Warn("sound disabled", "err", err)
		}
		return Nop{}
	}
	return p
}

// Play queues an effect on the mixer.
func (p *Player) Play(e Effect) {
	s := Synthesize(e)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()
}

// Close silences anything still playing.
func (p *Player) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// Synthesize builds the streamer for an effect, nil for unknown effects.
func Synthesize(e Effect) beep.Streamer {
	switch e {
	case EffectFlap:
		return NewSweep(420, 880, 90*time.Millisecond, sampleRate)
	case EffectScore:
		return beep.Seq(
			NewSweep(988, 988, 70*time.Millisecond, sampleRate),
			NewSweep(1319, 1319, 160*time.Millisecond, sampleRate),
		)
	case EffectDeath:
		return NewSweep(320, 70, 450*time.Millisecond, sampleRate)
	default:
		return nil
	}
}

// withVolume wraps s in a linear gain. A zero gain is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sweep is a sine tone gliding linearly from one frequency to another,
// with a short linear fade at both ends to avoid clicks.
type Sweep struct {
	from, to float64
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
}

// NewSweep creates a sweep lasting d.
func NewSweep(from, to float64, d time.Duration, rate beep.SampleRate) *Sweep {
	return &Sweep{from: from, to: to, rate: rate, total: rate.N(d)}
}

func (s *Sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	fade := max(s.total/10, 1)
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress

		env := 1.0
		if s.pos < fade {
			env = float64(s.pos) / float64(fade)
		} else if remaining := s.total - s.pos; remaining < fade {
			env = float64(remaining) / float64(fade)
		}

		val := 0.4 * env * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *Sweep) Err() error { return nil }
