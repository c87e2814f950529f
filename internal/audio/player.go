// Package audio synthesizes the game's short cue sounds with beep.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/backyard-skies/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues through the system speaker. It satisfies session.CueSink.
// Every method is a no-op until Init succeeds, so the game runs without an
// audio device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	speaker     bool // false when the mixer is driven by hand
}

// NewPlayer creates an uninitialized player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker and starts the mixer. Calling it twice is safe.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.speaker = true
	return nil
}

// Close silences every cue in flight.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.lock()
	p.mixer.Clear()
	p.unlock()
	p.initialized = false
}

// Play starts the sound for c and returns immediately.
func (p *Player) Play(c core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	v := Voice(c)
	if v == nil {
		return
	}
	p.lock()
	p.mixer.Add(v)
	p.unlock()
}

func (p *Player) lock() {
	if p.speaker {
		speaker.Lock()
	}
}

func (p *Player) unlock() {
	if p.speaker {
		speaker.Unlock()
	}
}
