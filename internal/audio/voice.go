package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/backyard-skies/internal/core"
)

type wave int

const (
	sine wave = iota
	square
	noise
)

// note is one swept tone.
type note struct {
	from, to float64 // Hz
	dur      time.Duration
	wave     wave
	gain     float64
}

var voices = map[core.Cue][]note{
	core.CueFlap:  {{from: 320, to: 180, dur: 60 * time.Millisecond, wave: noise, gain: 0.25}},
	core.CueTap:   {{from: 1200, to: 1200, dur: 30 * time.Millisecond, wave: square, gain: 0.12}},
	core.CueEat:   {{from: 900, to: 1100, dur: 50 * time.Millisecond, wave: sine, gain: 0.2}, {from: 1100, to: 1300, dur: 50 * time.Millisecond, wave: sine, gain: 0.2}},
	core.CueDrink: {{from: 500, to: 800, dur: 120 * time.Millisecond, wave: sine, gain: 0.2}},
	core.CueEagle: {{from: 2400, to: 1400, dur: 450 * time.Millisecond, wave: square, gain: 0.15}},
	core.CueDodge: {{from: 600, to: 1400, dur: 150 * time.Millisecond, wave: sine, gain: 0.25}},
	core.CueScore: {{from: 660, to: 660, dur: 80 * time.Millisecond, wave: sine, gain: 0.2}, {from: 990, to: 990, dur: 120 * time.Millisecond, wave: sine, gain: 0.2}},
	core.CueDeath: {{from: 440, to: 220, dur: 250 * time.Millisecond, wave: square, gain: 0.2}, {from: 220, to: 110, dur: 400 * time.Millisecond, wave: square, gain: 0.2}},
}

// Voice returns a finite streamer for c, or nil for an unknown cue.
func Voice(c core.Cue) beep.Streamer {
	notes, ok := voices[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, beep.Take(sampleRate.N(n.dur), newChirp(sampleRate, n)))
	}
	return beep.Seq(parts...)
}

// Length returns the number of samples Voice(c) produces.
func Length(c core.Cue) int {
	total := 0
	for _, n := range voices[c] {
		total += sampleRate.N(n.dur)
	}
	return total
}

// chirp sweeps linearly from n.from to n.to under a short attack and an
// exponential release.
type chirp struct {
	sr    beep.SampleRate
	n     note
	pos   int
	total int
	phase float64
	seed  uint32
}

func newChirp(sr beep.SampleRate, n note) *chirp {
	return &chirp{sr: sr, n: n, total: sr.N(n.dur), seed: 0x9e3779b9}
}

func (c *chirp) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(c.pos) / float64(c.total)
		freq := c.n.from + (c.n.to-c.n.from)*math.Min(t, 1)
		c.phase += 2 * math.Pi * freq / float64(c.sr)

		var s float64
		switch c.n.wave {
		case square:
			if math.Sin(c.phase) >= 0 {
				s = 1
			} else {
				s = -1
			}
		case noise:
			// xorshift keeps the flap rustle identical on every play
			c.seed ^= c.seed << 13
			c.seed ^= c.seed >> 17
			c.seed ^= c.seed << 5
			s = (float64(c.seed)/math.MaxUint32*2 - 1) * 0.6
			s += 0.4 * math.Sin(c.phase)
		default:
			s = math.Sin(c.phase)
		}

		attack := math.Min(float64(c.pos)/float64(c.sr)/0.005, 1)
		release := math.Exp(-4 * t)
		s *= c.n.gain * attack * release

		samples[i][0] = s
		samples[i][1] = s
		c.pos++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return nil }
