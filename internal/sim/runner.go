package sim

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/flightlog"
	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
	"github.com/vovakirdan/backyard-skies/internal/terrain"
)

// Options configures a headless run.
type Options struct {
	Config    *config.GameConfig
	Species   species.ID
	Seed      int64
	Duration  float64 // simulated seconds; the run stops earlier on death
	TickRate  int     // ticks per simulated second
	Autopilot Autopilot
	Log       *flightlog.Writer
	LogEvery  int // ticks between flight log records
	Logger    *log.Logger
	Cues      session.CueSink
}

// Run plays one game to completion or until Duration elapses.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Config == nil {
		return Summary{}, session.ErrNoConfig
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Duration <= 0 {
		opts.Duration = 300
	}
	if opts.LogEvery <= 0 {
		opts.LogEvery = opts.TickRate / 4
		if opts.LogEvery == 0 {
			opts.LogEvery = 1
		}
	}
	if opts.Autopilot == (Autopilot{}) {
		opts.Autopilot = DefaultAutopilot()
	}

	clock := core.NewManualClock(time.Unix(0, 0).UTC())
	s, err := session.New(session.Options{
		Config:  opts.Config,
		Species: opts.Species,
		Clock:   clock,
		Rand:    rand.New(rand.NewSource(opts.Seed)),
		Terrain: terrain.NewSuburb(opts.Seed),
		Cues:    opts.Cues,
		Logger:  opts.Logger,
	})
	if err != nil {
		return Summary{}, err
	}
	s.SetControlScheme(session.ControlButtons)
	s.StartGame()

	dt := 1 / float64(opts.TickRate)
	maxTicks := int(opts.Duration * float64(opts.TickRate))
	c := newCollector(s.Species().ID, opts.Seed)

	for tick := 0; tick < maxTicks; tick++ {
		if tick%256 == 0 {
			if err := ctx.Err(); err != nil {
				return c.summary(s.Snapshot()), err
			}
		}

		snap := s.Snapshot()
		if tick%opts.LogEvery == 0 {
			if err := opts.Log.Write(flightlog.FromSnapshot(tick, snap)); err != nil {
				return c.summary(snap), err
			}
		}

		d := opts.Autopilot.Decide(snap)
		if d.FlyAway && s.FlyAway() {
			c.departures++
		}
		r := s.Tick(d.Input, dt)
		clock.AdvanceSeconds(dt)
		c.observe(s.Snapshot(), r)

		if r.State == session.StateGameOver || r.State == session.StateDying {
			break
		}
	}

	return c.summary(s.Snapshot()), nil
}

// ErrNoSamples is returned by statistics over an empty run.
var ErrNoSamples = errors.New("sim: no samples")
