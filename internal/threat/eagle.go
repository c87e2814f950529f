package threat

import (
	"math/rand"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
)

// EagleEvent is the outcome of one eagle tick.
type EagleEvent int

const (
	EagleNone EagleEvent = iota
	EagleHuntStarted
	EagleHuntEnded
	EagleHuntCaught
	EagleWarning
	EagleDodgeOpened
	EagleDodged
	EagleCaught
)

var eagleEventNames = [...]string{
	EagleNone:        "none",
	EagleHuntStarted: "hunt-started",
	EagleHuntEnded:   "hunt-ended",
	EagleHuntCaught:  "hunt-caught",
	EagleWarning:     "warning",
	EagleDodgeOpened: "dodge-opened",
	EagleDodged:      "dodged",
	EagleCaught:      "caught",
}

// String returns the event name.
func (e EagleEvent) String() string {
	if e >= 0 && int(e) < len(eagleEventNames) {
		return eagleEventNames[e]
	}
	return "unknown"
}

// Fatal reports whether the event ends the run.
func (e EagleEvent) Fatal() bool {
	return e == EagleHuntCaught || e == EagleCaught
}

// EagleState is the eagle's escalation state.
//
// Timer counts down to the next timed approach, or to the catch while
// AltitudeHunt is set. A dodge window and an altitude hunt are never active
// together.
type EagleState struct {
	Timer              float64
	DodgeWindow        float64
	DodgeStartRotation float64
	DodgeTaps          int
	NearCeiling        bool // decided when the window opened
	AltitudeHunt       bool
	Warning            bool // eagle is visibly approaching
}

// EagleInput is what the eagle reads from the frame.
type EagleInput struct {
	Altitude float64
	Rotation float64
	Delta    float64
}

// NextInterval draws the delay before the next timed approach.
func NextInterval(cfg config.EagleConfig, rng *rand.Rand) float64 {
	span := cfg.MaxInterval - cfg.MinInterval
	if span <= 0 || rng == nil {
		return cfg.MinInterval
	}
	return cfg.MinInterval + rng.Float64()*span
}

// NewEagle returns a dormant eagle with a fresh interval.
func NewEagle(cfg config.EagleConfig, rng *rand.Rand) EagleState {
	return EagleState{Timer: NextInterval(cfg, rng)}
}

// DodgeOpen reports whether a dodge window is running.
func (s EagleState) DodgeOpen() bool {
	return s.DodgeWindow > 0
}

// Active reports whether the eagle is visible to the player.
func (s EagleState) Active() bool {
	return s.Warning || s.AltitudeHunt || s.DodgeOpen()
}

// RegisterTap counts a flap toward a tap dodge. Taps outside a window are
// ignored.
func RegisterTap(s EagleState) EagleState {
	if s.DodgeOpen() {
		s.DodgeTaps++
	}
	return s
}

// TickEagle advances the eagle by one frame.
func TickEagle(s EagleState, in EagleInput, cfg config.EagleConfig, rng *rand.Rand) (EagleState, EagleEvent) {
	// Too high: hunt immediately. The countdown is not decremented on the
	// tick that sets it, and any timed dodge is abandoned.
	if in.Altitude > cfg.AltitudeCeiling && !s.AltitudeHunt {
		s.AltitudeHunt = true
		s.Warning = true
		s.Timer = cfg.HuntCountdown
		s.DodgeWindow = 0
		s.DodgeTaps = 0
		s.NearCeiling = false
		return s, EagleHuntStarted
	}

	if in.Altitude <= cfg.AltitudeCeiling && s.AltitudeHunt && !s.DodgeOpen() {
		s.AltitudeHunt = false
		s.Warning = false
		s.Timer = NextInterval(cfg, rng)
		return s, EagleHuntEnded
	}

	s.Timer -= in.Delta

	if s.AltitudeHunt {
		if s.Timer <= 0 {
			return s, EagleHuntCaught
		}
		return s, EagleNone
	}

	if s.Timer <= cfg.WarningTime && !s.Warning {
		s.Warning = true
		return s, EagleWarning
	}

	if s.Timer > 0 || !s.Warning {
		return s, EagleNone
	}

	// The opening tick snapshots the heading and does not count down.
	if !s.DodgeOpen() {
		s.DodgeWindow = cfg.DodgeWindow
		s.DodgeStartRotation = in.Rotation
		s.DodgeTaps = 0
		s.NearCeiling = in.Altitude > cfg.AltitudeCeiling-cfg.NearCeilingMargin
		return s, EagleDodgeOpened
	}

	if dodged(s, in, cfg) {
		s.Warning = false
		s.DodgeWindow = 0
		s.DodgeTaps = 0
		s.NearCeiling = false
		s.Timer = NextInterval(cfg, rng)
		return s, EagleDodged
	}

	s.DodgeWindow -= in.Delta
	if s.DodgeWindow <= 0 {
		s.DodgeWindow = 0
		return s, EagleCaught
	}
	return s, EagleNone
}

func dodged(s EagleState, in EagleInput, cfg config.EagleConfig) bool {
	if s.NearCeiling {
		return s.DodgeTaps >= cfg.DodgeTaps
	}
	return core.AngleDiff(in.Rotation, s.DodgeStartRotation) >= cfg.DodgeTurn
}
