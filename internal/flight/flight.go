// Package flight integrates the bird's kinematics one frame at a time.
// Step is pure: it never touches the session and is safe to call from tests
// with hand-built states.
package flight

import (
	"math"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

// timerEpsilon absorbs float drift when a window is counted down in equal steps.
const timerEpsilon = 1e-9

// State is the kinematic state of the bird.
type State struct {
	Position     core.Vec3
	Velocity     core.Vec3
	Rotation     float64 // yaw in radians, 0 faces +Z
	IsFlapping   bool    // true for a short window after a registered flap
	FlapTimer    float64 // seconds left in the flap window
	FlapApplied  bool    // impulse already applied for the current flap
	FlapCooldown float64 // seconds before another flap can register
	FlapStrength float64 // 0..1 impulse multiplier
}

// Result is the outcome of one integration step.
type Result struct {
	State       State
	OnGround    bool
	StaminaCost float64
}

// NewState places the bird at pos facing +Z, at rest.
func NewState(pos core.Vec3) State {
	return State{
		Position:     pos,
		FlapStrength: 1,
	}
}

// ClampDelta limits a frame delta to [0, max] so a hitch cannot destabilize
// the integrator.
func ClampDelta(delta float64, cfg config.FlightConfig) float64 {
	return core.ClampF(delta, 0, cfg.MaxDelta)
}

// ForwardSpeed returns the constant horizontal cruise speed for a species.
func ForwardSpeed(attrs species.Attributes, cfg config.FlightConfig) float64 {
	return cfg.ForwardSpeedBase * attrs.Speed / 20
}

// Step advances s by delta seconds under the given steering axis.
func Step(s State, steer float64, attrs species.Attributes, cfg config.FlightConfig, delta float64) Result {
	delta = ClampDelta(delta, cfg)
	steer = core.ClampF(steer, -1, 1)

	next := s
	next.Rotation = s.Rotation + steer*cfg.TurnSpeed*delta

	fx := math.Sin(next.Rotation)
	fz := math.Cos(next.Rotation)
	speed := ForwardSpeed(attrs, cfg)

	vy := s.Velocity.Y
	vy += cfg.Gravity * cfg.GravityScale * delta

	// Impulse is edge-triggered on IsFlapping.
	var cost float64
	if s.IsFlapping && !s.FlapApplied {
		next.FlapApplied = true
		vy += cfg.FlapImpulse * attrs.FlapPower * s.FlapStrength
		cost = cfg.FlapStaminaCost
	}
	if !s.IsFlapping {
		next.FlapApplied = false
	}

	vy *= math.Exp(-cfg.Drag * delta)

	y := s.Position.Y + vy*delta
	y = core.ClampF(y, cfg.MinAltitude, cfg.MaxAltitude)

	onGround := y <= cfg.MinAltitude
	if onGround && vy < 0 {
		vy = 0
	}

	next.Position = core.V3(
		s.Position.X+fx*speed*delta,
		y,
		s.Position.Z+fz*speed*delta,
	)
	next.Velocity = core.V3(fx*speed, vy, fz*speed)
	next.FlapCooldown = math.Max(0, s.FlapCooldown-delta)

	if next.IsFlapping {
		next.FlapTimer = s.FlapTimer - delta
		if next.FlapTimer <= timerEpsilon {
			next.FlapTimer = 0
			next.IsFlapping = false
		}
	}

	return Result{
		State:       next,
		OnGround:    onGround,
		StaminaCost: cost,
	}
}

// CanFlap reports whether the cooldown allows a new flap.
func (s State) CanFlap() bool {
	return s.FlapCooldown <= 0
}

// Flap registers a flap with the given strength. The impulse itself is
// applied by the next Step. Callers check CanFlap and stamina first.
func Flap(s State, strength float64, cfg config.FlightConfig) State {
	s.IsFlapping = true
	s.FlapTimer = cfg.FlapWindow
	s.FlapCooldown = cfg.FlapCooldown
	s.FlapStrength = core.ClampF(strength, 0, 1)
	return s
}

// TapSteerStrength returns the flap strength under the tap-steer scheme,
// where steering hard weakens the flap.
func TapSteerStrength(steer float64, cfg config.FlightConfig) float64 {
	return 1 - math.Abs(core.ClampF(steer, -1, 1))*cfg.TapSteerDamping
}
