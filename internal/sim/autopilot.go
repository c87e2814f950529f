// Package sim runs the game headless under a simple autopilot. It is used for
// tuning and as an end-to-end smoke test of the simulation.
package sim

import (
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/feeders"
	"github.com/vovakirdan/backyard-skies/internal/session"
)

// Autopilot decides the controls for one tick from a snapshot.
type Autopilot struct {
	Cruise    float64 // altitude held between feeders
	Approach  float64 // horizontal distance at which the descent starts
	FullRatio float64 // leave a perch once the resource reaches this fraction
}

// DefaultAutopilot flies low, well under the eagle ceiling.
func DefaultAutopilot() Autopilot {
	return Autopilot{Cruise: 12, Approach: 10, FullRatio: 0.95}
}

// Decision is what the autopilot wants this tick.
type Decision struct {
	Input   session.Input
	FlyAway bool
}

// Decide returns the controls for snap.
func (a Autopilot) Decide(snap session.Snapshot) Decision {
	if snap.State.Perched() {
		return Decision{FlyAway: snap.CanFlyAway && a.leave(snap)}
	}
	if snap.State != session.StateFlight {
		return Decision{}
	}

	// Eagle first.
	if snap.Eagle.DodgeOpen() {
		if snap.Eagle.NearCeiling {
			return Decision{Input: session.Input{Flap: true}}
		}
		return Decision{Input: session.Input{Steer: 1}}
	}

	target := a.Cruise
	var steer float64
	if h, ok := a.goal(snap); ok {
		steer = core.ClampF(h.Bearing*2, -1, 1)
		if h.Distance < a.Approach {
			target = 2
		}
	}
	if snap.Eagle.AltitudeHunt {
		target = a.Cruise / 2
	}

	flap := snap.Position.Y < target && snap.Velocity.Y < 1 && snap.Stamina > 5
	return Decision{Input: session.Input{Steer: steer, Flap: flap}}
}

func (a Autopilot) leave(snap session.Snapshot) bool {
	if snap.ThreatWarning {
		return true
	}
	attrs := snap.Species.Attributes
	if snap.ActiveFeeder.Kind == feeders.KindBirdbath {
		return snap.Water >= attrs.MaxWater*a.FullRatio
	}
	return snap.Food >= attrs.MaxFood*a.FullRatio
}

// goal picks the hint for whichever resource is lower relative to its max.
func (a Autopilot) goal(snap session.Snapshot) (session.Hint, bool) {
	attrs := snap.Species.Attributes
	want := feeders.KindFeeder
	if snap.Water/attrs.MaxWater < snap.Food/attrs.MaxFood {
		want = feeders.KindBirdbath
	}
	var fallback session.Hint
	found := false
	for _, h := range snap.Hints {
		if h.Feeder.Kind == want {
			return h, true
		}
		fallback, found = h, true
	}
	return fallback, found
}
