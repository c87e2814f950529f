package session

import (
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/feeders"
	"github.com/vovakirdan/backyard-skies/internal/flight"
	"github.com/vovakirdan/backyard-skies/internal/resources"
	"github.com/vovakirdan/backyard-skies/internal/threat"
)

// Tick advances the session by delta seconds. Menus and game-over do not
// advance; a paused run does not advance either.
func (s *Session) Tick(in Input, delta float64) Report {
	r := Report{}
	delta = flight.ClampDelta(delta, s.cfg.Flight)
	s.lastSteer = core.ClampF(in.Steer, -1, 1)

	if !s.paused {
		switch s.state {
		case StateFlight:
			s.tickFlight(in, delta, &r)
		case StateFeeding, StateDrinking:
			s.tickPerch(delta, &r)
		case StateDying:
			s.tickDying(delta, &r)
		}
	}

	r.State = s.state
	return r
}

// tickFlight runs integrate, deplete, landing, threats and scoring in that
// order. A fatal condition ends the tick.
func (s *Session) tickFlight(in Input, dt float64, r *Report) {
	s.elapsed += dt

	if in.Flap {
		s.flap(in.Steer, r)
	}

	res := flight.Step(s.flight, in.Steer, s.bird.Attributes, s.cfg.Flight, dt)
	s.flight = res.State
	if res.StaminaCost > 0 {
		s.levels = resources.SpendStamina(s.levels, res.StaminaCost)
	}

	if res.OnGround && s.flight.Velocity.Y <= 0 {
		s.groundTime += dt
	} else {
		s.groundTime = 0
	}
	if s.groundTime > s.cfg.Flight.GroundGrace {
		s.gameOver(DeathGround, r)
		return
	}

	var depleted resources.Depleted
	s.levels, depleted = resources.Deplete(s.levels, s.bird.Attributes, s.cfg.Resources, dt)
	switch depleted {
	case resources.DepletedFood:
		s.gameOver(DeathFood, r)
		return
	case resources.DepletedWater:
		s.gameOver(DeathWater, r)
		return
	}

	if s.feederCooldown > 0 {
		s.feederCooldown = max(0, s.feederCooldown-dt)
	}
	landed := false
	if s.feederCooldown <= 0 {
		if f, ok := s.field.LandingCandidate(s.flight.Position, s.clock.Now()); ok {
			s.land(f, r)
			landed = true
		}
	}

	// The eagle does not strike on the frame the bird lands.
	if !landed {
		if s.tickEagle(dt, r) {
			return
		}
	}

	s.tally.Flight(dt)
	s.tally.Travel(s.flight.Position)

	if !landed {
		s.refreshTimer += dt
		if s.refreshTimer > s.cfg.Feeders.RefreshInterval {
			s.refreshTimer = 0
			culled, spawned := s.field.Refresh(s.flight.Position)
			if culled > 0 || spawned > 0 {
				r.add(Event{Kind: EventFeedersRefreshed})
			}
		}
	}
}

// tickEagle applies the eagle's event and reports whether it was fatal.
func (s *Session) tickEagle(dt float64, r *Report) bool {
	in := threat.EagleInput{
		Altitude: s.flight.Position.Y,
		Rotation: s.flight.Rotation,
		Delta:    dt,
	}
	var ev threat.EagleEvent
	s.eagle, ev = threat.TickEagle(s.eagle, in, s.cfg.Eagle, s.rng)

	switch ev {
	case threat.EagleHuntStarted:
		s.cue(core.CueEagle)
		r.add(Event{Kind: EventEagleHunt})
	case threat.EagleHuntEnded:
		r.add(Event{Kind: EventEagleHuntEnded})
	case threat.EagleWarning:
		s.cue(core.CueEagle)
		r.add(Event{Kind: EventEagleWarning})
	case threat.EagleDodgeOpened:
		r.add(Event{Kind: EventDodgeOpened})
	case threat.EagleDodged:
		pts := s.tally.Dodge()
		s.cue(core.CueDodge)
		r.add(Event{Kind: EventDodged, Points: pts})
	case threat.EagleHuntCaught, threat.EagleCaught:
		s.gameOver(DeathEagle, r)
		return true
	}
	return false
}

// tickPerch replenishes the perched resource and lets the cat close in.
func (s *Session) tickPerch(dt float64, r *Report) {
	s.elapsed += dt
	s.perchTime += dt

	kind := resources.Food
	if s.activeFeeder.Kind == feeders.KindBirdbath {
		kind = resources.Water
	}
	var gained float64
	s.levels, gained = resources.Replenish(s.levels, kind, s.bird.Attributes, dt)
	s.tally.Replenished(gained)

	res := threat.TickCat(s.catMeter, s.activeFeeder.HasCat, s.catWarned, s.cfg.Cat, dt)
	s.catMeter = res.Meter
	switch res.Event {
	case threat.CatCaught:
		s.gameOver(DeathCat, r)
	case threat.CatWarning:
		s.catWarned = true
		r.add(Event{Kind: EventCatWarning, FeederID: s.activeFeeder.ID})
	}
}

func (s *Session) tickDying(dt float64, r *Report) {
	s.dyingTime += dt
	if s.dyingTime >= s.cfg.Session.DyingDuration {
		if s.FinalizeDeath() {
			r.add(Event{Kind: EventFinalized})
		}
	}
}

// land snaps the bird onto f.
func (s *Session) land(f feeders.Feeder, r *Report) {
	pos, rot := feeders.Perch(f)

	s.flight.Position = pos
	s.flight.Rotation = rot
	s.flight.Velocity = core.Vec3{}
	s.flight.IsFlapping = false
	s.flight.FlapTimer = 0
	s.flight.FlapApplied = false
	s.tally.Reanchor(pos)

	s.activeFeeder = f
	s.catMeter = 0
	s.catWarned = false
	s.perchTime = 0
	s.groundTime = 0

	// Perching calls off an approaching eagle. The perch snaps the heading,
	// so an open window must not carry over into the departure.
	if s.eagle.Warning || s.eagle.DodgeOpen() {
		s.eagle = threat.NewEagle(s.cfg.Eagle, s.rng)
		s.log.Debug("eagle called off by perch", "feeder", f.ID)
	}

	if f.Kind == feeders.KindBirdbath {
		s.setState(StateDrinking)
		s.cue(core.CueDrink)
	} else {
		s.setState(StateFeeding)
		s.cue(core.CueEat)
	}
	r.add(Event{Kind: EventLanded, FeederID: f.ID})
}

// gameOver is the single funnel for fatal conditions. Outside a run it is a
// no-op, so a death is only ever recorded once.
func (s *Session) gameOver(reason DeathReason, r *Report) bool {
	if !s.state.Running() {
		return false
	}
	s.deathReason = reason
	s.dyingTime = 0
	s.setState(StateDying)
	s.cue(core.CueDeath)
	s.log.Debug("bird died", "reason", reason, "score", s.tally.Points())
	r.add(Event{Kind: EventDeath, Reason: reason})
	return true
}
