package session

import (
	"time"

	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/feeders"
	"github.com/vovakirdan/backyard-skies/internal/resources"
	"github.com/vovakirdan/backyard-skies/internal/species"
	"github.com/vovakirdan/backyard-skies/internal/threat"
)

// Hint points toward the nearest available feeder of one kind.
type Hint struct {
	Feeder   feeders.Feeder
	Distance float64
	Bearing  float64 // relative to the bird's heading, in (-pi, pi]
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	State       GameState
	Paused      bool
	DeathReason DeathReason
	Species     species.Species

	Position     core.Vec3
	Velocity     core.Vec3
	Rotation     float64
	IsFlapping   bool
	FlapCooldown float64
	GroundTime   float64

	Food    float64
	Water   float64
	Stamina float64

	FoodStatus    resources.Status
	WaterStatus   resources.Status
	StaminaStatus resources.Status

	Score    float64
	Points   int
	Distance float64
	Elapsed  float64
	Now      time.Time

	Threat        ThreatType
	ThreatWarning bool
	ThreatMeter   float64
	Eagle         threat.EagleState

	Feeders      []feeders.Feeder
	ActiveFeeder feeders.Feeder
	PerchTime    float64
	CanFlyAway   bool
	Hints        []Hint

	DyingProgress float64 // 0..1 through the dying sequence
	LastRank      int

	PlayerName    string
	Muted         bool
	ControlScheme ControlScheme
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:         s.state,
		Paused:        s.paused,
		DeathReason:   s.deathReason,
		Species:       s.bird,
		Position:      s.flight.Position,
		Velocity:      s.flight.Velocity,
		Rotation:      s.flight.Rotation,
		IsFlapping:    s.flight.IsFlapping,
		FlapCooldown:  s.flight.FlapCooldown,
		GroundTime:    s.groundTime,
		Food:          s.levels.Food,
		Water:         s.levels.Water,
		Stamina:       s.levels.Stamina,
		Score:         s.tally.Score(),
		Points:        s.tally.Points(),
		Distance:      s.tally.Distance(),
		Elapsed:       s.elapsed,
		Now:           s.clock.Now(),
		Threat:        s.threatType(),
		ThreatMeter:   s.catMeter,
		Eagle:         s.eagle,
		Feeders:       s.field.All(),
		PerchTime:     s.perchTime,
		LastRank:      s.lastRank,
		PlayerName:    s.playerName,
		Muted:         s.muted,
		ControlScheme: s.scheme,
	}
	snap.ThreatWarning = snap.Threat != ThreatNone

	attrs, grades := s.bird.Attributes, s.cfg.Resources
	snap.FoodStatus = resources.Grade(s.levels.Food, attrs.MaxFood, grades)
	snap.WaterStatus = resources.Grade(s.levels.Water, attrs.MaxWater, grades)
	snap.StaminaStatus = resources.Grade(s.levels.Stamina, attrs.Stamina, grades)

	if s.state.Perched() {
		snap.ActiveFeeder = s.activeFeeder
		snap.CanFlyAway = s.perchTime >= s.cfg.Feeders.MinPerchTime
	}
	if s.state == StateDying && s.cfg.Session.DyingDuration > 0 {
		snap.DyingProgress = core.ClampF(s.dyingTime/s.cfg.Session.DyingDuration, 0, 1)
	}
	if s.state == StateFlight {
		snap.Hints = s.hints()
	}
	return snap
}

func (s *Session) threatType() ThreatType {
	switch {
	case s.deathReason == DeathCat:
		return ThreatCat
	case s.deathReason == DeathEagle:
		return ThreatEagle
	case s.state.Perched() && s.catWarned:
		return ThreatCat
	case s.state == StateFlight && s.eagle.Active():
		return ThreatEagle
	}
	return ThreatNone
}

func (s *Session) hints() []Hint {
	now := s.clock.Now()
	var out []Hint
	for _, kind := range []feeders.Kind{feeders.KindFeeder, feeders.KindBirdbath} {
		f, ok := s.field.Nearest(s.flight.Position, now, kind)
		if !ok {
			continue
		}
		out = append(out, Hint{
			Feeder:   f,
			Distance: core.HorizontalDist(s.flight.Position, f.Position),
			Bearing:  core.WrapAngle(core.Heading(s.flight.Position, f.Position) - s.flight.Rotation),
		})
	}
	return out
}
