package flight

import (
	"math"
	"testing"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

const eps = 1e-9

func cardinal() species.Attributes {
	return species.MustLookup(species.Cardinal).Attributes
}

func TestAltitudeAlwaysClamped(t *testing.T) {
	cfg := config.Default().Flight
	attrs := cardinal()

	tests := []struct {
		name string
		y    float64
		vy   float64
	}{
		{"falling hard", 0.5, -500},
		{"resting", cfg.MinAltitude, 0},
		{"rocketing", 39.9, 800},
		{"at ceiling", cfg.MaxAltitude, 10},
		{"below floor", -5, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(core.V3(0, tt.y, 0))
			s.Velocity.Y = tt.vy
			for i := 0; i < 50; i++ {
				res := Step(s, 0.3, attrs, cfg, 0.05)
				y := res.State.Position.Y
				if y < cfg.MinAltitude || y > cfg.MaxAltitude {
					t.Fatalf("tick %d: y = %v outside [%v, %v]", i, y, cfg.MinAltitude, cfg.MaxAltitude)
				}
				s = res.State
			}
		})
	}
}

func TestGroundStopsDescent(t *testing.T) {
	cfg := config.Default().Flight
	s := NewState(core.V3(0, cfg.MinAltitude, 0))
	s.Velocity.Y = -3

	res := Step(s, 0, cardinal(), cfg, 0.016)
	if !res.OnGround {
		t.Fatal("expected OnGround at the floor")
	}
	if res.State.Velocity.Y != 0 {
		t.Errorf("vy = %v, expected 0 when resting on the ground", res.State.Velocity.Y)
	}
}

func TestFlapImpulseIsEdgeTriggered(t *testing.T) {
	cfg := config.Default().Flight
	attrs := cardinal()

	s := Flap(NewState(core.V3(0, 10, 0)), 1, cfg)
	s.FlapTimer = 10 // hold the flag up for the whole test

	res := Step(s, 0, attrs, cfg, 0.016)
	if res.StaminaCost != cfg.FlapStaminaCost {
		t.Fatalf("first tick cost = %v, expected %v", res.StaminaCost, cfg.FlapStaminaCost)
	}
	firstVy := res.State.Velocity.Y
	if firstVy <= 0 {
		t.Fatalf("vy after flap = %v, expected upward", firstVy)
	}

	s = res.State
	for i := 0; i < 10; i++ {
		res = Step(s, 0, attrs, cfg, 0.016)
		if res.StaminaCost != 0 {
			t.Fatalf("tick %d: impulse reapplied while flag held", i)
		}
		if res.State.Velocity.Y >= s.Velocity.Y {
			t.Fatalf("tick %d: vy grew from %v to %v without a new flap", i, s.Velocity.Y, res.State.Velocity.Y)
		}
		s = res.State
	}
}

func TestFlapWindowExpiresAndRearms(t *testing.T) {
	cfg := config.Default().Flight
	attrs := cardinal()

	s := Flap(NewState(core.V3(0, 10, 0)), 1, cfg)
	ticks := 0
	for s.IsFlapping {
		s = Step(s, 0, attrs, cfg, 0.05).State
		ticks++
		if ticks > 100 {
			t.Fatal("flap window never closed")
		}
	}
	if ticks != 4 {
		t.Errorf("window lasted %d ticks of 50ms, expected 4", ticks)
	}
	if !s.FlapApplied {
		t.Error("FlapApplied should stay set until a tick sees IsFlapping false")
	}

	s = Step(s, 0, attrs, cfg, 0.05).State
	if s.FlapApplied {
		t.Error("FlapApplied should clear once the flag drops")
	}

	if !s.CanFlap() {
		t.Fatal("cooldown should have expired")
	}
	res := Step(Flap(s, 1, cfg), 0, attrs, cfg, 0.05)
	if res.StaminaCost == 0 {
		t.Error("second flap should apply a new impulse")
	}
}

func TestDeltaIsClamped(t *testing.T) {
	cfg := config.Default().Flight
	attrs := cardinal()
	s := NewState(core.V3(0, 10, 0))

	big := Step(s, 0, attrs, cfg, 1.0)
	capped := Step(s, 0, attrs, cfg, cfg.MaxDelta)
	if big.State.Position != capped.State.Position {
		t.Errorf("1s delta moved to %v, expected same as max delta %v", big.State.Position, capped.State.Position)
	}

	neg := Step(s, 1, attrs, cfg, -1)
	if neg.State.Position != s.Position || neg.State.Rotation != s.Rotation {
		t.Error("negative delta should not move the bird")
	}
}

func TestForwardMotionFollowsRotation(t *testing.T) {
	cfg := config.Default().Flight
	attrs := cardinal()
	speed := ForwardSpeed(attrs, cfg)
	if math.Abs(speed-4.2) > eps {
		t.Fatalf("cardinal forward speed = %v, expected 4.2", speed)
	}

	s := NewState(core.V3(0, 10, 0))
	s.Rotation = math.Pi / 2
	res := Step(s, 0, attrs, cfg, 0.05)

	if math.Abs(res.State.Position.X-speed*0.05) > eps {
		t.Errorf("x = %v, expected %v", res.State.Position.X, speed*0.05)
	}
	if math.Abs(res.State.Position.Z) > 1e-6 {
		t.Errorf("z = %v, expected ~0 when facing +X", res.State.Position.Z)
	}
	if math.Abs(res.State.Velocity.X-speed) > eps {
		t.Errorf("vx = %v, expected %v", res.State.Velocity.X, speed)
	}
}

func TestSteeringTurnsAtTurnSpeed(t *testing.T) {
	cfg := config.Default().Flight
	s := NewState(core.V3(0, 10, 0))

	res := Step(s, 1, cardinal(), cfg, 0.04)
	if math.Abs(res.State.Rotation-0.1) > eps {
		t.Errorf("rotation = %v, expected 0.1", res.State.Rotation)
	}
	res = Step(s, -3, cardinal(), cfg, 0.04)
	if math.Abs(res.State.Rotation+0.1) > eps {
		t.Errorf("steer beyond -1 should clamp, rotation = %v", res.State.Rotation)
	}
}

func TestDragMatchesReferenceDecay(t *testing.T) {
	cfg := config.Default().Flight
	cfg.Gravity = 0
	s := NewState(core.V3(0, 20, 0))
	s.Velocity.Y = 10

	res := Step(s, 0, cardinal(), cfg, 1.0/60)
	ratio := res.State.Velocity.Y / 10
	if math.Abs(ratio-0.97) > 0.001 {
		t.Errorf("per-frame decay = %v, expected ~0.97", ratio)
	}
}

func TestTapSteerStrength(t *testing.T) {
	cfg := config.Default().Flight
	tests := []struct {
		steer float64
		want  float64
	}{
		{0, 1},
		{1, 0.25},
		{-0.5, 0.625},
		{-2, 0.25},
	}
	for _, tt := range tests {
		if got := TapSteerStrength(tt.steer, cfg); math.Abs(got-tt.want) > eps {
			t.Errorf("TapSteerStrength(%v) = %v, expected %v", tt.steer, got, tt.want)
		}
	}
}
