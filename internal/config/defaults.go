package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// Default returns the built-in tuning.
func Default() GameConfig {
	return GameConfig{
		Flight: FlightConfig{
			TurnSpeed:        2.5,
			ForwardSpeedBase: 12,
			Gravity:          -9.8,
			GravityScale:     0.6,
			FlapImpulse:      6.0,
			Drag:             1.82, // 0.97 per frame at 60fps
			MinAltitude:      0.3,
			MaxAltitude:      40,
			MaxDelta:         0.05,
			FlapCooldown:     0.15,
			FlapWindow:       0.2,
			FlapStaminaCost:  2,
			GroundGrace:      3,
			TapSteerDamping:  0.75,
		},
		Resources: ResourceConfig{
			StaminaRegen:      3,
			DrainScale:        1,
			WarningThreshold:  30,
			CriticalThreshold: 15,
		},
		Eagle: EagleConfig{
			MinInterval:       30,
			MaxInterval:       90,
			WarningTime:       2.5,
			DodgeWindow:       1.5,
			AltitudeCeiling:   25,
			HuntCountdown:     4,
			NearCeilingMargin: 5,
			DodgeTaps:         3,
			DodgeTurn:         math.Pi / 2,
		},
		Cat: CatConfig{
			BaseRate:       8,
			CatMultiplier:  5,
			Max:            100,
			WarnWithCat:    20,
			WarnWithoutCat: 60,
		},
		Feeders: FeederConfig{
			InitialFeeders:      6,
			InitialBirdbaths:    4,
			InitialSpread:       80,
			InitialAttempts:     80,
			WideSpreadAfter:     50,
			WideSpreadFactor:    1.5,
			InitialCatFeeder:    0.4,
			InitialCatBirdbath:  0.3,
			SpawnMinDistance:    15,
			SpawnMaxDistance:    50,
			SpawnAttempts:       20,
			MinSpacing:          10,
			NearbyRadius:        50,
			NearbyTarget:        6,
			DespawnRadius:       80,
			BirdbathProbability: 0.45,
			CatProbability:      0.35,
			RefreshInterval:     3,
			LandingRadius:       4,
			LandingHeight:       4,
			LockDuration:        60,
			DepartureCooldown:   1.5,
			MinPerchTime:        2,
			DepartureLift:       5,
			DepartureVelocity:   3,
		},
		Scoring: ScoringConfig{
			FlightRate:          1,
			FeederBonus:         50,
			BirdbathBonus:       40,
			DodgeBonus:          100,
			ReplenishMultiplier: 2,
			KmPerUnit:           0.01,
			NoiseFloor:          0.01,
		},
		Session: SessionConfig{
			DyingDuration:   2,
			StartAltitude:   15,
			LeaderboardSize: 20,
			DefaultName:     "Player",
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
