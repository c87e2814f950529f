// Package config provides YAML-based tuning for the flight simulation and
// difficulty presets layered on top of it.
package config

// GameConfig contains every tunable constant of the simulation.
type GameConfig struct {
	Flight    FlightConfig   `yaml:"flight"`
	Resources ResourceConfig `yaml:"resources"`
	Eagle     EagleConfig    `yaml:"eagle"`
	Cat       CatConfig      `yaml:"cat"`
	Feeders   FeederConfig   `yaml:"feeders"`
	Scoring   ScoringConfig  `yaml:"scoring"`
	Session   SessionConfig  `yaml:"session"`
}

// FlightConfig defines the flight integrator constants.
type FlightConfig struct {
	TurnSpeed        float64 `yaml:"turn_speed"`         // rad/s at full steer
	ForwardSpeedBase float64 `yaml:"forward_speed_base"` // scaled by species speed / 20
	Gravity          float64 `yaml:"gravity"`
	GravityScale     float64 `yaml:"gravity_scale"`
	FlapImpulse      float64 `yaml:"flap_impulse"`
	Drag             float64 `yaml:"drag"` // per second, applied as exp(-drag*dt)
	MinAltitude      float64 `yaml:"min_altitude"`
	MaxAltitude      float64 `yaml:"max_altitude"`
	MaxDelta         float64 `yaml:"max_delta"`
	FlapCooldown     float64 `yaml:"flap_cooldown"`
	FlapWindow       float64 `yaml:"flap_window"`
	FlapStaminaCost  float64 `yaml:"flap_stamina_cost"`
	GroundGrace      float64 `yaml:"ground_grace"`
	TapSteerDamping  float64 `yaml:"tap_steer_damping"`
}

// ResourceConfig defines resource ledger constants.
type ResourceConfig struct {
	StaminaRegen      float64 `yaml:"stamina_regen"`
	DrainScale        float64 `yaml:"drain_scale"`
	WarningThreshold  float64 `yaml:"warning_threshold"`
	CriticalThreshold float64 `yaml:"critical_threshold"`
}

// EagleConfig defines the eagle threat constants.
type EagleConfig struct {
	MinInterval       float64 `yaml:"min_interval"`
	MaxInterval       float64 `yaml:"max_interval"`
	WarningTime       float64 `yaml:"warning_time"`
	DodgeWindow       float64 `yaml:"dodge_window"`
	AltitudeCeiling   float64 `yaml:"altitude_ceiling"`
	HuntCountdown     float64 `yaml:"hunt_countdown"`
	NearCeilingMargin float64 `yaml:"near_ceiling_margin"`
	DodgeTaps         int     `yaml:"dodge_taps"`
	DodgeTurn         float64 `yaml:"dodge_turn"` // radians
}

// CatConfig defines the cat threat meter constants.
type CatConfig struct {
	BaseRate       float64 `yaml:"base_rate"`
	CatMultiplier  float64 `yaml:"cat_multiplier"`
	Max            float64 `yaml:"max"`
	WarnWithCat    float64 `yaml:"warn_with_cat"`
	WarnWithoutCat float64 `yaml:"warn_without_cat"`
}

// FeederConfig defines feeder field constants.
type FeederConfig struct {
	InitialFeeders      int     `yaml:"initial_feeders"`
	InitialBirdbaths    int     `yaml:"initial_birdbaths"`
	InitialSpread       float64 `yaml:"initial_spread"`
	InitialAttempts     int     `yaml:"initial_attempts"`
	WideSpreadAfter     int     `yaml:"wide_spread_after"`
	WideSpreadFactor    float64 `yaml:"wide_spread_factor"`
	InitialCatFeeder    float64 `yaml:"initial_cat_feeder"`
	InitialCatBirdbath  float64 `yaml:"initial_cat_birdbath"`
	SpawnMinDistance    float64 `yaml:"spawn_min_distance"`
	SpawnMaxDistance    float64 `yaml:"spawn_max_distance"`
	SpawnAttempts       int     `yaml:"spawn_attempts"`
	MinSpacing          float64 `yaml:"min_spacing"`
	NearbyRadius        float64 `yaml:"nearby_radius"`
	NearbyTarget        int     `yaml:"nearby_target"`
	DespawnRadius       float64 `yaml:"despawn_radius"`
	BirdbathProbability float64 `yaml:"birdbath_probability"`
	CatProbability      float64 `yaml:"cat_probability"`
	RefreshInterval     float64 `yaml:"refresh_interval"`
	LandingRadius       float64 `yaml:"landing_radius"`
	LandingHeight       float64 `yaml:"landing_height"`
	LockDuration        float64 `yaml:"lock_duration"`
	DepartureCooldown   float64 `yaml:"departure_cooldown"`
	MinPerchTime        float64 `yaml:"min_perch_time"`
	DepartureLift       float64 `yaml:"departure_lift"`
	DepartureVelocity   float64 `yaml:"departure_velocity"`
}

// ScoringConfig defines score and distance constants.
type ScoringConfig struct {
	FlightRate          float64 `yaml:"flight_rate"`
	FeederBonus         float64 `yaml:"feeder_bonus"`
	BirdbathBonus       float64 `yaml:"birdbath_bonus"`
	DodgeBonus          float64 `yaml:"dodge_bonus"`
	ReplenishMultiplier float64 `yaml:"replenish_multiplier"`
	KmPerUnit           float64 `yaml:"km_per_unit"`
	NoiseFloor          float64 `yaml:"noise_floor"`
}

// SessionConfig defines session lifecycle constants.
type SessionConfig struct {
	DyingDuration   float64 `yaml:"dying_duration"`
	StartAltitude   float64 `yaml:"start_altitude"`
	LeaderboardSize int     `yaml:"leaderboard_size"`
	DefaultName     string  `yaml:"default_name"`
}
