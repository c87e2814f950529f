package session

import (
	"slices"
	"time"

	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

// GameState is the top-level mode of a session.
type GameState int

const (
	StateMenu GameState = iota
	StateSpeciesSelect
	StateSettings
	StateFlight
	StateFeeding
	StateDrinking
	StateDying
	StateGameOver
)

var stateNames = [...]string{
	StateMenu:          "menu",
	StateSpeciesSelect: "species-select",
	StateSettings:      "settings",
	StateFlight:        "flight",
	StateFeeding:       "feeding",
	StateDrinking:      "drinking",
	StateDying:         "dying",
	StateGameOver:      "game-over",
}

func (s GameState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Running reports whether the simulation advances in this state.
func (s GameState) Running() bool {
	return s == StateFlight || s == StateFeeding || s == StateDrinking
}

// Perched reports whether the bird sits on a feeder or birdbath.
func (s GameState) Perched() bool {
	return s == StateFeeding || s == StateDrinking
}

// DeathReason records why a run ended.
type DeathReason int

const (
	DeathNone DeathReason = iota
	DeathFood
	DeathWater
	DeathGround
	DeathEagle
	DeathCat
)

var reasonNames = [...]string{
	DeathNone:   "none",
	DeathFood:   "food",
	DeathWater:  "water",
	DeathGround: "ground",
	DeathEagle:  "eagle",
	DeathCat:    "cat",
}

func (r DeathReason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Message is the line shown on the game-over screen.
func (r DeathReason) Message() string {
	switch r {
	case DeathFood:
		return "You starved. Find feeders before your food runs out."
	case DeathWater:
		return "You dehydrated. Birdbaths keep you going."
	case DeathGround:
		return "You stayed grounded too long. Keep flapping!"
	case DeathEagle:
		return "An eagle caught you. Turn hard or stay low."
	case DeathCat:
		return "A cat ambushed you at the feeder."
	default:
		return ""
	}
}

// ThreatType is the predator currently shown to the player.
type ThreatType int

const (
	ThreatNone ThreatType = iota
	ThreatEagle
	ThreatCat
)

func (t ThreatType) String() string {
	switch t {
	case ThreatEagle:
		return "eagle"
	case ThreatCat:
		return "cat"
	default:
		return "none"
	}
}

// ControlScheme selects how flaps interact with steering.
type ControlScheme string

const (
	// ControlButtons flaps at full strength.
	ControlButtons ControlScheme = "buttons"
	// ControlTapSteer weakens flaps while steering hard.
	ControlTapSteer ControlScheme = "tap-steer"
)

// Preference keys.
const (
	PrefPlayerName    = "player_name"
	PrefMuted         = "muted"
	PrefControlScheme = "control_scheme"
)

// Input is the control state sampled once per tick.
type Input struct {
	Steer float64 // -1 (left) .. 1 (right)
	Flap  bool    // a flap was requested since the last tick
}

// LeaderboardEntry is one finished run.
type LeaderboardEntry struct {
	Name     string
	Species  species.ID
	Score    float64
	Distance float64 // km, rounded to 2 decimals
	Date     time.Time
}

// Leaderboard persists finished runs.
type Leaderboard interface {
	// SaveEntry stores e and returns the updated top list.
	SaveEntry(e LeaderboardEntry) ([]LeaderboardEntry, error)
	// TopEntries returns the best runs by score, highest first.
	TopEntries(limit int) ([]LeaderboardEntry, error)
}

// Preferences is a small key-value store for player settings.
type Preferences interface {
	Preference(key string) (string, bool, error)
	SetPreference(key, value string) error
}

// CueSink receives fire-and-forget audio cues.
type CueSink interface {
	Play(cue core.Cue)
}

// NopCues discards every cue.
type NopCues struct{}

// Play does nothing.
func (NopCues) Play(core.Cue) {}

// InsertRanked adds e to list, keeps it sorted by descending score and caps it
// at limit entries. Ties keep the older entry first.
func InsertRanked(list []LeaderboardEntry, e LeaderboardEntry, limit int) []LeaderboardEntry {
	out := append(slices.Clone(list), e)
	slices.SortStableFunc(out, func(a, b LeaderboardEntry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
