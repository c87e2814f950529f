package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned by ParsePreset for names it does not know.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded tuning untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Resources.DrainScale *= 0.75
		cfg.Eagle.MinInterval *= 1.5
		cfg.Eagle.MaxInterval *= 1.5
		cfg.Eagle.DodgeWindow *= 1.33
		cfg.Cat.BaseRate *= 0.75
		cfg.Flight.GroundGrace *= 1.5
	case DifficultyHard:
		cfg.Resources.DrainScale *= 1.3
		cfg.Eagle.MinInterval *= 0.66
		cfg.Eagle.MaxInterval *= 0.66
		cfg.Eagle.DodgeWindow *= 0.8
		cfg.Cat.BaseRate *= 1.25
		cfg.Flight.GroundGrace *= 0.5
	}
}
