package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "game.yaml"

// Load loads the game tuning.
// Search order: customPath -> ~/.skies/configs/game.yaml -> ./configs/game.yaml -> embedded default
//
// Files are decoded over Default, so a file only needs the keys it changes.
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Validate rejects tuning the simulation cannot run with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Flight.MinAltitude >= c.Flight.MaxAltitude {
		errs = append(errs, errors.New("flight.min_altitude must be below flight.max_altitude"))
	}
	if c.Flight.MaxDelta <= 0 {
		errs = append(errs, errors.New("flight.max_delta must be positive"))
	}
	if c.Eagle.MinInterval <= 0 || c.Eagle.MaxInterval < c.Eagle.MinInterval {
		errs = append(errs, errors.New("eagle intervals must satisfy 0 < min_interval <= max_interval"))
	}
	if c.Eagle.DodgeWindow <= 0 || c.Eagle.HuntCountdown <= 0 {
		errs = append(errs, errors.New("eagle.dodge_window and eagle.hunt_countdown must be positive"))
	}
	if c.Cat.Max <= 0 {
		errs = append(errs, errors.New("cat.max must be positive"))
	}
	if c.Feeders.SpawnMinDistance > c.Feeders.SpawnMaxDistance {
		errs = append(errs, errors.New("feeders.spawn_min_distance exceeds spawn_max_distance"))
	}
	if c.Feeders.DespawnRadius <= c.Feeders.NearbyRadius {
		errs = append(errs, errors.New("feeders.despawn_radius must exceed feeders.nearby_radius"))
	}
	if c.Session.LeaderboardSize <= 0 {
		errs = append(errs, errors.New("session.leaderboard_size must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skies", "configs", filename)
}
