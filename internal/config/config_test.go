package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("eagle:\n  hunt_countdown: 6\nscoring:\n  dodge_bonus: 250\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Eagle.HuntCountdown != 6 {
		t.Errorf("HuntCountdown = %v, expected 6", cfg.Eagle.HuntCountdown)
	}
	if cfg.Scoring.DodgeBonus != 250 {
		t.Errorf("DodgeBonus = %v, expected 250", cfg.Scoring.DodgeBonus)
	}
	// Untouched keys keep their defaults.
	if cfg.Flight.TurnSpeed != 2.5 {
		t.Errorf("TurnSpeed = %v, expected default 2.5", cfg.Flight.TurnSpeed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("flight: [not, a, map"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("flight:\n  min_altitude: 50\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load of out-of-range tuning should fail")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Error("Load without any files should return the defaults")
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.MkdirAll("configs", 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "game.yaml"), []byte("cat:\n  max: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Cat.Max != 80 {
		t.Errorf("Cat.Max = %v, expected 80 from ./configs", cfg.Cat.Max)
	}
}

func TestLoadUserDirWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	userDir := filepath.Join(home, ".skies", "configs")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "game.yaml"), []byte("cat:\n  max: 90\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll("configs", 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "game.yaml"), []byte("cat:\n  max: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Cat.Max != 90 {
		t.Errorf("Cat.Max = %v, expected 90 from the user directory", cfg.Cat.Max)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"HARD", DifficultyHard, false},
		{" normal ", DifficultyNormal, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownPreset) {
				t.Errorf("ParsePreset(%q) error = %v, expected ErrUnknownPreset", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v; expected %q", tt.in, got, err, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != Default() {
		t.Error("normal preset should not change the tuning")
	}

	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	hard := Default()
	ApplyPreset(&hard, DifficultyHard)

	if !(easy.Resources.DrainScale < 1 && hard.Resources.DrainScale > 1) {
		t.Errorf("DrainScale easy=%v hard=%v", easy.Resources.DrainScale, hard.Resources.DrainScale)
	}
	if !(easy.Eagle.MinInterval > normal.Eagle.MinInterval && hard.Eagle.MinInterval < normal.Eagle.MinInterval) {
		t.Errorf("MinInterval easy=%v hard=%v", easy.Eagle.MinInterval, hard.Eagle.MinInterval)
	}
	if math.Abs(easy.Eagle.MaxInterval-135) > 1e-9 {
		t.Errorf("easy MaxInterval = %v, expected 135", easy.Eagle.MaxInterval)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset produced invalid tuning: %v", err)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Flight.MaxDelta = 0
	cfg.Session.LeaderboardSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	msg := err.Error()
	for _, want := range []string{"max_delta", "leaderboard_size"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %s", msg, want)
		}
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
