package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/backyard-skies/internal/audio"
	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/platform/tui"
	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
	"github.com/vovakirdan/backyard-skies/internal/storage"
)

var (
	flagSpecies    string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly in the terminal",
	Long: `Start the game at the main menu.

Controls:
  Left/Right, A/D  - Steer
  Space/W          - Flap, or fly away from a feeder
  P/Esc            - Pause
  M                - Toggle sound
  Tab              - Leaderboard
  Ctrl+S           - Screenshot to ~/.skies/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower hunger, rarer eagles, lazier cats
  normal - The tuning from the config file
  hard   - Faster hunger, frequent eagles, quick cats

Examples:
  skies play
  skies play --species starling
  skies play --difficulty hard
  skies play --config ./my-game.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpecies, "species", "", "Bird to fly (see 'skies species')")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Do not open the audio device")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	id := species.ID(flagSpecies)
	if id != "" && !species.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown species %q\n", flagSpecies)
		fmt.Fprintln(os.Stderr, "Run 'skies species' to see available birds.")
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard database: %v\n", err)
		// Continue without storage - the leaderboard lives in memory
		store = nil
	}

	var cues session.CueSink = session.NopCues{}
	if !flagMute {
		player := audio.NewPlayer()
		if initErr := player.Init(); initErr != nil {
			logger.Warn("audio disabled", "error", initErr)
		} else {
			defer player.Close()
			cues = player
		}
	}

	opts := tui.Options{
		Config: &cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Species: id,
		Cues:    cues,
		Logger:  logger,
	}
	if store != nil {
		store.SetLeaderboardSize(cfg.Session.LeaderboardSize)
		opts.Leaderboard = store
		opts.Preferences = store
	}

	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadGameConfig loads the tuning and applies a difficulty preset.
func loadGameConfig(path, difficulty string) (config.GameConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.GameConfig{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.GameConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// fileLogger writes game logs to ~/.skies/skies.log, away from the
// alternate screen. It falls back to a discarding logger.
func fileLogger() (*log.Logger, func()) {
	discard := func() (*log.Logger, func()) {
		return log.New(io.Discard), func() {}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return discard()
	}
	dir := filepath.Join(home, ".skies")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard()
	}
	f, err := os.OpenFile(filepath.Join(dir, "skies.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard()
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "skies",
	})
	return logger, func() { f.Close() }
}
