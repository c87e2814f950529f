// skies is a terminal bird flight survival game.
//
// Usage:
//
//	skies play              - Fly in the terminal
//	skies serve             - Start SSH server for remote play
//	skies scores            - Show the leaderboard
//	skies species           - Show the bird attribute table
//	skies sim               - Run a headless autopilot flight
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible flights
//	--db <path>     - Set database path (default: ~/.skies/skies.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skies",
	Short: "Backyard Skies - keep a songbird alive over the suburbs",
	Long: `Backyard Skies is a flight survival game played in the terminal.
Fly a songbird over an endless suburb, land on feeders and birdbaths to
eat and drink, dodge diving eagles and get away from stalking cats.

Available commands:
  play     - Fly in the terminal
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  species  - Show the bird attribute table
  sim      - Run a headless autopilot flight

Examples:
  skies play
  skies play --species bunting --difficulty hard
  skies serve --ssh :2222
  skies scores --csv scores.csv
  skies sim --seconds 120 --log flight.csv`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skies/skies.db", "Path to leaderboard database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(speciesCmd)
	rootCmd.AddCommand(simCmd)
}
