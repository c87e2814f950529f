package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/backyard-skies/internal/storage"
)

var (
	flagLimit int
	flagCSV   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best runs stored in the leaderboard database.

With --csv the full leaderboard is exported instead; use "-" for stdout.

Examples:
  skies scores
  skies scores --limit 5
  skies scores --csv scores.csv`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagCSV, "csv", "", "Export the leaderboard as CSV to this path")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagCSV != "" {
		if err := exportScores(store, flagCSV); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting scores: %v\n", err)
			os.Exit(1)
		}
		return
	}

	entries, err := store.TopEntries(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Backyard Skies")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No flights recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skies play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-9s  %7s  %6s  %s\n", "Rank", "Name", "Bird", "Score", "Km", "Date")
	fmt.Printf("  %-4s  %-20s  %-9s  %7s  %6s  %s\n", "----", "----", "----", "-----", "--", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-9s  %7.0f  %6.2f  %s\n",
			i+1, e.Name, e.Species, e.Score, e.Distance, e.Date.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Best: %.0f   Average: %.0f   Flown: %.2f km\n",
			stats.HighScore, stats.AvgScore, stats.TotalDistance)
	}
}

func exportScores(store *storage.Store, path string) error {
	entries, err := store.TopEntries(0)
	if err != nil {
		return err
	}
	if path == "-" {
		return storage.ExportCSV(os.Stdout, entries)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Exported %d runs to %s\n", len(entries), path)
	return nil
}
