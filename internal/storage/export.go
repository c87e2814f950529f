package storage

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/backyard-skies/internal/session"
)

// ExportRow is one leaderboard line in CSV form.
type ExportRow struct {
	Rank     int     `csv:"rank"`
	Name     string  `csv:"name"`
	Species  string  `csv:"species"`
	Score    int     `csv:"score"`
	Distance float64 `csv:"distance_km"`
	Date     string  `csv:"date"`
}

// ExportCSV writes entries as CSV with a header row.
func ExportCSV(w io.Writer, entries []session.LeaderboardEntry) error {
	rows := make([]*ExportRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, &ExportRow{
			Rank:     i + 1,
			Name:     e.Name,
			Species:  string(e.Species),
			Score:    int(e.Score),
			Distance: e.Distance,
			Date:     e.Date.Format("2006-01-02"),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("storage: cannot export csv: %w", err)
	}
	return nil
}
