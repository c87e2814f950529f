package storage

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

var _ session.Leaderboard = (*Store)(nil)

// SaveEntry records a finished run, trims the table to the leaderboard size
// and returns the new top list.
func (s *Store) SaveEntry(e session.LeaderboardEntry) ([]session.LeaderboardEntry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	date := e.Date
	if date.IsZero() {
		date = time.Now()
	}
	_, err = tx.Exec(
		"INSERT INTO leaderboard (name, species, score, distance, created_at) VALUES (?, ?, ?, ?, ?)",
		e.Name, string(e.Species), e.Score, math.Round(e.Distance*100)/100, date.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot save entry: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM leaderboard WHERE id NOT IN (
			SELECT id FROM leaderboard ORDER BY score DESC, id ASC LIMIT ?
		)`,
		s.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot trim leaderboard: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: cannot commit entry: %w", err)
	}

	return s.TopEntries(s.limit)
}

// TopEntries retrieves the best runs ordered by score descending. Equal
// scores keep the older run first.
func (s *Store) TopEntries(limit int) ([]session.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.limit
	}

	rows, err := s.db.Query(
		`SELECT name, species, score, distance, created_at
		 FROM leaderboard
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []session.LeaderboardEntry
	for rows.Next() {
		var (
			e         session.LeaderboardEntry
			id        string
			createdAt string
		)
		if err := rows.Scan(&e.Name, &id, &e.Score, &e.Distance, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Species = species.ID(id)
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.Date = parsed
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearLeaderboard deletes every run.
func (s *Store) ClearLeaderboard() error {
	_, err := s.db.Exec("DELETE FROM leaderboard")
	if err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	return nil
}

// Stats contains aggregated figures over the stored runs.
type Stats struct {
	Runs          int
	HighScore     float64
	AvgScore      float64
	TotalDistance float64
	LastPlayed    time.Time
}

// Stats aggregates the stored runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var last sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(distance), 0), MAX(created_at)
		 FROM leaderboard`,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalDistance, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if last.Valid {
		if parsed, err := time.Parse(time.RFC3339Nano, last.String); err == nil {
			stats.LastPlayed = parsed
		}
	}

	return stats, nil
}
