// Package tui is the terminal front end: a Bubble Tea model that drives one
// game session, renders it into a character buffer and serves it locally or
// over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after one tick interval.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two ticks. The first tick, and any
// tick that arrives out of order, counts as one nominal interval.
func frameDelta(prev, now time.Time, tickRate int) float64 {
	nominal := 1 / float64(max(tickRate, 1))
	if prev.IsZero() || !now.After(prev) {
		return nominal
	}
	return now.Sub(prev).Seconds()
}
