// Package flightlog writes per-tick flight telemetry as CSV.
package flightlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/backyard-skies/internal/session"
)

// Record is one sampled tick.
type Record struct {
	Tick     int     `csv:"tick"`
	Time     float64 `csv:"time"`
	State    string  `csv:"state"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Z        float64 `csv:"z"`
	VY       float64 `csv:"vy"`
	Heading  float64 `csv:"heading"`
	Food     float64 `csv:"food"`
	Water    float64 `csv:"water"`
	Stamina  float64 `csv:"stamina"`
	Score    int     `csv:"score"`
	Distance float64 `csv:"distance_km"`
	Threat   string  `csv:"threat"`
	Meter    float64 `csv:"threat_meter"`
}

// FromSnapshot samples snap at the given tick.
func FromSnapshot(tick int, snap session.Snapshot) Record {
	return Record{
		Tick:     tick,
		Time:     snap.Elapsed,
		State:    snap.State.String(),
		X:        snap.Position.X,
		Y:        snap.Position.Y,
		Z:        snap.Position.Z,
		VY:       snap.Velocity.Y,
		Heading:  snap.Rotation,
		Food:     snap.Food,
		Water:    snap.Water,
		Stamina:  snap.Stamina,
		Score:    snap.Points,
		Distance: snap.Distance,
		Threat:   snap.Threat.String(),
		Meter:    snap.ThreatMeter,
	}
}

// Writer appends records to a CSV stream. The header is written with the
// first record. A nil *Writer discards everything.
type Writer struct {
	out           io.Writer
	closer        io.Closer
	headerWritten bool
	count         int
}

// NewWriter writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Create opens path for writing, creating parent directories. An empty path
// returns a nil Writer.
func Create(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("flightlog: creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("flightlog: creating %s: %w", path, err)
	}
	return &Writer{out: f, closer: f}, nil
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	if w == nil {
		return nil
	}

	records := []Record{rec}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("flightlog: writing record: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
			return fmt.Errorf("flightlog: writing record: %w", err)
		}
	}
	w.count++
	return nil
}

// Count returns how many records were written.
func (w *Writer) Count() int {
	if w == nil {
		return 0
	}
	return w.count
}

// Close closes the underlying file, if the Writer opened one.
func (w *Writer) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// Read parses a log written by Writer.
func Read(r io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("flightlog: reading: %w", err)
	}
	return records, nil
}
