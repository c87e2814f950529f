package flightlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/session"
)

func TestHeaderWrittenOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	for i := 0; i < 3; i++ {
		if err := w.Write(Record{Tick: i, State: "flight"}); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,time,state,x,y,z") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(buf.String(), "tick,") != 1 {
		t.Error("header repeated")
	}
	if w.Count() != 3 {
		t.Errorf("Count() = %d, expected 3", w.Count())
	}
}

func TestReadBack(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	want := []Record{
		{Tick: 0, Time: 0, State: "flight", Y: 15, Food: 85, Threat: "none"},
		{Tick: 20, Time: 1, State: "feeding", Y: 1.85, Food: 80.5, Score: 3, Threat: "cat", Meter: 12},
	}
	for _, r := range want {
		w.Write(r)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d records, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestFromSnapshot(t *testing.T) {
	snap := session.Snapshot{
		State:    session.StateFlight,
		Position: core.V3(1, 2, 3),
		Velocity: core.V3(0, -1, 4),
		Food:     50,
		Points:   12,
		Threat:   session.ThreatEagle,
		Elapsed:  2.5,
	}
	rec := FromSnapshot(50, snap)
	if rec.Tick != 50 || rec.Time != 2.5 || rec.State != "flight" {
		t.Errorf("record = %+v", rec)
	}
	if rec.X != 1 || rec.Y != 2 || rec.Z != 3 || rec.VY != -1 {
		t.Errorf("position = %+v", rec)
	}
	if rec.Threat != "eagle" || rec.Score != 12 {
		t.Errorf("threat/score = %+v", rec)
	}
}

func TestCreateAndNil(t *testing.T) {
	w, err := Create("")
	if err != nil || w != nil {
		t.Fatalf("Create(\"\") = %v, %v", w, err)
	}
	if err := w.Write(Record{}); err != nil {
		t.Errorf("nil writer returned %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("nil writer Close returned %v", err)
	}

	path := filepath.Join(t.TempDir(), "logs", "flight.csv")
	w, err = Create(path)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	w.Write(Record{Tick: 1})
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.HasPrefix(string(data), "tick,") {
		t.Errorf("log = %q", data)
	}
}
