package scoring

import (
	"math"
	"testing"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
)

func newTally() *Tally {
	return NewTally(config.Default().Scoring, core.Vec3{})
}

func TestFlightCarriesFraction(t *testing.T) {
	tl := newTally()
	total := 0
	for i := 0; i < 12; i++ {
		total += tl.Flight(0.25)
	}
	if total != 3 {
		t.Errorf("flushed %d points over 3s, expected 3", total)
	}
	if tl.Points() != 3 {
		t.Errorf("Points() = %d, expected 3", tl.Points())
	}
	if tl.Flight(-1) != 0 {
		t.Error("negative delta should not score")
	}
}

func TestBonuses(t *testing.T) {
	tl := newTally()

	tests := []struct {
		name  string
		award func() float64
		want  float64
	}{
		{"feeder", func() float64 { return tl.FeederDeparture(false) }, 50},
		{"birdbath", func() float64 { return tl.FeederDeparture(true) }, 40},
		{"dodge", tl.Dodge, 100},
		{"replenish", func() float64 { return tl.Replenished(2.5) }, 5},
	}

	sum := 0.0
	for _, tt := range tests {
		got := tt.award()
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s awarded %v, expected %v", tt.name, got, tt.want)
		}
		sum += tt.want
	}
	if math.Abs(tl.Score()-sum) > 1e-9 {
		t.Errorf("Score() = %v, expected %v", tl.Score(), sum)
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	tl := newTally()
	tl.Add(10)
	for _, p := range []float64{-5, math.NaN(), 0, math.Inf(-1)} {
		before := tl.Score()
		tl.Add(p)
		tl.Replenished(p)
		if tl.Score() < before {
			t.Fatalf("score dropped from %v to %v after adding %v", before, tl.Score(), p)
		}
	}
}

func TestTravel(t *testing.T) {
	tl := newTally()

	km := tl.Travel(core.V3(30, 40, 0))
	if math.Abs(km-0.5) > 1e-9 {
		t.Errorf("Travel = %v km, expected 0.5", km)
	}
	if math.Abs(tl.Distance()-0.5) > 1e-9 {
		t.Errorf("Distance() = %v, expected 0.5", tl.Distance())
	}
}

func TestTravelNoiseFloorKeepsAnchor(t *testing.T) {
	tl := newTally()

	// Ten creeping steps of 0.006 each: each is under the floor on its own,
	// but they accumulate against the anchor.
	for i := 1; i <= 10; i++ {
		tl.Travel(core.V3(0.006*float64(i), 0, 0))
	}
	want := 0.06 * 0.01
	if math.Abs(tl.Distance()-want) > 1e-6 {
		t.Errorf("Distance() = %v, expected about %v", tl.Distance(), want)
	}

	// Jitter in place never adds up.
	tl = newTally()
	for i := 0; i < 1000; i++ {
		tl.Travel(core.V3(0.001*float64(i%2), 0, 0))
	}
	if tl.Distance() != 0 {
		t.Errorf("jitter produced %v km", tl.Distance())
	}
}

func TestReanchorSkipsTeleport(t *testing.T) {
	tl := newTally()
	tl.Reanchor(core.V3(1000, 0, 0))
	if km := tl.Travel(core.V3(1000, 0, 0)); km != 0 {
		t.Errorf("teleport counted %v km", km)
	}
}

func TestReset(t *testing.T) {
	tl := newTally()
	tl.Add(42)
	tl.Flight(0.5)
	tl.Travel(core.V3(100, 0, 0))

	tl.Reset(core.V3(5, 5, 5))
	if tl.Score() != 0 || tl.Distance() != 0 {
		t.Errorf("after Reset score=%v distance=%v", tl.Score(), tl.Distance())
	}
	if tl.Flight(0.6) != 0 {
		t.Error("carry should reset with the tally")
	}
}
