package sim

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

// Summary describes a finished headless run.
type Summary struct {
	Species  species.ID
	Seed     int64
	Ticks    int
	Duration float64
	Score    int
	Distance float64
	Death    session.DeathReason

	Flaps      int
	Landings   int
	Departures int
	Dodges     int
	Warnings   int

	AltitudeMean float64
	AltitudeStd  float64
	AltitudeP90  float64
	FoodMin      float64
	WaterMin     float64
}

// String renders the summary as an aligned block.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "species    %s (seed %d)\n", s.Species, s.Seed)
	fmt.Fprintf(&b, "survived   %.1fs over %d ticks\n", s.Duration, s.Ticks)
	fmt.Fprintf(&b, "score      %d\n", s.Score)
	fmt.Fprintf(&b, "distance   %.2f km\n", s.Distance)
	fmt.Fprintf(&b, "outcome    %s\n", outcome(s.Death))
	fmt.Fprintf(&b, "flaps      %d\n", s.Flaps)
	fmt.Fprintf(&b, "perches    %d landed, %d left\n", s.Landings, s.Departures)
	fmt.Fprintf(&b, "eagle      %d warnings, %d dodged\n", s.Warnings, s.Dodges)
	fmt.Fprintf(&b, "altitude   mean %.1f  sd %.1f  p90 %.1f\n", s.AltitudeMean, s.AltitudeStd, s.AltitudeP90)
	fmt.Fprintf(&b, "lowest     food %.1f  water %.1f\n", s.FoodMin, s.WaterMin)
	return b.String()
}

func outcome(r session.DeathReason) string {
	if r == session.DeathNone {
		return "alive"
	}
	return "died (" + r.String() + ")"
}

type collector struct {
	id        species.ID
	seed      int64
	ticks     int
	altitudes []float64
	foodMin   float64
	waterMin  float64

	flaps, landings, departures, dodges, warnings int
}

func newCollector(id species.ID, seed int64) *collector {
	return &collector{id: id, seed: seed, foodMin: math.Inf(1), waterMin: math.Inf(1)}
}

func (c *collector) observe(snap session.Snapshot, r session.Report) {
	c.ticks++
	if snap.State == session.StateFlight {
		c.altitudes = append(c.altitudes, snap.Position.Y)
	}
	c.foodMin = math.Min(c.foodMin, snap.Food)
	c.waterMin = math.Min(c.waterMin, snap.Water)

	for _, e := range r.Events {
		switch e.Kind {
		case session.EventFlap:
			c.flaps++
		case session.EventLanded:
			c.landings++
		case session.EventDodged:
			c.dodges++
		case session.EventEagleWarning, session.EventEagleHunt:
			c.warnings++
		}
	}
}

func (c *collector) summary(snap session.Snapshot) Summary {
	s := Summary{
		Species:    c.id,
		Seed:       c.seed,
		Ticks:      c.ticks,
		Duration:   snap.Elapsed,
		Score:      snap.Points,
		Distance:   snap.Distance,
		Death:      snap.DeathReason,
		Flaps:      c.flaps,
		Landings:   c.landings,
		Departures: c.departures,
		Dodges:     c.dodges,
		Warnings:   c.warnings,
		FoodMin:    c.foodMin,
		WaterMin:   c.waterMin,
	}
	if c.ticks == 0 {
		s.FoodMin, s.WaterMin = snap.Food, snap.Water
	}
	if mean, std, p90, err := altitudeStats(c.altitudes); err == nil {
		s.AltitudeMean, s.AltitudeStd, s.AltitudeP90 = mean, std, p90
	}
	return s
}

func altitudeStats(xs []float64) (mean, std, p90 float64, err error) {
	if len(xs) == 0 {
		return 0, 0, 0, ErrNoSamples
	}
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p90, nil
}
