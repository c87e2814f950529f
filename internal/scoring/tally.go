// Package scoring accumulates score and travelled distance for one run.
package scoring

import (
	"math"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
)

// Tally is the score and distance of one run. Score never decreases.
type Tally struct {
	cfg config.ScoringConfig

	score    float64
	carry    float64 // fractional flight points not yet flushed
	distance float64 // km
	anchor   core.Vec3
}

// NewTally creates a tally anchored at pos.
func NewTally(cfg config.ScoringConfig, pos core.Vec3) *Tally {
	return &Tally{cfg: cfg, anchor: pos}
}

// Reset zeroes the tally and re-anchors distance at pos.
func (t *Tally) Reset(pos core.Vec3) {
	t.score = 0
	t.carry = 0
	t.distance = 0
	t.anchor = pos
}

// Flight accrues flight time and returns the whole points flushed.
func (t *Tally) Flight(delta float64) int {
	if delta <= 0 {
		return 0
	}
	t.carry += t.cfg.FlightRate * delta
	points := math.Floor(t.carry)
	t.carry -= points
	t.score += points
	return int(points)
}

// Replenished awards points for resource actually restored.
func (t *Tally) Replenished(gained float64) float64 {
	return t.Add(gained * t.cfg.ReplenishMultiplier)
}

// FeederDeparture awards the bonus for leaving a feeder or birdbath.
func (t *Tally) FeederDeparture(birdbath bool) float64 {
	if birdbath {
		return t.Add(t.cfg.BirdbathBonus)
	}
	return t.Add(t.cfg.FeederBonus)
}

// Dodge awards the eagle dodge bonus.
func (t *Tally) Dodge() float64 {
	return t.Add(t.cfg.DodgeBonus)
}

// Add adds points to the score. Negative and NaN amounts are ignored.
func (t *Tally) Add(points float64) float64 {
	if !(points > 0) {
		return 0
	}
	t.score += points
	return points
}

// Travel measures the move from the anchor to pos. Moves below the noise
// floor leave the anchor in place so slow drift still adds up.
func (t *Tally) Travel(pos core.Vec3) float64 {
	d := core.Dist(t.anchor, pos)
	if d <= t.cfg.NoiseFloor {
		return 0
	}
	km := d * t.cfg.KmPerUnit
	t.distance += km
	t.anchor = pos
	return km
}

// Reanchor moves the anchor without counting distance. Used for teleports.
func (t *Tally) Reanchor(pos core.Vec3) {
	t.anchor = pos
}

// Score returns the raw score.
func (t *Tally) Score() float64 { return t.score }

// Points returns the score as displayed.
func (t *Tally) Points() int { return int(math.Floor(t.score)) }

// Distance returns the travelled distance in km.
func (t *Tally) Distance() float64 { return t.distance }
