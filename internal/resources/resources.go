// Package resources tracks food, water and stamina.
package resources

import (
	"math"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

// residue below which a draining level counts as empty
const epsilon = 1e-9

// Levels holds the current resource values.
type Levels struct {
	Food    float64
	Water   float64
	Stamina float64
}

// Depleted names the resource that ran out this tick.
type Depleted int

const (
	DepletedNone Depleted = iota
	DepletedFood
	DepletedWater
)

// String returns the resource name.
func (d Depleted) String() string {
	switch d {
	case DepletedFood:
		return "food"
	case DepletedWater:
		return "water"
	default:
		return "none"
	}
}

// Kind selects which resource a perch restores.
type Kind int

const (
	Food Kind = iota
	Water
)

// Status grades a level for HUD warnings.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
)

// Full returns levels at species capacity.
func Full(attrs species.Attributes) Levels {
	return Levels{
		Food:    attrs.MaxFood,
		Water:   attrs.MaxWater,
		Stamina: attrs.Stamina,
	}
}

// Deplete drains food and water, regenerates stamina, and reports the first
// resource to hit zero. Food is checked before water.
func Deplete(l Levels, attrs species.Attributes, cfg config.ResourceConfig, delta float64) (Levels, Depleted) {
	scale := cfg.DrainScale
	if scale <= 0 {
		scale = 1
	}

	l.Food = drain(l.Food, attrs.FoodDrain*scale*delta)
	l.Water = drain(l.Water, attrs.WaterDrain*scale*delta)
	l.Stamina = math.Min(attrs.Stamina, l.Stamina+cfg.StaminaRegen*delta)

	switch {
	case l.Food <= 0:
		return l, DepletedFood
	case l.Water <= 0:
		return l, DepletedWater
	}
	return l, DepletedNone
}

// Replenish restores food or water at the species rate, capped at capacity.
// It returns the amount actually gained.
func Replenish(l Levels, kind Kind, attrs species.Attributes, delta float64) (Levels, float64) {
	if delta <= 0 {
		return l, 0
	}
	var gained float64
	switch kind {
	case Food:
		next := math.Min(attrs.MaxFood, l.Food+attrs.FeedRate*delta)
		gained = math.Max(0, next-l.Food)
		l.Food = next
	case Water:
		next := math.Min(attrs.MaxWater, l.Water+attrs.DrinkRate*delta)
		gained = math.Max(0, next-l.Water)
		l.Water = next
	}
	return l, gained
}

// SpendStamina removes cost from stamina, floored at zero.
func SpendStamina(l Levels, cost float64) Levels {
	l.Stamina = math.Max(0, l.Stamina-cost)
	return l
}

// Grade returns the HUD status for value out of max.
func Grade(value, max float64, cfg config.ResourceConfig) Status {
	if max <= 0 {
		return StatusCritical
	}
	pct := value / max * 100
	switch {
	case pct <= cfg.CriticalThreshold:
		return StatusCritical
	case pct <= cfg.WarningThreshold:
		return StatusWarning
	}
	return StatusOK
}

func drain(v, amount float64) float64 {
	v -= amount
	if v <= epsilon {
		return 0
	}
	return v
}
