package threat

import (
	"math"

	"github.com/vovakirdan/backyard-skies/internal/config"
)

// CatEvent is the outcome of one cat tick.
type CatEvent int

const (
	CatNone CatEvent = iota
	CatWarning
	CatCaught
)

// String returns the event name.
func (e CatEvent) String() string {
	switch e {
	case CatWarning:
		return "warning"
	case CatCaught:
		return "caught"
	default:
		return "none"
	}
}

// CatResult is the meter after a tick and what happened.
type CatResult struct {
	Meter float64
	Event CatEvent
}

// CatWarnThreshold returns the meter value above which the warning shows.
func CatWarnThreshold(hasCat bool, cfg config.CatConfig) float64 {
	if hasCat {
		return cfg.WarnWithCat
	}
	return cfg.WarnWithoutCat
}

// TickCat raises the threat meter while perched. warned reports whether the
// warning was already raised during this perch.
func TickCat(meter float64, hasCat, warned bool, cfg config.CatConfig, delta float64) CatResult {
	rate := cfg.BaseRate
	if hasCat {
		rate *= cfg.CatMultiplier
	}
	meter += rate * math.Max(0, delta)

	if meter >= cfg.Max {
		return CatResult{Meter: cfg.Max, Event: CatCaught}
	}
	if !warned && meter > CatWarnThreshold(hasCat, cfg) {
		return CatResult{Meter: meter, Event: CatWarning}
	}
	return CatResult{Meter: meter, Event: CatNone}
}
