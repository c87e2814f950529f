package threat

import (
	"math"
	"testing"

	"github.com/vovakirdan/backyard-skies/internal/config"
)

func TestCatMeterRates(t *testing.T) {
	cfg := config.Default().Cat

	tests := []struct {
		name   string
		hasCat bool
		want   float64
	}{
		{"plain feeder", false, 8},
		{"cat feeder", true, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := TickCat(0, tt.hasCat, true, cfg, 1)
			if math.Abs(res.Meter-tt.want) > 1e-9 {
				t.Errorf("meter = %v, expected %v", res.Meter, tt.want)
			}
		})
	}
}

func TestCatWarningThresholds(t *testing.T) {
	cfg := config.Default().Cat

	if res := TickCat(19.9, true, false, cfg, 0.01); res.Event != CatWarning {
		t.Errorf("cat feeder at 20.3: event = %v, expected warning", res.Event)
	}
	if res := TickCat(19, false, false, cfg, 0.01); res.Event != CatNone {
		t.Errorf("plain feeder at 19.08: event = %v, expected none", res.Event)
	}
	if res := TickCat(59.99, false, false, cfg, 0.01); res.Event != CatWarning {
		t.Errorf("plain feeder past 60: event = %v, expected warning", res.Event)
	}
	if res := TickCat(70, false, true, cfg, 0.01); res.Event != CatNone {
		t.Errorf("already warned: event = %v, expected none", res.Event)
	}
}

func TestCatCatchesAtMax(t *testing.T) {
	cfg := config.Default().Cat

	meter := 0.0
	warned := false
	elapsed := 0.0
	for {
		res := TickCat(meter, true, warned, cfg, dt)
		elapsed += dt
		meter = res.Meter
		if res.Event == CatWarning {
			warned = true
		}
		if res.Event == CatCaught {
			break
		}
		if elapsed > 5 {
			t.Fatal("cat never struck")
		}
	}
	if meter != cfg.Max {
		t.Errorf("meter = %v, expected capped at %v", meter, cfg.Max)
	}
	if !warned {
		t.Error("warning should fire before the catch")
	}
	if math.Abs(elapsed-2.5) > dt+1e-9 {
		t.Errorf("caught after %.2fs, expected ~2.5s on a cat feeder", elapsed)
	}
}
