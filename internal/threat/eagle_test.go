package threat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/backyard-skies/internal/config"
)

const dt = 0.05

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// openWindow ticks an about-to-strike eagle until its dodge window opens.
func openWindow(t *testing.T, altitude, rotation float64) EagleState {
	t.Helper()
	cfg := config.Default().Eagle
	s := EagleState{Timer: 0.01, Warning: true}
	s, ev := TickEagle(s, EagleInput{Altitude: altitude, Rotation: rotation, Delta: dt}, cfg, newRNG())
	if ev != EagleDodgeOpened {
		t.Fatalf("event = %v, expected dodge-opened", ev)
	}
	return s
}

func TestNextIntervalRange(t *testing.T) {
	cfg := config.Default().Eagle
	rng := newRNG()
	for i := 0; i < 1000; i++ {
		v := NextInterval(cfg, rng)
		if v < cfg.MinInterval || v > cfg.MaxInterval {
			t.Fatalf("interval %v outside [%v, %v]", v, cfg.MinInterval, cfg.MaxInterval)
		}
	}
}

func TestWarningFiresOnce(t *testing.T) {
	cfg := config.Default().Eagle
	s := EagleState{Timer: 3}
	in := EagleInput{Altitude: 10, Delta: 0.3}

	s, ev := TickEagle(s, in, cfg, newRNG())
	if ev != EagleNone {
		t.Fatalf("at 2.7s event = %v, expected none", ev)
	}
	s, ev = TickEagle(s, in, cfg, newRNG())
	if ev != EagleWarning || !s.Warning {
		t.Fatalf("at 2.4s event = %v, expected warning", ev)
	}
	_, ev = TickEagle(s, in, cfg, newRNG())
	if ev == EagleWarning {
		t.Error("warning fired twice")
	}
}

func TestDodgeWindowOpensOnce(t *testing.T) {
	cfg := config.Default().Eagle
	s := openWindow(t, 10, 0.3)
	if s.DodgeWindow != cfg.DodgeWindow {
		t.Errorf("DodgeWindow = %v, expected %v", s.DodgeWindow, cfg.DodgeWindow)
	}
	if s.NearCeiling {
		t.Error("altitude 10 should not count as near the ceiling")
	}

	s = RegisterTap(s)
	for i := 0; i < 5; i++ {
		var ev EagleEvent
		s, ev = TickEagle(s, EagleInput{Altitude: 10, Rotation: 0.3 + float64(i)*0.01, Delta: dt}, cfg, newRNG())
		if ev == EagleDodgeOpened {
			t.Fatalf("tick %d reopened the window", i)
		}
		if s.DodgeStartRotation != 0.3 {
			t.Fatalf("tick %d: start rotation reset to %v", i, s.DodgeStartRotation)
		}
		if s.DodgeTaps != 1 {
			t.Fatalf("tick %d: taps reset to %d", i, s.DodgeTaps)
		}
	}
}

func TestTurnDodge(t *testing.T) {
	cfg := config.Default().Eagle
	s := openWindow(t, 10, 0)

	rotation := 0.0
	elapsed := 0.0
	for {
		rotation += 2.5 * dt
		elapsed += dt
		var ev EagleEvent
		s, ev = TickEagle(s, EagleInput{Altitude: 10, Rotation: rotation, Delta: dt}, cfg, newRNG())
		if ev == EagleDodged {
			break
		}
		if ev != EagleNone {
			t.Fatalf("unexpected event %v at %.2fs", ev, elapsed)
		}
		if elapsed > cfg.DodgeWindow {
			t.Fatal("turn never registered as a dodge")
		}
	}

	if rotation < math.Pi/2 {
		t.Errorf("dodged at rotation %v, before a quarter turn", rotation)
	}
	if s.DodgeWindow != 0 || s.Warning {
		t.Errorf("state after dodge = %+v, expected cleared window and warning", s)
	}
	if s.Timer < cfg.MinInterval || s.Timer > cfg.MaxInterval {
		t.Errorf("Timer = %v, expected a fresh interval", s.Timer)
	}
}

func TestTurnDodgeEitherDirection(t *testing.T) {
	cfg := config.Default().Eagle
	s := openWindow(t, 10, 1)

	_, ev := TickEagle(s, EagleInput{Altitude: 10, Rotation: 1 - math.Pi/2 - 0.01, Delta: dt}, cfg, newRNG())
	if ev != EagleDodged {
		t.Errorf("left turn event = %v, expected dodged", ev)
	}
}

func TestTapDodgeNearCeiling(t *testing.T) {
	cfg := config.Default().Eagle
	s := openWindow(t, 22, 0)
	if !s.NearCeiling {
		t.Fatal("altitude 22 should count as near the ceiling")
	}

	// Turning does not help near the ceiling.
	s, ev := TickEagle(s, EagleInput{Altitude: 22, Rotation: math.Pi, Delta: dt}, cfg, newRNG())
	if ev != EagleNone {
		t.Fatalf("event = %v, expected none for a turn near the ceiling", ev)
	}

	for i := 0; i < cfg.DodgeTaps; i++ {
		s = RegisterTap(s)
	}
	_, ev = TickEagle(s, EagleInput{Altitude: 22, Rotation: math.Pi, Delta: dt}, cfg, newRNG())
	if ev != EagleDodged {
		t.Errorf("event = %v after %d taps, expected dodged", ev, cfg.DodgeTaps)
	}
}

func TestRegisterTapOutsideWindow(t *testing.T) {
	s := RegisterTap(EagleState{Timer: 40})
	if s.DodgeTaps != 0 {
		t.Errorf("DodgeTaps = %d, expected taps ignored without a window", s.DodgeTaps)
	}
}

func TestDodgeWindowExpires(t *testing.T) {
	cfg := config.Default().Eagle
	s := openWindow(t, 10, 0)

	elapsed := 0.0
	for {
		var ev EagleEvent
		s, ev = TickEagle(s, EagleInput{Altitude: 10, Delta: dt}, cfg, newRNG())
		elapsed += dt
		if ev == EagleCaught {
			break
		}
		if elapsed > 2 {
			t.Fatal("never caught")
		}
	}
	if math.Abs(elapsed-cfg.DodgeWindow) > dt+1e-9 {
		t.Errorf("caught after %.2fs, expected ~%.2fs", elapsed, cfg.DodgeWindow)
	}
	if !EagleCaught.Fatal() {
		t.Error("caught should be fatal")
	}
}

func TestAltitudeHuntCatch(t *testing.T) {
	cfg := config.Default().Eagle
	s := NewEagle(cfg, newRNG())
	in := EagleInput{Altitude: 30, Delta: dt}

	s, ev := TickEagle(s, in, cfg, newRNG())
	if ev != EagleHuntStarted {
		t.Fatalf("event = %v, expected hunt-started", ev)
	}
	if s.Timer != cfg.HuntCountdown {
		t.Fatalf("Timer = %v, expected untouched countdown %v", s.Timer, cfg.HuntCountdown)
	}

	elapsed := 0.0
	for {
		s, ev = TickEagle(s, in, cfg, newRNG())
		elapsed += dt
		if ev == EagleHuntCaught {
			break
		}
		if ev != EagleNone {
			t.Fatalf("unexpected event %v while hunting", ev)
		}
		if elapsed > 10 {
			t.Fatal("hunt never caught the bird")
		}
	}
	if elapsed < cfg.HuntCountdown-1e-9 || elapsed > cfg.HuntCountdown+dt+1e-9 {
		t.Errorf("caught after %.2fs, expected %.2fs", elapsed, cfg.HuntCountdown)
	}
}

func TestAltitudeHuntEndsOnDescent(t *testing.T) {
	cfg := config.Default().Eagle
	s, _ := TickEagle(NewEagle(cfg, newRNG()), EagleInput{Altitude: 30, Delta: dt}, cfg, newRNG())

	s, ev := TickEagle(s, EagleInput{Altitude: 25, Delta: dt}, cfg, newRNG())
	if ev != EagleHuntEnded {
		t.Fatalf("event = %v, expected hunt-ended at the ceiling", ev)
	}
	if s.AltitudeHunt || s.Warning {
		t.Errorf("state = %+v, expected dormant", s)
	}
	if s.Timer < cfg.MinInterval {
		t.Errorf("Timer = %v, expected rescheduled interval", s.Timer)
	}
}

func TestHuntDuringDodgeWindow(t *testing.T) {
	cfg := config.Default().Eagle
	s := openWindow(t, 10, 0)

	s, ev := TickEagle(s, EagleInput{Altitude: 30, Delta: dt}, cfg, newRNG())
	if ev != EagleHuntStarted {
		t.Fatalf("event = %v, expected hunt-started", ev)
	}
	if s.DodgeOpen() {
		t.Fatal("dodge window should close when the hunt starts")
	}

	outcomes := 0
	for i := 0; i < 200; i++ {
		s, ev = TickEagle(s, EagleInput{Altitude: 30, Rotation: math.Pi, Delta: dt}, cfg, newRNG())
		switch ev {
		case EagleDodged, EagleCaught:
			t.Fatalf("tick %d: timed-dodge outcome %v during a hunt", i, ev)
		case EagleHuntCaught:
			outcomes++
		}
		if ev.Fatal() {
			break
		}
	}
	if outcomes != 1 {
		t.Errorf("hunt produced %d catches, expected exactly 1", outcomes)
	}
}

func TestEagleEventString(t *testing.T) {
	if EagleDodgeOpened.String() != "dodge-opened" {
		t.Errorf("String() = %q", EagleDodgeOpened.String())
	}
	if EagleEvent(99).String() != "unknown" {
		t.Errorf("out of range String() = %q", EagleEvent(99).String())
	}
}
