package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionFlap) {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionFlap)
	f.Set(ActionTurnLeft)
	if !f.Has(ActionFlap) || !f.Has(ActionTurnLeft) {
		t.Error("Set actions should be reported by Has")
	}

	f.Clear()
	if f.Has(ActionFlap) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestInputFrameSteer(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    float64
	}{
		{"none", nil, 0},
		{"left", []Action{ActionTurnLeft}, -1},
		{"right", []Action{ActionTurnRight}, 1},
		{"both cancel", []Action{ActionTurnLeft, ActionTurnRight}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			if got := f.Steer(); got != tc.want {
				t.Errorf("Steer() = %f, expected %f", got, tc.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionFlap.String() != "Flap" {
		t.Errorf("ActionFlap.String() = %q", ActionFlap.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
