package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionTurnLeft          // A, Left arrow - steer left
	ActionTurnRight         // D, Right arrow - steer right
	ActionFlap              // Space, W, Up - flap, or fly away while perched
	ActionUp                // menu cursor up
	ActionDown              // menu cursor down
	ActionConfirm           // Enter
	ActionBack              // Esc, B
	ActionRestart           // R after game over
	ActionQuit              // Q, Ctrl+C
	ActionPause             // P
	ActionScoreboard        // Tab from the menu
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionFlap:
		return "Flap"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionScoreboard:
		return "Scoreboard"
	default:
		return "Unknown"
	}
}

// InputFrame buffers the actions triggered since the last simulation tick.
// Key handlers write into it and the tick drains it, so it has a single
// writer and a single reader on the same goroutine.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Steer folds the turn actions into a steering axis in [-1, 1].
// Left is negative, right is positive.
func (f InputFrame) Steer() float64 {
	axis := 0.0
	if f.Has(ActionTurnLeft) {
		axis--
	}
	if f.Has(ActionTurnRight) {
		axis++
	}
	return axis
}
