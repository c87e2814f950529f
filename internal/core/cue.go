package core

// Cue names a fire-and-forget audio trigger.
type Cue string

// Cues emitted by the simulation.
const (
	CueFlap  Cue = "flap"
	CueEat   Cue = "eat"
	CueDrink Cue = "drink"
	CueEagle Cue = "eagle"
	CueDodge Cue = "dodge"
	CueDeath Cue = "death"
	CueScore Cue = "score"
	CueTap   Cue = "tap"
)

// AllCues lists every cue in a stable order.
func AllCues() []Cue {
	return []Cue{CueFlap, CueEat, CueDrink, CueEagle, CueDodge, CueDeath, CueScore, CueTap}
}
