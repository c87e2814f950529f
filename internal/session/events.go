package session

// EventKind tags something that happened during a tick.
type EventKind int

const (
	EventFlap EventKind = iota
	EventLanded
	EventDeparted
	EventFeedersRefreshed
	EventEagleWarning
	EventEagleHunt
	EventEagleHuntEnded
	EventDodgeOpened
	EventDodged
	EventCatWarning
	EventDeath
	EventFinalized
)

var eventNames = [...]string{
	EventFlap:             "flap",
	EventLanded:           "landed",
	EventDeparted:         "departed",
	EventFeedersRefreshed: "feeders-refreshed",
	EventEagleWarning:     "eagle-warning",
	EventEagleHunt:        "eagle-hunt",
	EventEagleHuntEnded:   "eagle-hunt-ended",
	EventDodgeOpened:      "dodge-opened",
	EventDodged:           "dodged",
	EventCatWarning:       "cat-warning",
	EventDeath:            "death",
	EventFinalized:        "finalized",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one entry of a tick report.
type Event struct {
	Kind     EventKind
	FeederID int         // landed, departed
	Reason   DeathReason // death
	Points   float64     // score awarded with the event
}

// Report summarizes one tick.
type Report struct {
	State  GameState
	Events []Event
}

// Has reports whether the tick produced an event of kind k.
func (r Report) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func (r *Report) add(e Event) {
	r.Events = append(r.Events, e)
}
