// Package session owns one run of the game: the mode state machine, the
// bird, its resources, the predators and the feeder field.
//
// A Session is driven by a single goroutine. Input is passed to Tick, and
// renderers read a Snapshot copy; nothing inside the session is shared.
package session

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/feeders"
	"github.com/vovakirdan/backyard-skies/internal/flight"
	"github.com/vovakirdan/backyard-skies/internal/resources"
	"github.com/vovakirdan/backyard-skies/internal/scoring"
	"github.com/vovakirdan/backyard-skies/internal/species"
	"github.com/vovakirdan/backyard-skies/internal/threat"
)

// ErrNoConfig is returned by New without a tuning config.
var ErrNoConfig = errors.New("session: config is required")

// ErrRunning is returned when an operation needs the run to be over.
var ErrRunning = errors.New("session: a run is in progress")

// Options configures a new session. Only Config is required.
type Options struct {
	Config      *config.GameConfig
	Species     species.ID
	Clock       core.Clock
	Rand        *rand.Rand
	Terrain     feeders.Terrain
	Leaderboard Leaderboard
	Preferences Preferences
	Cues        CueSink
	Logger      *log.Logger
}

// Session is one player's game.
type Session struct {
	cfg    config.GameConfig
	clock  core.Clock
	rng    *rand.Rand
	log    *log.Logger
	board  Leaderboard
	prefs  Preferences
	cues   CueSink
	field  *feeders.Field
	tally  *scoring.Tally
	bird   species.Species
	scheme ControlScheme

	playerName string
	muted      bool

	state       GameState
	paused      bool
	deathReason DeathReason

	flight    flight.State
	levels    resources.Levels
	eagle     threat.EagleState
	catMeter  float64
	catWarned bool
	lastSteer float64

	activeFeeder   feeders.Feeder
	feederCooldown float64
	perchTime      float64
	groundTime     float64
	dyingTime      float64
	refreshTimer   float64
	elapsed        float64

	leaderboard []LeaderboardEntry
	lastRank    int
}

// New creates a session in the menu state.
func New(opts Options) (*Session, error) {
	if opts.Config == nil {
		return nil, ErrNoConfig
	}
	id := opts.Species
	if id == "" {
		id = species.Default
	}
	bird, err := species.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		cfg:    *opts.Config,
		clock:  opts.Clock,
		rng:    opts.Rand,
		log:    opts.Logger,
		board:  opts.Leaderboard,
		prefs:  opts.Preferences,
		cues:   opts.Cues,
		bird:   bird,
		scheme: ControlTapSteer,
		state:  StateMenu,
	}
	if s.clock == nil {
		s.clock = core.SystemClock{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.cues == nil {
		s.cues = NopCues{}
	}

	start := s.startPosition()
	s.field = feeders.NewField(s.cfg.Feeders, opts.Terrain, s.rng)
	s.tally = scoring.NewTally(s.cfg.Scoring, start)
	s.flight = flight.NewState(start)
	s.levels = resources.Full(bird.Attributes)

	s.loadPreferences()
	s.loadLeaderboard()
	return s, nil
}

// State returns the current mode.
func (s *Session) State() GameState { return s.state }

// Species returns the selected species.
func (s *Session) Species() species.Species { return s.bird }

// DeathReason returns why the last run ended.
func (s *Session) DeathReason() DeathReason { return s.deathReason }

// Paused reports whether the run is paused.
func (s *Session) Paused() bool { return s.paused }

// OpenSpeciesSelect moves from the menu or game-over screen to species select.
func (s *Session) OpenSpeciesSelect() bool {
	if s.state != StateMenu && s.state != StateGameOver {
		return false
	}
	s.setState(StateSpeciesSelect)
	return true
}

// SelectSpecies changes the bird for the next run.
func (s *Session) SelectSpecies(id species.ID) error {
	if s.state.Running() || s.state == StateDying {
		return ErrRunning
	}
	bird, err := species.Lookup(id)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.bird = bird
	s.levels = resources.Full(bird.Attributes)
	return nil
}

// OpenSettings moves from the menu to the settings screen.
func (s *Session) OpenSettings() bool {
	if s.state != StateMenu {
		return false
	}
	s.setState(StateSettings)
	return true
}

// BackToMenu returns to the menu from any screen outside a run.
func (s *Session) BackToMenu() bool {
	switch s.state {
	case StateSpeciesSelect, StateSettings, StateGameOver:
		s.setState(StateMenu)
		return true
	}
	return false
}

// StartGame resets every per-run value and begins flight. It also serves as
// restart from game-over.
func (s *Session) StartGame() {
	start := s.startPosition()

	s.flight = flight.NewState(start)
	s.levels = resources.Full(s.bird.Attributes)
	s.eagle = threat.NewEagle(s.cfg.Eagle, s.rng)
	s.catMeter = 0
	s.catWarned = false
	s.lastSteer = 0
	s.activeFeeder = feeders.Feeder{}
	s.feederCooldown = 0
	s.perchTime = 0
	s.groundTime = 0
	s.dyingTime = 0
	s.refreshTimer = 0
	s.elapsed = 0
	s.deathReason = DeathNone
	s.paused = false
	s.lastRank = 0

	s.tally.Reset(start)
	s.field.Generate(start)

	s.setState(StateFlight)
	s.log.Debug("run started", "species", s.bird.ID, "feeders", s.field.Len())
}

// Pause freezes a run.
func (s *Session) Pause() {
	if s.state.Running() {
		s.paused = true
	}
}

// Resume unfreezes a paused run.
func (s *Session) Resume() {
	s.paused = false
}

// Flap requests a flap using the most recent steering value.
func (s *Session) Flap() bool {
	var r Report
	return s.flap(s.lastSteer, &r)
}

func (s *Session) flap(steer float64, r *Report) bool {
	if s.state != StateFlight || s.paused {
		return false
	}
	if !s.flight.CanFlap() || s.levels.Stamina <= 0 {
		return false
	}

	strength := 1.0
	if s.scheme == ControlTapSteer {
		strength = flight.TapSteerStrength(steer, s.cfg.Flight)
	}
	s.flight = flight.Flap(s.flight, strength, s.cfg.Flight)

	if s.eagle.DodgeOpen() {
		s.eagle = threat.RegisterTap(s.eagle)
		s.cue(core.CueTap)
	}
	s.cue(core.CueFlap)
	r.add(Event{Kind: EventFlap})
	return true
}

// FlyAway leaves the current perch. It refuses until the bird has perched
// for the minimum time.
func (s *Session) FlyAway() bool {
	var r Report
	return s.flyAway(&r)
}

func (s *Session) flyAway(r *Report) bool {
	if !s.state.Perched() || s.paused {
		return false
	}
	if s.perchTime < s.cfg.Feeders.MinPerchTime {
		return false
	}

	f := s.activeFeeder
	s.field.Lock(f.ID, s.clock.Now().Add(core.Seconds(s.cfg.Feeders.LockDuration)))
	bonus := s.tally.FeederDeparture(f.Kind == feeders.KindBirdbath)

	pos := s.flight.Position
	pos.Y = math.Min(pos.Y+s.cfg.Feeders.DepartureLift, s.cfg.Flight.MaxAltitude)
	s.flight.Position = pos
	s.flight.Velocity = core.V3(0, s.cfg.Feeders.DepartureVelocity, 0)
	s.tally.Reanchor(pos)

	s.feederCooldown = s.cfg.Feeders.DepartureCooldown
	s.catMeter = 0
	s.catWarned = false
	s.activeFeeder = feeders.Feeder{}
	s.groundTime = 0

	s.setState(StateFlight)
	s.cue(core.CueScore)
	r.add(Event{Kind: EventDeparted, FeederID: f.ID, Points: bonus})
	return true
}

// FinalizeDeath commits the run to the leaderboard and moves to game-over.
// Tick calls it once the dying sequence ends; callers may call it early to
// skip the sequence.
func (s *Session) FinalizeDeath() bool {
	if s.state != StateDying {
		return false
	}

	name := s.playerName
	if name == "" {
		name = s.cfg.Session.DefaultName
	}
	entry := LeaderboardEntry{
		Name:     name,
		Species:  s.bird.ID,
		Score:    s.tally.Score(),
		Distance: math.Round(s.tally.Distance()*100) / 100,
		Date:     s.clock.Now().UTC(),
	}

	if s.board != nil {
		list, err := s.board.SaveEntry(entry)
		if err != nil {
			s.log.Warn("could not save leaderboard entry", "error", err)
		} else {
			s.leaderboard = list
		}
	} else {
		s.leaderboard = InsertRanked(s.leaderboard, entry, s.cfg.Session.LeaderboardSize)
	}
	s.lastRank = rankOf(s.leaderboard, entry)

	s.setState(StateGameOver)
	return true
}

// Leaderboard returns a copy of the top runs.
func (s *Session) Leaderboard() []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(s.leaderboard))
	copy(out, s.leaderboard)
	return out
}

// LastRank returns the 1-based leaderboard position of the last finished run,
// or 0 if it did not make the list.
func (s *Session) LastRank() int { return s.lastRank }

// PlayerName returns the saved display name.
func (s *Session) PlayerName() string { return s.playerName }

// SetPlayerName saves the display name.
func (s *Session) SetPlayerName(name string) {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > 20 {
		name = string(r[:20])
	}
	s.playerName = name
	s.savePreference(PrefPlayerName, name)
}

// Muted reports whether cues are suppressed.
func (s *Session) Muted() bool { return s.muted }

// SetMuted toggles audio cues.
func (s *Session) SetMuted(muted bool) {
	s.muted = muted
	s.savePreference(PrefMuted, strconv.FormatBool(muted))
}

// ControlScheme returns how flaps interact with steering.
func (s *Session) ControlScheme() ControlScheme { return s.scheme }

// SetControlScheme switches between button and tap-steer flapping.
func (s *Session) SetControlScheme(scheme ControlScheme) {
	if scheme != ControlButtons && scheme != ControlTapSteer {
		return
	}
	s.scheme = scheme
	s.savePreference(PrefControlScheme, string(scheme))
}

func (s *Session) startPosition() core.Vec3 {
	return core.V3(0, s.cfg.Session.StartAltitude, 0)
}

func (s *Session) setState(next GameState) {
	if next == s.state {
		return
	}
	s.log.Debug("state change", "from", s.state, "to", next)
	s.state = next
}

func (s *Session) cue(c core.Cue) {
	if !s.muted {
		s.cues.Play(c)
	}
}

func (s *Session) loadPreferences() {
	if s.prefs == nil {
		return
	}
	if v, ok, err := s.prefs.Preference(PrefPlayerName); err == nil && ok {
		s.playerName = v
	}
	if v, ok, err := s.prefs.Preference(PrefMuted); err == nil && ok {
		s.muted, _ = strconv.ParseBool(v)
	}
	if v, ok, err := s.prefs.Preference(PrefControlScheme); err == nil && ok {
		if sc := ControlScheme(v); sc == ControlButtons || sc == ControlTapSteer {
			s.scheme = sc
		}
	}
}

func (s *Session) savePreference(key, value string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SetPreference(key, value); err != nil {
		s.log.Warn("could not save preference", "key", key, "error", err)
	}
}

func (s *Session) loadLeaderboard() {
	if s.board == nil {
		return
	}
	list, err := s.board.TopEntries(s.cfg.Session.LeaderboardSize)
	if err != nil {
		s.log.Warn("could not load leaderboard", "error", err)
		return
	}
	s.leaderboard = list
}

func rankOf(list []LeaderboardEntry, e LeaderboardEntry) int {
	for i, x := range list {
		if x.Date.Equal(e.Date) && x.Score == e.Score && x.Name == e.Name {
			return i + 1
		}
	}
	return 0
}
