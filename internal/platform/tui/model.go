package tui

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
	"github.com/vovakirdan/backyard-skies/internal/terrain"
)

// steerHold is how long one left/right press keeps steering. Terminals only
// report key presses, so holding an arrow key works through key repeat.
const steerHold = 0.35

// statusDuration is how long a status line message stays visible.
const statusDuration = 2.5

// Main menu entries.
const (
	menuFly = iota
	menuSpecies
	menuSettings
	menuScores
	menuQuit
)

var menuItems = []string{"Fly", "Choose bird", "Settings", "High scores", "Quit"}

// Settings entries.
const (
	settingName = iota
	settingSound
	settingControls
	settingBack
)

// Options configures a game model.
type Options struct {
	Config        *config.GameConfig
	Runtime       core.RuntimeConfig
	Species       species.ID
	Leaderboard   session.Leaderboard
	Preferences   session.Preferences
	Cues          session.CueSink
	Logger        *log.Logger
	Clock         core.Clock
	ScreenshotDir string
}

// Model is the Bubble Tea model for one player's game.
type Model struct {
	sess   *session.Session
	suburb *terrain.Suburb
	screen *core.Screen
	clock  core.Clock

	keys  KeyMap
	help  help.Model
	name  textinput.Model
	board scoreboard

	tickRate      int
	screenshotDir string
	width         int
	height        int

	cursor     int
	input      core.InputFrame
	steer      float64
	steerTime  float64
	showScores bool
	lastTick   time.Time
	status     string
	statusTime float64
	quitting   bool
}

// NewModel creates a model sitting in the main menu.
func NewModel(opts Options) (Model, error) {
	if opts.Config == nil {
		return Model{}, errors.New("tui: config is required")
	}
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	defaults := core.DefaultConfig()
	if rt.ScreenW <= 0 {
		rt.ScreenW = defaults.ScreenW
	}
	if rt.ScreenH <= 0 {
		rt.ScreenH = defaults.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = defaults.TickRate
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(os.Getenv("HOME"), ".skies", "screenshots")
	}

	suburb := terrain.NewSuburb(rt.Seed)
	sess, err := session.New(session.Options{
		Config:      opts.Config,
		Species:     opts.Species,
		Clock:       opts.Clock,
		Rand:        rand.New(rand.NewSource(rt.Seed)),
		Terrain:     suburb,
		Leaderboard: opts.Leaderboard,
		Preferences: opts.Preferences,
		Cues:        opts.Cues,
		Logger:      opts.Logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	name := textinput.New()
	name.Placeholder = opts.Config.Session.DefaultName
	name.CharLimit = 20
	name.Width = 22
	name.SetValue(sess.PlayerName())

	m := Model{
		sess:          sess,
		suburb:        suburb,
		screen:        core.NewScreen(rt.ScreenW, rt.ScreenH-1),
		clock:         opts.Clock,
		input:         core.NewInputFrame(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		name:          name,
		board:         newScoreboard(rt.ScreenW, rt.ScreenH),
		tickRate:      rt.TickRate,
		screenshotDir: opts.ScreenshotDir,
		width:         rt.ScreenW,
		height:        rt.ScreenH,
	}
	m.help.Width = rt.ScreenW
	m.board.setEntries(sess.Leaderboard())
	return m, nil
}

// Session exposes the underlying game session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.name.Focused() {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.board.resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := frameDelta(m.lastTick, now, m.tickRate)
	m.lastTick = now
	m = m.advance(delta)
	return m, tickCmd(m.tickRate)
}

// advance runs one simulation step with the buffered input.
func (m Model) advance(delta float64) Model {
	if m.statusTime > 0 {
		m.statusTime -= delta
		if m.statusTime <= 0 {
			m.status = ""
		}
	}

	state := m.sess.State()
	if !state.Running() && state != session.StateDying {
		m.input.Clear()
		return m
	}

	if axis := m.input.Steer(); axis != 0 {
		m.steer, m.steerTime = axis, steerHold
	}
	if m.steerTime > 0 && !m.sess.Paused() {
		m.steerTime -= delta
		if m.steerTime <= 0 {
			m.steer = 0
		}
	}

	in := session.Input{Steer: m.steer, Flap: m.input.Has(core.ActionFlap)}
	m.input.Clear()
	report := m.sess.Tick(in, delta)
	if report.Has(session.EventFinalized) {
		m.board.setEntries(m.sess.Leaderboard())
		m.steer, m.steerTime = 0, 0
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.name.Focused() {
		return m.handleNameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.takeScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.sess.SetMuted(!m.sess.Muted())
		if m.sess.Muted() {
			m.setStatus("sound off")
		} else {
			m.setStatus("sound on")
		}
		return m, nil
	}

	if m.showScores {
		if key.Matches(msg, m.keys.Back, m.keys.Scores, m.keys.Select) {
			m.showScores = false
			return m, nil
		}
		var cmd tea.Cmd
		m.board, cmd = m.board.update(msg, m.keys)
		return m, cmd
	}

	action := m.keys.MapKey(msg)
	switch state := m.sess.State(); {
	case state == session.StateMenu:
		m.menuKey(action)
	case state == session.StateSpeciesSelect:
		m.speciesKey(action)
	case state == session.StateSettings:
		return m.settingsKey(action)
	case state.Running():
		m.flightKey(action)
	case state == session.StateDying:
		if action == core.ActionConfirm {
			m.finalize()
		}
	case state == session.StateGameOver:
		m.gameOverKey(action)
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) menuKey(action core.Action) {
	switch action {
	case core.ActionUp:
		m.cursor = (m.cursor + len(menuItems) - 1) % len(menuItems)
	case core.ActionDown:
		m.cursor = (m.cursor + 1) % len(menuItems)
	case core.ActionScoreboard:
		m.showScores = true
	case core.ActionFlap, core.ActionConfirm:
		if action == core.ActionFlap {
			m.cursor = menuFly
		}
		switch m.cursor {
		case menuFly:
			m.startRun()
		case menuSpecies:
			m.sess.OpenSpeciesSelect()
			m.cursor = speciesIndex(m.sess.Species().ID)
		case menuSettings:
			m.sess.OpenSettings()
			m.cursor = settingName
		case menuScores:
			m.showScores = true
		case menuQuit:
			m.quitting = true
		}
	}
}

func (m *Model) speciesKey(action core.Action) {
	birds := species.List()
	switch action {
	case core.ActionUp, core.ActionTurnLeft:
		m.cursor = (m.cursor + len(birds) - 1) % len(birds)
	case core.ActionDown, core.ActionTurnRight:
		m.cursor = (m.cursor + 1) % len(birds)
	case core.ActionConfirm, core.ActionFlap:
		if err := m.sess.SelectSpecies(birds[m.cursor].ID); err != nil {
			m.setStatus(err.Error())
			return
		}
		m.startRun()
	case core.ActionBack:
		m.sess.BackToMenu()
		m.cursor = menuSpecies
	}
}

func (m Model) settingsKey(action core.Action) (tea.Model, tea.Cmd) {
	const n = settingBack + 1
	switch action {
	case core.ActionUp:
		m.cursor = (m.cursor + n - 1) % n
	case core.ActionDown:
		m.cursor = (m.cursor + 1) % n
	case core.ActionConfirm, core.ActionTurnLeft, core.ActionTurnRight, core.ActionFlap:
		switch m.cursor {
		case settingName:
			if action == core.ActionConfirm {
				cmd := m.name.Focus()
				return m, cmd
			}
		case settingSound:
			m.sess.SetMuted(!m.sess.Muted())
		case settingControls:
			if m.sess.ControlScheme() == session.ControlButtons {
				m.sess.SetControlScheme(session.ControlTapSteer)
			} else {
				m.sess.SetControlScheme(session.ControlButtons)
			}
		case settingBack:
			if action == core.ActionConfirm {
				m.sess.BackToMenu()
				m.cursor = menuSettings
			}
		}
	case core.ActionBack:
		m.sess.BackToMenu()
		m.cursor = menuSettings
	}
	return m, nil
}

// handleNameKey edits the player name. Enter saves, esc discards.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.sess.SetPlayerName(m.name.Value())
		m.name.SetValue(m.sess.PlayerName())
		m.name.Blur()
		return m, nil
	case tea.KeyEsc:
		m.name.SetValue(m.sess.PlayerName())
		m.name.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m *Model) flightKey(action core.Action) {
	switch action {
	case core.ActionTurnLeft, core.ActionTurnRight:
		m.input.Set(action)
	case core.ActionFlap, core.ActionUp:
		if m.sess.State().Perched() {
			m.sess.FlyAway()
			return
		}
		m.input.Set(core.ActionFlap)
	case core.ActionPause, core.ActionBack:
		if m.sess.Paused() {
			m.sess.Resume()
		} else {
			m.sess.Pause()
		}
	}
}

func (m *Model) gameOverKey(action core.Action) {
	switch action {
	case core.ActionRestart, core.ActionFlap:
		m.startRun()
	case core.ActionConfirm, core.ActionBack:
		m.sess.BackToMenu()
		m.cursor = menuFly
	case core.ActionScoreboard:
		m.showScores = true
	case core.ActionTurnLeft, core.ActionTurnRight:
		if m.sess.OpenSpeciesSelect() {
			m.cursor = speciesIndex(m.sess.Species().ID)
		}
	}
}

func (m *Model) startRun() {
	m.steer, m.steerTime = 0, 0
	m.input.Clear()
	m.sess.StartGame()
}

// finalize skips the rest of the dying sequence.
func (m *Model) finalize() {
	if m.sess.FinalizeDeath() {
		m.board.setEntries(m.sess.Leaderboard())
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusTime = statusDuration
}

// takeScreenshot writes the current world view as plain text.
func (m *Model) takeScreenshot() {
	path, err := m.saveScreenshot()
	if err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}
	m.setStatus("saved " + path)
}

func (m *Model) saveScreenshot() (string, error) {
	state := m.sess.State()
	if !state.Running() && state != session.StateDying {
		return "", errors.New("nothing to capture")
	}
	m.drawGame(m.sess.Snapshot())

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.txt", m.sess.Species().ID, m.clock.Now().Format("20060102_150405"))
	path := filepath.Join(m.screenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Quitting reports whether the player asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func speciesIndex(id species.ID) int {
	for i, sp := range species.List() {
		if sp.ID == id {
			return i
		}
	}
	return 0
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
