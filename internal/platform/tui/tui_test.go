package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/backyard-skies/internal/config"
	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T, mutate func(*config.GameConfig)) Model {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewModel(Options{
		Config:        &cfg,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20, Seed: 1},
		Clock:         core.NewManualClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
		ScreenshotDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestMapKey(t *testing.T) {
	k := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{keyLeft, core.ActionTurnLeft},
		{keyRunes("a"), core.ActionTurnLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionTurnRight},
		{keyRunes("d"), core.ActionTurnRight},
		{keySpace, core.ActionFlap},
		{keyRunes("w"), core.ActionFlap},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{keyDown, core.ActionDown},
		{keyEnter, core.ActionConfirm},
		{keyEsc, core.ActionBack},
		{keyRunes("p"), core.ActionPause},
		{keyRunes("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionScoreboard},
		{keyRunes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{keyRunes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := k.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestFrameDelta(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		prev, now time.Time
		want      float64
	}{
		{"first tick", time.Time{}, base, 0.05},
		{"normal", base, base.Add(40 * time.Millisecond), 0.04},
		{"out of order", base, base.Add(-time.Second), 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameDelta(tt.prev, tt.now, 20); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("frameDelta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "SKIES", core.ColorYellow)
	s.DrawText(0, 1, "ab", core.ColorRed)
	s.Set(2, 1, 'c', core.ColorBlue)

	out := RenderScreen(s)
	if !strings.Contains(out, "SKIES") {
		t.Errorf("RenderScreen() lost a same-color run: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, want 1", got)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	for _, rot := range []float64{0, math.Pi / 2, -2.1, math.Pi} {
		cam := newCamera(core.V3(10, 5, -4), rot, 80, 20)
		for _, cell := range [][2]int{{40, 13}, {0, 0}, {79, 19}, {12, 7}} {
			x, z := cam.unproject(cell[0], cell[1])
			sx, sy := cam.project(core.V3(x, 0, z))
			if sx != cell[0] || sy != cell[1] {
				t.Errorf("rot %v: cell %v round-trips to (%d, %d)", rot, cell, sx, sy)
			}
		}
	}
}

func TestCameraHeadingIsUp(t *testing.T) {
	rot := 0.7
	cam := newCamera(core.V3(0, 0, 0), rot, 80, 20)
	ahead := core.V3(math.Sin(rot)*10, 0, math.Cos(rot)*10)
	sx, sy := cam.project(ahead)
	if sx != cam.cx || sy >= cam.cy {
		t.Errorf("point ahead projects to (%d, %d), want straight above (%d, %d)", sx, sy, cam.cx, cam.cy)
	}
}

func TestHintText(t *testing.T) {
	hints := []session.Hint{{Distance: 42, Bearing: math.Pi / 2}}
	if got := hintText(hints); !strings.Contains(got, "feeder → 42m") {
		t.Errorf("hintText() = %q", got)
	}
}

func TestMenuStartsRun(t *testing.T) {
	m := newTestModel(t, nil)
	if !strings.Contains(m.View(), "Fly") {
		t.Fatalf("menu view missing entries")
	}
	m = press(t, m, keyEnter)
	if got := m.sess.State(); got != session.StateFlight {
		t.Fatalf("state = %v, want flight", got)
	}
	if !strings.Contains(m.View(), "FOOD") {
		t.Errorf("flight view missing HUD")
	}
}

func TestSpeciesSelect(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyDown, keyEnter)
	if got := m.sess.State(); got != session.StateSpeciesSelect {
		t.Fatalf("state = %v, want species-select", got)
	}
	m = press(t, m, keyDown, keyEnter)
	if got := m.sess.Species().ID; got != species.List()[1].ID {
		t.Errorf("species = %v, want %v", got, species.List()[1].ID)
	}
	if got := m.sess.State(); got != session.StateFlight {
		t.Errorf("state = %v, want flight", got)
	}
}

func TestSettingsEditName(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyDown, keyDown, keyEnter)
	if got := m.sess.State(); got != session.StateSettings {
		t.Fatalf("state = %v, want settings", got)
	}
	m = press(t, m, keyEnter)
	if !m.name.Focused() {
		t.Fatal("name field not focused")
	}
	// q must type into the field instead of quitting.
	m = press(t, m, keyRunes("Quail"), keyEnter)
	if m.quitting {
		t.Fatal("typing q quit the game")
	}
	if got := m.sess.PlayerName(); got != "Quail" {
		t.Errorf("PlayerName() = %q, want Quail", got)
	}

	m = press(t, m, keyDown, keyEnter)
	if !m.sess.Muted() {
		t.Error("sound toggle did not mute")
	}
	m = press(t, m, keyEsc)
	if got := m.sess.State(); got != session.StateMenu {
		t.Errorf("state = %v, want menu", got)
	}
}

func TestSteerHold(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyEnter, keyLeft)
	if m.steer != 0 {
		t.Fatalf("steer = %v before the tick, want 0", m.steer)
	}
	m = m.advance(0.1)
	if m.steer != -1 {
		t.Fatalf("steer = %v after 0.1s, want -1", m.steer)
	}
	m = m.advance(0.1)
	m = m.advance(0.1)
	m = m.advance(0.1)
	if m.steer != 0 {
		t.Errorf("steer = %v after release window, want 0", m.steer)
	}
}

func TestFlapIsBuffered(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyEnter, keySpace)
	if !m.input.Has(core.ActionFlap) {
		t.Fatal("flap not buffered")
	}
	m = m.advance(0.05)
	if m.input.Has(core.ActionFlap) {
		t.Error("flap not consumed by the tick")
	}
	if !m.sess.Snapshot().IsFlapping {
		t.Error("bird is not flapping after a buffered flap")
	}
}

func TestPauseToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyEnter, keyRunes("p"))
	if !m.sess.Paused() {
		t.Fatal("p did not pause")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view missing banner")
	}
	m = press(t, m, keyRunes("p"))
	if m.sess.Paused() {
		t.Error("p did not resume")
	}
}

func TestDeathToGameOver(t *testing.T) {
	m := newTestModel(t, func(c *config.GameConfig) {
		c.Resources.DrainScale = 1000
	})
	m = press(t, m, keyEnter)
	m = m.advance(0.05)
	if got := m.sess.State(); got != session.StateDying {
		t.Fatalf("state = %v, want dying", got)
	}
	m = press(t, m, keyEnter)
	if got := m.sess.State(); got != session.StateGameOver {
		t.Fatalf("state = %v, want game-over", got)
	}
	view := m.View()
	for _, want := range []string{"GAME OVER", "New high score!"} {
		if !strings.Contains(view, want) {
			t.Errorf("game over view missing %q", want)
		}
	}
	if got := len(m.board.table.Rows()); got != 1 {
		t.Errorf("scoreboard rows = %d, want 1", got)
	}

	m = press(t, m, keyRunes("r"))
	if got := m.sess.State(); got != session.StateFlight {
		t.Errorf("state after restart = %v, want flight", got)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if !next.(Model).Quitting() {
		t.Error("model not quitting")
	}
	if next.View() != "" {
		t.Error("quitting model still renders")
	}
}

func TestScreenshot(t *testing.T) {
	m := newTestModel(t, nil)
	ctrlS := tea.KeyMsg{Type: tea.KeyCtrlS}

	m = press(t, m, ctrlS)
	if !strings.Contains(m.status, "nothing to capture") {
		t.Errorf("menu screenshot status = %q", m.status)
	}

	m = press(t, m, keyEnter, ctrlS)
	files, err := os.ReadDir(m.screenshotDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("screenshots = %d, want 1", len(files))
	}
	data, err := os.ReadFile(filepath.Join(m.screenshotDir, files[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "STAMINA") {
		t.Error("screenshot missing HUD text")
	}
}

func TestScoreRows(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := []session.LeaderboardEntry{
		{Name: "Ann", Species: species.Cardinal, Score: 300, Distance: 1.5, Date: date},
		{Name: "Bo", Species: species.Bunting, Score: 200, Distance: 0.75, Date: date},
		{Name: "Cy", Species: species.Cardinal, Score: 100, Distance: 0.2, Date: date},
	}

	if got := scoreRows(entries, ""); len(got) != 3 {
		t.Fatalf("all rows = %d, want 3", len(got))
	}
	got := scoreRows(entries, species.Cardinal)
	if len(got) != 2 {
		t.Fatalf("cardinal rows = %d, want 2", len(got))
	}
	if got[1][0] != "#3" || got[1][1] != "Cy" || got[1][3] != "100" || got[1][4] != "0.20" {
		t.Errorf("filtered row keeps overall rank: got %v", got[1])
	}
}

type memPrefs map[string]string

func (p memPrefs) Preference(key string) (string, bool, error) {
	v, ok := p[key]
	return v, ok, nil
}

func (p memPrefs) SetPreference(key, value string) error {
	p[key] = value
	return nil
}

func TestUserPreferencesAreNamespaced(t *testing.T) {
	store := memPrefs{}
	alice := userPreferences{store: store, user: "alice"}
	bob := userPreferences{store: store, user: "bob"}

	if err := alice.SetPreference(session.PrefPlayerName, "Al"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := bob.Preference(session.PrefPlayerName); ok {
		t.Error("bob sees alice's preference")
	}
	if v, ok, _ := alice.Preference(session.PrefPlayerName); !ok || v != "Al" {
		t.Errorf("alice preference = %q, %v", v, ok)
	}
}
