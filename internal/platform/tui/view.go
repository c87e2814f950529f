package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/backyard-skies/internal/core"
	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

const (
	banner  = "B A C K Y A R D   S K I E S"
	tagline = "eat, drink, and keep an eye on the sky"
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.board.view() + "\n" + m.helpLine(menuHelp{m.keys})
	}

	switch state := m.sess.State(); {
	case state == session.StateMenu:
		return m.menuView()
	case state == session.StateSpeciesSelect:
		return m.speciesView()
	case state == session.StateSettings:
		return m.settingsView()
	case state == session.StateGameOver:
		return m.gameOverView()
	}

	snap := m.sess.Snapshot()
	m.drawGame(snap)
	return RenderScreen(m.screen) + "\n" + m.helpLine(flightHelp{m.keys})
}

// drawGame fills the screen buffer with the world and the HUD.
func (m Model) drawGame(snap session.Snapshot) {
	m.screen.Clear()
	drawWorld(m.screen, snap, m.suburb, snap.Elapsed)
	drawHUD(m.screen, snap)
	if snap.Paused {
		m.screen.DrawTextCentered(m.screen.Height()/3, "  PAUSED  ", core.ColorBrightYellow)
	}
}

func (m Model) helpLine(keys help.KeyMap) string {
	if m.status != "" {
		return dimStyle.Render(m.status)
	}
	return dimStyle.Render(m.help.View(keys))
}

func (m Model) center(block string) string {
	return lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, block)
}

func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(banner))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(tagline))
	b.WriteString("\n\n")

	bird := m.sess.Species()
	who := m.sess.PlayerName()
	if who == "" {
		who = m.name.Placeholder
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s flying a %s", who, bird.Name)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}

	return m.center(b.String()) + "\n" + m.helpLine(menuHelp{m.keys})
}

func (m Model) speciesView() string {
	birds := species.List()
	var b strings.Builder
	b.WriteString(titleStyle.Render("CHOOSE YOUR BIRD"))
	b.WriteString("\n\n")

	for i, sp := range birds {
		line := fmt.Sprintf("%-20s %s", sp.Name, dimStyle.Render(sp.ScientificName))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.cursor >= 0 && m.cursor < len(birds) {
		sp := birds[m.cursor]
		a := sp.Attributes
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(56).Render(sp.Description))
		b.WriteString("\n\n")
		b.WriteString(statLine("Speed", a.Speed, 10))
		b.WriteString(statLine("Flap", a.FlapPower, 1.5))
		b.WriteString(statLine("Stamina", a.Stamina, 100))
		b.WriteString(statLine("Food", a.MaxFood, 100))
		b.WriteString(statLine("Water", a.MaxWater, 100))
		b.WriteString(statLine("Hunger", a.FoodDrain, 3))
		b.WriteString(statLine("Thirst", a.WaterDrain, 3))
	}

	return m.center(panelStyle.Render(b.String())) + "\n" + m.helpLine(menuHelp{m.keys})
}

func statLine(label string, v, scale float64) string {
	const width = 20
	n := int(v / scale * width)
	n = max(0, min(n, width))
	bar := strings.Repeat("█", n) + dimStyle.Render(strings.Repeat("░", width-n))
	return fmt.Sprintf("%-8s %s %g\n", label, bar, v)
}

func (m Model) settingsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SETTINGS"))
	b.WriteString("\n\n")

	sound := "on"
	if m.sess.Muted() {
		sound = "off"
	}
	controls := "tap-steer (flaps weaken while turning)"
	if m.sess.ControlScheme() == session.ControlButtons {
		controls = "buttons (full-strength flaps)"
	}

	rows := []string{
		"Name      " + m.name.View(),
		"Sound     " + sound,
		"Controls  " + controls,
		"Back",
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> ") + row)
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if m.name.Focused() {
		b.WriteString("\n" + dimStyle.Render("enter to save, esc to cancel"))
	}

	return m.center(panelStyle.Render(b.String())) + "\n" + m.helpLine(menuHelp{m.keys})
}

func (m Model) gameOverView() string {
	snap := m.sess.Snapshot()
	var b strings.Builder

	b.WriteString(alertStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(snap.DeathReason.Message())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score     %d\n", snap.Points))
	b.WriteString(fmt.Sprintf("Distance  %.2f km\n", snap.Distance))
	b.WriteString(fmt.Sprintf("Time      %s\n", clockText(snap.Elapsed)))
	b.WriteString(fmt.Sprintf("Bird      %s\n\n", snap.Species.Name))

	switch rank := snap.LastRank; {
	case rank == 1:
		b.WriteString(selectedStyle.Render("New high score!"))
	case rank > 1:
		b.WriteString(selectedStyle.Render(fmt.Sprintf("Ranked #%d", rank)))
	default:
		b.WriteString(dimStyle.Render("Not on the leaderboard this time"))
	}
	b.WriteString("\n\n")

	top := m.sess.Leaderboard()
	if len(top) > 5 {
		top = top[:5]
	}
	for i, e := range top {
		line := fmt.Sprintf("%2d. %-20s %-9s %6.0f", i+1, e.Name, e.Species, e.Score)
		if i+1 == snap.LastRank {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return m.center(panelStyle.Render(b.String())) + "\n" + m.helpLine(gameOverHelp{m.keys})
}
