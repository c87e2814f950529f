package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/backyard-skies/internal/session"
	"github.com/vovakirdan/backyard-skies/internal/species"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the species sidebar
	sidebarWidth       = 22
)

// scoreboard shows the leaderboard with an optional species filter.
// Ranks always refer to the full list.
type scoreboard struct {
	filters []species.ID // "" shows every species
	cursor  int
	entries []session.LeaderboardEntry
	table   table.Model
	width   int
	height  int
}

func newScoreboard(width, height int) scoreboard {
	filters := []species.ID{""}
	for _, sp := range species.List() {
		filters = append(filters, sp.ID)
	}
	b := scoreboard{
		filters: filters,
		width:   width,
		height:  height,
	}
	b.table = b.createTable()
	return b
}

func (b *scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: 20},
		{Title: "Bird", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Km", Width: 6},
		{Title: "Date", Width: 12},
	}

	tableWidth := b.width - 4
	if b.width >= minWidthForSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth < 70 {
		columns[1].Width = max(8, columns[1].Width-(70-tableWidth))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(b.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (b *scoreboard) setEntries(entries []session.LeaderboardEntry) {
	b.entries = entries
	b.updateTableRows()
}

func (b *scoreboard) resize(width, height int) {
	b.width, b.height = width, height
	b.table = b.createTable()
	b.updateTableRows()
}

func (b *scoreboard) updateTableRows() {
	b.table.SetRows(scoreRows(b.entries, b.filter()))
	b.table.GotoTop()
}

func (b scoreboard) filter() species.ID {
	if b.cursor < 0 || b.cursor >= len(b.filters) {
		return ""
	}
	return b.filters[b.cursor]
}

// scoreRows builds table rows for the entries of one species, or all of them.
func scoreRows(entries []session.LeaderboardEntry, filter species.ID) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		if filter != "" && e.Species != filter {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			string(e.Species),
			fmt.Sprintf("%.0f", e.Score),
			fmt.Sprintf("%.2f", e.Distance),
			e.Date.Local().Format("Jan 02 2006"),
		})
	}
	return rows
}

func (b scoreboard) update(msg tea.KeyMsg, keys KeyMap) (scoreboard, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, keys.Right):
		b.cursor = (b.cursor + 1) % len(b.filters)
		b.updateTableRows()
	case key.Matches(msg, keys.Left):
		b.cursor--
		if b.cursor < 0 {
			b.cursor = len(b.filters) - 1
		}
		b.updateTableRows()
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		b.table, cmd = b.table.Update(msg)
	}
	return b, cmd
}

func (b scoreboard) view() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	sb.WriteString(titleStyle.Render(centerText("HIGH SCORES", b.width)))
	sb.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(b.tableContent())

	if b.width >= minWidthForSidebar {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, b.sidebar(), "  ", content))
	} else {
		sb.WriteString(centerText(b.tabs(), b.width))
		sb.WriteString("\n\n")
		sb.WriteString(content)
	}
	return sb.String()
}

func (b scoreboard) label(i int) string {
	if b.filters[i] == "" {
		return "All birds"
	}
	if sp, err := species.Lookup(b.filters[i]); err == nil {
		return sp.Name
	}
	return string(b.filters[i])
}

func (b scoreboard) sidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Birds\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i := range b.filters {
		cursor := "  "
		line := lipgloss.NewStyle()
		if i == b.cursor {
			cursor = "> "
			line = line.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sb.WriteString(line.Render(cursor + b.label(i)))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

func (b scoreboard) tabs() string {
	return fmt.Sprintf("< %s >", b.label(b.cursor))
}

func (b scoreboard) tableContent() string {
	if len(b.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No flights recorded yet.\nTake off to set a high score!")
	}
	return b.table.View()
}
