// ABOUTME: Detail view: full field listing for the selected record
// ABOUTME: Travel applications add an itinerary action from here
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Width(24)

	inactiveBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")).
				Bold(true)
)

func (m Model) renderDetailView() string {
	var s strings.Builder
	scr := m.screens[m.active]

	rec, ok := m.recordByID(scr, m.selectedID)
	if !ok {
		return titleStyle.Render(strings.ToUpper(scr.Title)) + "\n\nRecord no longer loaded.\n\n" +
			helpStyle.Render("Esc: Back")
	}

	s.WriteString(titleStyle.Render(strings.ToUpper(scr.Title) + " DETAIL"))
	s.WriteString("\n\n")
	if !recordActive(rec) {
		s.WriteString(inactiveBadgeStyle.Render("INACTIVE"))
		s.WriteString("\n\n")
	}

	for _, f := range scr.Schema.Fields {
		value := recordField(rec, f.Name)
		s.WriteString(fmt.Sprintf("%s %s\n", detailLabelStyle.Render(f.Label+":"), orDash(value)))
	}

	help := []string{"e: Edit", "x: Deactivate", "d: Delete"}
	if scr.HasItinerary {
		help = append(help, "i: Itinerary")
	}
	help = append(help, "Esc: Back", "q: Quit")
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scr := m.screens[m.active]
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		return m, nil
	case "e":
		return m.openForm(m.selectedID)
	case "x":
		m.viewMode = ViewList
		return m, m.deactivate(m.selectedID)
	case "d":
		m.confirmRow = m.selectedRow
		m.viewMode = ViewConfirmDelete
		return m, nil
	case "i":
		if scr.HasItinerary {
			m.viewMode = ViewItinerary
			m.days = nil
			m.dayRow = 0
			m.booking = nil
			return m, m.fetchItinerary(m.selectedID)
		}
	}
	return m, nil
}
