// ABOUTME: Delete confirmation view for the hard, irreversible delete
// ABOUTME: Soft delete ("x") never comes through here
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var warningStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	Bold(true)

func (m Model) renderConfirmDeleteView() string {
	var s strings.Builder
	scr := m.screens[m.active]

	s.WriteString(warningStyle.Render("DELETE " + strings.ToUpper(scr.Title) + "?"))
	s.WriteString("\n\n")

	if rec, ok := m.recordByID(scr, m.selectedID); ok {
		s.WriteString("This permanently removes: " + optionLabel(rec))
		s.WriteString("\n")
	}
	s.WriteString("If you only want to retire the record, cancel and use deactivate instead.")
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("y: Delete • n/Esc: Cancel"))
	return s.String()
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scr := m.screens[m.active]
	switch msg.String() {
	case "y":
		m.viewMode = ViewList
		m.selectedRow = m.confirmRow
		idx := m.active
		res := scr.res
		id := m.selectedID
		return m, func() tea.Msg {
			ctx, cancel := callCtx()
			defer cancel()
			return deleteDoneMsg{screen: idx, err: res.Delete(ctx, id)}
		}
	case "n", "esc":
		m.viewMode = ViewList
		return m, nil
	}
	return m, nil
}
