// ABOUTME: List view: tabs, searchable table, pagination, row actions
// ABOUTME: Filtering is client-side; page changes refetch from the backend
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voyagehq/tripdesk/screens"
)

func (m Model) renderListView() string {
	var s strings.Builder
	scr := m.screens[m.active]

	s.WriteString(titleStyle.Render("TRIPDESK ADMIN"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching {
		s.WriteString("Search: " + m.searchInput.View())
		s.WriteString("\n\n")
	} else if scr.List.Search != "" {
		s.WriteString(helpStyle.Render("Filter: " + scr.List.Search))
		s.WriteString("\n\n")
	}

	switch scr.List.State() {
	case screens.StateLoading:
		s.WriteString(m.spinner.View() + " Loading " + scr.Title + "...")
	case screens.StateError:
		s.WriteString("Error: " + scr.List.Err().Error())
	default:
		s.WriteString(m.renderTable(scr))
		s.WriteString("\n")
		s.WriteString(m.renderPageLine(scr))
	}

	if m.jumping {
		s.WriteString("\n\nGo to page: " + m.pageInput.View())
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, scr := range m.screens {
		if i == m.active {
			rendered = append(rendered, tabActiveStyle.Render(scr.Tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(scr.Tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable(scr *Screen) string {
	visible := scr.List.Visible()

	columns := make([]table.Column, 0, len(scr.Columns))
	for _, name := range scr.Columns {
		label := name
		if f, ok := scr.Schema.Field(name); ok {
			label = f.Label
		}
		columns = append(columns, table.Column{Title: label, Width: 20})
	}

	rows := make([]table.Row, 0, len(visible))
	for _, rec := range visible {
		row := make(table.Row, 0, len(scr.Columns))
		for _, name := range scr.Columns {
			row = append(row, recordField(rec, name))
		}
		rows = append(rows, row)
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) renderPageLine(scr *Screen) string {
	line := fmt.Sprintf("Page %d/%d • %d records",
		scr.List.CurrentPage(), scr.List.TotalPages(), scr.List.Count())
	if scr.List.ActiveOnly {
		line += " • active only"
	}
	if scr.List.Err() != nil {
		line += " • last refresh failed"
	}
	return helpStyle.Render(line)
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch screen",
		"Enter: Details",
		"/: Search",
		"a: Active only",
		"n: New",
		"e: Edit",
		"x: Deactivate",
		"d: Delete",
		"[/]: Page",
		"g: Go to page",
		"r: Refresh",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scr := m.screens[m.active]
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(scr.List.Visible())-1 {
			m.selectedRow++
		}
	case "tab":
		m.active = (m.active + 1) % len(m.screens)
		m.selectedRow = 0
		return m, m.fetchList(m.active, 0)
	case "shift+tab":
		m.active = (m.active + len(m.screens) - 1) % len(m.screens)
		m.selectedRow = 0
		return m, m.fetchList(m.active, 0)
	case "/":
		m.searching = true
		m.searchInput.SetValue(scr.List.Search)
		m.searchInput.Focus()
	case "a":
		scr.List.ActiveOnly = !scr.List.ActiveOnly
		m.selectedRow = 0
	case "enter":
		if rec, ok := m.selectedRecord(); ok {
			m.selectedID = recordID(rec)
			m.viewMode = ViewDetail
		}
	case "n":
		return m.openForm(0)
	case "e":
		if rec, ok := m.selectedRecord(); ok {
			return m.openForm(recordID(rec))
		}
	case "x":
		return m.deactivateSelected()
	case "d":
		if rec, ok := m.selectedRecord(); ok {
			m.selectedID = recordID(rec)
			m.confirmRow = m.selectedRow
			m.viewMode = ViewConfirmDelete
		}
	case "[":
		if page := scr.List.PrevPage(); page > 0 {
			return m, m.fetchList(m.active, page)
		}
	case "]":
		if page := scr.List.NextPage(); page > 0 {
			return m, m.fetchList(m.active, page)
		}
	case "g":
		m.jumping = true
		m.pageInput.SetValue("")
		m.pageInput.Focus()
	case "r":
		return m, m.fetchList(m.active, 0)
	}
	return m, nil
}

// handleListEntryKeys routes keys while the search or page-jump input is
// focused. Search narrows live (it is client-side); a page jump refetches
// only when the page number validates.
func (m Model) handleListEntryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scr := m.screens[m.active]
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.searching {
			m.searching = false
			scr.List.Search = ""
		}
		m.jumping = false
		return m, nil
	case "enter":
		if m.searching {
			m.searching = false
			return m, nil
		}
		m.jumping = false
		requested, err := strconv.Atoi(strings.TrimSpace(m.pageInput.Value()))
		if err != nil {
			return m, nil
		}
		if page := scr.List.GoToPage(requested); page > 0 {
			return m, m.fetchList(m.active, page)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.searching {
		m.searchInput, cmd = m.searchInput.Update(msg)
		scr.List.Search = m.searchInput.Value()
		m.selectedRow = 0
	} else {
		m.pageInput, cmd = m.pageInput.Update(msg)
	}
	return m, cmd
}

func (m Model) selectedRecord() (record, bool) {
	visible := m.screens[m.active].List.Visible()
	if m.selectedRow < 0 || m.selectedRow >= len(visible) {
		return nil, false
	}
	return visible[m.selectedRow], true
}

// deactivateSelected is the soft delete: no confirmation, reversible on
// the backend, idempotent on an already-inactive record.
func (m Model) deactivateSelected() (tea.Model, tea.Cmd) {
	rec, ok := m.selectedRecord()
	if !ok {
		return m, nil
	}
	return m, m.deactivate(recordID(rec))
}
