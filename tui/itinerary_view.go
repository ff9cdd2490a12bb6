// ABOUTME: Itinerary view: travel-application segments grouped by day
// ABOUTME: A segment with a booking can pull and show the booking detail
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voyagehq/tripdesk/itinerary"
	"github.com/voyagehq/tripdesk/models"
)

// itineraryDay mirrors one grouped day with its segments flattened into
// selectable rows.
type itineraryDay struct {
	date     string
	segments []models.ItinerarySegment
}

func groupDays(segments []models.ItinerarySegment) []itineraryDay {
	return dayRows(itinerary.Days(segments))
}

func dayRows(grouped []itinerary.Day) []itineraryDay {
	days := make([]itineraryDay, 0, len(grouped))
	for _, d := range grouped {
		days = append(days, itineraryDay{date: d.Date, segments: d.Segments})
	}
	return days
}

var (
	dayHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	segmentSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("235"))
)

// segmentRows flattens the grouped days so a single cursor can walk every
// segment in display order.
func (m Model) segmentRows() []models.ItinerarySegment {
	var rows []models.ItinerarySegment
	for _, d := range m.days {
		rows = append(rows, d.segments...)
	}
	return rows
}

func (m Model) renderItineraryView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ITINERARY"))
	s.WriteString("\n\n")

	if m.days == nil {
		s.WriteString(m.spinner.View() + " Loading itinerary...")
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("Esc: Back"))
		return s.String()
	}
	if len(m.days) == 0 {
		s.WriteString("No segments on this application.")
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("Esc: Back"))
		return s.String()
	}

	row := 0
	for _, d := range m.days {
		s.WriteString(dayHeaderStyle.Render(d.date))
		s.WriteString("\n")
		for _, seg := range d.segments {
			line := "  " + segmentLine(seg)
			if row == m.dayRow {
				line = segmentSelectedStyle.Render("> " + segmentLine(seg))
			}
			s.WriteString(line)
			s.WriteString("\n")
			row++
		}
	}

	if m.booking != nil {
		s.WriteString("\n")
		s.WriteString(m.renderBooking())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: Segment • Enter: Booking detail • Esc: Back"))
	return s.String()
}

func segmentLine(seg models.ItinerarySegment) string {
	var desc string
	switch seg.Type {
	case models.SegmentHotel:
		desc = "hotel " + seg.ToCity
	default:
		desc = fmt.Sprintf("%s %s → %s", seg.Type, seg.FromCity, seg.ToCity)
	}
	if seg.Details != "" {
		desc += " (" + seg.Details + ")"
	}
	if seg.BookingID != 0 {
		desc += " [booked]"
	}
	return desc
}

func (m Model) renderBooking() string {
	b := m.booking
	lines := []string{
		dayHeaderStyle.Render("BOOKING " + b.Reference),
		fmt.Sprintf("  Vendor: %s", orDash(b.Vendor)),
		fmt.Sprintf("  Status: %s", orDash(b.Status)),
		fmt.Sprintf("  Amount: %d", b.Amount),
	}
	if b.DocumentPath != "" {
		lines = append(lines, "  Document: "+m.client.FileURL(b.DocumentPath))
	}
	return strings.Join(lines, "\n")
}

func (m Model) handleItineraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.segmentRows()
	switch msg.String() {
	case "esc":
		m.viewMode = ViewDetail
		m.booking = nil
		return m, nil
	case "up", "k":
		if m.dayRow > 0 {
			m.dayRow--
			m.booking = nil
		}
	case "down", "j":
		if m.dayRow < len(rows)-1 {
			m.dayRow++
			m.booking = nil
		}
	case "enter":
		if m.dayRow >= len(rows) {
			return m, nil
		}
		seg := rows[m.dayRow]
		if seg.BookingID == 0 {
			return m.showNotice("No booking on this segment", noticeError)
		}
		return m, m.fetchBooking(seg.BookingID)
	}
	return m, nil
}

func (m Model) fetchBooking(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		booking, err := client.Bookings().Get(ctx, id)
		return bookingLoadedMsg{booking: booking, err: err}
	}
}
