// ABOUTME: Transient success/error notifications
// ABOUTME: One notice at a time, auto-dismissed after three seconds
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
)

const noticeDuration = 3 * time.Second

type notice struct {
	text string
	kind noticeKind
}

type noticeExpiredMsg struct {
	seq int
}

var (
	noticeSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("10")).
				Bold(true)

	noticeErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")).
				Bold(true)
)

// showNotice replaces any currently shown notice and schedules its
// expiry. The sequence number keeps an old expiry from dismissing a
// newer notice.
func (m Model) showNotice(text string, kind noticeKind) (Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = notice{text: text, kind: kind}
	seq := m.noticeSeq
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m Model) renderNotice() string {
	if m.notice.kind == noticeError {
		return noticeErrorStyle.Render("✗ " + m.notice.text)
	}
	return noticeSuccessStyle.Render("✓ " + m.notice.text)
}
