// ABOUTME: Terminal user interface using bubbletea
// ABOUTME: Full-screen admin console over the travel backend REST API
package tui

import (
	"context"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/itinerary"
	"github.com/voyagehq/tripdesk/models"
	"github.com/voyagehq/tripdesk/screens"
)

// ViewMode represents the current TUI view.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewConfirmDelete
	ViewItinerary
)

const callTimeout = 30 * time.Second

// Model is the main bubbletea model. Each screen owns its fetched
// collection independently; nothing is shared across tabs.
type Model struct {
	client  *api.Client
	screens []*Screen
	active  int

	viewMode    ViewMode
	selectedRow int

	// Search state
	searching   bool
	searchInput textinput.Model

	// Page-jump state
	jumping   bool
	pageInput textinput.Model

	// Edit view state
	form           screens.Form
	formInputs     []textinput.Model
	focusIndex     int
	refOptions     map[string][]screens.Option
	chains         []*screens.Cascade
	chainOf        map[string]chainPos
	multiTargets   map[int64]bool
	optionsLoading bool
	saving         bool

	// Detail / itinerary state
	selectedID int64
	days       []itineraryDay
	dayRow     int
	booking    *models.BookingDetail

	// Notification state
	notice     notice
	noticeSeq  int
	confirmRow int

	spinner spinner.Model
	width   int
	height  int
}

type chainPos struct {
	chain int
	level int
}

// NewModel creates the console model over a configured API client.
func NewModel(client *api.Client) Model {
	search := textinput.New()
	search.Placeholder = "Search"
	search.CharLimit = 100

	page := textinput.New()
	page.Placeholder = "Page"
	page.CharLimit = 6

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:      client,
		screens:     buildScreens(client),
		viewMode:    ViewList,
		searchInput: search,
		pageInput:   page,
		spinner:     sp,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchList(m.active, 0), m.spinner.Tick)
}

// Messages resolved by async commands.

type listLoadedMsg struct {
	screen int
	token  int
	result api.ListResult[record]
	err    error
}

type itineraryLoadedMsg struct {
	days []itinerary.Day
	err  error
}

type formOptionsMsg struct {
	screen  int
	options formOptions
	err     error
}

type chainLoadedMsg struct {
	chain   int
	level   int
	token   int
	options []screens.Option
	err     error
}

type submitDoneMsg struct {
	screen int
	err    error
}

type batchDoneMsg struct {
	screen    int
	created   int
	requested int
	err       error
}

type deactivateDoneMsg struct {
	screen int
	err    error
}

type deleteDoneMsg struct {
	screen int
	err    error
}

type bookingLoadedMsg struct {
	booking models.BookingDetail
	err     error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case listLoadedMsg:
		scr := m.screens[msg.screen]
		if !scr.List.Resolve(msg.token, msg.result, msg.err) {
			// A later action superseded this fetch; drop it.
			return m, nil
		}
		if msg.err != nil {
			return m.showNotice("Failed to load "+scr.Title+": "+msg.err.Error(), noticeError)
		}
		// Only the active screen's cursor rides its visible rows; a
		// background refresh must not move it.
		if msg.screen == m.active && m.selectedRow >= len(scr.List.Visible()) {
			m.selectedRow = 0
		}
		return m, nil
	case itineraryLoadedMsg:
		if msg.err != nil {
			m.viewMode = ViewDetail
			return m.showNotice("Failed to load itinerary: "+msg.err.Error(), noticeError)
		}
		m.days = dayRows(msg.days)
		m.dayRow = 0
		m.booking = nil
		return m, nil
	case formOptionsMsg:
		return m.applyFormOptions(msg)
	case chainLoadedMsg:
		return m.applyChainLoad(msg)
	case submitDoneMsg:
		return m.applySubmitDone(msg)
	case batchDoneMsg:
		return m.applyBatchDone(msg)
	case deactivateDoneMsg:
		if msg.err != nil {
			return m.showNotice("Deactivate failed: "+msg.err.Error(), noticeError)
		}
		next, cmd := m.showNotice("Record deactivated", noticeSuccess)
		return next, tea.Batch(cmd, next.fetchList(msg.screen, next.screens[msg.screen].List.CurrentPage()))
	case deleteDoneMsg:
		if msg.err != nil {
			return m.showNotice("Delete failed: "+msg.err.Error(), noticeError)
		}
		next, cmd := m.showNotice("Record deleted", noticeSuccess)
		return next, tea.Batch(cmd, next.fetchList(msg.screen, next.screens[msg.screen].List.CurrentPage()))
	case bookingLoadedMsg:
		if m.viewMode != ViewItinerary {
			return m, nil
		}
		if msg.err != nil {
			return m.showNotice("Failed to load booking: "+msg.err.Error(), noticeError)
		}
		booking := msg.booking
		m.booking = &booking
		return m, nil
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = notice{}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.viewMode {
	case ViewList:
		body = m.renderListView()
	case ViewDetail:
		body = m.renderDetailView()
	case ViewEdit:
		body = m.renderEditView()
	case ViewConfirmDelete:
		body = m.renderConfirmDeleteView()
	case ViewItinerary:
		body = m.renderItineraryView()
	}
	if m.notice.text != "" {
		body += "\n" + m.renderNotice()
	}
	return body
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry modes get the raw key stream.
	if m.viewMode == ViewList && (m.searching || m.jumping) {
		return m.handleListEntryKeys(msg)
	}
	if m.viewMode == ViewEdit {
		return m.handleEditKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ViewItinerary:
		return m.handleItineraryKeys(msg)
	}
	return m, nil
}

// fetchList starts an async list fetch for one screen. Page 0 means
// whatever the backend's default page is. The token taken here makes the
// resolution discardable if a later action supersedes it.
func (m Model) fetchList(idx, page int) tea.Cmd {
	scr := m.screens[idx]
	token := scr.List.BeginFetch()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		var filters url.Values
		if page > 0 {
			filters = api.PageFilter(page)
		}
		result, err := scr.res.List(ctx, filters)
		return listLoadedMsg{screen: idx, token: token, result: result, err: err}
	}
}

func (m Model) fetchItinerary(applicationID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		days, err := client.Itinerary(ctx, applicationID)
		return itineraryLoadedMsg{days: days, err: err}
	}
}

// deactivate runs the soft delete for the active screen in the
// background; the result lands as a deactivateDoneMsg.
func (m Model) deactivate(id int64) tea.Cmd {
	idx := m.active
	res := m.screens[idx].res
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return deactivateDoneMsg{screen: idx, err: res.Deactivate(ctx, id)}
	}
}

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
