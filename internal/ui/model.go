// Package ui provides the Bubble Tea terminal interface for roombook.
package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/config"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/prefs"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/schedule"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewCalendar
	ViewBooking
	ViewIntegrations
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    backend.Directory
	Store     *state.Store
	Config    config.Config
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    backend.Directory
	store     *state.Store
	cfg       config.Config
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spin     spinner.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	view     View

	// Per-view state
	dashboard    dashboardState
	calendar     calendarState
	booking      bookingState
	integrations integrationsState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		cfg:       opts.Config,
		prefsPath: prefsPath,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spin:      sp,
		view:      ViewDashboard,
	}
	m.dashboard = newDashboardState()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spin.Tick,
		m.fetchDashboard(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case dashUsersMsg, dashMeetingsMsg:
		return m.updateDashboard(msg)

	case calMeetingsMsg:
		return m.updateCalendar(msg)

	case bookUsersMsg, bookResourcesMsg, meetingCreatedMsg, successHideMsg:
		return m.updateBooking(msg)

	case intUsersMsg, intConnectedMsg, intSavedMsg, intBannerHideMsg:
		return m.updateIntegrations(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// While the topic field is being edited, everything except navigation
	// belongs to the text input.
	if m.view == ViewBooking && m.booking.editingTopic() {
		return m.handleBookingKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewDashboard):
		return m.enterDashboard()

	case key.Matches(msg, m.keys.ViewCalendar):
		return m.enterCalendar()

	case key.Matches(msg, m.keys.ViewBooking):
		return m.enterBooking()

	case key.Matches(msg, m.keys.ViewIntegrations):
		return m.enterIntegrations()
	}

	switch m.view {
	case ViewCalendar:
		return m.handleCalendarKey(msg)
	case ViewBooking:
		return m.handleBookingKey(msg)
	case ViewIntegrations:
		return m.handleIntegrationsKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.view {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewCalendar:
		return m.renderCalendar()
	case ViewBooking:
		return m.renderBooking()
	case ViewIntegrations:
		return m.renderIntegrations()
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Width(m.width).Render(m.help.View(m.keys))
}

func (m Model) renderHelpOverlay() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Logo.Render("roombook"))
	b.WriteString("\n\n")
	m.help.ShowAll = true
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("כל מקש סוגר את המסך הזה"))
	return styles.Card.Render(b.String())
}

// today is a seam for tests; production uses the wall clock.
var today = schedule.Today

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
