package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/schedule"
)

// upcomingLimit caps how many future meetings the dashboard lists.
const upcomingLimit = 5

type dashboardState struct {
	loading int
	err     error

	users    []backend.User
	meetings []backend.Meeting
}

func newDashboardState() dashboardState {
	return dashboardState{loading: 2}
}

func (m Model) enterDashboard() (tea.Model, tea.Cmd) {
	m.view = ViewDashboard
	m.dashboard = newDashboardState()
	// Last fetched data renders beneath the spinner until the refetch lands.
	snap := m.store.Snapshot()
	m.dashboard.users = snap.Users
	m.dashboard.meetings = snap.AllMeetings
	return m, m.fetchDashboard()
}

// fetchDashboard loads the team roster and the full meeting list in parallel.
func (m Model) fetchDashboard() tea.Cmd {
	return tea.Batch(m.fetchDashUsers(), m.fetchDashMeetings())
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashUsersMsg:
		m.dashboard.loading--
		if msg.err != nil {
			m.dashboard.err = msg.err
			return m, nil
		}
		m.dashboard.users = msg.users

	case dashMeetingsMsg:
		m.dashboard.loading--
		if msg.err != nil {
			m.dashboard.err = msg.err
			return m, nil
		}
		m.dashboard.meetings = msg.meetings
	}
	return m, nil
}

func (m Model) renderDashboard() string {
	styles := m.theme.Styles()

	if m.dashboard.err != nil {
		return styles.ErrorBanner.Render("שגיאה בטעינת הנתונים: " + m.dashboard.err.Error())
	}

	var b strings.Builder

	if m.dashboard.loading > 0 {
		b.WriteString(m.spin.View() + " " + styles.MutedText.Render("טוען נתונים..."))
		if len(m.dashboard.users) == 0 && len(m.dashboard.meetings) == 0 {
			return b.String()
		}
		b.WriteString("\n\n")
	}

	b.WriteString(styles.AccentText.Render("הצוות"))
	b.WriteString("\n")
	if len(m.dashboard.users) == 0 {
		b.WriteString(styles.MutedText.Render("אין משתמשים"))
		b.WriteString("\n")
	}
	for _, u := range m.dashboard.users {
		b.WriteString(m.avatarBadge(u))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(u.Name))
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render(u.Email))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("פגישות קרובות"))
	b.WriteString("\n")

	upcoming := upcomingMeetings(m.dashboard.meetings, today(), upcomingLimit)
	if len(upcoming) == 0 {
		b.WriteString(styles.MutedText.Render("אין פגישות קרובות"))
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render("לחצו 3 כדי לקבוע פגישה חדשה"))
		b.WriteString("\n")
	}
	for _, mt := range upcoming {
		b.WriteString(m.renderMeetingLine(mt))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderMeetingLine(mt backend.Meeting) string {
	styles := m.theme.Styles()
	organizer := ""
	if mt.Organizer != nil {
		organizer = mt.Organizer.Name
	}
	line := fmt.Sprintf("%s  %s-%s  %s",
		schedule.FormatDate(mt.Date),
		schedule.FormatTime(mt.StartTime),
		schedule.FormatTime(mt.EndTime),
		mt.Topic,
	)
	out := styles.Text.Render(line)
	if organizer != "" {
		out += "  " + styles.MutedText.Render(organizer)
	}
	return out
}

// upcomingMeetings keeps meetings on or after today, preserving the
// backend's date/start ordering, up to limit entries.
func upcomingMeetings(meetings []backend.Meeting, today string, limit int) []backend.Meeting {
	var out []backend.Meeting
	for _, mt := range meetings {
		if mt.Date < today {
			continue
		}
		out = append(out, mt)
		if len(out) == limit {
			break
		}
	}
	return out
}

type dashUsersMsg struct {
	users []backend.User
	err   error
}

type dashMeetingsMsg struct {
	meetings []backend.Meeting
	err      error
}

func (m Model) fetchDashUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := m.client.ListUsers(m.ctx)
		if err != nil {
			m.store.SetError(err)
			return dashUsersMsg{err: err}
		}
		m.store.SetUsers(users)
		return dashUsersMsg{users: users}
	}
}

func (m Model) fetchDashMeetings() tea.Cmd {
	return func() tea.Msg {
		meetings, err := m.client.ListMeetings(m.ctx)
		if err != nil {
			m.store.SetError(err)
			return dashMeetingsMsg{err: err}
		}
		m.store.SetAllMeetings(meetings)
		return dashMeetingsMsg{meetings: meetings}
	}
}
