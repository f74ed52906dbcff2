package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/schedule"
)

// calendarDays is the length of the date strip, starting today.
const calendarDays = 7

type calendarState struct {
	dates    []string
	selected int

	loading  bool
	err      error
	meetings []backend.Meeting
}

func (m Model) enterCalendar() (tea.Model, tea.Cmd) {
	m.view = ViewCalendar
	m.calendar = calendarState{
		dates:   schedule.DateRange(today(), calendarDays),
		loading: true,
	}
	// The store keeps the last fetched day; show it under the spinner if it
	// is the day being opened.
	if snap := m.store.Snapshot(); snap.MeetingsDate == m.calendar.dates[0] {
		m.calendar.meetings = snap.Meetings
	}
	return m, m.fetchCalendarMeetings(m.calendar.dates[0])
}

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.selectCalendarDay(m.calendar.selected - 1)
	case key.Matches(msg, m.keys.Right):
		return m.selectCalendarDay(m.calendar.selected + 1)
	}
	return m, nil
}

func (m Model) selectCalendarDay(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.calendar.dates) || idx == m.calendar.selected {
		return m, nil
	}
	m.calendar.selected = idx
	m.calendar.loading = true
	m.calendar.err = nil
	m.calendar.meetings = nil
	if snap := m.store.Snapshot(); snap.MeetingsDate == m.calendar.dates[idx] {
		m.calendar.meetings = snap.Meetings
	}
	return m, m.fetchCalendarMeetings(m.calendar.dates[idx])
}

func (m Model) updateCalendar(msg calMeetingsMsg) (tea.Model, tea.Cmd) {
	// A slow response for a day the user already moved away from must not
	// overwrite the current day's list.
	if msg.date != m.calendar.dates[m.calendar.selected] {
		return m, nil
	}
	m.calendar.loading = false
	if msg.err != nil {
		m.calendar.err = msg.err
		return m, nil
	}
	m.calendar.meetings = msg.meetings
	return m, nil
}

func (m Model) renderCalendar() string {
	styles := m.theme.Styles()

	var b strings.Builder

	var strip []string
	for i, d := range m.calendar.dates {
		label := " " + schedule.FormatDate(d) + " "
		if i == m.calendar.selected {
			strip = append(strip, styles.Selected.Render(label))
			continue
		}
		strip = append(strip, styles.MutedText.Render(label))
	}
	b.WriteString(strings.Join(strip, " "))
	b.WriteString("\n\n")

	switch {
	case m.calendar.loading:
		b.WriteString(m.spin.View() + " " + styles.MutedText.Render("טוען פגישות..."))
		for _, mt := range m.calendar.meetings {
			b.WriteString("\n")
			b.WriteString(m.renderMeetingCard(mt))
		}
	case m.calendar.err != nil:
		b.WriteString(styles.ErrorBanner.Render("שגיאה בטעינת הפגישות: " + m.calendar.err.Error()))
	case len(m.calendar.meetings) == 0:
		b.WriteString(styles.MutedText.Render("אין פגישות ביום זה"))
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render("לחצו 3 כדי לקבוע פגישה חדשה"))
	default:
		for _, mt := range m.calendar.meetings {
			b.WriteString(m.renderMeetingCard(mt))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderMeetingCard(mt backend.Meeting) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Render(schedule.FormatTime(mt.StartTime) + "-" + schedule.FormatTime(mt.EndTime)))
	b.WriteString("  ")
	b.WriteString(styles.Text.Render(mt.Topic))
	if mt.Organizer != nil {
		b.WriteString("\n")
		b.WriteString(m.avatarBadge(*mt.Organizer))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(mt.Organizer.Name))
	}
	return styles.Card.Render(b.String())
}

type calMeetingsMsg struct {
	date     string
	meetings []backend.Meeting
	err      error
}

func (m Model) fetchCalendarMeetings(date string) tea.Cmd {
	return func() tea.Msg {
		meetings, err := m.client.MeetingsByDate(m.ctx, date)
		if err != nil {
			m.store.SetError(err)
			return calMeetingsMsg{date: date, err: err}
		}
		m.store.SetMeetings(date, meetings)
		return calMeetingsMsg{date: date, meetings: meetings}
	}
}
