package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/booking"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/schedule"
)

type bookingPhase int

const (
	bookingLoading bookingPhase = iota
	bookingReady
	bookingSubmitting
)

// Form fields in focus order.
const (
	fieldOrganizer = iota
	fieldTopic
	fieldDate
	fieldStart
	fieldEnd
	fieldResources
	fieldSubmit
	fieldCount
)

// bookingDateDays is how far ahead the date selector reaches.
const bookingDateDays = 14

// successBannerDelay is how long the success banner stays up.
const successBannerDelay = 5 * time.Second

type bookingState struct {
	phase   bookingPhase
	pending int
	loadErr error

	users     []backend.User
	resources []backend.Resource

	form  booking.Form
	topic textinput.Model
	slots []schedule.Slot
	dates []string

	focus       int
	resourceIdx int

	errText string
	success bool
}

func (s bookingState) editingTopic() bool {
	return s.phase == bookingReady && s.focus == fieldTopic
}

func (m Model) enterBooking() (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "נושא הפגישה"
	ti.CharLimit = 120
	ti.Width = 40

	m.view = ViewBooking
	m.booking = bookingState{
		phase:   bookingLoading,
		pending: 2,
		form:    booking.New(today()),
		topic:   ti,
		slots:   schedule.SlotOptions(m.cfg.OpenHour, m.cfg.CloseHour, m.cfg.SlotMinutes),
		dates:   schedule.DateRange(today(), bookingDateDays),
	}
	// Seed the selectors from the store so the form shows the last known
	// lists, disabled, while the refetch is pending.
	snap := m.store.Snapshot()
	m.booking.users = snap.Users
	m.booking.resources = snap.Resources
	return m, tea.Batch(m.fetchBookingUsers(), m.fetchBookingResources())
}

func (m Model) updateBooking(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bookUsersMsg:
		if msg.err != nil {
			m.booking.loadErr = msg.err
			m.booking.pending--
			return m, nil
		}
		m.booking.users = msg.users
		return m.bookingLoaded()

	case bookResourcesMsg:
		if msg.err != nil {
			m.booking.loadErr = msg.err
			m.booking.pending--
			return m, nil
		}
		m.booking.resources = msg.resources
		return m.bookingLoaded()

	case meetingCreatedMsg:
		m.booking.phase = bookingReady
		if msg.err != nil {
			log.Printf("create meeting: %v", msg.err)
			m.booking.errText = booking.MsgCreateFailed
			return m, nil
		}
		if len(m.booking.form.Resources) > 0 {
			// Resource attachment has no backend path yet; record the
			// selection so it is not lost silently.
			log.Printf("meeting %s: selected resources %v", msg.meeting.ID, m.booking.form.Resources)
		}
		m.booking.form.Reset(today())
		m.booking.topic.SetValue("")
		m.booking.resourceIdx = 0
		m.booking.errText = ""
		m.booking.success = true
		return m, tea.Tick(successBannerDelay, func(time.Time) tea.Msg {
			return successHideMsg{}
		})

	case successHideMsg:
		m.booking.success = false
		return m, nil
	}
	return m, nil
}

func (m Model) bookingLoaded() (tea.Model, tea.Cmd) {
	m.booking.pending--
	if m.booking.pending == 0 && m.booking.loadErr == nil {
		m.booking.phase = bookingReady
	}
	return m, nil
}

func (m Model) handleBookingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// No input is accepted while the create call is in flight.
	if m.booking.phase != bookingReady {
		return m, nil
	}

	if m.booking.editingTopic() {
		// Only raw arrow/enter keys leave the field; letters like j and k
		// belong to the text being typed.
		switch msg.Type {
		case tea.KeyUp:
			return m.moveBookingFocus(-1)
		case tea.KeyDown, tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
			return m.moveBookingFocus(1)
		}
		var cmd tea.Cmd
		m.booking.topic, cmd = m.booking.topic.Update(msg)
		m.booking.form.Topic = m.booking.topic.Value()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveBookingFocus(-1)
	case key.Matches(msg, m.keys.Down):
		return m.moveBookingFocus(1)
	case key.Matches(msg, m.keys.Left):
		return m.cycleBookingField(-1)
	case key.Matches(msg, m.keys.Right):
		return m.cycleBookingField(1)
	case key.Matches(msg, m.keys.Toggle):
		if m.booking.focus == fieldResources && len(m.booking.resources) > 0 {
			m.booking.form.ToggleResource(m.booking.resources[m.booking.resourceIdx].ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.booking.focus == fieldSubmit {
			return m.submitBooking()
		}
		return m.moveBookingFocus(1)
	}
	return m, nil
}

func (m Model) moveBookingFocus(delta int) (tea.Model, tea.Cmd) {
	next := m.booking.focus + delta
	if next < 0 {
		next = 0
	}
	if next >= fieldCount {
		next = fieldCount - 1
	}
	m.booking.focus = next

	if next == fieldTopic {
		m.booking.topic.Focus()
		return m, textinput.Blink
	}
	m.booking.topic.Blur()
	return m, nil
}

// cycleBookingField steps the focused field's value left or right.
func (m Model) cycleBookingField(delta int) (tea.Model, tea.Cmd) {
	switch m.booking.focus {
	case fieldOrganizer:
		m.cycleOrganizer(&m.booking, delta)
	case fieldDate:
		m.booking.form.Date = cycleValue(m.booking.dates, m.booking.form.Date, delta)
	case fieldStart:
		values := slotValues(m.booking.slots)
		m.booking.form.SetStart(cycleValue(values, m.booking.form.StartTime, delta), m.cfg.CloseHour)
	case fieldEnd:
		ends := slotValues(schedule.EndOptions(m.booking.slots, m.booking.form.StartTime))
		if len(ends) > 0 {
			m.booking.form.EndTime = cycleValue(ends, m.booking.form.EndTime, delta)
		}
	case fieldResources:
		next := m.booking.resourceIdx + delta
		if next >= 0 && next < len(m.booking.resources) {
			m.booking.resourceIdx = next
		}
	}
	return m, nil
}

// cycleOrganizer rotates through "no organizer" plus every user.
func (m Model) cycleOrganizer(s *bookingState, delta int) {
	n := len(s.users)
	if n == 0 {
		return
	}
	idx := -1
	for i, u := range s.users {
		if u.ID == s.form.OrganizerID {
			idx = i
			break
		}
	}
	// Positions run -1 (none), 0..n-1; wrap on both ends.
	idx += delta
	switch {
	case idx < -1:
		idx = n - 1
	case idx >= n:
		idx = -1
	}
	if idx == -1 {
		s.form.OrganizerID = ""
		return
	}
	s.form.OrganizerID = s.users[idx].ID
}

func (m Model) submitBooking() (tea.Model, tea.Cmd) {
	m.booking.form.Topic = m.booking.topic.Value()
	m.booking.success = false
	if err := m.booking.form.Validate(); err != nil {
		m.booking.errText = err.Error()
		return m, nil
	}
	m.booking.errText = ""
	m.booking.phase = bookingSubmitting
	return m, m.createMeeting(m.booking.form.Payload())
}

// cycleValue returns the neighbor of current inside values, clamped to the
// ends. An unknown current lands on the first value.
func cycleValue(values []string, current string, delta int) string {
	if len(values) == 0 {
		return current
	}
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i + delta
			break
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}

func slotValues(slots []schedule.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Value
	}
	return out
}

func (m Model) renderBooking() string {
	styles := m.theme.Styles()

	if m.booking.phase == bookingLoading {
		if m.booking.loadErr != nil {
			return styles.ErrorBanner.Render("שגיאה בטעינת הנתונים: " + m.booking.loadErr.Error())
		}
		spin := m.spin.View() + " " + styles.MutedText.Render("טוען טופס...")
		// Cached lists render beneath the spinner; keys stay ignored until
		// both fetches land, so the form is still disabled.
		if len(m.booking.users) == 0 && len(m.booking.resources) == 0 {
			return spin
		}
		return spin + "\n\n" + m.renderBookingForm()
	}

	return m.renderBookingForm()
}

func (m Model) renderBookingForm() string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(m.renderBookingField(fieldOrganizer, "מארגן", m.organizerLabel()))
	b.WriteString("\n")
	b.WriteString(m.renderBookingField(fieldTopic, "נושא", m.booking.topic.View()))
	b.WriteString("\n")
	b.WriteString(m.renderBookingField(fieldDate, "תאריך", schedule.FormatDate(m.booking.form.Date)))
	b.WriteString("\n")
	b.WriteString(m.renderBookingField(fieldStart, "שעת התחלה", m.booking.form.StartTime))
	b.WriteString("\n")
	b.WriteString(m.renderBookingField(fieldEnd, "שעת סיום", m.booking.form.EndTime))
	b.WriteString("\n")
	if d := schedule.Duration(m.booking.form.StartTime, m.booking.form.EndTime); d > 0 {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("משך: %d דקות", d)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderBookingResources())
	b.WriteString("\n")
	b.WriteString(m.renderSubmitButton())

	if m.booking.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorBanner.Render(m.booking.errText))
	}
	if m.booking.success {
		b.WriteString("\n")
		b.WriteString(styles.SuccessBanner.Render(booking.MsgSuccess))
	}

	return b.String()
}

func (m Model) renderBookingField(field int, label, value string) string {
	styles := m.theme.Styles()
	card := styles.Card
	if m.booking.focus == field {
		card = styles.FocusCard
	}
	return card.Render(styles.MutedText.Render(label+": ") + styles.Text.Render(value))
}

func (m Model) organizerLabel() string {
	for _, u := range m.booking.users {
		if u.ID == m.booking.form.OrganizerID {
			return u.Name
		}
	}
	return "בחר מארגן"
}

func (m Model) renderBookingResources() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("משאבים:"))
	b.WriteString("\n")
	if len(m.booking.resources) == 0 {
		b.WriteString(styles.FaintText.Render("אין משאבים זמינים"))
	}
	for i, r := range m.booking.resources {
		mark := "[ ]"
		if m.booking.form.HasResource(r.ID) {
			mark = "[x]"
		}
		line := mark + " " + resourceIcon(r.Icon) + " " + r.Name
		if r.Description != "" {
			line += "  " + r.Description
		}
		if m.booking.focus == fieldResources && i == m.booking.resourceIdx {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	card := styles.Card
	if m.booking.focus == fieldResources {
		card = styles.FocusCard
	}
	return card.Render(strings.TrimRight(b.String(), "\n"))
}

// resourceIcon maps a resource's icon tag to its display glyph. Unknown tags
// fall back to a neutral one.
func resourceIcon(icon string) string {
	switch icon {
	case backend.IconProjector:
		return "📽"
	case backend.IconMonitor:
		return "🖥"
	case backend.IconSpeaker:
		return "🔊"
	case backend.IconBoard:
		return "📋"
	case backend.IconLaptop:
		return "💻"
	case backend.IconVideo:
		return "🎥"
	default:
		return "📦"
	}
}

func (m Model) renderSubmitButton() string {
	styles := m.theme.Styles()
	label := "קבע פגישה"
	if m.booking.phase == bookingSubmitting {
		return styles.Card.Render(m.spin.View() + " " + styles.MutedText.Render("שולח..."))
	}
	if m.booking.focus == fieldSubmit {
		return styles.FocusCard.Render(styles.AccentText.Render(label))
	}
	return styles.Card.Render(styles.MutedText.Render(label))
}

type bookUsersMsg struct {
	users []backend.User
	err   error
}

type bookResourcesMsg struct {
	resources []backend.Resource
	err       error
}

type meetingCreatedMsg struct {
	meeting *backend.Meeting
	err     error
}

type successHideMsg struct{}

func (m Model) fetchBookingUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := m.client.ListUsers(m.ctx)
		if err != nil {
			m.store.SetError(err)
			return bookUsersMsg{err: err}
		}
		m.store.SetUsers(users)
		return bookUsersMsg{users: users}
	}
}

func (m Model) fetchBookingResources() tea.Cmd {
	return func() tea.Msg {
		resources, err := m.client.ListResources(m.ctx)
		if err != nil {
			m.store.SetError(err)
			return bookResourcesMsg{err: err}
		}
		m.store.SetResources(resources)
		return bookResourcesMsg{resources: resources}
	}
}

func (m Model) createMeeting(payload backend.NewMeeting) tea.Cmd {
	return func() tea.Msg {
		created, err := m.client.CreateMeeting(m.ctx, payload)
		if err != nil {
			return meetingCreatedMsg{err: err}
		}
		return meetingCreatedMsg{meeting: created}
	}
}
