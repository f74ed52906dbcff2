package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
)

// Calendar providers a user can link. Nothing is sent anywhere; the connect
// flow only simulates the latency of a real OAuth exchange.
const (
	providerGoogle  = "google"
	providerOutlook = "outlook"
)

const (
	connectDelay    = 1500 * time.Millisecond
	saveDelay       = time.Second
	savedBannerHide = 3 * time.Second
)

type integrationsState struct {
	loading bool
	err     error
	users   []backend.User

	selected int

	connected  map[string]bool
	connecting map[string]bool
	sync       map[string]bool

	saving bool
	saved  bool
}

func (m Model) enterIntegrations() (tea.Model, tea.Cmd) {
	m.view = ViewIntegrations
	m.integrations = integrationsState{
		loading:    true,
		connected:  make(map[string]bool),
		connecting: make(map[string]bool),
		sync:       make(map[string]bool),
	}
	return m, m.fetchIntegrationUsers()
}

func providerKey(userID, provider string) string {
	return userID + "/" + provider
}

func (m Model) updateIntegrations(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case intUsersMsg:
		m.integrations.loading = false
		if msg.err != nil {
			m.integrations.err = msg.err
			return m, nil
		}
		m.integrations.users = msg.users
		// Two-way sync defaults on; it only takes effect once a provider
		// is connected.
		for _, u := range msg.users {
			m.integrations.sync[u.ID] = true
		}
		return m, nil

	case intConnectedMsg:
		k := providerKey(msg.userID, msg.provider)
		delete(m.integrations.connecting, k)
		m.integrations.connected[k] = true
		return m, nil

	case intSavedMsg:
		m.integrations.saving = false
		m.integrations.saved = true
		return m, tea.Tick(savedBannerHide, func(time.Time) tea.Msg {
			return intBannerHideMsg{}
		})

	case intBannerHideMsg:
		m.integrations.saved = false
		return m, nil
	}
	return m, nil
}

func (m Model) handleIntegrationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.integrations
	if s.loading || s.err != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if s.selected > 0 {
			s.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if s.selected < len(s.users)-1 {
			s.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.ConnectGoogle):
		return m.toggleProvider(providerGoogle)

	case key.Matches(msg, m.keys.ConnectOutlook):
		return m.toggleProvider(providerOutlook)

	case key.Matches(msg, m.keys.ToggleSync):
		u, ok := m.selectedIntegrationUser()
		if !ok {
			return m, nil
		}
		// The toggle is inert until at least one provider is linked.
		if !s.connected[providerKey(u.ID, providerGoogle)] && !s.connected[providerKey(u.ID, providerOutlook)] {
			return m, nil
		}
		s.sync[u.ID] = !s.sync[u.ID]
		return m, nil

	case key.Matches(msg, m.keys.SaveSettings):
		if s.saving {
			return m, nil
		}
		s.saving = true
		s.saved = false
		return m, tea.Tick(saveDelay, func(time.Time) tea.Msg {
			return intSavedMsg{}
		})
	}
	return m, nil
}

// toggleProvider starts a simulated connect, or disconnects immediately.
func (m Model) toggleProvider(provider string) (tea.Model, tea.Cmd) {
	u, ok := m.selectedIntegrationUser()
	if !ok {
		return m, nil
	}
	k := providerKey(u.ID, provider)
	s := &m.integrations

	if s.connecting[k] {
		return m, nil
	}
	if s.connected[k] {
		delete(s.connected, k)
		return m, nil
	}

	s.connecting[k] = true
	userID := u.ID
	return m, tea.Tick(connectDelay, func(time.Time) tea.Msg {
		return intConnectedMsg{userID: userID, provider: provider}
	})
}

func (m Model) selectedIntegrationUser() (backend.User, bool) {
	s := m.integrations
	if s.selected < 0 || s.selected >= len(s.users) {
		return backend.User{}, false
	}
	return s.users[s.selected], true
}

func (m Model) renderIntegrations() string {
	styles := m.theme.Styles()
	s := m.integrations

	if s.loading {
		return m.spin.View() + " " + styles.MutedText.Render("טוען משתמשים...")
	}
	if s.err != nil {
		return styles.ErrorBanner.Render("שגיאה בטעינת המשתמשים: " + s.err.Error())
	}
	if len(s.users) == 0 {
		return styles.MutedText.Render("אין משתמשים")
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("חיבורי יומן"))
	b.WriteString("\n\n")

	for i, u := range s.users {
		var row strings.Builder
		row.WriteString(m.avatarBadge(u))
		row.WriteString(" ")
		row.WriteString(u.Name)
		row.WriteString("  ")
		row.WriteString(m.providerStatus(u.ID, providerGoogle, "Google"))
		row.WriteString("  ")
		row.WriteString(m.providerStatus(u.ID, providerOutlook, "Outlook"))
		row.WriteString("  ")
		if s.sync[u.ID] {
			row.WriteString(styles.SuccessText.Render("סנכרון: פעיל"))
		} else {
			row.WriteString(styles.MutedText.Render("סנכרון: כבוי"))
		}

		if i == s.selected {
			b.WriteString(styles.FocusCard.Render(row.String()))
		} else {
			b.WriteString(styles.Card.Render(row.String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.saving:
		b.WriteString(m.spin.View() + " " + styles.MutedText.Render("שומר הגדרות..."))
	case s.saved:
		b.WriteString(styles.SuccessBanner.Render("ההגדרות נשמרו בהצלחה"))
	default:
		b.WriteString(styles.FaintText.Render("g/o חיבור  s סנכרון  S שמירה"))
	}

	return b.String()
}

func (m Model) providerStatus(userID, provider, label string) string {
	styles := m.theme.Styles()
	k := providerKey(userID, provider)
	switch {
	case m.integrations.connecting[k]:
		return m.spin.View() + " " + styles.MutedText.Render(label)
	case m.integrations.connected[k]:
		return styles.SuccessText.Render(label + " ✓")
	default:
		return styles.FaintText.Render(label + " ✗")
	}
}

type intUsersMsg struct {
	users []backend.User
	err   error
}

type intConnectedMsg struct {
	userID   string
	provider string
}

type intSavedMsg struct{}

type intBannerHideMsg struct{}

func (m Model) fetchIntegrationUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := m.client.ListUsers(m.ctx)
		if err != nil {
			m.store.SetError(err)
			return intUsersMsg{err: err}
		}
		m.store.SetUsers(users)
		return intUsersMsg{users: users}
	}
}
