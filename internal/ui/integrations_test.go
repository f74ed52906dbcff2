package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
)

func loadIntegrations(t *testing.T, m Model) Model {
	t.Helper()
	model, _ := m.enterIntegrations()
	m = model.(Model)
	model, _ = m.Update(m.fetchIntegrationUsers()())
	m = model.(Model)
	if m.integrations.loading {
		t.Fatalf("still loading after users response")
	}
	return m
}

func TestIntegrationsConnectIsDelayed(t *testing.T) {
	fixToday(t, "2026-03-02")
	m := newTestModel(t, &fakeDirectory{users: []backend.User{{ID: "u1", Name: "יפעת"}}})
	m = loadIntegrations(t, m)

	model, cmd := m.toggleProvider(providerGoogle)
	m = model.(Model)

	k := providerKey("u1", providerGoogle)
	if !m.integrations.connecting[k] {
		t.Fatalf("connect did not enter the connecting state")
	}
	if m.integrations.connected[k] {
		t.Fatalf("connected before the delay elapsed")
	}
	if cmd == nil {
		t.Fatalf("connect issued no timer")
	}

	model, _ = m.Update(intConnectedMsg{userID: "u1", provider: providerGoogle})
	m = model.(Model)
	if !m.integrations.connected[k] || m.integrations.connecting[k] {
		t.Fatalf("connect did not complete: %+v", m.integrations)
	}
}

func TestIntegrationsDisconnectIsImmediate(t *testing.T) {
	fixToday(t, "2026-03-02")
	m := newTestModel(t, &fakeDirectory{users: []backend.User{{ID: "u1", Name: "יפעת"}}})
	m = loadIntegrations(t, m)
	k := providerKey("u1", providerOutlook)
	m.integrations.connected[k] = true

	model, cmd := m.toggleProvider(providerOutlook)
	m = model.(Model)
	if m.integrations.connected[k] {
		t.Fatalf("still connected after disconnect")
	}
	if cmd != nil {
		t.Fatalf("disconnect issued a timer")
	}
}

func TestIntegrationsSyncRequiresConnection(t *testing.T) {
	fixToday(t, "2026-03-02")
	m := newTestModel(t, &fakeDirectory{users: []backend.User{{ID: "u1", Name: "יפעת"}}})
	m = loadIntegrations(t, m)

	if !m.integrations.sync["u1"] {
		t.Fatalf("sync should default on")
	}

	syncKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}

	model, _ := m.handleIntegrationsKey(syncKey)
	m = model.(Model)
	if !m.integrations.sync["u1"] {
		t.Fatalf("sync toggled while nothing is connected")
	}

	m.integrations.connected[providerKey("u1", providerGoogle)] = true
	model, _ = m.handleIntegrationsKey(syncKey)
	m = model.(Model)
	if m.integrations.sync["u1"] {
		t.Fatalf("sync did not toggle once connected")
	}
}

func TestIntegrationsSaveAlwaysSucceeds(t *testing.T) {
	fixToday(t, "2026-03-02")
	m := newTestModel(t, &fakeDirectory{users: []backend.User{{ID: "u1", Name: "יפעת"}}})
	m = loadIntegrations(t, m)

	saveKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}}
	model, cmd := m.handleIntegrationsKey(saveKey)
	m = model.(Model)
	if !m.integrations.saving || cmd == nil {
		t.Fatalf("save did not start")
	}

	model, cmd = m.Update(intSavedMsg{})
	m = model.(Model)
	if m.integrations.saving || !m.integrations.saved {
		t.Fatalf("save did not complete: %+v", m.integrations)
	}
	if cmd == nil {
		t.Fatalf("saved banner has no hide timer")
	}

	model, _ = m.Update(intBannerHideMsg{})
	m = model.(Model)
	if m.integrations.saved {
		t.Fatalf("saved banner still visible after hide message")
	}
}
