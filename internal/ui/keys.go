package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// View switching
	ViewDashboard    key.Binding
	ViewCalendar     key.Binding
	ViewBooking      key.Binding
	ViewIntegrations key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Toggle  key.Binding
	Confirm key.Binding

	// Integrations
	ConnectGoogle  key.Binding
	ConnectOutlook key.Binding
	ToggleSync     key.Binding
	SaveSettings   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "יציאה"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "עזרה"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "ערכת צבעים"),
		),
		ViewDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "דשבורד"),
		),
		ViewCalendar: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "לוח פגישות"),
		),
		ViewBooking: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "הזמנת פגישה"),
		),
		ViewIntegrations: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "אינטגרציות"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "למעלה"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "למטה"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "ערך קודם"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "ערך הבא"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "בחירה"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "אישור"),
		),
		ConnectGoogle: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Google חיבור/ניתוק"),
		),
		ConnectOutlook: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Outlook חיבור/ניתוק"),
		),
		ToggleSync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "סנכרון דו-כיווני"),
		),
		SaveSettings: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "שמור הגדרות"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.ViewDashboard, k.ViewCalendar, k.ViewBooking, k.ViewIntegrations,
		k.Help, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewDashboard, k.ViewCalendar, k.ViewBooking, k.ViewIntegrations},
		{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Confirm},
		{k.ConnectGoogle, k.ConnectOutlook, k.ToggleSync, k.SaveSettings},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
