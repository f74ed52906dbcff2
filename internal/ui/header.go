package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var viewTabs = []struct {
	view  View
	label string
}{
	{ViewDashboard, "1 דשבורד"},
	{ViewCalendar, "2 לוח פגישות"},
	{ViewBooking, "3 הזמנת פגישה"},
	{ViewIntegrations, "4 אינטגרציות"},
}

// renderHeader draws the top bar: logo on one side, view tabs on the other.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	logo := styles.Logo.Render("◇ roombook")

	var tabs []string
	for _, t := range viewTabs {
		if t.view == m.view {
			tabs = append(tabs, styles.Selected.Render(" "+t.label+" "))
			continue
		}
		tabs = append(tabs, styles.MutedText.Render(" "+t.label+" "))
	}
	right := strings.Join(tabs, " ")

	gap := m.width - lipgloss.Width(logo) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return styles.Header.Width(m.width).Render(logo + strings.Repeat(" ", gap) + right)
}
