package ui

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
)

// avatarBadge renders a user's avatar as a colored initial. Terminals cannot
// show the uploaded image, so the initial is always used; the color sticks to
// the name so the same user always gets the same badge.
func (m Model) avatarBadge(u backend.User) string {
	initial := avatarInitial(u.Name)
	color := m.theme.AvatarColors[avatarColorIndex(u.Name, len(m.theme.AvatarColors))]
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Render(" " + initial + " ")
}

// avatarInitial returns the first rune of the display name, or a neutral
// placeholder when the name is empty.
func avatarInitial(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	runes := []rune(trimmed)
	return string(runes[0])
}

func avatarColorIndex(name string, palette int) int {
	if palette <= 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % uint32(palette))
}
