package schedule

import (
	"fmt"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
)

// Slot pairs a canonical HH:MM value with its display label.
type Slot struct {
	Value string
	Label string
}

// SlotOptions produces the ordered sequence of selectable times between
// openHour and closeHour at stepMinutes granularity. The closing boundary is
// included so it can be chosen as an end time.
func SlotOptions(openHour, closeHour, stepMinutes int) []Slot {
	if stepMinutes <= 0 || closeHour < openHour {
		return nil
	}
	var slots []Slot
	for minutes := openHour * 60; minutes <= closeHour*60; minutes += stepMinutes {
		value := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
		slots = append(slots, Slot{Value: value, Label: FormatTime(value)})
	}
	return slots
}

// EndOptions filters slots down to values strictly later than start. The
// fixed-width HH:MM representation makes string comparison sufficient.
func EndOptions(slots []Slot, start string) []Slot {
	var out []Slot
	for _, s := range slots {
		if s.Value > start {
			out = append(out, s)
		}
	}
	return out
}

// Duration returns the number of minutes between two HH:MM values. Malformed
// input yields zero.
func Duration(start, end string) int {
	s, okS := parseMinutes(start)
	e, okE := parseMinutes(end)
	if !okS || !okE {
		return 0
	}
	return e - s
}

// AdvanceEnd returns the end time one hour after start, with the hour clamped
// to closeHour and the start's minutes preserved. Used when a newly chosen
// start time is at or after the current end time.
func AdvanceEnd(start string, closeHour int) string {
	m, ok := parseMinutes(start)
	if !ok {
		return start
	}
	hour := m/60 + 1
	if hour > closeHour {
		hour = closeHour
	}
	return fmt.Sprintf("%02d:%02d", hour, m%60)
}

// IsSlotAvailable reports whether the start..end range is free of overlap
// with the given meetings. A meeting touching the range boundary exactly does
// not count as a conflict.
//
// TODO: the booking submit path does not call this yet; wiring it in needs a
// decision on whether conflicts should also consider resource assignment.
func IsSlotAvailable(meetings []backend.Meeting, start, end string) bool {
	for _, m := range meetings {
		ms := FormatTime(m.StartTime)
		me := FormatTime(m.EndTime)
		if start < me && end > ms {
			return false
		}
	}
	return true
}

func parseMinutes(v string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
