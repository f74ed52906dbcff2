// Package booking holds the booking form state and its validation rules,
// kept free of UI concerns so the submit contract is testable on its own.
package booking

import (
	"errors"
	"strings"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/schedule"
)

// User-facing messages for the booking flow.
const (
	MsgRequired     = "יש למלא את כל השדות החובה"
	MsgTimeOrder    = "שעת הסיום חייבת להיות מאוחרת משעת ההתחלה"
	MsgCreateFailed = "שגיאה ביצירת הפגישה"
	MsgSuccess      = "הפגישה נוצרה בהצלחה! מייל אישור נשלח למארגן."
)

// Validation errors carry the exact message shown to the user.
var (
	ErrRequired  = errors.New(MsgRequired)
	ErrTimeOrder = errors.New(MsgTimeOrder)
)

// Default time range for a fresh form.
const (
	DefaultStart = "09:00"
	DefaultEnd   = "10:00"
)

// Form is the transient booking form state. Selected resources live here and
// nowhere else; they are never part of the create payload.
type Form struct {
	OrganizerID string
	Topic       string
	Date        string
	StartTime   string
	EndTime     string
	Resources   []string
}

// New returns a form with the standard defaults: today's date, 09:00-10:00,
// no organizer, no resources.
func New(today string) Form {
	return Form{
		Date:      today,
		StartTime: DefaultStart,
		EndTime:   DefaultEnd,
	}
}

// Validate applies the submit-time rules. Required fields are checked before
// the time-ordering rule; both reject without any network call.
func (f Form) Validate() error {
	if f.OrganizerID == "" || strings.TrimSpace(f.Topic) == "" || f.Date == "" ||
		f.StartTime == "" || f.EndTime == "" {
		return ErrRequired
	}
	// Fixed-width HH:MM makes lexicographic comparison correct here.
	if f.StartTime >= f.EndTime {
		return ErrTimeOrder
	}
	return nil
}

// SetStart records a new start time. When the new start is at or after the
// current end, the end auto-advances one hour (hour clamped to closeHour,
// minutes preserved from the new start).
func (f *Form) SetStart(v string, closeHour int) {
	f.StartTime = v
	if v >= f.EndTime {
		f.EndTime = schedule.AdvanceEnd(v, closeHour)
	}
}

// ToggleResource flips a resource in or out of the selection.
func (f *Form) ToggleResource(id string) {
	for i, r := range f.Resources {
		if r == id {
			f.Resources = append(f.Resources[:i], f.Resources[i+1:]...)
			return
		}
	}
	f.Resources = append(f.Resources, id)
}

// HasResource reports whether a resource is currently selected.
func (f Form) HasResource(id string) bool {
	for _, r := range f.Resources {
		if r == id {
			return true
		}
	}
	return false
}

// Reset restores the defaults after a successful submission.
func (f *Form) Reset(today string) {
	*f = New(today)
}

// Payload builds the create-meeting request. Resource selection is
// intentionally excluded; attachment is an unfinished interface point and the
// selection is only logged by the caller.
func (f Form) Payload() backend.NewMeeting {
	return backend.NewMeeting{
		OrganizerID: f.OrganizerID,
		Topic:       f.Topic,
		Date:        f.Date,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
	}
}
