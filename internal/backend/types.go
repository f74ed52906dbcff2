package backend

// User is a bookable organizer record. Users are created only by the seed
// tool; the booking flow never mutates them.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Resource is a bookable asset (projector, monitor, ...). Read-only from the
// application's perspective.
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Resource icon tags known to the UI. Anything else renders the default glyph.
const (
	IconProjector = "projector"
	IconMonitor   = "monitor"
	IconSpeaker   = "speaker"
	IconBoard     = "board"
	IconLaptop    = "laptop"
	IconVideo     = "video"
)

// Meeting is a booked meeting, optionally joined with its organizer.
type Meeting struct {
	ID          string `json:"id"`
	OrganizerID string `json:"organizer_id"`
	Topic       string `json:"topic"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Organizer   *User  `json:"organizer"`
}

// NewMeeting is the create payload. Resource IDs selected during booking are
// deliberately not part of it; attachment is an unfinished interface point.
type NewMeeting struct {
	OrganizerID string `json:"organizer_id"`
	Topic       string `json:"topic"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}
