package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
)

// Snapshot represents the latest fetched data available to the views.
type Snapshot struct {
	Users        []backend.User
	Resources    []backend.Resource
	Meetings     []backend.Meeting // meetings for MeetingsDate
	MeetingsDate string
	AllMeetings  []backend.Meeting
	LastUpdated  time.Time
	LastError    error
}

// Store coordinates concurrent updates to the snapshot. Views write fetch
// results through the setters and render from Snapshot copies, so returning
// to a view shows the previous data while its refetch is in flight.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetUsers replaces the user directory.
func (s *Store) SetUsers(users []backend.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Users = cloneSlice(users)
	s.touch()
}

// SetResources replaces the resource directory.
func (s *Store) SetResources(resources []backend.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Resources = cloneSlice(resources)
	s.touch()
}

// SetMeetings replaces the per-date meeting list.
func (s *Store) SetMeetings(date string, meetings []backend.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Meetings = cloneSlice(meetings)
	s.snapshot.MeetingsDate = date
	s.touch()
}

// SetAllMeetings replaces the full meeting list used by the dashboard.
func (s *Store) SetAllMeetings(meetings []backend.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.AllMeetings = cloneSlice(meetings)
	s.touch()
}

// SetError records a fetch failure. Previously fetched data is kept.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Users = cloneSlice(s.snapshot.Users)
	snap.Resources = cloneSlice(s.snapshot.Resources)
	snap.Meetings = cloneSlice(s.snapshot.Meetings)
	snap.AllMeetings = cloneSlice(s.snapshot.AllMeetings)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// touch marks a successful update. Callers hold the write lock.
func (s *Store) touch() {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
