package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
)

func TestStore_SettersAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.SetUsers([]backend.User{{ID: "u1"}, {ID: "u2"}})
	s.SetMeetings("2026-08-29", []backend.Meeting{{ID: "m1"}})

	snap := s.Snapshot()
	if len(snap.Users) != 2 || snap.Users[0].ID != "u1" {
		t.Fatalf("snapshot users = %#v, want 2 users", snap.Users)
	}
	if snap.MeetingsDate != "2026-08-29" || len(snap.Meetings) != 1 {
		t.Fatalf("snapshot meetings = %#v for %q, want 1 meeting", snap.Meetings, snap.MeetingsDate)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Users[0].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Users[0].ID != "u1" {
		t.Fatalf("Snapshot should clone users; got %q want u1", snap2.Users[0].ID)
	}
}

func TestStore_ErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.SetUsers([]backend.User{{ID: "u1"}})
	origErr := errors.New("boom")
	s.SetError(origErr)

	snap := s.Snapshot()
	if len(snap.Users) != 1 || snap.Users[0].ID != "u1" {
		t.Fatalf("users changed on error: %#v", snap.Users)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}

	// A successful update clears the error.
	s.SetResources([]backend.Resource{{ID: "r1"}})
	if snap := s.Snapshot(); snap.LastError != nil {
		t.Fatalf("LastError after update = %v, want nil", snap.LastError)
	}
}
