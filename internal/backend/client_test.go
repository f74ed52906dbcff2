package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_NormalizesAndDefaultsScheme(t *testing.T) {
	u, err := parseBaseURL("proj.supabase.co")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatalf("parseBaseURL empty returned nil error, want error")
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient("proj.supabase.co", " "); err == nil {
		t.Fatalf("NewClient returned nil error, want empty key error")
	}
}

func TestClient_FetchesRecordsAndEncodesFilters(t *testing.T) {
	t.Parallel()

	var gotMeetingsQuery url.Values
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/rest/v1/users" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]User{{ID: "u1", Name: "זיו רוט", Email: "ziv@aaa-ins.co.il"}})
		case r.URL.Path == "/rest/v1/resources":
			_ = json.NewEncoder(w).Encode([]Resource{{ID: "r1", Name: "מקרן", Icon: IconProjector}})
		case r.URL.Path == "/rest/v1/meetings" && r.Method == http.MethodGet:
			gotMeetingsQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode([]Meeting{{
				ID: "m1", Topic: "סטטוס שבועי", Date: "2026-08-30",
				StartTime: "09:00:00", EndTime: "10:00:00",
				Organizer: &User{ID: "u1", Name: "זיו רוט"},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "service-key")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	users, err := c.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 1 || users[0].Email != "ziv@aaa-ins.co.il" {
		t.Fatalf("ListUsers = %#v, want 1 user", users)
	}
	if gotHeaders.Get("apikey") != "service-key" {
		t.Fatalf("apikey header = %q, want service-key", gotHeaders.Get("apikey"))
	}
	if got := gotHeaders.Get("Authorization"); got != "Bearer service-key" {
		t.Fatalf("Authorization = %q, want bearer key", got)
	}
	if ua := gotHeaders.Get("User-Agent"); !strings.HasPrefix(ua, "roombook/") {
		t.Fatalf("User-Agent = %q, want roombook/*", ua)
	}

	resources, err := c.ListResources(ctx)
	if err != nil {
		t.Fatalf("ListResources returned error: %v", err)
	}
	if len(resources) != 1 || resources[0].Icon != IconProjector {
		t.Fatalf("ListResources = %#v, want projector", resources)
	}

	meetings, err := c.MeetingsByDate(ctx, "2026-08-30")
	if err != nil {
		t.Fatalf("MeetingsByDate returned error: %v", err)
	}
	if len(meetings) != 1 || meetings[0].Organizer == nil || meetings[0].Organizer.ID != "u1" {
		t.Fatalf("MeetingsByDate = %#v, want organizer joined", meetings)
	}
	if gotMeetingsQuery.Get("date") != "eq.2026-08-30" {
		t.Fatalf("date filter = %q, want eq.2026-08-30", gotMeetingsQuery.Get("date"))
	}
	if gotMeetingsQuery.Get("select") != organizerJoin {
		t.Fatalf("select = %q, want organizer join", gotMeetingsQuery.Get("select"))
	}
	if gotMeetingsQuery.Get("order") != "start_time.asc" {
		t.Fatalf("order = %q, want start_time.asc", gotMeetingsQuery.Get("order"))
	}

	all, err := c.ListMeetings(ctx)
	if err != nil {
		t.Fatalf("ListMeetings returned error: %v", err)
	}
	if gotMeetingsQuery.Get("order") != "date.asc,start_time.asc" {
		t.Fatalf("order = %q, want date then start", gotMeetingsQuery.Get("order"))
	}
	if len(all) != 1 {
		t.Fatalf("ListMeetings = %#v, want 1 meeting", all)
	}
}

func TestClient_MeetingsByDateRequiresDate(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.MeetingsByDate(context.Background(), " "); err == nil {
		t.Fatalf("MeetingsByDate returned nil error, want error")
	}
}

func TestClient_CreateMeeting(t *testing.T) {
	t.Parallel()

	var gotBody NewMeeting
	var gotPrefer string
	empty := false

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/meetings" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		gotPrefer = r.Header.Get("Prefer")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		if empty {
			_, _ = w.Write([]byte("[]"))
			return
		}
		_ = json.NewEncoder(w).Encode([]Meeting{{ID: "m9", Topic: gotBody.Topic}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	created, err := c.CreateMeeting(context.Background(), NewMeeting{
		OrganizerID: "u1",
		Topic:       "תכנון רבעוני",
		Date:        "2026-09-01",
		StartTime:   "09:00",
		EndTime:     "10:30",
	})
	if err != nil {
		t.Fatalf("CreateMeeting returned error: %v", err)
	}
	if created.ID != "m9" {
		t.Fatalf("created.ID = %q, want m9", created.ID)
	}
	if gotPrefer != "return=representation" {
		t.Fatalf("Prefer = %q, want return=representation", gotPrefer)
	}
	if gotBody.OrganizerID != "u1" || gotBody.StartTime != "09:00" || gotBody.EndTime != "10:30" {
		t.Fatalf("payload = %#v, want organizer/start/end carried", gotBody)
	}

	// An empty representation counts as a failed creation.
	empty = true
	if _, err := c.CreateMeeting(context.Background(), NewMeeting{}); err == nil {
		t.Fatalf("CreateMeeting returned nil error, want no-representation error")
	}
}

func TestClient_UserByEmailAndAvatarUpdate(t *testing.T) {
	t.Parallel()

	var gotPatchQuery url.Values
	var gotPatchBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("email") == "eq.ziv@aaa-ins.co.il":
			_ = json.NewEncoder(w).Encode([]User{{ID: "u1", Email: "ziv@aaa-ins.co.il"}})
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte("[]"))
		case r.Method == http.MethodPatch:
			gotPatchQuery = r.URL.Query()
			_ = json.NewDecoder(r.Body).Decode(&gotPatchBody)
			_, _ = w.Write([]byte("[]"))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	u, err := c.UserByEmail(context.Background(), "ziv@aaa-ins.co.il")
	if err != nil {
		t.Fatalf("UserByEmail returned error: %v", err)
	}
	if u == nil || u.ID != "u1" {
		t.Fatalf("UserByEmail = %#v, want u1", u)
	}

	missing, err := c.UserByEmail(context.Background(), "nobody@aaa-ins.co.il")
	if err != nil {
		t.Fatalf("UserByEmail returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("UserByEmail missing = %#v, want nil", missing)
	}

	if err := c.UpdateAvatarURL(context.Background(), "u1", "https://x/avatars/u1.jpg"); err != nil {
		t.Fatalf("UpdateAvatarURL returned error: %v", err)
	}
	if gotPatchQuery.Get("id") != "eq.u1" {
		t.Fatalf("patch filter = %q, want eq.u1", gotPatchQuery.Get("id"))
	}
	if gotPatchBody["avatar_url"] != "https://x/avatars/u1.jpg" {
		t.Fatalf("patch body = %#v, want avatar_url set", gotPatchBody)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/users":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/rest/v1/resources":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListUsers error = %v, want decode response error", err)
	}

	_, err = c.ListResources(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("ListResources error = %v, want status 500 error", err)
	}
}
