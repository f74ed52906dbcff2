package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Directory defines the read surface the views consume. Implemented by
// *Client; fakes implement it in tests.
type Directory interface {
	ListUsers(ctx context.Context) ([]User, error)
	ListResources(ctx context.Context) ([]Resource, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	MeetingsByDate(ctx context.Context, date string) ([]Meeting, error)
	CreateMeeting(ctx context.Context, m NewMeeting) (*Meeting, error)
}

// Ensure Client implements Directory at compile time.
var _ Directory = (*Client)(nil)

// Client talks to the hosted database's REST surface.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "roombook/0.1"
	requestTimeout   = 10 * time.Second

	organizerJoin = "*,organizer:users(*)"
)

// NewClient builds a Client for the given project URL and service key.
func NewClient(rawURL, apiKey string) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("backend api key is empty")
	}
	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListUsers retrieves all users ordered by display name.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("select", "*")
	values.Set("order", "name.asc")
	var users []User
	if err := c.rest(ctx, http.MethodGet, "/rest/v1/users", values, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListResources retrieves all bookable resources ordered by name.
func (c *Client) ListResources(ctx context.Context) ([]Resource, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("select", "*")
	values.Set("order", "name.asc")
	var resources []Resource
	if err := c.rest(ctx, http.MethodGet, "/rest/v1/resources", values, nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// ListMeetings retrieves all meetings joined with their organizer, ordered by
// date then start time.
func (c *Client) ListMeetings(ctx context.Context) ([]Meeting, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("select", organizerJoin)
	values.Set("order", "date.asc,start_time.asc")
	var meetings []Meeting
	if err := c.rest(ctx, http.MethodGet, "/rest/v1/meetings", values, nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// MeetingsByDate retrieves meetings for one calendar date (YYYY-MM-DD),
// joined with their organizer and ordered by start time.
func (c *Client) MeetingsByDate(ctx context.Context, date string) ([]Meeting, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("date is required")
	}
	values := url.Values{}
	values.Set("date", "eq."+date)
	values.Set("select", organizerJoin)
	values.Set("order", "start_time.asc")
	var meetings []Meeting
	if err := c.rest(ctx, http.MethodGet, "/rest/v1/meetings", values, nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// CreateMeeting inserts one meeting and returns the stored representation.
func (c *Client) CreateMeeting(ctx context.Context, m NewMeeting) (*Meeting, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var rows []Meeting
	if err := c.rest(ctx, http.MethodPost, "/rest/v1/meetings", nil, m, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create meeting: backend returned no representation")
	}
	return &rows[0], nil
}

// UserByEmail looks a user up by unique email. Returns (nil, nil) when no
// such user exists.
func (c *Client) UserByEmail(ctx context.Context, email string) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("email", "eq."+email)
	values.Set("select", "*")
	var rows []User
	if err := c.rest(ctx, http.MethodGet, "/rest/v1/users", values, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// CreateUser inserts one user record.
func (c *Client) CreateUser(ctx context.Context, u *User) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var rows []User
	if err := c.rest(ctx, http.MethodPost, "/rest/v1/users", nil, u, &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*u = rows[0]
	}
	return nil
}

// UpdateAvatarURL sets a user's avatar URL.
func (c *Client) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("id", "eq."+userID)
	payload := map[string]string{"avatar_url": avatarURL}
	return c.rest(ctx, http.MethodPatch, "/rest/v1/users", values, payload, nil)
}

func (c *Client) rest(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	rel := &url.URL{Path: path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("backend url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", rawURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
