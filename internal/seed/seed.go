// Package seed populates the hosted backend with the demo roster and uploads
// avatar images to the public storage bucket.
package seed

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
)

// Client is the backend surface the seed tool needs.
type Client interface {
	UserByEmail(ctx context.Context, email string) (*backend.User, error)
	CreateUser(ctx context.Context, u *backend.User) error
	ListUsers(ctx context.Context) ([]backend.User, error)
	EnsureBucket(ctx context.Context, name string, public bool, sizeLimit int64) error
	UploadObject(ctx context.Context, bucket, name, contentType string, data []byte) error
	PublicURL(bucket, name string) string
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
}

var _ Client = (*backend.Client)(nil)

const (
	avatarBucket    = "avatars"
	avatarSizeLimit = 2 * 1024 * 1024
)

// Entry is one roster record.
type Entry struct {
	Name  string
	Email string
}

// Roster returns the fixed demo user list.
func Roster() []Entry {
	return []Entry{
		{Name: "יפעת איתן", Email: "yifat@aaa-ins.co.il"},
		{Name: "אורי חמודיס", Email: "uri@aaa-ins.co.il"},
		{Name: "זיו רוט", Email: "ziv@aaa-ins.co.il"},
		{Name: "אלעד עמרם", Email: "elad@aaa-ins.co.il"},
		{Name: "רן ליבנה", Email: "ran@aaa-ins.co.il"},
		{Name: "פנינה ליבנה", Email: "pnina@aaa-ins.co.il"},
		{Name: "טל פלד חדד", Email: "tal@aaa-ins.co.il"},
		{Name: "שירות iClaim", Email: "service@aaa-ins.co.il"},
	}
}

// UpsertUsers inserts every roster entry that does not exist yet, keyed by
// unique email. Existing entries are left untouched, so repeated runs create
// nothing new. Per-entry failures are logged and skipped.
func UpsertUsers(ctx context.Context, c Client, roster []Entry) ([]backend.User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	var users []backend.User
	for _, entry := range roster {
		existing, err := c.UserByEmail(ctx, entry.Email)
		if err != nil {
			log.Printf("lookup %s failed, skipping: %v", entry.Email, err)
			continue
		}
		if existing != nil {
			log.Printf("user %s already exists", entry.Name)
			users = append(users, *existing)
			continue
		}

		u := backend.User{
			ID:    uuid.NewString(),
			Name:  entry.Name,
			Email: entry.Email,
		}
		if err := c.CreateUser(ctx, &u); err != nil {
			log.Printf("create %s failed, skipping: %v", entry.Name, err)
			continue
		}
		log.Printf("created user %s", entry.Name)
		users = append(users, u)
	}
	return users, nil
}

// UploadAvatars ensures the public avatar bucket exists, then uploads each
// user's mapped image and records its public URL on the user. Every
// per-user failure (missing mapping, read, upload, update) is logged and
// skipped; the batch never aborts.
func UploadAvatars(ctx context.Context, c Client, avatarPaths map[string]string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	if err := c.EnsureBucket(ctx, avatarBucket, true, avatarSizeLimit); err != nil {
		return fmt.Errorf("ensure %s bucket: %w", avatarBucket, err)
	}

	users, err := c.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	for _, u := range users {
		path, ok := avatarPaths[u.Email]
		if !ok {
			log.Printf("no image mapped for %s", u.Name)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("read image for %s failed, skipping: %v", u.Name, err)
			continue
		}

		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if ext == "" {
			log.Printf("image for %s has no extension, skipping", u.Name)
			continue
		}
		name := u.ID + "." + ext

		if err := c.UploadObject(ctx, avatarBucket, name, "image/"+ext, data); err != nil {
			log.Printf("upload avatar for %s failed, skipping: %v", u.Name, err)
			continue
		}

		publicURL := c.PublicURL(avatarBucket, name)
		if err := c.UpdateAvatarURL(ctx, u.ID, publicURL); err != nil {
			log.Printf("update avatar url for %s failed, skipping: %v", u.Name, err)
			continue
		}
		log.Printf("updated avatar for %s: %s", u.Name, publicURL)
	}

	return nil
}

// LoadAvatarMap reads the email -> local image path fixture. An empty path
// yields an empty map, which makes the upload step a no-op.
func LoadAvatarMap(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read avatar map: %w", err)
	}
	var raw struct {
		Avatars map[string]string `toml:"avatars"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse avatar map: %w", err)
	}
	if raw.Avatars == nil {
		raw.Avatars = map[string]string{}
	}
	return raw.Avatars, nil
}
