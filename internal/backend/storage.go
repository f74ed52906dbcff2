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
)

// bucketInfo mirrors the storage bucket listing payload.
type bucketInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Public bool   `json:"public"`
}

// EnsureBucket creates the named public bucket when it does not exist yet.
// sizeLimit is the per-object byte limit applied at creation time.
func (c *Client) EnsureBucket(ctx context.Context, name string, public bool, sizeLimit int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var buckets []bucketInfo
	if err := c.storage(ctx, http.MethodGet, "/storage/v1/bucket", "", nil, &buckets); err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	for _, b := range buckets {
		if b.Name == name {
			return nil
		}
	}

	payload := map[string]any{
		"id":              name,
		"name":            name,
		"public":          public,
		"file_size_limit": sizeLimit,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal bucket payload: %w", err)
	}
	if err := c.storage(ctx, http.MethodPost, "/storage/v1/bucket", "application/json", bytes.NewReader(data), nil); err != nil {
		return fmt.Errorf("create bucket %s: %w", name, err)
	}
	return nil
}

// UploadObject uploads raw object bytes under bucket/name, replacing any
// existing object with the same name.
func (c *Client) UploadObject(ctx context.Context, bucket, name, contentType string, data []byte) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	path := "/storage/v1/object/" + bucket + "/" + name
	if err := c.storage(ctx, http.MethodPost, path, contentType, bytes.NewReader(data), nil); err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, name, err)
	}
	return nil
}

// PublicURL returns the public download URL for an object in a public bucket.
func (c *Client) PublicURL(bucket, name string) string {
	rel := &url.URL{Path: "/storage/v1/object/public/" + bucket + "/" + name}
	return c.baseURL.ResolveReference(rel).String()
}

func (c *Client) storage(ctx context.Context, method, path, contentType string, body io.Reader, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method == http.MethodPost && strings.HasPrefix(path, "/storage/v1/object/") {
		req.Header.Set("x-upsert", "true")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(detail)))
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
