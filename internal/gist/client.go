package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SnapshotClient defines the two remote snapshot operations. It is
// implemented by *Client and can be swapped for testing.
type SnapshotClient interface {
	CreateOrUpdate(ctx context.Context, req SaveRequest) (string, error)
	Fetch(ctx context.Context, id, resourceName string) (string, error)
}

// Ensure Client implements SnapshotClient at compile time.
var _ SnapshotClient = (*Client)(nil)

// Client talks to a gist-style snapshot HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent      = "parasvg/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// NewClient builds a Client for the given gist host.
func NewClient(host string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(host)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SaveRequest carries everything needed to create or update a snapshot.
// RemoteID is empty on first save; subsequent saves update in place.
type SaveRequest struct {
	RemoteID     string
	ResourceName string
	Content      string
	Token        string
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
}

type gistPayload struct {
	ID    string              `json:"id"`
	Files map[string]gistFile `json:"files"`
}

// CreateOrUpdate persists the snapshot content under the request's resource
// name and returns the remote id. Preconditions are checked before any
// network I/O: ErrNoContent when the content is empty, ErrNoToken when the
// token is empty.
func (c *Client) CreateOrUpdate(ctx context.Context, req SaveRequest) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if req.Content == "" {
		return "", ErrNoContent
	}
	if req.Token == "" {
		return "", ErrNoToken
	}

	body, err := json.Marshal(map[string]any{
		"files": map[string]any{
			req.ResourceName: map[string]string{"content": req.Content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	method := http.MethodPost
	path := "/gists"
	if req.RemoteID != "" {
		method = http.MethodPatch
		path = "/gists/" + req.RemoteID
	}
	rel := &url.URL{
		Path:     path,
		RawQuery: url.Values{"access_token": []string{req.Token}}.Encode(),
	}

	var payload gistPayload
	if err := c.do(ctx, method, rel, body, &payload); err != nil {
		return "", err
	}
	if payload.ID == "" {
		return "", fmt.Errorf("decode response: missing gist id")
	}
	return payload.ID, nil
}

// Fetch retrieves the snapshot content stored under resourceName in the
// gist with the given id. A 404 maps to NotFoundError, a truncated file to
// ErrTruncated.
func (c *Client) Fetch(ctx context.Context, id, resourceName string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("gist id required")
	}

	rel := &url.URL{Path: "/gists/" + id}
	var payload gistPayload
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		var status *StatusError
		if errors.As(err, &status) && status.Code == http.StatusNotFound {
			return "", &NotFoundError{ID: id}
		}
		return "", err
	}

	file, ok := payload.Files[resourceName]
	if !ok {
		return "", fmt.Errorf("gist %q has no file %q", id, resourceName)
	}
	if file.Truncated {
		return "", ErrTruncated
	}
	return file.Content, nil
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
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

func parseBaseURL(host string) (*url.URL, error) {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return nil, fmt.Errorf("gist host is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse gist host %q: %w", host, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
