package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Exchanger swaps a one-time login code for an access token. Implemented by
// *ExchangeClient; swap for testing.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

var _ Exchanger = (*ExchangeClient)(nil)

// ExchangeClient talks to the authentication gatekeeper.
type ExchangeClient struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent      = "parasvg/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// NewExchangeClient builds an ExchangeClient for the given auth host.
func NewExchangeClient(host string, timeout time.Duration) (*ExchangeClient, error) {
	base, err := parseBaseURL(host)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &ExchangeClient{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Exchange trades code for an access token. The code is single-use; the
// caller discards it regardless of outcome.
func (c *ExchangeClient) Exchange(ctx context.Context, code string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("login code is empty")
	}

	rel := &url.URL{Path: "/authenticate/" + url.PathEscape(code)}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("auth exchange returned status %d", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("decode response: missing token")
	}
	return payload.Token, nil
}

func parseBaseURL(host string) (*url.URL, error) {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return nil, fmt.Errorf("auth host is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse auth host %q: %w", host, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
