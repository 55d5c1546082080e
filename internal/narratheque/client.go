package narratheque

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"narrabridge/internal/config"
	"narrabridge/internal/domain"
	"narrabridge/internal/port"
)

// StatusError reports a non-2xx response from the document service.
type StatusError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("document service error (status %d) from %s: %s", e.StatusCode, e.URL, truncate(e.Body, 500))
}

// Client implements port.DocumentClient over HTTP.
type Client struct {
	http *http.Client
}

var _ port.DocumentClient = (*Client)(nil)

// NewClient creates a Client from config. A zero timeout keeps the
// transport default of no timeout.
func NewClient(cfg *config.NarrathequeConfig) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second})
}

// NewClientWithHTTP creates a Client around an existing http.Client (for testing).
func NewClientWithHTTP(hc *http.Client) *Client {
	return &Client{http: hc}
}

// EndpointURL joins a base URL and an endpoint path.
func EndpointURL(baseURL string, path domain.EndpointPath) string {
	return baseURL + "/api/app/" + string(path)
}

// Send posts payload to the document service and returns the response body.
func (c *Client) Send(ctx context.Context, baseURL string, payload *domain.Payload) (json.RawMessage, error) {
	url := EndpointURL(baseURL, payload.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload.Body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range payload.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling document service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody), URL: url}
	}

	return normalizeBody(respBody)
}

// normalizeBody passes JSON through unchanged, wraps other text as a JSON
// string, and maps an empty body to null.
func normalizeBody(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed), nil
	}
	quoted, err := json.Marshal(strings.ToValidUTF8(string(body), "�"))
	if err != nil {
		return nil, fmt.Errorf("encoding response text: %w", err)
	}
	return quoted, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
