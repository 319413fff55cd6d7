package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the edutrack API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// do sends body as JSON when non-nil and decodes a response with wantStatus
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: marshal: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequest, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: read body: %w", ErrRequest, method, path, err)
	}
	if resp.StatusCode != wantStatus {
		var e errorResponse
		if json.Unmarshal(data, &e) == nil && e.Code != "" {
			return fmt.Errorf("%w: %s %s: status %d: %s: %s", ErrRequest, method, path, resp.StatusCode, e.Code, e.Message)
		}
		return fmt.Errorf("%w: %s %s: status %d", ErrRequest, method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %s %s: decode: %w", ErrRequest, method, path, err)
		}
	}
	return nil
}

// Health checks the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK)
}

// Login signs in.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/login", body, nil, http.StatusOK)
}

// Catalog fetches the subject catalog.
func (c *Client) Catalog(ctx context.Context) ([]subject, error) {
	var out []subject
	if err := c.do(ctx, http.MethodGet, "/catalog", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary fetches the dashboard summary.
func (c *Client) Summary(ctx context.Context) (Summary, error) {
	var out struct {
		Summary Summary `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &out, http.StatusOK); err != nil {
		return Summary{}, err
	}
	return out.Summary, nil
}

// Record drives one session through the wizard and returns the stored
// entry id.
func (c *Client) Record(ctx context.Context, s Session) (string, error) {
	var d draft
	if err := c.do(ctx, http.MethodPost, "/wizard", nil, &d, http.StatusCreated); err != nil {
		return "", err
	}
	base := "/wizard/" + d.ID + "/"
	counts := map[string]int{"correct": s.Correct, "wrong": s.Wrong}
	steps := []struct {
		action string
		body   any
	}{
		{"date", map[string]string{"date": s.Date}},
		{"subject", map[string]string{"subject": s.Subject}},
		{"topic", map[string]string{"topic": s.Topic}},
		{"scores", counts},
		{"submit", counts},
	}
	for _, st := range steps {
		if err := c.do(ctx, http.MethodPost, base+st.action, st.body, &d, http.StatusOK); err != nil {
			return "", err
		}
	}
	if d.Entry == nil {
		return "", fmt.Errorf("%w: draft %s committed without an entry", ErrRequest, base)
	}
	return d.Entry.ID, nil
}
