package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iho/gamewallet/internal/adapter/http/middleware"
)

// client talks to a running wallet server.
type client struct {
	httpClient *http.Client
	baseURL    string
	adminToken string
	timeout    time.Duration
}

func (c *client) transport() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: c.timeout}
}

func (c *client) url(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}

// admin sends an admin request. Non-2xx responses are returned as errors
// carrying the response body.
func (c *client) admin(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.adminToken == "" {
		return nil, fmt.Errorf("admin token is required (--admin-token or ADMIN_TOKEN)")
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(middleware.AdminTokenHeader, c.adminToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req)
}

func (c *client) do(req *http.Request) ([]byte, error) {
	resp, err := c.transport().Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("request failed (status: %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	return body, nil
}

func printJSON(w io.Writer, raw []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
