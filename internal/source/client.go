// Package source reads the text to highlight from a file, a URL or stdin.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	// maxBodySize caps how much of a response is read.
	maxBodySize = 10 << 20
)

// ErrorResponse is returned for HTTP responses with an error status.
type ErrorResponse struct {
	StatusCode int
	Message    string
}

func (e *ErrorResponse) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error (status %d): %s", e.StatusCode, e.Message)
}

// Client fetches documents over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client; a zero timeout uses the default of 30s.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch performs a GET request and returns the response body.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html, text/plain;q=0.9, */*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", &ErrorResponse{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return string(body), nil
}

// Read returns the document from path, url or stdin. At most one of path and
// url may be set; when both are empty stdin is read.
func (c *Client) Read(ctx context.Context, path, url string, stdin io.Reader) (string, error) {
	switch {
	case path != "" && url != "":
		return "", errors.New("specify either a file or --url, not both")
	case url != "":
		return c.Fetch(ctx, url)
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	default:
		if stdin == nil {
			return "", errors.New("no input: pass a file, --url, or pipe text on stdin")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}
