// Package roomfetch retrieves raw session responses from a room backend.
package roomfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/r9s-ai/room-snippet/internal/logx"
	"github.com/r9s-ai/room-snippet/internal/requestid"
)

// ErrFetchFailed is matched by every *FetchError.
var ErrFetchFailed = errors.New("fetch failed")

// Fetcher performs a single GET and returns the response body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchError covers transport failures (Err set) and non-2xx responses
// (StatusCode and Body set).
type FetchError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s %s failed: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("request %s %s failed: status=%d body=%s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Client is the HTTP Fetcher.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	// DebugOut receives one log line per fetch when set.
	DebugOut io.Writer
	Color    bool
}

// Fetch GETs url and returns the body of a 2xx response. Every failure is a
// *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	const method = http.MethodGet

	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, &FetchError{Method: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	rid := requestid.Ensure(req.Header)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.debug(start, 0, url, map[string]any{"request_id": rid})
		return nil, &FetchError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	c.debug(start, resp.StatusCode, url, map[string]any{
		"request_id": requestid.FromResponse(resp, rid),
		"bytes":      len(body),
	})
	if err != nil {
		return nil, &FetchError{Method: method, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func (c *Client) debug(start time.Time, status int, url string, fields map[string]any) {
	if c.DebugOut == nil {
		return
	}
	line := logx.FormatFetchLine(start, status, time.Since(start), http.MethodGet, url, fields, c.Color)
	_, _ = fmt.Fprintln(c.DebugOut, line)
}
