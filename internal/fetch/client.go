// Package fetch provides the shared HTTP GET layer used by every data source.
package fetch

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UserAgent identifies this server to the upstream APIs.
const UserAgent = "medmcp/0.1.0"

// maxBodySize bounds how much of an upstream response is read (2MB).
const maxBodySize = 2 << 20

// Client issues GET requests against upstream APIs.
// No retries: a failed fetch surfaces immediately to the caller.
type Client struct {
	httpc *http.Client
}

// NewClient creates a fetch client with the given timeout.
// A zero timeout falls back to 30 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpc: &http.Client{Timeout: timeout},
	}
}

// Get issues a GET request with query parameters and headers, returning the
// raw body. A non-2xx status is an error carrying the status code and a
// truncated body excerpt.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, headers map[string]string) ([]byte, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// The transport only decompresses transparently when it negotiated the
	// encoding itself. A caller-supplied Accept-Encoding header leaves the
	// body compressed, so handle gzip here.
	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip response: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncateBody(body))
	}

	return body, nil
}

// GetJSON issues a GET request and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	body, err := c.Get(ctx, rawURL, params, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	return nil
}

func truncateBody(body []byte) string {
	if len(body) > 200 {
		return string(body[:200]) + "..."
	}
	return string(body)
}
