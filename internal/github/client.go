package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultTimeout = 60 * time.Second
)

// Client is an authenticated GitHub API client.
type Client struct {
	token   string
	apiBase string
	http    *http.Client
}

// New creates a Client with the given token and API base URL.
// If apiBase is empty, the public GitHub API is used. A zero timeout
// falls back to one minute.
func New(token, apiBase string, timeout time.Duration) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	// Strip trailing slash for consistent URL building.
	apiBase = strings.TrimRight(apiBase, "/")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		token:   token,
		apiBase: apiBase,
		http:    &http.Client{Timeout: timeout},
	}
}

// do executes the request with standard GitHub headers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/vnd.github+json")
	}
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// doJSON sends a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// url builds an API URL from path segments. Segments are escaped, so a
// segment may itself contain slashes (a file path inside a repo).
func (c *Client) url(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
			escaped = append(escaped, url.PathEscape(seg))
		}
	}
	return c.apiBase + "/" + strings.Join(escaped, "/")
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	}
	return newAPIError(resp)
}
