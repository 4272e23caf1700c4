package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// rawFallbackSize is the size above which the Contents API stops inlining
// file content.
const rawFallbackSize = 1 * 1024 * 1024

// FileContent is the GitHub Contents API response for a file.
// Data holds the decoded bytes; Content is the raw base64 payload.
type FileContent struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	HTMLURL  string `json:"html_url"`

	Data []byte `json:"-"`
}

// CommitResult is the subset of a Contents API PUT response we use.
type CommitResult struct {
	Content struct {
		Path string `json:"path"`
		SHA  string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"commit"`
}

type putFileRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// GetFile fetches a file via the Contents API and decodes its content.
// The returned SHA is needed for PUT updates. For files > 1 MB it falls
// back to the Git Blobs API.
func (c *Client) GetFile(ctx context.Context, owner, repo, path, ref string) (*FileContent, error) {
	u := c.url("repos", owner, repo, "contents", path)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}

	var fc FileContent
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &fc); err != nil {
		return nil, err
	}

	if fc.Encoding == "none" && fc.Size > rawFallbackSize {
		data, err := c.getRawBlob(ctx, owner, repo, fc.SHA)
		if err != nil {
			return nil, err
		}
		fc.Data = data
		return &fc, nil
	}

	// GitHub wraps base64 lines at 60 chars with newlines.
	cleaned := strings.ReplaceAll(fc.Content, "\n", "")
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decoding contents of %s: %w", path, err)
	}
	fc.Data = data
	return &fc, nil
}

// PutFile creates or updates a file via the Contents API. An empty sha
// creates the file; a non-empty sha updates it only if it still matches.
// An empty branch targets the repository's default branch.
func (c *Client) PutFile(ctx context.Context, owner, repo, path string, content []byte, message, sha, branch string) (*CommitResult, error) {
	u := c.url("repos", owner, repo, "contents", path)
	body := putFileRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
		Branch:  branch,
	}

	var out CommitResult
	if err := c.doJSON(ctx, http.MethodPut, u, body, &out); err != nil {
		// GitHub answers 422 when a file exists but no sha was sent, i.e.
		// someone created it after we saw it missing.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
			apiErr.sentinel = ErrConflict
		}
		return nil, err
	}
	return &out, nil
}

// getRawBlob downloads a blob by its SHA using the raw accept header.
// This bypasses the 1 MB base64 limit of the Contents API.
func (c *Client) getRawBlob(ctx context.Context, owner, repo, sha string) ([]byte, error) {
	u := c.url("repos", owner, repo, "git", "blobs", sha)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.raw")
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}
