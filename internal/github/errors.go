package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Common GitHub API errors.
var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when authentication fails.
	ErrUnauthorized = errors.New("unauthorized — check your GitHub token")
	// ErrForbidden is returned when authorization fails or a rate limit is hit.
	ErrForbidden = errors.New("forbidden — token may lack contents:write or rate limit exceeded")
	// ErrConflict is returned when a write is based on a stale file SHA.
	ErrConflict = errors.New("conflict — file changed since it was read")
)

// APIError carries the status and message of a failed GitHub API call.
// It unwraps to one of the sentinel errors above when the status maps to one.
type APIError struct {
	StatusCode int
	Message    string
	sentinel   error
}

func (e *APIError) Error() string {
	if e.sentinel != nil {
		return fmt.Sprintf("github API error %d: %s (%s)", e.StatusCode, e.sentinel, e.Message)
	}
	return fmt.Sprintf("github API error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.sentinel }

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(body))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}

	e := &APIError{StatusCode: resp.StatusCode, Message: msg}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e.sentinel = ErrUnauthorized
	case http.StatusForbidden:
		e.sentinel = ErrForbidden
	case http.StatusNotFound:
		e.sentinel = ErrNotFound
	case http.StatusConflict:
		e.sentinel = ErrConflict
	}
	return e
}
