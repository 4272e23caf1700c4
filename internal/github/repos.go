package github

import (
	"context"
	"net/http"
)

// Repo represents a GitHub repository.
type Repo struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	HTMLURL       string `json:"html_url"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
	Permissions   struct {
		Push bool `json:"push"`
	} `json:"permissions"`
}

// GetRepo fetches repository metadata. Returns ErrNotFound if absent.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (*Repo, error) {
	var r Repo
	if err := c.doJSON(ctx, http.MethodGet, c.url("repos", owner, repo), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
