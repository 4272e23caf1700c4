package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/ghintake/internal/github"
)

// GitHub is a Store backed by the GitHub Contents API of one repository.
type GitHub struct {
	gh     *github.Client
	owner  string
	repo   string
	branch string
}

// NewGitHub creates a store over owner/repo. An empty branch targets the
// repository's default branch.
func NewGitHub(gh *github.Client, owner, repo, branch string) *GitHub {
	return &GitHub{gh: gh, owner: owner, repo: repo, branch: branch}
}

// Read fetches path and its blob SHA.
func (s *GitHub) Read(ctx context.Context, path string) (*File, error) {
	fc, err := s.gh.GetFile(ctx, s.owner, s.repo, path, s.branch)
	if err != nil {
		return nil, translate(err, "reading %s", path)
	}
	return &File{Path: path, Content: fc.Data, Token: fc.SHA}, nil
}

// Write commits content to path with message. token is the blob SHA from
// the preceding Read, or empty to create the file.
func (s *GitHub) Write(ctx context.Context, path string, content []byte, message, token string) (*WriteResult, error) {
	res, err := s.gh.PutFile(ctx, s.owner, s.repo, path, content, message, token, s.branch)
	if err != nil {
		return nil, translate(err, "writing %s", path)
	}
	return &WriteResult{Path: path, Token: res.Content.SHA, Commit: res.Commit.SHA}, nil
}

// String identifies the backing repository in logs.
func (s *GitHub) String() string {
	if s.branch != "" {
		return fmt.Sprintf("github:%s/%s@%s", s.owner, s.repo, s.branch)
	}
	return fmt.Sprintf("github:%s/%s", s.owner, s.repo)
}

// translate maps GitHub sentinels to store sentinels while keeping the
// original error (and its status detail) in the chain.
func translate(err error, format string, args ...any) error {
	op := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, github.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.Is(err, github.ErrConflict):
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
