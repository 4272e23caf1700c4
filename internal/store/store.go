// Package store exposes the two file operations the intake needs from a
// version-controlled content store: read a file with its opacity token, and
// write a file conditionally on that token.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Read when the path does not exist.
	ErrNotFound = errors.New("store: file not found")
	// ErrConflict is returned by Write when the token is stale, or when a
	// create (empty token) hits a file that already exists.
	ErrConflict = errors.New("store: write conflict")
)

// File is a file as read from the store. Token must be passed back to
// Write unchanged to update it.
type File struct {
	Path    string
	Content []byte
	Token   string
}

// WriteResult describes a successful write.
type WriteResult struct {
	Path   string
	Token  string
	Commit string
}

// Store reads and conditionally writes named files.
//
// Write with an empty token creates path; with a non-empty token it
// replaces path only if its current token still matches.
type Store interface {
	Read(ctx context.Context, path string) (*File, error)
	Write(ctx context.Context, path string, content []byte, message, token string) (*WriteResult, error)
}
