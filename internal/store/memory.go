package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"
)

// WriteCall records one successful Write against a Memory store.
type WriteCall struct {
	Path    string
	Content []byte
	Message string
	Token   string
}

// Memory is an in-process Store with the same token rules as GitHub.
// Tokens are git blob SHAs of the content.
type Memory struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes []WriteCall
	reads  int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Seed stores content at path without recording a write.
func (m *Memory) Seed(path string, content []byte) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), content...)
	return blobSHA(content)
}

// Read returns a copy of the file at path.
func (m *Memory) Read(_ context.Context, path string) (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", path, ErrNotFound)
	}
	return &File{Path: path, Content: append([]byte(nil), data...), Token: blobSHA(data)}, nil
}

// Write stores content at path if token matches the current state.
func (m *Memory) Write(_ context.Context, path string, content []byte, message, token string) (*WriteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.files[path]
	switch {
	case token == "" && exists:
		return nil, fmt.Errorf("writing %s: file exists but no token given: %w", path, ErrConflict)
	case token != "" && !exists:
		return nil, fmt.Errorf("writing %s: token given for missing file: %w", path, ErrConflict)
	case token != "" && token != blobSHA(current):
		return nil, fmt.Errorf("writing %s: token %s is stale: %w", path, token, ErrConflict)
	}

	stored := append([]byte(nil), content...)
	m.files[path] = stored
	m.writes = append(m.writes, WriteCall{Path: path, Content: stored, Message: message, Token: token})
	sha := blobSHA(stored)
	return &WriteResult{Path: path, Token: sha, Commit: fmt.Sprintf("mem-%d", len(m.writes))}, nil
}

// Writes returns the successful writes in order.
func (m *Memory) Writes() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]WriteCall(nil), m.writes...)
}

// Reads returns how many Read calls were made.
func (m *Memory) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Content returns the stored bytes at path and whether it exists.
func (m *Memory) Content(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return append([]byte(nil), data...), ok
}

// String identifies the store in logs.
func (m *Memory) String() string { return "memory" }

// blobSHA computes the git blob id of content, matching what GitHub
// reports as a file's sha.
func blobSHA(content []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(content))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
