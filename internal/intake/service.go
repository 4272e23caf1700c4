// Package intake turns form submissions into commits: an optional image
// file plus one record appended to a JSON list in the store.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/ghintake/internal/records"
	"github.com/blackwell-systems/ghintake/internal/store"
)

// DefaultMaxAttempts bounds read-append-write cycles on the record list.
const DefaultMaxAttempts = 3

// Result describes a completed submission.
type Result struct {
	ImagePath *string
	Record    any
	Commit    string
	Attempts  int
	Response  map[string]any
}

// Service centralizes the validate → upload → read → append → write
// sequence for one Kind.
type Service struct {
	store       store.Store
	kind        Kind
	maxAttempts int
	now         func() time.Time
	log         *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets how many times a conflicting list write is retried
// from a fresh read. Values below 1 are treated as 1.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.maxAttempts = n
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a Service writing kind's files into st.
func NewService(st store.Store, kind Kind, opts ...Option) *Service {
	s := &Service{
		store:       st,
		kind:        kind,
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns the schema the service writes.
func (s *Service) Kind() Kind { return s.kind }

// Submit validates f, uploads its image if any, and appends the record.
//
// Validation happens before any remote call. If the list write fails after
// the image was committed, the image stays in the store.
func (s *Service) Submit(ctx context.Context, f Form) (*Result, error) {
	if err := validate(f, s.kind.Required); err != nil {
		return nil, err
	}

	var imagePath *string
	if f.Image != nil {
		p := records.ImagePath(s.kind.ImageDir, f.Fields[s.kind.SlugField], s.kind.SlugFallback, f.Image.Filename, s.now())
		if _, err := s.store.Write(ctx, p, f.Image.Data, s.kind.ImageMessage(f), ""); err != nil {
			return nil, fmt.Errorf("uploading image: %w", err)
		}
		s.log.Info("image stored", zap.String("path", p), zap.Int("bytes", len(f.Image.Data)))
		imagePath = &p
	}

	built := s.kind.Build(f, imagePath, s.now())

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		res, err := s.appendOnce(ctx, built)
		if err == nil {
			s.log.Info("record appended",
				zap.String("kind", s.kind.Name),
				zap.String("list", s.kind.ListPath),
				zap.String("commit", res.Commit),
				zap.Int("attempt", attempt))
			return &Result{
				ImagePath: imagePath,
				Record:    built.Record,
				Commit:    res.Commit,
				Attempts:  attempt,
				Response:  built.Response,
			}, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		lastErr = err
		s.log.Warn("record list changed concurrently, retrying",
			zap.String("list", s.kind.ListPath),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return nil, fmt.Errorf("appending to %s after %d attempts: %w", s.kind.ListPath, s.maxAttempts, lastErr)
}

// appendOnce reads the list, appends rec and writes it back with the
// token from that same read.
func (s *Service) appendOnce(ctx context.Context, built Built) (*store.WriteResult, error) {
	list, token, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	list, err = records.AppendRecord(list, built.Record)
	if err != nil {
		return nil, err
	}
	data, err := records.MarshalList(list)
	if err != nil {
		return nil, err
	}
	return s.store.Write(ctx, s.kind.ListPath, data, built.Message, token)
}

// List returns the current record list.
func (s *Service) List(ctx context.Context) ([]json.RawMessage, error) {
	list, _, err := s.load(ctx)
	return list, err
}

// load reads and leniently parses the record list. A missing file is an
// empty list only when the kind allows it.
func (s *Service) load(ctx context.Context) ([]json.RawMessage, string, error) {
	f, err := s.store.Read(ctx, s.kind.ListPath)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) && s.kind.MissingListOK {
			return []json.RawMessage{}, "", nil
		}
		return nil, "", fmt.Errorf("reading record list: %w", err)
	}
	list := records.ParseList(f.Content)
	if len(list) == 0 && len(bytes.TrimSpace(f.Content)) > 0 && !records.IsList(f.Content) {
		s.log.Warn("record list is not a JSON array, starting from empty", zap.String("list", s.kind.ListPath))
	}
	return list, f.Token, nil
}
