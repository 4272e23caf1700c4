package store_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blackwell-systems/ghintake/internal/github"
	"github.com/blackwell-systems/ghintake/internal/store"
)

func TestGitHub_ReadWrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ref") != "" && r.URL.Query().Get("ref") != "data" {
			t.Errorf("ref = %q", r.URL.Query().Get("ref"))
		}
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]string{
				"sha": "s1", "encoding": "base64",
				"content": base64.StdEncoding.EncodeToString([]byte("[]")),
			})
		case http.MethodPut:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["sha"] != "s1" || body["branch"] != "data" {
				t.Errorf("body = %v", body)
			}
			_, _ = io.WriteString(w, `{"content":{"sha":"s2"},"commit":{"sha":"c9"}}`)
		}
	}))
	defer srv.Close()

	s := store.NewGitHub(github.New("tok", srv.URL, time.Second), "alice", "db", "data")
	f, err := s.Read(context.Background(), "list.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(f.Content) != "[]" || f.Token != "s1" {
		t.Errorf("file = %+v", f)
	}
	res, err := s.Write(context.Background(), "list.json", []byte("[1]"), "msg", f.Token)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if res.Token != "s2" || res.Commit != "c9" {
		t.Errorf("result = %+v", res)
	}
	if s.String() != "github:alice/db@data" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestGitHub_TranslatesErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, store.ErrNotFound},
		{http.StatusConflict, store.ErrConflict},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
		}))
		s := store.NewGitHub(github.New("tok", srv.URL, time.Second), "alice", "db", "")
		var err error
		if c.status == http.StatusNotFound {
			_, err = s.Read(context.Background(), "x.json")
		} else {
			_, err = s.Write(context.Background(), "x.json", nil, "m", "old")
		}
		srv.Close()
		if !errors.Is(err, c.want) {
			t.Errorf("status %d: err = %v, want %v", c.status, err, c.want)
		}
		var apiErr *github.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != c.status {
			t.Errorf("status %d: APIError lost from chain: %v", c.status, err)
		}
	}
}

func TestGitHub_TransportErrorIsNotSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	s := store.NewGitHub(github.New("bad", srv.URL, time.Second), "alice", "db", "")
	_, err := s.Read(context.Background(), "x.json")
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrConflict) {
		t.Fatalf("401 must not map to a store sentinel: %v", err)
	}
	if !errors.Is(err, github.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized in chain", err)
	}
}
