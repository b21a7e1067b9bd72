package directory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/", Token: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestClientListSendsWindowAndToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calls" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("offset"); got != "10" {
			t.Errorf("offset = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"nodes":[{"id":"a","call_type":"missed"},{"id":"b","call_type":"answered"}],"totalCount":25,"hasNextPage":true}`))
	})

	page, err := c.List(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Nodes) != 2 || page.TotalCount != 25 || !page.HasNextPage {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Offset != 10 || page.Limit != 10 {
		t.Fatalf("window not recorded: %+v", page)
	}
}

func TestClientAddNotePostsContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calls/c-1/note" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Content != "hello" {
			t.Errorf("content = %q", body.Content)
		}
		_, _ = w.Write([]byte(`{"id":"c-1","notes":[{"id":"n-1","content":"hello"}]}`))
	})

	got, err := c.AddNote(context.Background(), "c-1", "hello")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if len(got.Notes) != 1 || got.Notes[0].Content != "hello" {
		t.Fatalf("unexpected call: %+v", got)
	}
}

func TestClientToggleArchiveUsesConfiguredMethod(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		if r.URL.Path != "/calls/c-1/archive" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"c-1","is_archived":true}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, ArchiveMethod: "put"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.ToggleArchive(context.Background(), "c-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", method)
	}
}

func TestClientEscapesCallIDOnce(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id":"x"}`))
	})

	ctx := context.Background()
	if _, err := c.Get(ctx, "a b"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := c.ToggleArchive(ctx, "a/b"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	want := []string{"/calls/a%20b", "/calls/a%2Fb/archive"}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("paths = %q, want %q", paths, want)
	}
}

func TestClientDefaultArchiveMethodIsPost(t *testing.T) {
	var method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	})
	if err := c.ToggleArchive(context.Background(), "c-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if method != http.MethodPost {
		t.Fatalf("expected POST, got %s", method)
	}
}

func TestClientStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such call", http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), "missing")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound || se.Body != "no such call" {
		t.Fatalf("unexpected status error: %+v", se)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 should match ErrNotFound")
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := New(Options{BaseURL: "ftp://example.com"}); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}
