package viewmodel

import (
	"context"
	"fmt"

	"tableflip.dev/calllog/pkg/call"
)

// LoadPage fetches page n, 1 ≤ n ≤ TotalPages. Out-of-range requests return
// ErrPageOutOfRange and change nothing. On success the fetched calls replace
// the page wholesale. On failure the page is emptied and the list error is
// set. A response superseded by a later LoadPage is discarded with ErrStale.
func (s *Store) LoadPage(ctx context.Context, n int) error {
	s.mu.Lock()
	if n < 1 || n > s.totalPages {
		total := s.totalPages
		s.mu.Unlock()
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, total)
	}
	return s.fetchAndUnlock(ctx, n)
}

// LoadPageFiltered switches to filter f and loads page n with a single
// request. Range checking matches LoadPage; an out-of-range n leaves the
// filter unchanged.
func (s *Store) LoadPageFiltered(ctx context.Context, n int, f call.Filter) error {
	s.mu.Lock()
	if n < 1 || n > s.totalPages {
		total := s.totalPages
		s.mu.Unlock()
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, total)
	}
	s.filter = f
	s.derive()
	s.emit(ChangeMsg{Type: ChangeFilter, Page: s.currentPage})
	return s.fetchAndUnlock(ctx, n)
}

// NextPage loads the page after the current one.
func (s *Store) NextPage(ctx context.Context) error {
	s.mu.Lock()
	n := s.currentPage + 1
	s.mu.Unlock()
	return s.LoadPage(ctx, n)
}

// PrevPage loads the page before the current one.
func (s *Store) PrevPage(ctx context.Context) error {
	s.mu.Lock()
	n := s.currentPage - 1
	s.mu.Unlock()
	return s.LoadPage(ctx, n)
}

// Refresh re-fetches the current page even when the last fetch reported no
// pages, so an empty log can pick up new calls.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	n := s.currentPage
	if n < 1 {
		n = 1
	}
	return s.fetchAndUnlock(ctx, n)
}

// SetFilter changes the active filter. Returning to the none filter
// re-fetches the current page from the directory; any other filter narrows
// the loaded page locally without a request.
func (s *Store) SetFilter(ctx context.Context, f call.Filter) error {
	s.mu.Lock()
	s.filter = f
	s.derive()
	s.emit(ChangeMsg{Type: ChangeFilter, Page: s.currentPage})
	if !f.IsNone() {
		s.mu.Unlock()
		return nil
	}
	n := s.currentPage
	if n < 1 || n > s.totalPages {
		total := s.totalPages
		s.mu.Unlock()
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, total)
	}
	return s.fetchAndUnlock(ctx, n)
}

// fetchAndUnlock must be called with s.mu held; it releases the lock for the
// duration of the request.
func (s *Store) fetchAndUnlock(ctx context.Context, n int) error {
	s.listToken++
	token := s.listToken
	s.loading = true
	s.err = ""
	s.emit(ChangeMsg{Type: ChangeLoading, Page: n})
	s.mu.Unlock()

	page, err := s.dir.List(ctx, call.Offset(n, s.pageSize), s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.listToken {
		s.log.Debug("discarding superseded page", "page", n, "token", token, "latest", s.listToken)
		s.emit(ChangeMsg{Type: ChangeDiscard, Page: n})
		return ErrStale
	}
	s.loading = false
	s.currentPage = n
	if err != nil {
		s.raw = nil
		s.visible = nil
		s.err = MsgListFailed
		s.log.Error("fetch calls failed", "page", n, "err", err)
		s.emit(ChangeMsg{Type: ChangeError, Page: n})
		return fmt.Errorf("load page %d: %w", n, err)
	}

	nodes := page.Nodes
	if len(nodes) > s.pageSize {
		nodes = nodes[:s.pageSize]
	}
	s.raw = call.Clones(nodes)
	if s.raw == nil {
		s.raw = []call.Call{}
	}
	s.totalPages = call.TotalPages(page.TotalCount, s.pageSize)
	s.hasNext = page.HasNextPage
	s.derive()
	s.emit(ChangeMsg{Type: ChangePage, Page: n})
	return nil
}
