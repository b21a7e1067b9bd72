// Package viewmodel holds the call list the user is looking at and keeps it
// consistent across page fetches, user mutations, and pushed updates.
//
// The Store is safe for concurrent use. Every handler takes the store lock for
// its read-modify-write and releases it around network calls, so handlers are
// atomic relative to each other while fetches overlap. List and detail
// fetches carry a fencing token: a response is applied only if no newer
// request of the same kind was issued after it.
package viewmodel

import (
	"errors"
	"log/slog"
	"sync"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/directory"
	"tableflip.dev/calllog/pkg/live"
)

// DefaultPageSize is the number of calls per page.
const DefaultPageSize = 10

// Messages shown to the user for failed fetches.
const (
	MsgListFailed   = "Failed to fetch calls"
	MsgDetailFailed = "Failed to fetch call details"
)

var (
	// ErrPageOutOfRange is returned when LoadPage is asked for a page outside
	// [1, TotalPages]. The store is left untouched.
	ErrPageOutOfRange = errors.New("viewmodel: page out of range")
	// ErrStale is returned when a response arrived after a newer request of
	// the same kind was issued; the response was discarded.
	ErrStale = errors.New("viewmodel: superseded by a newer request")
	// ErrUnknownCall is returned for mutations on calls the store has not
	// loaded.
	ErrUnknownCall = errors.New("viewmodel: call not loaded")
	// ErrEmptyNote is returned by AddNote for blank content.
	ErrEmptyNote = errors.New("viewmodel: note content is empty")
)

// Source delivers pushed call updates. *live.Client satisfies it, as does
// the in-memory directory.
type Source interface {
	OnEvent(handler func(live.Event))
}

// Store is the authoritative in-memory view of the call log.
type Store struct {
	dir      directory.Directory
	log      *slog.Logger
	pageSize int

	mu          sync.Mutex
	currentPage int
	totalPages  int
	hasNext     bool
	raw         []call.Call
	filter      call.Filter
	visible     []call.Call
	loading     bool
	err         string
	listToken   uint64
	detail      Detail
	detailToken uint64

	events chan ChangeMsg
}

// Option customises a Store.
type Option func(*Store)

// WithPageSize overrides DefaultPageSize. Non-positive sizes are ignored.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the logger used for failures and discarded responses.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a store over dir. Nothing is fetched until LoadPage is called;
// before the first fetch the store reports one page so that LoadPage(1) is
// in range.
func New(dir directory.Directory, opts ...Option) *Store {
	s := &Store{
		dir:         dir,
		log:         slog.Default(),
		pageSize:    DefaultPageSize,
		currentPage: 1,
		totalPages:  1,
		events:      make(chan ChangeMsg, eventsCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "viewmodel")
	return s
}

// PageSize returns the fixed page size.
func (s *Store) PageSize() int {
	return s.pageSize
}

// Bind subscribes the store to pushed updates from src.
func (s *Store) Bind(src Source) {
	src.OnEvent(func(ev live.Event) {
		_ = s.ApplyPush(ev.Data)
	})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.detail
	d.Summary = s.detail.Summary.Clone()
	if s.detail.Call != nil {
		c := s.detail.Call.Clone()
		d.Call = &c
	}
	return Snapshot{
		Pagination: s.paginationLocked(),
		Filter:     s.filter,
		Calls:      call.Clones(s.raw),
		Visible:    call.Clones(s.visible),
		Loading:    s.loading,
		Err:        s.err,
		Detail:     d,
	}
}

// Pagination returns the page controls state.
func (s *Store) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paginationLocked()
}

func (s *Store) paginationLocked() Pagination {
	return Pagination{
		CurrentPage: s.currentPage,
		TotalPages:  s.totalPages,
		HasNextPage: s.hasNext,
		HasPrevPage: s.currentPage > 1,
		PageSize:    s.pageSize,
		Frozen:      !s.filter.IsNone(),
	}
}

// derive recomputes the visible calls from the raw page and the filter.
func (s *Store) derive() {
	s.visible = s.filter.Apply(s.raw)
}
