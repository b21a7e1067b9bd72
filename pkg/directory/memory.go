package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/live"
)

// Memory is an in-process Directory. It backs the demo mode and tests, and it
// mimics the live channel by publishing every mutation as an update event.
type Memory struct {
	mu       sync.Mutex
	calls    []call.Call
	counter  int
	now      func() time.Time
	failures map[string]error
	handlers []func(live.Event)
}

var _ Directory = (*Memory)(nil)

// NewMemory seeds a Memory directory with the given calls, kept in order.
func NewMemory(calls ...call.Call) *Memory {
	return &Memory{
		calls:    call.Clones(calls),
		now:      time.Now,
		failures: make(map[string]error),
	}
}

// Operation names accepted by FailNext.
const (
	OpList    = "list"
	OpGet     = "get"
	OpAddNote = "note"
	OpArchive = "archive"
)

// FailNext makes the next call of op return err.
func (m *Memory) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// OnEvent registers a handler that receives an update event for every
// mutation, in the same shape the live channel delivers.
func (m *Memory) OnEvent(handler func(live.Event)) {
	if handler == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
}

func (m *Memory) failLocked(op string) error {
	err, ok := m.failures[op]
	if !ok {
		return nil
	}
	delete(m.failures, op)
	return err
}

func (m *Memory) List(ctx context.Context, offset, limit int) (call.Page, error) {
	if err := ctx.Err(); err != nil {
		return call.Page{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failLocked(OpList); err != nil {
		return call.Page{}, err
	}
	if offset < 0 || limit < 0 {
		return call.Page{}, &StatusError{Method: "GET", Path: "/calls", Code: 400, Body: "invalid window"}
	}
	end := offset + limit
	if offset > len(m.calls) {
		offset = len(m.calls)
	}
	if end > len(m.calls) {
		end = len(m.calls)
	}
	return call.Page{
		Offset:      offset,
		Limit:       limit,
		Nodes:       call.Clones(m.calls[offset:end]),
		TotalCount:  len(m.calls),
		HasNextPage: end < len(m.calls),
	}, nil
}

func (m *Memory) Get(ctx context.Context, id string) (call.Call, error) {
	if err := ctx.Err(); err != nil {
		return call.Call{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failLocked(OpGet); err != nil {
		return call.Call{}, err
	}
	idx := call.IndexOf(m.calls, id)
	if idx < 0 {
		return call.Call{}, ErrNotFound
	}
	return m.calls[idx].Clone(), nil
}

func (m *Memory) AddNote(ctx context.Context, id, content string) (call.Call, error) {
	if err := ctx.Err(); err != nil {
		return call.Call{}, err
	}
	m.mu.Lock()
	if err := m.failLocked(OpAddNote); err != nil {
		m.mu.Unlock()
		return call.Call{}, err
	}
	idx := call.IndexOf(m.calls, id)
	if idx < 0 {
		m.mu.Unlock()
		return call.Call{}, ErrNotFound
	}
	if content == "" {
		m.mu.Unlock()
		return call.Call{}, errors.New("directory: note content required")
	}
	m.counter++
	m.calls[idx].Notes = append(m.calls[idx].Notes, call.Note{
		ID:        fmt.Sprintf("note-%d", m.counter),
		Content:   content,
		CreatedAt: call.Timestamp{Time: m.now().UTC()},
	})
	m.calls[idx].Version++
	out := m.calls[idx].Clone()
	handlers := append([]func(live.Event){}, m.handlers...)
	m.mu.Unlock()

	publish(handlers, out)
	return out, nil
}

func (m *Memory) ToggleArchive(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if err := m.failLocked(OpArchive); err != nil {
		m.mu.Unlock()
		return err
	}
	idx := call.IndexOf(m.calls, id)
	if idx < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.calls[idx].IsArchived = !m.calls[idx].IsArchived
	m.calls[idx].Version++
	out := m.calls[idx].Clone()
	handlers := append([]func(live.Event){}, m.handlers...)
	m.mu.Unlock()

	publish(handlers, out)
	return nil
}

func publish(handlers []func(live.Event), c call.Call) {
	if len(handlers) == 0 {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	ev := live.Event{Channel: live.DefaultChannel, Name: live.DefaultEvent, Data: data}
	for _, h := range handlers {
		h(ev)
	}
}
