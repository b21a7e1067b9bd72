package watch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/directory"
	"tableflip.dev/calllog/pkg/live"
	"tableflip.dev/calllog/pkg/logger"
)

type fakeLive struct {
	mu        sync.Mutex
	handlers  []func(live.Event)
	connected chan struct{}
	done      chan struct{}
	err       error
}

func newFakeLive() *fakeLive {
	return &fakeLive{connected: make(chan struct{}), done: make(chan struct{})}
}

func (f *fakeLive) OnEvent(h func(live.Event)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, h)
}

func (f *fakeLive) Connect(ctx context.Context) error {
	close(f.connected)
	return nil
}

func (f *fakeLive) Done() <-chan struct{} { return f.done }
func (f *fakeLive) Err() error            { return f.err }
func (f *fakeLive) Disconnect() error     { return nil }

func (f *fakeLive) push(data string) {
	f.mu.Lock()
	hs := append([]func(live.Event){}, f.handlers...)
	f.mu.Unlock()
	for _, h := range hs {
		h(live.Event{Data: []byte(data)})
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func setup(t *testing.T) (*Watch, *fakeLive, *syncBuffer) {
	t.Helper()
	mem := directory.NewMemory(directory.SampleCalls(5, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))...)
	fl := newFakeLive()
	out := &syncBuffer{}
	return &Watch{Service: app.New(mem, fl, nil, logger.Discard()), ShowID: true, Out: out}, fl, out
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}

func TestWatchPrintsPushedChanges(t *testing.T) {
	w, fl, out := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := make(chan error, 1)
	go func() { result <- w.Do(ctx) }()
	waitFor(t, fl.connected)

	fl.push(`{"id":"call-002","is_archived":true}`)
	fl.push(`{"id":"call-999","is_archived":true}`)

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "  archived  notes:") {
		if time.Now().After(deadline) {
			t.Fatalf("update not printed:\n%s", out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
	if strings.Contains(out.String(), "call-999  ") {
		t.Fatalf("update for an unloaded call printed:\n%s", out.String())
	}

	cancel()
	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchStopsWhenChannelDrops(t *testing.T) {
	w, fl, _ := setup(t)
	fl.err = errors.New("connection reset")

	result := make(chan error, 1)
	go func() { result <- w.Do(context.Background()) }()
	waitFor(t, fl.connected)
	close(fl.done)

	select {
	case err := <-result:
		if err == nil || err.Error() != "connection reset" {
			t.Fatalf("expected the channel error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchRequiresLive(t *testing.T) {
	mem := directory.NewMemory()
	w := Watch{Service: app.New(mem, nil, nil, logger.Discard())}
	if err := w.Do(context.Background()); err == nil {
		t.Fatal("expected an error without a live channel")
	}
}
