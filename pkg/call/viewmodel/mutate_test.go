package viewmodel

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/directory"
)

func isSuccess(r Result) bool {
	_, ok := r.(Success)
	return ok
}

func archivedByID(calls []call.Call) map[string]bool {
	out := make(map[string]bool, len(calls))
	for _, c := range calls {
		out[c.ID] = c.IsArchived
	}
	return out
}

func TestToggleArchiveFlipsOnlyTarget(t *testing.T) {
	s, _ := sampleStore(t, 10)
	before := archivedByID(s.Snapshot().Calls)

	res := s.ToggleArchive(context.Background(), "call-002")
	ok, isSuccess := res.(Success)
	if !isSuccess {
		t.Fatalf("expected success, got %#v", res)
	}
	if ok.Call.IsArchived != !before["call-002"] {
		t.Fatalf("result not flipped: %+v", ok.Call)
	}

	after := archivedByID(s.Snapshot().Calls)
	for id, was := range before {
		want := was
		if id == "call-002" {
			want = !was
		}
		if after[id] != want {
			t.Fatalf("%s archived=%v, want %v", id, after[id], want)
		}
	}
}

func TestToggleArchiveFailureKeepsState(t *testing.T) {
	s, dir := sampleStore(t, 10)
	dir.FailNext(directory.OpArchive, errors.New("boom"))
	before := archivedByID(s.Snapshot().Calls)

	res := s.ToggleArchive(context.Background(), "call-002")
	if _, ok := res.(Failure); !ok {
		t.Fatalf("expected failure, got %#v", res)
	}
	after := archivedByID(s.Snapshot().Calls)
	for id, was := range before {
		if after[id] != was {
			t.Fatalf("%s changed after a failed toggle", id)
		}
	}
}

func TestToggleArchiveUnknownCall(t *testing.T) {
	s, _ := sampleStore(t, 10)
	res := s.ToggleArchive(context.Background(), "call-404")
	f, ok := res.(Failure)
	if !ok || !errors.Is(f.Reason, ErrUnknownCall) {
		t.Fatalf("expected ErrUnknownCall, got %#v", res)
	}
}

func TestToggleArchiveWithEchoedPushFlipsOnce(t *testing.T) {
	s, dir := sampleStore(t, 10)
	// The directory publishes the new state before the toggle returns.
	s.Bind(dir.Memory)

	before := archivedByID(s.Snapshot().Calls)["call-003"]
	if res := s.ToggleArchive(context.Background(), "call-003"); res == nil {
		t.Fatal("nil result")
	}
	if got := archivedByID(s.Snapshot().Calls)["call-003"]; got != !before {
		t.Fatalf("archived=%v after toggle, want %v", got, !before)
	}
}

func TestToggleArchiveUpdatesDetail(t *testing.T) {
	s, _ := sampleStore(t, 10)
	ctx := context.Background()
	if err := s.SelectCall(ctx, "call-001"); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.ToggleArchive(ctx, "call-001")
	d := s.Snapshot().Detail
	if d.Call == nil || !d.Call.IsArchived || !d.Summary.IsArchived {
		t.Fatalf("detail not updated: %+v", d)
	}
}

func TestAddNoteSuccess(t *testing.T) {
	s, _ := sampleStore(t, 10)
	ctx := context.Background()
	if err := s.SelectCall(ctx, "call-002"); err != nil {
		t.Fatalf("select: %v", err)
	}
	before := len(s.Snapshot().Detail.Call.Notes)

	res := s.AddNote(ctx, "call-002", "hello")
	if _, ok := res.(Success); !ok {
		t.Fatalf("expected success, got %#v", res)
	}
	notes := s.Snapshot().Detail.Call.Notes
	if len(notes) != before+1 {
		t.Fatalf("expected %d notes, got %d", before+1, len(notes))
	}
	if notes[len(notes)-1].Content != "hello" {
		t.Fatalf("unexpected note %+v", notes[len(notes)-1])
	}
}

func TestAddNoteWinsOverInFlightDetailFetch(t *testing.T) {
	s, dir := sampleStore(t, 10)
	ctx := context.Background()

	release := dir.holdGet("call-002")
	selected := make(chan error, 1)
	go func() { selected <- s.SelectCall(ctx, "call-002") }()
	<-dir.enteredGet
	before, err := dir.Memory.Get(ctx, "call-002")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if res := s.AddNote(ctx, "call-002", "hello"); !isSuccess(res) {
		t.Fatalf("expected success, got %#v", res)
	}
	close(release)
	if err := <-selected; !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for the older fetch, got %v", err)
	}

	d := s.Snapshot().Detail
	if d.Call == nil || d.Loading {
		t.Fatalf("unexpected detail state %+v", d)
	}
	if got := len(d.Call.Notes); got != len(before.Notes)+1 {
		t.Fatalf("expected %d notes, got %d", len(before.Notes)+1, got)
	}
	if last := d.Call.Notes[len(d.Call.Notes)-1]; last.Content != "hello" {
		t.Fatalf("note lost: %+v", last)
	}
}

func TestAddNoteFailureKeepsInput(t *testing.T) {
	s, dir := sampleStore(t, 10)
	ctx := context.Background()
	if err := s.SelectCall(ctx, "call-002"); err != nil {
		t.Fatalf("select: %v", err)
	}
	before := len(s.Snapshot().Detail.Call.Notes)
	dir.FailNext(directory.OpAddNote, errors.New("boom"))

	res := s.AddNote(ctx, "call-002", "hello")
	f, ok := res.(Failure)
	if !ok {
		t.Fatalf("expected failure, got %#v", res)
	}
	if f.Input != "hello" {
		t.Fatalf("input lost: %q", f.Input)
	}
	if got := len(s.Snapshot().Detail.Call.Notes); got != before {
		t.Fatalf("notes changed after failure: %d -> %d", before, got)
	}
}

func TestAddNoteRejectsBlank(t *testing.T) {
	s, _ := sampleStore(t, 10)
	res := s.AddNote(context.Background(), "call-002", "   ")
	f, ok := res.(Failure)
	if !ok || !errors.Is(f.Reason, ErrEmptyNote) {
		t.Fatalf("expected ErrEmptyNote, got %#v", res)
	}
}

func TestDetailErrorIsIndependentOfList(t *testing.T) {
	s, dir := sampleStore(t, 10)
	dir.FailNext(directory.OpGet, errors.New("boom"))

	if err := s.SelectCall(context.Background(), "call-001"); err == nil {
		t.Fatal("expected error")
	}
	snap := s.Snapshot()
	if snap.Detail.Err != MsgDetailFailed || snap.Detail.Loading {
		t.Fatalf("unexpected detail state %+v", snap.Detail)
	}
	if snap.Err != "" || snap.Loading || len(snap.Calls) != 10 {
		t.Fatalf("list state touched: err=%q loading=%v calls=%d", snap.Err, snap.Loading, len(snap.Calls))
	}
	if snap.Detail.Summary.ID != "call-001" {
		t.Fatalf("summary not kept: %+v", snap.Detail.Summary)
	}
}

func TestCloseDetail(t *testing.T) {
	s, _ := sampleStore(t, 10)
	if err := s.SelectCall(context.Background(), "call-001"); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.CloseDetail()
	if d := s.Snapshot().Detail; d.Open || d.Call != nil {
		t.Fatalf("detail still open: %+v", d)
	}
}

func TestSupersededDetailFetchIsDiscarded(t *testing.T) {
	s, dir := sampleStore(t, 10)
	ctx := context.Background()

	release := dir.holdGet("call-001")
	slow := make(chan error, 1)
	go func() { slow <- s.SelectCall(ctx, "call-001") }()
	<-dir.enteredGet

	if err := s.SelectCall(ctx, "call-003"); err != nil {
		t.Fatalf("select call-003: %v", err)
	}
	close(release)
	if err := <-slow; !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}

	d := s.Snapshot().Detail
	if d.ID != "call-003" || d.Call == nil || d.Call.ID != "call-003" {
		t.Fatalf("stale detail won: %+v", d)
	}
}

func TestDetailFetchAfterCloseIsDiscarded(t *testing.T) {
	s, dir := sampleStore(t, 10)
	ctx := context.Background()

	release := dir.holdGet("call-001")
	slow := make(chan error, 1)
	go func() { slow <- s.SelectCall(ctx, "call-001") }()
	<-dir.enteredGet

	s.CloseDetail()
	close(release)
	if err := <-slow; !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if d := s.Snapshot().Detail; d.Open || d.Call != nil || d.ID != "" {
		t.Fatalf("closed detail reopened: %+v", d)
	}
}
