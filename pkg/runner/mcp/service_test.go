package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/directory"
	"tableflip.dev/calllog/pkg/drafts"
	"tableflip.dev/calllog/pkg/logger"
)

func newTestService(t *testing.T, n int) (*Service, *directory.Memory) {
	t.Helper()
	mem := directory.NewMemory(directory.SampleCalls(n, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))...)
	d, err := drafts.Open(t.TempDir())
	if err != nil {
		t.Fatalf("drafts: %v", err)
	}
	return NewService(app.New(mem, mem, d, logger.Discard())), mem
}

func TestServiceListCalls(t *testing.T) {
	svc, _ := newTestService(t, 25)

	page, err := svc.ListCalls(context.Background(), 3, "")
	if err != nil {
		t.Fatalf("ListCalls failed: %v", err)
	}
	if page.Page != 3 || page.TotalPages != 3 || page.HasNextPage {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Count != 5 || page.Calls[0].ID != "call-021" {
		t.Fatalf("unexpected calls %+v", page.Calls)
	}

	missed, err := svc.ListCalls(context.Background(), 1, "missed")
	if err != nil {
		t.Fatalf("ListCalls failed: %v", err)
	}
	for _, c := range missed.Calls {
		if c.Type != "missed" {
			t.Fatalf("expected missed calls only, got %s", c.Type)
		}
	}

	all, err := svc.ListCalls(context.Background(), 1, "all")
	if err != nil {
		t.Fatalf("ListCalls failed: %v", err)
	}
	if all.Count != 10 || all.Filter != "all" {
		t.Fatalf("filter not cleared: %+v", all)
	}
}

func TestServiceRejectsUnknownFilter(t *testing.T) {
	svc, _ := newTestService(t, 5)
	if _, err := svc.ListCalls(context.Background(), 1, "busy"); err == nil {
		t.Fatal("expected error")
	}
}

func TestServiceAddNote(t *testing.T) {
	svc, _ := newTestService(t, 5)

	dto, err := svc.AddNote(context.Background(), "call-002", "Call back on Monday")
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if dto.NoteCount != 1 || dto.Notes[0].Content != "Call back on Monday" {
		t.Fatalf("unexpected notes %+v", dto.Notes)
	}
}

func TestServiceAddNoteFailureDrafts(t *testing.T) {
	svc, mem := newTestService(t, 5)
	mem.FailNext(directory.OpAddNote, errors.New("offline"))

	if _, err := svc.AddNote(context.Background(), "call-002", "later"); err == nil {
		t.Fatal("expected error")
	}
	list, err := svc.Drafts(context.Background())
	if err != nil {
		t.Fatalf("Drafts failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "call-002" {
		t.Fatalf("unexpected drafts %+v", list)
	}
	dto, err := svc.CallByID(context.Background(), "call-002")
	if err != nil {
		t.Fatalf("CallByID failed: %v", err)
	}
	if dto.Draft != "later" {
		t.Fatalf("draft not attached: %+v", dto)
	}
}

func TestServiceToggleArchive(t *testing.T) {
	svc, _ := newTestService(t, 5)

	dto, err := svc.ToggleArchive(context.Background(), "call-001")
	if err != nil {
		t.Fatalf("ToggleArchive failed: %v", err)
	}
	if !dto.IsArchived || dto.Action != "Unarchive" {
		t.Fatalf("unexpected call %+v", dto)
	}
}
