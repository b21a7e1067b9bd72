package note

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/directory"
	"tableflip.dev/calllog/pkg/drafts"
	"tableflip.dev/calllog/pkg/logger"
)

func setup(t *testing.T) (*app.Service, *directory.Memory) {
	t.Helper()
	mem := directory.NewMemory(directory.SampleCalls(3, time.Now())...)
	d, err := drafts.Open(t.TempDir())
	if err != nil {
		t.Fatalf("drafts: %v", err)
	}
	return app.New(mem, mem, d, logger.Discard()), mem
}

func TestNoteAdded(t *testing.T) {
	svc, _ := setup(t)
	var buf bytes.Buffer
	n := Note{Service: svc, ID: "call-002", Content: "hello", Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("note not printed: %q", buf.String())
	}
}

func TestNoteFailureKeepsDraft(t *testing.T) {
	svc, mem := setup(t)
	mem.FailNext(directory.OpAddNote, errors.New("offline"))
	var buf bytes.Buffer
	n := Note{Service: svc, ID: "call-002", Content: "hello", Out: &buf}
	if err := n.Do(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := svc.Draft("call-002"); got != "hello" {
		t.Fatalf("draft %q", got)
	}
}
