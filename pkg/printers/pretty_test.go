package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
	"tableflip.dev/calllog/pkg/directory"
)

func TestCallsGroupedByDay(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{ShowID: true, Out: &buf}
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)
	calls := directory.SampleCalls(6, now)

	pp.Calls(calls)

	out := buf.String()
	for _, g := range call.GroupByDate(calls) {
		if !strings.Contains(out, g.Day) {
			t.Fatalf("missing day heading %q in\n%s", g.Day, out)
		}
	}
	if !strings.Contains(out, "call-001") || !strings.Contains(out, "call-006") {
		t.Fatalf("ids not printed:\n%s", out)
	}
}

func TestCallsEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Calls(nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none, got %q", buf.String())
	}
}

func TestPagination(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Pagination(viewmodel.Pagination{CurrentPage: 2, TotalPages: 3, HasNextPage: true, HasPrevPage: true})
	out := buf.String()
	for _, want := range []string{"Previous", "1", "2", "3", "Next"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestDetail(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	c := call.Call{
		ID:        "c1",
		Type:      call.TypeAnswered,
		Direction: call.DirectionInbound,
		From:      "+33100000000",
		To:        "+33200000000",
		Duration:  75,
		Notes:     []call.Note{{ID: "n1", Content: "called back"}},
	}
	pp.Detail(c)
	out := buf.String()
	for _, want := range []string{"Call c1", "1 minutes 15 seconds (75 seconds)", "Notes (1)", "called back"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	if err := pp.JSON(map[string]int{"count": 2}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"count": 2`) {
		t.Fatalf("unexpected json %q", buf.String())
	}
}
