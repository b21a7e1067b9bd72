package calllist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
	"tableflip.dev/calllog/pkg/directory"
	"tableflip.dev/calllog/pkg/logger"
)

func newModel(t *testing.T, n int) (*Model, *directory.Memory) {
	t.Helper()
	mem := directory.NewMemory(directory.SampleCalls(n, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))...)
	svc := app.New(mem, mem, nil, logger.Discard(), viewmodel.WithPageSize(10))
	m := New(context.Background(), svc, logger.Discard())
	m.listen = false
	run(t, m, m.Init(), 0)
	return m, mem
}

// run executes cmd and feeds the resulting messages back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd, depth int) {
	t.Helper()
	if cmd == nil {
		return
	}
	if depth > 10 {
		t.Fatalf("command chain too deep")
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, m, c, depth+1)
		}
	default:
		_, next := m.Update(msg)
		run(t, m, next, depth+1)
	}
}

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

func press(t *testing.T, m *Model, key string) {
	t.Helper()
	_, cmd := m.Update(keyMsg(key))
	run(t, m, cmd, 0)
}

func TestInitLoadsFirstPage(t *testing.T) {
	m, _ := newModel(t, 25)
	p := m.snap.Pagination
	if p.CurrentPage != 1 || p.TotalPages != 3 || !p.HasNextPage {
		t.Fatalf("unexpected pagination %+v", p)
	}
	if len(m.snap.Visible) != 10 {
		t.Fatalf("expected 10 calls, got %d", len(m.snap.Visible))
	}
	view := m.View()
	for _, want := range []string{"Call log", "Previous", "Next", "[Archive]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPageKeys(t *testing.T) {
	m, _ := newModel(t, 25)

	press(t, m, "right")
	if got := m.snap.Pagination.CurrentPage; got != 2 {
		t.Fatalf("expected page 2, got %d", got)
	}
	press(t, m, "left")
	if got := m.snap.Pagination.CurrentPage; got != 1 {
		t.Fatalf("expected page 1, got %d", got)
	}
	press(t, m, "3")
	if got := m.snap.Pagination.CurrentPage; got != 3 {
		t.Fatalf("expected page 3, got %d", got)
	}
	press(t, m, "right")
	if got := m.snap.Pagination.CurrentPage; got != 3 {
		t.Fatalf("next past the last page moved to %d", got)
	}
	press(t, m, "9")
	if got := m.snap.Pagination.CurrentPage; got != 3 {
		t.Fatalf("out of range page key moved to %d", got)
	}
}

func TestFilterCycle(t *testing.T) {
	m, _ := newModel(t, 25)

	press(t, m, "f")
	if m.snap.Filter != call.ByType(call.TypeVoicemail) {
		t.Fatalf("expected voicemail filter, got %v", m.snap.Filter)
	}
	for _, c := range m.snap.Visible {
		if c.Type != call.TypeVoicemail {
			t.Fatalf("unexpected call %+v", c)
		}
	}
	if !strings.Contains(m.View(), "Voice Mail on page 1") {
		t.Fatalf("frozen pagination hint missing:\n%s", m.View())
	}

	for i := 0; i < len(m.filters)-1; i++ {
		press(t, m, "f")
	}
	if !m.snap.Filter.IsNone() || len(m.snap.Visible) != 10 {
		t.Fatalf("filter not cleared: %v with %d calls", m.snap.Filter, len(m.snap.Visible))
	}
}

func TestArchiveKey(t *testing.T) {
	m, _ := newModel(t, 5)

	press(t, m, "a")
	c, ok := m.selected()
	if !ok || c.ID != "call-001" || !c.IsArchived {
		t.Fatalf("selected call not archived: %+v", c)
	}
	if m.status != "Archived call-001" || m.statusErr {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !strings.Contains(m.View(), "[Unarchive]") {
		t.Fatalf("action label not updated:\n%s", m.View())
	}
}

func TestArchiveFailureShowsError(t *testing.T) {
	m, mem := newModel(t, 5)
	mem.FailNext(directory.OpArchive, errors.New("boom"))

	press(t, m, "a")
	if c, _ := m.selected(); c.IsArchived {
		t.Fatal("call archived despite failure")
	}
	if !m.statusErr {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestDetailOpenClose(t *testing.T) {
	m, _ := newModel(t, 5)

	press(t, m, "enter")
	if m.mode != modeDetail || !m.snap.Detail.Open || m.snap.Detail.Call == nil {
		t.Fatalf("detail not open: mode=%v detail=%+v", m.mode, m.snap.Detail)
	}
	view := m.View()
	for _, want := range []string{"Call call-001", "Notes (1)", "Left a message"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q:\n%s", want, view)
		}
	}

	press(t, m, "esc")
	if m.mode != modeList || m.snap.Detail.Open {
		t.Fatalf("detail not closed: mode=%v", m.mode)
	}
}

func TestCursorFollowsRenderedOrder(t *testing.T) {
	day1 := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, -1)
	mk := func(id string, at time.Time) call.Call {
		return call.Call{
			ID:        id,
			Type:      call.TypeAnswered,
			Direction: call.DirectionInbound,
			From:      "+1 " + id,
			To:        "+2 " + id,
			Duration:  60,
			CreatedAt: call.Timestamp{Time: at},
		}
	}
	// Days interleave in fetch order; the view groups a1 and a2 together.
	mem := directory.NewMemory(
		mk("a1", day1),
		mk("b1", day2),
		mk("a2", day1.Add(30*time.Minute)),
	)
	svc := app.New(mem, mem, nil, logger.Discard(), viewmodel.WithPageSize(10))
	m := New(context.Background(), svc, logger.Discard())
	m.listen = false
	run(t, m, m.Init(), 0)

	press(t, m, "down")
	var marked string
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.Contains(line, "> ") {
			marked = line
		}
	}
	if !strings.Contains(marked, "+1 a2") {
		t.Fatalf("cursor not on second rendered row: %q", marked)
	}

	press(t, m, "enter")
	if got := m.snap.Detail.ID; got != "a2" {
		t.Fatalf("opened %q, want the highlighted a2", got)
	}
}

func TestNoteSaved(t *testing.T) {
	m, _ := newModel(t, 5)
	press(t, m, "down")
	press(t, m, "enter")
	if m.snap.Detail.ID != "call-002" {
		t.Fatalf("unexpected detail %q", m.snap.Detail.ID)
	}

	m.mode = modeNote
	m.input.SetValue("hello")
	press(t, m, "enter")

	notes := m.snap.Detail.Call.Notes
	if len(notes) != 1 || notes[0].Content != "hello" {
		t.Fatalf("note not added: %+v", notes)
	}
	if m.input.Value() != "" || m.mode != modeDetail || m.status != "Note saved" {
		t.Fatalf("unexpected state input=%q mode=%v status=%q", m.input.Value(), m.mode, m.status)
	}
}

func TestNoteFailureKeepsInput(t *testing.T) {
	m, mem := newModel(t, 5)
	press(t, m, "enter")
	before := len(m.snap.Detail.Call.Notes)
	mem.FailNext(directory.OpAddNote, errors.New("boom"))

	m.mode = modeNote
	m.input.SetValue("hello")
	press(t, m, "enter")

	if got := len(m.snap.Detail.Call.Notes); got != before {
		t.Fatalf("notes changed: %d -> %d", before, got)
	}
	if m.input.Value() != "hello" {
		t.Fatalf("input lost: %q", m.input.Value())
	}
	if !m.statusErr {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestBlankNoteRejected(t *testing.T) {
	m, _ := newModel(t, 5)
	press(t, m, "enter")
	m.mode = modeNote
	m.input.SetValue("   ")
	press(t, m, "enter")
	if !m.statusErr || m.status != "note is empty" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestListFailureShown(t *testing.T) {
	m, mem := newModel(t, 5)
	mem.FailNext(directory.OpList, errors.New("boom"))

	press(t, m, "r")
	if !strings.Contains(m.View(), viewmodel.MsgListFailed) {
		t.Fatalf("list error not shown:\n%s", m.View())
	}
}

func TestPushedChangeRefreshesView(t *testing.T) {
	m, _ := newModel(t, 5)
	if err := m.svc.Store.ApplyPush([]byte(`{"id":"call-001","is_archived":true}`)); err != nil {
		t.Fatalf("ApplyPush: %v", err)
	}
	m.Update(storeChangedMsg{})
	if c, _ := m.selected(); !c.IsArchived {
		t.Fatalf("pushed change not shown: %+v", c)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newModel(t, 5)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	press(t, m, "?")
	if m.help == nil {
		t.Fatal("help not open")
	}
	if !strings.Contains(m.help.Content(), "Call detail") || !strings.Contains(m.View(), "? or esc close") {
		t.Fatalf("help not rendered:\n%s", m.View())
	}
	press(t, m, "a")
	if c, _ := m.selected(); c.IsArchived {
		t.Fatal("keys reached the list while help was open")
	}
	press(t, m, "esc")
	if m.help != nil {
		t.Fatal("help not closed")
	}
}
