package calllist

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
)

type storeChangedMsg struct {
	change viewmodel.ChangeMsg
}

type pageLoadedMsg struct {
	page       int
	err        error
	stale      bool
	outOfRange bool
}

type detailLoadedMsg struct {
	id  string
	err error
}

type archiveResultMsg struct {
	id     string
	result viewmodel.Result
}

type noteResultMsg struct {
	id     string
	result viewmodel.Result
}

type liveConnectedMsg struct {
	err error
}

type liveDroppedMsg struct {
	err error
}

func validateNote(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("note is empty")
	}
	return nil
}

func pageResult(page int, err error) pageLoadedMsg {
	return pageLoadedMsg{
		page:       page,
		err:        err,
		stale:      errors.Is(err, viewmodel.ErrStale),
		outOfRange: errors.Is(err, viewmodel.ErrPageOutOfRange),
	}
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.svc.Store.Events()
	return func() tea.Msg {
		return storeChangedMsg{change: <-ch}
	}
}

func (m *Model) loadPage(n int) tea.Cmd {
	ctx, store := m.ctx, m.svc.Store
	return func() tea.Msg {
		return pageResult(n, store.LoadPage(ctx, n))
	}
}

func (m *Model) reload() tea.Cmd {
	ctx, store := m.ctx, m.svc.Store
	return func() tea.Msg {
		err := store.Refresh(ctx)
		return pageResult(store.Pagination().CurrentPage, err)
	}
}

func (m *Model) setFilter(f call.Filter) tea.Cmd {
	ctx, store := m.ctx, m.svc.Store
	return func() tea.Msg {
		err := store.SetFilter(ctx, f)
		return pageResult(store.Pagination().CurrentPage, err)
	}
}

func (m *Model) openDetail(id string) tea.Cmd {
	m.mode = modeDetail
	m.input.SetValue(m.svc.Draft(id))
	ctx, store := m.ctx, m.svc.Store
	return func() tea.Msg {
		return detailLoadedMsg{id: id, err: store.SelectCall(ctx, id)}
	}
}

func (m *Model) toggleArchive(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return archiveResultMsg{id: id, result: svc.ToggleArchive(ctx, id)}
	}
}

func (m *Model) addNote(id, content string) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return noteResultMsg{id: id, result: svc.AddNote(ctx, id, content)}
	}
}

func (m *Model) connect() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return liveConnectedMsg{err: svc.Connect(ctx)}
	}
}

func (m *Model) waitForDisconnect() tea.Cmd {
	live := m.svc.Live
	if live == nil {
		return nil
	}
	done := live.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return liveDroppedMsg{err: live.Err()}
	}
}
