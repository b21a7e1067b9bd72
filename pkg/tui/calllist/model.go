// Package calllist is the Bubble Tea UI over the call log: a day-grouped
// list with filters and page controls, and a detail panel with notes.
package calllist

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
	"tableflip.dev/calllog/pkg/tui/components/help"
	"tableflip.dev/calllog/pkg/tui/theme"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeNote
)

type liveState int

const (
	liveOff liveState = iota
	liveConnecting
	liveOn
	liveLost
)

// Model is the root Bubble Tea model.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	log   *slog.Logger
	theme theme.Theme

	snap      viewmodel.Snapshot
	groups    []call.DayGroup
	rows      []call.Call // visible calls in rendered order; cursor indexes here
	filters   []call.Filter
	filterIdx int
	cursor    int

	mode  mode
	input textinput.Model
	help  *help.Model

	status    string
	statusErr bool
	live      liveState

	width  int
	height int

	// listen is off in tests so no command blocks on the change feed.
	listen bool
}

// New builds the model. The first page is fetched by Init.
func New(ctx context.Context, svc *app.Service, log *slog.Logger) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = slog.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "Add a note…"
	ti.CharLimit = 1000
	ti.Prompt = "> "

	return &Model{
		ctx:     ctx,
		svc:     svc,
		log:     log.With("component", "tui"),
		theme:   theme.Default(),
		snap:    svc.Store.Snapshot(),
		filters: call.Filters(),
		input:   ti,
		listen:  true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadPage(1)}
	if m.listen {
		cmds = append(cmds, m.waitForChange())
	}
	if m.svc.Live != nil {
		m.live = liveConnecting
		cmds = append(cmds, m.connect())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help != nil {
			m.help.SetSize(m.helpSize())
		}
	case storeChangedMsg:
		m.refresh()
		if m.listen {
			cmds = append(cmds, m.waitForChange())
		}
	case pageLoadedMsg:
		m.refresh()
		if msg.err != nil && !msg.stale && !msg.outOfRange {
			m.setError(viewmodel.MsgListFailed)
		}
	case detailLoadedMsg:
		m.refresh()
	case archiveResultMsg:
		m.refresh()
		m.handleArchiveResult(msg)
	case noteResultMsg:
		m.refresh()
		m.handleNoteResult(msg)
	case liveConnectedMsg:
		if msg.err != nil {
			m.live = liveLost
			m.setError("Live updates unavailable")
			m.log.Warn("live connect failed", "err", msg.err)
			break
		}
		m.live = liveOn
		cmds = append(cmds, m.waitForDisconnect())
	case liveDroppedMsg:
		m.live = liveLost
		if msg.err != nil {
			m.setError("Live updates lost")
			m.log.Warn("live connection dropped", "err", msg.err)
		}
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if m.mode == modeNote {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// refresh re-reads the store and keeps the cursor on the visible rows.
func (m *Model) refresh() {
	m.snap = m.svc.Store.Snapshot()
	m.groups = call.GroupByDate(m.snap.Visible)
	m.rows = m.rows[:0]
	for _, g := range m.groups {
		m.rows = append(m.rows, g.Calls...)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.mode != modeList && !m.snap.Detail.Open {
		m.mode = modeList
	}
}

func (m *Model) helpSize() (int, int) {
	return m.width, m.height - 2
}

func (m *Model) selected() (call.Call, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return call.Call{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.help != nil {
		switch key {
		case "?", "esc", "q":
			m.help = nil
			return nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return cmd
	}
	if key == "?" && m.mode != modeNote {
		m.help = help.New(m.helpSize())
		return nil
	}
	switch m.mode {
	case modeNote:
		return m.handleNoteKey(msg)
	case modeDetail:
		return m.handleDetailKey(key)
	default:
		return m.handleListKey(key)
	}
}

func (m *Model) handleListKey(key string) tea.Cmd {
	switch key {
	case "q", "esc":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "left", "h", "p":
		if !m.snap.Pagination.HasPrevPage {
			return nil
		}
		return m.loadPage(m.snap.Pagination.CurrentPage - 1)
	case "right", "l", "n":
		if !m.snap.Pagination.HasNextPage {
			return nil
		}
		return m.loadPage(m.snap.Pagination.CurrentPage + 1)
	case "f", "tab":
		return m.cycleFilter(1)
	case "F", "shift+tab":
		return m.cycleFilter(-1)
	case "r":
		return m.reload()
	case "a":
		if c, ok := m.selected(); ok {
			return m.toggleArchive(c.ID)
		}
	case "enter":
		if c, ok := m.selected(); ok {
			return m.openDetail(c.ID)
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= m.snap.Pagination.TotalPages {
			return m.loadPage(n)
		}
	}
	return nil
}

func (m *Model) handleDetailKey(key string) tea.Cmd {
	id := m.snap.Detail.ID
	switch key {
	case "esc", "q", "backspace":
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.svc.Store.CloseDetail()
		m.refresh()
	case "a":
		return m.toggleArchive(id)
	case "i", "n":
		if m.snap.Detail.Call == nil {
			return nil
		}
		m.mode = modeNote
		return m.input.Focus()
	case "r":
		return m.openDetail(id)
	}
	return nil
}

func (m *Model) handleNoteKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeDetail
		m.input.Blur()
		return nil
	case "enter":
		content := m.input.Value()
		if err := validateNote(content); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.setStatus("Saving note…")
		return m.addNote(m.snap.Detail.ID, content)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) cycleFilter(step int) tea.Cmd {
	n := len(m.filters)
	m.filterIdx = ((m.filterIdx+step)%n + n) % n
	m.cursor = 0
	return m.setFilter(m.filters[m.filterIdx])
}

func (m *Model) handleArchiveResult(msg archiveResultMsg) {
	switch r := msg.result.(type) {
	case viewmodel.Success:
		if r.Call.IsArchived {
			m.setStatus("Archived " + msg.id)
		} else {
			m.setStatus("Unarchived " + msg.id)
		}
	case viewmodel.Failure:
		m.setError("Could not update " + msg.id + ": " + r.Error())
	}
}

func (m *Model) handleNoteResult(msg noteResultMsg) {
	switch r := msg.result.(type) {
	case viewmodel.Success:
		m.input.SetValue("")
		m.setStatus("Note saved")
		if m.mode == modeNote {
			m.mode = modeDetail
			m.input.Blur()
		}
	case viewmodel.Failure:
		// The typed text stays in the input for another try.
		if m.snap.Detail.ID == msg.id && m.input.Value() == "" {
			m.input.SetValue(r.Input)
		}
		m.setError("Could not save note: " + r.Error() + " (kept as draft)")
	}
}
