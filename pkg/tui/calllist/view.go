package calllist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/calllog/pkg/call"
)

const (
	listHelp   = "↑/↓ move • enter open • a archive • ←/→ page • 1-9 jump • f filter • r reload • ? help • q quit"
	detailHelp = "n add note • a archive • r reload • ? help • esc close"
	noteHelp   = "enter save • esc stop editing"
	helpHelp   = "↑/↓ scroll • ? or esc close"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.help != nil {
		return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), m.help.View(), m.theme.Footer.Help.Render(helpHelp))
	}
	sections := []string{m.viewHeader(), m.viewFilters(), ""}
	if m.mode == modeList {
		sections = append(sections, m.viewList(), m.viewPagination())
	} else {
		sections = append(sections, m.viewDetail())
	}
	sections = append(sections, "", m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewHeader() string {
	title := m.theme.Header.Title.Render("Call log")
	var live string
	switch {
	case m.svc.Demo():
		live = m.theme.Header.Offline.Render("● demo")
	case m.live == liveOn:
		live = m.theme.Header.Live.Render("● live")
	case m.live == liveConnecting:
		live = m.theme.Header.Offline.Render("○ connecting")
	case m.live == liveLost:
		live = m.theme.Footer.Error.Render("○ offline")
	}
	if live == "" {
		return title
	}
	return title + "  " + live
}

func (m *Model) viewFilters() string {
	parts := make([]string, 0, len(m.filters))
	for i, f := range m.filters {
		style := m.theme.Header.Filter
		if i == m.filterIdx {
			style = m.theme.Header.FilterSelected
		}
		parts = append(parts, style.Render(f.Label()))
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewList() string {
	switch {
	case m.snap.Loading && len(m.snap.Visible) == 0:
		return m.theme.List.Muted.Render("Loading…")
	case m.snap.Err != "":
		return m.theme.Footer.Error.Render(m.snap.Err)
	case len(m.snap.Visible) == 0:
		return m.theme.List.Muted.Render("No calls")
	}

	var b strings.Builder
	row := 0
	for gi, g := range m.groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.theme.List.Day.Render(g.Day))
		b.WriteString("\n")
		for _, c := range g.Calls {
			b.WriteString(m.viewRow(c, row == m.cursor))
			b.WriteString("\n")
			row++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewRow(c call.Call, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	typ := m.theme.List.Type(c.Type).Render(fmt.Sprintf("%-9s", c.Type))
	body := fmt.Sprintf("%-8s  %-14s → %-14s  %s",
		c.Direction, c.From, c.To, call.FormatDuration(c.Duration))
	action := m.theme.List.Action.Render("[" + c.ArchiveAction() + "]")

	if c.IsArchived {
		body = m.theme.List.Archived.Render(body)
	}
	line := marker + typ + " " + body + "  " + action
	if selected {
		return m.theme.List.Selected.Render(line)
	}
	return m.theme.List.Row.Render(line)
}

func (m *Model) viewPagination() string {
	p := m.snap.Pagination
	t := m.theme.Pagination

	parts := make([]string, 0, p.TotalPages+2)
	if p.HasPrevPage {
		parts = append(parts, t.Page.Render("Previous"))
	} else {
		parts = append(parts, t.Disabled.Render("Previous"))
	}
	for _, n := range p.Pages() {
		if n == p.CurrentPage {
			parts = append(parts, t.Current.Render(strconv.Itoa(n)))
			continue
		}
		parts = append(parts, t.Page.Render(strconv.Itoa(n)))
	}
	if p.HasNextPage {
		parts = append(parts, t.Page.Render("Next"))
	} else {
		parts = append(parts, t.Disabled.Render("Next"))
	}

	out := strings.Join(parts, "")
	if p.Frozen {
		out += "  " + t.Frozen.Render(fmt.Sprintf("%s on page %d", m.snap.Filter.Label(), p.CurrentPage))
	}
	return out
}

func (m *Model) viewDetail() string {
	d := m.snap.Detail
	th := m.theme.Panel

	c := d.Summary
	if d.Call != nil {
		c = *d.Call
	}

	lines := []string{th.Title.Render("Call " + d.ID)}
	field := func(label, value string) {
		lines = append(lines, th.Label.Render(label)+th.Body.Render(value))
	}
	field("Type", m.theme.List.Type(c.Type).Render(string(c.Type)))
	field("Direction", string(c.Direction))
	field("From", c.From)
	field("To", c.To)
	if c.Via != "" {
		field("Via", c.Via)
	}
	field("Duration", call.FormatDuration(c.Duration))
	field("Created", call.FormatDate(c.CreatedAt.Time))
	field("Status", m.theme.List.Action.Render("["+c.ArchiveAction()+"]"))
	lines = append(lines, "")

	switch {
	case d.Loading:
		lines = append(lines, m.theme.List.Muted.Render("Loading call details…"))
	case d.Err != "":
		lines = append(lines, th.Error.Render(d.Err))
	default:
		lines = append(lines, th.Title.Render(fmt.Sprintf("Notes (%d)", len(c.Notes))))
		if len(c.Notes) == 0 {
			lines = append(lines, m.theme.List.Muted.Render("No notes yet"))
		}
		width := m.noteWidth()
		for _, n := range c.Notes {
			lines = append(lines, th.Note.Render(wordwrap.String(n.Content, width)))
		}
		lines = append(lines, "", m.input.View())
	}

	return th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) noteWidth() int {
	w := m.width - 12
	if w < 20 {
		return 60
	}
	return w
}

func (m *Model) viewFooter() string {
	help := listHelp
	switch m.mode {
	case modeDetail:
		help = detailHelp
	case modeNote:
		help = noteHelp
	}
	lines := []string{}
	if m.status != "" {
		style := m.theme.Footer.Status
		if m.statusErr {
			style = m.theme.Footer.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	lines = append(lines, m.theme.Footer.Help.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
