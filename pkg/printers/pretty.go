package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
	"tableflip.dev/calllog/pkg/drafts"
)

const noteWidth = 72

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// TypeColor is the colour a call type is rendered in.
func TypeColor(t call.Type) *color.Color {
	switch t {
	case call.TypeVoicemail:
		return color.New(color.FgBlue)
	case call.TypeAnswered:
		return color.New(color.FgGreen)
	case call.TypeMissed:
		return color.New(color.FgRed)
	default:
		return color.New()
	}
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " call")
	default:
		_, _ = c.Fprintln(pp.out(), " calls")
	}
}

// Calls prints the calls grouped by day.
func (pp *PrettyPrint) Calls(calls []call.Call) {
	if len(calls) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for _, g := range call.GroupByDate(calls) {
		pp.TitleWithCount(g.Day, len(g.Calls))

		tbl := uitable.New()
		tbl.Separator = "  "
		header := []interface{}{bold.Sprint("Type"), bold.Sprint("Direction"), bold.Sprint("From"), bold.Sprint("To"), bold.Sprint("Duration"), bold.Sprint("Status")}
		if pp.ShowID {
			header = append([]interface{}{bold.Sprint("ID")}, header...)
		}
		tbl.AddRow(header...)
		for _, c := range g.Calls {
			status := faint.Sprint("-")
			if c.IsArchived {
				status = "archived"
			}
			row := []interface{}{
				TypeColor(c.Type).Sprint(c.Type),
				c.Direction,
				c.From,
				c.To,
				call.FormatDuration(c.Duration),
				status,
			}
			if pp.ShowID {
				row = append([]interface{}{color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(c.ID)}, row...)
			}
			tbl.AddRow(row...)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// Pagination prints the page controls as text: Previous, the page numbers
// with the current one highlighted, Next.
func (pp *PrettyPrint) Pagination(p viewmodel.Pagination) {
	faint := color.New(color.Faint)
	current := color.New(color.Bold, color.ReverseVideo)

	parts := make([]string, 0, p.TotalPages+2)
	if p.HasPrevPage {
		parts = append(parts, "Previous")
	} else {
		parts = append(parts, faint.Sprint("Previous"))
	}
	for _, n := range p.Pages() {
		label := strconv.Itoa(n)
		if n == p.CurrentPage {
			label = current.Sprint(" " + label + " ")
		}
		parts = append(parts, label)
	}
	if p.HasNextPage {
		parts = append(parts, "Next")
	} else {
		parts = append(parts, faint.Sprint("Next"))
	}
	_, _ = fmt.Fprintln(pp.out(), strings.Join(parts, "  "))
}

// Detail prints a single call with its notes.
func (pp *PrettyPrint) Detail(c call.Call) {
	bold := color.New(color.Bold)

	pp.Title("Call " + c.ID)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Type"), TypeColor(c.Type).Sprint(c.Type))
	tbl.AddRow(bold.Sprint("Direction"), c.Direction)
	tbl.AddRow(bold.Sprint("From"), c.From)
	tbl.AddRow(bold.Sprint("To"), c.To)
	if c.Via != "" {
		tbl.AddRow(bold.Sprint("Via"), c.Via)
	}
	tbl.AddRow(bold.Sprint("Duration"), call.FormatDuration(c.Duration))
	tbl.AddRow(bold.Sprint("Created"), call.FormatDate(c.CreatedAt.Time))
	tbl.AddRow(bold.Sprint("Archived"), c.IsArchived)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	pp.TitleWithNotes(len(c.Notes))
	pp.Notes(c.Notes)
}

func (pp *PrettyPrint) TitleWithNotes(count int) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintf(pp.out(), "Notes (%d)\n", count)
}

func (pp *PrettyPrint) Notes(notes []call.Note) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	faint := color.New(color.Faint)
	for _, n := range notes {
		body := wordwrap.String(n.Content, noteWidth)
		_, _ = fmt.Fprintf(pp.out(), "- %s\n", strings.ReplaceAll(body, "\n", "\n  "))
		if !n.CreatedAt.IsZero() {
			_, _ = faint.Fprintf(pp.out(), "  %s\n", call.FormatDate(n.CreatedAt.Time))
		}
	}
	pp.NewLine()
}

// Drafts prints unsent notes.
func (pp *PrettyPrint) Drafts(list []drafts.Draft) {
	pp.TitleWithCount("Drafts", len(list))
	if len(list) == 0 {
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = noteWidth
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Call"), bold.Sprint("Saved"), bold.Sprint("Note"), bold.Sprint("Reason"))
	for _, d := range list {
		tbl.AddRow(d.CallID, d.SavedAt.Local().Format("Jan 2 15:04"), d.Content, d.Reason)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// JSON prints v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
