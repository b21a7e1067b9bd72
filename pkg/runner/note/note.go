package note

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/call/viewmodel"
	"tableflip.dev/calllog/pkg/printers"
)

// Note adds a note to a call. A note that cannot be sent is kept as a draft.
type Note struct {
	Service *app.Service
	ID      string
	Content string
	JSON    bool
	Out     io.Writer
}

func (n *Note) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add note, no service")
	}
	if n.ID == "" {
		return errors.New("can not add note, no call id")
	}

	// Loading the call first makes the response replace the detail record.
	if _, err := n.Service.Call(ctx, n.ID); err != nil {
		return err
	}

	switch r := n.Service.AddNote(ctx, n.ID, n.Content).(type) {
	case viewmodel.Success:
		pp := printers.PrettyPrint{Out: n.Out}
		if n.JSON {
			return pp.JSON(r.Call)
		}
		pp.TitleWithNotes(len(r.Call.Notes))
		pp.Notes(r.Call.Notes)
		return nil
	case viewmodel.Failure:
		if errors.Is(r.Reason, viewmodel.ErrEmptyNote) {
			return r.Reason
		}
		if n.Service.Drafts != nil {
			_, _ = color.New(color.Faint).Fprintf(out(n.Out), "note kept as a draft in %s\n", n.Service.Drafts.Path())
		}
		return fmt.Errorf("add note to %s: %w", n.ID, r.Reason)
	default:
		return fmt.Errorf("add note to %s: unexpected result %T", n.ID, r)
	}
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
