package archive

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

// Archive flips the archive flag of a call.
type Archive struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (a *Archive) Do(ctx context.Context) error {
	if a.Service == nil {
		return errors.New("can not archive, no service")
	}
	if a.ID == "" {
		return errors.New("can not archive, no call id")
	}

	switch r := a.Service.ToggleArchive(ctx, a.ID).(type) {
	case viewmodel.Success:
		if a.JSON {
			pp := printers.PrettyPrint{Out: a.Out}
			return pp.JSON(r.Call)
		}
		w := a.Out
		if w == nil {
			w = color.Output
		}
		state := "unarchived"
		if r.Call.IsArchived {
			state = "archived"
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", a.ID, color.New(color.Bold).Sprint(state))
		return nil
	case viewmodel.Failure:
		return fmt.Errorf("toggle archive of %s: %w", a.ID, r.Reason)
	default:
		return fmt.Errorf("toggle archive of %s: unexpected result %T", a.ID, r)
	}
}
