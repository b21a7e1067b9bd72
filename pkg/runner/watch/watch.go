package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
	"tableflip.dev/calllog/pkg/printers"
)

// Watch loads the first page and prints every pushed change to it until the
// context ends or the channel drops.
type Watch struct {
	Service *app.Service
	ShowID  bool
	Out     io.Writer
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("can not watch, no service")
	}
	if w.Service.Live == nil {
		return errors.New("can not watch, no live channel configured")
	}
	out := w.Out
	if out == nil {
		out = color.Output
	}

	if err := w.Service.Store.LoadPage(ctx, 1); err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: w.ShowID, Out: out}
	pp.Calls(w.Service.Store.Snapshot().Visible)

	if err := w.Service.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = w.Service.Close() }()
	_, _ = color.New(color.Faint).Fprintln(out, "watching for updates, ctrl-c to stop")

	events := w.Service.Store.Events()
	done := w.Service.Live.Done()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return w.Service.Live.Err()
		case msg := <-events:
			if msg.Type != viewmodel.ChangeCall {
				continue
			}
			snap := w.Service.Store.Snapshot()
			idx := call.IndexOf(snap.Calls, msg.CallID)
			if idx < 0 {
				continue
			}
			c := snap.Calls[idx]
			state := "active"
			if c.IsArchived {
				state = "archived"
			}
			_, _ = fmt.Fprintf(out, "%s  %s  %s  %s  notes:%d\n",
				time.Now().Format("15:04:05"),
				color.New(color.Bold).Sprint(c.ID),
				printers.TypeColor(c.Type).Sprint(c.Type),
				state,
				len(c.Notes),
			)
		}
	}
}
