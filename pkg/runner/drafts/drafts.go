package drafts

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/printers"
)

// Drafts lists unsent notes and optionally retries them.
type Drafts struct {
	Service *app.Service
	Retry   bool
	JSON    bool
	Out     io.Writer
}

func (d *Drafts) Do(ctx context.Context) error {
	if d.Service == nil || d.Service.Drafts == nil {
		return errors.New("can not list drafts, no draft store")
	}
	out := d.Out
	if out == nil {
		out = color.Output
	}

	if d.Retry {
		sent, failed, err := d.Service.RetryDrafts(ctx)
		if err != nil {
			return err
		}
		if !d.JSON {
			_, _ = fmt.Fprintf(out, "sent %d, failed %d\n", sent, failed)
		}
	}

	list, err := d.Service.Drafts.List(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: out}
	if d.JSON {
		return pp.JSON(list)
	}
	pp.Drafts(list)
	return nil
}
