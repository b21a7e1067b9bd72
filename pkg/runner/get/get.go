package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/printers"
)

// Get prints a single call with its notes.
type Get struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (g *Get) Do(ctx context.Context) error {
	if g.Service == nil {
		return errors.New("can not get, no service")
	}
	if g.ID == "" {
		return errors.New("can not get, no call id")
	}

	c, err := g.Service.Call(ctx, g.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: g.Out}
	if g.JSON {
		return pp.JSON(c)
	}
	pp.NewLine()
	pp.Detail(c)
	if draft := g.Service.Draft(g.ID); draft != "" {
		pp.Title("Unsent draft")
		pp.Notes([]call.Note{{Content: draft}})
	}
	return nil
}
