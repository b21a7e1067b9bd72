package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/printers"
)

// List prints one page of the call log.
type List struct {
	Service *app.Service
	Page    int
	Filter  call.Filter
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

type listing struct {
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	HasNextPage bool        `json:"hasNextPage"`
	Filter      string      `json:"filter"`
	Calls       []call.Call `json:"calls"`
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not list, no service")
	}
	page := l.Page
	if page < 1 {
		page = 1
	}

	snap, err := l.Service.Page(ctx, page, l.Filter)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	if l.JSON {
		return pp.JSON(listing{
			Page:        snap.Pagination.CurrentPage,
			TotalPages:  snap.Pagination.TotalPages,
			HasNextPage: snap.Pagination.HasNextPage,
			Filter:      snap.Filter.String(),
			Calls:       snap.Visible,
		})
	}

	pp.NewLine()
	pp.Calls(snap.Visible)
	if snap.Pagination.Frozen {
		pp.Title("Filtered by " + snap.Filter.Label() + " on this page")
	}
	pp.Pagination(snap.Pagination)
	return nil
}
