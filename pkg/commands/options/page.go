package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/call"
)

// PageOptions select a page of the call log and a filter over it.
type PageOptions struct {
	Page   int
	Filter string
}

func AddPageArgs(cmd *cobra.Command, o *PageOptions) {
	cmd.Flags().IntVarP(&o.Page, "page", "p", 1,
		"Page to show, starting at 1.")
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", "all",
		"Narrow the page: all, archived, voicemail, answered or missed.")
}

// Resolve validates the page number and parses the filter.
func (o *PageOptions) Resolve() (int, call.Filter, error) {
	if o.Page < 1 {
		return 0, call.None, fmt.Errorf("invalid page %d, pages start at 1", o.Page)
	}
	f, err := call.ParseFilter(o.Filter)
	if err != nil {
		return 0, call.None, err
	}
	return o.Page, f, nil
}

// FilterCompletions lists the accepted --filter values.
func FilterCompletions() []string {
	out := make([]string, 0, 5)
	for _, f := range call.Filters() {
		out = append(out, f.String())
	}
	return out
}
