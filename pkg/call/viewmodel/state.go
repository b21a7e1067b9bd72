package viewmodel

import "tableflip.dev/calllog/pkg/call"

// Pagination describes the page controls. Frozen is set while a type or
// archived filter is active: the controls then describe the last fetched page
// and do not reflect the filtered subset.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
	PageSize    int
	Frozen      bool
}

// Pages lists the selectable page numbers.
func (p Pagination) Pages() []int {
	out := make([]int, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		out = append(out, i)
	}
	return out
}

// Detail is the state of the call detail view. Its loading and error flags
// are independent of the list's.
type Detail struct {
	Open    bool
	ID      string
	Summary call.Call
	Call    *call.Call
	Loading bool
	Err     string
}

// Snapshot is a copy of the store state, safe to read without locking.
type Snapshot struct {
	Pagination Pagination
	Filter     call.Filter
	// Calls holds the last fetched page; Visible is Calls under Filter.
	Calls   []call.Call
	Visible []call.Call
	Loading bool
	Err     string
	Detail  Detail
}
