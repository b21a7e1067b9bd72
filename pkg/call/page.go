package call

// Page is an offset window over the directory's calls.
type Page struct {
	Offset      int    `json:"-"`
	Limit       int    `json:"-"`
	Nodes       []Call `json:"nodes"`
	TotalCount  int    `json:"totalCount"`
	HasNextPage bool   `json:"hasNextPage"`
}

// TotalPages is ceil(total/size). A non-positive size yields zero.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Offset converts a 1-based page number into an item offset.
func Offset(page, size int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * size
}
