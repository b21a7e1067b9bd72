package call

import (
	"fmt"
	"time"
)

const dateFormat = "January 2, 2006"

// FormatDuration renders seconds as "M minutes S seconds (D seconds)".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d minutes %d seconds (%d seconds)", seconds/60, seconds%60, seconds)
}

// FormatDate renders the local calendar date of t.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateFormat)
}

// DayGroup is a run of calls sharing a local calendar day.
type DayGroup struct {
	Day   string
	Calls []Call
}

// GroupByDate buckets calls by local calendar day. Groups appear in the order
// their first call appears and calls keep their relative order.
func GroupByDate(calls []Call) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)
	for _, c := range calls {
		day := FormatDate(c.CreatedAt.Time)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Calls = append(groups[i].Calls, c)
	}
	return groups
}
