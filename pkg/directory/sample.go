package directory

import (
	"fmt"
	"time"

	"tableflip.dev/calllog/pkg/call"
)

// SampleCalls builds a deterministic set of calls, newest first, spread over
// the days before now.
func SampleCalls(n int, now time.Time) []call.Call {
	types := call.Types()
	out := make([]call.Call, 0, n)
	for i := 0; i < n; i++ {
		dir := call.DirectionInbound
		if i%3 == 2 {
			dir = call.DirectionOutbound
		}
		typ := types[i%len(types)]
		duration := 0
		if typ != call.TypeMissed {
			duration = 30 + (i*47)%600
		}
		created := now.Add(-time.Duration(i) * 5 * time.Hour).UTC().Truncate(time.Second)
		c := call.Call{
			ID:         fmt.Sprintf("call-%03d", i+1),
			Type:       typ,
			Direction:  dir,
			From:       fmt.Sprintf("+3361%07d", 1000+i*17),
			To:         fmt.Sprintf("+3362%07d", 2000+i*29),
			Via:        fmt.Sprintf("+3363%07d", 3000+i%4),
			Duration:   duration,
			CreatedAt:  call.Timestamp{Time: created},
			IsArchived: i%7 == 6,
		}
		if i%5 == 0 {
			c.Notes = []call.Note{{
				ID:        fmt.Sprintf("seed-%03d", i+1),
				Content:   "Left a message, follow up tomorrow.",
				CreatedAt: call.Timestamp{Time: created.Add(10 * time.Minute)},
			}}
		}
		out = append(out, c)
	}
	return out
}
