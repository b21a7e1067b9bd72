package call

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime parses the ISO-8601 timestamps used on the wire. Fractional
// seconds are optional.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with the wire encoding of created_at fields.
type Timestamp struct {
	time.Time
}

// SameDay reports whether both instants fall on the same local calendar day.
func (t Timestamp) SameDay(then time.Time) bool {
	a := t.Local()
	b := then.Local()
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339Nano)
}
