package viewmodel

import "fmt"

// ChangeType enumerates store change notifications.
type ChangeType string

const (
	ChangeLoading ChangeType = "loading"
	ChangePage    ChangeType = "page"
	ChangeFilter  ChangeType = "filter"
	ChangeCall    ChangeType = "call"
	ChangeDetail  ChangeType = "detail"
	ChangeError   ChangeType = "error"
	ChangeDiscard ChangeType = "discard"
)

const eventsCapacity = 64

// ChangeMsg announces that the store state changed. Consumers re-read the
// Snapshot; the message only says what kind of change happened.
type ChangeMsg struct {
	Type   ChangeType
	CallID string
	Page   int
}

// Describe renders the change for logs.
func (m ChangeMsg) Describe() string {
	return fmt.Sprintf(`type:%q call:%q page:%d`, m.Type, m.CallID, m.Page)
}

// emit never blocks: a consumer that falls behind picks up the latest state
// from the next Snapshot anyway.
func (s *Store) emit(msg ChangeMsg) {
	select {
	case s.events <- msg:
	default:
	}
}

// Events exposes change notifications.
func (s *Store) Events() <-chan ChangeMsg {
	return s.events
}
