// Package call defines the call log domain: calls, their notes, pages of
// calls returned by the directory, and the client-side filters applied to
// them.
package call

import (
	"fmt"
	"strings"
)

// Type enumerates how a call ended up.
type Type string

const (
	// TypeVoicemail is a call that went to voicemail.
	TypeVoicemail Type = "voicemail"
	// TypeAnswered is a call that was picked up.
	TypeAnswered Type = "answered"
	// TypeMissed is a call nobody picked up.
	TypeMissed Type = "missed"
)

// Types lists the known call types in display order.
func Types() []Type {
	return []Type{TypeVoicemail, TypeAnswered, TypeMissed}
}

// ParseType resolves a call type from user input.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown call type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a known call type.
func (t Type) Valid() bool {
	switch t {
	case TypeVoicemail, TypeAnswered, TypeMissed:
		return true
	}
	return false
}

// Direction of a call relative to the account.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Note is a user-authored annotation owned by a Call.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

// Call is one telephony event as reported by the call directory.
type Call struct {
	ID         string    `json:"id"`
	Type       Type      `json:"call_type"`
	Direction  Direction `json:"direction"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Via        string    `json:"via"`
	Duration   int       `json:"duration"`
	CreatedAt  Timestamp `json:"created_at"`
	IsArchived bool      `json:"is_archived"`
	Notes      []Note    `json:"notes"`

	// Version is optional; zero means the backend did not supply one.
	Version int64 `json:"version,omitempty"`
}

// Clone returns a deep copy of the call.
func (c Call) Clone() Call {
	if c.Notes != nil {
		notes := make([]Note, len(c.Notes))
		copy(notes, c.Notes)
		c.Notes = notes
	}
	return c
}

// Clones deep copies a slice of calls. A nil input yields nil.
func Clones(calls []Call) []Call {
	if calls == nil {
		return nil
	}
	out := make([]Call, len(calls))
	for i := range calls {
		out[i] = calls[i].Clone()
	}
	return out
}

// IndexOf returns the position of the call with the given id, or -1.
func IndexOf(calls []Call, id string) int {
	for i := range calls {
		if calls[i].ID == id {
			return i
		}
	}
	return -1
}

// ArchiveAction names the action that toggling the archive flag performs.
func (c Call) ArchiveAction() string {
	if c.IsArchived {
		return "Unarchive"
	}
	return "Archive"
}
