package call

import (
	"fmt"
	"strings"
)

// Filter narrows the calls of the currently loaded page. The zero value is
// the "none" filter and matches every call.
type Filter struct {
	archived bool
	typ      Type
}

var (
	// None matches every call.
	None = Filter{}
	// Archived matches archived calls only.
	Archived = Filter{archived: true}
)

// ByType matches calls of a single type.
func ByType(t Type) Filter {
	return Filter{typ: t}
}

// ParseFilter resolves user input: "", "all" or "none" clear the filter,
// "archived" selects archived calls, anything else must be a call type.
func ParseFilter(s string) (Filter, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "all", "none":
		return None, nil
	case "archived":
		return Archived, nil
	default:
		t, err := ParseType(v)
		if err != nil {
			return None, fmt.Errorf("invalid filter %q: expected all, archived, or a call type", s)
		}
		return ByType(t), nil
	}
}

// Filters lists every selectable filter in menu order.
func Filters() []Filter {
	out := []Filter{None}
	for _, t := range Types() {
		out = append(out, ByType(t))
	}
	return append(out, Archived)
}

// IsNone reports whether the filter is the unfiltered view.
func (f Filter) IsNone() bool {
	return f == None
}

// Match reports whether the call passes the filter.
func (f Filter) Match(c Call) bool {
	switch {
	case f.archived:
		return c.IsArchived
	case f.typ != "":
		return c.Type == f.typ
	default:
		return true
	}
}

// Apply returns the matching calls in their original order. The result never
// aliases the input.
func (f Filter) Apply(calls []Call) []Call {
	out := make([]Call, 0, len(calls))
	for _, c := range calls {
		if f.Match(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (f Filter) String() string {
	switch {
	case f.archived:
		return "archived"
	case f.typ != "":
		return string(f.typ)
	default:
		return "all"
	}
}

// Label is the human readable menu label.
func (f Filter) Label() string {
	switch {
	case f.archived:
		return "Archived"
	case f.typ == TypeVoicemail:
		return "Voice Mail"
	case f.typ != "":
		return strings.ToUpper(string(f.typ[:1])) + string(f.typ[1:])
	default:
		return "All"
	}
}
