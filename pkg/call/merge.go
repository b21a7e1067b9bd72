package call

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrStaleVersion is returned by Merge when a versioned payload is older than
// the record it would overwrite.
var ErrStaleVersion = errors.New("call: stale version")

// PeekID extracts the identifier from a partial or full call payload.
func PeekID(payload []byte) (string, error) {
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return "", fmt.Errorf("call: decode payload: %w", err)
	}
	if head.ID == "" {
		return "", errors.New("call: payload has no id")
	}
	return head.ID, nil
}

// Merge overlays the fields present in payload onto a copy of existing.
// Fields absent from the payload keep their current values. The identifier
// never changes. When both sides carry a version and the payload's is lower,
// ErrStaleVersion is returned and existing is left as is.
func Merge(existing Call, payload []byte) (Call, error) {
	var versioned struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(payload, &versioned); err != nil {
		return existing, fmt.Errorf("call: decode payload: %w", err)
	}
	if versioned.Version > 0 && existing.Version > 0 && versioned.Version < existing.Version {
		return existing, ErrStaleVersion
	}

	merged := existing.Clone()
	// Unmarshal replaces slices wholesale, so a payload carrying notes
	// replaces the notes rather than appending to the cloned ones.
	if err := json.Unmarshal(payload, &merged); err != nil {
		return existing, fmt.Errorf("call: decode payload: %w", err)
	}
	merged.ID = existing.ID
	return merged, nil
}
