package viewmodel

import (
	"errors"

	"tableflip.dev/calllog/pkg/call"
)

// ApplyPush merges a pushed call payload into the loaded page and the open
// detail record. Only the fields present in the payload are overwritten and
// the call keeps its position. Updates for calls that are not loaded are
// ignored: nothing is inserted and nothing is fetched.
//
// Updates apply in arrival order. When the payload and the held record both
// carry a version, an older payload is dropped.
func (s *Store) ApplyPush(payload []byte) error {
	id, err := call.PeekID(payload)
	if err != nil {
		s.log.Warn("ignoring malformed update", "err", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	applied := false

	if idx := call.IndexOf(s.raw, id); idx >= 0 {
		merged, err := call.Merge(s.raw[idx], payload)
		switch {
		case errors.Is(err, call.ErrStaleVersion):
			s.log.Debug("dropping stale update", "call", id)
		case err != nil:
			s.log.Warn("ignoring malformed update", "call", id, "err", err)
			return err
		default:
			s.raw[idx] = merged
			applied = true
		}
	}

	if s.detail.ID == id && s.detail.Call != nil {
		merged, err := call.Merge(*s.detail.Call, payload)
		if err == nil {
			s.detail.Call = &merged
			applied = true
		}
	}

	if !applied {
		return nil
	}
	s.derive()
	s.emit(ChangeMsg{Type: ChangeCall, CallID: id})
	return nil
}
