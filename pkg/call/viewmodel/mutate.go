package viewmodel

import (
	"context"
	"strings"

	"tableflip.dev/calllog/pkg/call"
)

// ToggleArchive asks the directory to flip the archive flag of id. Only when
// the request succeeds is the flag flipped locally, to the negation of the
// value seen when the request was issued, so a pushed update that already
// carried the new value is not toggled back. Failures leave the state as is.
func (s *Store) ToggleArchive(ctx context.Context, id string) Result {
	s.mu.Lock()
	prior, ok := s.archivedLocked(id)
	s.mu.Unlock()
	if !ok {
		return Failure{Reason: ErrUnknownCall}
	}

	if err := s.dir.ToggleArchive(ctx, id); err != nil {
		action := "archive"
		if prior {
			action = "unarchive"
		}
		s.log.Warn("toggle archive failed", "call", id, "action", action, "err", err)
		return Failure{Reason: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	target := !prior
	var updated *call.Call
	if idx := call.IndexOf(s.raw, id); idx >= 0 {
		s.raw[idx].IsArchived = target
		c := s.raw[idx].Clone()
		updated = &c
	}
	if s.detail.ID == id {
		s.detail.Summary.IsArchived = target
		if s.detail.Call != nil {
			s.detail.Call.IsArchived = target
			if updated == nil {
				c := s.detail.Call.Clone()
				updated = &c
			}
		}
	}
	s.derive()
	s.emit(ChangeMsg{Type: ChangeCall, CallID: id})
	if updated == nil {
		// The page moved on while the request was in flight.
		return Success{Call: call.Call{ID: id, IsArchived: target}}
	}
	return Success{Call: *updated}
}

func (s *Store) archivedLocked(id string) (bool, bool) {
	if idx := call.IndexOf(s.raw, id); idx >= 0 {
		return s.raw[idx].IsArchived, true
	}
	if s.detail.ID == id && s.detail.Call != nil {
		return s.detail.Call.IsArchived, true
	}
	return false, false
}

// AddNote posts content as a note on id. On success the open detail record
// for id is replaced by the directory's response, which is authoritative for
// note order and identifiers, and any detail fetch issued before it is
// discarded. On failure nothing changes and the content is
// handed back in Failure.Input.
func (s *Store) AddNote(ctx context.Context, id, content string) Result {
	if strings.TrimSpace(content) == "" {
		return Failure{Reason: ErrEmptyNote, Input: content}
	}

	updated, err := s.dir.AddNote(ctx, id, content)
	if err != nil {
		s.log.Warn("add note failed", "call", id, "err", err)
		return Failure{Reason: err, Input: content}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail.Open && s.detail.ID == id {
		// A detail fetch still in flight predates the note; fence it out.
		s.detailToken++
		c := updated.Clone()
		s.detail.Call = &c
		s.detail.Loading = false
		s.detail.Err = ""
		s.emit(ChangeMsg{Type: ChangeDetail, CallID: id})
	}
	return Success{Call: updated.Clone()}
}
