package viewmodel

import (
	"context"
	"fmt"

	"tableflip.dev/calllog/pkg/call"
)

// SelectCall opens the detail view for id and fetches the full record,
// notes included. The list's loading and error state are not touched. A
// response superseded by a later SelectCall or CloseDetail is discarded.
func (s *Store) SelectCall(ctx context.Context, id string) error {
	s.mu.Lock()
	s.detailToken++
	token := s.detailToken
	summary := call.Call{ID: id}
	if idx := call.IndexOf(s.raw, id); idx >= 0 {
		summary = s.raw[idx].Clone()
	}
	s.detail = Detail{Open: true, ID: id, Summary: summary, Loading: true}
	s.emit(ChangeMsg{Type: ChangeDetail, CallID: id})
	s.mu.Unlock()

	c, err := s.dir.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.detailToken {
		s.log.Debug("discarding superseded detail", "call", id, "token", token, "latest", s.detailToken)
		return ErrStale
	}
	s.detail.Loading = false
	if err != nil {
		s.detail.Err = MsgDetailFailed
		s.log.Error("fetch call details failed", "call", id, "err", err)
		s.emit(ChangeMsg{Type: ChangeDetail, CallID: id})
		return fmt.Errorf("select call %s: %w", id, err)
	}
	s.detail.Call = &c
	s.emit(ChangeMsg{Type: ChangeDetail, CallID: id})
	return nil
}

// CloseDetail closes the detail view. In-flight detail fetches are discarded
// when they complete.
func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailToken++
	id := s.detail.ID
	s.detail = Detail{}
	s.emit(ChangeMsg{Type: ChangeDetail, CallID: id})
}
