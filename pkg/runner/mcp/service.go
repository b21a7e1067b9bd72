// Package mcp provides the Model Context Protocol server integration for calllog.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
)

// Service adapts the call log operations to MCP-friendly shapes.
type Service struct {
	App *app.Service
}

// PageDTO is one page of calls.
type PageDTO struct {
	Page        int       `json:"page"`
	TotalPages  int       `json:"totalPages"`
	HasNextPage bool      `json:"hasNextPage"`
	Filter      string    `json:"filter"`
	Count       int       `json:"count"`
	Calls       []CallDTO `json:"calls"`
}

// NoteDTO is a transport-friendly projection of a note.
type NoteDTO struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Created string `json:"created,omitempty"`
}

// CallDTO is a transport-friendly projection of a call.
type CallDTO struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Direction    string    `json:"direction"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Via          string    `json:"via,omitempty"`
	Duration     int       `json:"duration"`
	DurationText string    `json:"durationText"`
	Created      string    `json:"created"`
	Day          string    `json:"day"`
	IsArchived   bool      `json:"isArchived"`
	Action       string    `json:"action"`
	NoteCount    int       `json:"noteCount"`
	Notes        []NoteDTO `json:"notes,omitempty"`
	Draft        string    `json:"draft,omitempty"`
}

// NewService builds a service wrapper over the application service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("call log is not configured")
	}
	return nil
}

// ListCalls returns page n of the call log narrowed by filter.
func (s *Service) ListCalls(ctx context.Context, page int, filter string) (*PageDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	f, err := call.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	snap, err := s.App.Page(ctx, page, f)
	if err != nil {
		return nil, err
	}
	dto := &PageDTO{
		Page:        snap.Pagination.CurrentPage,
		TotalPages:  snap.Pagination.TotalPages,
		HasNextPage: snap.Pagination.HasNextPage,
		Filter:      snap.Filter.String(),
		Count:       len(snap.Visible),
		Calls:       make([]CallDTO, 0, len(snap.Visible)),
	}
	for _, c := range snap.Visible {
		dto.Calls = append(dto.Calls, toDTO(c, false))
	}
	return dto, nil
}

// CallByID returns the full call, notes included.
func (s *Service) CallByID(ctx context.Context, id string) (*CallDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}
	c, err := s.App.Call(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(c, true)
	dto.Draft = s.App.Draft(id)
	return &dto, nil
}

// AddNote posts a note on a call.
func (s *Service) AddNote(ctx context.Context, id, content string) (*CallDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	switch r := s.App.AddNote(ctx, id, content).(type) {
	case viewmodel.Success:
		dto := toDTO(r.Call, true)
		return &dto, nil
	case viewmodel.Failure:
		return nil, fmt.Errorf("add note: %w", r.Reason)
	default:
		return nil, fmt.Errorf("add note: unexpected result %T", r)
	}
}

// ToggleArchive flips the archive flag of a call.
func (s *Service) ToggleArchive(ctx context.Context, id string) (*CallDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	switch r := s.App.ToggleArchive(ctx, id).(type) {
	case viewmodel.Success:
		dto := toDTO(r.Call, false)
		return &dto, nil
	case viewmodel.Failure:
		return nil, fmt.Errorf("toggle archive: %w", r.Reason)
	default:
		return nil, fmt.Errorf("toggle archive: unexpected result %T", r)
	}
}

// Drafts lists unsent notes.
func (s *Service) Drafts(ctx context.Context) ([]NoteDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if s.App.Drafts == nil {
		return nil, errors.New("drafts are not configured")
	}
	list, err := s.App.Drafts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NoteDTO, 0, len(list))
	for _, d := range list {
		out = append(out, NoteDTO{ID: d.CallID, Content: d.Content, Created: call.FormatDate(d.SavedAt)})
	}
	return out, nil
}

func toDTO(c call.Call, withNotes bool) CallDTO {
	dto := CallDTO{
		ID:           c.ID,
		Type:         string(c.Type),
		Direction:    string(c.Direction),
		From:         c.From,
		To:           c.To,
		Via:          c.Via,
		Duration:     c.Duration,
		DurationText: call.FormatDuration(c.Duration),
		Created:      c.CreatedAt.String(),
		Day:          call.FormatDate(c.CreatedAt.Time),
		IsArchived:   c.IsArchived,
		Action:       c.ArchiveAction(),
		NoteCount:    len(c.Notes),
	}
	if withNotes {
		for _, n := range c.Notes {
			dto.Notes = append(dto.Notes, NoteDTO{ID: n.ID, Content: n.Content, Created: n.CreatedAt.String()})
		}
	}
	return dto
}
