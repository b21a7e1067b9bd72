// Package directory talks to the remote call directory: the HTTP API that owns
// calls, notes, and archive state.
package directory

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/calllog/pkg/call"
)

// Directory is the contract the view-model store consumes.
type Directory interface {
	List(ctx context.Context, offset, limit int) (call.Page, error)
	Get(ctx context.Context, id string) (call.Call, error)
	AddNote(ctx context.Context, id, content string) (call.Call, error)
	ToggleArchive(ctx context.Context, id string) error
}

// ErrNotFound is returned when the directory has no call with the given id.
var ErrNotFound = errors.New("directory: call not found")

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("directory: %s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("directory: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == 404
}
