// Package drafts keeps note text that could not be saved, keyed by call, so
// it survives a restart and can be retried.
package drafts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNoDraft is returned by Load when the call has no draft.
var ErrNoDraft = errors.New("drafts: no draft for call")

// Draft is an unsent note.
type Draft struct {
	CallID  string    `json:"callId"`
	Content string    `json:"content"`
	Reason  string    `json:"reason,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}

// Store persists drafts on disk, one file per call.
type Store struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger that reports unreadable drafts.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open creates a Store rooted at basePath.
func Open(basePath string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("drafts: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("drafts: ensure base path: %w", err)
	}
	s := &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 256 * 1024,
		}),
		basePath: basePath,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Path is the directory holding the drafts.
func (s *Store) Path() string {
	return s.basePath
}

// Save records content as the draft for callID, replacing any earlier one.
// Blank content removes the draft instead.
func (s *Store) Save(callID, content, reason string) error {
	if callID == "" {
		return errors.New("drafts: call id required")
	}
	if strings.TrimSpace(content) == "" {
		return s.Delete(callID)
	}
	data, err := json.Marshal(Draft{
		CallID:  callID,
		Content: content,
		Reason:  reason,
		SavedAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := s.d.Write(toKey(callID), data); err != nil {
		return fmt.Errorf("drafts: write %s: %w", callID, err)
	}
	return nil
}

// Load returns the draft for callID.
func (s *Store) Load(callID string) (Draft, error) {
	key := toKey(callID)
	if !s.d.Has(key) {
		return Draft{}, ErrNoDraft
	}
	data, err := s.d.Read(key)
	if err != nil {
		return Draft{}, fmt.Errorf("drafts: read %s: %w", callID, err)
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("drafts: decode %s: %w", callID, err)
	}
	return d, nil
}

// Delete drops the draft for callID. Deleting a missing draft is not an error.
func (s *Store) Delete(callID string) error {
	key := toKey(callID)
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

// List returns every draft, oldest first. Drafts that cannot be read are
// logged and skipped.
func (s *Store) List(ctx context.Context) ([]Draft, error) {
	out := make([]Draft, 0)
	for key := range s.d.Keys(ctx.Done()) {
		id, ok := fromKey(key)
		if !ok {
			continue
		}
		d, err := s.Load(id)
		if err != nil {
			s.log.Warn("skipping unreadable draft", "key", key, "call", id, "err", err)
			continue
		}
		out = append(out, d)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].CallID < out[j].CallID
		}
		return out[i].SavedAt.Before(out[j].SavedAt)
	})
	return out, nil
}

const keyPrefix = "draft-"

// Call ids come from the server, so they are encoded to stay filename safe.
func toKey(callID string) string {
	return keyPrefix + base64.RawURLEncoding.EncodeToString([]byte(callID))
}

func fromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, keyPrefix) {
		return "", false
	}
	id, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(key, keyPrefix))
	if err != nil {
		return "", false
	}
	return string(id), true
}
