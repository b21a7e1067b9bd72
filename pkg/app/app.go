// Package app wires the call directory, the live channel, note drafts and
// the view-model store together so the CLI, the TUI and the MCP server share
// one set of operations.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/call/viewmodel"
	"tableflip.dev/calllog/pkg/config"
	"tableflip.dev/calllog/pkg/directory"
	"tableflip.dev/calllog/pkg/drafts"
	"tableflip.dev/calllog/pkg/live"
)

// DemoCalls is the number of calls seeded in demo mode.
const DemoCalls = 47

// ErrNoToken is returned by Open when no API token is configured outside of
// demo mode.
var ErrNoToken = errors.New("app: api.token not set (use --demo to run on sample data)")

// Live is the push channel as the service uses it. *live.Client satisfies it.
type Live interface {
	viewmodel.Source
	Connect(ctx context.Context) error
	Done() <-chan struct{}
	Err() error
	Disconnect() error
}

// Options tune Open.
type Options struct {
	// Demo runs against an in-memory directory seeded with sample calls.
	Demo   bool
	Logger *slog.Logger
	// Offline skips building the live client.
	Offline bool
}

// Service provides high-level operations over the call log.
type Service struct {
	Store     *viewmodel.Store
	Directory directory.Directory
	Drafts    *drafts.Store
	Live      Live

	log  *slog.Logger
	demo *directory.Memory
}

// Open builds a Service from cfg.
func Open(cfg *config.Config, opts Options) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("app: no config")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Service{log: log}
	if opts.Demo {
		s.demo = directory.NewMemory(directory.SampleCalls(DemoCalls, time.Now())...)
		s.Directory = s.demo
	} else {
		if strings.TrimSpace(cfg.API.Token) == "" {
			return nil, ErrNoToken
		}
		client, err := directory.New(directory.Options{
			BaseURL:       cfg.API.URL,
			Token:         cfg.API.Token,
			ArchiveMethod: cfg.API.ArchiveMethod,
			Timeout:       cfg.API.Timeout,
			Logger:        log,
		})
		if err != nil {
			return nil, err
		}
		s.Directory = client
		if !opts.Offline {
			lc, err := live.New(live.Options{
				Key:          cfg.Pusher.Key,
				Cluster:      cfg.Pusher.Cluster,
				Host:         cfg.Pusher.Host,
				AuthEndpoint: cfg.Pusher.AuthEndpoint,
				Token:        cfg.API.Token,
				Channel:      cfg.Pusher.Channel,
				Event:        cfg.Pusher.Event,
				Logger:       log,
			})
			if err != nil {
				return nil, err
			}
			s.Live = lc
		}
	}

	if cfg.DraftsPath != "" {
		d, err := drafts.Open(cfg.DraftsPath, drafts.WithLogger(log))
		if err != nil {
			return nil, err
		}
		s.Drafts = d
	}

	s.Store = viewmodel.New(s.Directory,
		viewmodel.WithPageSize(cfg.PageSize),
		viewmodel.WithLogger(log),
	)
	if s.demo != nil {
		s.Store.Bind(s.demo)
	}
	if s.Live != nil {
		s.Store.Bind(s.Live)
	}
	return s, nil
}

// New builds a Service over an existing directory. The store is bound to
// src when it is not nil.
func New(dir directory.Directory, src viewmodel.Source, d *drafts.Store, log *slog.Logger, opts ...viewmodel.Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		Directory: dir,
		Drafts:    d,
		log:       log,
		Store:     viewmodel.New(dir, append([]viewmodel.Option{viewmodel.WithLogger(log)}, opts...)...),
	}
	if src != nil {
		s.Store.Bind(src)
	}
	if l, ok := src.(Live); ok {
		s.Live = l
	}
	return s
}

// Demo reports whether the service runs on sample data.
func (s *Service) Demo() bool {
	return s.demo != nil
}

// Connect subscribes to the live channel. Without one it does nothing.
func (s *Service) Connect(ctx context.Context) error {
	if s.Live == nil {
		return nil
	}
	return s.Live.Connect(ctx)
}

// Close disconnects the live channel.
func (s *Service) Close() error {
	if s.Live == nil {
		return nil
	}
	return s.Live.Disconnect()
}

// Page loads page n under filter f and returns the resulting state with one
// fetch of page n. When n lies past the known page count, page 1 is fetched
// first to learn it.
func (s *Service) Page(ctx context.Context, n int, f call.Filter) (viewmodel.Snapshot, error) {
	if n > s.Store.Pagination().TotalPages {
		if err := s.Store.LoadPage(ctx, 1); err != nil {
			return s.Store.Snapshot(), err
		}
	}
	load := s.Store.LoadPage
	if s.Store.Snapshot().Filter != f {
		load = func(ctx context.Context, n int) error {
			return s.Store.LoadPageFiltered(ctx, n, f)
		}
	}
	if err := load(ctx, n); err != nil {
		return s.Store.Snapshot(), err
	}
	return s.Store.Snapshot(), nil
}

// Call fetches the full record of id, notes included.
func (s *Service) Call(ctx context.Context, id string) (call.Call, error) {
	if err := s.Store.SelectCall(ctx, id); err != nil {
		return call.Call{}, err
	}
	d := s.Store.Snapshot().Detail
	if d.Call == nil {
		return call.Call{}, fmt.Errorf("app: call %s not loaded", id)
	}
	return *d.Call, nil
}

// AddNote posts a note. A failed note is kept as a draft for the call; a
// successful one clears the draft.
func (s *Service) AddNote(ctx context.Context, id, content string) viewmodel.Result {
	res := s.Store.AddNote(ctx, id, content)
	if s.Drafts == nil {
		return res
	}
	switch r := res.(type) {
	case viewmodel.Failure:
		if errors.Is(r.Reason, viewmodel.ErrEmptyNote) {
			break
		}
		if err := s.Drafts.Save(id, r.Input, r.Error()); err != nil {
			s.log.Warn("save draft failed", "call", id, "err", err)
		}
	case viewmodel.Success:
		if err := s.Drafts.Delete(id); err != nil {
			s.log.Warn("delete draft failed", "call", id, "err", err)
		}
	}
	return res
}

// ToggleArchive flips the archive flag of id, loading the call first when it
// is not on the current page.
func (s *Service) ToggleArchive(ctx context.Context, id string) viewmodel.Result {
	res := s.Store.ToggleArchive(ctx, id)
	if f, ok := res.(viewmodel.Failure); ok && errors.Is(f.Reason, viewmodel.ErrUnknownCall) {
		if err := s.Store.SelectCall(ctx, id); err != nil {
			return viewmodel.Failure{Reason: err}
		}
		res = s.Store.ToggleArchive(ctx, id)
	}
	return res
}

// RetryDrafts sends every saved draft. Drafts that fail again stay on disk.
func (s *Service) RetryDrafts(ctx context.Context) (sent, failed int, err error) {
	if s.Drafts == nil {
		return 0, 0, errors.New("app: drafts not configured")
	}
	list, err := s.Drafts.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, d := range list {
		switch s.AddNote(ctx, d.CallID, d.Content).(type) {
		case viewmodel.Success:
			sent++
		default:
			failed++
		}
	}
	return sent, failed, nil
}

// Draft returns the saved draft for id, or "".
func (s *Service) Draft(id string) string {
	if s.Drafts == nil {
		return ""
	}
	d, err := s.Drafts.Load(id)
	if err != nil {
		return ""
	}
	return d.Content
}
