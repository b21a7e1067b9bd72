package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/config"
	"tableflip.dev/calllog/pkg/logger"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "calllog",
		Short: base.Wrap80("Browse, annotate and archive phone calls from the command line."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			oo.Out = cmd.OutOrStdout()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addGet(topLevel)
	addNote(topLevel)
	addArchive(topLevel)
	addWatch(topLevel)
	addDrafts(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// session is everything a command needs to reach the call log.
type session struct {
	cfg *config.Config
	log *slog.Logger
	svc *app.Service

	logFile io.Closer
}

// openSession loads the config, builds the logger and opens the service.
// With logToFile the log goes to the configured file so it does not draw
// over a full screen UI; otherwise it goes to stderr.
func openSession(cmd *cobra.Command, so *options.SourceOptions, logToFile bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	if logToFile {
		l, closer, err := logger.OpenFile(cfg.Log.File, cfg.Log.Format)
		if err != nil {
			return nil, err
		}
		s.log, s.logFile = l, closer
	} else {
		s.log = logger.New(cmd.ErrOrStderr(), cfg.Log.Format)
	}

	cfg.Watch(func(next *config.Config) {
		if err := logger.SetLevel(next.Log.Level); err != nil {
			s.log.Warn("ignoring log level from config", "err", err)
			return
		}
		s.log.Info("config reloaded", "file", next.File(), "level", next.Log.Level)
	}, func(err error) {
		s.log.Warn("config reload failed", "err", err)
	})

	svc, err := app.Open(cfg, app.Options{
		Demo:    so.Demo,
		Offline: so.Offline,
		Logger:  s.log,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.svc = svc
	cmd.SetContext(logger.With(contextOf(cmd), s.log))
	return s, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (s *session) Close() {
	if s.svc != nil {
		if err := s.svc.Close(); err != nil {
			s.log.Debug("close service", "err", err)
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}
