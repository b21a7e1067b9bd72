package ui

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"tableflip.dev/calllog/pkg/app"
	"tableflip.dev/calllog/pkg/tui/calllist"
)

// ErrNoTerminal is returned when stdout is not an interactive terminal.
var ErrNoTerminal = errors.New("ui: stdout is not a terminal, try `calllog list`")

type UI struct {
	Service *app.Service
	Logger  *slog.Logger
}

func (u *UI) Do(ctx context.Context) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNoTerminal
	}
	defer func() {
		if err := u.Service.Close(); err != nil && u.Logger != nil {
			u.Logger.Warn("closing live connection", "err", err)
		}
	}()

	p := tea.NewProgram(calllist.New(ctx, u.Service, u.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
