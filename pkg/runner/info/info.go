package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/calllog/pkg/config"
	"tableflip.dev/calllog/pkg/drafts"
	"tableflip.dev/calllog/pkg/logger"
)

// Info prints where calllog reads its settings from and what it will use.
type Info struct {
	Config *config.Config
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}
	c := n.Config

	file := c.File()
	if file == "" {
		file = "none, using defaults"
	}
	token := "not set"
	if c.API.Token != "" {
		token = "set"
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Config file"), file)
	tbl.AddRow(bold.Sprint("API"), c.API.URL)
	tbl.AddRow(bold.Sprint("API token"), token)
	tbl.AddRow(bold.Sprint("Archive method"), c.API.ArchiveMethod)
	tbl.AddRow(bold.Sprint("Pusher"), fmt.Sprintf("%s (%s) %s/%s", c.Pusher.Key, c.Pusher.Cluster, c.Pusher.Channel, c.Pusher.Event))
	tbl.AddRow(bold.Sprint("Page size"), c.PageSize)
	tbl.AddRow(bold.Sprint("Drafts"), c.DraftsPath)
	tbl.AddRow(bold.Sprint("Log"), fmt.Sprintf("%s (%s, %s)", c.Log.File, c.Log.Level, c.Log.Format))
	_, _ = fmt.Fprintln(out, tbl)

	if c.DraftsPath == "" {
		return nil
	}
	d, err := drafts.Open(c.DraftsPath, drafts.WithLogger(logger.From(ctx)))
	if err != nil {
		return err
	}
	list, err := d.List(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Unsent drafts: %d\n", len(list))
	return nil
}
