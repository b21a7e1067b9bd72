package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	io := &options.IDOptions{}
	so := &options.SourceOptions{Offline: true}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list a page of calls grouped by day",
		Example: `
calllog list
calllog list --page 3
calllog list --filter missed --show-id
calllog list --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			page, filter, err := po.Resolve()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(cmd, so, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			l := list.List{
				Service: s.svc,
				Page:    page,
				Filter:  filter,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddPageArgs(cmd, po)
	_ = cmd.RegisterFlagCompletionFunc("filter", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return options.FilterCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)
	options.AddSourceArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
