package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	so := &options.SourceOptions{Offline: true}

	cmd := &cobra.Command{
		Use:   "get [call id]",
		Short: "show a call with its notes",
		Example: `
calllog get 2f6c1e1a
calllog get -i
calllog get 2f6c1e1a --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd, so, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			id, err := callID(cmd, s, args, i.Interactive)
			if err != nil {
				return oo.HandleError(err)
			}
			g := get.Get{
				Service: s.svc,
				ID:      id,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddSourceArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
