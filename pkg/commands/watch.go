package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	so := &options.SourceOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "print live updates to the first page of calls",
		Example: `
calllog watch
calllog watch --show-id
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd, so, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := watch.Watch{
				Service: s.svc,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return w.Do(cmd.Context())
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
