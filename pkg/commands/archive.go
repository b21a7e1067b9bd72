package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/runner/archive"
	"tableflip.dev/calllog/pkg/snake"
)

func addArchive(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	so := &options.SourceOptions{Offline: true}

	cmd := &cobra.Command{
		Use:     "archive [call id]",
		Aliases: []string{"unarchive"},
		Short:   "toggle the archived flag of a call",
		Example: `
calllog archive 2f6c1e1a
calllog archive -i
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
			if i.Interactive {
				ok, err := snake.Confirm(cmd, fmt.Sprintf("Toggle archive on %s", id))
				if err != nil || !ok {
					return err
				}
			}
			a := archive.Archive{
				Service: s.svc,
				ID:      id,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddSourceArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
