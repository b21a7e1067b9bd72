package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/runner/drafts"
)

func addDrafts(topLevel *cobra.Command) {
	retry := false
	so := &options.SourceOptions{Offline: true}

	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "list notes that could not be sent",
		Example: `
calllog drafts
calllog drafts --retry
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd, so, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			d := drafts.Drafts{
				Service: s.svc,
				Retry:   retry,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(d.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&retry, "retry", false, "Send every draft again.")
	options.AddSourceArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
