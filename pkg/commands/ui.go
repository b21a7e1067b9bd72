package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SourceOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
calllog ui
calllog ui --demo
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, so, true)
			if err != nil {
				return err
			}
			defer s.Close()

			i := ui.UI{Service: s.svc, Logger: s.log}
			return i.Do(cmd.Context())
		},
	}

	options.AddSourceArgs(cmd, so)
	options.AddOfflineArg(cmd, so)
	topLevel.AddCommand(cmd)
}
