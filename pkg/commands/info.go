package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/config"
	"tableflip.dev/calllog/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the settings in use and where they come from.",
		Example: `
calllog info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s := info.Info{
				Config: cfg,
				Out:    cmd.OutOrStdout(),
			}
			return s.Do(contextOf(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}
