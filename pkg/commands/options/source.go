package options

import (
	"github.com/spf13/cobra"
)

// SourceOptions choose where calls come from.
type SourceOptions struct {
	Demo    bool
	Offline bool
}

func AddSourceArgs(cmd *cobra.Command, o *SourceOptions) {
	cmd.Flags().BoolVar(&o.Demo, "demo", false,
		"Use built-in sample calls instead of the API.")
}

func AddOfflineArg(cmd *cobra.Command, o *SourceOptions) {
	cmd.Flags().BoolVar(&o.Offline, "offline", false,
		"Do not subscribe to live call updates.")
}
