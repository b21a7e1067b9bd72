package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/call"
	"tableflip.dev/calllog/pkg/snake"
)

// callID returns args[0] or, in interactive mode, lets the user pick a call
// from the first page.
func callID(cmd *cobra.Command, s *session, args []string, interactive bool) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if !interactive {
		return "", errors.New("requires a call id, or use --interactive")
	}
	snap, err := s.svc.Page(cmd.Context(), 1, call.None)
	if err != nil {
		return "", err
	}
	c, err := snake.PickCall(cmd, snap.Visible)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}
