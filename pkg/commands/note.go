package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/commands/options"
	"tableflip.dev/calllog/pkg/runner/note"
	"tableflip.dev/calllog/pkg/snake"
)

func addNote(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	so := &options.SourceOptions{Offline: true}

	cmd := &cobra.Command{
		Use:     "note [call id] [text]",
		Aliases: []string{"notes"},
		Short:   "add a note to a call",
		Long: `Add a note to a call. A note that cannot be sent is kept as a draft
and offered again the next time you write a note for the same call, or sent
with "calllog drafts --retry".`,
		Example: `
calllog note 2f6c1e1a called back, all sorted
calllog note -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return nil
			}
			if len(args) < 2 {
				return errors.New("requires a call id and a note")
			}
			return nil
		},
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
			content := ""
			if len(args) > 1 {
				content = strings.Join(args[1:], " ")
			}
			if i.Interactive && content == "" {
				content, err = snake.PromptNote(cmd, id, s.svc.Draft(id))
				if err != nil {
					return err
				}
			}

			n := note.Note{
				Service: s.svc,
				ID:      id,
				Content: content,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(n.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddSourceArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
