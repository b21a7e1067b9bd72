// Package snake holds the interactive prompts behind the -i flags.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/calllog/pkg/call"
)

// ValidateNote rejects blank notes.
func ValidateNote(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("note is empty")
	}
	return nil
}

// PromptNote asks for the text of a note on callID. initial pre-fills the
// answer, typically with a saved draft.
func PromptNote(cmd *cobra.Command, callID, initial string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Note for %s", callID),
		Default:   initial,
		AllowEdit: initial != "",
		Templates: templates,
		Validate:  ValidateNote,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopCloser{cmd.OutOrStdout()},
	}

	result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// PickCall lets the user choose one of calls.
func PickCall(cmd *cobra.Command, calls []call.Call) (call.Call, error) {
	if len(calls) == 0 {
		return call.Call{}, errors.New("no calls to choose from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .ID | bold }} {{ .Type | green }} {{ .From }} → {{ .To }}",
		Inactive: "   {{ .ID }} {{ .Type | cyan }} {{ .From }} → {{ .To }}",
		Selected: "{{ .ID | bold }}",
		Details: `
--------- Call ----------
{{ "Direction:" | faint }}	{{ .Direction }}
{{ "Duration:" | faint }}	{{ .Duration }}s
{{ "Archived:" | faint }}	{{ .IsArchived }}
{{ "Notes:" | faint }}	{{ len .Notes }}
`,
	}

	searcher := func(input string, index int) bool {
		c := calls[index]
		haystack := strings.ToLower(strings.Join([]string{c.ID, string(c.Type), c.From, c.To}, " "))
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(strings.Replace(haystack, " ", "", -1), input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Calls",
		Items:     calls,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return call.Call{}, fmt.Errorf("prompt failed: %w", err)
	}
	return calls[i], nil
}

// Confirm asks a yes/no question. Declining is not an error.
func Confirm(cmd *cobra.Command, label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopCloser{cmd.OutOrStdout()},
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
