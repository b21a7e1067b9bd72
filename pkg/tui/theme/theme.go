package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/calllog/pkg/call"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header     HeaderTheme
	List       ListTheme
	Pagination PaginationTheme
	Footer     FooterTheme
	Panel      PanelTheme
}

// HeaderTheme styles the title and the filter bar.
type HeaderTheme struct {
	Title          lipgloss.Style
	Filter         lipgloss.Style
	FilterSelected lipgloss.Style
	Live           lipgloss.Style
	Offline        lipgloss.Style
}

// ListTheme styles the grouped call rows.
type ListTheme struct {
	Day       lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Action    lipgloss.Style
	Archived  lipgloss.Style
	Voicemail lipgloss.Style
	Answered  lipgloss.Style
	Missed    lipgloss.Style
}

// PaginationTheme styles Previous, page numbers and Next.
type PaginationTheme struct {
	Page     lipgloss.Style
	Current  lipgloss.Style
	Disabled lipgloss.Style
	Frozen   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles the framed call detail panel.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Body  lipgloss.Style
	Note  lipgloss.Style
	Error lipgloss.Style
}

// Type returns the style for a call type.
func (t ListTheme) Type(ct call.Type) lipgloss.Style {
	switch ct {
	case call.TypeVoicemail:
		return t.Voicemail
	case call.TypeAnswered:
		return t.Answered
	case call.TypeMissed:
		return t.Missed
	default:
		return t.Row
	}
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	filter := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	page := lipgloss.NewStyle().Padding(0, 1)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("204"))

	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true),
			Filter:         filter,
			FilterSelected: filter.Foreground(lipgloss.Color("212")).Bold(true).Reverse(true),
			Live:           lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Offline:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		List: ListTheme{
			Day:       lipgloss.NewStyle().Bold(true).Underline(true),
			Row:       lipgloss.NewStyle(),
			Selected:  lipgloss.NewStyle().Reverse(true),
			Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Action:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			Archived:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Voicemail: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
			Answered:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Missed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		Pagination: PaginationTheme{
			Page:     page,
			Current:  page.Foreground(lipgloss.Color("212")).Bold(true).Reverse(true),
			Disabled: page.Foreground(lipgloss.Color("238")),
			Frozen:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  errStyle,
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Label: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12),
			Body:  lipgloss.NewStyle(),
			Note:  lipgloss.NewStyle().PaddingLeft(2),
			Error: errStyle,
		},
	}
}
