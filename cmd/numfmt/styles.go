package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header lipgloss.Style
	code   lipgloss.Style
	kind   lipgloss.Style
	muted  lipgloss.Style
}

// newStyles binds the styles to w so colors follow what w supports. With
// noColor the renderer targets io.Discard, which never reports a terminal and
// so renders plain text.
func newStyles(w io.Writer, noColor bool) styles {
	if noColor {
		w = io.Discard
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		code:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		kind:   r.NewStyle().Foreground(lipgloss.Color("13")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
