package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

// Status is the last result shown on the status bar.
type Status struct {
	Text string
	Kind StatusKind
}

// StatusKind picks the status color.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusWarn
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// last status message on the right.
func RenderStatusBar(width int, hints string, status Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgColor := t.TextPrimary
	switch status.Kind {
	case StatusWarn:
		msgColor = t.Near
	case StatusError:
		msgColor = t.Over
	}
	msgStyle := lipgloss.NewStyle().Foreground(msgColor).Background(t.Surface).Bold(status.Kind != StatusInfo)

	left := " " + hints
	right := ""
	if status.Text != "" {
		right = status.Text + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Not enough room for both; the message wins.
		left = ""
		padding = max(width-lipgloss.Width(right), 0)
	}

	return base.Render(left+strings.Repeat(" ", padding)) + msgStyle.Render(right)
}
