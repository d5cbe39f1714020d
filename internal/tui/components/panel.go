package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Panel renders a bordered panel with an optional title. outerWidth is the
// total rendered width including the border. A focused panel uses the
// accent border.
func Panel(title, body string, outerWidth int, focused bool) string {
	t := theme.Active

	border := t.Border
	if focused {
		border = t.BorderAccent
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	content := body
	if title != "" {
		content = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return style.Render(content)
}

// PanelRow joins rendered panels side by side, padding shorter panels so
// every column has the height of the tallest.
func PanelRow(panels ...string) string {
	if len(panels) == 0 {
		return ""
	}
	h := 0
	for _, p := range panels {
		h = max(h, lipgloss.Height(p))
	}
	placed := make([]string, len(panels))
	for i, p := range panels {
		placed[i] = lipgloss.PlaceVertical(h, lipgloss.Top, p)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, placed...)
}

// PanelInnerWidth returns the usable text width inside a Panel of the given
// outer width.
func PanelInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
