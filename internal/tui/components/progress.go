package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

// UsageBar renders a category's spend against its limit. fraction is the
// aggregate divided by the limit; values above 1 fill the bar and switch to
// the over-budget color.
func UsageBar(fraction float64, width int) string {
	t := theme.Active
	color := t.UsageColor(fraction)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(fraction > 1)
	return bar.ViewAs(min(max(fraction, 0), 1)) + " " + pctStyle.Render(fmt.Sprintf("%4.0f%%", fraction*100))
}

// NoLimitBar is the placeholder shown instead of a UsageBar for
// unconstrained categories, padded to the same width.
func NoLimitBar(width int) string {
	t := theme.Active
	label := "no limit"
	full := max(width, 4) + 6 // bar plus " 100%"
	return lipgloss.NewStyle().Foreground(t.TextDim).Render(label + strings.Repeat(" ", max(full-len(label), 0)))
}
