package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/cli"
	"github.com/theirongolddev/orgtrack/internal/tui/components"
	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

const budgetBarWidth = 12

func (a App) renderBudgetTab(cw int) string {
	widths := components.LayoutRow(cw, 3)
	treeW := widths[0] + widths[1]
	detailW := widths[2]

	var lines []budget.Line
	for line := range a.tree.Overview() {
		lines = append(lines, line)
	}
	cursor := min(a.budgetCursor, len(lines)-1)

	tree := components.Panel("Categories", a.renderCategoryRows(lines, cursor, components.PanelInnerWidth(treeW)), treeW, true)

	var detail string
	if cursor >= 0 {
		if c, ok := a.tree.Get(lines[cursor].ID); ok {
			detail = renderCategoryDetail(c, lines[cursor])
		}
	}
	side := lipgloss.JoinVertical(lipgloss.Left,
		components.Panel("Selected", detail, detailW, false),
		components.Panel("Summary", a.renderBudgetSummary(lines), detailW, false),
	)

	return components.PanelRow(tree, side)
}

func (a App) renderCategoryRows(lines []budget.Line, cursor, innerW int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	headStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	const amountW = 12
	barW := budgetBarWidth + 6
	nameW := max(innerW-2*amountW-barW-4, 8)

	var b strings.Builder
	fmt.Fprintf(&b, "  %s%s%s %s\n",
		headStyle.Render(fmt.Sprintf("%-*s", nameW, "Category")),
		headStyle.Render(fmt.Sprintf("%*s", amountW, "Spent")),
		headStyle.Render(fmt.Sprintf("%*s", amountW, "Limit")),
		headStyle.Render(" Usage"))

	start, end := visibleWindow(len(lines), cursor, max(a.height-8, 1))
	for i := start; i < end; i++ {
		line := lines[i]
		marker, style := "  ", nameStyle
		if i == cursor {
			marker, style = "▸ ", selStyle
		}
		name := truncStr(strings.Repeat("  ", line.Depth)+line.Name, nameW)

		bar := components.NoLimitBar(budgetBarWidth)
		if usage, ok := line.Usage(); ok {
			bar = components.UsageBar(usage, budgetBarWidth)
		}

		limit := cli.FormatLimit(line.Limit)
		fmt.Fprintf(&b, "%s%s%s%s %s",
			style.Render(marker),
			style.Render(fmt.Sprintf("%-*s", nameW, name)),
			numStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatAmount(line.Aggregate))),
			numStyle.Render(fmt.Sprintf("%*s", amountW, limit)),
			" "+bar)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCategoryDetail(c budget.Category, line budget.Line) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	rows := [][2]string{
		{"Name", c.Name},
		{"Depth", fmt.Sprintf("%d", c.Depth)},
		{"Own", cli.FormatAmount(c.Own)},
		{"Spent", cli.FormatAmount(c.Aggregate)},
		{"Limit", cli.FormatLimit(c.Limit)},
	}
	if rem, ok := line.Remaining(); ok {
		rows = append(rows, [2]string{"Remaining", cli.FormatAmount(rem)})
	}

	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "%s %s", labelStyle.Render(fmt.Sprintf("%-10s", r[0])), valueStyle.Render(r[1]))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	if c.Exceeded() {
		over := lipgloss.NewStyle().Foreground(t.Over).Bold(true)
		b.WriteString("\n\n" + over.Render(fmt.Sprintf("Over by %s", cli.FormatAmount(c.Aggregate-*c.Limit))))
	}
	return b.String()
}

func (a App) renderBudgetSummary(lines []budget.Line) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	over := 0
	for _, l := range lines {
		if l.Exceeded() {
			over++
		}
	}
	overStyle := valueStyle
	if over > 0 {
		overStyle = lipgloss.NewStyle().Foreground(t.Over).Bold(true)
	}

	return strings.Join([]string{
		labelStyle.Render("Total spent ") + valueStyle.Render(cli.FormatAmount(a.tree.Total())),
		labelStyle.Render("Categories  ") + valueStyle.Render(cli.FormatNumber(int64(len(lines)))),
		labelStyle.Render("Over limit  ") + overStyle.Render(cli.FormatNumber(int64(over))),
	}, "\n")
}
