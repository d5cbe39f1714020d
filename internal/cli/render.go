package cli

import (
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/tasks"
	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

func style(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// RightAlign marks columns to right-align. When nil every column but
	// the first is right-aligned.
	RightAlign []bool
}

func (t Table) rightAligned(col int) bool {
	if t.RightAlign == nil {
		return col > 0
	}
	return col < len(t.RightAlign) && t.RightAlign[col]
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(lipgloss.NewStyle().Bold(true).Foreground(theme.Active.TextPrimary).Render(title))
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	measure := func(row []string) {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			measure(row)
		}
	}

	dim := style(theme.Active.TextDim)
	header := style(theme.Active.Accent).Bold(true)
	value := style(theme.Active.TextPrimary)

	rule := func(left, mid, right string) string {
		parts := make([]string, numCols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dim.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(row []string, s lipgloss.Style) string {
		var b strings.Builder
		b.WriteString(dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(s.Render(" " + pad(cell, widths[i], t.rightAligned(i)) + " "))
			b.WriteString(dim.Render("│"))
		}
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + header.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, header))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, value))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderProgressBar renders a usage bar for a spend fraction, colored by
// how close it is to the limit. Fractions above 1 fill the bar.
func RenderProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(min(max(fraction, 0), 1) * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return style(theme.Active.UsageColor(fraction)).Render(bar) + " " + FormatPercent(fraction)
}

// RenderTreeLines renders the overview as an indented outline, two spaces
// per level, in the form "Food: Spent 350, Limit 500".
func RenderTreeLines(lines iter.Seq[budget.Line]) string {
	var b strings.Builder
	for l := range lines {
		limit := "None"
		if l.Limit != nil {
			limit = FormatPlain(*l.Limit)
		}
		b.WriteString(strings.Repeat("  ", l.Depth))
		b.WriteString(l.Name + ": Spent " + FormatPlain(l.Aggregate) + ", Limit " + limit)
		b.WriteString("\n")
	}
	return b.String()
}

// BudgetTable lays the overview out as a table, one row per category with
// names indented by depth.
func BudgetTable(lines iter.Seq[budget.Line]) Table {
	t := Table{
		Title:   "Budget",
		Headers: []string{"Category", "Own", "Spent", "Limit", "Remaining", "Used"},
	}
	for l := range lines {
		remaining, used := "", ""
		if r, ok := l.Remaining(); ok {
			remaining = FormatAmount(r)
		}
		if u, ok := l.Usage(); ok {
			used = FormatPercent(u)
			if l.Exceeded() {
				used += " over"
			}
		}
		t.Rows = append(t.Rows, []string{
			strings.Repeat("  ", l.Depth) + l.Name,
			FormatAmount(l.Own),
			FormatAmount(l.Aggregate),
			FormatLimit(l.Limit),
			remaining,
			used,
		})
	}
	return t
}

// TaskTable lists every task with the ids it depends on.
func TaskTable(g *tasks.Graph) Table {
	t := Table{
		Title:      "Tasks",
		Headers:    []string{"ID", "Description", "Priority", "Deadline", "Status", "Depends on"},
		RightAlign: []bool{false, false, false, false, false, false},
	}
	for _, task := range g.Tasks() {
		t.Rows = append(t.Rows, []string{
			task.ID,
			task.Description,
			task.Priority.String(),
			task.DeadlineString(),
			task.Status,
			strings.Join(g.Dependencies(task.ID), ", "),
		})
	}
	return t
}

// RenderCycle renders a cycle path as "a -> b -> a".
func RenderCycle(path []string) string {
	return strings.Join(path, " -> ")
}
