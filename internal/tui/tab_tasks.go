package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/orgtrack/internal/cli"
	"github.com/theirongolddev/orgtrack/internal/tasks"
	"github.com/theirongolddev/orgtrack/internal/tui/components"
	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

func priorityColor(p tasks.Priority) lipgloss.Color {
	t := theme.Active
	switch p {
	case tasks.PriorityHigh:
		return t.High
	case tasks.PriorityLow:
		return t.Low
	}
	return t.Medium
}

func (a App) renderTasksTab(cw int) string {
	widths := components.LayoutRow(cw, 3)
	listW := widths[0] + widths[1]
	sideW := widths[2]

	all := a.graph.Tasks()
	cursor := min(a.taskCursor, len(all)-1)

	list := components.Panel("Tasks", a.renderTaskRows(all, cursor, components.PanelInnerWidth(listW)), listW, true)

	var deps string
	if cursor >= 0 {
		deps = a.renderDependencies(all[cursor])
	}
	side := lipgloss.JoinVertical(lipgloss.Left,
		components.Panel("Depends on", deps, sideW, false),
		components.Panel("Cycle check", a.renderCycleStatus(), sideW, false),
	)
	return components.PanelRow(list, side)
}

func (a App) renderTaskRows(all []tasks.Task, cursor, innerW int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	if len(all) == 0 {
		return dim.Render("No tasks. Press a to add one.")
	}

	text := lipgloss.NewStyle().Foreground(t.TextPrimary)
	sel := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	const idW, prioW, dateW = 8, 8, 12
	descW := max(innerW-idW-prioW-dateW-4, 8)

	var b strings.Builder
	fmt.Fprintf(&b, "  %s%s%s%s\n",
		dim.Render(fmt.Sprintf("%-*s", idW, "ID")),
		dim.Render(fmt.Sprintf("%-*s", prioW, "Priority")),
		dim.Render(fmt.Sprintf("%-*s", dateW, "Deadline")),
		dim.Render("Description"))

	start, end := visibleWindow(len(all), cursor, max(a.height-8, 1))
	for i := start; i < end; i++ {
		task := all[i]
		marker, style := "  ", text
		if i == cursor {
			marker, style = "▸ ", sel
		}
		deadline := task.DeadlineString()
		if deadline == "" {
			deadline = "-"
		}
		prio := lipgloss.NewStyle().Foreground(priorityColor(task.Priority))
		fmt.Fprintf(&b, "%s%s%s%s%s",
			style.Render(marker),
			style.Render(fmt.Sprintf("%-*s", idW, truncStr(task.ID, idW-1))),
			prio.Render(fmt.Sprintf("%-*s", prioW, task.Priority)),
			muted.Render(fmt.Sprintf("%-*s", dateW, deadline)),
			style.Render(truncStr(task.Description, descW)))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderDependencies(task tasks.Task) string {
	t := theme.Active
	deps := a.graph.Dependencies(task.ID)
	if len(deps) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render(task.ID + " has no dependencies")
	}
	style := lipgloss.NewStyle().Foreground(t.TextPrimary)
	lines := make([]string, len(deps))
	for i, d := range deps {
		lines[i] = style.Render("→ " + d)
	}
	return strings.Join(lines, "\n")
}

func (a App) renderCycleStatus() string {
	t := theme.Active
	if a.cycle == nil {
		return lipgloss.NewStyle().Foreground(t.Within).Render("No cycle detected")
	}
	warn := lipgloss.NewStyle().Foreground(t.Over).Bold(true)
	return warn.Render("Cycle detected") + "\n" +
		lipgloss.NewStyle().Foreground(t.TextPrimary).Render(cli.RenderCycle(a.cycle))
}
