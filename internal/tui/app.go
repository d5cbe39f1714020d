// Package tui provides the interactive Bubble Tea dashboard for orgtrack.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/cli"
	"github.com/theirongolddev/orgtrack/internal/config"
	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/input"
	"github.com/theirongolddev/orgtrack/internal/logging"
	"github.com/theirongolddev/orgtrack/internal/tasks"
	"github.com/theirongolddev/orgtrack/internal/tui/components"
	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

const (
	tabBudget = iota
	tabTasks
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// Options configures NewApp.
type Options struct {
	Config config.Config
	// NeedSetup starts the app on the first-run wizard.
	NeedSetup bool
	// SaveConfig persists the wizard's answers. Nil skips saving.
	SaveConfig func(config.Config) error
	Logger     *logging.Logger
}

// App is the root Bubble Tea model.
type App struct {
	tree  *budget.Tree
	graph *tasks.Graph
	cfg   config.Config
	save  func(config.Config) error
	log   *logging.Logger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	budgetCursor int
	taskCursor   int
	cycle        []string

	// Add forms (huh)
	form     *huh.Form
	formKind formKind
	vals     *formValues

	status components.Status

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

// NewApp creates the root model over an existing tree and graph.
func NewApp(tree *budget.Tree, graph *tasks.Graph, opts Options) App {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	a := App{
		tree:      tree,
		graph:     graph,
		cfg:       opts.Config,
		save:      opts.SaveConfig,
		log:       log.WithComponent(logging.ComponentTUI),
		needSetup: opts.NeedSetup,
		cycle:     graph.FindCycle(),
	}
	if a.needSetup {
		a.setupVals = SetupValuesFrom(opts.Config)
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.Init()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil && msg.Width > 0 {
			a.setupForm = a.setupForm.WithWidth(min(msg.Width, 72))
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.form != nil {
			if msg.String() == "esc" {
				a.closeForm()
				a.status = components.Status{Text: "Cancelled"}
				return a, nil
			}
			return a.updateForm(msg)
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.form != nil || a.needSetup {
			break
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if idx := a.tabAtX(msg.X); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil
	}

	// Forward unhandled messages to whichever form is open (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}
	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	if a.activeTab == tabBudget {
		return a.handleBudgetKey(key)
	}
	return a.handleTasksKey(key)
}

func (a App) handleBudgetKey(key string) (tea.Model, tea.Cmd) {
	n := a.tree.Len()
	switch key {
	case "j", "down":
		a.budgetCursor = min(a.budgetCursor+1, n-1)
	case "k", "up":
		a.budgetCursor = max(a.budgetCursor-1, 0)
	case "g", "home":
		a.budgetCursor = 0
	case "G", "end":
		a.budgetCursor = n - 1
	case "a":
		v := &formValues{}
		if sel, ok := a.selectedCategory(); ok && sel.Depth > 0 {
			v.Parent = sel.Name
		}
		return a.openForm(formCategory, v, newCategoryForm(v))
	case "e":
		v := &formValues{}
		if sel, ok := a.selectedCategory(); ok && sel.Depth > 0 {
			v.Category = sel.Name
		}
		return a.openForm(formExpense, v, newExpenseForm(v))
	}
	return a, nil
}

func (a App) handleTasksKey(key string) (tea.Model, tea.Cmd) {
	n := a.graph.Len()
	switch key {
	case "j", "down":
		a.taskCursor = max(min(a.taskCursor+1, n-1), 0)
	case "k", "up":
		a.taskCursor = max(a.taskCursor-1, 0)
	case "a":
		v := &formValues{
			TaskID:   a.graph.NextID(),
			Priority: a.cfg.DefaultPriority().String(),
		}
		return a.openForm(formTask, v, newTaskForm(v))
	case "d":
		v := &formValues{}
		if sel, ok := a.selectedTask(); ok {
			v.From = sel.ID
		}
		return a.openForm(formDependency, v, newDependencyForm(v))
	case "c":
		a.cycle = a.graph.FindCycle()
		if a.cycle != nil {
			a.status = components.Status{Text: "Cycle detected: " + cli.RenderCycle(a.cycle), Kind: components.StatusWarn}
		} else {
			a.status = components.Status{Text: "No cycle detected."}
		}
	}
	return a, nil
}

func (a App) openForm(kind formKind, v *formValues, f *huh.Form) (tea.Model, tea.Cmd) {
	a.formKind = kind
	a.vals = v
	if a.width > 0 {
		f = f.WithWidth(min(a.contentWidth()-4, 72))
	}
	a.form = f
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.vals = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.status = a.submit(a.formKind, *a.vals)
		a.closeForm()
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		a.status = components.Status{Text: "Cancelled"}
		return a, nil
	}
	return a, cmd
}

// submit applies a completed form to the tree or graph and returns the
// status line describing the outcome.
func (a *App) submit(kind formKind, v formValues) components.Status {
	fail := func(err error) components.Status {
		a.log.Debug("form rejected", logging.NewFields().WithError(err, fault.Kind(err)).ToSlice()...)
		return components.Status{Text: cli.ErrorMessage(err), Kind: components.StatusError}
	}

	switch kind {
	case formCategory:
		limit, err := input.ParseLimit(v.Limit)
		if err != nil {
			return fail(err)
		}
		c, err := a.tree.AddCategory(strings.TrimSpace(v.Parent), strings.TrimSpace(v.Name), limit)
		if err != nil {
			return fail(err)
		}
		return components.Status{Text: fmt.Sprintf("Category '%s' added with limit %s", c.Name, cli.FormatLimit(c.Limit))}

	case formExpense:
		amount, err := input.ParseAmount(v.Amount)
		if err != nil {
			return fail(err)
		}
		r, err := a.tree.AddExpense(strings.TrimSpace(v.Category), amount)
		if err != nil {
			return fail(err)
		}
		if adv := r.Advisory(); adv != nil {
			return components.Status{Text: cli.ErrorMessage(adv), Kind: components.StatusWarn}
		}
		if len(r.Ancestors) > 0 {
			return components.Status{Text: cli.ErrorMessage(r.Ancestors[0].Err()), Kind: components.StatusWarn}
		}
		return components.Status{Text: fmt.Sprintf("Expense of %s added to '%s'", cli.FormatAmount(amount), r.Category.Name)}

	case formTask:
		deadline, err := input.ParseDeadline(v.Deadline)
		if err != nil {
			return fail(err)
		}
		p, err := input.ParsePriority(v.Priority)
		if err != nil {
			return fail(err)
		}
		id := strings.TrimSpace(v.TaskID)
		t := tasks.Task{ID: id, Description: strings.TrimSpace(v.Description), Deadline: deadline, Priority: p}
		if err := a.graph.AddTask(t); err != nil {
			return fail(err)
		}
		a.taskCursor = a.graph.Len() - 1
		return components.Status{Text: fmt.Sprintf("Task '%s' added", id)}

	case formDependency:
		from, to := strings.TrimSpace(v.From), strings.TrimSpace(v.To)
		if err := a.graph.AddEdge(from, to); err != nil {
			return fail(err)
		}
		a.cycle = a.graph.FindCycle()
		if a.cycle != nil {
			return components.Status{Text: "Cycle detected: " + cli.RenderCycle(a.cycle), Kind: components.StatusWarn}
		}
		return components.Status{Text: fmt.Sprintf("Task '%s' now depends on '%s'", from, to)}
	}
	return components.Status{}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishSetup()
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// finishSetup applies the wizard's answers to the running session and
// saves them. The root name only takes effect on the next start because
// the tree already exists.
func (a *App) finishSetup() {
	a.setupVals.Apply(&a.cfg)
	theme.SetActive(a.cfg.Appearance.Theme)
	a.needSetup = false
	a.setupForm = nil

	if a.save == nil {
		return
	}
	if err := a.save(a.cfg); err != nil {
		a.log.Warn("saving config", logging.NewFields().WithError(err, "").ToSlice()...)
		a.status = components.Status{Text: "Could not save config: " + err.Error(), Kind: components.StatusError}
		return
	}
	a.status = components.Status{Text: "Saved to " + config.ConfigPath()}
}

func (a App) selectedCategory() (budget.Category, bool) {
	i := 0
	for line := range a.tree.Overview() {
		if i == a.budgetCursor {
			return a.tree.Get(line.ID)
		}
		i++
	}
	return budget.Category{}, false
}

func (a App) selectedTask() (tasks.Task, bool) {
	all := a.graph.Tasks()
	if a.taskCursor < 0 || a.taskCursor >= len(all) {
		return tasks.Task{}, false
	}
	return all[a.taskCursor], true
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  orgtrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"b t", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
		}},
		{"Budget", []struct{ key, desc string }{
			{"a", "Add category under selection"},
			{"e", "Add expense to selection"},
		}},
		{"Tasks", []struct{ key, desc string }{
			{"a", "Add task"},
			{"d", "Add dependency from selection"},
			{"c", "Check for a cycle"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	status := components.RenderStatusBar(w, a.hints(), a.status)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(status), minContentHeight)

	var content string
	switch {
	case a.form != nil:
		content = components.Panel("", a.form.View(), min(cw, 80), true)
	case a.activeTab == tabBudget:
		content = a.renderBudgetTab(cw)
	default:
		content = a.renderTasksTab(cw)
	}
	content = fillLinesWithBackground(padHeight(truncateHeight(content, contentH), contentH), w, t.Background)

	return header + "\n" + content + "\n" + status
}

func (a App) hints() string {
	if a.form != nil {
		return "[enter]next [esc]cancel"
	}
	if a.activeTab == tabBudget {
		return "[a]dd category [e]xpense [?]help [q]uit"
	}
	return "[a]dd task [d]ependency [c]ycle [?]help [q]uit"
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// visibleWindow returns the [start, end) slice of n rows that keeps cursor
// on screen when only h rows fit.
func visibleWindow(n, cursor, h int) (int, int) {
	if h <= 0 || n <= h {
		return 0, n
	}
	start := min(max(cursor-h/2, 0), n-h)
	return start, start + h
}
