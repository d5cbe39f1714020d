package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/config"
	"github.com/theirongolddev/orgtrack/internal/tasks"
	"github.com/theirongolddev/orgtrack/internal/tui/components"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) App {
	t.Helper()
	return NewApp(budget.New(), tasks.New(), Options{Config: config.DefaultConfig()})
}

func press(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m.(App)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	a := newTestApp(t)
	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab)
		if got := a.tabAtX(pos); got != i {
			t.Fatalf("tabAtX(%d) = %d, want %d", pos, got, i)
		}
		if got := a.tabAtX(pos + w - 1); got != i {
			t.Fatalf("tabAtX(%d) = %d, want %d", pos+w-1, got, i)
		}
		pos += w + 1
	}
	if got := a.tabAtX(pos + 50); got != -1 {
		t.Fatalf("tabAtX past the bar = %d, want -1", got)
	}
}

func TestTabKeysSwitchTabs(t *testing.T) {
	a := press(t, newTestApp(t), runes("t"))
	if a.activeTab != tabTasks {
		t.Fatalf("activeTab = %d after 't'", a.activeTab)
	}
	a = press(t, a, runes("b"))
	if a.activeTab != tabBudget {
		t.Fatalf("activeTab = %d after 'b'", a.activeTab)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabTasks {
		t.Fatalf("activeTab = %d after right", a.activeTab)
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := newTestApp(t)
	x := components.TabVisualWidth(components.Tabs[0]) + 2
	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.(App).activeTab; got != tabTasks {
		t.Fatalf("activeTab = %d after click", got)
	}
}

func TestSubmitCategoryAndExpense(t *testing.T) {
	a := newTestApp(t)

	st := a.submit(formCategory, formValues{Name: "Food", Limit: "300"})
	if st.Kind != components.StatusInfo || !strings.Contains(st.Text, "Food") {
		t.Fatalf("category status = %+v", st)
	}

	st = a.submit(formExpense, formValues{Category: "Food", Amount: "350"})
	if st.Kind != components.StatusWarn || !strings.HasPrefix(st.Text, "Warning:") {
		t.Fatalf("expense status = %+v", st)
	}
	if got := a.tree.Total(); got != 350 {
		t.Fatalf("total = %v", got)
	}
}

func TestSubmitReportsEngineErrors(t *testing.T) {
	a := newTestApp(t)

	st := a.submit(formExpense, formValues{Category: budget.DefaultRootName, Amount: "10"})
	if st.Kind != components.StatusError || st.Text != "Cannot add expense to the root category." {
		t.Fatalf("root expense status = %+v", st)
	}

	st = a.submit(formCategory, formValues{Name: "Food", Parent: "Nowhere"})
	if st.Kind != components.StatusError || !strings.HasPrefix(st.Text, "Not found:") {
		t.Fatalf("unknown parent status = %+v", st)
	}

	st = a.submit(formExpense, formValues{Category: "Food", Amount: "-3"})
	if st.Kind != components.StatusError || !strings.HasPrefix(st.Text, "Input error:") {
		t.Fatalf("bad amount status = %+v", st)
	}
}

func TestSubmitTasksDetectsCycle(t *testing.T) {
	a := newTestApp(t)
	for _, id := range []string{"1", "2"} {
		if st := a.submit(formTask, formValues{TaskID: id, Priority: "High"}); st.Kind != components.StatusInfo {
			t.Fatalf("task %s status = %+v", id, st)
		}
	}

	st := a.submit(formDependency, formValues{From: "1", To: "2"})
	if st.Kind != components.StatusInfo || a.cycle != nil {
		t.Fatalf("first edge status = %+v, cycle = %v", st, a.cycle)
	}

	st = a.submit(formDependency, formValues{From: "2", To: "1"})
	if st.Kind != components.StatusWarn || !strings.HasPrefix(st.Text, "Cycle detected:") {
		t.Fatalf("closing edge status = %+v", st)
	}
	if a.cycle == nil {
		t.Fatal("cycle not recorded")
	}

	st = a.submit(formTask, formValues{TaskID: "1"})
	if st.Kind != components.StatusError || !strings.HasPrefix(st.Text, "Duplicate:") {
		t.Fatalf("duplicate task status = %+v", st)
	}
}

func TestAddCategoryFormPrefillsParent(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.tree.AddCategory("", "Food", nil); err != nil {
		t.Fatal(err)
	}

	a = press(t, a, runes("j"), runes("a"))
	if a.form == nil || a.formKind != formCategory {
		t.Fatal("category form not open")
	}
	if a.vals.Parent != "Food" {
		t.Fatalf("parent prefill = %q", a.vals.Parent)
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.form != nil || a.status.Text != "Cancelled" {
		t.Fatalf("esc did not cancel: form=%v status=%+v", a.form != nil, a.status)
	}
}

func TestAddTaskFormPrefillsNextID(t *testing.T) {
	a := newTestApp(t)
	if err := a.graph.AddTask(tasks.Task{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	a = press(t, a, runes("t"), runes("a"))
	if a.formKind != formTask || a.vals.TaskID != "2" {
		t.Fatalf("task form kind=%d id=%q", a.formKind, a.vals.TaskID)
	}
	if a.vals.Priority != "Medium" {
		t.Fatalf("priority prefill = %q", a.vals.Priority)
	}
}

func TestCycleKeySetsStatus(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, runes("t"), runes("c"))
	if a.status.Text != "No cycle detected." {
		t.Fatalf("status = %+v", a.status)
	}
}

func TestViewAfterResize(t *testing.T) {
	a := newTestApp(t)
	limit := 1000.0
	if _, err := a.tree.AddCategory("", "Travel", &limit); err != nil {
		t.Fatal(err)
	}
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := m.View()
	for _, want := range []string{"Budget", "Categories", "Travel", "1,000.00", "Summary"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if got := lipgloss.Height(view); got != 30 {
		t.Fatalf("view height = %d, want 30", got)
	}

	m, _ = m.Update(runes("t"))
	if view := m.View(); !strings.Contains(view, "No tasks.") {
		t.Fatal("tasks view missing empty notice")
	}
}

func TestViewTooNarrow(t *testing.T) {
	m, _ := newTestApp(t).Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.View(), "Terminal too narrow") {
		t.Fatal("expected narrow-terminal notice")
	}
}

func TestHelpToggles(t *testing.T) {
	a := press(t, newTestApp(t), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !a.showHelp {
		t.Fatal("help not shown")
	}
	a = press(t, a, runes("x"))
	if a.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestVisibleWindow(t *testing.T) {
	cases := []struct{ n, cursor, h, start, end int }{
		{5, 0, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tc := range cases {
		s, e := visibleWindow(tc.n, tc.cursor, tc.h)
		if s != tc.start || e != tc.end {
			t.Errorf("visibleWindow(%d, %d, %d) = %d, %d; want %d, %d", tc.n, tc.cursor, tc.h, s, e, tc.start, tc.end)
		}
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	if v.RootName != cfg.General.RootName || v.DefaultPriority != "Medium" {
		t.Fatalf("seeded values = %+v", v)
	}

	v.RootName = "  Household  "
	v.Theme = "catppuccin-mocha"
	v.DefaultPriority = "High"
	v.Apply(&cfg)

	if cfg.General.RootName != "Household" {
		t.Fatalf("root name = %q", cfg.General.RootName)
	}
	if cfg.Appearance.Theme != "catppuccin-mocha" || cfg.Tasks.DefaultPriority != "High" {
		t.Fatalf("config = %+v", cfg)
	}
}
