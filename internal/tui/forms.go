package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/orgtrack/internal/input"
	"github.com/theirongolddev/orgtrack/internal/tasks"
)

type formKind int

const (
	formNone formKind = iota
	formCategory
	formExpense
	formTask
	formDependency
)

// formValues backs every form field. The App keeps a pointer so the values
// survive Bubble Tea copying the model on each Update.
type formValues struct {
	Name     string
	Parent   string
	Limit    string
	Category string
	Amount   string

	TaskID      string
	Description string
	Deadline    string
	Priority    string

	From string
	To   string
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validLimit(s string) error {
	_, err := input.ParseLimit(s)
	return stripKind(err)
}

func validAmount(s string) error {
	_, err := input.ParseAmount(s)
	return stripKind(err)
}

func validDeadline(s string) error {
	_, err := input.ParseDeadline(s)
	return stripKind(err)
}

// stripKind drops the wrapped sentinel so the inline form error reads
// cleanly.
func stripKind(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i > 0 {
		msg = msg[:i]
	}
	return errors.New(msg)
}

func newCategoryForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Category name").Value(&v.Name).Validate(required("name")),
			huh.NewInput().Title("Parent category").
				Description("Blank attaches to the root.").
				Value(&v.Parent),
			huh.NewInput().Title("Limit").
				Description("Blank uses the preset for the name, if any.").
				Value(&v.Limit).Validate(validLimit),
		).Title("Add category"),
	).WithShowHelp(false)
}

func newExpenseForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Category").Value(&v.Category).Validate(required("category")),
			huh.NewInput().Title("Amount").Value(&v.Amount).Validate(validAmount),
		).Title("Add expense"),
	).WithShowHelp(false)
}

func newTaskForm(v *formValues) *huh.Form {
	options := []huh.Option[string]{
		huh.NewOption("High", tasks.PriorityHigh.String()),
		huh.NewOption("Medium", tasks.PriorityMedium.String()),
		huh.NewOption("Low", tasks.PriorityLow.String()),
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task ID").Value(&v.TaskID).Validate(required("id")),
			huh.NewInput().Title("Description").Value(&v.Description),
			huh.NewInput().Title("Deadline").
				Description("YYYY-MM-DD, blank for none.").
				Value(&v.Deadline).Validate(validDeadline),
			huh.NewSelect[string]().Title("Priority").Options(options...).Value(&v.Priority),
		).Title("Add task"),
	).WithShowHelp(false)
}

func newDependencyForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(&v.From).Validate(required("task")),
			huh.NewInput().Title("Depends on").Value(&v.To).Validate(required("dependency")),
		).Title("Add dependency"),
	).WithShowHelp(false)
}
