package plan

import (
	"fmt"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/input"
	"github.com/theirongolddev/orgtrack/internal/logging"
	"github.com/theirongolddev/orgtrack/internal/tasks"
)

// Report counts the operations a plan applied and collects the budget
// advisories raised along the way.
type Report struct {
	Categories   int
	Expenses     int
	Tasks        int
	Dependencies int
	Advisories   []budget.Breach
}

// Operations returns the number of operations applied.
func (r Report) Operations() int {
	return r.Categories + r.Expenses + r.Tasks + r.Dependencies
}

// ApplyOption configures Apply.
type ApplyOption func(*applyConfig)

type applyConfig struct {
	log *logging.Logger
}

// WithLogger logs each booked expense, note included, at debug level.
func WithLogger(l *logging.Logger) ApplyOption {
	return func(c *applyConfig) {
		if l != nil {
			c.log = l.WithComponent(logging.ComponentPlan)
		}
	}
}

// Apply replays the plan section by section: categories, then expenses,
// then tasks, then dependencies, each in file order. It stops at the first operation that fails and
// returns the report of everything applied before it; the failing
// operation itself leaves both engines unchanged.
func (p *Plan) Apply(tree *budget.Tree, graph *tasks.Graph, opts ...ApplyOption) (Report, error) {
	cfg := applyConfig{log: logging.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	var r Report

	for i, c := range p.Categories {
		if _, err := tree.AddCategory(c.Parent, c.Name, c.Limit); err != nil {
			return r, fmt.Errorf("categories[%d] %q: %w", i, c.Name, err)
		}
		r.Categories++
	}

	for i, e := range p.Expenses {
		receipt, err := tree.AddExpense(e.Category, e.Amount)
		if err != nil {
			return r, fmt.Errorf("expenses[%d] %q: %w", i, e.Category, err)
		}
		r.Expenses++
		cfg.log.Debug("expense booked", logging.NewFields().
			WithOperation(logging.OpAddExpense).
			With(logging.FieldCategory, receipt.Category.Name).
			With(logging.FieldAmount, e.Amount).
			With(logging.FieldNote, e.Note).ToSlice()...)
		if receipt.Exceeded != nil {
			r.Advisories = append(r.Advisories, *receipt.Exceeded)
		}
	}

	for i, t := range p.Tasks {
		task, err := t.toTask()
		if err != nil {
			return r, fmt.Errorf("tasks[%d] %q: %w", i, t.ID, err)
		}
		if err := graph.AddTask(task); err != nil {
			return r, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		r.Tasks++
	}

	for i, d := range p.Dependencies {
		if err := graph.AddEdge(d.From, d.To); err != nil {
			return r, fmt.Errorf("dependencies[%d] %s -> %s: %w", i, d.From, d.To, err)
		}
		r.Dependencies++
	}

	return r, nil
}

func (t Task) toTask() (tasks.Task, error) {
	deadline, err := input.ParseDeadline(t.Deadline)
	if err != nil {
		return tasks.Task{}, err
	}
	priority, err := input.ParsePriority(t.Priority)
	if err != nil {
		return tasks.Task{}, err
	}
	return tasks.Task{
		ID:          t.ID,
		Description: t.Description,
		Deadline:    deadline,
		Priority:    priority,
	}, nil
}
