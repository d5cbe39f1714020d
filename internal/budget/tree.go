// Package budget implements the category tree: named categories rolling their
// expenses up to every ancestor, with optional per-category soft limits.
//
// The tree keeps, for every category, aggregate == own + Σ children's
// aggregate. AddExpense restores the invariant by walking from the booked
// category to the root, so the cost of a booking is bounded by the depth of
// the category rather than the size of the tree.
//
// A Tree is not safe for concurrent use; callers that share one across
// goroutines must serialize every call.
package budget

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/logging"
	"github.com/theirongolddev/orgtrack/internal/nodes"
)

// DefaultRootName names the root when no WithRootName option is given.
const DefaultRootName = "Company Budget"

type entry struct {
	name      string
	limit     *float64
	own       float64
	aggregate float64
}

// Tree is a rooted tree of budget categories.
type Tree struct {
	nodes   *nodes.Tree[entry]
	presets map[string]float64
	log     *logging.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithRootName sets the name of the root category.
func WithRootName(name string) Option {
	return func(t *Tree) {
		if strings.TrimSpace(name) != "" {
			t.nodes = nodes.NewTree(entry{name: name})
		}
	}
}

// WithPresets sets the limits applied to categories created without an
// explicit limit, keyed by category name.
func WithPresets(presets map[string]float64) Option {
	return func(t *Tree) {
		t.presets = make(map[string]float64, len(presets))
		for k, v := range presets {
			t.presets[k] = v
		}
	}
}

// WithLogger sets the logger used to report budget breaches.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.log = l.WithComponent(logging.ComponentBudget)
		}
	}
}

// New creates a tree holding only the root category.
func New(opts ...Option) *Tree {
	t := &Tree{
		nodes: nodes.NewTree(entry{name: DefaultRootName}),
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the root category.
func (t *Tree) Root() Category {
	return t.category(t.nodes.Root())
}

// Len returns the number of categories, root included.
func (t *Tree) Len() int { return t.nodes.Len() }

// Total returns the aggregate expense of the whole tree.
func (t *Tree) Total() float64 {
	return t.nodes.Value(t.nodes.Root()).aggregate
}

// Get returns the category with the given id.
func (t *Tree) Get(id nodes.NodeID) (Category, bool) {
	if !t.nodes.Contains(id) {
		return Category{}, false
	}
	return t.category(id), true
}

// Search returns the first category named name in pre-order, children
// visited in insertion order.
func (t *Tree) Search(name string) (Category, bool) {
	id, ok := t.find(name)
	if !ok {
		return Category{}, false
	}
	return t.category(id), true
}

// AddCategory creates a category named name under the first category named
// parent, or under the root when parent is empty. A nil limit leaves the
// category unconstrained unless a preset exists for name. Sibling names are
// not required to be unique.
func (t *Tree) AddCategory(parent, name string, limit *float64) (Category, error) {
	if strings.TrimSpace(name) == "" {
		return Category{}, fmt.Errorf("category name is empty: %w", fault.ErrValidation)
	}
	if limit != nil {
		if err := validLimit(*limit); err != nil {
			return Category{}, fmt.Errorf("category %q: %w", name, err)
		}
	}

	parentID := t.nodes.Root()
	if parent != "" {
		id, ok := t.find(parent)
		if !ok {
			return Category{}, fmt.Errorf("parent category %q: %w", parent, fault.ErrNotFound)
		}
		parentID = id
	}

	e := entry{name: name}
	switch {
	case limit != nil:
		v := *limit
		e.limit = &v
	default:
		if v, ok := t.presets[name]; ok {
			e.limit = &v
		}
	}

	id, err := t.nodes.Add(parentID, e)
	if err != nil {
		return Category{}, fmt.Errorf("adding category %q: %w", name, err)
	}

	t.log.Debug("category added",
		logging.FieldCategory, name,
		logging.FieldParent, t.nodes.Value(parentID).name,
	)
	return t.category(id), nil
}

// AddExpense books amount against the first category named name and
// recomputes the aggregate of that category and of each ancestor. An
// expense is never rejected for exceeding a limit; the returned Receipt
// reports the breach instead.
func (t *Tree) AddExpense(name string, amount float64) (Receipt, error) {
	if err := validAmount(amount); err != nil {
		return Receipt{}, fmt.Errorf("expense for %q: %w", name, err)
	}
	id, ok := t.find(name)
	if !ok {
		return Receipt{}, fmt.Errorf("category %q: %w", name, fault.ErrNotFound)
	}
	if id == t.nodes.Root() {
		return Receipt{}, fmt.Errorf("category %q: %w", name, fault.ErrRootExpense)
	}

	t.nodes.Edit(id, func(e *entry) { e.own += amount })
	t.recompute(id)
	for a := range t.nodes.Ancestors(id) {
		t.recompute(a)
	}

	r := Receipt{Category: t.category(id), Amount: amount}
	if b, over := t.breach(id); over {
		r.Exceeded = &b
		t.log.Warn("budget exceeded",
			logging.FieldCategory, b.Category,
			logging.FieldAggregate, b.Aggregate,
			logging.FieldLimit, b.Limit,
			logging.FieldOver, b.Over(),
		)
	}
	for a := range t.nodes.Ancestors(id) {
		if b, over := t.breach(a); over {
			r.Ancestors = append(r.Ancestors, b)
		}
	}
	return r, nil
}

// Overview yields every category in pre-order. The sequence may be ranged
// over any number of times and never mutates the tree.
func (t *Tree) Overview() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		t.nodes.Walk(func(id nodes.NodeID, depth int) bool {
			e := t.nodes.Value(id)
			return yield(Line{
				ID:        id,
				Depth:     depth,
				Name:      e.name,
				Own:       e.own,
				Aggregate: e.aggregate,
				Limit:     copyLimit(e.limit),
			})
		})
	}
}

// Check recomputes every aggregate from the stored own expenses and reports
// the first category whose stored aggregate disagrees.
func (t *Tree) Check() error {
	expected := make([]float64, t.nodes.Len())
	// Children always have larger ids than their parent.
	for i := t.nodes.Len() - 1; i >= 0; i-- {
		id := nodes.NodeID(i)
		sum := t.nodes.Value(id).own
		for _, c := range t.nodes.Children(id) {
			sum += expected[c]
		}
		expected[i] = sum
	}
	for i, want := range expected {
		got := t.nodes.Value(nodes.NodeID(i))
		if got.aggregate != want {
			return fmt.Errorf("category %q aggregate %.2f, want %.2f", got.name, got.aggregate, want)
		}
	}
	return nil
}

func (t *Tree) find(name string) (nodes.NodeID, bool) {
	return t.nodes.Find(func(e entry) bool { return e.name == name })
}

// recompute sets the aggregate of id from its own expense and the current
// aggregates of its children.
func (t *Tree) recompute(id nodes.NodeID) {
	sum := t.nodes.Value(id).own
	for _, c := range t.nodes.Children(id) {
		sum += t.nodes.Value(c).aggregate
	}
	t.nodes.Edit(id, func(e *entry) { e.aggregate = sum })
}

func (t *Tree) breach(id nodes.NodeID) (Breach, bool) {
	e := t.nodes.Value(id)
	if e.limit == nil || e.aggregate <= *e.limit {
		return Breach{}, false
	}
	return Breach{ID: id, Category: e.name, Aggregate: e.aggregate, Limit: *e.limit}, true
}

func (t *Tree) category(id nodes.NodeID) Category {
	e := t.nodes.Value(id)
	return Category{
		ID:        id,
		Name:      e.name,
		Limit:     copyLimit(e.limit),
		Own:       e.own,
		Aggregate: e.aggregate,
		Depth:     t.nodes.Depth(id),
	}
}

func validAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("amount %v must be a positive number: %w", v, fault.ErrValidation)
	}
	return nil
}

func validLimit(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("limit %v must be zero or positive: %w", v, fault.ErrValidation)
	}
	return nil
}

func copyLimit(l *float64) *float64 {
	if l == nil {
		return nil
	}
	v := *l
	return &v
}
