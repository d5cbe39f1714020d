package budget

import (
	"fmt"

	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/nodes"
)

// DefaultPresets are the limits applied by name when a category is created
// without one.
func DefaultPresets() map[string]float64 {
	return map[string]float64{
		"Food":          500,
		"Groceries":     300,
		"Restaurants":   200,
		"Travel":        1000,
		"Entertainment": 400,
	}
}

// Category is a snapshot of one node of the tree.
type Category struct {
	ID        nodes.NodeID
	Name      string
	Limit     *float64 // nil means unconstrained
	Own       float64  // booked directly on this category
	Aggregate float64  // Own plus every descendant's Own
	Depth     int
}

// IsRoot reports whether c is the root category.
func (c Category) IsRoot() bool { return c.Depth == 0 }

// Exceeded reports whether the aggregate is above the limit.
func (c Category) Exceeded() bool {
	return c.Limit != nil && c.Aggregate > *c.Limit
}

// Breach describes a category whose aggregate is above its limit.
type Breach struct {
	ID        nodes.NodeID
	Category  string
	Aggregate float64
	Limit     float64
}

// Over returns how far the aggregate is above the limit.
func (b Breach) Over() float64 { return b.Aggregate - b.Limit }

// Err returns the breach as an advisory error wrapping
// fault.ErrBudgetExceeded.
func (b Breach) Err() error {
	return fmt.Errorf("category %q spent %.2f of %.2f: %w", b.Category, b.Aggregate, b.Limit, fault.ErrBudgetExceeded)
}

// Receipt is the result of a successful AddExpense.
type Receipt struct {
	Category Category
	Amount   float64
	// Exceeded is set when the booked category is now over its own limit.
	Exceeded *Breach
	// Ancestors lists every ancestor that is over its own limit, nearest first.
	Ancestors []Breach
}

// Advisory returns the BudgetExceeded advisory for the booked category, or
// nil when it is within its limit.
func (r Receipt) Advisory() error {
	if r.Exceeded == nil {
		return nil
	}
	return r.Exceeded.Err()
}

// Line is one row of the tree overview.
type Line struct {
	ID        nodes.NodeID
	Depth     int
	Name      string
	Own       float64
	Aggregate float64
	Limit     *float64
}

// Exceeded reports whether the aggregate is above the limit.
func (l Line) Exceeded() bool {
	return l.Limit != nil && l.Aggregate > *l.Limit
}

// Remaining returns the limit left unspent, negative once exceeded. The
// second result is false for unconstrained categories.
func (l Line) Remaining() (float64, bool) {
	if l.Limit == nil {
		return 0, false
	}
	return *l.Limit - l.Aggregate, true
}

// Usage returns the aggregate as a fraction of the limit. A zero limit
// reports 1 as soon as anything is spent.
func (l Line) Usage() (float64, bool) {
	if l.Limit == nil {
		return 0, false
	}
	if *l.Limit == 0 {
		if l.Aggregate > 0 {
			return 1, true
		}
		return 0, true
	}
	return l.Aggregate / *l.Limit, true
}
