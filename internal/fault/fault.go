// Package fault defines the error kinds shared by the budget and task engines.
//
// Engines wrap these sentinels with context, so callers classify failures
// with errors.Is rather than by concrete type.
package fault

import "errors"

var (
	// ErrNotFound reports a missing category, task, or parent.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID reports a task id that is already registered.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrRootExpense reports an expense booked directly on the tree root.
	ErrRootExpense = errors.New("root category accepts no direct expense")
	// ErrBudgetExceeded is advisory: the mutation that produced it was applied.
	ErrBudgetExceeded = errors.New("budget exceeded")
	// ErrValidation reports malformed domain input.
	ErrValidation = errors.New("validation failed")
)

// Kind labels used in logs and user-facing messages.
const (
	KindNotFound       = "not_found"
	KindDuplicateID    = "duplicate_id"
	KindRootExpense    = "root_expense_rejected"
	KindBudgetExceeded = "budget_exceeded"
	KindValidation     = "validation"
	KindInternal       = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrNotFound, KindNotFound},
	{ErrDuplicateID, KindDuplicateID},
	{ErrRootExpense, KindRootExpense},
	{ErrBudgetExceeded, KindBudgetExceeded},
	{ErrValidation, KindValidation},
}

// Kind returns the stable label of the first sentinel err wraps, "" for a
// nil error and KindInternal for anything unclassified.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsAdvisory reports whether err only informs the caller and does not signal
// a failed operation.
func IsAdvisory(err error) bool {
	return err != nil && errors.Is(err, ErrBudgetExceeded)
}
