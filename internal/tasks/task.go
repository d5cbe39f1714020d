package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/orgtrack/internal/fault"
)

// StatusPending is the status every task starts with. The graph never
// changes it.
const StatusPending = "Pending"

// DeadlineLayout is the date format used for deadlines.
const DeadlineLayout = "2006-01-02"

// Priority orders tasks by urgency.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

var priorityNames = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

func (p Priority) String() string {
	if s, ok := priorityNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// Valid reports whether p is one of the named priorities.
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// ParsePriority accepts "high", "medium" and "low" in any case, plus the
// single-letter forms h, m and l.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "low", "l":
		return PriorityLow, nil
	}
	return 0, fmt.Errorf("priority %q must be High, Medium or Low: %w", s, fault.ErrValidation)
}

// Task is one node of the dependency graph.
type Task struct {
	ID          string
	Description string
	Deadline    time.Time // zero when unset
	Priority    Priority
	Status      string
}

// HasDeadline reports whether a deadline was set.
func (t Task) HasDeadline() bool { return !t.Deadline.IsZero() }

// DeadlineString formats the deadline as YYYY-MM-DD, or "" when unset.
func (t Task) DeadlineString() string {
	if !t.HasDeadline() {
		return ""
	}
	return t.Deadline.Format(DeadlineLayout)
}

// Edge is the dependency From -> To: From depends on To.
type Edge struct {
	From string
	To   string
}
