// Package input converts raw text from the shell, forms and plan files into
// the typed values the budget and task engines accept.
//
// Every parse error wraps fault.ErrValidation.
package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/tasks"
)

// ParseAmount parses an expense amount. Both dot (12.34) and comma (12,34)
// decimal separators are accepted; the value must be greater than zero.
func ParseAmount(s string) (float64, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("amount %q must be greater than zero: %w", s, fault.ErrValidation)
	}
	return v, nil
}

// ParseLimit parses an optional category limit. Blank input means no limit
// and returns nil. Zero is a valid limit.
func ParseLimit(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("limit %q: %w", s, err)
	}
	return &v, nil
}

// ParseDeadline parses a YYYY-MM-DD date. Blank input returns the zero
// time, meaning no deadline.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(tasks.DeadlineLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("deadline %q must be YYYY-MM-DD: %w", s, fault.ErrValidation)
	}
	return d, nil
}

// ParsePriority parses a task priority. Blank input returns 0 so the graph
// applies its default.
func ParsePriority(s string) (tasks.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return tasks.ParsePriority(s)
}

// parseDecimal accepts an unsigned decimal number with at most one dot or
// comma separator.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number: %w", fault.ErrValidation)
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		return 0, fmt.Errorf("more than one decimal separator: %w", fault.ErrValidation)
	}
	for _, r := range s {
		if r != '.' && !unicode.IsDigit(r) {
			return 0, fmt.Errorf("not a positive number: %w", fault.ErrValidation)
		}
	}
	if s == "." {
		return 0, fmt.Errorf("not a number: %w", fault.ErrValidation)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %w", fault.ErrValidation)
	}
	return v, nil
}
