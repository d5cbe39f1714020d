// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount formats a money amount with two decimals and comma
// separators, e.g. 1234.5 -> "1,234.50".
func FormatAmount(v float64) string {
	if v < 0 {
		return "-" + FormatAmount(-v)
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s.%02d", FormatNumber(cents/100), cents%100)
}

// FormatLimit formats an optional limit; unconstrained categories show
// "none".
func FormatLimit(l *float64) string {
	if l == nil {
		return "none"
	}
	return FormatAmount(*l)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatPlain formats a number the short way, dropping a zero fraction:
// 350 -> "350", 12.5 -> "12.5".
func FormatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
