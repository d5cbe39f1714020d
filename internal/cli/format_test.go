package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/theirongolddev/orgtrack/internal/fault"
)

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		0:         "0.00",
		12.5:      "12.50",
		1234.567:  "1,234.57",
		1_000_000: "1,000,000.00",
		-50:       "-50.00",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatLimit(t *testing.T) {
	if got := FormatLimit(nil); got != "none" {
		t.Fatalf("FormatLimit(nil) = %q", got)
	}
	v := 300.0
	if got := FormatLimit(&v); got != "300.00" {
		t.Fatalf("FormatLimit(300) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercentAndPlain(t *testing.T) {
	if got := FormatPercent(0.8333); got != "83.3%" {
		t.Fatalf("FormatPercent = %q", got)
	}
	if got := FormatPlain(350); got != "350" {
		t.Fatalf("FormatPlain(350) = %q", got)
	}
	if got := FormatPlain(12.25); got != "12.25" {
		t.Fatalf("FormatPlain(12.25) = %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("category %q: %w", "X", fault.ErrNotFound), `Not found: category "X": not found`},
		{fault.ErrRootExpense, "Cannot add expense to the root category."},
		{fmt.Errorf("task %q: %w", "t1", fault.ErrDuplicateID), `Duplicate: task "t1": duplicate id`},
		{errors.New("disk on fire"), "Error: disk on fire"},
	}
	for _, tc := range cases {
		if got := ErrorMessage(tc.err); got != tc.want {
			t.Errorf("ErrorMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
