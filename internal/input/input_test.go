package input

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/tasks"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"12.50", 12.5, true},
		{"12,50", 12.5, true},
		{" 350 ", 350, true},
		{".5", 0.5, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
		{"1e3", 0, false},
		{".", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if !errors.Is(err, fault.ErrValidation) {
			t.Fatalf("%q expected validation error, got %v", tc.in, err)
		}
	}
}

func TestParseLimit(t *testing.T) {
	l, err := ParseLimit("  ")
	if err != nil || l != nil {
		t.Fatalf("blank limit = %v, %v; want nil, nil", l, err)
	}

	l, err = ParseLimit("0")
	if err != nil || l == nil || *l != 0 {
		t.Fatalf("zero limit = %v, %v", l, err)
	}

	l, err = ParseLimit("499,99")
	if err != nil || *l != 499.99 {
		t.Fatalf("comma limit = %v, %v", l, err)
	}

	if _, err := ParseLimit("-3"); !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("negative limit err = %v", err)
	}
}

func TestParseDeadline(t *testing.T) {
	d, err := ParseDeadline("2026-12-31")
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Fatalf("deadline = %v, want %v", d, want)
	}

	d, err = ParseDeadline("")
	if err != nil || !d.IsZero() {
		t.Fatalf("blank deadline = %v, %v", d, err)
	}

	for _, bad := range []string{"31/12/2026", "2026-13-01", "tomorrow"} {
		if _, err := ParseDeadline(bad); !errors.Is(err, fault.ErrValidation) {
			t.Fatalf("%q expected validation error, got %v", bad, err)
		}
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	if err != nil || p != 0 {
		t.Fatalf("blank priority = %v, %v", p, err)
	}
	p, err = ParsePriority("high")
	if err != nil || p != tasks.PriorityHigh {
		t.Fatalf("high priority = %v, %v", p, err)
	}
	if _, err := ParsePriority("soon"); !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("bad priority err = %v", err)
	}
}
