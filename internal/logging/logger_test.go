package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentBudget, Output: &buf})

	l.Info("category added", FieldCategory, "Food")

	out := buf.String()
	if !strings.Contains(out, "component=budget") {
		t.Fatalf("missing component field: %q", out)
	}
	if !strings.Contains(out, "category=Food") {
		t.Fatalf("missing category field: %q", out)
	}
	if l.Component() != ComponentBudget {
		t.Fatalf("Component() = %q, want %q", l.Component(), ComponentBudget)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, JSON: true}).WithComponent(ComponentTasks)

	l.Warn("cycle", FieldCycle, "a>b>a")
	if !strings.Contains(buf.String(), `"component":"tasks"`) {
		t.Fatalf("json output missing component: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"", slog.LevelInfo, true},
		{" INFO ", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseLevel(%q) expected error", tc.in)
		}
	}
}

func TestFieldsWithError(t *testing.T) {
	f := NewFields().WithOperation(OpAddExpense).WithError(errors.New("boom"), "internal")
	if f[FieldError] != "boom" || f[FieldKind] != "internal" {
		t.Fatalf("unexpected fields: %v", f)
	}
	if len(f.ToSlice()) != 6 {
		t.Fatalf("ToSlice len = %d, want 6", len(f.ToSlice()))
	}

	empty := NewFields().WithError(nil, "internal")
	if len(empty) != 0 {
		t.Fatalf("nil error added fields: %v", empty)
	}
}
