// Package plan loads batch scenario files and replays them against a budget
// tree and a task graph.
//
// A plan is TOML or YAML, chosen by file extension:
//
//	[[categories]]
//	name  = "Food"
//	limit = 500.0
//
//	[[categories]]
//	name   = "Groceries"
//	parent = "Food"
//
//	[[expenses]]
//	category = "Groceries"
//	amount   = 350.0
//
//	[[tasks]]
//	id       = "t1"
//	priority = "High"
//	deadline = "2026-11-01"
//
//	[[dependencies]]
//	from = "t2"
//	to   = "t1"
//
// Plans are input only. Nothing is ever written back.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/orgtrack/internal/fault"
)

// Format identifies the encoding of a plan file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("plan %s: unsupported extension, want .toml, .yaml or .yml: %w", path, fault.ErrValidation)
}

// Plan is a batch of operations. Apply replays categories, then expenses,
// then tasks, then dependencies, each in file order.
type Plan struct {
	Categories   []Category   `toml:"categories" yaml:"categories" validate:"dive"`
	Expenses     []Expense    `toml:"expenses" yaml:"expenses" validate:"dive"`
	Tasks        []Task       `toml:"tasks" yaml:"tasks" validate:"dive"`
	Dependencies []Dependency `toml:"dependencies" yaml:"dependencies" validate:"dive"`
}

// Category adds a category. An empty parent means the root.
type Category struct {
	Name   string   `toml:"name" yaml:"name" validate:"required"`
	Parent string   `toml:"parent" yaml:"parent"`
	Limit  *float64 `toml:"limit" yaml:"limit" validate:"omitempty,gte=0"`
}

// Expense books an amount against a category.
type Expense struct {
	Category string  `toml:"category" yaml:"category" validate:"required"`
	Amount   float64 `toml:"amount" yaml:"amount" validate:"gt=0"`
	Note     string  `toml:"note" yaml:"note"`
}

// Task adds a task.
type Task struct {
	ID          string `toml:"id" yaml:"id" validate:"required"`
	Description string `toml:"description" yaml:"description"`
	Deadline    string `toml:"deadline" yaml:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Priority    string `toml:"priority" yaml:"priority" validate:"omitempty,oneof=High Medium Low high medium low"`
}

// Dependency records that From depends on To.
type Dependency struct {
	From string `toml:"from" yaml:"from" validate:"required"`
	To   string `toml:"to" yaml:"to" validate:"required"`
}

var validate = validator.New()

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a plan. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Plan, error) {
	var p Plan
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &p)
		if err != nil {
			return nil, fmt.Errorf("parsing toml: %v: %w", err, fault.ErrValidation)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q: %w", undecoded[0].String(), fault.ErrValidation)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing yaml: %v: %w", err, fault.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("unknown plan format %q: %w", format, fault.ErrValidation)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the struct tags of every entry.
func (p *Plan) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating plan: %w", err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("invalid plan: %s: %w", strings.Join(problems, "; "), fault.ErrValidation)
}

// describe turns "Plan.Expenses[1].Amount" failing "gt" into a readable line.
func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Plan.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "datetime":
		return field + " must be a YYYY-MM-DD date"
	case "oneof":
		return field + " must be one of " + fe.Param()
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
