package logging

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldKind      = "kind"
	FieldCategory  = "category"
	FieldParent    = "parent"
	FieldAmount    = "amount"
	FieldNote      = "note"
	FieldAggregate = "aggregate"
	FieldLimit     = "limit"
	FieldOver      = "over"
	FieldTask      = "task"
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldCycle     = "cycle"
	FieldPath      = "path"
)

// Components
const (
	ComponentApp    = "app"
	ComponentBudget = "budget"
	ComponentTasks  = "tasks"
	ComponentPlan   = "plan"
	ComponentShell  = "shell"
	ComponentTUI    = "tui"
	ComponentConfig = "config"
)

// Operations
const (
	OpAddCategory = "add_category"
	OpAddExpense  = "add_expense"
	OpAddTask     = "add_task"
	OpAddEdge     = "add_edge"
	OpDetectCycle = "detect_cycle"
	OpApplyPlan   = "apply_plan"
	OpLoadConfig  = "load_config"
)

// Fields is a builder for structured log attributes.
type Fields map[string]any

// NewFields creates an empty Fields.
func NewFields() Fields {
	return make(Fields)
}

// WithOperation adds the operation field.
func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error text and its kind label.
func (f Fields) WithError(err error, kind string) Fields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldKind] = kind
	}
	return f
}

// With adds an arbitrary key.
func (f Fields) With(key string, v any) Fields {
	f[key] = v
	return f
}

// ToSlice flattens the fields into slog key/value arguments.
func (f Fields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
