package cli

import "github.com/theirongolddev/orgtrack/internal/fault"

// ErrorMessage turns an engine error into the line shown to the user.
func ErrorMessage(err error) string {
	switch fault.Kind(err) {
	case "":
		return ""
	case fault.KindNotFound:
		return "Not found: " + err.Error()
	case fault.KindDuplicateID:
		return "Duplicate: " + err.Error()
	case fault.KindRootExpense:
		return "Cannot add expense to the root category."
	case fault.KindValidation:
		return "Input error: " + err.Error()
	case fault.KindBudgetExceeded:
		return "Warning: " + err.Error()
	}
	return "Error: " + err.Error()
}
