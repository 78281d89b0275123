package engine

import (
	"fmt"
	"strings"
)

// swagger:enum ErrorKind
type ErrorKind string

const (
	ErrorKindEmptyTitle        ErrorKind = "EMPTY_TITLE"
	ErrorKindNonPositiveAmount ErrorKind = "NON_POSITIVE_AMOUNT"
	ErrorKindMissingSelection  ErrorKind = "MISSING_SELECTION"

	// ErrorKindInvalidField is reported when the plan passed the add
	// checks, but a field value is rejected, e.g. an unknown category.
	ErrorKindInvalidField ErrorKind = "INVALID_FIELD"

	// ErrorKindNotFound is reported when the plan to change does not exist.
	ErrorKindNotFound ErrorKind = "NOT_FOUND"

	// ErrorKindStorage is reported when a valid plan could not be written.
	ErrorKindStorage ErrorKind = "STORAGE"
)

// PlanKind names the kind of plan a message is about.
type PlanKind string

const (
	PlanKindSave     PlanKind = "savings plan"
	PlanKindSpending PlanKind = "spending plan"
	PlanKindIncome   PlanKind = "income"

	PlanKindConsumption PlanKind = "consumption"
)

// ValidationError is returned when user input for a plan is not acceptable.
// It is expected and correctable by the user, not a fault.
type ValidationError struct {
	Kind ErrorKind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Kind)
}

// Message returns the message shown to the user for the plan kind.
func (e *ValidationError) Message(kind PlanKind) string {
	switch e.Kind {
	case ErrorKindEmptyTitle:
		return fmt.Sprintf("Please enter a title for the %s", kind)
	case ErrorKindNonPositiveAmount:
		return fmt.Sprintf("Please enter an amount for the %s", kind)
	case ErrorKindMissingSelection:
		switch kind {
		case PlanKindSave:
			return fmt.Sprintf("Please select a category for the %s", kind)
		case PlanKindConsumption:
			return fmt.Sprintf("Please select the spending plan for the %s", kind)
		default:
			return fmt.Sprintf("Please select a type for the %s", kind)
		}
	}

	return e.Error()
}

var (
	ErrEmptyTitle        = &ValidationError{Kind: ErrorKindEmptyTitle}
	ErrNonPositiveAmount = &ValidationError{Kind: ErrorKindNonPositiveAmount}
	ErrMissingSelection  = &ValidationError{Kind: ErrorKindMissingSelection}
)

// ValidateAdd checks the input shared by all plan kinds. The title is
// checked first, then the amount, then the selection. The first failure is
// returned.
func ValidateAdd(title string, amount int64, hasSelection bool) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	if amount <= 0 {
		return ErrNonPositiveAmount
	}

	if !hasSelection {
		return ErrMissingSelection
	}

	return nil
}
