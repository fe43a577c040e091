package fintrack

import (
	"errors"
	"fmt"
)

// ValidationError reports an intent rejected before anything was applied or persisted.
type ValidationError struct {
	Entity string // Entity is the kind of entity being validated, e.g. "account".
	Field  string // Field is the offending field, empty when the whole intent is invalid.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Field, e.Reason)
}

func invalid(entity, field, format string, args ...any) error {
	return &ValidationError{Entity: entity, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err, or any error joined in it, is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
