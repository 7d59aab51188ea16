package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField matches any MissingFieldError with errors.Is.
var ErrMissingField = errors.New("required field missing")

// MissingFieldError reports a required column absent from the table.
// A render pass that hits it produces no output at all.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing from the dataset", e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidFilterError reports a filter value that is not among the offered options.
type InvalidFilterError struct {
	Filter  string
	Value   string
	Allowed []string
}

func (e *InvalidFilterError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s filter %q: no columns available", e.Filter, e.Value)
	}
	return fmt.Sprintf("invalid %s filter %q, must be one of: %s", e.Filter, e.Value, strings.Join(e.Allowed, ", "))
}

func requireField(has func(string) bool, field string) error {
	if !has(field) {
		return &MissingFieldError{Field: field}
	}
	return nil
}
