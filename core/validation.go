package core

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError collects per-field validation messages.
type ValidationError map[string][]string

// NewValidationError creates an empty ValidationError.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add records a message for a field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// IsEmpty reports whether no field failed validation.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Error implements the error interface with a stable field order.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f][0]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
