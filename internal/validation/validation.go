package validation

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid field. The wire shape mirrors
// the API error body so handlers can serialize the list directly.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// Errors aggregates every invalid field of a request. All fields are
// validated together so a client can highlight each offending field at
// once instead of fixing them one at a time.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error and returns the receiver for chaining.
func (e *Errors) Add(field, message string) *Errors {
	e.Fields = append(e.Fields, FieldError{Message: message, Field: field})
	return e
}

// HasErrors reports whether any field failed validation.
func (e *Errors) HasErrors() bool {
	return len(e.Fields) > 0
}

// New builds an Errors value holding a single field error.
func New(field, message string) *Errors {
	return (&Errors{}).Add(field, message)
}
