// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"strings"
)

var ErrProductNotFound = errors.New("product not found")

// ErrIDMismatch is returned by Update when the id in the request body differs from the target id.
var ErrIDMismatch = errors.New("product ID in URL does not match ID in request body")

// FieldError is a rule violation on a single candidate field. Field is the JSON name.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every rule violation found on a product candidate.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// FieldMap returns the violations keyed by field name.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, exists := m[f.Field]; !exists {
			m[f.Field] = f.Message
		}
	}
	return m
}
