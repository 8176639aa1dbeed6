// Package common defines the error taxonomy shared by the client layers.
// Callers should use errors.Is / errors.As to match these values.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Input errors. Resolved at the originating input, never a workflow Error state.
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrAuth               = errors.New("auth error")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuth)
	ErrDuplicateAccount   = fmt.Errorf("%w: account already exists", ErrAuth)
	ErrUnauthenticated    = errors.New("not logged in")

	// Remote inference errors.
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("malformed response")

	// Profile storage errors (record present but unreadable).
	ErrStorage = errors.New("storage error")

	// Workflow errors.
	ErrSubmitInProgress = errors.New("analysis already in progress")
)

// ValidationError carries field-level messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StatusError reports a non-2xx answer from the inference endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.Code, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrNetwork }
