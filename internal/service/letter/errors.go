package letter

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the letter service layer.
var (
	// ErrNotFound covers both "no such letter" and "not yours": callers
	// must not be able to tell the difference.
	ErrNotFound = errors.New("letter not found")

	// ErrUserIDNotAllowed is returned when a payload tries to supply or
	// change the owning user, under any field-name spelling.
	ErrUserIDNotAllowed = errors.New("user ID cannot be provided in request body")

	// ErrUnauthorized is returned when an operation runs without a
	// resolved caller identity.
	ErrUnauthorized = errors.New("caller identity required")
)

// ValidationError reports one or more invalid fields in a payload. Fields
// holds every offending field name (missing-field checks report all of them
// at once, not just the first).
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// missingFieldsError builds the create-validation error listing every absent field.
func missingFieldsError(fields []string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// invalidFieldError builds a single-field validation error.
func invalidFieldError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Reason: reason}
}
