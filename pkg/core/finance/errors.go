// Package finance holds shared primitives for the numeric deal-analysis core.
package finance

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a malformed or out-of-domain analysis input.
// It is always surfaced to the caller immediately and never retried.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// Invalidf builds an InvalidInputError with a formatted reason.
func Invalidf(field, format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err (or anything it wraps) is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
