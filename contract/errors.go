package contract

import (
	"errors"
	"fmt"
)

// Error kinds every operation classifies its failures into. Callers match
// with errors.Is. Only ErrConflict is retryable, and retrying belongs to the
// submitting client, never to the contract itself.
var (
	// ErrNotFound reports that a referenced entity has never been written.
	ErrNotFound = errors.New("not found")
	// ErrAuthorization reports that the caller's organisation does not match
	// the role an operation requires.
	ErrAuthorization = errors.New("not authorized")
	// ErrValidation reports invalid input: an unknown enum value, a
	// hierarchy-direction violation or a quantity mismatch.
	ErrValidation = errors.New("validation failed")
	// ErrConflict reports a write that would collide with committed state,
	// such as re-registering an existing key.
	ErrConflict = errors.New("conflict")
)

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrAuthorization)...)
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}
