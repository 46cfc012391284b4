package secrets

import (
	"errors"
	"fmt"
)

// Common errors for secret store operations.
var (
	// ErrParameterNotFound indicates the requested parameter does not exist.
	ErrParameterNotFound = errors.New("secrets: parameter not found")

	// ErrEmptyParameter indicates the parameter exists but has no value.
	ErrEmptyParameter = errors.New("secrets: parameter has no value")

	// ErrInvalidConfig indicates invalid store configuration.
	ErrInvalidConfig = errors.New("secrets: invalid configuration")
)

// Error represents a secret store error with operation context.
type Error struct {
	Op   string // Operation that failed
	Name string // Parameter name if applicable
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("secrets %s on parameter %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("secrets %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error.
func NewError(op, name string, err error) *Error {
	return &Error{
		Op:   op,
		Name: name,
		Err:  err,
	}
}

// IsNotFound returns true if the error indicates a missing parameter.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrParameterNotFound)
}
