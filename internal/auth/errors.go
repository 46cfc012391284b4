package auth

import (
	"errors"
	"fmt"
)

// Common errors for request authorization. Both map to 401 at the HTTP
// layer.
var (
	// ErrKeyMissing indicates the caller supplied no API key.
	ErrKeyMissing = errors.New("auth: API key required")

	// ErrKeyInvalid indicates the supplied API key does not match.
	ErrKeyInvalid = errors.New("auth: invalid API key")
)

// ConfigError indicates the expected API key could not be determined. It
// covers remote fetch failures with no fallback, an unconfigured secret
// store, and unsupported deployment modes. It maps to 500 at the HTTP
// layer.
type ConfigError struct {
	Reason string // Why resolution failed
	Err    error  // Underlying error if any
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(reason string) *ConfigError {
	return &ConfigError{Reason: reason}
}

// NewConfigErrorWithCause creates a new ConfigError wrapping a cause.
func NewConfigErrorWithCause(reason string, err error) *ConfigError {
	return &ConfigError{Reason: reason, Err: err}
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
