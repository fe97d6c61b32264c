// Package errors provides centralized error types and exit codes for vomgr.
package errors

import "fmt"

// Exit codes for different error categories.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitConfigError     = 2
	ExitValidationError = 3
	ExitLaunchError     = 4
	ExitHookError       = 5
)

// VOError is the base error type for all vomgr-specific errors.
type VOError struct {
	Code    int
	Message string
	Cause   error
}

// Error returns the error message, including the cause if present.
func (e *VOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error.
func (e *VOError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error.
func NewConfigError(msg string) *VOError {
	return &VOError{Code: ExitConfigError, Message: msg}
}

// NewConfigErrorWithCause creates a new configuration error with an underlying cause.
func NewConfigErrorWithCause(msg string, cause error) *VOError {
	return &VOError{Code: ExitConfigError, Message: msg, Cause: cause}
}

// NewValidationError creates a new validation error.
func NewValidationError(msg string) *VOError {
	return &VOError{Code: ExitValidationError, Message: msg}
}

// NewValidationErrorWithCause creates a new validation error with an underlying cause.
func NewValidationErrorWithCause(msg string, cause error) *VOError {
	return &VOError{Code: ExitValidationError, Message: msg, Cause: cause}
}

// NewLaunchError creates a new launch error.
func NewLaunchError(msg string) *VOError {
	return &VOError{Code: ExitLaunchError, Message: msg}
}

// NewLaunchErrorWithCause creates a new launch error with an underlying cause.
func NewLaunchErrorWithCause(msg string, cause error) *VOError {
	return &VOError{Code: ExitLaunchError, Message: msg, Cause: cause}
}

// NewHookError creates a new hook error.
func NewHookError(msg string) *VOError {
	return &VOError{Code: ExitHookError, Message: msg}
}

// NewHookErrorWithCause creates a new hook error with an underlying cause.
func NewHookErrorWithCause(msg string, cause error) *VOError {
	return &VOError{Code: ExitHookError, Message: msg, Cause: cause}
}

// NewGeneralError creates a new general error.
func NewGeneralError(msg string) *VOError {
	return &VOError{Code: ExitGeneralError, Message: msg}
}

// NewGeneralErrorWithCause creates a new general error with an underlying cause.
func NewGeneralErrorWithCause(msg string, cause error) *VOError {
	return &VOError{Code: ExitGeneralError, Message: msg, Cause: cause}
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	if voErr, ok := err.(*VOError); ok {
		return voErr.Code == ExitConfigError
	}
	return false
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	if voErr, ok := err.(*VOError); ok {
		return voErr.Code == ExitValidationError
	}
	return false
}

// IsLaunchError checks if an error is a launch error.
func IsLaunchError(err error) bool {
	if voErr, ok := err.(*VOError); ok {
		return voErr.Code == ExitLaunchError
	}
	return false
}

// GetExitCode returns the exit code for an error.
// If the error is not a VOError, it returns ExitGeneralError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if voErr, ok := err.(*VOError); ok {
		return voErr.Code
	}
	return ExitGeneralError
}
