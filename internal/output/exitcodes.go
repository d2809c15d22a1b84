package output

import (
	"errors"

	"github.com/gorewood/devlogs/internal/prompt"
	"github.com/gorewood/devlogs/internal/repository"
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemError creates an error for system failures (exit code 2).
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError creates an error for conflict situations (exit code 3).
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// userErrors are repository failures caused by the invocation rather than the system.
var userErrors = []error{
	repository.ErrRepositoryNotFound,
	repository.ErrAlreadyInitialized,
	repository.ErrInvalidArgument,
	repository.ErrNoEntries,
	prompt.ErrAborted,
}

// FromError wraps err in an ExitError with the code matching its cause.
// ExitErrors pass through unchanged and nil stays nil.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if errors.Is(err, repository.ErrCounterLocked) {
		return &ExitError{Code: ExitConflict, Message: err.Error(), Cause: err}
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return &ExitError{Code: ExitUserError, Message: err.Error(), Cause: err}
		}
	}
	return &ExitError{Code: ExitSystemError, Message: err.Error(), Cause: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
