// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"
)

// Command group IDs for organizing help output
const (
	GroupChecks = "checks"
	GroupCache  = "cache"
	GroupInfo   = "info"
)

// Exit codes for CLI commands
const (
	ExitSuccess          = 0
	ExitFailure          = 1
	ExitInvalidArguments = 3
	ExitUpdateAvailable  = 10
)

// exitError is a custom error type that carries an exit code and an
// optional underlying error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// NewUsageError reports invalid command arguments.
func NewUsageError(format string, args ...interface{}) error {
	return &exitError{code: ExitInvalidArguments, err: fmt.Errorf(format, args...)}
}

// IsSilent reports whether err only carries an exit code and has no
// message worth printing.
func IsSilent(err error) bool {
	var e *exitError
	return errors.As(err, &e) && e.err == nil
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitFailure
}
