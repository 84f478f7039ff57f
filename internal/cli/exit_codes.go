package cli

import (
	"github.com/ariel-frischer/updatecheck/internal/cli/shared"
)

// Exit codes for the updatecheck CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates the command failed
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitUpdateAvailable is returned by check --exit-code when an update exists
	ExitUpdateAvailable = shared.ExitUpdateAvailable
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
