package cli

import (
	clierrors "github.com/ariel-frischer/cflagpatch/internal/errors"
)

// Exit codes for the cflagpatch CLI
// These codes let CI scripts distinguish an already-patched file from a broken setup
const (
	// ExitSuccess indicates the file was patched (or the dry run succeeded)
	ExitSuccess = 0

	// ExitMarkerNotFound indicates the anchor line is missing from the target file
	ExitMarkerNotFound = 1

	// ExitIOError indicates the target file could not be read or replaced
	ExitIOError = 2

	// ExitInvalidArguments indicates invalid command arguments or flag values
	ExitInvalidArguments = 3

	// ExitConfigError indicates an invalid or unreadable configuration file
	ExitConfigError = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitInvalidArguments
	}
	switch cliErr.Category {
	case clierrors.MarkerNotFound:
		return ExitMarkerNotFound
	case clierrors.IO:
		return ExitIOError
	case clierrors.Configuration:
		return ExitConfigError
	default:
		return ExitInvalidArguments
	}
}
