package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/ariel-frischer/cflagpatch/internal/patcher"
)

// Common error messages for the cflagpatch CLI.
// These templates ensure consistent, actionable error messages.

// MarkerMissing creates an error for an xcconfig file without the anchor line.
func MarkerMissing(err *patcher.MarkerNotFoundError) *CLIError {
	return &CLIError{
		Category: MarkerNotFound,
		Message:  fmt.Sprintf("marker line not found in %s\n  searched for: %s", err.Path, err.Marker),
		Remediation: []string{
			"Check that the file contains the marker line exactly (no extra whitespace)",
			"If the file was already patched, the marker may have been edited by hand",
			"Pass a different anchor with --marker",
		},
		Err: err,
	}
}

// TargetIO creates an error for a target file that cannot be read or replaced.
func TargetIO(err *patcher.IOError) *CLIError {
	return &CLIError{
		Category: IO,
		Message:  err.Error(),
		Remediation: []string{
			"Verify the path with --file or the 'file' config key",
			"Check read permission on the file and write permission on its directory",
		},
		Err: err,
	}
}

// InvalidFlagsFile creates an error for an unreadable or malformed flags file.
func InvalidFlagsFile(path string, err error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("invalid flags file %s: %v", path, err),
		Remediation: []string{
			"List one flag per line, e.g. Wall or -Wall",
			"Lines starting with # are comments",
		},
		Err: err,
	}
}

// FromPatch converts an error returned by patcher.Patch into a CLIError.
func FromPatch(err error) *CLIError {
	if err == nil {
		return nil
	}

	var notFound *patcher.MarkerNotFoundError
	if stderrors.As(err, &notFound) {
		return MarkerMissing(notFound)
	}

	var ioErr *patcher.IOError
	if stderrors.As(err, &ioErr) {
		return TargetIO(ioErr)
	}

	if stderrors.Is(err, patcher.ErrInvalidOptions) {
		return Wrap(err, Argument, "Check the --file, --marker and --flags-file values")
	}

	return Wrap(err, IO)
}
