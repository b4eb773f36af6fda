package patcher

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	// ErrMarkerNotFound indicates the anchor line is absent from the target file.
	ErrMarkerNotFound = errors.New("marker not found")
	// ErrIO indicates a read, stat or write failure on the target file.
	ErrIO = errors.New("i/o error")
	// ErrInvalidOptions indicates the patch options are unusable.
	ErrInvalidOptions = errors.New("invalid options")
)

// MarkerNotFoundError reports which marker was searched for and where.
type MarkerNotFoundError struct {
	Path   string
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("marker line %q not found in %s", e.Marker, e.Path)
}

// Is reports whether target is ErrMarkerNotFound.
func (e *MarkerNotFoundError) Is(target error) bool {
	return target == ErrMarkerNotFound
}

// IOError wraps a filesystem failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// OptionsError describes an invalid field in Options.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidOptions.
func (e *OptionsError) Is(target error) bool {
	return target == ErrInvalidOptions
}
