// Package patcher injects generated OTHER_CFLAGS lines into an xcconfig file.
// The target is read fully, the generated block is inserted directly after the
// first line equal to the marker, and the result atomically replaces the file.
// A failed run never leaves a partially written file behind.
//
// Patching is not idempotent: each successful run inserts another block.
package patcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// FlagPrefix is prepended to every flag name to form a generated line.
const FlagPrefix = "OTHER_CFLAGS=$(OTHER_CFLAGS) -"

// DefaultMarker is the anchor line the generated block follows.
const DefaultMarker = "OTHER_CFLAGS=$(inherited) -fstack-protector-strong"

// Options configures a single patch run.
type Options struct {
	// Path is the xcconfig file to patch.
	Path string
	// Marker is the exact line content to insert after.
	Marker string
	// Flags are flag names without the leading dash, e.g. "Wall".
	Flags []string
	// DryRun computes the result without touching the file.
	DryRun bool
	// Logger receives progress events. Nil disables logging.
	Logger *zerolog.Logger
}

// Result describes the outcome of a patch run.
type Result struct {
	Path string
	// MarkerLine is the 1-based line number of the marker in the input.
	MarkerLine int
	// Inserted holds the generated lines in insertion order.
	Inserted []string
	// Content is the full patched file content.
	Content []byte
	// Written is false for dry runs.
	Written bool
}

// FormatFlagLine returns the generated line for a single flag name.
func FormatFlagLine(flag string) string {
	return FlagPrefix + flag
}

// GenerateLines formats one line per flag, preserving order.
func GenerateLines(flags []string) []string {
	lines := make([]string, 0, len(flags))
	for _, flag := range flags {
		lines = append(lines, FormatFlagLine(flag))
	}
	return lines
}

// Validate checks that the options can produce a well-formed patch.
func (o Options) Validate() error {
	if o.Path == "" {
		return &OptionsError{Field: "path", Message: "must not be empty"}
	}
	if o.Marker == "" {
		return &OptionsError{Field: "marker", Message: "must not be empty"}
	}
	if strings.ContainsAny(o.Marker, "\r\n") {
		return &OptionsError{Field: "marker", Message: "must be a single line"}
	}
	if len(o.Flags) == 0 {
		return &OptionsError{Field: "flags", Message: "at least one flag is required"}
	}
	for i, flag := range o.Flags {
		if flag == "" {
			return &OptionsError{Field: "flags", Message: fmt.Sprintf("flag %d is empty", i+1)}
		}
		if strings.IndexFunc(flag, unicode.IsSpace) >= 0 {
			return &OptionsError{Field: "flags", Message: fmt.Sprintf("flag %q contains whitespace", flag)}
		}
	}
	return nil
}

// checkWritable fails if path exists but cannot be opened for writing.
// The rename in WriteFileAtomic only needs a writable directory.
func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

// Patch reads the target file, inserts the generated flag lines after the
// marker and atomically writes the result back.
func Patch(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: opts.Path, Err: err}
	}

	doc := Parse(data)
	log.Debug().
		Str("path", opts.Path).
		Int("lines", len(doc.Lines)).
		Bool("crlf", doc.Terminator == CRLF).
		Bool("trailing_newline", doc.TrailingTerminator).
		Msg("read target file")

	idx := doc.FindMarker(opts.Marker)
	if idx < 0 {
		return nil, &MarkerNotFoundError{Path: opts.Path, Marker: opts.Marker}
	}
	log.Debug().Int("line", idx+1).Msg("found marker")

	generated := GenerateLines(opts.Flags)
	doc.InsertAfter(idx, generated)

	result := &Result{
		Path:       opts.Path,
		MarkerLine: idx + 1,
		Inserted:   generated,
		Content:    doc.Bytes(),
	}

	if opts.DryRun {
		log.Info().Str("path", opts.Path).Int("inserted", len(generated)).Msg("dry run, file not written")
		return result, nil
	}

	// Replace the link target, not the link.
	target, err := filepath.EvalSymlinks(opts.Path)
	if err != nil {
		return nil, &IOError{Op: "resolve", Path: opts.Path, Err: err}
	}
	if target != opts.Path {
		log.Debug().Str("path", opts.Path).Str("target", target).Msg("resolved symlink")
	}

	if err := WriteFileAtomic(target, result.Content); err != nil {
		return nil, err
	}
	result.Written = true

	log.Info().Str("path", opts.Path).Int("inserted", len(generated)).Msg("patched file")
	return result, nil
}
