// Package flagset holds the built-in list of clang warning flags and loads
// replacement lists from plain-text flag files.
package flagset

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// defaultFlags is the warning set injected into identitycore__common.xcconfig.
var defaultFlags = []string{
	"Wall",
	"Werror",
	"Wextra",
	"Wassign-enum",
	"Wblock-capture-autoreleasing",
	"Wbool-conversion",
	"Wcomma",
	"Wconditional-uninitialized",
	"Wconstant-conversion",
	"Wdeprecated-declarations",
	"Wdeprecated-implementations",
	"Wdeprecated-objc-isa-usage",
	"Wduplicate-method-match",
	"Wdocumentation",
	"Wempty-body",
	"Wenum-conversion",
	"Wfatal-errors",
	"Wfloat-conversion",
	"Wheader-hygiene",
	"Wincompatible-pointer-types",
	"Wint-conversion",
	"Winvalid-offsetof",
	"Wnewline-eof",
	"Wno-unknown-pragmas",
	"Wnon-literal-null-conversion",
	"Wnon-modular-include-in-framework-module",
	"Wnon-virtual-dtor",
	"Wobjc-literal-conversion",
	"Wobjc-root-class",
	"Wprotocol",
	"Wshorten-64-to-32",
	"Wstrict-prototypes",
	"Wundeclared-selector",
	"Wunreachable-code",
	"Wunused-parameter",
}

// Default returns a copy of the built-in flag list.
func Default() []string {
	out := make([]string, len(defaultFlags))
	copy(out, defaultFlags)
	return out
}

// Load reads a flags file: one flag per line, blank lines and '#' comments
// ignored, an optional leading dash stripped.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flags file: %w", err)
	}

	flags, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing flags file %s: %w", path, err)
	}
	return flags, nil
}

// Parse extracts flag names from flags-file content.
func Parse(data []byte) ([]string, error) {
	var flags []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		flag := Normalize(line)
		if err := validateFlag(flag); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		flags = append(flags, flag)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(flags) == 0 {
		return nil, fmt.Errorf("no flags defined")
	}
	return flags, nil
}

// Normalize trims surrounding whitespace and a single leading dash,
// so "-Wall" and "Wall" name the same flag.
func Normalize(flag string) string {
	return strings.TrimPrefix(strings.TrimSpace(flag), "-")
}

// Validate checks every flag in the list.
func Validate(flags []string) error {
	if len(flags) == 0 {
		return fmt.Errorf("flag list is empty")
	}
	for i, flag := range flags {
		if err := validateFlag(flag); err != nil {
			return fmt.Errorf("flag %d: %w", i+1, err)
		}
	}
	return nil
}

func validateFlag(flag string) error {
	if flag == "" {
		return fmt.Errorf("empty flag name")
	}
	if strings.IndexFunc(flag, unicode.IsSpace) >= 0 {
		return fmt.Errorf("flag %q contains whitespace", flag)
	}
	return nil
}
