package config

import (
	"path/filepath"

	"github.com/ariel-frischer/cflagpatch/internal/flagset"
	"github.com/ariel-frischer/cflagpatch/internal/patcher"
)

// DefaultFile is the xcconfig patched when no file is configured.
// Relative paths are resolved against the git repository root.
var DefaultFile = filepath.Join("IdentityCore", "xcconfig", "identitycore__common.xcconfig")

// GetDefaultConfigTemplate returns a commented config template
// that documents every available option
func GetDefaultConfigTemplate() string {
	return `# cflagpatch configuration
# Priority: CLI flags > CFLAGPATCH_* env > --config file > project config > user config > defaults

# Target xcconfig file (relative paths resolve from the git repository root)
file: ` + filepath.ToSlash(DefaultFile) + `

# Exact line the generated OTHER_CFLAGS block is inserted after
marker: "` + patcher.DefaultMarker + `"

# Plain-text file with one flag per line; replaces 'flags' when set
flags_file: ""

# Flags to inject, without the leading dash (empty = built-in warning set)
# flags:
#   - Wall
#   - Werror
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"file":       DefaultFile,
		"marker":     patcher.DefaultMarker,
		"flags":      flagset.Default(),
		"flags_file": "",
	}
}
