package config

import (
	"os"
	"path/filepath"
)

const (
	appName            = "cflagpatch"
	projectDirName     = ".cflagpatch"
	configFileName     = "config.yml"
	jsonConfigFileName = "config.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/cflagpatch/config.yml
// - macOS: ~/Library/Application Support/cflagpatch/config.yml
// - Windows: %APPDATA%\cflagpatch\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// ProjectConfigPath returns the YAML project config path under dir.
// An empty dir means the current directory.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, projectDirName, configFileName)
}

// ProjectJSONConfigPath returns the JSON project config path under dir.
func ProjectJSONConfigPath(dir string) string {
	return filepath.Join(dir, projectDirName, jsonConfigFileName)
}
