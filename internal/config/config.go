// Package config provides layered configuration for cflagpatch using koanf.
// Values are merged with priority: environment variables > explicit --config file
// > project config (.cflagpatch/config.yml or config.json) > user config
// (~/.config/cflagpatch/config.yml) > defaults. CLI flags are applied on top
// by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/cflagpatch/internal/flagset"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "CFLAGPATCH_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceFile    ConfigSource = "file"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the patch target and flag set
type Configuration struct {
	// File is the xcconfig to patch. Can be set via CFLAGPATCH_FILE.
	File string `koanf:"file" yaml:"file" validate:"required"`
	// Marker is the exact anchor line. Can be set via CFLAGPATCH_MARKER.
	Marker string `koanf:"marker" yaml:"marker" validate:"required"`
	// Flags lists flag names without the leading dash.
	// CFLAGPATCH_FLAGS accepts a comma-separated list.
	Flags []string `koanf:"flags" yaml:"flags" validate:"required,min=1,dive,required"`
	// FlagsFile, when set, replaces Flags with the contents of a flags file.
	FlagsFile string `koanf:"flags_file" yaml:"flags_file,omitempty"`

	// Sources lists the config layers that were loaded, lowest priority first.
	Sources []ConfigSource `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file (--config). It must exist.
	ConfigPath string
	// ProjectDir holds the .cflagpatch directory (default: current directory).
	ProjectDir string
	// SkipUserConfig ignores the user-level config file.
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := []ConfigSource{SourceDefault}

	loadDefaults(k)

	if !opts.SkipUserConfig {
		loaded, err := loadUserConfig(k)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, SourceUser)
		}
	}

	loaded, err := loadProjectConfig(k, opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceProject)
	}

	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return nil, fmt.Errorf("config file %s does not exist", opts.ConfigPath)
		}
		if err := loadConfigFile(k, opts.ConfigPath, string(SourceFile)); err != nil {
			return nil, err
		}
		sources = append(sources, SourceFile)
	}

	loaded, err = loadEnvironmentConfig(k)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceEnv)
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/cflagpatch/config.yml if present.
func loadUserConfig(k *koanf.Koanf) (bool, error) {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return false, nil
	}
	if err := loadConfigFile(k, path, string(SourceUser)); err != nil {
		return false, err
	}
	return true, nil
}

// loadProjectConfig loads .cflagpatch/config.yml, falling back to config.json.
func loadProjectConfig(k *koanf.Koanf, dir string) (bool, error) {
	for _, path := range []string{ProjectConfigPath(dir), ProjectJSONConfigPath(dir)} {
		if !fileExists(path) {
			continue
		}
		if err := loadConfigFile(k, path, string(SourceProject)); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// loadConfigFile picks a parser from the file extension; YAML is the default.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads CFLAGPATCH_* overrides.
func loadEnvironmentConfig(k *koanf.Koanf) (bool, error) {
	loaded := false
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		name := envTransform(key)
		if _, ok := GetDefaults()[name]; !ok {
			return "", nil
		}
		loaded = true
		if name == "flags" {
			return name, splitList(value)
		}
		return name, value
	})
	if err := k.Load(provider, nil); err != nil {
		return false, fmt.Errorf("failed to load environment config: %w", err)
	}
	return loaded, nil
}

// finalizeConfig unmarshals and validates the merged values.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.File = expandHomePath(cfg.File)
	cfg.FlagsFile = expandHomePath(cfg.FlagsFile)
	for i, flag := range cfg.Flags {
		cfg.Flags[i] = flagset.Normalize(flag)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CFLAGPATCH_FLAGS_FILE -> flags_file
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
