package cli

import (
	"fmt"
	"path/filepath"

	"github.com/ariel-frischer/cflagpatch/internal/config"
	clierrors "github.com/ariel-frischer/cflagpatch/internal/errors"
	"github.com/ariel-frischer/cflagpatch/internal/flagset"
	"github.com/ariel-frischer/cflagpatch/internal/patcher"
	"github.com/ariel-frischer/cflagpatch/internal/repo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// loadConfig merges config sources and applies CLI flag overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Configuration, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "loading configuration",
			"Check .cflagpatch/config.yml and CFLAGPATCH_* environment variables",
			"Run 'cflagpatch config show' to inspect the merged configuration")
	}

	if flagChanged(cmd, "file") {
		cfg.File = opts.file
	}
	if flagChanged(cmd, "marker") {
		cfg.Marker = opts.marker
	}
	if flagChanged(cmd, "flags-file") {
		cfg.FlagsFile = opts.flagsFile
	}
	return cfg, nil
}

// flagChanged reports whether name was set on the command line.
// Flags that do not exist on cmd count as unset.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// resolveFlags returns the configured flags, or the flags file contents if set.
func resolveFlags(cfg *config.Configuration) ([]string, error) {
	if cfg.FlagsFile == "" {
		return cfg.Flags, nil
	}
	flags, err := flagset.Load(cfg.FlagsFile)
	if err != nil {
		return nil, clierrors.InvalidFlagsFile(cfg.FlagsFile, err)
	}
	return flags, nil
}

// resolveTarget turns the configured file into an absolute path. A --file
// value is relative to the working directory; configured and default paths
// are relative to the repository root.
func resolveTarget(cmd *cobra.Command, cfg *config.Configuration) (string, error) {
	if flagChanged(cmd, "file") {
		abs, err := filepath.Abs(cfg.File)
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Argument, "resolving --file")
		}
		return abs, nil
	}

	path, err := repo.ResolvePath(cfg.File, "")
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.IO, "resolving target file",
			"Pass the target explicitly with --file")
	}
	return path, nil
}

func runPatch(cmd *cobra.Command, opts *rootOptions) error {
	log := opts.logger

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	log.Debug().Strs("sources", sourceNames(cfg.Sources)).Msg("loaded configuration")

	flags, err := resolveFlags(cfg)
	if err != nil {
		return err
	}

	path, err := resolveTarget(cmd, cfg)
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("flags", len(flags)).Msg("resolved target")

	result, err := patcher.Patch(patcher.Options{
		Path:   path,
		Marker: cfg.Marker,
		Flags:  flags,
		DryRun: opts.dryRun,
		Logger: &log,
	})
	if err != nil {
		return clierrors.FromPatch(err)
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		_, _ = out.Write(result.Content)
		return nil
	}

	fmt.Fprintf(out, "%s Patched %s: inserted %d lines after line %d\n",
		color.GreenString("✓"), result.Path, len(result.Inserted), result.MarkerLine)
	return nil
}

func sourceNames(sources []config.ConfigSource) []string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, string(s))
	}
	return names
}
