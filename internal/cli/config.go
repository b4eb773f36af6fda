package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/cflagpatch/internal/config"
	clierrors "github.com/ariel-frischer/cflagpatch/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create cflagpatch configuration",
		Long: `Configuration is merged from defaults, the user config
(~/.config/cflagpatch/config.yml), the project config (.cflagpatch/config.yml
or config.json), --config, and CFLAGPATCH_* environment variables.`,
	}

	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Configuration, "encoding configuration")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# sources: %v\n", sourceNames(cfg.Sources))
			_, _ = out.Write(data)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var (
		user  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config template",
		Example: `  # Create .cflagpatch/config.yml in the current directory
  cflagpatch config init

  # Create the user-level config
  cflagpatch config init --user`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigPath("")
			if user {
				var err error
				path, err = config.UserConfigPath()
				if err != nil {
					return clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config directory")
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return clierrors.NewArgumentError(
					fmt.Sprintf("config file already exists: %s", path),
					"Use --force to overwrite it",
				)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return clierrors.WrapWithMessage(err, clierrors.IO, "creating config directory")
			}
			if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
				return clierrors.WrapWithMessage(err, clierrors.IO, "writing config file")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", color.GreenString("✓"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config instead of the project config")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
