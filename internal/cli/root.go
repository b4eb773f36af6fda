// Package cli implements the cflagpatch command tree.
package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/cflagpatch/internal/errors"
	"github.com/ariel-frischer/cflagpatch/internal/logging"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions holds flag values shared by all subcommands.
type rootOptions struct {
	configPath string
	flagsFile  string
	verbose    bool
	debug      bool
	noColor    bool

	// file, marker and dryRun apply to the root (patch) command only.
	file   string
	marker string
	dryRun bool

	logger zerolog.Logger
}

// NewRootCmd builds the full command tree with fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "cflagpatch",
		Short: "Inject compiler-warning flags into an Xcode xcconfig file",
		Long: `cflagpatch inserts one OTHER_CFLAGS line per warning flag directly after
the marker line of an xcconfig file and atomically replaces the file.

Running it twice inserts the block twice; patch a clean checkout.`,
		Example: `  # Patch the default xcconfig with the built-in warning set
  cflagpatch

  # Preview the result without writing
  cflagpatch --dry-run

  # Patch another file with a custom flag list
  cflagpatch --file Config/common.xcconfig --flags-file warnings.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			opts.logger = logging.New(logging.Config{
				Verbose: opts.verbose,
				Debug:   opts.debug,
				NoColor: opts.noColor,
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a config file (YAML or JSON)")
	pf.StringVar(&opts.flagsFile, "flags-file", "", "File with one flag per line (replaces the configured flags)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")
	pf.BoolVar(&opts.debug, "debug", false, "Log debug details to stderr")
	pf.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "xcconfig file to patch (default from config)")
	f.StringVarP(&opts.marker, "marker", "m", "", "Exact line to insert after (default from config)")
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the patched content instead of writing it")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine(),
			fmt.Sprintf("Run '%s --help' for available flags", c.CommandPath()))
	})

	cmd.AddCommand(newFlagsCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI with os.Args and prints any error to stderr.
func Execute() error {
	return run(NewRootCmd())
}

// run executes cmd and reports failures as formatted CLI errors.
func run(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.Wrap(err, clierrors.Argument, "Run 'cflagpatch --help' for usage")
	}
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
	return cliErr
}
