package cli

import (
	"fmt"

	"github.com/ariel-frischer/cflagpatch/internal/patcher"
	"github.com/spf13/cobra"
)

func newFlagsCmd(opts *rootOptions) *cobra.Command {
	var lines bool

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "List the warning flags that would be injected",
		Long: `List the effective flag set after applying config files, CFLAGPATCH_FLAGS
and --flags-file. With --lines, print the generated xcconfig lines instead.`,
		Example: `  # Show the flag names
  cflagpatch flags

  # Show the exact lines that will be inserted
  cflagpatch flags --lines`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			flags, err := resolveFlags(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, flag := range flags {
				if lines {
					fmt.Fprintln(out, patcher.FormatFlagLine(flag))
				} else {
					fmt.Fprintln(out, "-"+flag)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lines, "lines", false, "Print generated OTHER_CFLAGS lines")
	return cmd
}
