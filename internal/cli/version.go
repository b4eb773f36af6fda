package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/cflagpatch/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for cflagpatch",
		Example: `  # Show version info
  cflagpatch version

  # Plain output (for scripts)
  cflagpatch version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprintf(out, "cflagpatch %s\n", build.Version)
				fmt.Fprintf(out, "commit: %s\n", build.Commit)
				fmt.Fprintf(out, "built: %s\n", build.BuildDate)
				fmt.Fprintf(out, "go: %s\n", runtime.Version())
				fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
				return
			}

			label := color.New(color.FgCyan).SprintFunc()
			fmt.Fprintf(out, "%s %s\n", color.New(color.Bold).Sprint("cflagpatch"), build.Version)
			if build.IsDevBuild() {
				fmt.Fprintln(out, color.YellowString("  development build"))
			}
			fmt.Fprintf(out, "  %s %s\n", label("commit:  "), build.Commit)
			fmt.Fprintf(out, "  %s %s\n", label("built:   "), build.BuildDate)
			fmt.Fprintf(out, "  %s %s %s/%s\n", label("go:      "), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}
