// Package cli tests the root patch command, subcommands and exit codes.
// Related: internal/cli/root.go, internal/cli/patch.go
// Tags: cli, root, commands, exit-codes

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/cflagpatch/internal/config"
	clierrors "github.com/ariel-frischer/cflagpatch/internal/errors"
	"github.com/ariel-frischer/cflagpatch/internal/flagset"
	"github.com/ariel-frischer/cflagpatch/internal/patcher"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv keeps user config, env overrides and the project config out of the test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CFLAGPATCH_LOG_LEVEL", "")
	for _, key := range []string{"FILE", "MARKER", "FLAGS", "FLAGS_FILE"} {
		t.Setenv(config.EnvPrefix+key, "")
		os.Unsetenv(config.EnvPrefix + key)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func executeCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = run(cmd)
	return out.String(), errOut.String(), err
}

func writeXCConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "common.xcconfig")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	assert.Equal(t, "cflagpatch", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)

	for _, name := range []string{"config", "flags-file", "verbose", "debug", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag %s should exist", name)
	}
	for _, name := range []string{"file", "marker", "dry-run"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s should exist", name)
	}

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"flags", "config", "version"})
}

func TestPatch_Success(t *testing.T) {
	dir := isolateEnv(t)
	path := writeXCConfig(t, dir, "A=1\n"+patcher.DefaultMarker+"\nB=2\n")

	stdout, stderr, err := executeCmd(t, "--file", path)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Patched")
	assert.Contains(t, stdout, "inserted 35 lines after line 2")
	assert.Equal(t, ExitSuccess, ExitCode(err))

	lines := strings.Split(strings.TrimSuffix(readFile(t, path), "\n"), "\n")
	require.Len(t, lines, 3+35)
	assert.Equal(t, patcher.DefaultMarker, lines[1])
	assert.Equal(t, patcher.GenerateLines(flagset.Default()), lines[2:37])
	assert.Equal(t, "B=2", lines[37])
}

func TestPatch_CustomMarkerAndFlagsFile(t *testing.T) {
	dir := isolateEnv(t)
	path := writeXCConfig(t, dir, "MARK\nB=2")
	flagsPath := filepath.Join(dir, "flags.txt")
	require.NoError(t, os.WriteFile(flagsPath, []byte("# strict\n-Wall\nWerror\n"), 0o644))

	_, _, err := executeCmd(t, "-f", path, "-m", "MARK", "--flags-file", flagsPath)
	require.NoError(t, err)
	assert.Equal(t, "MARK\n"+patcher.FlagPrefix+"Wall\n"+patcher.FlagPrefix+"Werror\nB=2", readFile(t, path))
}

func TestPatch_RelativeFileFlagUsesWorkingDirectory(t *testing.T) {
	dir := isolateEnv(t)
	writeXCConfig(t, dir, patcher.DefaultMarker+"\n")

	_, _, err := executeCmd(t, "--file", "common.xcconfig")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(dir, "common.xcconfig")), patcher.FlagPrefix+"Wall")
}

func TestPatch_DefaultPathFromRepositoryRoot(t *testing.T) {
	isolateEnv(t)

	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	target := filepath.Join(root, config.DefaultFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(patcher.DefaultMarker+"\n"), 0o644))

	sub := filepath.Join(root, "scripts")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	_, _, err = executeCmd(t)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, target), patcher.FlagPrefix+"Wunused-parameter")
}

func TestPatch_DryRun(t *testing.T) {
	dir := isolateEnv(t)
	input := patcher.DefaultMarker + "\n"
	path := writeXCConfig(t, dir, input)

	stdout, _, err := executeCmd(t, "--file", path, "--dry-run")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, patcher.DefaultMarker+"\n"+patcher.FlagPrefix+"Wall\n"))
	assert.Equal(t, input, readFile(t, path))
}

func TestPatch_VerboseLogsToStderr(t *testing.T) {
	dir := isolateEnv(t)
	path := writeXCConfig(t, dir, patcher.DefaultMarker+"\n")

	_, stderr, err := executeCmd(t, "--file", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"patched file"`)
	assert.NotContains(t, stderr, `"level":"debug"`)

	_, stderr, err = executeCmd(t, "--file", path, "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"found marker"`)
}

func TestPatch_Failures(t *testing.T) {
	tests := map[string]struct {
		setup         func(t *testing.T, dir string) []string
		wantExit      int
		wantStderr    []string
		wantUnchanged string
	}{
		"marker not found": {
			setup: func(t *testing.T, dir string) []string {
				return []string{"--file", writeXCConfig(t, dir, "A=1\n")}
			},
			wantExit:      ExitMarkerNotFound,
			wantStderr:    []string{"Marker Not Found", patcher.DefaultMarker},
			wantUnchanged: "A=1\n",
		},
		"missing file": {
			setup: func(t *testing.T, dir string) []string {
				return []string{"--file", filepath.Join(dir, "missing.xcconfig")}
			},
			wantExit:   ExitIOError,
			wantStderr: []string{"I/O Error", "missing.xcconfig"},
		},
		"unknown flag": {
			setup: func(t *testing.T, dir string) []string {
				return []string{"--bogus"}
			},
			wantExit:   ExitInvalidArguments,
			wantStderr: []string{"Argument Error", "bogus"},
		},
		"unexpected argument": {
			setup: func(t *testing.T, dir string) []string {
				return []string{"extra"}
			},
			wantExit:   ExitInvalidArguments,
			wantStderr: []string{"Argument Error"},
		},
		"empty flags file": {
			setup: func(t *testing.T, dir string) []string {
				flagsPath := filepath.Join(dir, "flags.txt")
				require.NoError(t, os.WriteFile(flagsPath, []byte("# none\n"), 0o644))
				return []string{"--file", writeXCConfig(t, dir, patcher.DefaultMarker+"\n"), "--flags-file", flagsPath}
			},
			wantExit:      ExitInvalidArguments,
			wantStderr:    []string{"invalid flags file"},
			wantUnchanged: patcher.DefaultMarker + "\n",
		},
		"invalid config file": {
			setup: func(t *testing.T, dir string) []string {
				cfgPath := filepath.Join(dir, "bad.yml")
				require.NoError(t, os.WriteFile(cfgPath, []byte("file: [unclosed\n"), 0o644))
				return []string{"--config", cfgPath}
			},
			wantExit:   ExitConfigError,
			wantStderr: []string{"Configuration Error"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolateEnv(t)
			args := tt.setup(t, dir)

			_, stderr, err := executeCmd(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, ExitCode(err))
			for _, s := range tt.wantStderr {
				assert.Contains(t, stderr, s)
			}
			if tt.wantUnchanged != "" {
				assert.Equal(t, tt.wantUnchanged, readFile(t, filepath.Join(dir, "common.xcconfig")))
			}
		})
	}
}

func TestPatch_TwiceDuplicatesBlock(t *testing.T) {
	dir := isolateEnv(t)
	path := writeXCConfig(t, dir, patcher.DefaultMarker+"\n")

	for i := 0; i < 2; i++ {
		_, _, err := executeCmd(t, "--file", path, "--flags-file", writeFlags(t, dir, "Wall"))
		require.NoError(t, err)
	}
	assert.Equal(t, patcher.DefaultMarker+"\n"+patcher.FlagPrefix+"Wall\n"+patcher.FlagPrefix+"Wall\n", readFile(t, path))
}

func writeFlags(t *testing.T, dir string, flags ...string) string {
	t.Helper()
	path := filepath.Join(dir, "flags.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(flags, "\n")), 0o644))
	return path
}

func TestFlagsCmd(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeCmd(t, "flags")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, len(flagset.Default()))
	assert.Equal(t, "-Wall", lines[0])

	stdout, _, err = executeCmd(t, "flags", "--lines")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "OTHER_CFLAGS=$(OTHER_CFLAGS) -Wall\n"))

	t.Setenv("CFLAGPATCH_FLAGS", "Wcomma,Wprotocol")
	stdout, _, err = executeCmd(t, "flags")
	require.NoError(t, err)
	assert.Equal(t, "-Wcomma\n-Wprotocol\n", stdout)
}

func TestConfigCmd_InitAndShow(t *testing.T) {
	dir := isolateEnv(t)

	stdout, _, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created")

	cfgPath := filepath.Join(dir, ".cflagpatch", "config.yml")
	assert.Equal(t, config.GetDefaultConfigTemplate(), readFile(t, cfgPath))

	_, stderr, err := executeCmd(t, "config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Contains(t, stderr, "already exists")

	_, _, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)

	stdout, _, err = executeCmd(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sources: [default project]")
	assert.Contains(t, stdout, "marker: OTHER_CFLAGS=$(inherited) -fstack-protector-strong")
}

func TestVersionCmd_Plain(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeCmd(t, "version", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "cflagpatch dev\n"))
	assert.Contains(t, stdout, "platform:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":           {err: nil, want: ExitSuccess},
		"marker":        {err: &clierrors.CLIError{Category: clierrors.MarkerNotFound}, want: ExitMarkerNotFound},
		"io":            {err: &clierrors.CLIError{Category: clierrors.IO}, want: ExitIOError},
		"argument":      {err: clierrors.NewArgumentError("x"), want: ExitInvalidArguments},
		"configuration": {err: clierrors.NewConfigError("x"), want: ExitConfigError},
		"plain error":   {err: os.ErrInvalid, want: ExitInvalidArguments},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
