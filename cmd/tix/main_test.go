package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/tixcli/tix/internal/debug"
)

// isolateCLI points HOME, XDG_CONFIG_HOME and the working directory at a
// fresh temp dir and turns colour off. It returns the temp dir.
func isolateCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"TIX_DATA", "TIX_JSON", "TIX_INIT_MISSING", "TIX_LOCK_TIMEOUT", "TIX_SORT", "TIX_OTEL_ENABLED"} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)
	return dir
}

// resetCommandFlags restores every flag in the tree to its default so
// package-level command state does not leak between runs.
func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetCommandFlags(c)
	}
}

// runTix executes the root command in process and returns stdout and stderr.
func runTix(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetCommandFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	debug.SetOutput(&stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		debug.SetOutput(os.Stderr)
	})

	err := rootCmd.Execute()
	shutdown()
	return stdout.String(), stderr.String(), err
}

// mustRunTix is runTix that fails the test on error and returns stdout.
func mustRunTix(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := runTix(t, args...)
	require.NoError(t, err, "tix %s\nstderr: %s", strings.Join(args, " "), errOut)
	return out
}

// createdID extracts the id from a create command's output.
func createdID(t *testing.T, out string) string {
	t.Helper()
	const prefix = "Ticket created successfully, with ID "
	require.True(t, strings.HasPrefix(out, prefix), "unexpected create output %q", out)
	return strings.TrimSpace(strings.TrimPrefix(out, prefix))
}
