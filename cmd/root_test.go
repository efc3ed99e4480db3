package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/nmsweep/internal/report"
	"github.com/lakshaymaurya-felt/nmsweep/internal/ui"
)

// sweepTree builds root/{a,b,c} projects (b without a cache) and moves
// into root, keeping the caller's config files and environment out of the run.
func sweepTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o644))
		if name != "b" {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "left-pad"), 0o755))
		}
	}
	t.Chdir(root)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRoot_PlainRun(t *testing.T) {
	root := sweepTree(t)

	out, _, err := execute(t, "--plain")
	require.NoError(t, err)

	assert.False(t, exists(filepath.Join(root, "a", "node_modules")))
	assert.False(t, exists(filepath.Join(root, "c", "node_modules")))
	assert.True(t, exists(filepath.Join(root, "b", "package.json")))
	assert.Contains(t, out, ui.IconCheck+" a")
	assert.NotContains(t, out, ui.IconCross)
	assert.Contains(t, out, "2 cleaned")
}

func TestRoot_SilentRunPrintsNothing(t *testing.T) {
	root := sweepTree(t)

	out, _, err := execute(t, "-s")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.False(t, exists(filepath.Join(root, "a", "node_modules")))
	assert.False(t, exists(filepath.Join(root, "c", "node_modules")))
}

func TestRoot_PathArgument(t *testing.T) {
	root := sweepTree(t)
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "--plain", root)
	require.NoError(t, err)
	assert.False(t, exists(filepath.Join(root, "a", "node_modules")))
}

func TestRoot_DepthZeroFindsNothing(t *testing.T) {
	root := sweepTree(t)

	out, _, err := execute(t, "--depth", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "No node_modules folders found.")
	assert.True(t, exists(filepath.Join(root, "a", "node_modules")))
}

func TestRoot_ExcludeFlag(t *testing.T) {
	root := sweepTree(t)

	_, _, err := execute(t, "--plain", "--exclude", "a")
	require.NoError(t, err)

	assert.True(t, exists(filepath.Join(root, "a", "node_modules")))
	assert.False(t, exists(filepath.Join(root, "c", "node_modules")))
}

func TestRoot_EnvConfiguresRun(t *testing.T) {
	root := sweepTree(t)
	t.Setenv("NMSWEEP_SILENT", "true")

	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, exists(filepath.Join(root, "a", "node_modules")))
}

func TestRoot_FlagBeatsEnv(t *testing.T) {
	sweepTree(t)
	t.Setenv("NMSWEEP_DEPTH", "0")

	out, _, err := execute(t, "--plain", "--depth", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2 cleaned")
}

func TestRoot_InvalidConfig(t *testing.T) {
	sweepTree(t)

	_, _, err := execute(t, "--concurrency", "0")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestRoot_RootMustBeDirectory(t *testing.T) {
	root := sweepTree(t)

	_, _, err := execute(t, filepath.Join(root, "a", "package.json"))
	require.Error(t, err)

	_, _, err = execute(t, filepath.Join(root, "missing"))
	require.Error(t, err)
}

func TestRoot_TooManyArgs(t *testing.T) {
	sweepTree(t)

	_, _, err := execute(t, "a", "b")
	require.Error(t, err)
}

func TestRoot_DebugLogsToStderr(t *testing.T) {
	sweepTree(t)

	out, errOut, err := execute(t, "--debug")
	require.NoError(t, err)
	assert.Contains(t, out, "2 cleaned")
	assert.Contains(t, errOut, "discovery finished")
}

func TestVersionCmd(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nmsweep 1.2.3 (abc123) built 2026-01-01")
}

func TestCompletionCmd(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "nmsweep")
		})
	}

	_, _, err := execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 130, ExitCode(report.ErrInterrupted))
	assert.Equal(t, 130, ExitCode(fmt.Errorf("live view: %w", report.ErrInterrupted)))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}
