package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/devlogs/internal/output"
)

// --- Test helpers ---

// isolateSettings points user settings at an empty directory and clears
// every DEVLOGS_* override so tests see defaults.
func isolateSettings(t *testing.T) {
	t.Helper()
	t.Setenv("DEVLOGS_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"DIR", "EDITOR", "PAGER", "RSYNC", "RSYNC_FLAGS", "LOCK_TIMEOUT", "COLOR", "LOG_LEVEL"} {
		t.Setenv("DEVLOGS_"+key, "")
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// executeJSON runs args with --json and decodes the single JSON document.
func executeJSON(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	stdout, _, err := execute(t, append(args, "--json")...)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result), "stdout: %s", stdout)
	return result, err
}

// initTestRepo creates a repository and returns its directory.
func initTestRepo(t *testing.T, extra ...string) string {
	t.Helper()
	isolateSettings(t)
	dir := filepath.Join(t.TempDir(), ".devlogs")
	args := []string{"init", "--dir", dir, "--name", "Relic", "--description", "Relic devlog", "--short-code", "RLP"}
	if len(extra) == 0 {
		extra = []string{"--no-mirror"}
	}
	result, err := executeJSON(t, append(args, extra...)...)
	require.NoError(t, err)
	require.Equal(t, "ok", result["status"])
	return dir
}

// runInDir executes testFunc with the working directory set to dir.
func runInDir(t *testing.T, dir string, testFunc func()) {
	t.Helper()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("failed to restore dir: %v", err)
		}
	}()
	testFunc()
}

func writeEntries(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# "+name+"\n"), 0o644))
	}
}

// --- Root command ---

func TestRootCommand_Version(t *testing.T) {
	old := version
	version = "1.2.3"
	defer func() { version = old }()

	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "devlogs")
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)
	for _, want := range []string{"devlogs", "Usage:", "--json", "--dir", "new-issue", "Writing Commands:"} {
		assert.Contains(t, stdout, want)
	}
}

func TestRootCommand_JSONWithoutCommand(t *testing.T) {
	result, err := executeJSON(t)
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.Contains(t, result["error"], "no command specified")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "devlogs "+buildVersion())

	result, err := executeJSON(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version, result["version"])
}

func TestBuildVersion(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	defer func() { version, commit, date = oldV, oldC, oldD }()

	version, commit, date = "1.0.0", "none", "unknown"
	assert.Equal(t, "1.0.0", buildVersion())

	commit, date = "abcdef1234567", "2024-01-01"
	assert.Equal(t, "1.0.0 (abcdef1, 2024-01-01)", buildVersion())
}

func TestInvalidSettings(t *testing.T) {
	isolateSettings(t)
	t.Setenv("DEVLOGS_COLOR", "rainbow")

	result, err := executeJSON(t, "ls")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.Contains(t, result["error"], "invalid settings")
}

func TestLockTimeoutFlag(t *testing.T) {
	isolateSettings(t)

	result, err := executeJSON(t, "ls", "--lock-timeout", "0s")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.Contains(t, result["error"], "lock_timeout")
}
