package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/devlogs/internal/output"
	"github.com/gorewood/devlogs/internal/repository"
)

// --- init ---

func TestInitCommand(t *testing.T) {
	dir := initTestRepo(t)

	for _, name := range []string{
		repository.ConfigFileName,
		repository.CounterFileName,
		repository.LogTemplateFileName,
		repository.IssueTemplateFileName,
		"relic.devlogs.info.md",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.DirExists(t, filepath.Join(dir, repository.IssueDirName))
}

func TestInitCommand_AlreadyInitialized(t *testing.T) {
	dir := initTestRepo(t)
	before, err := os.ReadFile(filepath.Join(dir, repository.ConfigFileName))
	require.NoError(t, err)

	result, err := executeJSON(t, "init", "--dir", dir, "--name", "Other", "--description", "x", "--short-code", "OT", "--no-mirror")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.Contains(t, result["error"], "already initialized")

	after, err := os.ReadFile(filepath.Join(dir, repository.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestInitCommand_Force(t *testing.T) {
	dir := initTestRepo(t)

	result, err := executeJSON(t, "init", "--force", "--dir", dir, "--name", "Renamed", "--description", "x", "--short-code", "RN", "--no-mirror")
	require.NoError(t, err)
	cfg, ok := result["config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Renamed", cfg["name"])
}

func TestInitCommand_DirPath(t *testing.T) {
	isolateSettings(t)
	dir := filepath.Join(t.TempDir(), "notes")

	result, err := executeJSON(t, "init", "--dir-path", dir, "--name", "Relic", "--description", "d", "--short-code", "R", "--mirror", "/tmp/relic-mirror")
	require.NoError(t, err)
	assert.Equal(t, dir, result["dir"])

	data, err := os.ReadFile(filepath.Join(dir, repository.ConfigFileName))
	require.NoError(t, err)
	cfg, err := repository.ParseConfig(data)
	require.NoError(t, err)
	assert.True(t, cfg.MirrorEnabled())
	assert.Equal(t, "/tmp/relic-mirror", cfg.Mirror.Path)
}

func TestInitCommand_MissingAnswersWithoutTerminal(t *testing.T) {
	isolateSettings(t)
	dir := filepath.Join(t.TempDir(), ".devlogs")

	_, err := executeJSON(t, "init", "--dir", dir, "--name", "Relic")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.NoDirExists(t, dir)
}

func TestInitCommand_DefaultDir(t *testing.T) {
	isolateSettings(t)
	work := t.TempDir()

	runInDir(t, work, func() {
		_, err := executeJSON(t, "init", "--name", "Relic", "--description", "d", "--short-code", "R", "--no-mirror")
		require.NoError(t, err)
	})
	assert.FileExists(t, filepath.Join(work, repository.DefaultDirName, repository.ConfigFileName))
}

// --- new / new-issue ---

func TestNewCommand(t *testing.T) {
	dir := initTestRepo(t)

	result, err := executeJSON(t, "new", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, true, result["created"])

	path, ok := result["path"].(string)
	require.True(t, ok)
	assert.FileExists(t, path)
	assert.Equal(t, dir, filepath.Dir(path))
	_, err = repository.ParseLogFileName(path)
	require.NoError(t, err)
}

func TestNewCommand_Human(t *testing.T) {
	dir := initTestRepo(t)

	stdout, _, err := execute(t, "entry", "--no-edit", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "_log.md")
	assert.Regexp(t, `^(Created|Reused) `, stdout)
}

func TestNewCommand_EditorFlag(t *testing.T) {
	dir := initTestRepo(t)

	stdout, stderr, err := execute(t, "new", "--dir", dir, "--editor", "true", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "_log.md")
	assert.Contains(t, stderr, "resolved editor")
	assert.Contains(t, stderr, "command=true")
}

func TestNewCommand_NoRepository(t *testing.T) {
	isolateSettings(t)

	result, err := executeJSON(t, "new", "--dir", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.Contains(t, result["error"], "no devlogs repository")
}

func TestNewIssueCommand(t *testing.T) {
	dir := initTestRepo(t)

	result, err := executeJSON(t, "new-issue", "--dir", dir, "--title", "Crash on save", "--description", "It crashes", "--reproduction", "Save twice")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "issues", "rlp-1__crash_on_save.md"), result["path"])

	content, err := os.ReadFile(filepath.Join(dir, "issues", "rlp-1__crash_on_save.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# RLP-1: Crash on save")
	assert.Contains(t, string(content), "It crashes")

	result, err = executeJSON(t, "new-issue", "--dir", dir, "-t", "Slow start", "-d", "x", "-r", "y")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "issues", "rlp-2__slow_start.md"), result["path"])
}

func TestNewIssueCommand_TitleTooLong(t *testing.T) {
	dir := initTestRepo(t)

	_, err := executeJSON(t, "new-issue", "--dir", dir, "--title", "this title is much longer than allowed", "-d", "x", "-r", "y")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
}

// --- ls / issues / last ---

func TestLsCommand(t *testing.T) {
	dir := initTestRepo(t)
	writeEntries(t, dir, "01-03-2023__10h00m_log.md", "02-01-2023__09h30m_log.md", "01-01-2023__08h00m_log.md")

	result, err := executeJSON(t, "ls", "--dir", dir)
	require.NoError(t, err)
	assert.InDelta(t, 3, result["count"], 0)
	assert.Equal(t, []string{
		"02-01-2023__09h30m_log.md",
		"01-03-2023__10h00m_log.md",
		"01-01-2023__08h00m_log.md",
	}, entryNames(t, result["entries"]))

	result, err = executeJSON(t, "ls", "--dir", dir, "--asc", "--since", "2023-01-02", "--until", "2023-01-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"01-03-2023__10h00m_log.md"}, entryNames(t, result["entries"]))
}

func TestLsCommand_Human(t *testing.T) {
	dir := initTestRepo(t)
	writeEntries(t, dir, "01-03-2023__10h00m_log.md")

	stdout, _, err := execute(t, "ls", "--dir", dir, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DATE")
	assert.Contains(t, stdout, "01-03-2023 10:00")
	assert.Contains(t, stdout, "01-03-2023__10h00m_log.md")
}

func TestLsCommand_Errors(t *testing.T) {
	dir := initTestRepo(t)

	_, err := executeJSON(t, "ls", "--dir", dir, "--since", "banana")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))

	writeEntries(t, dir, "garbage_log.md")
	_, err = executeJSON(t, "ls", "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, output.ExitSystemError, output.GetExitCode(err))
}

func TestLsCommand_IssuesRejectTimeFilters(t *testing.T) {
	dir := initTestRepo(t)

	for _, flag := range []string{"--since", "--until"} {
		result, err := executeJSON(t, "ls", "--dir", dir, "--issues", flag, "7d")
		require.Error(t, err)
		assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
		assert.Contains(t, result["error"], "--issues")
	}
}

func TestLsCommand_SelectNeedsTerminal(t *testing.T) {
	dir := initTestRepo(t)
	writeEntries(t, dir, "01-03-2023__10h00m_log.md")

	result, err := executeJSON(t, "ls", "--dir", dir, "--select")
	require.Error(t, err)
	assert.Contains(t, result["error"], "interactive terminal")
}

func TestIssuesCommand(t *testing.T) {
	dir := initTestRepo(t)
	for _, title := range []string{"first", "second"} {
		_, err := executeJSON(t, "new-issue", "--dir", dir, "-t", title, "-d", "x", "-r", "y")
		require.NoError(t, err)
	}

	result, err := executeJSON(t, "issues", "--dir", dir)
	require.NoError(t, err)
	assert.InDelta(t, 2, result["count"], 0)
	issues, ok := result["issues"].([]any)
	require.True(t, ok)
	first, ok := issues[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RLP-2", first["code"])

	result, err = executeJSON(t, "ls", "--issues", "--asc", "--dir", dir)
	require.NoError(t, err)
	issues, ok = result["issues"].([]any)
	require.True(t, ok)
	first, ok = issues[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RLP-1", first["code"])
}

func TestLastCommand(t *testing.T) {
	dir := initTestRepo(t)

	result, err := executeJSON(t, "last", "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.Contains(t, result["error"], "no log entries")

	writeEntries(t, dir, "01-03-2023__10h00m_log.md", "02-01-2023__09h30m_log.md")
	result, err = executeJSON(t, "last", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "02-01-2023__09h30m_log.md", result["name"])
	assert.Equal(t, "# 02-01-2023__09h30m_log.md\n", result["content"])

	stdout, _, err := execute(t, "last", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "# 02-01-2023__09h30m_log.md\n", stdout)
}

func entryNames(t *testing.T, raw any) []string {
	t.Helper()
	entries, ok := raw.([]any)
	require.True(t, ok, "entries: %v", raw)
	names := make([]string, len(entries))
	for i, e := range entries {
		m, ok := e.(map[string]any)
		require.True(t, ok)
		names[i], _ = m["name"].(string)
	}
	return names
}
