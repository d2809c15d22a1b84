package config

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("DEVLOGS_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	require.NotEmpty(t, dir)
	if runtime.GOOS != "windows" {
		assert.Equal(t, "devlogs", filepath.Base(dir))
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("DEVLOGS_CONFIG_HOME", "/custom/path")
	assert.Equal(t, "/custom/path", Dir())
	assert.Equal(t, filepath.Join("/custom/path", SettingsFileName), SettingsPath())
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("DEVLOGS_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	assert.Equal(t, filepath.Join("/xdg/config", "devlogs"), Dir())
}
