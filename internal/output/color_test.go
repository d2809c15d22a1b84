package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name      string
		colorMode string
		isTTY     bool
		want      bool
	}{
		{"never disables on TTY", "never", true, false},
		{"always enables on non-TTY", "always", false, true},
		{"auto follows TTY", "auto", true, true},
		{"auto follows non-TTY", "auto", false, false},
		{"empty is auto", "", true, true},
		{"unknown is auto", "bogus", false, false},
	}
	t.Setenv("NO_COLOR", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColorMode(tt.colorMode, tt.isTTY))
		})
	}
}

func TestResolveColorMode_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColorMode("auto", true))
	assert.True(t, ResolveColorMode("always", true))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTTY(f))
}
