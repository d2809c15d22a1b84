package launch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEditor(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		visual     string
		editor     string
		want       string
	}{
		{name: "configured wins", configured: "nano", visual: "code", editor: "vim", want: "nano"},
		{name: "visual before editor", visual: "code --wait", editor: "vim", want: "code --wait"},
		{name: "editor fallback", editor: "vim", want: "vim"},
		{name: "default", want: DefaultEditor},
		{name: "blank configured ignored", configured: "  ", editor: "vim", want: "vim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)
			assert.Equal(t, tt.want, ResolveEditor(tt.configured))
		})
	}
}

func TestResolvePager(t *testing.T) {
	t.Setenv("PAGER", "")
	assert.Equal(t, DefaultPager, ResolvePager(""))

	t.Setenv("PAGER", "more")
	assert.Equal(t, "more", ResolvePager(""))
	assert.Equal(t, "bat", ResolvePager("bat"))
}

func TestProgram_Command(t *testing.T) {
	assert.Equal(t, "code --wait", NewProgram("code --wait").Command())
}

func TestProgram_Open(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "entry.md")
	script := filepath.Join(dir, "fake-editor.sh")
	// The fake editor appends its arguments to the target file.
	content := "#!/bin/sh\nfor a in \"$@\"; do printf '%s\\n' \"$a\" >> \"" + target + ".args\"; done\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0o700))

	var out bytes.Buffer
	p := NewProgram(script+" --wait").WithStreams(strings.NewReader(""), &out, &out)
	require.NoError(t, p.Open(context.Background(), target))

	args, err := os.ReadFile(target + ".args")
	require.NoError(t, err)
	assert.Equal(t, "--wait\n"+target+"\n", string(args))
}

func TestProgram_OpenErrors(t *testing.T) {
	err := NewProgram("   ").Open(context.Background(), "x.md")
	require.Error(t, err)

	err = NewProgram("devlogs-no-such-editor-binary").Open(context.Background(), "x.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devlogs-no-such-editor-binary")
}

func TestPager_NonTTYWritesDirectly(t *testing.T) {
	var out bytes.Buffer
	p := NewPager("less").WithOutput(&out)

	require.NoError(t, p.Page(context.Background(), "line one\nline two\n"))
	assert.Equal(t, "line one\nline two\n", out.String())
}

func TestFitsScreen(t *testing.T) {
	assert.True(t, fitsScreen("a\nb", 10))
	assert.False(t, fitsScreen("a\nb\nc", 3))
	assert.False(t, fitsScreen("a", 0))
	assert.Equal(t, 0, contentHeight(""))
	assert.Equal(t, 3, contentHeight("a\nb\nc"))
}
