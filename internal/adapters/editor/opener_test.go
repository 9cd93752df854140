package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envLookup(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestStageCollect(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	o := NewOpener(dir)

	path, err := o.Stage(42, "# hello")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "note-42-"))
	assert.Equal(t, ".md", filepath.Ext(path))

	require.NoError(t, os.WriteFile(path, []byte("# edited"), 0o644))
	content, err := o.Collect(path)
	require.NoError(t, err)
	assert.Equal(t, "# edited", content)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "scratch file should be removed")
}

func TestCommand_UsesEditorWithFlags(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantArgs []string
	}{
		{name: "editor", env: map[string]string{"EDITOR": "nano"}, wantArgs: []string{"nano", "/tmp/x.md"}},
		{name: "editor with flags", env: map[string]string{"EDITOR": "code -w"}, wantArgs: []string{"code", "-w", "/tmp/x.md"}},
		{name: "visual fallback", env: map[string]string{"VISUAL": "emacs"}, wantArgs: []string{"emacs", "/tmp/x.md"}},
		{name: "editor wins", env: map[string]string{"EDITOR": "vi", "VISUAL": "emacs"}, wantArgs: []string{"vi", "/tmp/x.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOpener("")
			o.lookup = envLookup(tt.env)

			cmd, err := o.Command("/tmp/x.md")
			require.NoError(t, err)
			assert.Equal(t, tt.wantArgs, cmd.Args)
		})
	}
}

func TestEdit_RunsEditor(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'from editor' > \"$1\"\n"), 0o755))

	o := NewOpener(dir)
	o.lookup = envLookup(map[string]string{"EDITOR": script})

	content, err := o.Edit(7, "before")
	require.NoError(t, err)
	assert.Equal(t, "from editor", content)

	matches, _ := filepath.Glob(filepath.Join(dir, "note-7-*.md"))
	assert.Empty(t, matches)
}

func TestEdit_FailingEditorKeepsNothing(t *testing.T) {
	dir := t.TempDir()
	o := NewOpener(dir)
	o.lookup = envLookup(map[string]string{"EDITOR": "false"})

	_, err := o.Edit(9, "before")
	require.Error(t, err)

	matches, _ := filepath.Glob(filepath.Join(dir, "note-9-*.md"))
	assert.Empty(t, matches)
}
