package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"arknotes/internal/ports"
)

// Opener implements ports.NoteEditor with the user's $EDITOR
type Opener struct {
	// scratch directory, empty for the system temp dir
	dir    string
	lookup func(string) string
}

var _ ports.NoteEditor = (*Opener)(nil)

// NewOpener creates a new editor opener writing scratch files into dir
func NewOpener(dir string) *Opener {
	return &Opener{dir: dir, lookup: os.Getenv}
}

// Stage writes content to a scratch markdown file and returns its path
func (o *Opener) Stage(noteID int64, content string) (string, error) {
	if o.dir != "" {
		if err := os.MkdirAll(o.dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create scratch directory: %w", err)
		}
	}
	f, err := os.CreateTemp(o.dir, fmt.Sprintf("note-%d-*.md", noteID))
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close scratch file: %w", err)
	}
	return f.Name(), nil
}

// Collect reads the edited scratch file back and removes it
func (o *Opener) Collect(path string) (string, error) {
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return string(data), nil
}

// Edit runs the editor in the foreground and returns the edited content
func (o *Opener) Edit(noteID int64, content string) (string, error) {
	path, err := o.Stage(noteID, content)
	if err != nil {
		return "", err
	}
	cmd, err := o.Command(path)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if err := cmd.Run(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("editor exited with error: %w", err)
	}
	return o.Collect(path)
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if len(editor) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := append(editor[1:], path)
	cmd := exec.Command(editor[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor command line to use
func (o *Opener) findEditor() []string {
	// Check $EDITOR first, then $VISUAL. Both may carry flags, e.g. "code -w".
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(o.lookup(env)); len(fields) > 0 {
			return fields
		}
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return []string{path}
		}
	}

	return nil
}
