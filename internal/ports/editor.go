package ports

import "os/exec"

// NoteEditor edits note content in the user's external editor through a scratch file
type NoteEditor interface {
	// Stage writes content to a scratch markdown file and returns its path
	Stage(noteID int64, content string) (string, error)

	// Command returns an exec.Cmd editing path.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// Collect reads the edited scratch file back and removes it
	Collect(path string) (string, error)

	// Edit runs Stage, the editor and Collect in the foreground
	Edit(noteID int64, content string) (string, error)
}
