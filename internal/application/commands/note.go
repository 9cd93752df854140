package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// ShowNoteCommand reads one note
type ShowNoteCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	NoteID     int64
}

// NewShowNoteCommand creates a new ShowNoteCommand
func NewShowNoteCommand(repo ports.DocumentStore, notebookID string, noteID int64) *ShowNoteCommand {
	return &ShowNoteCommand{repo: repo, NotebookID: notebookID, NoteID: noteID}
}

// Execute runs the show note command
func (c *ShowNoteCommand) Execute(ctx context.Context) (*domain.Note, error) {
	if err := requireNoteID(c.NoteID); err != nil {
		return nil, err
	}
	s, err := openSession(c.repo)
	if err != nil {
		return nil, err
	}
	nbID, err := s.notebook(c.NotebookID)
	if err != nil {
		return nil, err
	}
	_, n, err := s.note(nbID, c.NoteID)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ToggleNoteCommand flips a note between edit and preview
type ToggleNoteCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	NoteID     int64
}

// NewToggleNoteCommand creates a new ToggleNoteCommand
func NewToggleNoteCommand(repo ports.DocumentStore, notebookID string, noteID int64) *ToggleNoteCommand {
	return &ToggleNoteCommand{repo: repo, NotebookID: notebookID, NoteID: noteID}
}

// Execute runs the toggle command and returns the new view mode
func (c *ToggleNoteCommand) Execute(ctx context.Context) (domain.ViewMode, error) {
	if err := requireNoteID(c.NoteID); err != nil {
		return "", err
	}
	var mode domain.ViewMode
	err := mutateNote(c.repo, c.NotebookID, c.NoteID, func(s *docSession, nbID string, idx int) error {
		if err := s.store.ToggleViewMode(nbID, idx); err != nil {
			return err
		}
		n, err := s.store.Get(nbID, idx)
		mode = n.ViewMode
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to toggle note: %w", err)
	}
	return mode, nil
}

// SetNoteContentCommand replaces a note's content
type SetNoteContentCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	NoteID     int64
	Content    string
}

// NewSetNoteContentCommand creates a new SetNoteContentCommand
func NewSetNoteContentCommand(repo ports.DocumentStore, notebookID string, noteID int64, content string) *SetNoteContentCommand {
	return &SetNoteContentCommand{repo: repo, NotebookID: notebookID, NoteID: noteID, Content: content}
}

// Execute runs the set content command
func (c *SetNoteContentCommand) Execute(ctx context.Context) (string, error) {
	if err := requireNoteID(c.NoteID); err != nil {
		return "", err
	}
	err := mutateNote(c.repo, c.NotebookID, c.NoteID, func(s *docSession, nbID string, idx int) error {
		return s.store.SetContent(nbID, idx, c.Content)
	})
	if err != nil {
		return "", fmt.Errorf("failed to set content: %w", err)
	}
	return fmt.Sprintf("Updated note %d", c.NoteID), nil
}

// EditNoteCommand edits a note's content in the external editor
type EditNoteCommand struct {
	repo       ports.DocumentStore
	editor     ports.NoteEditor
	NotebookID string
	NoteID     int64
}

// NewEditNoteCommand creates a new EditNoteCommand
func NewEditNoteCommand(repo ports.DocumentStore, editor ports.NoteEditor, notebookID string, noteID int64) *EditNoteCommand {
	return &EditNoteCommand{repo: repo, editor: editor, NotebookID: notebookID, NoteID: noteID}
}

// Execute runs the editor in the foreground and stores the result
func (c *EditNoteCommand) Execute(ctx context.Context) (string, error) {
	if err := requireNoteID(c.NoteID); err != nil {
		return "", err
	}
	err := mutateNote(c.repo, c.NotebookID, c.NoteID, func(s *docSession, nbID string, idx int) error {
		n, err := s.store.Get(nbID, idx)
		if err != nil {
			return err
		}
		content, err := c.editor.Edit(n.ID, n.Content)
		if err != nil {
			return err
		}
		return s.store.SetContent(nbID, idx, content)
	})
	if err != nil {
		return "", fmt.Errorf("failed to edit note: %w", err)
	}
	return fmt.Sprintf("Updated note %d", c.NoteID), nil
}

// AttachImageCommand embeds an image file into a note as a data URI
type AttachImageCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	NoteID     int64
	Path       string
}

// NewAttachImageCommand creates a new AttachImageCommand
func NewAttachImageCommand(repo ports.DocumentStore, notebookID string, noteID int64, path string) *AttachImageCommand {
	return &AttachImageCommand{repo: repo, NotebookID: notebookID, NoteID: noteID, Path: path}
}

// Execute runs the attach command
func (c *AttachImageCommand) Execute(ctx context.Context) (string, error) {
	if err := requireNoteID(c.NoteID); err != nil {
		return "", err
	}
	blob, err := os.ReadFile(c.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	name := filepath.Base(c.Path)
	err = mutateNote(c.repo, c.NotebookID, c.NoteID, func(s *docSession, nbID string, idx int) error {
		return s.store.AttachImage(nbID, idx, name, blob)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Attached %s to note %d", name, c.NoteID), nil
}
