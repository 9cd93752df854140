package commands

import (
	"context"
	"fmt"

	"arknotes/internal/application"
	"arknotes/internal/ports"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	Renamed bool
	Message string
}

// RenameNotebookCommand renames a collection of a view
type RenameNotebookCommand struct {
	repo    ports.DocumentStore
	View    string
	ID      string
	NewName string
}

// NewRenameNotebookCommand creates a new RenameNotebookCommand
func NewRenameNotebookCommand(repo ports.DocumentStore, view, id, newName string) *RenameNotebookCommand {
	return &RenameNotebookCommand{
		repo:    repo,
		View:    view,
		ID:      id,
		NewName: newName,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameNotebookCommand) Validate() error {
	if _, err := application.ValidateViewKind("viewKind", c.View); err != nil {
		return err
	}
	return application.ValidateRequired("notebookID", c.ID)
}

// Execute runs the rename command. A blank name changes nothing.
func (c *RenameNotebookCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind := application.ParseViewKind(c.View)
	s, err := openSession(c.repo)
	if err != nil {
		return nil, err
	}

	renamed, err := s.books.Rename(kind, c.ID, c.NewName)
	if err != nil {
		return nil, fmt.Errorf("failed to rename: %w", err)
	}
	if !renamed {
		return &RenameResult{Message: "Name is blank, nothing changed"}, nil
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return &RenameResult{
		Renamed: true,
		Message: fmt.Sprintf("Renamed %s %s", kind.Noun(), c.ID),
	}, nil
}

// RenameNoteCommand sets a note's title
type RenameNoteCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	NoteID     int64
	Title      string
}

// NewRenameNoteCommand creates a new RenameNoteCommand
func NewRenameNoteCommand(repo ports.DocumentStore, notebookID string, noteID int64, title string) *RenameNoteCommand {
	return &RenameNoteCommand{repo: repo, NotebookID: notebookID, NoteID: noteID, Title: title}
}

// Execute runs the rename note command
func (c *RenameNoteCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := requireNoteID(c.NoteID); err != nil {
		return nil, err
	}
	err := mutateNote(c.repo, c.NotebookID, c.NoteID, func(s *docSession, nbID string, idx int) error {
		return s.store.SetTitle(nbID, idx, c.Title)
	})
	if err != nil {
		return nil, err
	}
	return &RenameResult{Renamed: true, Message: fmt.Sprintf("Renamed note %d", c.NoteID)}, nil
}

// mutateNote loads the document, applies fn to one note and saves
func mutateNote(repo ports.DocumentStore, notebookID string, noteID int64, fn func(s *docSession, nbID string, idx int) error) error {
	s, err := openSession(repo)
	if err != nil {
		return err
	}
	nbID, err := s.notebook(notebookID)
	if err != nil {
		return err
	}
	idx, _, err := s.note(nbID, noteID)
	if err != nil {
		return err
	}
	if err := fn(s, nbID, idx); err != nil {
		return err
	}
	return s.save()
}
