package commands

import (
	"context"
	"fmt"

	"arknotes/internal/application"
	"arknotes/internal/ports"
)

// DeleteResult contains the result of a delete
type DeleteResult struct {
	Message string
}

// DeleteNoteCommand removes a note
type DeleteNoteCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	NoteID     int64
}

// NewDeleteNoteCommand creates a new DeleteNoteCommand
func NewDeleteNoteCommand(repo ports.DocumentStore, notebookID string, noteID int64) *DeleteNoteCommand {
	return &DeleteNoteCommand{repo: repo, NotebookID: notebookID, NoteID: noteID}
}

// Execute runs the delete note command
func (c *DeleteNoteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
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
	idx, note, err := s.note(nbID, c.NoteID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(nbID, idx); err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return &DeleteResult{Message: fmt.Sprintf("Deleted note: %d %s", note.ID, note.Title)}, nil
}

// DeleteNotebookCommand removes a collection of a view
type DeleteNotebookCommand struct {
	repo ports.DocumentStore
	View string
	ID   string
}

// NewDeleteNotebookCommand creates a new DeleteNotebookCommand
func NewDeleteNotebookCommand(repo ports.DocumentStore, view, id string) *DeleteNotebookCommand {
	return &DeleteNotebookCommand{repo: repo, View: view, ID: id}
}

// Execute runs the delete notebook command
func (c *DeleteNotebookCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	kind, err := application.ValidateViewKind("viewKind", c.View)
	if err != nil {
		return nil, err
	}
	if err := application.ValidateRequired("notebookID", c.ID); err != nil {
		return nil, err
	}
	s, err := openSession(c.repo)
	if err != nil {
		return nil, err
	}
	if err := s.books.Delete(kind, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", kind.Noun(), err)
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return &DeleteResult{
		Message: fmt.Sprintf("Deleted %s %s, active is now %s", kind.Noun(), c.ID, s.books.Active(kind)),
	}, nil
}

// SelectNotebookCommand makes a collection the active one of its view
type SelectNotebookCommand struct {
	repo ports.DocumentStore
	View string
	ID   string
}

// NewSelectNotebookCommand creates a new SelectNotebookCommand
func NewSelectNotebookCommand(repo ports.DocumentStore, view, id string) *SelectNotebookCommand {
	return &SelectNotebookCommand{repo: repo, View: view, ID: id}
}

// Execute runs the select notebook command
func (c *SelectNotebookCommand) Execute(ctx context.Context) (string, error) {
	kind, err := application.ValidateViewKind("viewKind", c.View)
	if err != nil {
		return "", err
	}
	s, err := openSession(c.repo)
	if err != nil {
		return "", err
	}
	if err := s.books.Select(kind, c.ID); err != nil {
		return "", err
	}
	if err := s.repo.SaveSettings(s.books.Settings()); err != nil {
		return "", fmt.Errorf("failed to save settings: %w", err)
	}
	return fmt.Sprintf("Active %s: %s", kind.Noun(), c.ID), nil
}
