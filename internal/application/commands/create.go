package commands

import (
	"context"
	"fmt"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// CreateNoteResult contains the result of creating a note
type CreateNoteResult struct {
	NotebookID string
	Note       domain.Note
	Message    string
}

// CreateNoteCommand creates a note in a notebook
type CreateNoteCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	Title      string
}

// NewCreateNoteCommand creates a new CreateNoteCommand
func NewCreateNoteCommand(repo ports.DocumentStore, notebookID, title string) *CreateNoteCommand {
	return &CreateNoteCommand{
		repo:       repo,
		NotebookID: notebookID,
		Title:      title,
	}
}

// Validate checks if the create operation is valid
func (c *CreateNoteCommand) Validate() error {
	return application.ValidateRequired("title", c.Title)
}

// Execute runs the create note command
func (c *CreateNoteCommand) Execute(ctx context.Context) (*CreateNoteResult, error) {
	if err := c.Validate(); err != nil {
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

	note, ok := s.store.Create(nbID, c.Title)
	if !ok {
		return nil, fmt.Errorf("failed to create note in %s", nbID)
	}
	if err := s.save(); err != nil {
		return nil, err
	}

	return &CreateNoteResult{
		NotebookID: nbID,
		Note:       note,
		Message:    fmt.Sprintf("Created note: %d %s", note.ID, note.Title),
	}, nil
}

// CreateNotebookResult contains the result of creating a collection
type CreateNotebookResult struct {
	ID      string
	Message string
}

// CreateNotebookCommand creates a collection in a view and selects it
type CreateNotebookCommand struct {
	repo ports.DocumentStore
	View string
	Name string
}

// NewCreateNotebookCommand creates a new CreateNotebookCommand
func NewCreateNotebookCommand(repo ports.DocumentStore, view, name string) *CreateNotebookCommand {
	return &CreateNotebookCommand{
		repo: repo,
		View: view,
		Name: name,
	}
}

// Validate checks if the create operation is valid
func (c *CreateNotebookCommand) Validate() error {
	if _, err := application.ValidateViewKind("viewKind", c.View); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the create notebook command
func (c *CreateNotebookCommand) Execute(ctx context.Context) (*CreateNotebookResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind := domain.ParseViewKind(c.View)
	s, err := openSession(c.repo)
	if err != nil {
		return nil, err
	}

	id, ok := s.books.Create(kind, c.Name)
	if !ok {
		return nil, fmt.Errorf("failed to create %s", kind.Noun())
	}
	if err := s.save(); err != nil {
		return nil, err
	}

	return &CreateNotebookResult{
		ID:      id,
		Message: fmt.Sprintf("Created %s: %s", kind.Noun(), id),
	}, nil
}
