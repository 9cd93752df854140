package commands

import (
	"context"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// NotebookListing is a collection with a flag for the active one
type NotebookListing struct {
	domain.CollectionRef
	Active bool
}

// ListNotebooksCommand lists the collections of one view
type ListNotebooksCommand struct {
	repo ports.DocumentStore
	View string
}

// NewListNotebooksCommand creates a new ListNotebooksCommand
func NewListNotebooksCommand(repo ports.DocumentStore, view string) *ListNotebooksCommand {
	return &ListNotebooksCommand{repo: repo, View: view}
}

// Execute runs the list notebooks command
func (c *ListNotebooksCommand) Execute(ctx context.Context) ([]NotebookListing, error) {
	kind, err := application.ValidateViewKind("viewKind", c.View)
	if err != nil {
		return nil, err
	}
	s, err := openSession(c.repo)
	if err != nil {
		return nil, err
	}

	active := s.books.Active(kind)
	var out []NotebookListing
	for _, ref := range s.books.List(kind) {
		out = append(out, NotebookListing{CollectionRef: ref, Active: ref.ID == active})
	}
	return out, nil
}

// ListNotesResult holds a notebook's notes in stored order
type ListNotesResult struct {
	NotebookID string
	Notes      []domain.Note
}

// ListNotesCommand lists the notes of a notebook
type ListNotesCommand struct {
	repo       ports.DocumentStore
	NotebookID string
}

// NewListNotesCommand creates a new ListNotesCommand. An empty notebook id means the active one.
func NewListNotesCommand(repo ports.DocumentStore, notebookID string) *ListNotesCommand {
	return &ListNotesCommand{repo: repo, NotebookID: notebookID}
}

// Execute runs the list notes command
func (c *ListNotesCommand) Execute(ctx context.Context) (*ListNotesResult, error) {
	s, err := openSession(c.repo)
	if err != nil {
		return nil, err
	}
	nbID, err := s.notebook(c.NotebookID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.List(nbID)
	if err != nil {
		return nil, err
	}
	return &ListNotesResult{NotebookID: nbID, Notes: items}, nil
}
