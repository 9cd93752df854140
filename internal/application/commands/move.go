package commands

import (
	"context"
	"fmt"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// GeometryResult contains a note's geometry after a move or resize
type GeometryResult struct {
	Position domain.Vec
	Size     domain.Size
	Message  string
}

// MoveNoteCommand places a note at an absolute workspace position.
// The position is clamped like a committed drag.
type MoveNoteCommand struct {
	repo       ports.DocumentStore
	NotebookID string
	NoteID     int64
	X, Y       float64
}

// NewMoveNoteCommand creates a new MoveNoteCommand
func NewMoveNoteCommand(repo ports.DocumentStore, notebookID string, noteID int64, x, y float64) *MoveNoteCommand {
	return &MoveNoteCommand{repo: repo, NotebookID: notebookID, NoteID: noteID, X: x, Y: y}
}

// Validate checks if the move operation is valid
func (c *MoveNoteCommand) Validate() error {
	if err := requireNoteID(c.NoteID); err != nil {
		return err
	}
	if err := application.ValidateFinite("x", c.X); err != nil {
		return err
	}
	return application.ValidateFinite("y", c.Y)
}

// Execute runs the move note command
func (c *MoveNoteCommand) Execute(ctx context.Context) (*GeometryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var moved domain.Note
	err := mutateNote(c.repo, c.NotebookID, c.NoteID, func(s *docSession, nbID string, idx int) error {
		n, err := s.store.Get(nbID, idx)
		if err != nil {
			return err
		}
		moved = n.WithPosition(domain.ClampPosition(domain.Vec{X: c.X, Y: c.Y}, n.Size()))
		return s.store.Update(nbID, idx, moved)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move note: %w", err)
	}
	return &GeometryResult{
		Position: moved.Position(),
		Size:     moved.Size(),
		Message:  fmt.Sprintf("Moved note %d to (%g, %g)", moved.ID, moved.X, moved.Y),
	}, nil
}

// ResizeNoteCommand sets a note's size, clamped to the minimum
type ResizeNoteCommand struct {
	repo          ports.DocumentStore
	NotebookID    string
	NoteID        int64
	Width, Height float64
}

// NewResizeNoteCommand creates a new ResizeNoteCommand
func NewResizeNoteCommand(repo ports.DocumentStore, notebookID string, noteID int64, width, height float64) *ResizeNoteCommand {
	return &ResizeNoteCommand{repo: repo, NotebookID: notebookID, NoteID: noteID, Width: width, Height: height}
}

// Validate checks if the resize operation is valid
func (c *ResizeNoteCommand) Validate() error {
	if err := requireNoteID(c.NoteID); err != nil {
		return err
	}
	if err := application.ValidatePositive("width", c.Width); err != nil {
		return err
	}
	return application.ValidatePositive("height", c.Height)
}

// Execute runs the resize note command
func (c *ResizeNoteCommand) Execute(ctx context.Context) (*GeometryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var resized domain.Note
	err := mutateNote(c.repo, c.NotebookID, c.NoteID, func(s *docSession, nbID string, idx int) error {
		n, err := s.store.Get(nbID, idx)
		if err != nil {
			return err
		}
		resized = n.WithSize(domain.ClampSize(domain.Size{Width: c.Width, Height: c.Height}))
		return s.store.Update(nbID, idx, resized)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resize note: %w", err)
	}
	return &GeometryResult{
		Position: resized.Position(),
		Size:     resized.Size(),
		Message:  fmt.Sprintf("Resized note %d to %gx%g", resized.ID, resized.Width, resized.Height),
	}, nil
}
