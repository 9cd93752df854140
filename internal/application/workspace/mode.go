// Package workspace turns pointer input on the notes canvas into note and
// viewport mutations: drag, resize, pan and zoom.
package workspace

import "arknotes/internal/domain"

// Mode is the interaction mode of the canvas. Exactly one is active at a time:
// Idle, Dragging, Resizing or Panning.
type Mode interface {
	mode()
	String() string
}

// Idle means no gesture is in progress
type Idle struct{}

func (Idle) mode()          {}
func (Idle) String() string { return "idle" }

// Dragging moves a note. Position is the visual position, committed on release.
type Dragging struct {
	NotebookID    string
	NoteID        int64
	Index         int
	StartPointer  domain.Vec
	StartPosition domain.Vec
	Size          domain.Size
	Position      domain.Vec
}

func (Dragging) mode()          {}
func (Dragging) String() string { return "dragging" }

// Resizing moves a note's bottom-right corner. Size is the visual size, committed on release.
type Resizing struct {
	NotebookID   string
	NoteID       int64
	Index        int
	StartPointer domain.Vec
	StartSize    domain.Size
	Size         domain.Size
}

func (Resizing) mode()          {}
func (Resizing) String() string { return "resizing" }

// Panning scrolls the viewport. Anchor is the pointer plus the scroll offset at press.
type Panning struct {
	Anchor domain.Vec
}

func (Panning) mode()          {}
func (Panning) String() string { return "panning" }

// Modal is the overlay currently shown over the workspace
type Modal int

const (
	ModalNone Modal = iota
	ModalPrompt
	ModalConfirm
	ModalHelp
)
