package application

import "arknotes/internal/domain"

// Re-export view kinds for use by adapters
type ViewKind = domain.ViewKind

const (
	ViewUnknown = domain.ViewUnknown
	ViewTodo    = domain.ViewTodo
	ViewNotes   = domain.ViewNotes
	ViewKanban  = domain.ViewKanban
)

// Re-export domain types for use by adapters
type (
	Note          = domain.Note
	Notebook      = domain.Notebook
	Document      = domain.Document
	Settings      = domain.Settings
	Bundle        = domain.Bundle
	CollectionRef = domain.CollectionRef
	SearchHit     = domain.SearchHit
)

// ParseViewKind determines the view a name refers to
func ParseViewKind(s string) ViewKind {
	return domain.ParseViewKind(s)
}
