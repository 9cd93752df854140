package ports

import "arknotes/internal/domain"

// NoteIndex provides keyword search over every notebook's notes.
// The index is a cache of the document and can always be rebuilt from it.
type NoteIndex interface {
	// Lifecycle
	Open(dir string) error
	Close() error

	// Sync operations
	NeedsRebuild(doc *domain.Document) (bool, error)
	Rebuild(doc *domain.Document) (*domain.SyncStats, error)

	// Queries
	Search(query string, limit int) ([]domain.SearchHit, error)
}
