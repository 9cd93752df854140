package commands

import (
	"fmt"

	"arknotes/internal/application"
	"arknotes/internal/application/notebooks"
	"arknotes/internal/application/notes"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// docSession is one load-mutate-save cycle over the stored document
type docSession struct {
	repo  ports.DocumentStore
	store *notes.Store
	books *notebooks.Manager
}

func openSession(repo ports.DocumentStore) (*docSession, error) {
	doc, err := repo.LoadDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	settings, err := repo.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	store := notes.NewStore(doc, nil)
	return &docSession{
		repo:  repo,
		store: store,
		books: notebooks.NewManager(store, settings),
	}, nil
}

// notebook resolves an explicit notebook id, or the active one when id is empty
func (s *docSession) notebook(id string) (string, error) {
	if id == "" {
		return s.books.Active(domain.ViewNotes), nil
	}
	if !s.store.Document().HasCollection(domain.ViewNotes, id) {
		return "", fmt.Errorf("notebook %q: %w", id, application.ErrNotFound)
	}
	return id, nil
}

// note resolves a note id to its current index
func (s *docSession) note(notebookID string, noteID int64) (int, domain.Note, error) {
	idx := s.store.IndexOf(notebookID, noteID)
	if idx < 0 {
		return -1, domain.Note{}, fmt.Errorf("note %d: %w", noteID, application.ErrNotFound)
	}
	n, err := s.store.Get(notebookID, idx)
	return idx, n, err
}

func (s *docSession) save() error {
	if err := s.repo.SaveDocument(s.store.Document()); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	if err := s.repo.SaveSettings(s.books.Settings()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func requireNoteID(id int64) error {
	if id <= 0 {
		return &application.ValidationError{
			Field:   "noteID",
			Message: "note ID is required",
		}
	}
	return nil
}
