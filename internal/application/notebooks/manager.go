// Package notebooks manages the named collections of each view and which one is active.
package notebooks

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"arknotes/internal/application"
	"arknotes/internal/application/notes"
	"arknotes/internal/domain"
)

// Manager creates, renames, deletes and selects collections.
// The active selection lives in the settings document.
type Manager struct {
	store    *notes.Store
	settings *domain.Settings
	newID    func() string
	onSelect func(*domain.Settings)
}

// Option configures a Manager
type Option func(*Manager)

// WithIDGenerator overrides how new collection ids are minted
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// WithSelectionHook registers fn to run whenever the active selection changes
func WithSelectionHook(fn func(*domain.Settings)) Option {
	return func(m *Manager) { m.onSelect = fn }
}

// NewManager returns a manager over the store's document
func NewManager(store *notes.Store, settings *domain.Settings, opts ...Option) *Manager {
	if settings == nil {
		settings = domain.DefaultSettings()
	}
	m := &Manager{
		store:    store,
		settings: settings,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Settings returns the settings document holding the selection
func (m *Manager) Settings() *domain.Settings {
	return m.settings
}

// List returns the collections of a view in order
func (m *Manager) List(kind domain.ViewKind) []domain.CollectionRef {
	return m.store.Document().Collections(kind)
}

// Active returns the selected collection of a view, falling back to the first one
// when the selection is unset or no longer exists.
func (m *Manager) Active(kind domain.ViewKind) string {
	doc := m.store.Document()
	id := m.settings.Active[kind.String()]
	if doc.HasCollection(kind, id) {
		return id
	}
	return doc.FirstCollection(kind)
}

// Reconcile repairs selections left dangling by a document replacement.
// It reports whether any selection changed.
func (m *Manager) Reconcile() bool {
	changed := false
	for _, kind := range []domain.ViewKind{domain.ViewTodo, domain.ViewNotes, domain.ViewKanban} {
		id, ok := m.settings.Active[kind.String()]
		if !ok {
			continue
		}
		if active := m.Active(kind); active != id {
			m.setActive(kind, active)
			changed = true
		}
	}
	return changed
}

// Create adds an empty collection and selects it. A blank name is a no-op.
func (m *Manager) Create(kind domain.ViewKind, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || kind == domain.ViewUnknown {
		return "", false
	}
	id := m.newID()
	_ = m.store.Mutate(func(doc *domain.Document) error {
		doc.AddCollection(kind, id, name)
		return nil
	})
	m.setActive(kind, id)
	return id, true
}

// Rename sets a collection's name. A blank name is a no-op reported as false.
func (m *Manager) Rename(kind domain.ViewKind, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	err := m.store.Mutate(func(doc *domain.Document) error {
		if !doc.RenameCollection(kind, id, name) {
			return fmt.Errorf("%s %q: %w", kind.Noun(), id, application.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a collection. The last collection of a view cannot be deleted;
// deleting the active one selects the first remaining.
func (m *Manager) Delete(kind domain.ViewKind, id string) error {
	active := m.Active(kind)
	err := m.store.Mutate(func(doc *domain.Document) error {
		if !doc.HasCollection(kind, id) {
			return fmt.Errorf("%s %q: %w", kind.Noun(), id, application.ErrNotFound)
		}
		if doc.CollectionCount(kind) <= 1 {
			return fmt.Errorf("%s %q: %w", kind.Noun(), id, application.ErrLastNotebook)
		}
		doc.RemoveCollection(kind, id)
		return nil
	})
	if err != nil {
		return err
	}
	if id == active {
		m.setActive(kind, m.store.Document().FirstCollection(kind))
	}
	return nil
}

// Select makes id the active collection of its view
func (m *Manager) Select(kind domain.ViewKind, id string) error {
	if !m.store.Document().HasCollection(kind, id) {
		return fmt.Errorf("%s %q: %w", kind.Noun(), id, application.ErrNotFound)
	}
	m.setActive(kind, id)
	return nil
}

func (m *Manager) setActive(kind domain.ViewKind, id string) {
	if m.settings.Active == nil {
		m.settings.Active = make(map[string]string)
	}
	if m.settings.Active[kind.String()] == id {
		return
	}
	m.settings.Active[kind.String()] = id
	if m.onSelect != nil {
		m.onSelect(m.settings)
	}
}
