// Package notes holds the note entity store: every mutation of a notebook's notes
// goes through it as a whole-record replacement.
package notes

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// CascadeStep is how far each new note is offset from the previous one on both axes
const CascadeStep = 40.0

// fallbackOrigin is the top-left of the first note when no viewport size is known
var fallbackOrigin = domain.Vec{X: 100, Y: 100}

// Store owns the live document and mutates the notes inside it
type Store struct {
	doc      *domain.Document
	viewport ports.ViewportSizeProvider
	now      func() time.Time
	lastID   int64
	onChange func(*domain.Document)
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for note ids
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithChangeHook registers fn to run after every mutation
func WithChangeHook(fn func(*domain.Document)) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore wraps doc. A nil viewport places new notes at the fallback origin.
func NewStore(doc *domain.Document, viewport ports.ViewportSizeProvider, opts ...Option) *Store {
	if doc == nil {
		doc = domain.DefaultDocument()
	}
	s := &Store{
		doc:      doc,
		viewport: viewport,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastID = maxNoteID(doc)
	return s
}

// Document returns the live document
func (s *Store) Document() *domain.Document {
	return s.doc
}

// Replace swaps in a whole new document, e.g. after a sync download or reload.
// The change hook does not fire; the caller decides whether to persist.
func (s *Store) Replace(doc *domain.Document) {
	if doc == nil {
		return
	}
	doc.Normalize()
	s.doc = doc
	if id := maxNoteID(doc); id > s.lastID {
		s.lastID = id
	}
}

// Mutate runs fn against the document and fires the change hook when fn succeeds
func (s *Store) Mutate(fn func(*domain.Document) error) error {
	if err := fn(s.doc); err != nil {
		return err
	}
	s.changed()
	return nil
}

// List returns a copy of a notebook's notes in stored order
func (s *Store) List(notebookID string) ([]domain.Note, error) {
	nb, err := s.notebook(notebookID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Note, len(nb.Items))
	copy(out, nb.Items)
	return out, nil
}

// Get returns the note at index
func (s *Store) Get(notebookID string, index int) (domain.Note, error) {
	nb, err := s.notebook(notebookID)
	if err != nil {
		return domain.Note{}, err
	}
	if index < 0 || index >= len(nb.Items) {
		return domain.Note{}, fmt.Errorf("note %d in %s: %w", index, notebookID, application.ErrNotFound)
	}
	return nb.Items[index], nil
}

// IndexOf returns the current index of the note with id, or -1
func (s *Store) IndexOf(notebookID string, id int64) int {
	nb, err := s.notebook(notebookID)
	if err != nil {
		return -1
	}
	return nb.IndexOf(id)
}

// Create appends a new note titled title, kept as given. It reports false,
// changing nothing, when the title is blank or the notebook does not exist.
func (s *Store) Create(notebookID, title string) (domain.Note, bool) {
	if strings.TrimSpace(title) == "" {
		return domain.Note{}, false
	}
	nb, err := s.notebook(notebookID)
	if err != nil {
		return domain.Note{}, false
	}

	count := len(nb.Items)
	offset := CascadeStep * float64(count)
	origin := s.origin()

	note := domain.Note{
		ID:       s.nextID(),
		Title:    title,
		Content:  domain.DefaultNoteContent(title),
		X:        origin.X + offset,
		Y:        origin.Y + offset,
		Width:    domain.DefaultNoteWidth,
		Height:   domain.DefaultNoteHeight,
		ZIndex:   count + 1,
		ViewMode: domain.ViewModeEdit,
	}
	nb.Items = append(nb.Items, note)
	s.changed()
	return note, true
}

// Update replaces the note at index with note
func (s *Store) Update(notebookID string, index int, note domain.Note) error {
	nb, err := s.notebook(notebookID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(nb.Items) {
		return fmt.Errorf("note %d in %s: %w", index, notebookID, application.ErrNotFound)
	}
	nb.Items[index] = note
	s.changed()
	return nil
}

// Delete removes the note at index. Later notes shift down by one.
func (s *Store) Delete(notebookID string, index int) error {
	nb, err := s.notebook(notebookID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(nb.Items) {
		return fmt.Errorf("note %d in %s: %w", index, notebookID, application.ErrNotFound)
	}
	nb.Items = append(nb.Items[:index], nb.Items[index+1:]...)
	s.changed()
	return nil
}

// SetContent replaces the note's content
func (s *Store) SetContent(notebookID string, index int, content string) error {
	return s.modify(notebookID, index, func(n *domain.Note) { n.Content = content })
}

// SetTitle replaces the note's title
func (s *Store) SetTitle(notebookID string, index int, title string) error {
	return s.modify(notebookID, index, func(n *domain.Note) { n.Title = title })
}

// ToggleViewMode flips the note between edit and preview
func (s *Store) ToggleViewMode(notebookID string, index int) error {
	return s.modify(notebookID, index, func(n *domain.Note) { n.ViewMode = n.ViewMode.Toggle() })
}

// AppendImageMarkdown appends an inline image reference to the note's content
func (s *Store) AppendImageMarkdown(notebookID string, index int, dataURI, filename string) error {
	return s.modify(notebookID, index, func(n *domain.Note) {
		n.Content += domain.ImageMarkdown(filename, dataURI)
	})
}

// AttachImage embeds blob as a data URI in the note's content
func (s *Store) AttachImage(notebookID string, index int, filename string, blob []byte) error {
	uri, err := DataURI(blob)
	if err != nil {
		return fmt.Errorf("failed to attach %s: %w", filename, err)
	}
	return s.AppendImageMarkdown(notebookID, index, uri, filename)
}

// DataURI encodes an image blob as a base64 data URI
func DataURI(blob []byte) (string, error) {
	mime := http.DetectContentType(blob)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("detected %s: %w", mime, application.ErrNotImage)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(blob), nil
}

func (s *Store) modify(notebookID string, index int, fn func(*domain.Note)) error {
	note, err := s.Get(notebookID, index)
	if err != nil {
		return err
	}
	fn(&note)
	return s.Update(notebookID, index, note)
}

func (s *Store) notebook(id string) (*domain.Notebook, error) {
	nb, ok := s.doc.Notebook(id)
	if !ok || nb == nil {
		return nil, fmt.Errorf("notebook %q: %w", id, application.ErrNotFound)
	}
	return nb, nil
}

func (s *Store) origin() domain.Vec {
	if s.viewport == nil {
		return fallbackOrigin
	}
	size, ok := s.viewport.ViewportSize()
	if !ok {
		return fallbackOrigin
	}
	return domain.Vec{
		X: size.Width/2 - domain.DefaultNoteWidth/2,
		Y: size.Height/2 - domain.DefaultNoteHeight/2,
	}
}

// nextID is a millisecond timestamp, bumped past the last id when two notes
// are created within the same millisecond.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange(s.doc)
	}
}

func maxNoteID(doc *domain.Document) int64 {
	var max int64
	for _, id := range doc.Notes.Keys() {
		nb, _ := doc.Notes.Get(id)
		if nb == nil {
			continue
		}
		for _, n := range nb.Items {
			if n.ID > max {
				max = n.ID
			}
		}
	}
	return max
}
