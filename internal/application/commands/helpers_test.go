package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// memRepo keeps the encoded document like the file store does, so every
// command sees a fresh decode.
type memRepo struct {
	doc      []byte
	settings []byte
	saves    int
}

func newMemRepo(t *testing.T) *memRepo {
	t.Helper()
	r := &memRepo{}
	require.NoError(t, r.SaveDocument(domain.DefaultDocument()))
	require.NoError(t, r.SaveSettings(domain.DefaultSettings()))
	r.saves = 0
	return r
}

func (r *memRepo) LoadDocument() (*domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(r.doc, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

func (r *memRepo) SaveDocument(doc *domain.Document) error {
	b, err := json.Marshal(doc)
	r.doc = b
	r.saves++
	return err
}

func (r *memRepo) LoadSettings() (*domain.Settings, error) {
	var s domain.Settings
	return &s, json.Unmarshal(r.settings, &s)
}

func (r *memRepo) SaveSettings(s *domain.Settings) error {
	b, err := json.Marshal(s)
	r.settings = b
	return err
}

func (r *memRepo) Dir() string { return "" }

var _ ports.DocumentStore = (*memRepo)(nil)

type memArchive struct {
	files map[string]*domain.Bundle
}

func (a *memArchive) WriteBundle(path string, b *domain.Bundle) error {
	if a.files == nil {
		a.files = make(map[string]*domain.Bundle)
	}
	a.files[path] = b
	return nil
}

func (a *memArchive) ReadBundle(path string) (*domain.Bundle, error) {
	b, ok := a.files[path]
	if !ok {
		return nil, application.ErrInvalidFormat
	}
	return b, nil
}

func mustCreateNote(t *testing.T, repo ports.DocumentStore, title string) domain.Note {
	t.Helper()
	res, err := NewCreateNoteCommand(repo, "", title).Execute(context.Background())
	require.NoError(t, err)
	return res.Note
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
