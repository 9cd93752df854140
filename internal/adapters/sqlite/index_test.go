package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arknotes/internal/domain"
)

func openIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex()
	require.NoError(t, idx.Open(t.TempDir()))
	t.Cleanup(func() { idx.Close() })
	return idx
}

func sampleDocument() *domain.Document {
	doc := domain.DefaultDocument()
	nb, _ := doc.Notebook(domain.DefaultCollectionID)
	nb.Items = append(nb.Items,
		domain.Note{ID: 1, Title: "Groceries", Content: "milk, eggs and 100% butter"},
		domain.Note{ID: 2, Title: "Trip", Content: "pack the groceries bag\nand the tent"},
	)
	doc.AddCollection(domain.ViewNotes, "work", "Work")
	work, _ := doc.Notebook("work")
	work.Items = append(work.Items, domain.Note{ID: 3, Title: "Standup", Content: "snake_case naming"})
	return doc
}

func TestRebuild_SkipsWhenUnchanged(t *testing.T) {
	idx := openIndex(t)
	doc := sampleDocument()

	stale, err := idx.NeedsRebuild(doc)
	require.NoError(t, err)
	assert.True(t, stale, "fresh index must be rebuilt")

	stats, err := idx.Rebuild(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.NotesIndexed)
	assert.False(t, stats.Skipped)

	stale, err = idx.NeedsRebuild(doc)
	require.NoError(t, err)
	assert.False(t, stale)

	stats, err = idx.Rebuild(doc)
	require.NoError(t, err)
	assert.True(t, stats.Skipped)

	nb, _ := doc.Notebook("work")
	nb.Items[0].Content = "changed"
	stale, err = idx.NeedsRebuild(doc)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestSearch(t *testing.T) {
	idx := openIndex(t)
	_, err := idx.Rebuild(sampleDocument())
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "title match ranks first", query: "groceries", want: []int64{1, 2}},
		{name: "case insensitive", query: "TENT", want: []int64{2}},
		{name: "percent is literal", query: "100%", want: []int64{1}},
		{name: "underscore is literal", query: "e_c", want: []int64{3}},
		{name: "no match", query: "kayak", want: nil},
		{name: "blank", query: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := idx.Search(tt.query, 10)
			require.NoError(t, err)
			var ids []int64
			for _, h := range hits {
				ids = append(ids, h.NoteID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearch_CarriesNotebookAndSnippet(t *testing.T) {
	idx := openIndex(t)
	_, err := idx.Rebuild(sampleDocument())
	require.NoError(t, err)

	hits, err := idx.Search("snake", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "work", hits[0].NotebookID)
	assert.Equal(t, "Work", hits[0].NotebookName)
	assert.Equal(t, "snake_case naming", hits[0].Snippet)
}

func TestSearch_Limit(t *testing.T) {
	idx := openIndex(t)
	_, err := idx.Rebuild(sampleDocument())
	require.NoError(t, err)

	hits, err := idx.Search("e", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndex_NotOpen(t *testing.T) {
	idx := NewIndex()
	_, err := idx.Search("x", 1)
	assert.Error(t, err)
	_, err = idx.NeedsRebuild(domain.DefaultDocument())
	assert.Error(t, err)
	assert.NoError(t, idx.Close())
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		query   string
		radius  int
		want    string
	}{
		{name: "short content", content: "buy milk", query: "milk", radius: 10, want: "buy milk"},
		{name: "cut both sides", content: "aaaaaaaaaa needle bbbbbbbbbb", query: "needle", radius: 3, want: "…aa needle bb…"},
		{name: "newlines flattened", content: "one\n\ntwo", query: "two", radius: 10, want: "one two"},
		{name: "no match shows start", content: "abcdefghij", query: "z", radius: 2, want: "abcd…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snippet(tt.content, tt.query, tt.radius))
		})
	}
}
