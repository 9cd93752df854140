package sqlite

import (
	"fmt"
	"testing"

	"arknotes/internal/domain"
)

func benchDocument(notebooks, notesPer int) *domain.Document {
	doc := domain.DefaultDocument()
	for i := range notebooks {
		id := fmt.Sprintf("nb-%d", i)
		doc.AddCollection(domain.ViewNotes, id, fmt.Sprintf("Notebook %d", i))
		nb, _ := doc.Notebook(id)
		for j := range notesPer {
			nb.Items = append(nb.Items, domain.Note{
				ID:      int64(i*notesPer + j + 1),
				Title:   fmt.Sprintf("Note %d", j),
				Content: fmt.Sprintf("# Note %d\n\nsome text about topic %d and more", j, j%17),
			})
		}
	}
	return doc
}

// BenchmarkRebuild benchmarks a full rebuild (DB already open)
func BenchmarkRebuild(b *testing.B) {
	idx := NewIndex()
	if err := idx.Open(b.TempDir()); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	defer func() {
		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}
	}()

	docs := [2]*domain.Document{benchDocument(10, 100), benchDocument(10, 101)}

	b.ResetTimer()
	i := 0
	for b.Loop() {
		// alternate documents so every iteration really rebuilds
		if _, err := idx.Rebuild(docs[i%2]); err != nil {
			b.Fatalf("rebuild failed: %v", err)
		}
		i++
	}
}

// BenchmarkWarmCheck benchmarks open + staleness check on an up to date index
func BenchmarkWarmCheck(b *testing.B) {
	dir := b.TempDir()
	doc := benchDocument(10, 100)

	idx := NewIndex()
	if err := idx.Open(dir); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	if _, err := idx.Rebuild(doc); err != nil {
		b.Fatalf("initial rebuild failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		b.Fatalf("failed to close index: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		idx := NewIndex()
		if err := idx.Open(dir); err != nil {
			b.Fatalf("failed to open index: %v", err)
		}
		if stale, err := idx.NeedsRebuild(doc); err != nil || stale {
			b.Fatalf("unexpected stale=%v err=%v", stale, err)
		}
		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}
	}
}

// BenchmarkSearch benchmarks a content search over a thousand notes
func BenchmarkSearch(b *testing.B) {
	idx := NewIndex()
	if err := idx.Open(b.TempDir()); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	defer idx.Close()
	if _, err := idx.Rebuild(benchDocument(10, 100)); err != nil {
		b.Fatalf("rebuild failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := idx.Search("topic 3", 50); err != nil {
			b.Fatalf("search failed: %v", err)
		}
	}
}
