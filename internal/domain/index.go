package domain

import "time"

// IndexEntry is a note as mirrored into the search index
type IndexEntry struct {
	NotebookID   string
	NotebookName string
	NoteID       int64
	Title        string
	Content      string
}

// SearchHit is one search result
type SearchHit struct {
	NotebookID   string
	NotebookName string
	NoteID       int64
	Title        string
	Snippet      string
}

// SyncStats holds statistics from an index rebuild
type SyncStats struct {
	NotesIndexed int
	Skipped      bool // document unchanged since the last rebuild
	Duration     time.Duration
}

// IndexEntries flattens every notebook's notes for indexing
func (d *Document) IndexEntries() []IndexEntry {
	var entries []IndexEntry
	for _, id := range d.Notes.Keys() {
		nb, _ := d.Notes.Get(id)
		for _, n := range nb.Items {
			entries = append(entries, IndexEntry{
				NotebookID:   id,
				NotebookName: nb.Name,
				NoteID:       n.ID,
				Title:        n.Title,
				Content:      n.Content,
			})
		}
	}
	return entries
}
