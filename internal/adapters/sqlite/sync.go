package sqlite

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"arknotes/internal/domain"
)

const snippetRadius = 40

// Rebuild mirrors every note of doc into the index. It does nothing when
// the index already matches doc.
func (idx *Index) Rebuild(doc *domain.Document) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	stale, err := idx.NeedsRebuild(doc)
	if err != nil {
		return nil, err
	}
	if !stale {
		stats.Skipped = true
		stats.Duration = time.Since(start)
		return stats, nil
	}

	hash, err := hashDocument(doc)
	if err != nil {
		return nil, err
	}

	tx, err := idx.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if err := tx.DeleteAll(); err != nil {
		return nil, fmt.Errorf("failed to clear index: %w", err)
	}

	position := 0
	last := ""
	for _, e := range doc.IndexEntries() {
		if e.NotebookID != last {
			position, last = 0, e.NotebookID
		}
		if err := tx.UpsertNote(e, position); err != nil {
			return nil, fmt.Errorf("failed to index note %d: %w", e.NoteID, err)
		}
		position++
		stats.NotesIndexed++
	}

	for key, value := range map[string]string{
		"schema_version": schemaVersion,
		"document_hash":  hash,
		"last_sync_time": strconv.FormatInt(time.Now().Unix(), 10),
	} {
		if err := tx.SetMeta(key, value); err != nil {
			return nil, fmt.Errorf("failed to update metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rebuild: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// Snippet returns the text around the first case-insensitive match of query
// in content on a single line, with ellipses where it was cut. Without a
// match it returns the start of content.
func Snippet(content, query string, radius int) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)

	at := strings.Index(strings.ToLower(flat), strings.ToLower(query))
	if at < 0 {
		if len(runes) <= 2*radius {
			return flat
		}
		return string(runes[:2*radius]) + "…"
	}

	// byte offset to rune offset
	pos := utf8.RuneCountInString(flat[:at])
	from := max(pos-radius, 0)
	to := min(pos+utf8.RuneCountInString(query)+radius, len(runes))

	var b strings.Builder
	if from > 0 {
		b.WriteString("…")
	}
	b.WriteString(string(runes[from:to]))
	if to < len(runes) {
		b.WriteString("…")
	}
	return b.String()
}
