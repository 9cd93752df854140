package sqlite

import (
	"database/sql"

	"arknotes/internal/domain"
)

// indexTx groups the writes of one rebuild
type indexTx struct {
	tx *sql.Tx
}

// UpsertNote inserts or updates a note at the given position in its notebook
func (t *indexTx) UpsertNote(e domain.IndexEntry, position int) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO notes (notebook_id, notebook_name, note_id, position, title, content)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.NotebookID, e.NotebookName, e.NoteID, position, e.Title, e.Content)
	return err
}

// DeleteAll removes every note
func (t *indexTx) DeleteAll() error {
	_, err := t.tx.Exec(`DELETE FROM notes`)
	return err
}

// SetMeta stores a metadata value
func (t *indexTx) SetMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
