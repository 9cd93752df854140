package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

const schemaVersion = "1"

// DatabaseFile is the index file name inside the data directory
const DatabaseFile = "index.db"

// Index implements ports.NoteIndex using SQLite
type Index struct {
	db     *sql.DB
	dir    string
	dbPath string
}

// Ensure Index implements NoteIndex
var _ ports.NoteIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index inside dir
func (idx *Index) Open(dir string) error {
	if len(dir) > 0 && dir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}

	idx.dir = dir
	idx.dbPath = filepath.Join(dir, DatabaseFile)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS notes (
			notebook_id TEXT NOT NULL,
			notebook_name TEXT NOT NULL,
			note_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			PRIMARY KEY (notebook_id, note_id)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsRebuild reports whether the index is missing, from an older schema,
// or built from different note contents than doc
func (idx *Index) NeedsRebuild(doc *domain.Document) (bool, error) {
	if idx.db == nil {
		return false, errors.New("index not open")
	}
	version, err := idx.meta("schema_version")
	if err != nil {
		return false, err
	}
	stored, err := idx.meta("document_hash")
	if err != nil {
		return false, err
	}
	current, err := hashDocument(doc)
	if err != nil {
		return false, err
	}
	return version != schemaVersion || stored != current, nil
}

func (idx *Index) meta(key string) (string, error) {
	var value string
	err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read index metadata: %w", err)
	}
	return value, nil
}

// hashDocument returns a short hash of the indexed part of doc
func hashDocument(doc *domain.Document) (string, error) {
	data, err := json.Marshal(doc.IndexEntries())
	if err != nil {
		return "", fmt.Errorf("failed to hash document: %w", err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:8]), nil
}

// Search returns notes whose title or content contains query, ignoring case.
// Title matches come first.
func (idx *Index) Search(query string, limit int) ([]domain.SearchHit, error) {
	if idx.db == nil {
		return nil, errors.New("index not open")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := idx.db.Query(`
		SELECT notebook_id, notebook_name, note_id, title, content
		FROM notes
		WHERE lower(title) LIKE ?1 ESCAPE '\' OR lower(content) LIKE ?1 ESCAPE '\'
		ORDER BY (lower(title) LIKE ?1 ESCAPE '\') DESC, notebook_id, position
		LIMIT ?2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit
	for rows.Next() {
		var h domain.SearchHit
		var content string
		if err := rows.Scan(&h.NotebookID, &h.NotebookName, &h.NoteID, &h.Title, &content); err != nil {
			return nil, err
		}
		h.Snippet = Snippet(content, query, snippetRadius)
		hits = append(hits, h)
	}

	return hits, rows.Err()
}

// beginTx starts a new transaction
func (idx *Index) beginTx() (*indexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
