package filesystem

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// State file names inside the data directory
const (
	DocumentFile = "data.json"
	SettingsFile = "settings.json"
	SessionFile  = "session.json"
)

// Repository implements ports.DocumentStore, ports.BundleArchive and
// ports.SessionStore on plain JSON files in one directory.
type Repository struct {
	dir string
	log zerolog.Logger

	mu      sync.Mutex
	written map[string][sha256.Size]byte
}

var (
	_ ports.DocumentStore = (*Repository)(nil)
	_ ports.BundleArchive = (*Repository)(nil)
	_ ports.SessionStore  = (*Repository)(nil)
)

// NewRepository creates a repository rooted at dir
func NewRepository(dir string, log zerolog.Logger) *Repository {
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	return &Repository{
		dir:     dir,
		log:     log.With().Str("component", "filesystem").Logger(),
		written: make(map[string][sha256.Size]byte),
	}
}

// Dir returns the data directory
func (r *Repository) Dir() string {
	return r.dir
}

func (r *Repository) path(name string) string {
	return filepath.Join(r.dir, name)
}

// LoadDocument reads data.json. Missing or malformed files give the default document.
func (r *Repository) LoadDocument() (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path(DocumentFile))
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		r.log.Warn().Err(err).Str("file", DocumentFile).Msg("malformed document, starting from default")
		return domain.DefaultDocument(), nil
	}
	if doc.Normalize() {
		r.log.Debug().Msg("document normalized on load")
	}
	return &doc, nil
}

// SaveDocument writes data.json atomically
func (r *Repository) SaveDocument(doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("failed to save document: nil document")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return r.write(DocumentFile, data, 0o644)
}

// LoadSettings reads settings.json over the defaults
func (r *Repository) LoadSettings() (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path(SettingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		r.log.Warn().Err(err).Str("file", SettingsFile).Msg("malformed settings, using defaults")
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings writes settings.json atomically
func (r *Repository) SaveSettings(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("failed to save settings: nil settings")
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return r.write(SettingsFile, data, 0o644)
}

// LoadSession returns the stored session, or nil when nobody is logged in
func (r *Repository) LoadSession() (*ports.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path(SessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s ports.Session
	if err := json.Unmarshal(data, &s); err != nil || s.Token == "" {
		r.log.Warn().Str("file", SessionFile).Msg("unusable session file ignored")
		return nil, nil
	}
	return &s, nil
}

// SaveSession writes session.json readable by the owner only
func (r *Repository) SaveSession(s *ports.Session) error {
	if s == nil {
		return r.ClearSession()
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.write(SessionFile, data, 0o600)
}

// ClearSession removes session.json
func (r *Repository) ClearSession() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path(SessionFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// WriteBundle writes a backup file at path
func (r *Repository) WriteBundle(path string, b *domain.Bundle) error {
	if b == nil || b.Data == nil {
		return fmt.Errorf("failed to write backup: empty bundle")
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ReadBundle reads a backup file. Anything that is not a bundle with a
// document fails with application.ErrInvalidFormat.
func (r *Repository) ReadBundle(path string) (*domain.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	var b domain.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), application.ErrInvalidFormat)
	}
	if b.Data == nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), application.ErrInvalidFormat)
	}
	b.Data.Normalize()
	return &b, nil
}

func (r *Repository) write(name string, data []byte, perm os.FileMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeFileAtomic(r.path(name), data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	r.written[name] = sha256.Sum256(data)
	return nil
}

// ownWrite reports whether the file still holds exactly what this
// repository last wrote to it
func (r *Repository) ownWrite(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	last, ok := r.written[name]
	if !ok {
		return false
	}
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return false
	}
	return sha256.Sum256(data) == last
}
