package ports

import "arknotes/internal/domain"

// DocumentStore defines the interface for local persistence of the document and settings
type DocumentStore interface {
	// LoadDocument returns the stored document. A missing or malformed file
	// yields the default document, never an error.
	LoadDocument() (*domain.Document, error)
	SaveDocument(doc *domain.Document) error

	// LoadSettings follows the same fallback rule as LoadDocument
	LoadSettings() (*domain.Settings, error)
	SaveSettings(settings *domain.Settings) error

	// Dir returns the directory holding the state files
	Dir() string
}

// ViewportSizeProvider reports the visible size of the workspace in screen pixels.
// ok is false when nothing has been measured yet.
type ViewportSizeProvider interface {
	ViewportSize() (size domain.Size, ok bool)
}

// ViewportSizeFunc adapts a function to ViewportSizeProvider
type ViewportSizeFunc func() (domain.Size, bool)

func (f ViewportSizeFunc) ViewportSize() (domain.Size, bool) {
	return f()
}

// BundleArchive reads and writes backup files holding a document and its settings
type BundleArchive interface {
	WriteBundle(path string, b *domain.Bundle) error
	// ReadBundle fails with application.ErrInvalidFormat when the file is not a bundle
	ReadBundle(path string) (*domain.Bundle, error)
}
