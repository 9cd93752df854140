package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// BackupFileName returns the export file name for a given day
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("ark-notes-backup-%s.json", t.Format("2006-01-02"))
}

// ExportResult contains the result of an export
type ExportResult struct {
	Path    string
	Message string
}

// ExportCommand writes the document and settings to a backup file
type ExportCommand struct {
	repo    ports.DocumentStore
	archive ports.BundleArchive
	// Path is the target file; a directory or empty path gets the dated default name.
	Path string
	Now  func() time.Time
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(repo ports.DocumentStore, archive ports.BundleArchive, path string) *ExportCommand {
	return &ExportCommand{repo: repo, archive: archive, Path: path, Now: time.Now}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	doc, err := c.repo.LoadDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	settings, err := c.repo.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	path := c.Path
	if path == "" || filepath.Ext(path) == "" {
		path = filepath.Join(path, BackupFileName(c.Now()))
	}
	if err := c.archive.WriteBundle(path, &domain.Bundle{Data: doc, Settings: settings}); err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}
	return &ExportResult{Path: path, Message: fmt.Sprintf("Exported to %s", path)}, nil
}

// ImportResult reports which parts of a bundle were applied
type ImportResult struct {
	Data     bool
	Settings bool
	Message  string
}

// ImportCommand replaces the document and settings with those of a backup file.
// Only the parts present in the file are replaced.
type ImportCommand struct {
	repo    ports.DocumentStore
	archive ports.BundleArchive
	Path    string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(repo ports.DocumentStore, archive ports.BundleArchive, path string) *ImportCommand {
	return &ImportCommand{repo: repo, archive: archive, Path: path}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	bundle, err := c.archive.ReadBundle(c.Path)
	if err != nil {
		return nil, err
	}
	res, err := ApplyBundle(c.repo, bundle)
	if err != nil {
		return nil, err
	}
	res.Message = fmt.Sprintf("Imported %s", c.Path)
	return res, nil
}

// ApplyBundle persists the parts of bundle that are present
func ApplyBundle(repo ports.DocumentStore, bundle *domain.Bundle) (*ImportResult, error) {
	res := &ImportResult{}
	if bundle == nil {
		return res, nil
	}
	if bundle.Data != nil {
		bundle.Data.Normalize()
		if err := repo.SaveDocument(bundle.Data); err != nil {
			return nil, fmt.Errorf("failed to save document: %w", err)
		}
		res.Data = true
	}
	if bundle.Settings != nil {
		if err := repo.SaveSettings(bundle.Settings); err != nil {
			return nil, fmt.Errorf("failed to save settings: %w", err)
		}
		res.Settings = true
	}
	return res, nil
}
