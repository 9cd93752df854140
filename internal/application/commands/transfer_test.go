package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arknotes/internal/application"
	"arknotes/internal/domain"
)

func TestBackupFileName(t *testing.T) {
	day := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "ark-notes-backup-2024-03-09.json", BackupFileName(day))
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newMemRepo(t)
	mustCreateNote(t, src, "keep me")
	archive := &memArchive{}

	export := NewExportCommand(src, archive, "/backups")
	export.Now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }
	res, err := export.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/backups/ark-notes-backup-2025-01-02.json", res.Path)

	dst := newMemRepo(t)
	imported, err := NewImportCommand(dst, archive, res.Path).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, imported.Data)
	assert.True(t, imported.Settings)

	notes, err := NewListNotesCommand(dst, "").Execute(ctx)
	require.NoError(t, err)
	require.Len(t, notes.Notes, 1)
	assert.Equal(t, "keep me", notes.Notes[0].Title)
}

func TestImportCommand_PartialBundle(t *testing.T) {
	repo := newMemRepo(t)
	mustCreateNote(t, repo, "survives")

	archive := &memArchive{}
	settings := domain.DefaultSettings()
	settings.DarkMode = true
	require.NoError(t, archive.WriteBundle("settings-only.json", &domain.Bundle{Settings: settings}))

	res, err := NewImportCommand(repo, archive, "settings-only.json").Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Data)
	assert.True(t, res.Settings)

	got, _ := repo.LoadSettings()
	assert.True(t, got.DarkMode)
	notes, _ := NewListNotesCommand(repo, "").Execute(context.Background())
	assert.Len(t, notes.Notes, 1)
}

func TestImportCommand_InvalidFile(t *testing.T) {
	_, err := NewImportCommand(newMemRepo(t), &memArchive{}, "missing.json").Execute(context.Background())
	assert.True(t, errors.Is(err, application.ErrInvalidFormat))
}
