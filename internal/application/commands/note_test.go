package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arknotes/internal/application"
	"arknotes/internal/domain"
)

func TestCreateNoteCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
		errMsg  string
	}{
		{name: "valid title", title: "Groceries"},
		{name: "empty title", title: "", wantErr: true, errMsg: "title is required"},
		{name: "whitespace title", title: "   ", wantErr: true, errMsg: "title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateNoteCommand{Title: tt.title}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateNoteCommand_Execute(t *testing.T) {
	repo := newMemRepo(t)

	first := mustCreateNote(t, repo, "one")
	second := mustCreateNote(t, repo, "two")

	assert.Equal(t, domain.Vec{X: 100, Y: 100}, first.Position())
	assert.Equal(t, domain.Vec{X: 140, Y: 140}, second.Position())
	assert.Equal(t, 2, second.ZIndex)
	assert.Equal(t, 2, repo.saves)

	list, err := NewListNotesCommand(repo, "").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCollectionID, list.NotebookID)
	assert.Len(t, list.Notes, 2)
}

func TestCreateNoteCommand_UnknownNotebook(t *testing.T) {
	repo := newMemRepo(t)

	_, err := NewCreateNoteCommand(repo, "ghost", "x").Execute(context.Background())
	assert.True(t, errors.Is(err, application.ErrNotFound))
	assert.Zero(t, repo.saves)
}

func TestMoveAndResizeClamp(t *testing.T) {
	repo := newMemRepo(t)
	n := mustCreateNote(t, repo, "geo")
	ctx := context.Background()

	moved, err := NewMoveNoteCommand(repo, "", n.ID, 9999, -5).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Vec{X: 4600, Y: 0}, moved.Position)

	resized, err := NewResizeNoteCommand(repo, "", n.ID, 100, 900).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Size{Width: 380, Height: 900}, resized.Size)

	_, err = NewResizeNoteCommand(repo, "", n.ID, 0, 900).Execute(ctx)
	var valErr *application.ValidationError
	assert.True(t, errors.As(err, &valErr))

	shown, err := NewShowNoteCommand(repo, "", n.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Vec{X: 4600, Y: 0}, shown.Position())
	assert.Equal(t, domain.Size{Width: 380, Height: 900}, shown.Size())
}

func TestMoveAndResizeRejectNonFinite(t *testing.T) {
	repo := newMemRepo(t)
	n := mustCreateNote(t, repo, "geo")
	ctx := context.Background()
	saves := repo.saves

	tests := []struct {
		name string
		run  func() error
	}{
		{name: "move NaN", run: func() error {
			_, err := NewMoveNoteCommand(repo, "", n.ID, math.NaN(), 0).Execute(ctx)
			return err
		}},
		{name: "move infinite", run: func() error {
			_, err := NewMoveNoteCommand(repo, "", n.ID, 0, math.Inf(1)).Execute(ctx)
			return err
		}},
		{name: "resize infinite", run: func() error {
			_, err := NewResizeNoteCommand(repo, "", n.ID, math.Inf(1), 400).Execute(ctx)
			return err
		}},
		{name: "resize NaN", run: func() error {
			_, err := NewResizeNoteCommand(repo, "", n.ID, 400, math.NaN()).Execute(ctx)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var valErr *application.ValidationError
			assert.True(t, errors.As(tt.run(), &valErr))
		})
	}
	assert.Equal(t, saves, repo.saves)

	shown, err := NewShowNoteCommand(repo, "", n.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, n.Position(), shown.Position())
	assert.Equal(t, n.Size(), shown.Size())
}

func TestNoteEdits(t *testing.T) {
	repo := newMemRepo(t)
	n := mustCreateNote(t, repo, "edit")
	ctx := context.Background()

	mode, err := NewToggleNoteCommand(repo, "", n.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewModePreview, mode)

	_, err = NewSetNoteContentCommand(repo, "", n.ID, "hello").Execute(ctx)
	require.NoError(t, err)
	_, err = NewRenameNoteCommand(repo, "", n.ID, "renamed").Execute(ctx)
	require.NoError(t, err)

	shown, err := NewShowNoteCommand(repo, "", n.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", shown.Content)
	assert.Equal(t, "renamed", shown.Title)

	_, err = NewDeleteNoteCommand(repo, "", n.ID).Execute(ctx)
	require.NoError(t, err)
	_, err = NewShowNoteCommand(repo, "", n.ID).Execute(ctx)
	assert.True(t, errors.Is(err, application.ErrNotFound))
}

func TestAttachImageCommand(t *testing.T) {
	repo := newMemRepo(t)
	n := mustCreateNote(t, repo, "pics")
	dir := t.TempDir()

	gif := filepath.Join(dir, "dot.gif")
	require.NoError(t, os.WriteFile(gif, []byte("GIF89a\x01\x00\x01\x00"), 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just text"), 0o644))

	msg, err := NewAttachImageCommand(repo, "", n.ID, gif).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Attached dot.gif to note %d", n.ID), msg)

	shown, _ := NewShowNoteCommand(repo, "", n.ID).Execute(context.Background())
	assert.Contains(t, shown.Content, "![dot.gif](data:image/gif;base64,")

	_, err = NewAttachImageCommand(repo, "", n.ID, txt).Execute(context.Background())
	assert.True(t, errors.Is(err, application.ErrNotImage))
}

type fakeEditor struct {
	seen string
	out  string
}

func (e *fakeEditor) Stage(id int64, content string) (string, error) { return "", nil }
func (e *fakeEditor) Collect(path string) (string, error)            { return e.out, nil }
func (e *fakeEditor) Edit(id int64, content string) (string, error) {
	e.seen = content
	return e.out, nil
}
func (e *fakeEditor) Command(path string) (*exec.Cmd, error) { return nil, nil }

func TestEditNoteCommand(t *testing.T) {
	repo := newMemRepo(t)
	n := mustCreateNote(t, repo, "draft")
	ed := &fakeEditor{out: "# draft\n\nwritten elsewhere"}

	_, err := NewEditNoteCommand(repo, ed, "", n.ID).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "# draft\n\nStart writing...", ed.seen)
	shown, _ := NewShowNoteCommand(repo, "", n.ID).Execute(context.Background())
	assert.Equal(t, ed.out, shown.Content)
}
