package notebooks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arknotes/internal/application"
	"arknotes/internal/application/notes"
	"arknotes/internal/domain"
)

func newManager(t *testing.T) (*Manager, *notes.Store) {
	t.Helper()
	n := 0
	store := notes.NewStore(domain.DefaultDocument(), nil)
	m := NewManager(store, domain.DefaultSettings(), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("nb-%d", n)
	}))
	return m, store
}

func TestManager_CreateSelectsNewCollection(t *testing.T) {
	m, _ := newManager(t)

	id, ok := m.Create(domain.ViewNotes, "  Work  ")
	require.True(t, ok)
	assert.Equal(t, "nb-1", id)
	assert.Equal(t, id, m.Active(domain.ViewNotes))

	refs := m.List(domain.ViewNotes)
	require.Len(t, refs, 2)
	assert.Equal(t, domain.CollectionRef{ID: "nb-1", Name: "Work", Count: 0}, refs[1])

	assert.Equal(t, domain.DefaultCollectionID, m.Active(domain.ViewTodo), "other views keep their selection")
}

func TestManager_CreateKanbanGetsDefaultColumns(t *testing.T) {
	m, store := newManager(t)

	id, ok := m.Create(domain.ViewKanban, "Launch")
	require.True(t, ok)

	board, ok := store.Document().Kanban.Get(id)
	require.True(t, ok)
	assert.Equal(t, []string{"todo", "doing", "done"}, board.Columns.Keys())
}

func TestManager_BlankNamesAreNoOps(t *testing.T) {
	m, _ := newManager(t)

	_, ok := m.Create(domain.ViewNotes, "   ")
	assert.False(t, ok)
	assert.Len(t, m.List(domain.ViewNotes), 1)

	renamed, err := m.Rename(domain.ViewNotes, domain.DefaultCollectionID, " ")
	require.NoError(t, err)
	assert.False(t, renamed)
	assert.Equal(t, "My Notes", m.List(domain.ViewNotes)[0].Name)
}

func TestManager_Rename(t *testing.T) {
	m, _ := newManager(t)

	renamed, err := m.Rename(domain.ViewTodo, domain.DefaultCollectionID, " Errands ")
	require.NoError(t, err)
	assert.True(t, renamed)
	assert.Equal(t, "Errands", m.List(domain.ViewTodo)[0].Name)

	_, err = m.Rename(domain.ViewTodo, "ghost", "x")
	assert.True(t, errors.Is(err, application.ErrNotFound))
}

func TestManager_DeleteActiveReselects(t *testing.T) {
	m, _ := newManager(t)
	other, _ := m.Create(domain.ViewNotes, "Second")
	require.NoError(t, m.Select(domain.ViewNotes, domain.DefaultCollectionID))

	require.NoError(t, m.Delete(domain.ViewNotes, domain.DefaultCollectionID))

	assert.Equal(t, other, m.Active(domain.ViewNotes))
	assert.NotEmpty(t, m.List(domain.ViewNotes))
	assert.Equal(t, other, m.Settings().Active["notes"])
}

func TestManager_DeleteInactiveKeepsSelection(t *testing.T) {
	m, _ := newManager(t)
	second, _ := m.Create(domain.ViewNotes, "Second")

	require.NoError(t, m.Delete(domain.ViewNotes, domain.DefaultCollectionID))
	assert.Equal(t, second, m.Active(domain.ViewNotes))
}

func TestManager_DeleteLastIsRejected(t *testing.T) {
	m, _ := newManager(t)

	for _, kind := range []domain.ViewKind{domain.ViewTodo, domain.ViewNotes, domain.ViewKanban} {
		t.Run(kind.String(), func(t *testing.T) {
			err := m.Delete(kind, domain.DefaultCollectionID)
			assert.True(t, errors.Is(err, application.ErrLastNotebook))
			assert.Len(t, m.List(kind), 1)
			assert.Equal(t, domain.DefaultCollectionID, m.Active(kind))
		})
	}
}

func TestManager_SelectUnknown(t *testing.T) {
	m, _ := newManager(t)

	err := m.Select(domain.ViewNotes, "ghost")
	assert.True(t, errors.Is(err, application.ErrNotFound))
	assert.Equal(t, domain.DefaultCollectionID, m.Active(domain.ViewNotes))
}

func TestManager_ReconcileAfterReplace(t *testing.T) {
	var hookCalls int
	store := notes.NewStore(domain.DefaultDocument(), nil)
	m := NewManager(store, domain.DefaultSettings(),
		WithIDGenerator(func() string { return "gone" }),
		WithSelectionHook(func(*domain.Settings) { hookCalls++ }))

	m.Create(domain.ViewNotes, "Temp")
	require.Equal(t, "gone", m.Active(domain.ViewNotes))

	store.Replace(domain.DefaultDocument())

	assert.True(t, m.Reconcile())
	assert.Equal(t, domain.DefaultCollectionID, m.Settings().Active["notes"])
	assert.False(t, m.Reconcile())
	assert.Equal(t, 2, hookCalls)
}
