package workspace

import (
	"errors"

	"arknotes/internal/application"
	"arknotes/internal/domain"
)

// NoteStore is what a gesture needs to commit into
type NoteStore interface {
	Get(notebookID string, index int) (domain.Note, error)
	Update(notebookID string, index int, note domain.Note) error
}

// BeginDrag captures the pointer and the note's position at gesture start
func BeginDrag(notebookID string, index int, note domain.Note, pointer domain.Vec) Dragging {
	return Dragging{
		NotebookID:    notebookID,
		NoteID:        note.ID,
		Index:         index,
		StartPointer:  pointer,
		StartPosition: note.Position(),
		Size:          note.Size(),
		Position:      note.Position(),
	}
}

// Move updates the visual position. The pointer delta is divided by the zoom
// so the note stays under the pointer.
func (d Dragging) Move(pointer domain.Vec, t domain.Transform) Dragging {
	delta := domain.ScreenDeltaToWorkspaceDelta(pointer.Sub(d.StartPointer), t)
	d.Position = domain.ClampPosition(d.StartPosition.Add(delta), d.Size)
	return d
}

// Commit writes the visual position into the store. If the note at the captured
// index is gone or is a different note, nothing is written and committed is false.
func (d Dragging) Commit(store NoteStore) (committed bool, err error) {
	note, ok, err := current(store, d.NotebookID, d.Index, d.NoteID)
	if !ok || err != nil {
		return false, err
	}
	note = note.WithPosition(domain.ClampPosition(d.Position, note.Size()))
	if err := store.Update(d.NotebookID, d.Index, note); err != nil {
		return false, err
	}
	return true, nil
}

// current loads the note a gesture captured, treating a stale index as a miss
func current(store NoteStore, notebookID string, index int, id int64) (domain.Note, bool, error) {
	note, err := store.Get(notebookID, index)
	if errors.Is(err, application.ErrNotFound) {
		return domain.Note{}, false, nil
	}
	if err != nil {
		return domain.Note{}, false, err
	}
	if note.ID != id {
		return domain.Note{}, false, nil
	}
	return note, true, nil
}
