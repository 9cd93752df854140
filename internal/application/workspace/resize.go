package workspace

import "arknotes/internal/domain"

// BeginResize captures the pointer and the note's size at gesture start
func BeginResize(notebookID string, index int, note domain.Note, pointer domain.Vec) Resizing {
	return Resizing{
		NotebookID:   notebookID,
		NoteID:       note.ID,
		Index:        index,
		StartPointer: pointer,
		StartSize:    note.Size(),
		Size:         note.Size(),
	}
}

// Move updates the visual size. The delta is applied in raw screen pixels
// whatever the zoom; only the minimum size is enforced.
func (r Resizing) Move(pointer domain.Vec) Resizing {
	delta := domain.ScreenDeltaToResizeDelta(pointer.Sub(r.StartPointer))
	r.Size = domain.ClampSize(domain.Size{
		Width:  r.StartSize.Width + delta.X,
		Height: r.StartSize.Height + delta.Y,
	})
	return r
}

// Commit writes the visual size into the store, with the same stale-index rule as a drag
func (r Resizing) Commit(store NoteStore) (committed bool, err error) {
	note, ok, err := current(store, r.NotebookID, r.Index, r.NoteID)
	if !ok || err != nil {
		return false, err
	}
	note = note.WithSize(domain.ClampSize(r.Size))
	if err := store.Update(r.NotebookID, r.Index, note); err != nil {
		return false, err
	}
	return true, nil
}
