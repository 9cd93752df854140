package domain

import "fmt"

// ViewMode controls whether a note shows its raw source or rendered markdown
type ViewMode string

const (
	ViewModeEdit    ViewMode = "edit"
	ViewModePreview ViewMode = "preview"
)

// Toggle returns the other view mode
func (m ViewMode) Toggle() ViewMode {
	if m == ViewModePreview {
		return ViewModeEdit
	}
	return ViewModePreview
}

// Note is a positioned, resizable markdown fragment on the workspace.
// Geometry is stored flat to match the persisted document.
type Note struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	ZIndex   int      `json:"zIndex"`
	ViewMode ViewMode `json:"viewMode"`
}

// Position returns the top-left corner in workspace space
func (n Note) Position() Vec {
	return Vec{X: n.X, Y: n.Y}
}

// Size returns the note size in workspace units
func (n Note) Size() Size {
	return Size{Width: n.Width, Height: n.Height}
}

// Bounds returns the workspace rectangle the note covers
func (n Note) Bounds() Rect {
	return Rect{Min: n.Position(), Size: n.Size()}
}

// WithPosition returns a copy of n moved to p
func (n Note) WithPosition(p Vec) Note {
	n.X, n.Y = p.X, p.Y
	return n
}

// WithSize returns a copy of n resized to s
func (n Note) WithSize(s Size) Note {
	n.Width, n.Height = s.Width, s.Height
	return n
}

// ImageMarkdown formats an inline image reference appended to note content
func ImageMarkdown(filename, dataURI string) string {
	return fmt.Sprintf("\n![%s](%s)\n", filename, dataURI)
}

// DefaultNoteContent is the starting content of a freshly created note
func DefaultNoteContent(title string) string {
	return "# " + title + "\n\nStart writing..."
}

// Notebook is a named, ordered collection of notes
type Notebook struct {
	Name  string `json:"name"`
	Items []Note `json:"items"`
}

// IndexOf returns the position of the note with the given id, or -1
func (nb *Notebook) IndexOf(id int64) int {
	for i, n := range nb.Items {
		if n.ID == id {
			return i
		}
	}
	return -1
}
