package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the canvas key bindings
type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	NewNote    key.Binding
	EditNote   key.Binding
	Toggle     key.Binding
	RenameNote key.Binding
	Attach     key.Binding
	Copy       key.Binding
	DeleteNote key.Binding
	Cancel     key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding

	NextNotebook   key.Binding
	PrevNotebook   key.Binding
	NewNotebook    key.Binding
	RenameNotebook key.Binding
	DeleteNotebook key.Binding

	Push   key.Binding
	Pull   key.Binding
	Export key.Binding
	Import key.Binding
}

// DefaultKeys returns the default canvas key bindings
var DefaultKeys = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	NewNote:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
	EditNote:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Toggle:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	RenameNote: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "title")),
	Attach:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "image")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	DeleteNote: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unfocus")),

	Up:    key.NewBinding(key.WithKeys("k", "up")),
	Down:  key.NewBinding(key.WithKeys("j", "down")),
	Left:  key.NewBinding(key.WithKeys("h", "left")),
	Right: key.NewBinding(key.WithKeys("l", "right")),

	ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
	ZoomOut:   key.NewBinding(key.WithKeys("-")),
	ZoomReset: key.NewBinding(key.WithKeys("0")),

	NextNotebook:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "notebook")),
	PrevNotebook:   key.NewBinding(key.WithKeys("shift+tab")),
	NewNotebook:    key.NewBinding(key.WithKeys("N")),
	RenameNotebook: key.NewBinding(key.WithKeys("R")),
	DeleteNotebook: key.NewBinding(key.WithKeys("D")),

	Push:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync")),
	Pull:   key.NewBinding(key.WithKeys("S")),
	Export: key.NewBinding(key.WithKeys("E")),
	Import: key.NewBinding(key.WithKeys("I")),
}
