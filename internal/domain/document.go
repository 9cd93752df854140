package domain

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ViewKind identifies one of the three views over the document
type ViewKind int

const (
	ViewUnknown ViewKind = iota
	ViewTodo
	ViewNotes
	ViewKanban
)

func (k ViewKind) String() string {
	switch k {
	case ViewTodo:
		return "todo"
	case ViewNotes:
		return "notes"
	case ViewKanban:
		return "kanban"
	default:
		return "unknown"
	}
}

// Noun returns what a collection is called in this view
func (k ViewKind) Noun() string {
	switch k {
	case ViewTodo:
		return "list"
	case ViewNotes:
		return "notebook"
	case ViewKanban:
		return "board"
	default:
		return "collection"
	}
}

// ParseViewKind accepts the persisted key of a view
func ParseViewKind(s string) ViewKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "todos", "list", "lists":
		return ViewTodo
	case "notes", "note", "notebook", "notebooks":
		return ViewNotes
	case "kanban", "board", "boards":
		return ViewKanban
	default:
		return ViewUnknown
	}
}

// DefaultCollectionID is the key of the collection every fresh document starts with
const DefaultCollectionID = "default"

// TodoItem is a task-list entry. Task CRUD lives outside the workspace core;
// the type exists so the document round-trips.
type TodoItem struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TodoList is a named list of tasks
type TodoList struct {
	Name  string     `json:"name"`
	Items []TodoItem `json:"items"`
}

// KanbanCard is a card on a kanban column
type KanbanCard struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// KanbanColumn is a named column of cards
type KanbanColumn struct {
	Name  string       `json:"name"`
	Items []KanbanCard `json:"items"`
}

// KanbanBoard is a named set of columns
type KanbanBoard struct {
	Name    string                    `json:"name"`
	Columns Collection[*KanbanColumn] `json:"columns"`
}

// NewKanbanBoard returns a board with the standard three columns
func NewKanbanBoard(name string) *KanbanBoard {
	cols := NewCollection[*KanbanColumn]()
	cols.Set("todo", &KanbanColumn{Name: "To Do", Items: []KanbanCard{}})
	cols.Set("doing", &KanbanColumn{Name: "In Progress", Items: []KanbanCard{}})
	cols.Set("done", &KanbanColumn{Name: "Done", Items: []KanbanCard{}})
	return &KanbanBoard{Name: name, Columns: cols}
}

// Document is the single persisted document behind all three views
type Document struct {
	Todo   Collection[*TodoList]    `json:"todo"`
	Notes  Collection[*Notebook]    `json:"notes"`
	Kanban Collection[*KanbanBoard] `json:"kanban"`
}

// DefaultDocument returns the document a new install starts with
func DefaultDocument() *Document {
	doc := &Document{
		Todo:   NewCollection[*TodoList](),
		Notes:  NewCollection[*Notebook](),
		Kanban: NewCollection[*KanbanBoard](),
	}
	doc.Todo.Set(DefaultCollectionID, &TodoList{Name: "My ToDo List", Items: []TodoItem{}})
	doc.Notes.Set(DefaultCollectionID, &Notebook{Name: "My Notes", Items: []Note{}})
	doc.Kanban.Set(DefaultCollectionID, NewKanbanBoard("My Project"))
	return doc
}

// Normalize repairs a decoded document so every view has at least one collection
// and no entry is nil. It reports whether anything had to change.
func (d *Document) Normalize() bool {
	changed := false
	def := DefaultDocument()

	for _, id := range d.Todo.Keys() {
		if v, _ := d.Todo.Get(id); v == nil {
			d.Todo.Delete(id)
			changed = true
		}
	}
	for _, id := range d.Notes.Keys() {
		if v, _ := d.Notes.Get(id); v == nil {
			d.Notes.Delete(id)
			changed = true
		}
	}
	for _, id := range d.Kanban.Keys() {
		if v, _ := d.Kanban.Get(id); v == nil {
			d.Kanban.Delete(id)
			changed = true
		}
	}

	if d.Todo.Len() == 0 {
		d.Todo = def.Todo
		changed = true
	}
	if d.Notes.Len() == 0 {
		d.Notes = def.Notes
		changed = true
	}
	if d.Kanban.Len() == 0 {
		d.Kanban = def.Kanban
		changed = true
	}
	return changed
}

// Clone returns a deep copy, used to hand snapshots to background work
func (d *Document) Clone() (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to snapshot document: %w", err)
	}
	return &out, nil
}

// CollectionRef names one collection of a view
type CollectionRef struct {
	ID    string
	Name  string
	Count int
}

// Collections lists the collections of a view in order
func (d *Document) Collections(kind ViewKind) []CollectionRef {
	var refs []CollectionRef
	switch kind {
	case ViewTodo:
		for _, id := range d.Todo.Keys() {
			v, _ := d.Todo.Get(id)
			refs = append(refs, CollectionRef{ID: id, Name: v.Name, Count: len(v.Items)})
		}
	case ViewNotes:
		for _, id := range d.Notes.Keys() {
			v, _ := d.Notes.Get(id)
			refs = append(refs, CollectionRef{ID: id, Name: v.Name, Count: len(v.Items)})
		}
	case ViewKanban:
		for _, id := range d.Kanban.Keys() {
			v, _ := d.Kanban.Get(id)
			refs = append(refs, CollectionRef{ID: id, Name: v.Name, Count: v.Columns.Len()})
		}
	}
	return refs
}

// HasCollection reports whether the view has a collection with this id
func (d *Document) HasCollection(kind ViewKind, id string) bool {
	switch kind {
	case ViewTodo:
		return d.Todo.Has(id)
	case ViewNotes:
		return d.Notes.Has(id)
	case ViewKanban:
		return d.Kanban.Has(id)
	}
	return false
}

// CollectionCount returns how many collections the view has
func (d *Document) CollectionCount(kind ViewKind) int {
	switch kind {
	case ViewTodo:
		return d.Todo.Len()
	case ViewNotes:
		return d.Notes.Len()
	case ViewKanban:
		return d.Kanban.Len()
	}
	return 0
}

// FirstCollection returns the id of the first collection of a view
func (d *Document) FirstCollection(kind ViewKind) string {
	switch kind {
	case ViewTodo:
		return d.Todo.First()
	case ViewNotes:
		return d.Notes.First()
	case ViewKanban:
		return d.Kanban.First()
	}
	return ""
}

// AddCollection inserts an empty collection of the given view
func (d *Document) AddCollection(kind ViewKind, id, name string) {
	switch kind {
	case ViewTodo:
		d.Todo.Set(id, &TodoList{Name: name, Items: []TodoItem{}})
	case ViewNotes:
		d.Notes.Set(id, &Notebook{Name: name, Items: []Note{}})
	case ViewKanban:
		d.Kanban.Set(id, NewKanbanBoard(name))
	}
}

// RenameCollection sets the display name of a collection
func (d *Document) RenameCollection(kind ViewKind, id, name string) bool {
	switch kind {
	case ViewTodo:
		if v, ok := d.Todo.Get(id); ok {
			v.Name = name
			return true
		}
	case ViewNotes:
		if v, ok := d.Notes.Get(id); ok {
			v.Name = name
			return true
		}
	case ViewKanban:
		if v, ok := d.Kanban.Get(id); ok {
			v.Name = name
			return true
		}
	}
	return false
}

// RemoveCollection deletes a collection of a view
func (d *Document) RemoveCollection(kind ViewKind, id string) bool {
	switch kind {
	case ViewTodo:
		return d.Todo.Delete(id)
	case ViewNotes:
		return d.Notes.Delete(id)
	case ViewKanban:
		return d.Kanban.Delete(id)
	}
	return false
}

// Notebook returns the notebook with the given id
func (d *Document) Notebook(id string) (*Notebook, bool) {
	return d.Notes.Get(id)
}

// Settings is the separately persisted presentation settings document.
// Active maps a view name to its selected collection id.
type Settings struct {
	GridSize    int               `json:"gridSize"`
	FontSize    int               `json:"fontSize"`
	AccentColor string            `json:"accentColor"`
	DarkMode    bool              `json:"darkMode"`
	Active      map[string]string `json:"active,omitempty"`
}

// DefaultSettings returns the settings a new install starts with
func DefaultSettings() *Settings {
	return &Settings{
		GridSize:    50,
		FontSize:    14,
		AccentColor: "#6750a4",
		DarkMode:    false,
	}
}

// Bundle is the unit exchanged with exports and the remote store
type Bundle struct {
	Data     *Document `json:"data,omitempty"`
	Settings *Settings `json:"settings,omitempty"`
}
