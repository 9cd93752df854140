// Package tui is the terminal front end: a zoomable notes canvas driven by
// terminal mouse reporting, with prompts and overlays for everything else.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"arknotes/internal/adapters/filesystem"
	"arknotes/internal/adapters/markdown"
	"arknotes/internal/adapters/tui/styles"
	"arknotes/internal/adapters/tui/views"
	"arknotes/internal/application/commands"
	"arknotes/internal/application/notebooks"
	"arknotes/internal/application/notes"
	"arknotes/internal/application/remotesync"
	"arknotes/internal/application/workspace"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// Prompt and confirmation tags
const (
	tagNewNote        = "new-note"
	tagRenameNote     = "rename-note"
	tagAttach         = "attach"
	tagImport         = "import"
	tagNewNotebook    = "new-notebook"
	tagRenameNotebook = "rename-notebook"
	tagDeleteNote     = "delete-note"
	tagDeleteNotebook = "delete-notebook"
)

const (
	headerRows  = 1
	statusRows  = 1
	scrollCells = 4
	maxPreviews = 256
)

// Deps are the collaborators of the TUI. Editor, Sync, Session and Changes may be nil.
type Deps struct {
	Repo     ports.DocumentStore
	Archive  ports.BundleArchive
	Editor   ports.NoteEditor
	Markdown ports.MarkdownRenderer
	Sync     *remotesync.Service
	Session  *ports.Session
	Changes  <-chan filesystem.Change

	Layout       workspace.Layout
	SyncInterval time.Duration
	Log          zerolog.Logger
	Clipboard    func(string) error
}

// App is the main TUI application model
type App struct {
	views.ViewState
	deps Deps
	log  zerolog.Logger
	keys KeyMap

	store *notes.Store
	books *notebooks.Manager
	ctrl  *workspace.Controller

	prompt  *views.PromptModel
	confirm *views.ConfirmModel
	help    *views.HelpModel
	target  noteRef

	docDirty      bool
	settingsDirty bool
	saving        bool
	quitting      bool
	fromDisk      *domain.Document

	previews map[previewKey]string
	gesture  string
}

// noteRef names a note, or just a notebook when noteID is 0
type noteRef struct {
	notebookID string
	noteID     int64
}

type previewKey struct {
	id      int64
	width   int
	content string
}

// Messages produced by commands

type savedMsg struct{ err error }

type changeMsg filesystem.Change

type reloadedMsg struct {
	doc      *domain.Document
	settings *domain.Settings
	err      error
}

type syncTickMsg struct{}

type pushedMsg struct {
	silent bool
	err    error
}

type bundleMsg struct {
	bundle *domain.Bundle
	source string
	err    error
}

type editorFinishedMsg struct {
	ref  noteRef
	path string
	err  error
}

type imageLoadedMsg struct {
	ref  noteRef
	name string
	blob []byte
	err  error
}

type exportedMsg struct {
	path string
	err  error
}

// NewApp creates the TUI over doc and settings
func NewApp(doc *domain.Document, settings *domain.Settings, deps Deps) *App {
	if deps.Layout.Cell.Width <= 0 || deps.Layout.Cell.Height <= 0 {
		deps.Layout = workspace.DefaultLayout()
	}
	if deps.Markdown == nil {
		deps.Markdown = markdown.NewRenderer(markdown.StyleNoTTY)
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if settings == nil {
		settings = domain.DefaultSettings()
	}

	a := &App{
		deps:     deps,
		log:      deps.Log.With().Str("component", "tui").Logger(),
		keys:     DefaultKeys,
		help:     views.NewHelpModel(),
		previews: make(map[previewKey]string),
	}
	viewport := ports.ViewportSizeFunc(func() (domain.Size, bool) {
		return a.ctrl.Viewport().ViewportSize()
	})
	a.store = notes.NewStore(doc, viewport, notes.WithChangeHook(func(*domain.Document) {
		a.docDirty = true
	}))
	a.books = notebooks.NewManager(a.store, settings, notebooks.WithSelectionHook(func(*domain.Settings) {
		a.settingsDirty = true
	}))
	a.ctrl = workspace.NewController(a.store, a.books, deps.Layout,
		workspace.WithLogger(a.log),
		workspace.WithCaptureHooks(a.onAcquire, a.onRelease),
		workspace.WithReplaceHook(a.onReplace),
	)
	styles.WithAccent(settings.AccentColor)
	return a
}

// Store exposes the live note store
func (a *App) Store() *notes.Store {
	return a.store
}

// Controller exposes the canvas controller
func (a *App) Controller() *workspace.Controller {
	return a.ctrl
}

// Init starts the file watcher listener and the sync timer
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.listen(), a.scheduleSync())
}

// Update handles messages and then persists whatever changed
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.persist())
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.measure()
		return nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.BlurMsg:
		a.endGesture(a.ctrl.Leave())
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	// Overlay results
	case views.PromptSubmittedMsg:
		a.closeModal()
		return a.submitPrompt(msg.Tag, msg.Value)

	case views.ConfirmedMsg:
		a.closeModal()
		a.confirmed(msg.Tag)
		return nil

	case views.ModalClosedMsg:
		a.closeModal()
		return nil

	// Background work
	case savedMsg:
		a.saving = false
		if msg.err != nil {
			a.log.Error().Err(msg.err).Msg("save failed")
			a.SetError(msg.err)
		}
		if a.quitting {
			a.flush()
			return tea.Quit
		}
		return nil

	case changeMsg:
		return tea.Batch(a.reload(filesystem.Change(msg)), a.listen())

	case reloadedMsg:
		a.applyReload(msg)
		return nil

	case syncTickMsg:
		return tea.Batch(a.push(true), a.scheduleSync())

	case pushedMsg:
		if !msg.silent {
			if msg.err != nil {
				a.SetError(msg.err)
			} else {
				a.SetMessage("Uploaded to the cloud", false)
			}
		}
		return nil

	case bundleMsg:
		if msg.err != nil {
			a.SetError(msg.err)
			return nil
		}
		a.applyBundle(msg.bundle, msg.source)
		return nil

	case editorFinishedMsg:
		a.finishEdit(msg)
		return nil

	case imageLoadedMsg:
		a.finishAttach(msg)
		return nil

	case exportedMsg:
		if msg.err != nil {
			a.SetError(msg.err)
		} else {
			a.SetMessage(fmt.Sprintf("Exported to %s", msg.path), false)
		}
		return nil
	}

	// cursor blink and friends
	if a.prompt != nil {
		return a.prompt.Update(msg)
	}
	return nil
}

// --- pointer ---

// pointer converts a terminal cell into the screen pixel at the cell's center
func (a *App) pointer(x, y int) domain.Vec {
	cell := a.deps.Layout.Cell
	return a.deps.Layout.CellOrigin(x, y-headerRows).Add(domain.Vec{X: cell.Width / 2, Y: cell.Height / 2})
}

func (a *App) onCanvas(y int) bool {
	return y >= headerRows && y < headerRows+a.canvasRows()
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.ctrl.State.Modal != workspace.ModalNone {
		return nil
	}
	mods := workspace.Modifiers{Alt: msg.Alt, Shift: msg.Shift, Ctrl: msg.Ctrl}
	p := a.pointer(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			a.ctrl.Wheel(msg.Button == tea.MouseButtonWheelDown, mods)
		}
		return nil
	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		if msg.Action == tea.MouseActionPress {
			mods.Shift = true
			a.ctrl.Wheel(msg.Button == tea.MouseButtonWheelRight, mods)
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !a.onCanvas(msg.Y) {
			return nil
		}
		return a.press(p)
	case tea.MouseActionMotion:
		if a.ctrl.Active() {
			a.ctrl.Move(p)
		}
	case tea.MouseActionRelease:
		a.endGesture(a.ctrl.Release(p))
	}
	return nil
}

func (a *App) press(p domain.Vec) tea.Cmd {
	hit := a.ctrl.Press(p)
	ref := noteRef{notebookID: a.ctrl.NotebookID(), noteID: hit.NoteID}
	switch hit.Region {
	case workspace.RegionToggle:
		a.toggle(ref)
	case workspace.RegionEdit:
		return a.edit(ref)
	case workspace.RegionDelete:
		a.askDeleteNote(ref)
	case workspace.RegionTitle:
		return a.promptRenameNote(ref)
	}
	return nil
}

func (a *App) endGesture(err error) {
	if err != nil {
		a.log.Warn().Err(err).Msg("gesture commit failed")
		a.SetError(err)
	}
}

func (a *App) onAcquire(m workspace.Mode) {
	a.gesture = m.String()
}

func (a *App) onRelease(workspace.Mode) {
	a.gesture = ""
}

func (a *App) onReplace(doc *domain.Document) {
	clear(a.previews)
	if doc != a.fromDisk {
		a.docDirty = true
	}
	a.fromDisk = nil
}

// --- keys ---

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return a.quit()
	}
	switch a.ctrl.State.Modal {
	case workspace.ModalPrompt:
		return a.prompt.Update(msg)
	case workspace.ModalConfirm:
		return a.confirm.Update(msg)
	case workspace.ModalHelp:
		return a.help.Update(msg)
	}

	k := a.keys
	if a.ctrl.Active() {
		switch {
		case key.Matches(msg, k.Quit):
			return a.quit()
		case key.Matches(msg, k.Cancel):
			a.ctrl.Reset()
		}
		return nil
	}
	a.ClearMessage()

	switch {
	case key.Matches(msg, k.Quit):
		return a.quit()
	case key.Matches(msg, k.Help):
		a.ctrl.State.Modal = workspace.ModalHelp
	case key.Matches(msg, k.Cancel):
		a.ctrl.State.Focused = 0

	case key.Matches(msg, k.NewNote):
		return a.openPrompt(tagNewNote, "New note title", "", noteRef{notebookID: a.ctrl.NotebookID()})
	case key.Matches(msg, k.EditNote):
		if ref, ok := a.focused(); ok {
			return a.edit(ref)
		}
	case key.Matches(msg, k.Toggle):
		if ref, ok := a.focused(); ok {
			a.toggle(ref)
		}
	case key.Matches(msg, k.RenameNote):
		if ref, ok := a.focused(); ok {
			return a.promptRenameNote(ref)
		}
	case key.Matches(msg, k.Attach):
		if ref, ok := a.focused(); ok {
			return a.openPrompt(tagAttach, "Image file to attach", "", ref)
		}
	case key.Matches(msg, k.Copy):
		if ref, ok := a.focused(); ok {
			a.copy(ref)
		}
	case key.Matches(msg, k.DeleteNote):
		if ref, ok := a.focused(); ok {
			a.askDeleteNote(ref)
		}

	case key.Matches(msg, k.Up):
		a.scroll(0, -1)
	case key.Matches(msg, k.Down):
		a.scroll(0, 1)
	case key.Matches(msg, k.Left):
		a.scroll(-1, 0)
	case key.Matches(msg, k.Right):
		a.scroll(1, 0)
	case key.Matches(msg, k.ZoomIn):
		a.ctrl.Viewport().ZoomIn()
	case key.Matches(msg, k.ZoomOut):
		a.ctrl.Viewport().ZoomOut()
	case key.Matches(msg, k.ZoomReset):
		a.ctrl.Viewport().ResetZoom()

	case key.Matches(msg, k.NextNotebook):
		a.cycleNotebook(1)
	case key.Matches(msg, k.PrevNotebook):
		a.cycleNotebook(-1)
	case key.Matches(msg, k.NewNotebook):
		return a.openPrompt(tagNewNotebook, "New notebook name", "", noteRef{})
	case key.Matches(msg, k.RenameNotebook):
		id := a.ctrl.NotebookID()
		return a.openPrompt(tagRenameNotebook, "Rename notebook", a.notebookName(id), noteRef{notebookID: id})
	case key.Matches(msg, k.DeleteNotebook):
		id := a.ctrl.NotebookID()
		a.openConfirm(tagDeleteNotebook, "Delete this notebook and all its notes?", a.notebookName(id), noteRef{notebookID: id})

	case key.Matches(msg, k.Push):
		return a.push(false)
	case key.Matches(msg, k.Pull):
		return a.pull()
	case key.Matches(msg, k.Export):
		return a.export()
	case key.Matches(msg, k.Import):
		return a.openPrompt(tagImport, "Backup file to import", "", noteRef{})
	}
	return nil
}

func (a *App) quit() tea.Cmd {
	a.endGesture(a.ctrl.Leave())
	a.quitting = true
	if a.saving {
		// the pending savedMsg finishes the quit
		return nil
	}
	a.flush()
	return tea.Quit
}

func (a *App) scroll(dx, dy float64) {
	cell := a.deps.Layout.Cell
	vp := a.ctrl.Viewport()
	vp.Scroll = vp.Scroll.Add(domain.Vec{X: dx * scrollCells * cell.Width, Y: dy * scrollCells * cell.Height})
}

func (a *App) cycleNotebook(step int) {
	list := a.books.List(domain.ViewNotes)
	if len(list) < 2 {
		return
	}
	active := a.ctrl.NotebookID()
	i := 0
	for j, ref := range list {
		if ref.ID == active {
			i = j
			break
		}
	}
	next := list[(i+step+len(list))%len(list)]
	if err := a.books.Select(domain.ViewNotes, next.ID); err != nil {
		a.SetError(err)
		return
	}
	a.ctrl.State.Focused = 0
}

func (a *App) notebookName(id string) string {
	for _, ref := range a.books.List(domain.ViewNotes) {
		if ref.ID == id {
			return ref.Name
		}
	}
	return id
}

// --- note actions ---

func (a *App) focused() (noteRef, bool) {
	ref := noteRef{notebookID: a.ctrl.NotebookID(), noteID: a.ctrl.State.Focused}
	if ref.noteID == 0 || a.store.IndexOf(ref.notebookID, ref.noteID) < 0 {
		a.SetMessage("Click a note first", true)
		return noteRef{}, false
	}
	return ref, true
}

// note resolves ref to its current index, which may have changed since ref was taken
func (a *App) note(ref noteRef) (int, domain.Note, bool) {
	idx := a.store.IndexOf(ref.notebookID, ref.noteID)
	if idx < 0 {
		return -1, domain.Note{}, false
	}
	n, err := a.store.Get(ref.notebookID, idx)
	return idx, n, err == nil
}

func (a *App) toggle(ref noteRef) {
	idx, _, ok := a.note(ref)
	if !ok {
		return
	}
	if err := a.store.ToggleViewMode(ref.notebookID, idx); err != nil {
		a.SetError(err)
	}
}

func (a *App) copy(ref noteRef) {
	_, n, ok := a.note(ref)
	if !ok {
		return
	}
	if err := a.deps.Clipboard(n.Content); err != nil {
		a.SetError(fmt.Errorf("failed to copy: %w", err))
		return
	}
	a.SetMessage("Copied to clipboard", false)
}

func (a *App) askDeleteNote(ref noteRef) {
	_, n, ok := a.note(ref)
	if !ok {
		return
	}
	a.openConfirm(tagDeleteNote, "Delete this note?", n.Title, ref)
}

func (a *App) promptRenameNote(ref noteRef) tea.Cmd {
	_, n, ok := a.note(ref)
	if !ok {
		return nil
	}
	return a.openPrompt(tagRenameNote, "Note title", n.Title, ref)
}

func (a *App) edit(ref noteRef) tea.Cmd {
	_, n, ok := a.note(ref)
	if !ok {
		return nil
	}
	if a.deps.Editor == nil {
		a.SetMessage("No editor available", true)
		return nil
	}
	path, err := a.deps.Editor.Stage(n.ID, n.Content)
	if err != nil {
		a.SetError(err)
		return nil
	}
	cmd, err := a.deps.Editor.Command(path)
	if err != nil {
		_, _ = a.deps.Editor.Collect(path)
		a.SetError(err)
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{ref: ref, path: path, err: err}
	})
}

func (a *App) finishEdit(msg editorFinishedMsg) {
	content, err := a.deps.Editor.Collect(msg.path)
	if msg.err != nil {
		a.SetError(fmt.Errorf("editor failed: %w", msg.err))
		return
	}
	if err != nil {
		a.SetError(err)
		return
	}
	idx, n, ok := a.note(msg.ref)
	if !ok {
		a.SetMessage("The note was deleted while editing", true)
		return
	}
	if content == n.Content {
		return
	}
	if err := a.store.SetContent(msg.ref.notebookID, idx, content); err != nil {
		a.SetError(err)
		return
	}
	a.SetMessage("Note updated", false)
}

func (a *App) finishAttach(msg imageLoadedMsg) {
	if msg.err != nil {
		a.SetError(msg.err)
		return
	}
	idx, _, ok := a.note(msg.ref)
	if !ok {
		return
	}
	if err := a.store.AttachImage(msg.ref.notebookID, idx, msg.name, msg.blob); err != nil {
		a.SetError(err)
		return
	}
	a.SetMessage(fmt.Sprintf("Attached %s", msg.name), false)
}

// --- overlays ---

func (a *App) openPrompt(tag, label, value string, target noteRef) tea.Cmd {
	a.target = target
	a.prompt = views.NewPromptModel(tag, label, value, 256)
	a.ctrl.State.Modal = workspace.ModalPrompt
	return a.prompt.Init()
}

func (a *App) openConfirm(tag, question, detail string, target noteRef) {
	a.target = target
	a.confirm = views.NewConfirmModel(tag, question, detail)
	a.ctrl.State.Modal = workspace.ModalConfirm
}

func (a *App) closeModal() {
	a.ctrl.State.Modal = workspace.ModalNone
	a.prompt = nil
	a.confirm = nil
}

func (a *App) submitPrompt(tag, value string) tea.Cmd {
	ref := a.target
	switch tag {
	case tagNewNote:
		n, ok := a.store.Create(ref.notebookID, value)
		if !ok {
			a.SetMessage("A note needs a title", true)
			return nil
		}
		a.ctrl.State.Focused = n.ID
		a.SetMessage(fmt.Sprintf("Created %s", n.Title), false)

	case tagRenameNote:
		idx, _, ok := a.note(ref)
		if !ok {
			return nil
		}
		if err := a.store.SetTitle(ref.notebookID, idx, value); err != nil {
			a.SetError(err)
		}

	case tagNewNotebook:
		if _, ok := a.books.Create(domain.ViewNotes, value); !ok {
			a.SetMessage("A notebook needs a name", true)
			return nil
		}
		a.ctrl.State.Focused = 0
		a.SetMessage(fmt.Sprintf("Created notebook %s", value), false)

	case tagRenameNotebook:
		if _, err := a.books.Rename(domain.ViewNotes, ref.notebookID, value); err != nil {
			a.SetError(err)
		}

	case tagAttach:
		if value == "" {
			return nil
		}
		path := filepath.Clean(value)
		return func() tea.Msg {
			blob, err := os.ReadFile(path)
			return imageLoadedMsg{ref: ref, name: filepath.Base(path), blob: blob, err: err}
		}

	case tagImport:
		if value == "" || a.deps.Archive == nil {
			return nil
		}
		archive, path := a.deps.Archive, value
		return func() tea.Msg {
			b, err := archive.ReadBundle(path)
			return bundleMsg{bundle: b, source: fmt.Sprintf("Imported %s", path), err: err}
		}
	}
	return nil
}

func (a *App) confirmed(tag string) {
	ref := a.target
	switch tag {
	case tagDeleteNote:
		idx, _, ok := a.note(ref)
		if !ok {
			return
		}
		if err := a.store.Delete(ref.notebookID, idx); err != nil {
			a.SetError(err)
			return
		}
		if a.ctrl.State.Focused == ref.noteID {
			a.ctrl.State.Focused = 0
		}
		a.SetMessage("Note deleted", false)

	case tagDeleteNotebook:
		if err := a.books.Delete(domain.ViewNotes, ref.notebookID); err != nil {
			a.SetError(err)
			return
		}
		a.ctrl.State.Focused = 0
		a.SetMessage("Notebook deleted", false)
	}
}

// --- persistence and sync ---

// persist saves dirty state in the background, one save at a time
func (a *App) persist() tea.Cmd {
	if a.saving || a.quitting || (!a.docDirty && !a.settingsDirty) || a.deps.Repo == nil {
		return nil
	}
	snap, err := remotesync.Snapshot(a.store.Document(), a.books.Settings())
	if err != nil {
		a.log.Error().Err(err).Msg("failed to snapshot document")
		return nil
	}
	if !a.docDirty {
		snap.Data = nil
	}
	if !a.settingsDirty {
		snap.Settings = nil
	}
	a.docDirty, a.settingsDirty = false, false
	a.saving = true

	repo := a.deps.Repo
	return func() tea.Msg {
		if snap.Data != nil {
			if err := repo.SaveDocument(snap.Data); err != nil {
				return savedMsg{err: fmt.Errorf("failed to save document: %w", err)}
			}
		}
		if snap.Settings != nil {
			if err := repo.SaveSettings(snap.Settings); err != nil {
				return savedMsg{err: fmt.Errorf("failed to save settings: %w", err)}
			}
		}
		return savedMsg{}
	}
}

// flush saves dirty state in the foreground before exiting
func (a *App) flush() {
	if a.deps.Repo == nil {
		return
	}
	if a.docDirty {
		if err := a.deps.Repo.SaveDocument(a.store.Document()); err != nil {
			a.log.Error().Err(err).Msg("failed to save document on exit")
		}
		a.docDirty = false
	}
	if a.settingsDirty {
		if err := a.deps.Repo.SaveSettings(a.books.Settings()); err != nil {
			a.log.Error().Err(err).Msg("failed to save settings on exit")
		}
		a.settingsDirty = false
	}
}

func (a *App) listen() tea.Cmd {
	ch := a.deps.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg(c)
	}
}

func (a *App) reload(c filesystem.Change) tea.Cmd {
	repo := a.deps.Repo
	switch c.Kind {
	case filesystem.ChangeDocument:
		return func() tea.Msg {
			doc, err := repo.LoadDocument()
			return reloadedMsg{doc: doc, err: err}
		}
	case filesystem.ChangeSettings:
		return func() tea.Msg {
			s, err := repo.LoadSettings()
			return reloadedMsg{settings: s, err: err}
		}
	}
	return nil
}

func (a *App) applyReload(msg reloadedMsg) {
	if msg.err != nil {
		a.log.Warn().Err(msg.err).Msg("reload failed")
		a.SetError(msg.err)
		return
	}
	if msg.settings != nil {
		a.applySettings(msg.settings)
	}
	if msg.doc != nil {
		a.fromDisk = msg.doc
		if a.ctrl.ReplaceDocument(msg.doc) {
			a.log.Debug().Msg("document reloaded from disk")
		}
	}
}

func (a *App) applySettings(s *domain.Settings) {
	*a.books.Settings() = *s
	a.books.Reconcile()
	styles.WithAccent(s.AccentColor)
}

func (a *App) applyBundle(b *domain.Bundle, source string) {
	if b == nil || (b.Data == nil && b.Settings == nil) {
		a.SetMessage("Nothing to apply", false)
		return
	}
	if b.Settings != nil {
		a.applySettings(b.Settings)
		a.settingsDirty = true
	}
	if b.Data != nil && !a.ctrl.ReplaceDocument(b.Data) {
		a.SetMessage(source+", applied when the gesture ends", false)
		return
	}
	a.ctrl.State.Focused = 0
	a.SetMessage(source, false)
}

func (a *App) syncEnabled() bool {
	return a.deps.Sync != nil && a.deps.Session != nil && a.deps.Session.Token != ""
}

func (a *App) scheduleSync() tea.Cmd {
	if !a.syncEnabled() || a.deps.SyncInterval <= 0 {
		return nil
	}
	return tea.Tick(a.deps.SyncInterval, func(time.Time) tea.Msg { return syncTickMsg{} })
}

func (a *App) push(silent bool) tea.Cmd {
	if !a.syncEnabled() {
		if !silent {
			a.SetMessage("Run arknotes-cli login to enable sync", true)
		}
		return nil
	}
	snap, err := remotesync.Snapshot(a.store.Document(), a.books.Settings())
	if err != nil {
		a.SetError(err)
		return nil
	}
	svc := a.deps.Sync
	return func() tea.Msg {
		return pushedMsg{silent: silent, err: svc.Push(context.Background(), snap, silent)}
	}
}

func (a *App) pull() tea.Cmd {
	if !a.syncEnabled() {
		a.SetMessage("Run arknotes-cli login to enable sync", true)
		return nil
	}
	svc := a.deps.Sync
	return func() tea.Msg {
		b, err := svc.Pull(context.Background(), false)
		return bundleMsg{bundle: b, source: "Downloaded from the cloud", err: err}
	}
}

func (a *App) export() tea.Cmd {
	if a.deps.Archive == nil {
		return nil
	}
	snap, err := remotesync.Snapshot(a.store.Document(), a.books.Settings())
	if err != nil {
		a.SetError(err)
		return nil
	}
	archive, path := a.deps.Archive, commands.BackupFileName(time.Now())
	return func() tea.Msg {
		return exportedMsg{path: path, err: archive.WriteBundle(path, snap)}
	}
}

// --- view ---

func (a *App) canvasRows() int {
	return max(a.Height-headerRows-statusRows, 0)
}

// measure records the canvas size in screen pixels on the viewport
func (a *App) measure() {
	cell := a.deps.Layout.Cell
	a.ctrl.Viewport().Size = domain.Size{
		Width:  float64(a.Width) * cell.Width,
		Height: float64(a.canvasRows()) * cell.Height,
	}
}

// View renders the header, the canvas or the open overlay, and the status bar
func (a *App) View() string {
	if a.Width <= 0 || a.Height <= 0 {
		return ""
	}
	rows := a.canvasRows()

	var body string
	switch a.ctrl.State.Modal {
	case workspace.ModalHelp:
		body = views.RenderModal(a.help.View(), a.Width, rows)
	case workspace.ModalPrompt:
		body = views.RenderModal(a.prompt.View(), a.Width, rows)
	case workspace.ModalConfirm:
		body = views.RenderModal(a.confirm.View(), a.Width, rows)
	default:
		body = a.renderCanvas(a.Width, rows).String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), body, a.renderStatus())
}

func (a *App) renderCanvas(cols, rows int) *canvas {
	cv := newCanvas(cols, rows)
	cv.dots(a.deps.Layout, a.ctrl.State.Viewport, a.books.Settings().GridSize)
	for _, pn := range a.ctrl.Notes() {
		cv.note(pn, pn.Note.ID == a.ctrl.State.Focused, a.body(pn))
	}
	return cv
}

// body returns the lines shown inside a note: wrapped source in edit mode,
// rendered markdown in preview mode
func (a *App) body(pn workspace.PlacedNote) []string {
	_, _, cols, rows := pn.Frame.ContentRect()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if pn.Note.ViewMode == domain.ViewModePreview {
		if lines, ok := a.preview(pn.Note, cols); ok {
			return lines
		}
	}
	return wrapLines(markdown.StripImages(pn.Note.Content), cols)
}

func (a *App) preview(n domain.Note, width int) ([]string, bool) {
	k := previewKey{id: n.ID, width: width, content: n.Content}
	out, ok := a.previews[k]
	if !ok {
		rendered, err := a.deps.Markdown.Render(n.Content, width)
		if err != nil {
			a.log.Debug().Err(err).Int64("note", n.ID).Msg("preview failed")
			return nil, false
		}
		if len(a.previews) >= maxPreviews {
			clear(a.previews)
		}
		a.previews[k] = rendered
		out = rendered
	}
	return strings.Split(out, "\n"), true
}

func (a *App) renderHeader() string {
	id := a.ctrl.NotebookID()
	list := a.books.List(domain.ViewNotes)
	pos := 0
	for i, ref := range list {
		if ref.ID == id {
			pos = i + 1
		}
	}

	parts := []string{
		" Ark Notes",
		fmt.Sprintf("%s (%d/%d)", a.notebookName(id), pos, len(list)),
		fmt.Sprintf("%.0f%%", a.ctrl.State.Viewport.Transform.Scale*100),
	}
	if a.gesture != "" {
		parts = append(parts, a.gesture)
	}
	if a.syncEnabled() {
		status := "☁ " + a.deps.Session.Username
		if a.deps.Sync.Status().LastError != nil {
			status += " (sync failed)"
		}
		parts = append(parts, status)
	} else {
		parts = append(parts, styles.HeaderDim.Render("offline"))
	}

	return styles.Header.Width(a.Width).MaxWidth(a.Width).MaxHeight(1).
		Render(strings.Join(parts, " │ "))
}

func (a *App) renderStatus() string {
	line := views.RenderMessage(a.Message, a.MessageErr)
	if line == "" {
		k := a.keys
		line = views.RenderHelpLine(k.NewNote, k.EditNote, k.Toggle, k.DeleteNote, k.ZoomIn,
			k.NextNotebook, k.Push, k.Help, k.Quit)
	}
	return styles.StatusBar.Width(a.Width).MaxWidth(a.Width).MaxHeight(1).Render(line)
}
