package workspace

import (
	"github.com/rs/zerolog"

	"arknotes/internal/application/notebooks"
	"arknotes/internal/application/notes"
	"arknotes/internal/domain"
)

// State is the single container for transient workspace UI state
type State struct {
	Mode     Mode
	Viewport Viewport
	// Focused is the id of the last note pressed, 0 for none
	Focused int64
	Modal   Modal
}

// Hit describes what a press landed on
type Hit struct {
	Region Region
	NoteID int64
	Index  int
}

// PlacedNote is a note of the active notebook as it should be painted,
// with any in-progress gesture applied.
type PlacedNote struct {
	Index int
	Note  domain.Note
	Frame Frame
}

// Controller routes pointer events on the canvas to the drag, resize and
// pan/zoom state machines. It must only be used from the UI loop.
type Controller struct {
	State *State

	store     *notes.Store
	notebooks *notebooks.Manager
	layout    Layout
	log       zerolog.Logger

	capture   *Capture
	onAcquire func(Mode)
	onRelease func(Mode)

	pending   *domain.Document
	onReplace func(*domain.Document)
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithLogger sets the logger used for gesture tracing
func WithLogger(log zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.log = log }
}

// WithCaptureHooks registers callbacks for when a gesture takes and releases the pointer
func WithCaptureHooks(onAcquire, onRelease func(Mode)) ControllerOption {
	return func(c *Controller) {
		c.onAcquire = onAcquire
		c.onRelease = onRelease
	}
}

// WithReplaceHook registers fn to run when a replacement document is applied
func WithReplaceHook(fn func(*domain.Document)) ControllerOption {
	return func(c *Controller) { c.onReplace = fn }
}

// NewController wires a controller to the store and notebook selection
func NewController(store *notes.Store, books *notebooks.Manager, layout Layout, opts ...ControllerOption) *Controller {
	c := &Controller{
		State: &State{
			Mode:     Idle{},
			Viewport: NewViewport(),
		},
		store:     store,
		notebooks: books,
		layout:    layout,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout returns the cell layout used for hit-testing
func (c *Controller) Layout() Layout {
	return c.layout
}

// Viewport exposes the live viewport, e.g. as the store's viewport size provider
func (c *Controller) Viewport() *Viewport {
	return &c.State.Viewport
}

// NotebookID returns the active notebook
func (c *Controller) NotebookID() string {
	return c.notebooks.Active(domain.ViewNotes)
}

// Active reports whether a gesture currently holds the pointer
func (c *Controller) Active() bool {
	return c.capture != nil
}

// Notes returns the active notebook's notes in paint order
func (c *Controller) Notes() []PlacedNote {
	items, err := c.store.List(c.NotebookID())
	if err != nil {
		return nil
	}
	placed := make([]PlacedNote, 0, len(items))
	for _, i := range PaintOrder(items) {
		n := c.visual(i, items[i])
		placed = append(placed, PlacedNote{
			Index: i,
			Note:  n,
			Frame: c.layout.Frame(n, c.State.Viewport),
		})
	}
	return placed
}

// HitTest finds the top-most note under p and the region hit
func (c *Controller) HitTest(p domain.Vec) Hit {
	col, row := c.layout.CellAt(p)
	placed := c.Notes()
	for i := len(placed) - 1; i >= 0; i-- {
		pn := placed[i]
		if r := c.layout.Region(pn.Frame, pn.Note, col, row); r != RegionNone {
			return Hit{Region: r, NoteID: pn.Note.ID, Index: pn.Index}
		}
	}
	return Hit{Region: RegionCanvas, Index: -1}
}

// Press handles a primary-button press at p in screen pixels. Body presses
// start a drag, handle presses a resize and canvas presses a pan. Other
// regions only focus the note; the caller acts on them.
func (c *Controller) Press(p domain.Vec) Hit {
	if c.Active() {
		return Hit{Index: -1}
	}
	hit := c.HitTest(p)
	if hit.Region == RegionCanvas {
		c.State.Focused = 0
		c.begin(BeginPan(p, c.State.Viewport))
		return hit
	}

	c.State.Focused = hit.NoteID
	nbID := c.NotebookID()
	note, err := c.store.Get(nbID, hit.Index)
	if err != nil {
		return hit
	}
	switch hit.Region {
	case RegionBody:
		c.begin(BeginDrag(nbID, hit.Index, note, p))
	case RegionResize:
		c.begin(BeginResize(nbID, hit.Index, note, p))
	}
	return hit
}

// Move feeds a pointer position to the active gesture
func (c *Controller) Move(p domain.Vec) {
	switch m := c.State.Mode.(type) {
	case Dragging:
		c.State.Mode = m.Move(p, c.State.Viewport.Transform)
	case Resizing:
		c.State.Mode = m.Move(p)
	case Panning:
		c.State.Viewport.Scroll = m.Scroll(p)
	}
}

// Release ends the active gesture at p, committing drags and resizes
func (c *Controller) Release(p domain.Vec) error {
	if !c.Active() {
		return nil
	}
	c.Move(p)
	return c.end()
}

// Leave ends the active gesture when the pointer leaves the surface.
// It commits exactly like a release.
func (c *Controller) Leave() error {
	if !c.Active() {
		return nil
	}
	return c.end()
}

// Reset abandons the active gesture without committing
func (c *Controller) Reset() {
	if c.capture != nil {
		c.log.Debug().Str("mode", c.State.Mode.String()).Msg("gesture reset")
		c.release()
	}
}

// Wheel applies a wheel step. See Viewport.Wheel.
func (c *Controller) Wheel(forward bool, mods Modifiers) {
	step := domain.Vec{X: 3 * c.layout.Cell.Width, Y: 3 * c.layout.Cell.Height}
	if c.State.Viewport.Wheel(forward, mods, step) {
		c.log.Debug().Float64("scale", c.State.Viewport.Transform.Scale).Msg("zoom")
	}
}

// ReplaceDocument swaps in a whole document. During a gesture the swap is
// deferred until the gesture ends; applied reports whether it happened now.
// A later request supersedes a deferred one.
func (c *Controller) ReplaceDocument(doc *domain.Document) (applied bool) {
	if doc == nil {
		return false
	}
	if c.Active() {
		c.log.Debug().Msg("document replacement deferred until gesture ends")
		c.pending = doc
		return false
	}
	c.apply(doc)
	return true
}

// Pending reports whether a replacement is waiting for the gesture to end
func (c *Controller) Pending() bool {
	return c.pending != nil
}

func (c *Controller) begin(m Mode) {
	c.State.Mode = m
	c.capture = Acquire(c.finish)
	c.log.Debug().Str("mode", m.String()).Msg("gesture start")
	if c.onAcquire != nil {
		c.onAcquire(m)
	}
}

func (c *Controller) end() error {
	defer c.release()

	var err error
	committed := false
	switch m := c.State.Mode.(type) {
	case Dragging:
		committed, err = m.Commit(c.store)
	case Resizing:
		committed, err = m.Commit(c.store)
	}
	c.log.Debug().Str("mode", c.State.Mode.String()).Bool("committed", committed).Msg("gesture end")
	return err
}

// release ends the capture of the active gesture, if any
func (c *Controller) release() {
	c.capture.Release()
}

// finish is the capture's callback, so it runs once per gesture
func (c *Controller) finish() {
	ended := c.State.Mode
	c.State.Mode = Idle{}
	c.capture = nil

	if c.onRelease != nil {
		c.onRelease(ended)
	}
	if doc := c.pending; doc != nil {
		c.pending = nil
		c.apply(doc)
	}
}

func (c *Controller) apply(doc *domain.Document) {
	c.store.Replace(doc)
	c.notebooks.Reconcile()
	if c.State.Focused != 0 && c.store.IndexOf(c.NotebookID(), c.State.Focused) < 0 {
		c.State.Focused = 0
	}
	if c.onReplace != nil {
		c.onReplace(doc)
	}
}

// visual overlays the in-progress gesture onto the stored note
func (c *Controller) visual(index int, n domain.Note) domain.Note {
	switch m := c.State.Mode.(type) {
	case Dragging:
		if m.Index == index && m.NoteID == n.ID {
			return n.WithPosition(m.Position)
		}
	case Resizing:
		if m.Index == index && m.NoteID == n.ID {
			return n.WithSize(m.Size)
		}
	}
	return n
}
