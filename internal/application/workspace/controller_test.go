package workspace

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arknotes/internal/application/notebooks"
	"arknotes/internal/application/notes"
	"arknotes/internal/domain"
)

// The default layout is 10x20 px per cell. A 400x300 note at (100, 200) covers
// columns 10..49 and rows 10..24 at scale 1.
var (
	ptBody    = domain.Vec{X: 105, Y: 210} // top-left corner of the frame
	ptTitle   = domain.Vec{X: 125, Y: 210}
	ptContent = domain.Vec{X: 155, Y: 310}
	ptToggle  = domain.Vec{X: 405, Y: 210}
	ptEdit    = domain.Vec{X: 435, Y: 210}
	ptDelete  = domain.Vec{X: 465, Y: 210}
	ptHandle  = domain.Vec{X: 495, Y: 490}
	ptCanvas  = domain.Vec{X: 50, Y: 50}
)

type fixture struct {
	store    *notes.Store
	books    *notebooks.Manager
	ctrl     *Controller
	acquired int
	released int
	replaced int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	f.store = notes.NewStore(domain.DefaultDocument(), nil)
	f.books = notebooks.NewManager(f.store, domain.DefaultSettings())
	f.ctrl = NewController(f.store, f.books, DefaultLayout(),
		WithCaptureHooks(
			func(Mode) { f.acquired++ },
			func(Mode) { f.released++ },
		),
		WithReplaceHook(func(*domain.Document) { f.replaced++ }),
	)
	return f
}

func (f *fixture) addNote(t *testing.T, title string, x, y float64) domain.Note {
	t.Helper()
	nbID := f.ctrl.NotebookID()
	n, ok := f.store.Create(nbID, title)
	require.True(t, ok)
	n = n.WithPosition(domain.Vec{X: x, Y: y})
	require.NoError(t, f.store.Update(nbID, f.store.IndexOf(nbID, n.ID), n))
	return n
}

func (f *fixture) note(t *testing.T, id int64) domain.Note {
	t.Helper()
	nbID := f.ctrl.NotebookID()
	n, err := f.store.Get(nbID, f.store.IndexOf(nbID, id))
	require.NoError(t, err)
	return n
}

func TestController_HitRegions(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "note", 100, 200)

	tests := []struct {
		name string
		at   domain.Vec
		want Region
	}{
		{name: "frame corner", at: ptBody, want: RegionBody},
		{name: "left border", at: domain.Vec{X: 105, Y: 310}, want: RegionBody},
		{name: "header after title", at: domain.Vec{X: 205, Y: 210}, want: RegionBody},
		{name: "title", at: ptTitle, want: RegionTitle},
		{name: "content", at: ptContent, want: RegionContent},
		{name: "toggle", at: ptToggle, want: RegionToggle},
		{name: "edit", at: ptEdit, want: RegionEdit},
		{name: "delete", at: ptDelete, want: RegionDelete},
		{name: "resize handle", at: ptHandle, want: RegionResize},
		{name: "bottom border", at: domain.Vec{X: 205, Y: 490}, want: RegionBody},
		{name: "empty canvas", at: ptCanvas, want: RegionCanvas},
		{name: "just right of the note", at: domain.Vec{X: 505, Y: 300}, want: RegionCanvas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := f.ctrl.HitTest(tt.at)
			assert.Equal(t, tt.want, hit.Region)
			if tt.want != RegionCanvas {
				assert.Equal(t, n.ID, hit.NoteID)
			}
		})
	}
}

func TestController_HitPrefersTopMost(t *testing.T) {
	f := newFixture(t)
	f.addNote(t, "under", 100, 200)
	over := f.addNote(t, "over", 100, 200)

	hit := f.ctrl.HitTest(ptContent)
	assert.Equal(t, over.ID, hit.NoteID)
	assert.Equal(t, 1, hit.Index)
}

func TestController_DragCommitsOnRelease(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "drag me", 100, 200)

	hit := f.ctrl.Press(ptBody)
	require.Equal(t, RegionBody, hit.Region)
	assert.IsType(t, Dragging{}, f.ctrl.State.Mode)
	assert.Equal(t, n.ID, f.ctrl.State.Focused)

	f.ctrl.Move(ptBody.Add(domain.Vec{X: 50, Y: 40}))

	// visual only until release
	assert.Equal(t, n.Position(), f.note(t, n.ID).Position())
	placed := f.ctrl.Notes()
	require.Len(t, placed, 1)
	assert.Equal(t, domain.Vec{X: 150, Y: 240}, placed[0].Note.Position())

	require.NoError(t, f.ctrl.Release(ptBody.Add(domain.Vec{X: 50, Y: 40})))

	assert.IsType(t, Idle{}, f.ctrl.State.Mode)
	assert.Equal(t, domain.Vec{X: 150, Y: 240}, f.note(t, n.ID).Position())
}

func TestController_NoOpDragKeepsPosition(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "still", 100, 200)

	f.ctrl.Press(ptBody)
	require.NoError(t, f.ctrl.Release(ptBody))

	assert.Equal(t, n, f.note(t, n.ID))
}

func TestController_DragIsScaleAware(t *testing.T) {
	d := BeginDrag("nb", 0, domain.Note{ID: 1, X: 1000, Y: 1000, Width: 400, Height: 300}, domain.Vec{X: 10, Y: 10})

	d = d.Move(domain.Vec{X: 110, Y: 10}, domain.Transform{Scale: 2})

	assert.Equal(t, domain.Vec{X: 1050, Y: 1000}, d.Position)
}

func TestController_DragClampInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		f := newFixture(t)
		n := f.addNote(t, "wander", 100, 200)
		f.ctrl.State.Viewport.Transform.Scale = domain.ClampScale(0.1 + rng.Float64()*5)
		frame := f.ctrl.Notes()[0].Frame
		start := f.ctrl.Layout().CellOrigin(frame.Col, frame.Row).Add(domain.Vec{X: 1, Y: 1})

		hit := f.ctrl.Press(start)
		require.Equal(t, RegionBody, hit.Region)

		p := start
		for step := 0; step < 10; step++ {
			p = p.Add(domain.Vec{X: (rng.Float64() - 0.5) * 20000, Y: (rng.Float64() - 0.5) * 20000})
			f.ctrl.Move(p)
		}
		require.NoError(t, f.ctrl.Release(p))

		got := f.note(t, n.ID)
		assert.GreaterOrEqual(t, got.X, 0.0)
		assert.GreaterOrEqual(t, got.Y, 0.0)
		assert.LessOrEqual(t, got.X, domain.WorkspaceSize-got.Width)
		assert.LessOrEqual(t, got.Y, domain.WorkspaceSize-got.Height)
	}
}

func TestController_ResizeUsesRawPixels(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "grow", 50, 100)
	f.ctrl.State.Viewport.Transform.Scale = 2

	// at scale 2 the note covers columns 10..89 and rows 10..39
	handle := domain.Vec{X: 895, Y: 790}
	require.Equal(t, RegionResize, f.ctrl.Press(handle).Region)

	f.ctrl.Move(handle.Add(domain.Vec{X: 100, Y: 60}))
	require.NoError(t, f.ctrl.Release(handle.Add(domain.Vec{X: 100, Y: 60})))

	got := f.note(t, n.ID)
	assert.Equal(t, domain.Size{Width: 500, Height: 360}, got.Size(), "resize deltas are not divided by the scale")
	assert.Equal(t, n.Position(), got.Position())
}

func TestController_ResizeMinimumSize(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "shrink", 100, 200)

	f.ctrl.Press(ptHandle)
	f.ctrl.Move(ptHandle.Sub(domain.Vec{X: 3000, Y: 3000}))
	require.NoError(t, f.ctrl.Release(ptHandle.Sub(domain.Vec{X: 3000, Y: 3000})))

	assert.Equal(t, domain.Size{Width: 380, Height: 280}, f.note(t, n.ID).Size())
}

func TestController_LeaveCommitsLikeRelease(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "leave", 100, 200)

	f.ctrl.Press(ptBody)
	f.ctrl.Move(ptBody.Add(domain.Vec{X: 20, Y: 0}))
	require.NoError(t, f.ctrl.Leave())

	assert.IsType(t, Idle{}, f.ctrl.State.Mode)
	assert.Equal(t, domain.Vec{X: 120, Y: 200}, f.note(t, n.ID).Position())
}

func TestController_PanMovesScrollInverse(t *testing.T) {
	f := newFixture(t)
	f.ctrl.State.Viewport.Scroll = domain.Vec{X: 10, Y: 10}

	hit := f.ctrl.Press(ptCanvas)
	require.Equal(t, RegionCanvas, hit.Region)
	assert.IsType(t, Panning{}, f.ctrl.State.Mode)

	f.ctrl.Move(domain.Vec{X: 20, Y: 30})
	assert.Equal(t, domain.Vec{X: 40, Y: 30}, f.ctrl.State.Viewport.Scroll)

	f.ctrl.Move(domain.Vec{X: 900, Y: 900})
	assert.Equal(t, domain.Vec{X: -840, Y: -840}, f.ctrl.State.Viewport.Scroll, "panning never clamps")

	require.NoError(t, f.ctrl.Leave())
	assert.IsType(t, Idle{}, f.ctrl.State.Mode)
}

func TestController_WheelZoomBounds(t *testing.T) {
	f := newFixture(t)
	alt := Modifiers{Alt: true}

	for i := 0; i < 100; i++ {
		f.ctrl.Wheel(true, alt)
		assert.GreaterOrEqual(t, f.ctrl.State.Viewport.Transform.Scale, domain.MinScale)
	}
	assert.Equal(t, domain.MinScale, f.ctrl.State.Viewport.Transform.Scale)

	for i := 0; i < 100; i++ {
		f.ctrl.Wheel(false, alt)
		assert.LessOrEqual(t, f.ctrl.State.Viewport.Transform.Scale, domain.MaxScale)
	}
	assert.Equal(t, domain.MaxScale, f.ctrl.State.Viewport.Transform.Scale)
}

func TestController_WheelWithoutModifierScrolls(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Wheel(true, Modifiers{})
	assert.Equal(t, 1.0, f.ctrl.State.Viewport.Transform.Scale)
	assert.Equal(t, domain.Vec{X: 0, Y: 60}, f.ctrl.State.Viewport.Scroll)

	f.ctrl.Wheel(false, Modifiers{Shift: true})
	assert.Equal(t, domain.Vec{X: -30, Y: 60}, f.ctrl.State.Viewport.Scroll)
}

func TestViewport_ZoomButtons(t *testing.T) {
	vp := NewViewport()

	vp.ZoomIn()
	assert.InDelta(t, 1.1, vp.Transform.Scale, 1e-9)
	vp.ZoomOut()
	assert.InDelta(t, 0.99, vp.Transform.Scale, 1e-9)

	vp.Transform.PanX = 7
	vp.ResetZoom()
	assert.Equal(t, domain.IdentityTransform(), vp.Transform)
}

func TestController_StaleIndexCommitIsNoOp(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, f *fixture, first, second domain.Note)
	}{
		{
			name: "index now holds another note",
			mutate: func(t *testing.T, f *fixture, first, second domain.Note) {
				require.NoError(t, f.store.Delete(f.ctrl.NotebookID(), 0))
			},
		},
		{
			name: "index out of range",
			mutate: func(t *testing.T, f *fixture, first, second domain.Note) {
				require.NoError(t, f.store.Delete(f.ctrl.NotebookID(), 1))
				require.NoError(t, f.store.Delete(f.ctrl.NotebookID(), 0))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			first := f.addNote(t, "first", 100, 200)
			second := f.addNote(t, "second", 2000, 2000)

			require.Equal(t, first.ID, f.ctrl.Press(ptBody).NoteID)
			f.ctrl.Move(ptBody.Add(domain.Vec{X: 300, Y: 300}))
			tt.mutate(t, f, first, second)

			require.NoError(t, f.ctrl.Release(ptBody.Add(domain.Vec{X: 300, Y: 300})))
			assert.IsType(t, Idle{}, f.ctrl.State.Mode)

			if idx := f.store.IndexOf(f.ctrl.NotebookID(), second.ID); idx >= 0 {
				assert.Equal(t, second.Position(), f.note(t, second.ID).Position())
			}
		})
	}
}

func TestController_CaptureReleasedOnce(t *testing.T) {
	f := newFixture(t)
	f.addNote(t, "n", 100, 200)

	f.ctrl.Press(ptBody)
	assert.True(t, f.ctrl.Active())
	require.NoError(t, f.ctrl.Release(ptBody))
	require.NoError(t, f.ctrl.Leave())
	require.NoError(t, f.ctrl.Release(ptBody))
	f.ctrl.Reset()

	assert.Equal(t, 1, f.acquired)
	assert.Equal(t, 1, f.released)

	f.ctrl.Press(ptCanvas)
	f.ctrl.Reset()
	f.ctrl.Reset()
	assert.False(t, f.ctrl.Active())
	assert.Equal(t, 2, f.acquired)
	assert.Equal(t, 2, f.released)
}

func TestController_ResetDiscardsGesture(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "n", 100, 200)

	f.ctrl.Press(ptBody)
	f.ctrl.Move(ptBody.Add(domain.Vec{X: 100, Y: 100}))
	f.ctrl.Reset()

	assert.IsType(t, Idle{}, f.ctrl.State.Mode)
	assert.Equal(t, n.Position(), f.note(t, n.ID).Position())
}

func TestController_PressDuringGestureIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.addNote(t, "n", 100, 200)

	f.ctrl.Press(ptBody)
	hit := f.ctrl.Press(ptCanvas)

	assert.Equal(t, RegionNone, hit.Region)
	assert.IsType(t, Dragging{}, f.ctrl.State.Mode)
	assert.Equal(t, 1, f.acquired)
}

func TestController_ControlPressesOnlyFocus(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "n", 100, 200)

	for _, at := range []domain.Vec{ptTitle, ptContent, ptToggle, ptEdit, ptDelete} {
		hit := f.ctrl.Press(at)
		assert.Equal(t, n.ID, hit.NoteID)
		assert.False(t, f.ctrl.Active(), hit.Region.String())
	}
	assert.Equal(t, n.ID, f.ctrl.State.Focused)

	f.ctrl.Press(ptCanvas)
	assert.Zero(t, f.ctrl.State.Focused)
}

func TestController_ReplacementDeferredDuringGesture(t *testing.T) {
	f := newFixture(t)
	n := f.addNote(t, "local", 100, 200)

	incoming := domain.DefaultDocument()
	nb, _ := incoming.Notebook(domain.DefaultCollectionID)
	nb.Items = append(nb.Items, domain.Note{ID: 77, Title: "remote", Width: 400, Height: 300})

	f.ctrl.Press(ptBody)
	assert.False(t, f.ctrl.ReplaceDocument(incoming))
	assert.True(t, f.ctrl.Pending())
	assert.NotSame(t, incoming, f.store.Document())
	assert.Zero(t, f.replaced)

	f.ctrl.Move(ptBody.Add(domain.Vec{X: 10, Y: 10}))
	require.NoError(t, f.ctrl.Release(ptBody.Add(domain.Vec{X: 10, Y: 10})))

	assert.False(t, f.ctrl.Pending())
	assert.Same(t, incoming, f.store.Document())
	assert.Equal(t, 1, f.replaced)
	assert.Zero(t, f.ctrl.State.Focused, "focused note no longer exists")
	assert.Equal(t, -1, f.store.IndexOf(f.ctrl.NotebookID(), n.ID))
}

func TestController_ReplacementAppliedWhenIdle(t *testing.T) {
	f := newFixture(t)
	incoming := domain.DefaultDocument()

	assert.True(t, f.ctrl.ReplaceDocument(incoming))
	assert.Same(t, incoming, f.store.Document())
	assert.Equal(t, 1, f.replaced)
}
