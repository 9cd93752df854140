package domain

import "math"

const (
	// WorkspaceSize is the side length of the square workspace, in workspace units.
	WorkspaceSize = 5000.0

	MinNoteWidth  = 380.0
	MinNoteHeight = 280.0

	DefaultNoteWidth  = 400.0
	DefaultNoteHeight = 300.0

	MinScale = 0.1
	MaxScale = 5.0

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// Vec is a 2-D point or delta. Which space it lives in is up to the caller.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v multiplied by f on both axes
func (v Vec) Scale(f float64) Vec { return Vec{X: v.X * f, Y: v.Y * f} }

// Size is a width/height pair in workspace units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	Min  Vec
	Size Size
}

// Max returns the bottom-right corner
func (r Rect) Max() Vec {
	return Vec{X: r.Min.X + r.Size.Width, Y: r.Min.Y + r.Size.Height}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Vec) bool {
	max := r.Max()
	return p.X >= r.Min.X && p.X < max.X && p.Y >= r.Min.Y && p.Y < max.Y
}

// Transform maps workspace space onto the viewport: viewport = workspace*Scale + Pan.
type Transform struct {
	PanX  float64
	PanY  float64
	Scale float64
}

// IdentityTransform returns the transform every session starts with.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// ScreenDeltaToWorkspaceDelta converts a pointer delta into a workspace delta.
// Dragging at higher zoom moves a note by a proportionally smaller distance, so
// the note stays locked under the pointer at every zoom level.
func ScreenDeltaToWorkspaceDelta(d Vec, t Transform) Vec {
	return Vec{X: d.X / t.Scale, Y: d.Y / t.Scale}
}

// ScreenDeltaToResizeDelta converts a pointer delta into a size delta.
// Resize deltas are applied in raw screen pixels regardless of zoom.
func ScreenDeltaToResizeDelta(d Vec) Vec {
	return d
}

// ScreenToViewport converts a pointer position into the scrolled viewport space.
func ScreenToViewport(p, scroll Vec) Vec {
	return p.Add(scroll)
}

// ViewportToScreen is the inverse of ScreenToViewport.
func ViewportToScreen(p, scroll Vec) Vec {
	return p.Sub(scroll)
}

// ViewportToWorkspace converts a scrolled viewport position into workspace space.
func ViewportToWorkspace(p Vec, t Transform) Vec {
	return Vec{X: (p.X - t.PanX) / t.Scale, Y: (p.Y - t.PanY) / t.Scale}
}

// WorkspaceToViewport is the inverse of ViewportToWorkspace.
func WorkspaceToViewport(p Vec, t Transform) Vec {
	return Vec{X: p.X*t.Scale + t.PanX, Y: p.Y*t.Scale + t.PanY}
}

// ScreenToWorkspace chains ScreenToViewport and ViewportToWorkspace.
func ScreenToWorkspace(p, scroll Vec, t Transform) Vec {
	return ViewportToWorkspace(ScreenToViewport(p, scroll), t)
}

// WorkspaceToScreen chains WorkspaceToViewport and ViewportToScreen.
func WorkspaceToScreen(p, scroll Vec, t Transform) Vec {
	return ViewportToScreen(WorkspaceToViewport(p, t), scroll)
}

// ClampPosition keeps a note of the given size fully inside the workspace.
func ClampPosition(p Vec, s Size) Vec {
	return Vec{
		X: clamp(p.X, 0, WorkspaceSize-s.Width),
		Y: clamp(p.Y, 0, WorkspaceSize-s.Height),
	}
}

// ClampSize enforces the minimum note size. There is no maximum, but
// non-finite dimensions fall back to the minimum.
func ClampSize(s Size) Size {
	return Size{
		Width:  atLeast(s.Width, MinNoteWidth),
		Height: atLeast(s.Height, MinNoteHeight),
	}
}

// ClampScale keeps a zoom factor within [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	return clamp(s, MinScale, MaxScale)
}

// clamp bounds v to [lo, hi]; when hi < lo (a note larger than the workspace) lo wins.
// NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func atLeast(v, lo float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	return math.Max(lo, v)
}
