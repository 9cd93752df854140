package workspace

import "arknotes/internal/domain"

// Viewport is the per-session view onto the workspace. It is never persisted.
type Viewport struct {
	Transform domain.Transform
	Scroll    domain.Vec
	// Size is the visible area in screen pixels; zero until the first measurement.
	Size domain.Size
}

// NewViewport returns an unscrolled viewport at scale 1
func NewViewport() Viewport {
	return Viewport{Transform: domain.IdentityTransform()}
}

// ViewportSize reports the measured size, satisfying ports.ViewportSizeProvider
func (v *Viewport) ViewportSize() (domain.Size, bool) {
	if v.Size.Width <= 0 || v.Size.Height <= 0 {
		return domain.Size{}, false
	}
	return v.Size, true
}

// ZoomIn multiplies the scale by the zoom-in step, clamped
func (v *Viewport) ZoomIn() {
	v.Transform.Scale = domain.ClampScale(v.Transform.Scale * domain.ZoomInFactor)
}

// ZoomOut multiplies the scale by the zoom-out step, clamped
func (v *Viewport) ZoomOut() {
	v.Transform.Scale = domain.ClampScale(v.Transform.Scale * domain.ZoomOutFactor)
}

// ResetZoom returns to scale 1 without touching the scroll offset
func (v *Viewport) ResetZoom() {
	v.Transform = domain.IdentityTransform()
}

// Modifiers are the keys held during a pointer event
type Modifiers struct {
	Alt   bool
	Shift bool
	Ctrl  bool
}

// Wheel applies one wheel step. With Alt held it zooms around the workspace
// origin: forward (wheel down) zooms out, backward zooms in. Otherwise it
// scrolls by step pixels, horizontally when Shift is held. It reports whether
// the step zoomed.
func (v *Viewport) Wheel(forward bool, mods Modifiers, step domain.Vec) bool {
	if mods.Alt {
		if forward {
			v.ZoomOut()
		} else {
			v.ZoomIn()
		}
		return true
	}

	sign := 1.0
	if !forward {
		sign = -1
	}
	if mods.Shift {
		v.Scroll.X += sign * step.X
	} else {
		v.Scroll.Y += sign * step.Y
	}
	return false
}

// BeginPan anchors a pan at the pointer plus the current scroll offset
func BeginPan(pointer domain.Vec, v Viewport) Panning {
	return Panning{Anchor: pointer.Add(v.Scroll)}
}

// Scroll returns the scroll offset that keeps the anchor under the pointer.
// Panning never clamps.
func (p Panning) Scroll(pointer domain.Vec) domain.Vec {
	return p.Anchor.Sub(pointer)
}
