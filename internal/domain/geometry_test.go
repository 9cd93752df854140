package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenDeltaToWorkspaceDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta Vec
		scale float64
		want  Vec
	}{
		{name: "identity at scale 1", delta: Vec{X: 100, Y: -40}, scale: 1, want: Vec{X: 100, Y: -40}},
		{name: "halved at scale 2", delta: Vec{X: 100, Y: 0}, scale: 2, want: Vec{X: 50, Y: 0}},
		{name: "amplified when zoomed out", delta: Vec{X: 10, Y: 20}, scale: 0.5, want: Vec{X: 20, Y: 40}},
		{name: "zero delta", delta: Vec{}, scale: 3, want: Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenDeltaToWorkspaceDelta(tt.delta, Transform{Scale: tt.scale})
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestScreenDeltaToResizeDelta_IgnoresScale(t *testing.T) {
	// Resize works in raw screen pixels; the transform is not even an input.
	assert.Equal(t, Vec{X: 100, Y: 60}, ScreenDeltaToResizeDelta(Vec{X: 100, Y: 60}))
}

func TestScreenWorkspaceRoundTrip(t *testing.T) {
	tr := Transform{PanX: 12, PanY: -7, Scale: 2.5}
	scroll := Vec{X: 300, Y: 120}
	p := Vec{X: 640, Y: 220}

	ws := ScreenToWorkspace(p, scroll, tr)
	back := WorkspaceToScreen(ws, scroll, tr)

	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
	assert.InDelta(t, (640+300-12)/2.5, ws.X, 1e-9)
}

func TestClampPosition(t *testing.T) {
	size := Size{Width: 400, Height: 300}
	tests := []struct {
		name string
		in   Vec
		want Vec
	}{
		{name: "inside", in: Vec{X: 10, Y: 20}, want: Vec{X: 10, Y: 20}},
		{name: "negative", in: Vec{X: -50, Y: -1}, want: Vec{X: 0, Y: 0}},
		{name: "past far edge", in: Vec{X: 4900, Y: 9000}, want: Vec{X: 4600, Y: 4700}},
		{name: "NaN", in: Vec{X: math.NaN(), Y: 10}, want: Vec{X: 0, Y: 10}},
		{name: "infinite", in: Vec{X: math.Inf(1), Y: math.Inf(-1)}, want: Vec{X: 4600, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPosition(tt.in, size))
		})
	}
}

func TestClampSize(t *testing.T) {
	assert.Equal(t, Size{Width: 380, Height: 280}, ClampSize(Size{Width: 10, Height: -5}))
	assert.Equal(t, Size{Width: 9000, Height: 281}, ClampSize(Size{Width: 9000, Height: 281}))
	assert.Equal(t, Size{Width: 380, Height: 280}, ClampSize(Size{Width: math.Inf(1), Height: math.NaN()}))
}

func TestClampScale(t *testing.T) {
	assert.Equal(t, MinScale, ClampScale(0.01))
	assert.Equal(t, MaxScale, ClampScale(12))
	assert.Equal(t, 1.3, ClampScale(1.3))
	assert.Equal(t, MinScale, ClampScale(math.NaN()))
}

func TestRectContains(t *testing.T) {
	r := Rect{Min: Vec{X: 10, Y: 10}, Size: Size{Width: 5, Height: 5}}

	assert.True(t, r.Contains(Vec{X: 10, Y: 10}))
	assert.True(t, r.Contains(Vec{X: 14.9, Y: 14.9}))
	assert.False(t, r.Contains(Vec{X: 15, Y: 12}))
	assert.False(t, r.Contains(Vec{X: 9.9, Y: 12}))
}
