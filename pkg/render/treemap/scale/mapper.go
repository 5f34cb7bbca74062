package scale

import (
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/render/treemap/layout"
)

// Mapper projects logical boxes onto the canvas through two independent
// linear scales. The pixel range is fixed when the mapper is created; zooming
// only changes the domain window via [Mapper.Retarget].
//
// Mapper is a plain value: copying it takes a snapshot that later Retarget
// calls on the original do not affect.
type Mapper struct {
	X Linear
	Y Linear
}

// NewMapper returns a rounding mapper whose domain window equals the canvas,
// so logical and pixel coordinates coincide until the first retarget.
func NewMapper(width, height float64) *Mapper {
	return &Mapper{
		X: Linear{D0: 0, D1: width, R0: 0, R1: width, Round: true},
		Y: Linear{D0: 0, D1: height, R0: 0, R1: height, Round: true},
	}
}

// Canvas returns the full logical window that covers the canvas at rest.
func (m *Mapper) Canvas() hierarchy.Box {
	return hierarchy.Box{X0: m.X.R0, Y0: m.Y.R0, X1: m.X.R1, Y1: m.Y.R1}
}

// Width returns the canvas width in pixels.
func (m *Mapper) Width() float64 { return m.X.R1 - m.X.R0 }

// Height returns the canvas height in pixels.
func (m *Mapper) Height() float64 { return m.Y.R1 - m.Y.R0 }

// Retarget replaces the domain window. Pixel extents are unchanged.
func (m *Mapper) Retarget(window hierarchy.Box) {
	m.X.D0, m.X.D1 = window.X0, window.X1
	m.Y.D0, m.Y.D1 = window.Y0, window.Y1
}

// Window returns the current domain window.
func (m *Mapper) Window() hierarchy.Box {
	return hierarchy.Box{X0: m.X.D0, Y0: m.Y.D0, X1: m.X.D1, Y1: m.Y.D1}
}

// SetRound toggles pixel rounding on both axes.
func (m *Mapper) SetRound(round bool) {
	m.X.Round = round
	m.Y.Round = round
}

// Rect projects a logical box into pixel space. Inverted projections are
// collapsed to zero width or height.
func (m *Mapper) Rect(b hierarchy.Box) layout.Block {
	blk := layout.Block{
		Left:   m.X.Map(b.X0),
		Right:  m.X.Map(b.X1),
		Top:    m.Y.Map(b.Y0),
		Bottom: m.Y.Map(b.Y1),
	}
	blk.Right = max(blk.Right, blk.Left)
	blk.Bottom = max(blk.Bottom, blk.Top)
	return blk
}

// Invert converts a pixel position back into logical coordinates under the
// current window.
func (m *Mapper) Invert(px, py float64) (float64, float64) {
	return m.X.Invert(px), m.Y.Invert(py)
}
