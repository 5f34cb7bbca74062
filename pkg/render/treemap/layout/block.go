package layout

// Block represents a single rectangle in pixel space, in screen orientation
// (Top < Bottom). Blocks are what the renderer draws; hierarchy boxes stay in
// logical domain units and are projected into Blocks by the coordinate mapper.
type Block struct {
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the block.
func (b Block) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the block.
func (b Block) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the block.
func (b Block) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the block.
func (b Block) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Area returns the block's pixel area, zero for inverted blocks.
func (b Block) Area() float64 { return max(0, b.Width()) * max(0, b.Height()) }

// Contains reports whether the pixel (x, y) lies inside the block.
func (b Block) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Right && y >= b.Top && y < b.Bottom
}

// Lerp interpolates linearly between b (t=0) and to (t=1).
func (b Block) Lerp(to Block, t float64) Block {
	return Block{
		Left:   lerp(b.Left, to.Left, t),
		Right:  lerp(b.Right, to.Right, t),
		Top:    lerp(b.Top, to.Top, t),
		Bottom: lerp(b.Bottom, to.Bottom, t),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
