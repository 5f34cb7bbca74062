package styles

import (
	"bytes"
	"fmt"
)

// Plain draws black outlines on white with dark labels, ignoring fills.
type Plain struct{}

func (Plain) Name() string { return "plain" }

func (Plain) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>.cell-label { font-family: sans-serif; font-size: 10px; fill: #333; pointer-events: none; }</style>\n")
}

func (Plain) RenderCell(buf *bytes.Buffer, c Cell) {
	openGroup(buf, c)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#fff" stroke="#333" stroke-width="1"/>`+"\n  </g>\n",
		c.X, c.Y, c.W, c.H)
}

func (Plain) RenderLabel(buf *bytes.Buffer, c Cell) { renderLabel(buf, c) }
