package styles

import (
	"bytes"
	"fmt"
)

// Tol paints cells with palette fills, white strokes and white labels.
type Tol struct{}

func (Tol) Name() string { return "tol" }

func (Tol) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>.cell-label { font-family: sans-serif; font-size: 10px; fill: #fff; pointer-events: none; }</style>\n")
}

func (Tol) RenderCell(buf *bytes.Buffer, c Cell) {
	openGroup(buf, c)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"`,
		c.X, c.Y, c.W, c.H, c.Fill)
	if c.FillOpacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%.1f"`, c.FillOpacity)
	}
	buf.WriteString(` stroke="#fff" stroke-width="1"/>` + "\n  </g>\n")
}

func (Tol) RenderLabel(buf *bytes.Buffer, c Cell) {
	renderLabel(buf, c)
}

func renderLabel(buf *bytes.Buffer, c Cell) {
	if !LabelFits(c) {
		return
	}
	fmt.Fprintf(buf, `  <text class="cell-label" x="%.1f" y="%.1f"`, c.X+labelPadding, c.Y+labelPadding+FontSize(c))
	if c.Opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%.3f"`, c.Opacity)
	}
	fmt.Fprintf(buf, ">%s</text>\n", EscapeXML(TruncateLabel(c)))
}
