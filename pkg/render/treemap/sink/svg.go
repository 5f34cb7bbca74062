package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
)

const headerHeight = 24.0

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellOptions
	style  styles.Style
	header bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithHeader() SVGOption              { return func(r *svgRenderer) { r.header = true } }
func WithUnit(unit string) SVGOption     { return func(r *svgRenderer) { r.unit = unit } }

// WithPalette shares an ordinal color scale across frames so sections keep
// their colors while zooming.
func WithPalette(o *styles.Ordinal) SVGOption {
	return func(r *svgRenderer) {
		if o != nil {
			r.palette = o
		}
	}
}

// RenderSVG renders a frame as a standalone SVG document. Cells are painted in
// sprite order, so exiting cells sit beneath the new layer; labels follow all
// rectangles.
func RenderSVG(f Frame, opts ...SVGOption) []byte {
	r := svgRenderer{cellOptions: newCellOptions(), style: styles.Tol{}}
	for _, opt := range opts {
		opt(&r)
	}

	offset := 0.0
	if r.header {
		offset = headerHeight
	}
	total := f.Height + offset

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" font-family="sans-serif" font-size="10px">`+"\n",
		f.Width, total, f.Width, total)
	r.style.RenderDefs(&buf)

	if r.header {
		fmt.Fprintf(&buf, `  <text id="header" x="4" y="16" font-size="14px" fill="#333">%s</text>`+"\n", styles.EscapeXML(f.Header))
		fmt.Fprintf(&buf, `  <g transform="translate(0,%.0f)">`+"\n", offset)
	}

	cells := buildCells(f, r.cellOptions)
	for _, c := range cells {
		r.style.RenderCell(&buf, c)
	}
	for _, c := range cells {
		r.style.RenderLabel(&buf, c)
	}

	if r.header {
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
