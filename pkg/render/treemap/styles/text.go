package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontSizeDefault = 10.0
	fontCharWidth   = 0.6
	labelPadding    = 4.0
	lineHeight      = 1.2
)

// FontSize is the label font size in pixels.
func FontSize(Cell) float64 { return fontSizeDefault }

// LabelFits reports whether a cell is large enough to carry any label text.
func LabelFits(c Cell) bool {
	return c.W >= 2*labelPadding+3*fontSizeDefault*fontCharWidth &&
		c.H >= 2*labelPadding+fontSizeDefault*lineHeight
}

// TruncateLabel shortens c.Label to the cell's width, marking cuts with "..".
// It never returns fewer than three characters for a non-empty label.
func TruncateLabel(c Cell) string {
	label := c.Label
	charWidth := FontSize(c) * fontCharWidth
	maxChars := max(3, int((c.W-2*labelPadding)/charWidth))

	if utf8.RuneCountInString(label) <= maxChars {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
