package sink

import (
	"encoding/json"

	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	cellOptions
	style string
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONUnit sets the unit used in tooltips.
func WithJSONUnit(unit string) JSONOption { return func(r *jsonRenderer) { r.unit = unit } }

// WithJSONPalette shares an ordinal color scale, see [WithPalette].
func WithJSONPalette(o *styles.Ordinal) JSONOption {
	return func(r *jsonRenderer) {
		if o != nil {
			r.palette = o
		}
	}
}

type jsonOutput struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Header string     `json:"header"`
	Focus  string     `json:"focus"`
	Style  string     `json:"style,omitempty"`
	Cells  []jsonCell `json:"cells"`
}

type jsonCell struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Depth       int     `json:"depth"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Fill        string  `json:"fill"`
	FillOpacity float64 `json:"fill_opacity"`
	Opacity     float64 `json:"opacity"`
	Phase       string  `json:"phase"`
	Clickable   bool    `json:"clickable,omitempty"`
	Tooltip     string  `json:"tooltip"`
}

// RenderJSON renders a frame as JSON for clients that paint cells themselves.
func RenderJSON(f Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{cellOptions: newCellOptions()}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  f.Width,
		Height: f.Height,
		Header: f.Header,
		Style:  r.style,
		Cells:  make([]jsonCell, 0, len(f.Sprites)),
	}
	if f.Focus != nil {
		out.Focus = f.Focus.Path()
	}

	cells := buildCells(f, r.cellOptions)
	for i, c := range cells {
		s := f.Sprites[i]
		out.Cells = append(out.Cells, jsonCell{
			ID:          c.ID,
			Name:        s.Node.Name,
			Value:       s.Node.Value,
			Depth:       s.Node.Depth,
			X:           c.X,
			Y:           c.Y,
			Width:       c.W,
			Height:      c.H,
			Fill:        c.Fill,
			FillOpacity: c.FillOpacity,
			Opacity:     c.Opacity,
			Phase:       s.Phase.String(),
			Clickable:   c.Clickable,
			Tooltip:     c.Tooltip,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
