package sink

import (
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/render/treemap/reconcile"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
)

// Frame is one rendered moment of a treemap view.
type Frame struct {
	Width, Height float64
	Header        string
	Focus         *hierarchy.Node
	Sprites       []reconcile.Sprite
}

// cellOptions control how sprites become style cells.
type cellOptions struct {
	palette *styles.Ordinal
	unit    string
}

func newCellOptions() cellOptions {
	return cellOptions{palette: styles.NewOrdinal(styles.TolPalette), unit: "articles"}
}

func buildCells(f Frame, o cellOptions) []styles.Cell {
	cells := make([]styles.Cell, 0, len(f.Sprites))
	for _, s := range f.Sprites {
		n := s.Node
		cells = append(cells, styles.Cell{
			ID:          n.Path(),
			Label:       n.Name,
			Tooltip:     styles.Tooltip(n.Name, n.Value, o.unit),
			X:           s.Rect.Left,
			Y:           s.Rect.Top,
			W:           s.Rect.Width(),
			H:           s.Rect.Height(),
			Fill:        o.palette.Color(styles.ColorKey(n)),
			FillOpacity: styles.FillOpacity(n),
			Opacity:     s.Opacity,
			Clickable:   n.HasChildren() && s.Phase != reconcile.Exiting,
		})
	}
	return cells
}
