package styles

import (
	"strings"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
)

// TolPalette is Paul Tol's 21-color qualitative scheme.
var TolPalette = []string{
	"#771155", "#AA4488", "#CC99BB", "#114477", "#4477AA", "#77AADD", "#117777",
	"#44AAAA", "#77CCCC", "#117744", "#44AA77", "#88CCAA", "#777711", "#AAAA44",
	"#DDDD77", "#774411", "#AA7744", "#DDAA77", "#771122", "#AA4455", "#DD7788",
}

// OthersOpacity is the fill opacity of catch-all "Others" cells.
const OthersOpacity = 0.7

// Ordinal assigns palette colors to keys in first-seen order, cycling when
// the palette runs out. The zero value is not usable; see [NewOrdinal].
type Ordinal struct {
	palette []string
	index   map[string]int
}

// NewOrdinal returns an ordinal scale over palette.
func NewOrdinal(palette []string) *Ordinal {
	return &Ordinal{palette: palette, index: make(map[string]int)}
}

// Color returns the color for key, assigning the next one if key is new.
func (o *Ordinal) Color(key string) string {
	i, ok := o.index[key]
	if !ok {
		i = len(o.index)
		o.index[key] = i
	}
	return o.palette[i%len(o.palette)]
}

// Seed assigns colors to the root's sections in display order so that
// colors do not depend on which level is viewed first.
func (o *Ordinal) Seed(root *hierarchy.Node) {
	for _, c := range root.Children {
		o.Color(c.Name)
	}
}

// ColorKey is the name a node is colored by: its own name at depth 1 and its
// parent's name below that.
func ColorKey(n *hierarchy.Node) string {
	if n.Depth > 1 && n.Parent != nil {
		return n.Parent.Name
	}
	return n.Name
}

// FillOpacity returns the base fill opacity for n.
func FillOpacity(n *hierarchy.Node) float64 {
	if strings.Contains(n.Name, "Others") {
		return OthersOpacity
	}
	return 1
}
