package styles

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/matzehuels/treezoom/pkg/errors"
)

// Style defines the visual appearance of treemap cells.
type Style interface {
	// Name is the identifier used in configuration and JSON output.
	Name() string
	// RenderDefs writes SVG <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderCell writes the rectangle for one cell.
	RenderCell(buf *bytes.Buffer, c Cell)
	// RenderLabel writes the cell's label; cells too small for text are skipped.
	RenderLabel(buf *bytes.Buffer, c Cell)
}

// Cell carries everything needed to paint one treemap rectangle.
type Cell struct {
	ID          string  // Node path, unique within a frame
	Label       string  // Display text
	Tooltip     string  // Hover text
	X, Y, W, H  float64 // Pixel rectangle
	Fill        string  // Fill color
	FillOpacity float64 // Base fill opacity
	Opacity     float64 // Transition opacity of the whole cell
	Clickable   bool    // Whether the cell can be drilled into
}

var registry = map[string]Style{
	"tol":   Tol{},
	"plain": Plain{},
}

// Lookup returns the style registered under name.
func Lookup(name string) (Style, error) {
	s, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (available: %v)", name, Names())
	}
	return s, nil
}

// Names lists the registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func openGroup(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `  <g id="cell-%s"`, EscapeXML(c.ID))
	if c.Opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%.3f"`, c.Opacity)
	}
	if c.Clickable {
		buf.WriteString(` cursor="pointer"`)
	}
	buf.WriteString(">\n")
	if c.Tooltip != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", EscapeXML(c.Tooltip))
	}
}
