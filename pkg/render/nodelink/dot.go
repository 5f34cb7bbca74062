package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/render"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
)

// Options configures tree diagram generation.
type Options struct {
	// Detailed adds the formatted value to each label.
	Detailed bool
	// MaxDepth limits how many levels below the root are drawn. Zero draws
	// everything.
	MaxDepth int
	// Unit is appended to values in detailed labels.
	Unit string
	// Palette colors nodes by section. Nil uses a Tol palette seeded from
	// the root.
	Palette *styles.Ordinal
}

// ToDOT converts the subtree at root to Graphviz DOT, laid out left to
// right. Node IDs are hierarchy paths, so they are unique even when names
// repeat under different parents.
func ToDOT(root *hierarchy.Node, opts Options) string {
	palette := opts.Palette
	if palette == nil {
		palette = styles.NewOrdinal(styles.TolPalette)
		palette.Seed(root.Root())
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"sans-serif\", fontsize=12, color=white];\n")
	buf.WriteString("  edge [color=\"#999999\", arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.15;\n")
	buf.WriteString("\n")

	base := root.Depth
	root.Walk(func(n *hierarchy.Node) bool {
		if opts.MaxDepth > 0 && n.Depth-base > opts.MaxDepth {
			return false
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), attrs(n, palette, opts))
		if n.Parent != nil && n != root {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(n.Parent), nodeID(n))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n *hierarchy.Node) string {
	if n.IsRoot() {
		return n.Name
	}
	return n.Root().Name + "/" + n.Path()
}

func attrs(n *hierarchy.Node, palette *styles.Ordinal, opts Options) string {
	label := n.Name
	if opts.Detailed {
		unit := opts.Unit
		if unit == "" {
			unit = "articles"
		}
		label = styles.Tooltip(n.Name, n.Value, unit)
	}
	fill := "#ffffff"
	if !n.IsRoot() {
		fill = palette.Color(styles.ColorKey(n))
	}
	return fmt.Sprintf("label=%q, fillcolor=%q", label, fill)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF. Requires rsvg-convert.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG at the given scale. Requires
// rsvg-convert.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
