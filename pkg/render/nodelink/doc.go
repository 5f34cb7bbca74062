// Package nodelink renders a hierarchy as a node-link tree diagram.
//
// The treemap shows one level at a time; a tree diagram shows the whole
// structure at once, which is useful when inspecting a dataset. Nodes are
// colored with the same palette as the treemap, so sections keep their
// color across both views.
//
//	dot := nodelink.ToDOT(root, nodelink.Options{MaxDepth: 2})
//	svg, err := nodelink.RenderSVG(dot)
//
// PDF and PNG go through rsvg-convert, like the treemap sinks.
//
// SVG rendering runs Graphviz in-process via
// [github.com/goccy/go-graphviz].
package nodelink
