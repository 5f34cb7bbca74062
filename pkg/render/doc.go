// Package render provides visualization rendering for weighted hierarchies.
//
// # Overview
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Zoomable treemaps (in the [treemap] subpackages)
//   - Node-link diagrams of the hierarchy (in [nodelink])
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both the treemap sink and
// the node-link renderer use them.
//
//	svg := sink.RenderSVG(frame, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Treemap
//
// Treemap rendering is split by concern:
//   - [treemap/layout]: squarified tiling and pixel blocks
//   - [treemap/scale]: logical-to-pixel coordinate mapping
//   - [treemap/zoom]: the drill-down state machine
//   - [treemap/reconcile]: keyed enter/update/exit and animation
//   - [treemap/styles]: palettes, labels and cell painting
//   - [treemap/sink]: SVG, JSON, PNG and PDF output
//
// [treemap]: github.com/matzehuels/treezoom/pkg/render/treemap
// [treemap/layout]: github.com/matzehuels/treezoom/pkg/render/treemap/layout
// [treemap/scale]: github.com/matzehuels/treezoom/pkg/render/treemap/scale
// [treemap/zoom]: github.com/matzehuels/treezoom/pkg/render/treemap/zoom
// [treemap/reconcile]: github.com/matzehuels/treezoom/pkg/render/treemap/reconcile
// [treemap/styles]: github.com/matzehuels/treezoom/pkg/render/treemap/styles
// [treemap/sink]: github.com/matzehuels/treezoom/pkg/render/treemap/sink
// [nodelink]: github.com/matzehuels/treezoom/pkg/render/nodelink
package render
