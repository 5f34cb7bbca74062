// Package pkg provides the core libraries for treezoom, a zoomable treemap
// engine for weighted hierarchies such as "section → keyword → article count".
//
// # Overview
//
// A dataset is a nested record tree whose leaves carry values. Treezoom
// aggregates the values bottom-up, tiles one level at a time with the
// squarified algorithm and lets a viewer drill into any group; every focus
// change re-targets a coordinate mapper and animates the visible cells from
// their old to their new rectangles.
//
// # Architecture
//
// The data flow:
//
//	JSON file / HTTP URL / MongoDB document
//	         ↓
//	    [source] (fetch bytes)
//	         ↓
//	    [hierarchy] (build, aggregate, sort)
//	         ↓
//	    [view] session: layout + scale + zoom + reconcile
//	         ↓
//	    [render/treemap/sink] SVG / JSON / PNG / PDF, or [render/nodelink] DOT
//
// # Quick Start
//
//	raw, _ := hierarchy.ImportJSON("archive.json")
//
//	s := view.New(view.Config{Width: 1600, Height: 680, Duration: -1})
//	_ = s.Load(raw)
//	_ = s.FocusPath("Sports")
//
//	svg := sink.RenderSVG(s.Frame(), sink.WithHeader())
//
// # Main Packages
//
// ## Domain
//
// [hierarchy] - Record trees, aggregation, sorting, paths and lookup.
//
// [render/treemap/layout] - Squarify, slice, dice and slice-dice tilers plus
// pixel blocks.
//
// [render/treemap/scale] - The linear domain-to-pixel mapper that zooming
// re-targets.
//
// [render/treemap/zoom] - The drill-in / drill-out / reset state machine.
// Invalid transitions are ignored and reported, never errors.
//
// [render/treemap/reconcile] - Keyed enter/update/exit partition of the
// visible cells and the eased transition between two mapper snapshots.
//
// [view] - One interactive treemap: wires the above to a clock and a
// [selection] coordinator.
//
// ## Output
//
// [render/treemap/sink] and [render/treemap/styles] - SVG, JSON, PNG and PDF
// frames with the Paul Tol palette.
//
// [render/nodelink] - The hierarchy as a Graphviz graph.
//
// ## Infrastructure
//
// [pipeline] - Load → layout → render with caching, shared by the CLI and
// the HTTP server.
//
// [cache] - File, Redis and null backends behind one interface.
//
// [source] and [httputil] - Dataset locations and the retrying HTTP client.
//
// [server] and [session] - The HTTP frame server and its per-client views.
//
// [errors] and [observability] - Coded errors and no-op-by-default hooks.
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/hierarchy
// [source]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/source
// [view]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/view
// [selection]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/selection
// [render/treemap/layout]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/render/treemap/layout
// [render/treemap/scale]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/render/treemap/scale
// [render/treemap/zoom]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/render/treemap/zoom
// [render/treemap/reconcile]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/render/treemap/reconcile
// [render/treemap/sink]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/render/treemap/sink
// [render/treemap/styles]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/render/treemap/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/httputil
// [server]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/server
// [session]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/session
// [errors]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/treezoom/pkg/observability
package pkg
