// Package sink serializes treemap frames.
//
// A [Frame] is what a view produces at one instant: the canvas size, the
// header text, the focused node and the interpolated sprites from the
// reconciler. [RenderSVG] and [RenderJSON] are pure; [RenderPNG] and
// [RenderPDF] shell out to rsvg-convert through the render package.
//
//	svg := sink.RenderSVG(frame, sink.WithHeader(), sink.WithPalette(palette))
//	data, err := sink.RenderJSON(frame, sink.WithJSONStyle("tol"))
package sink
