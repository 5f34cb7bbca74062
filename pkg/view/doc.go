// Package view wires the treemap engine into one interactive session.
//
// A [Session] owns the raw dataset, the built hierarchy, the coordinate
// mapper, the zoom navigator and the reconciler, and turns discrete input
// events into frames:
//
//	s := view.New(view.Config{Width: 1600, Height: 680})
//	if err := s.Load(raw); err != nil {
//	    return err // INVALID_DATA: nothing is shown
//	}
//	s.ClickAt(x, y) // drill into the clicked section
//	frame := s.Frame()
//
// # Events
//
// Every event (load, click, back, reset, resize) runs synchronously to
// completion. Animations are time-interpolated from an injected [Clock]; a
// click that arrives mid-animation restarts the animation from wherever the
// cells currently are. Until a dataset has loaded every event is inert.
//
// Resize rebuilds the hierarchy and layout from the raw data, so the zoom
// level is lost and any running animation is dropped.
//
// A Session is not safe for concurrent use.
package view
