// Package scale converts logical treemap coordinates to canvas pixels.
//
// A [Mapper] holds one [Linear] scale per axis. Its pixel range is the canvas
// and never changes; zooming is expressed purely as [Mapper.Retarget], which
// swaps the logical window that fills the canvas. Node boxes are never
// rewritten to zoom; every box-to-pixel conversion goes through [Mapper.Rect].
package scale
