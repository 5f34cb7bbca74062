// Package zoom implements the drill-down state machine of a zoomable treemap.
//
// # State
//
// A [Navigator] owns exactly one [ViewState]: the focused node and the
// logical window that currently fills the canvas. At construction the focus is
// the root, the root's box is the whole canvas and the root's children are
// tiled into it.
//
// # Transitions
//
//   - [Navigator.DrillIn] focuses a direct child of the current focus that has
//     children of its own. The child's children are tiled into its box and the
//     mapper is retargeted to that box.
//   - [Navigator.DrillOut] focuses the parent again. Nothing is re-tiled: the
//     parent's children still hold the boxes computed when the parent was
//     last focused, so the previous window is restored exactly.
//   - [Navigator.Reset] jumps straight back to the root.
//
// Requests that do not apply (a leaf, a node that is not a child of the
// focus, drilling out of the root) are ignored and reported through the ok
// result. They are not errors.
//
// Every committed transition yields a [Transition] carrying mapper snapshots
// from before and after the change, which is everything a renderer needs to
// animate between the two layers. Registered [FocusListener] values are told
// about each one.
//
// A Navigator is not safe for concurrent use.
package zoom
