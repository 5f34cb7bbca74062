// Package reconcile maps a changing set of hierarchy nodes onto persistent
// visual elements and animates between layouts.
//
// # Partition
//
// [Partition] compares the previously displayed [VisualNode] values with the
// next node set, keyed by *hierarchy.Node identity, and splits them into
// entering, persisting and exiting groups. Array position plays no part, so
// reordering never causes churn.
//
// # Animation
//
// A [Reconciler] keeps the visual nodes between frames. [Reconciler.Transition]
// starts one shared, fixed-duration animation for all three groups:
//
//   - entering nodes start where their box falls under the previous mapper
//     (inside the clicked rectangle on a drill-in) and fade in;
//   - persisting nodes move from wherever they currently are;
//   - exiting nodes move to where their box falls under the new mapper, fade
//     out and are dropped once the animation completes.
//
// Starting a transition while another is running restarts every node from
// its current interpolated state. Time is always passed in by the caller, so
// the reconciler never reads the wall clock.
//
// [Reconciler.Frame] returns [Sprite] values in paint order (exiting nodes
// first, underneath the new layer).
package reconcile
