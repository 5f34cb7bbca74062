// Package styles defines how treemap cells are painted.
//
// A [Style] writes SVG for one [Cell] at a time. [Tol] reproduces the
// archive explorer look: the 21-color Paul Tol palette keyed by section,
// white 1px strokes, white labels and a lighter fill for "Others" buckets.
// [Plain] is a monochrome outline style for print.
//
// Colors come from an [Ordinal] scale, which hands out palette entries in
// first-seen order and remembers them, so a section keeps its color across
// zoom levels.
package styles
