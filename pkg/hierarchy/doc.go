// Package hierarchy builds weighted category trees for treemap layout.
//
// # Overview
//
// A dataset arrives as a nested [RawRecord]: every record has a name, leaves
// carry a numeric value and internal records carry children. [Build] turns
// that record into a tree of [Node] values with aggregated subtree totals:
//
//	raw, err := hierarchy.ImportJSON("data/treedata.json")
//	if err != nil {
//	    return err // INVALID_DATA: fatal for the view
//	}
//	root, err := hierarchy.Build(raw)
//
// # Invariants
//
// For every internal node, Value equals the sum of its children's values.
// Values are computed once, bottom-up, and never change afterwards. Children
// are sorted by descending value; equal values keep their input order.
//
// Each node also carries a mutable bounding box in logical domain units. The
// box is assigned by the tiling engine and is recomputed in place whenever the
// node's sibling group is tiled again.
package hierarchy
