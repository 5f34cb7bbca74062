package hierarchy

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/treezoom/pkg/errors"
)

// valueTolerance is the relative slack allowed by Verify when comparing a
// parent's value with the sum of its children.
const valueTolerance = 1e-9

// Build constructs a hierarchy from raw.
//
// Leaves take their value from the record; internal nodes take the sum of
// their children. Children are sorted by descending value, ties keeping
// input order. Build fails with an INVALID_DATA error when a childless
// record has no value or when any value is negative or not finite.
//
// Build is pure: the same input always yields an identical tree, and raw is
// not modified.
func Build(raw RawRecord) (*Node, error) {
	return build(raw, nil, 0, nil)
}

func build(raw RawRecord, parent *Node, depth int, trail []string) (*Node, error) {
	trail = append(trail, raw.Name)
	n := &Node{Name: raw.Name, Depth: depth, Parent: parent}

	if len(raw.Children) == 0 {
		if raw.Value == nil {
			return nil, errors.New(errors.ErrCodeInvalidData, "record %q: leaf has no value", recordPath(trail))
		}
		v := *raw.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidData, "record %q: value is not finite", recordPath(trail))
		}
		if v < 0 {
			return nil, errors.New(errors.ErrCodeInvalidData, "record %q: negative value %g", recordPath(trail), v)
		}
		n.Value = v
		return n, nil
	}

	n.Children = make([]*Node, 0, len(raw.Children))
	for _, rc := range raw.Children {
		c, err := build(rc, n, depth+1, trail)
		if err != nil {
			return nil, err
		}
		n.Value += c.Value
		n.Children = append(n.Children, c)
	}

	slices.SortStableFunc(n.Children, func(a, b *Node) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return n, nil
}

func recordPath(trail []string) string {
	return strings.Join(trail, "/")
}

// Verify checks the structural invariants of a built tree: each internal
// value equals the sum of its children, depths increase by one, parent links
// point back, and children are sorted by descending value.
func Verify(root *Node) error {
	var err error
	root.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}
		if !n.HasChildren() {
			return true
		}
		var sum float64
		for i, c := range n.Children {
			if c.Parent != n {
				err = errors.New(errors.ErrCodeInternal, "node %q: broken parent link", c.Path())
				return false
			}
			if c.Depth != n.Depth+1 {
				err = errors.New(errors.ErrCodeInternal, "node %q: depth %d under parent depth %d", c.Path(), c.Depth, n.Depth)
				return false
			}
			if i > 0 && n.Children[i-1].Value < c.Value {
				err = errors.New(errors.ErrCodeInternal, "node %q: children not sorted by value", n.Path())
				return false
			}
			sum += c.Value
		}
		if math.Abs(sum-n.Value) > valueTolerance*math.Max(1, math.Abs(sum)) {
			err = errors.New(errors.ErrCodeInternal, "node %q: value %g != children sum %g", n.Path(), n.Value, sum)
			return false
		}
		return true
	})
	return err
}
