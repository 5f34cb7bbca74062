package hierarchy

import (
	"strings"
)

// RawRecord is the externally supplied nested dataset record.
//
// Leaf records must carry Value. Internal records derive their value from
// their children; a Value set on an internal record is ignored.
type RawRecord struct {
	Name     string      `json:"name" bson:"name"`
	Value    *float64    `json:"value,omitempty" bson:"value,omitempty"`
	Children []RawRecord `json:"children,omitempty" bson:"children,omitempty"`
}

// Leaf returns a leaf record with the given value.
func Leaf(name string, value float64) RawRecord {
	return RawRecord{Name: name, Value: &value}
}

// Group returns an internal record with the given children.
func Group(name string, children ...RawRecord) RawRecord {
	return RawRecord{Name: name, Children: children}
}

// Box is an axis-aligned rectangle in logical domain units.
type Box struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Area returns Width*Height.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Empty reports whether the box has no positive area.
func (b Box) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Contains reports whether (x, y) lies inside the half-open box [X0,X1)×[Y0,Y1).
func (b Box) Contains(x, y float64) bool {
	return x >= b.X0 && x < b.X1 && y >= b.Y0 && y < b.Y1
}

// Node is one category in the built hierarchy.
type Node struct {
	Name     string
	Value    float64
	Depth    int
	Children []*Node
	Parent   *Node

	box   Box
	tiled bool
}

// Box returns the node's bounding box. It is the zero Box until the node's
// sibling group has been tiled.
func (n *Node) Box() Box { return n.box }

// SetBox assigns the node's bounding box in place.
func (n *Node) SetBox(b Box) {
	n.box = b
	n.tiled = true
}

// Tiled reports whether a box has been assigned.
func (n *Node) Tiled() bool { return n.tiled }

// HasChildren reports whether the node is internal.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == nil }

// Root returns the top of the tree containing n.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Ancestors returns the chain from n's parent up to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Section returns the depth-1 ancestor of n (or n itself at depth 1).
// The root returns itself.
func (n *Node) Section() *Node {
	if n.Parent == nil {
		return n
	}
	for n.Depth > 1 {
		n = n.Parent
	}
	return n
}

// Path returns the slash-joined names from below the root down to n.
// The root's path is the empty string.
func (n *Node) Path() string {
	if n.Parent == nil {
		return ""
	}
	names := make([]string, n.Depth)
	for p := n; p.Parent != nil; p = p.Parent {
		names[p.Depth-1] = p.Name
	}
	return strings.Join(names, "/")
}

// Find resolves a slash-separated path relative to n. Names are matched
// against children in sorted order; the first match wins.
func (n *Node) Find(path string) (*Node, bool) {
	if path == "" {
		return n, true
	}
	cur := n
	for _, seg := range strings.Split(path, "/") {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool { count++; return true })
	return count
}

// Leaves returns the leaf descendants of n in pre-order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if !c.HasChildren() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Height returns the maximum distance from n down to a leaf.
func (n *Node) Height() int {
	h := 0
	for _, c := range n.Children {
		h = max(h, c.Height()+1)
	}
	return h
}
