package layout

import (
	"math"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
)

// Phi is the golden ratio, the default target aspect ratio for squarified rows.
var Phi = (1 + math.Sqrt(5)) / 2

// Tiler partitions rect among nodes, assigning each node's box in place.
// Nodes are expected in descending value order.
type Tiler func(nodes []*hierarchy.Node, rect hierarchy.Box)

// Tile lays out children inside rect using the squarified algorithm with the
// golden-ratio target. Only the immediate children are tiled; descendants keep
// whatever boxes they had.
func Tile(children []*hierarchy.Node, rect hierarchy.Box) {
	Squarify(Phi)(children, rect)
}

// Squarify returns a squarified Tiler targeting the given aspect ratio
// (values below 1 are treated as 1).
//
// Rows are built greedily from the front of the value-sorted input: a row
// keeps growing while its worst aspect ratio against the shorter side of the
// remaining rectangle does not get worse. A finished row is laid out along
// the shorter side and the algorithm continues in the rectangle left over.
// Each box's area is proportional to its node's value relative to the group
// total, and the boxes exactly cover rect.
func Squarify(ratio float64) Tiler {
	if ratio < 1 {
		ratio = 1
	}
	return func(nodes []*hierarchy.Node, rect hierarchy.Box) {
		squarify(nodes, rect, ratio)
	}
}

func squarify(nodes []*hierarchy.Node, rect hierarchy.Box, ratio float64) {
	value := sumValues(nodes)
	if value <= 0 || rect.Empty() {
		collapse(nodes, rect)
		return
	}

	x0, y0, x1, y1 := rect.X0, rect.Y0, rect.X1, rect.Y1
	n := len(nodes)

	for i0, i1 := 0, 0; i0 < n; i0 = i1 {
		dx, dy := x1-x0, y1-y0

		// Leading zero-value nodes join the next non-empty node's row.
		var sum float64
		for {
			sum = nodes[i1].Value
			i1++
			if sum > 0 || i1 >= n {
				break
			}
		}
		if sum <= 0 || dx <= 0 || dy <= 0 {
			Slice(nodes[i0:], hierarchy.Box{X0: x0, Y0: y0, X1: x1, Y1: y1})
			return
		}

		minValue, maxValue := sum, sum
		alpha := math.Max(dy/dx, dx/dy) / (value * ratio)
		beta := sum * sum * alpha
		minRatio := math.Max(maxValue/beta, beta/minValue)

		for ; i1 < n; i1++ {
			v := nodes[i1].Value
			grown := sum + v
			lo, hi := math.Min(minValue, v), math.Max(maxValue, v)
			beta = grown * grown * alpha
			newRatio := math.Max(hi/beta, beta/lo)
			if newRatio > minRatio {
				break
			}
			sum, minValue, maxValue, minRatio = grown, lo, hi, newRatio
		}

		row := nodes[i0:i1]
		last := i1 == n
		if dx < dy {
			y := y1
			if !last {
				y = y0 + dy*sum/value
			}
			Dice(row, hierarchy.Box{X0: x0, Y0: y0, X1: x1, Y1: y})
			y0 = y
		} else {
			x := x1
			if !last {
				x = x0 + dx*sum/value
			}
			Slice(row, hierarchy.Box{X0: x0, Y0: y0, X1: x, Y1: y1})
			x0 = x
		}
		value -= sum
	}
}

// Dice partitions rect horizontally: every node spans the full height and
// receives a width proportional to its value.
func Dice(nodes []*hierarchy.Node, rect hierarchy.Box) {
	total := sumValues(nodes)
	if total <= 0 {
		collapse(nodes, rect)
		return
	}
	k := rect.Width() / total
	x := rect.X0
	for i, c := range nodes {
		next := x + c.Value*k
		if i == len(nodes)-1 {
			next = rect.X1
		}
		c.SetBox(hierarchy.Box{X0: x, Y0: rect.Y0, X1: next, Y1: rect.Y1})
		x = next
	}
}

// Slice partitions rect vertically: every node spans the full width and
// receives a height proportional to its value.
func Slice(nodes []*hierarchy.Node, rect hierarchy.Box) {
	total := sumValues(nodes)
	if total <= 0 {
		collapse(nodes, rect)
		return
	}
	k := rect.Height() / total
	y := rect.Y0
	for i, c := range nodes {
		next := y + c.Value*k
		if i == len(nodes)-1 {
			next = rect.Y1
		}
		c.SetBox(hierarchy.Box{X0: rect.X0, Y0: y, X1: rect.X1, Y1: next})
		y = next
	}
}

// SliceDice alternates orientation by depth: odd depths slice, even depths
// dice.
func SliceDice(nodes []*hierarchy.Node, rect hierarchy.Box) {
	if len(nodes) == 0 {
		return
	}
	if nodes[0].Depth%2 == 1 {
		Slice(nodes, rect)
		return
	}
	Dice(nodes, rect)
}

// collapse gives every node a zero-area box at the rect's origin.
func collapse(nodes []*hierarchy.Node, rect hierarchy.Box) {
	for _, c := range nodes {
		c.SetBox(hierarchy.Box{X0: rect.X0, Y0: rect.Y0, X1: rect.X0, Y1: rect.Y0})
	}
}

func sumValues(nodes []*hierarchy.Node) float64 {
	var s float64
	for _, c := range nodes {
		s += c.Value
	}
	return s
}

// Tiling algorithm names accepted by [ByName].
const (
	TilingSquarify  = "squarify"
	TilingSliceDice = "slicedice"
	TilingSlice     = "slice"
	TilingDice      = "dice"
)

// ByName returns the tiler registered under name. The empty name selects
// squarify.
func ByName(name string) (Tiler, bool) {
	switch name {
	case "", TilingSquarify:
		return Tile, true
	case TilingSliceDice:
		return SliceDice, true
	case TilingSlice:
		return Slice, true
	case TilingDice:
		return Dice, true
	}
	return nil, false
}

// TilingNames lists the names accepted by [ByName].
func TilingNames() []string {
	return []string{TilingSquarify, TilingSliceDice, TilingSlice, TilingDice}
}
