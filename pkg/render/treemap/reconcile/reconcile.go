package reconcile

import (
	"time"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/render/treemap/layout"
	"github.com/matzehuels/treezoom/pkg/render/treemap/scale"
)

// DefaultDuration is the length of every zoom animation.
const DefaultDuration = 750 * time.Millisecond

// Phase is a visual node's role in the current transition.
type Phase int

const (
	Persisting Phase = iota
	Entering
	Exiting
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Exiting:
		return "exiting"
	default:
		return "persisting"
	}
}

// VisualNode is the rendering counterpart of a hierarchy node.
type VisualNode struct {
	Node    *hierarchy.Node
	Phase   Phase
	Rect    layout.Block // last rendered pixel rectangle
	Opacity float64      // last rendered opacity

	from, to       layout.Block
	fromOpa, toOpa float64
	start          time.Time
	animating      bool
}

// Diff is the keyed three-way partition of one reconciliation.
type Diff struct {
	Entering   []*hierarchy.Node
	Persisting []*VisualNode
	Exiting    []*VisualNode
}

// Partition splits prev and next by node identity. Entering and Persisting
// follow the order of next; Exiting follows the order of prev.
func Partition(prev []*VisualNode, next []*hierarchy.Node) Diff {
	byNode := make(map[*hierarchy.Node]*VisualNode, len(prev))
	for _, v := range prev {
		byNode[v.Node] = v
	}

	var d Diff
	keep := make(map[*hierarchy.Node]bool, len(next))
	for _, n := range next {
		keep[n] = true
		if v, ok := byNode[n]; ok {
			d.Persisting = append(d.Persisting, v)
		} else {
			d.Entering = append(d.Entering, n)
		}
	}
	for _, v := range prev {
		if !keep[v.Node] {
			d.Exiting = append(d.Exiting, v)
		}
	}
	return d
}

// Sprite is one node's interpolated state in a frame.
type Sprite struct {
	Node    *hierarchy.Node
	Rect    layout.Block
	Opacity float64
	Phase   Phase
}

// Option configures a [Reconciler].
type Option func(*Reconciler)

// WithDuration overrides [DefaultDuration]. Non-positive durations make
// transitions complete immediately.
func WithDuration(d time.Duration) Option {
	return func(r *Reconciler) { r.duration = d }
}

// WithEasing overrides the cubic in-out easing curve.
func WithEasing(ease func(float64) float64) Option {
	return func(r *Reconciler) {
		if ease != nil {
			r.ease = ease
		}
	}
}

// Reconciler holds the visual nodes between frames. It is not safe for
// concurrent use.
type Reconciler struct {
	nodes    []*VisualNode
	duration time.Duration
	ease     func(float64) float64
}

// New returns an empty reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{duration: DefaultDuration, ease: CubicInOut}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Duration returns the transition length.
func (r *Reconciler) Duration() time.Duration { return r.duration }

// Nodes returns the visual nodes in paint order.
func (r *Reconciler) Nodes() []*VisualNode { return r.nodes }

// Place replaces every visual node with a settled node per entry of nodes,
// positioned under mapper. Any running transition is discarded.
func (r *Reconciler) Place(nodes []*hierarchy.Node, mapper *scale.Mapper) {
	r.nodes = make([]*VisualNode, len(nodes))
	for i, n := range nodes {
		rect := mapper.Rect(n.Box())
		r.nodes[i] = &VisualNode{
			Node:    n,
			Phase:   Persisting,
			Rect:    rect,
			Opacity: 1,
			from:    rect,
			to:      rect,
			fromOpa: 1,
			toOpa:   1,
		}
	}
}

// Transition starts animating from the current display to next under the
// after mapper. before is the mapper the previous layer was drawn with.
func (r *Reconciler) Transition(next []*hierarchy.Node, before, after scale.Mapper, now time.Time) Diff {
	// Freeze every node at its current interpolated state first.
	for _, v := range r.nodes {
		v.Rect, v.Opacity = r.sample(v, now)
	}

	d := Partition(r.nodes, next)
	out := make([]*VisualNode, 0, len(d.Exiting)+len(next))

	for _, v := range d.Exiting {
		r.retarget(v, Exiting, after.Rect(v.Node.Box()), 0, now)
		out = append(out, v)
	}

	persisting := make(map[*hierarchy.Node]*VisualNode, len(d.Persisting))
	for _, v := range d.Persisting {
		persisting[v.Node] = v
	}
	for _, n := range next {
		v, ok := persisting[n]
		if !ok {
			from := before.Rect(n.Box())
			v = &VisualNode{Node: n, Rect: from, Opacity: 0}
			r.retarget(v, Entering, after.Rect(n.Box()), 1, now)
		} else {
			r.retarget(v, Persisting, after.Rect(n.Box()), 1, now)
		}
		out = append(out, v)
	}

	r.nodes = out
	return d
}

func (r *Reconciler) retarget(v *VisualNode, phase Phase, to layout.Block, opacity float64, now time.Time) {
	v.Phase = phase
	v.from, v.fromOpa = v.Rect, v.Opacity
	v.to, v.toOpa = to, opacity
	v.start = now
	v.animating = true
}

// progress returns the eased progress of v at now and whether it is done.
func (r *Reconciler) progress(v *VisualNode, now time.Time) (float64, bool) {
	if !v.animating {
		return 1, true
	}
	if r.duration <= 0 {
		return 1, true
	}
	raw := float64(now.Sub(v.start)) / float64(r.duration)
	switch {
	case raw <= 0:
		return 0, false
	case raw >= 1:
		return 1, true
	}
	return r.ease(raw), false
}

func (r *Reconciler) sample(v *VisualNode, now time.Time) (layout.Block, float64) {
	t, done := r.progress(v, now)
	if done {
		return v.to, v.toOpa
	}
	return v.from.Lerp(v.to, t), v.fromOpa + (v.toOpa-v.fromOpa)*t
}

// Frame advances every node to now and returns the sprites to paint, exiting
// nodes first. Exiting nodes whose animation has finished are dropped and
// finished entering nodes become persisting.
func (r *Reconciler) Frame(now time.Time) []Sprite {
	sprites := make([]Sprite, 0, len(r.nodes))
	kept := r.nodes[:0]
	for _, v := range r.nodes {
		_, done := r.progress(v, now)
		v.Rect, v.Opacity = r.sample(v, now)
		if done {
			v.animating = false
			if v.Phase == Exiting {
				continue
			}
			v.Phase = Persisting
		}
		kept = append(kept, v)
		sprites = append(sprites, Sprite{Node: v.Node, Rect: v.Rect, Opacity: v.Opacity, Phase: v.Phase})
	}
	clear(r.nodes[len(kept):])
	r.nodes = kept
	return sprites
}

// Active reports whether any node is still animating at now.
func (r *Reconciler) Active(now time.Time) bool {
	for _, v := range r.nodes {
		if _, done := r.progress(v, now); !done {
			return true
		}
	}
	return false
}

// Cancel ends the running transition: exiting nodes are dropped and every
// other node is settled at its target.
func (r *Reconciler) Cancel() {
	kept := r.nodes[:0]
	for _, v := range r.nodes {
		if v.Phase == Exiting {
			continue
		}
		v.Rect, v.Opacity = v.to, v.toOpa
		v.from, v.fromOpa = v.to, v.toOpa
		v.Phase = Persisting
		v.animating = false
		kept = append(kept, v)
	}
	clear(r.nodes[len(kept):])
	r.nodes = kept
}

// HitTest returns the topmost non-exiting node whose last rendered rectangle
// contains the pixel and has positive area.
func (r *Reconciler) HitTest(px, py float64) (*hierarchy.Node, bool) {
	for i := len(r.nodes) - 1; i >= 0; i-- {
		v := r.nodes[i]
		if v.Phase == Exiting || v.Rect.Area() <= 0 {
			continue
		}
		if v.Rect.Contains(px, py) {
			return v.Node, true
		}
	}
	return nil, false
}
