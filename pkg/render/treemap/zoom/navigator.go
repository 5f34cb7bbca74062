package zoom

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/observability"
	"github.com/matzehuels/treezoom/pkg/render/treemap/layout"
	"github.com/matzehuels/treezoom/pkg/render/treemap/scale"
)

// Kind identifies a navigation transition.
type Kind int

const (
	DrillIn Kind = iota + 1
	DrillOut
	Reset
)

func (k Kind) String() string {
	switch k {
	case DrillIn:
		return "drill-in"
	case DrillOut:
		return "drill-out"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// ViewState is a snapshot of the navigator's state.
type ViewState struct {
	Focus  *hierarchy.Node
	Window hierarchy.Box
}

// Transition describes one committed focus change. Before and After are
// mapper snapshots taken on either side of the retarget.
type Transition struct {
	Kind   Kind
	From   *hierarchy.Node
	To     *hierarchy.Node
	Before scale.Mapper
	After  scale.Mapper
}

// FocusListener is notified after every committed transition.
type FocusListener interface {
	FocusChanged(t Transition)
}

// FocusListenerFunc adapts a function to [FocusListener].
type FocusListenerFunc func(t Transition)

// FocusChanged calls f(t).
func (f FocusListenerFunc) FocusChanged(t Transition) { f(t) }

// Option configures a [Navigator].
type Option func(*Navigator)

// WithTiler replaces the default squarified tiler.
func WithTiler(t layout.Tiler) Option {
	return func(n *Navigator) {
		if t != nil {
			n.tile = t
		}
	}
}

// WithLogger sets the logger used for debug output about transitions.
func WithLogger(l *log.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithListener registers a focus listener at construction.
func WithListener(l FocusListener) Option {
	return func(n *Navigator) { n.Subscribe(l) }
}

// Navigator tracks the focused node and drives tiling and mapper retargeting.
type Navigator struct {
	root      *hierarchy.Node
	mapper    *scale.Mapper
	state     ViewState
	tile      layout.Tiler
	logger    *log.Logger
	listeners []FocusListener
}

// New creates a navigator focused on root. The root's box is set to the
// mapper's canvas and the root's children are tiled into it; the mapper is
// retargeted to the canvas.
func New(root *hierarchy.Node, mapper *scale.Mapper, opts ...Option) *Navigator {
	n := &Navigator{
		root:   root,
		mapper: mapper,
		tile:   layout.Tile,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(n)
	}

	canvas := mapper.Canvas()
	root.SetBox(canvas)
	n.tile(root.Children, canvas)
	mapper.Retarget(canvas)
	n.state = ViewState{Focus: root, Window: canvas}
	return n
}

// Subscribe registers a listener. Nil listeners are ignored.
func (n *Navigator) Subscribe(l FocusListener) {
	if l != nil {
		n.listeners = append(n.listeners, l)
	}
}

// State returns a snapshot of the current state.
func (n *Navigator) State() ViewState { return n.state }

// Focus returns the focused node.
func (n *Navigator) Focus() *hierarchy.Node { return n.state.Focus }

// Root returns the hierarchy root.
func (n *Navigator) Root() *hierarchy.Node { return n.root }

// Mapper returns the live mapper. Callers must not retarget it.
func (n *Navigator) Mapper() *scale.Mapper { return n.mapper }

// Visible returns the nodes rendered for the current focus: its children.
func (n *Navigator) Visible() []*hierarchy.Node { return n.state.Focus.Children }

// CanDrillIn reports whether d is a valid drill-in target from the current
// focus.
func (n *Navigator) CanDrillIn(d *hierarchy.Node) bool {
	return d != nil &&
		d.Parent == n.state.Focus &&
		d.HasChildren() &&
		!d.Box().Empty()
}

// DrillIn focuses d. It reports false and changes nothing unless d is a
// direct child of the focus with children and a positive-area box.
func (n *Navigator) DrillIn(d *hierarchy.Node) (Transition, bool) {
	if !n.CanDrillIn(d) {
		n.ignored(DrillIn, d)
		return Transition{}, false
	}
	n.tile(d.Children, d.Box())
	return n.commit(DrillIn, d), true
}

// DrillOut focuses the parent of the current focus without re-tiling. At the
// root it reports false and changes nothing.
func (n *Navigator) DrillOut() (Transition, bool) {
	focus := n.state.Focus
	if focus.IsRoot() {
		n.ignored(DrillOut, focus)
		return Transition{}, false
	}
	return n.commit(DrillOut, focus.Parent), true
}

// Reset focuses the root directly. It reports false if the root is already
// focused.
func (n *Navigator) Reset() (Transition, bool) {
	if n.state.Focus == n.root {
		n.ignored(Reset, n.root)
		return Transition{}, false
	}
	return n.commit(Reset, n.root), true
}

// DrillTo focuses the node at path (slash-separated names below the root,
// "" for the root) by resetting and then drilling in one level at a time.
// Unlike the single-step operations, an unreachable target is an error.
func (n *Navigator) DrillTo(path string) ([]Transition, error) {
	if err := errors.ValidateFocusPath(path); err != nil {
		return nil, err
	}
	target, ok := n.root.Find(path)
	if !ok {
		return nil, errors.New(errors.ErrCodeFocusNotFound, "no node at focus path %q", path)
	}
	if target == n.state.Focus {
		return nil, nil
	}
	if target != n.root && !target.HasChildren() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "focus path %q names a leaf", path)
	}

	// Drill path from the root's child down to the target.
	steps := make([]*hierarchy.Node, target.Depth)
	for p := target; !p.IsRoot(); p = p.Parent {
		steps[p.Depth-1] = p
	}

	var out []Transition
	if n.state.Focus != n.root {
		t, _ := n.Reset()
		out = append(out, t)
	}
	for _, step := range steps {
		t, ok := n.DrillIn(step)
		if !ok {
			return out, errors.New(errors.ErrCodeInvalidPath, "cannot zoom into %q: no area", step.Path())
		}
		out = append(out, t)
	}
	return out, nil
}

func (n *Navigator) commit(kind Kind, to *hierarchy.Node) Transition {
	from := n.state.Focus
	before := *n.mapper

	window := to.Box()
	n.mapper.Retarget(window)
	n.state = ViewState{Focus: to, Window: window}

	t := Transition{Kind: kind, From: from, To: to, Before: before, After: *n.mapper}
	n.logger.Debug("focus changed", "kind", kind, "from", label(from), "to", label(to))
	observability.Navigation().OnFocusChange(kind.String(), from.Path(), to.Path())
	for _, l := range n.listeners {
		l.FocusChanged(t)
	}
	return t
}

func (n *Navigator) ignored(kind Kind, target *hierarchy.Node) {
	name := ""
	if target != nil {
		name = target.Path()
	}
	n.logger.Debug("transition ignored", "kind", kind, "target", name, "focus", label(n.state.Focus))
	observability.Navigation().OnTransitionIgnored(kind.String(), name)
}

func label(n *hierarchy.Node) string {
	if n == nil {
		return ""
	}
	if n.IsRoot() {
		return n.Name + " (root)"
	}
	return n.Path()
}
