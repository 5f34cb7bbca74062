package reconcile

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/render/treemap/scale"
	"github.com/matzehuels/treezoom/pkg/render/treemap/zoom"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*hierarchy.Node, *zoom.Navigator) {
	t.Helper()
	root, err := hierarchy.Build(hierarchy.Group("All",
		hierarchy.Leaf("A", 30),
		hierarchy.Group("B", hierarchy.Leaf("B1", 10), hierarchy.Leaf("B2", 60)),
	))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return root, zoom.New(root, scale.NewMapper(100, 100))
}

func node(t *testing.T, root *hierarchy.Node, path string) *hierarchy.Node {
	t.Helper()
	n, ok := root.Find(path)
	if !ok {
		t.Fatalf("Find(%q) failed", path)
	}
	return n
}

func TestPartition(t *testing.T) {
	a, b, c := &hierarchy.Node{Name: "a"}, &hierarchy.Node{Name: "b"}, &hierarchy.Node{Name: "c"}
	prev := []*VisualNode{{Node: a}, {Node: b}}

	d := Partition(prev, []*hierarchy.Node{c, b})
	if len(d.Entering) != 1 || d.Entering[0] != c {
		t.Errorf("Entering = %v, want [c]", d.Entering)
	}
	if len(d.Persisting) != 1 || d.Persisting[0] != prev[1] {
		t.Errorf("Persisting = %v, want [b]", d.Persisting)
	}
	if len(d.Exiting) != 1 || d.Exiting[0] != prev[0] {
		t.Errorf("Exiting = %v, want [a]", d.Exiting)
	}
}

func TestPartitionIgnoresOrder(t *testing.T) {
	a, b := &hierarchy.Node{Name: "a"}, &hierarchy.Node{Name: "b"}
	prev := []*VisualNode{{Node: a}, {Node: b}}

	d := Partition(prev, []*hierarchy.Node{b, a})
	if len(d.Entering) != 0 || len(d.Exiting) != 0 {
		t.Fatalf("reorder produced churn: %+v", d)
	}
	if d.Persisting[0] != prev[1] || d.Persisting[1] != prev[0] {
		t.Error("Persisting should follow next order")
	}
}

func TestPartitionSameName(t *testing.T) {
	x1, x2 := &hierarchy.Node{Name: "x"}, &hierarchy.Node{Name: "x"}
	d := Partition([]*VisualNode{{Node: x1}}, []*hierarchy.Node{x2})
	if len(d.Entering) != 1 || len(d.Exiting) != 1 {
		t.Errorf("nodes with equal names must not match: %+v", d)
	}
}

func TestPlace(t *testing.T) {
	root, nav := setup(t)
	r := New()
	r.Place(nav.Visible(), nav.Mapper())

	sprites := r.Frame(t0)
	if len(sprites) != 2 {
		t.Fatalf("Frame() = %d sprites, want 2", len(sprites))
	}
	b := node(t, root, "B")
	if sprites[0].Node != b || sprites[0].Rect != nav.Mapper().Rect(b.Box()) || sprites[0].Opacity != 1 {
		t.Errorf("sprite[0] = %+v", sprites[0])
	}
	if r.Active(t0) {
		t.Error("placed nodes should not be animating")
	}
}

func TestDrillInTransition(t *testing.T) {
	root, nav := setup(t)
	r := New()
	r.Place(nav.Visible(), nav.Mapper())

	b := node(t, root, "B")
	bPixels := nav.Mapper().Rect(b.Box())
	tr, ok := nav.DrillIn(b)
	if !ok {
		t.Fatal("DrillIn(B) ignored")
	}
	d := r.Transition(nav.Visible(), tr.Before, tr.After, t0)
	if len(d.Entering) != 2 || len(d.Exiting) != 2 || len(d.Persisting) != 0 {
		t.Fatalf("diff = %d/%d/%d, want 2 entering, 2 exiting", len(d.Entering), len(d.Persisting), len(d.Exiting))
	}

	start := r.Frame(t0)
	if start[0].Phase != Exiting || start[1].Phase != Exiting {
		t.Error("exiting nodes should paint first")
	}
	for _, s := range start[2:] {
		if s.Phase != Entering || s.Opacity != 0 {
			t.Errorf("%s: phase %v opacity %v at start", s.Node.Name, s.Phase, s.Opacity)
		}
		if s.Rect.Left < bPixels.Left || s.Rect.Right > bPixels.Right ||
			s.Rect.Top < bPixels.Top || s.Rect.Bottom > bPixels.Bottom {
			t.Errorf("%s starts at %+v, outside clicked rect %+v", s.Node.Name, s.Rect, bPixels)
		}
	}
	if !r.Active(t0.Add(r.Duration() / 2)) {
		t.Error("transition should be active midway")
	}

	end := r.Frame(t0.Add(r.Duration()))
	if len(end) != 2 {
		t.Fatalf("Frame(end) = %d sprites, want 2 (exiting dropped)", len(end))
	}
	for _, s := range end {
		if s.Phase != Persisting || s.Opacity != 1 {
			t.Errorf("%s: phase %v opacity %v at end", s.Node.Name, s.Phase, s.Opacity)
		}
		if want := tr.After.Rect(s.Node.Box()); s.Rect != want {
			t.Errorf("%s at %+v, want %+v", s.Node.Name, s.Rect, want)
		}
	}
	if r.Active(t0.Add(r.Duration())) {
		t.Error("transition should be finished")
	}
}

func TestExitingMovesUnderNewWindow(t *testing.T) {
	root, nav := setup(t)
	r := New(WithEasing(Linear))
	r.Place(nav.Visible(), nav.Mapper())

	a := node(t, root, "A")
	tr, _ := nav.DrillIn(node(t, root, "B"))
	r.Transition(nav.Visible(), tr.Before, tr.After, t0)

	var got Sprite
	for _, s := range r.Frame(t0.Add(r.Duration() - time.Millisecond)) {
		if s.Node == a {
			got = s
		}
	}
	want := tr.After.Rect(a.Box())
	if math.Abs(got.Rect.Top-want.Top) > 1 || got.Opacity > 0.01 {
		t.Errorf("A near end = %+v opacity %v, want near %+v fading out", got.Rect, got.Opacity, want)
	}
}

func TestInterruptRestartsFromCurrentState(t *testing.T) {
	root, nav := setup(t)
	r := New(WithEasing(Linear))
	r.Place(nav.Visible(), nav.Mapper())

	tr, _ := nav.DrillIn(node(t, root, "B"))
	r.Transition(nav.Visible(), tr.Before, tr.After, t0)

	mid := t0.Add(r.Duration() / 2)
	var b2Mid Sprite
	for _, s := range r.Frame(mid) {
		if s.Node.Name == "B2" {
			b2Mid = s
		}
	}

	back, _ := nav.DrillOut()
	d := r.Transition(nav.Visible(), back.Before, back.After, mid)

	// A and B were exiting and come back; B1 and B2 now exit.
	if len(d.Persisting) != 2 || len(d.Exiting) != 2 || len(d.Entering) != 0 {
		t.Fatalf("diff = %d/%d/%d", len(d.Entering), len(d.Persisting), len(d.Exiting))
	}
	for _, s := range r.Frame(mid) {
		if s.Node.Name == "B2" && (s.Rect != b2Mid.Rect || s.Opacity != b2Mid.Opacity) {
			t.Errorf("B2 jumped from %+v to %+v on interrupt", b2Mid.Rect, s.Rect)
		}
	}

	end := r.Frame(mid.Add(r.Duration()))
	if len(end) != 2 {
		t.Fatalf("end frame has %d sprites, want 2", len(end))
	}
	for _, s := range end {
		if s.Rect != nav.Mapper().Rect(s.Node.Box()) || s.Opacity != 1 {
			t.Errorf("%s settled at %+v opacity %v", s.Node.Name, s.Rect, s.Opacity)
		}
	}
}

func TestCancel(t *testing.T) {
	root, nav := setup(t)
	r := New()
	r.Place(nav.Visible(), nav.Mapper())
	tr, _ := nav.DrillIn(node(t, root, "B"))
	r.Transition(nav.Visible(), tr.Before, tr.After, t0)

	r.Cancel()
	if r.Active(t0) {
		t.Error("Active() after Cancel")
	}
	sprites := r.Frame(t0)
	if len(sprites) != 2 {
		t.Fatalf("Frame() after Cancel = %d sprites, want 2", len(sprites))
	}
	for _, s := range sprites {
		if s.Rect != tr.After.Rect(s.Node.Box()) {
			t.Errorf("%s not settled at target", s.Node.Name)
		}
	}
}

func TestHitTest(t *testing.T) {
	root, nav := setup(t)
	r := New()
	r.Place(nav.Visible(), nav.Mapper())

	b := node(t, root, "B")
	rect := nav.Mapper().Rect(b.Box())
	if got, ok := r.HitTest(rect.CenterX(), rect.CenterY()); !ok || got != b {
		t.Errorf("HitTest(center of B) = %v, %v", got, ok)
	}
	if _, ok := r.HitTest(-1, -1); ok {
		t.Error("HitTest outside canvas should miss")
	}

	tr, _ := nav.DrillIn(b)
	r.Transition(nav.Visible(), tr.Before, tr.After, t0)
	r.Frame(t0)
	// Exiting nodes never take clicks; entering ones start collapsed inside B.
	if got, ok := r.HitTest(rect.Left+1, rect.Top+1); ok && got.Parent != b {
		t.Errorf("HitTest hit exiting node %s", got.Name)
	}
}

func TestHitTestSkipsZeroArea(t *testing.T) {
	r := New()
	n := &hierarchy.Node{Name: "z"}
	n.SetBox(hierarchy.Box{X0: 5, Y0: 5, X1: 5, Y1: 5})
	r.Place([]*hierarchy.Node{n}, scale.NewMapper(10, 10))
	if _, ok := r.HitTest(5, 5); ok {
		t.Error("zero-area node should be unreachable")
	}
}

func TestZeroDuration(t *testing.T) {
	root, nav := setup(t)
	r := New(WithDuration(0))
	r.Place(nav.Visible(), nav.Mapper())
	tr, _ := nav.DrillIn(node(t, root, "B"))
	r.Transition(nav.Visible(), tr.Before, tr.After, t0)

	if r.Active(t0) {
		t.Error("zero-duration transition should finish immediately")
	}
	if got := len(r.Frame(t0)); got != 2 {
		t.Errorf("Frame() = %d sprites, want 2", got)
	}
}

func TestCubicInOut(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
	}
	for _, tt := range tests {
		if got := CubicInOut(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("CubicInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Entering.String() != "entering" || Exiting.String() != "exiting" || Persisting.String() != "persisting" {
		t.Error("unexpected Phase strings")
	}
}
