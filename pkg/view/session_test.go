package view

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/selection"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func scenario() hierarchy.RawRecord {
	return hierarchy.Group("All",
		hierarchy.Leaf("A", 30),
		hierarchy.Group("B", hierarchy.Leaf("B1", 10), hierarchy.Leaf("B2", 60)),
	)
}

func newSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := New(Config{Width: 100, Height: 100}, WithClock(clock))
	if err := s.Load(scenario()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return s, clock
}

func TestInertBeforeLoad(t *testing.T) {
	s := New(Config{})
	if s.Click(nil) || s.ClickAt(10, 10) || s.Back() || s.Reset() {
		t.Error("events should be inert before Load")
	}
	if f := s.Frame(); len(f.Sprites) != 0 || f.Width != DefaultWidth || f.Height != DefaultHeight {
		t.Errorf("empty frame = %+v", f)
	}
	if s.Header() != "NYT Archive | All Sections" {
		t.Errorf("Header() = %q", s.Header())
	}
	if err := s.FocusPath("B"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("FocusPath before Load error = %v", err)
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	s := New(Config{})
	bad := hierarchy.Group("All", hierarchy.RawRecord{Name: "missing"})
	if err := s.Load(bad); !errors.IsDataError(err) {
		t.Fatalf("Load() error = %v, want INVALID_DATA", err)
	}
	if s.Loaded() || s.Root() != nil {
		t.Error("failed load should leave the session empty")
	}
}

func TestScenarioThroughClicks(t *testing.T) {
	s, clock := newSession(t)

	f := s.Frame()
	if len(f.Sprites) != 2 {
		t.Fatalf("initial frame has %d sprites", len(f.Sprites))
	}
	b, _ := s.Root().Find("B")
	bBox := b.Box()
	if math.Abs(bBox.Area()-7000) > 1e-9 {
		t.Fatalf("area(B) = %v", bBox.Area())
	}

	// Click in the middle of B.
	rect := f.Sprites[0].Rect
	if !s.ClickAt(rect.CenterX(), rect.CenterY()) {
		t.Fatal("ClickAt(B) ignored")
	}
	if s.State().Focus != b || s.State().Window != bBox {
		t.Errorf("focus = %s window = %+v", s.State().Focus.Name, s.State().Window)
	}
	if s.Header() != "Back to All Sections |  B" {
		t.Errorf("Header() = %q", s.Header())
	}
	if !s.Animating() {
		t.Error("drill-in should animate")
	}

	clock.Advance(DefaultDuration)
	f = s.Frame()
	if len(f.Sprites) != 2 || f.Sprites[0].Node.Name != "B2" {
		t.Fatalf("settled frame = %+v", f.Sprites)
	}
	ratio := f.Sprites[0].Node.Box().Area() / f.Sprites[1].Node.Box().Area()
	if math.Abs(ratio-6) > 1e-9 {
		t.Errorf("B2:B1 = %v, want 6", ratio)
	}

	// Leaves are not drill targets.
	if s.ClickAt(f.Sprites[0].Rect.CenterX(), f.Sprites[0].Rect.CenterY()) {
		t.Error("clicking a leaf should be ignored")
	}

	if !s.Back() {
		t.Fatal("Back() ignored")
	}
	if b.Box() != bBox || s.State().Window != (hierarchy.Box{X1: 100, Y1: 100}) {
		t.Error("back did not restore the root layout")
	}
	if s.Back() {
		t.Error("Back() at root should be ignored")
	}
}

func TestInterruptedClick(t *testing.T) {
	s, clock := newSession(t)
	b, _ := s.Root().Find("B")

	s.Click(b)
	clock.Advance(DefaultDuration / 3)
	s.Back()

	if !s.Animating() {
		t.Fatal("back during a transition should start a new one")
	}
	clock.Advance(DefaultDuration)
	f := s.Frame()
	if len(f.Sprites) != 2 || f.Sprites[0].Node != b {
		t.Errorf("after interrupt, sprites = %+v", f.Sprites)
	}
	for _, sp := range f.Sprites {
		if sp.Opacity != 1 {
			t.Errorf("%s opacity %v after settling", sp.Node.Name, sp.Opacity)
		}
	}
}

func TestResizeRebuilds(t *testing.T) {
	s, _ := newSession(t)
	oldRoot := s.Root()
	b, _ := oldRoot.Find("B")
	s.Click(b)

	if err := s.Resize(200, 50); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	if s.Root() == oldRoot {
		t.Error("Resize should rebuild the hierarchy")
	}
	if !s.State().Focus.IsRoot() {
		t.Error("Resize should drop zoom state")
	}
	if s.Animating() {
		t.Error("Resize should cancel animations")
	}
	if got := s.State().Window; got != (hierarchy.Box{X1: 200, Y1: 50}) {
		t.Errorf("window = %+v", got)
	}

	if err := s.Resize(0, 10); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("Resize(0, 10) error = %v", err)
	}
}

func TestFocusPathAndReset(t *testing.T) {
	s, clock := newSession(t)

	if err := s.FocusPath("B"); err != nil {
		t.Fatalf("FocusPath() error: %v", err)
	}
	if s.State().Focus.Name != "B" {
		t.Errorf("focus = %s", s.State().Focus.Name)
	}
	if err := s.FocusPath("Nope"); !errors.Is(err, errors.ErrCodeFocusNotFound) {
		t.Errorf("FocusPath(Nope) error = %v", err)
	}

	if !s.Reset() || !s.State().Focus.IsRoot() {
		t.Error("Reset() did not return to root")
	}
	s.Settle()
	if s.Animating() {
		t.Error("Settle() left an animation running")
	}
	clock.Advance(time.Second)
	if s.Reset() {
		t.Error("Reset() at root should be ignored")
	}
}

func TestAttachPublishesFocus(t *testing.T) {
	s, _ := newSession(t)
	c := selection.NewCoordinator()
	var focus []string
	_ = c.Register("header", selection.UpdaterFunc(func(st selection.State) { focus = append(focus, st.Focus) }))

	if err := s.Attach(c); err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
	b, _ := s.Root().Find("B")
	s.Click(b)
	s.Back()
	c.SelectKeyword("budget")

	want := []string{"All", "B", "All", "All"}
	if len(focus) != len(want) {
		t.Fatalf("focus notifications = %v, want %v", focus, want)
	}
	for i := range want {
		if focus[i] != want[i] {
			t.Errorf("focus[%d] = %q, want %q", i, focus[i], want[i])
		}
	}
	if err := s.Attach(c); err == nil {
		t.Error("second Attach should fail")
	}
}

func TestNestedSameNameNotifiesEachDrill(t *testing.T) {
	s := New(Config{Width: 100, Height: 100, Duration: -1})
	err := s.Load(hierarchy.Group("All",
		hierarchy.Group("World",
			hierarchy.Group("World", hierarchy.Leaf("Asia", 4), hierarchy.Leaf("Europe", 6)),
			hierarchy.Leaf("Africa", 2),
		),
		hierarchy.Leaf("Arts", 5),
	))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	c := selection.NewCoordinator()
	if err := s.Attach(c); err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
	var n int
	_ = c.Register("header", selection.UpdaterFunc(func(selection.State) { n++ }))

	outer, _ := s.Root().Find("World")
	if !s.Click(outer) {
		t.Fatal("drill into World failed")
	}
	inner, _ := s.Root().Find("World/World")
	if !s.Click(inner) {
		t.Fatal("drill into World/World failed")
	}

	if n != 2 {
		t.Errorf("focus notifications = %d, want 2", n)
	}
	if got := c.State().Focus; got != "World" {
		t.Errorf("Focus = %q, want World", got)
	}
}

func TestHeader(t *testing.T) {
	root, _ := hierarchy.Build(scenario())
	b, _ := root.Find("B")
	if got := Header("NYT Archive", root); got != "NYT Archive | All Sections" {
		t.Errorf("Header(root) = %q", got)
	}
	if got := Header("NYT Archive", b); got != "Back to All Sections |  B" {
		t.Errorf("Header(B) = %q", got)
	}
}
