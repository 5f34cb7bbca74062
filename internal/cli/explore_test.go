package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/render/treemap/layout"
	"github.com/matzehuels/treezoom/pkg/render/treemap/reconcile"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
	"github.com/matzehuels/treezoom/pkg/source"
	"github.com/matzehuels/treezoom/pkg/view"
)

func newTestExplore(t *testing.T, focus string) *exploreModel {
	t.Helper()
	raw, err := source.Decode([]byte(testDataset))
	if err != nil {
		t.Fatal(err)
	}
	v := view.New(view.Config{Duration: -1, Title: "Test"})
	if err := v.Load(raw); err != nil {
		t.Fatal(err)
	}
	m := newExploreModel(v, focus)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return m
}

func focusName(m *exploreModel) string {
	return m.view.State().Focus.Name
}

func TestExploreResizeAndView(t *testing.T) {
	m := newTestExplore(t, "")

	if got := m.view.Config().Width; got != 40 {
		t.Errorf("canvas width = %v, want 40", got)
	}
	if got := m.view.Config().Height; got != 10 {
		t.Errorf("canvas height = %v, want 10", got)
	}

	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Errorf("view has %d lines, want 12", len(lines))
	}
	if !strings.Contains(lines[0], "Test | All Sections") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(out, "A") || !strings.Contains(out, "B") {
		t.Error("view should label both top-level cells")
	}
}

func TestExploreStartFocus(t *testing.T) {
	m := newTestExplore(t, "B")
	if got := focusName(m); got != "B" {
		t.Errorf("focus = %q, want B", got)
	}
	if !strings.Contains(m.View(), "B2") {
		t.Error("zoomed view should show B2")
	}
}

func TestExploreClickAndBack(t *testing.T) {
	m := newTestExplore(t, "")
	m.View()

	// B (70%) fills the left of a 40x10 canvas; row 1 is the canvas top.
	m.Update(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := focusName(m); got != "B" {
		t.Fatalf("focus after click = %q, want B", got)
	}

	m.View()
	m.Update(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := focusName(m); got != "B" {
		t.Errorf("clicking a leaf changed focus to %q", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := focusName(m); got != "All" {
		t.Errorf("focus after esc = %q, want All", got)
	}
}

func TestExploreReset(t *testing.T) {
	m := newTestExplore(t, "B")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !m.view.State().Focus.IsRoot() {
		t.Error("r should reset to the root")
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplore(t, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestExploreNoTickWithoutAnimation(t *testing.T) {
	m := newTestExplore(t, "")
	m.View()
	_, cmd := m.Update(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd != nil {
		t.Error("instant transitions should not schedule ticks")
	}
}

func TestRasterizeSkipsFaded(t *testing.T) {
	root, err := hierarchy.Build(hierarchy.Group("All", hierarchy.Leaf("Arts", 1), hierarchy.Leaf("Sports", 1)))
	if err != nil {
		t.Fatal(err)
	}
	palette := styles.NewOrdinal(styles.TolPalette)
	sprites := []reconcile.Sprite{
		{Node: root.Children[0], Rect: layout.Block{Right: 10, Bottom: 2}, Opacity: 1},
		{Node: root.Children[1], Rect: layout.Block{Left: 10, Right: 20, Bottom: 2}, Opacity: 0.2},
	}

	out := rasterize(sprites, palette, 20, 2)
	if !strings.Contains(out, "Arts") {
		t.Error("opaque sprite should be labeled")
	}
	if strings.Contains(out, "Sports") {
		t.Error("faded sprite should be skipped")
	}
}

func TestTruncateAndClamp(t *testing.T) {
	if got := truncate("Politics", 4); got != "Pol…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Politics", 0); got != "" {
		t.Errorf("truncate(0) = %q", got)
	}
	if got := clampCell(-3, 10); got != 0 {
		t.Errorf("clampCell(-3) = %d", got)
	}
	if got := clampCell(12.6, 10); got != 10 {
		t.Errorf("clampCell(12.6) = %d", got)
	}
}

func TestExploreSingleTickLoop(t *testing.T) {
	raw, err := source.Decode([]byte(testDataset))
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := view.New(view.Config{Duration: time.Second, Title: "Test"},
		view.WithClock(view.ClockFunc(func() time.Time { return now })))
	if err := v.Load(raw); err != nil {
		t.Fatal(err)
	}
	m := newExploreModel(v, "")
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m.View()

	_, cmd := m.Update(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd == nil || !m.ticking {
		t.Fatal("animated drill-in should start the tick loop")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if focusName(m) != "All" {
		t.Fatalf("focus = %q, want All", focusName(m))
	}
	if cmd != nil {
		t.Error("a transition during a running loop should not start another")
	}

	_, cmd = m.Update(tickMsg(now))
	if cmd == nil || !m.ticking {
		t.Error("tick should reschedule while animating")
	}

	now = now.Add(2 * time.Second)
	_, cmd = m.Update(tickMsg(now))
	if cmd != nil || m.ticking {
		t.Error("tick loop should stop once the animation settles")
	}
}
