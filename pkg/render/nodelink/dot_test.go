package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/treezoom/pkg/hierarchy"
)

func sample(t *testing.T) *hierarchy.Node {
	t.Helper()
	root, err := hierarchy.Build(hierarchy.Group("All",
		hierarchy.Leaf("A", 30),
		hierarchy.Group("B", hierarchy.Leaf("B1", 1000), hierarchy.Leaf("B2", 60)),
	))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return root
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"All" -> "All/B";`,
		`"All/B" -> "All/B/B1";`,
		`"All/A" [label="A"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	dot := ToDOT(sample(t), Options{MaxDepth: 1})

	if strings.Contains(dot, "B1") {
		t.Errorf("MaxDepth 1 should omit grandchildren:\n%s", dot)
	}
	if !strings.Contains(dot, `"All/B"`) {
		t.Error("MaxDepth 1 should keep children")
	}
}

func TestToDOTSubtree(t *testing.T) {
	root := sample(t)
	b, _ := root.Find("B")

	dot := ToDOT(b, Options{})

	if strings.Contains(dot, `"All" ->`) || strings.Contains(dot, `"All/A"`) {
		t.Errorf("subtree DOT should not reach outside B:\n%s", dot)
	}
	if !strings.Contains(dot, `"All/B" -> "All/B/B2";`) {
		t.Errorf("subtree DOT missing child edge:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(t), Options{Detailed: true, Unit: "stories"})

	if !strings.Contains(dot, `label="B1\n1,000 stories"`) {
		t.Errorf("detailed label missing formatted value:\n%s", dot)
	}
}

func TestSectionColorsMatch(t *testing.T) {
	dot := ToDOT(sample(t), Options{})
	var b, b1 string
	for _, line := range strings.Split(dot, "\n") {
		switch {
		case strings.HasPrefix(line, `  "All/B" [`):
			b = line[strings.Index(line, "fillcolor"):]
		case strings.HasPrefix(line, `  "All/B/B1" [`):
			b1 = line[strings.Index(line, "fillcolor"):]
		}
	}
	if b == "" || b != b1 {
		t.Errorf("child should share its section color: %q vs %q", b, b1)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sample(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("SVG root not normalized: %.200s", svg)
	}
}
