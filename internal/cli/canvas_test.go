package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/tree"
	"github.com/matzehuels/descendants/pkg/view"
)

func smallGraph() graph.Graph {
	return graph.Build(tree.New("Adam",
		tree.New("Cain", tree.New("Enoch")),
		tree.New("Seth", tree.New("Enosh")),
	))
}

func TestDrawDiagram(t *testing.T) {
	g := smallGraph()
	cam := view.Camera{Zoom: 1}
	c := drawDiagram(g, cam, 80, 24, "", "")

	out := c.String()
	for _, name := range []string{"Adam", "Cain", "Seth", "Enoch", "Enosh"} {
		if !strings.Contains(out, name) {
			t.Errorf("diagram missing %q:\n%s", name, out)
		}
	}
	for _, r := range []string{"─", "│", "╮", "╰"} {
		if !strings.Contains(out, r) {
			t.Errorf("diagram missing edge rune %q", r)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 24 {
		t.Errorf("lines = %d, want 24", lines)
	}
}

func TestCanvasHit(t *testing.T) {
	g := smallGraph()
	cam := view.Camera{Zoom: 1}
	c := drawDiagram(g, cam, 80, 24, "", "")

	for _, n := range g.Nodes {
		x, y := cellOf(n, cam)
		if id, ok := c.hit(x, y); !ok || id != n.ID {
			t.Errorf("hit(%d, %d) = %q, %v, want %q", x, y, id, ok, n.ID)
		}
		last := x + boxWidth(n, cam.Zoom) - 1
		if id, ok := c.hit(last, y); !ok || id != n.ID {
			t.Errorf("hit(%d, %d) = %q, %v, want %q", last, y, id, ok, n.ID)
		}
	}
	if id, ok := c.hit(79, 23); ok {
		t.Errorf("hit on empty cell = %q", id)
	}
}

func TestDrawDiagramClipsOffscreen(t *testing.T) {
	g := smallGraph()
	cam := view.Camera{X: -10000, Y: -10000, Zoom: 1}
	c := drawDiagram(g, cam, 40, 10, "", "")
	if len(c.spans) != 0 {
		t.Errorf("spans = %d, want 0 for an off-screen graph", len(c.spans))
	}
	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("off-screen diagram drew something:\n%s", c.String())
	}
}

func TestDrawDiagramEmpty(t *testing.T) {
	c := drawDiagram(graph.Graph{}, view.Camera{Zoom: 1}, 10, 2, "", "")
	if got := c.String(); got != strings.Repeat(" ", 10)+"\n"+strings.Repeat(" ", 10) {
		t.Errorf("String() = %q", got)
	}
}

func TestBoxWidth(t *testing.T) {
	n := graph.Node{Label: "Jacob (Israel)", Style: graph.Style{MinWidth: graph.NodeMinWidth}}
	tests := []struct {
		zoom float64
		want int
	}{
		{1, 16},   // label plus padding beats 12 cells
		{2, 24},   // box grows with zoom
		{0.25, 3}, // labels no longer forced
		{0.01, 1},
	}
	for _, tt := range tests {
		if got := boxWidth(n, tt.zoom); got != tt.want {
			t.Errorf("boxWidth(zoom=%v) = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		label string
		w     int
		want  string
	}{
		{"Adam", 8, " Adam   "},
		{"Methuselah", 6, " Met… "},
		{"Adam", 2, "■■"},
		{"Adam", 3, " … "},
	}
	for _, tt := range tests {
		if got := string(nodeLabel(tt.label, tt.w)); got != tt.want {
			t.Errorf("nodeLabel(%q, %d) = %q, want %q", tt.label, tt.w, got, tt.want)
		}
	}
}
