package sink

import (
	"math"

	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/graph"
)

const (
	colorText      = "#1f2937"
	colorSubtle    = "#6b7280"
	colorEdge      = "#94a3b8"
	colorBackdrop0 = "#faf5ff"
	colorBackdrop1 = "#eff6ff"
	colorPanel     = "#ffffff"
	colorNotFound  = "#dc2626"

	fontFamily = "ui-sans-serif, system-ui, sans-serif"
	fontSize   = 13.0
	charWidth  = 7.0 // approximate advance at fontSize
	labelPad   = 24.0

	margin       = 40.0
	headerHeight = 56.0
	legendWidth  = 170.0
	legendRow    = 20.0

	emptyWidth  = 640.0
	emptyHeight = 200.0
)

// nodeWidth widens the node box to fit its label.
func nodeWidth(n graph.Node) float64 {
	w := float64(len([]rune(n.Label)))*charWidth + labelPad
	return math.Max(w, math.Max(n.Style.MinWidth, graph.NodeMinWidth))
}

// frame is the diagram area in output coordinates.
type frame struct {
	width, height float64
	// offset translates diagram coordinates into the frame.
	offsetX, offsetY float64
}

func computeFrame(g graph.Graph, withLegend bool) frame {
	if g.IsEmpty() {
		return frame{width: emptyWidth, height: emptyHeight}
	}
	var maxX, maxY float64
	for _, n := range g.Nodes {
		maxX = math.Max(maxX, n.Position.X+nodeWidth(n))
		maxY = math.Max(maxY, n.Position.Y+graph.NodeHeight)
	}
	f := frame{
		width:   maxX + 2*margin,
		height:  maxY + 2*margin + headerHeight,
		offsetX: margin,
		offsetY: margin + headerHeight,
	}
	if withLegend {
		f.width += legendWidth
		f.height = math.Max(f.height, headerHeight+legendHeight()+2*margin)
	}
	return f
}

func legendHeight() float64 {
	return 28 + float64(len(category.All))*legendRow
}

func positions(g graph.Graph) map[string]graph.Node {
	m := make(map[string]graph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.ID] = n
	}
	return m
}
