package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/view"
)

// A terminal cell covers cellW × cellH diagram units at zoom 1.
const (
	cellW = 10.0
	cellH = 20.0
)

// Cell styles. Category styles follow, one per category.Category value.
const (
	paintPlain = iota
	paintEdge
	paintSelected
	paintCursor
	paintCategory
)

var canvasPalette = func() []lipgloss.Style {
	p := []lipgloss.Style{
		paintPlain:    lipgloss.NewStyle(),
		paintEdge:     lipgloss.NewStyle().Foreground(colorDim),
		paintSelected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorViolet),
		paintCursor:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("0")).Background(colorWhite),
	}
	for _, c := range category.All {
		idx := paintCategory + int(c)
		for len(p) <= idx {
			p = append(p, lipgloss.NewStyle())
		}
		p[idx] = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(c.Color()))
	}
	return p
}()

// nodeSpan records where a node was drawn, for mouse hit-testing.
type nodeSpan struct {
	id     string
	line   int
	x0, x1 int // inclusive
}

// canvas is a character grid the diagram is drawn on.
type canvas struct {
	w, h  int
	runes [][]rune
	paint [][]int
	spans []nodeSpan
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.runes = make([][]rune, c.h)
	c.paint = make([][]int, c.h)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", c.w))
		c.paint[y] = make([]int, c.w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, paint int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.paint[y][x] = paint
}

// hline draws from x0 to x1 inclusive, clipped to the canvas.
func (c *canvas) hline(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := max(x0, 0); x <= min(x1, c.w-1); x++ {
		c.set(x, y, '─', paintEdge)
	}
}

func (c *canvas) vline(x, y0, y1 int) {
	for y := max(y0, 0); y <= min(y1, c.h-1); y++ {
		c.set(x, y, '│', paintEdge)
	}
}

// hit returns the node drawn at (x, y).
func (c *canvas) hit(x, y int) (string, bool) {
	// Later spans were drawn on top.
	for i := len(c.spans) - 1; i >= 0; i-- {
		s := c.spans[i]
		if s.line == y && x >= s.x0 && x <= s.x1 {
			return s.id, true
		}
	}
	return "", false
}

// String renders the grid with styles, one line per row.
func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.runes {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.paint[y][x] == c.paint[y][start] {
				continue
			}
			run := string(c.runes[y][start:x])
			if p := c.paint[y][start]; p == paintPlain {
				b.WriteString(run)
			} else {
				b.WriteString(canvasPalette[p].Render(run))
			}
			start = x
		}
	}
	return b.String()
}

// cellOf returns the cell holding the vertical centre of n's left edge.
func cellOf(n graph.Node, cam view.Camera) (x, y int) {
	sx, sy := cam.ToScreen(n.Position.X, n.Position.Y+graph.NodeHeight/2)
	return int(math.Round(sx / cellW)), int(math.Round(sy / cellH))
}

// boxWidth is n's drawn width in cells. Labels get room to show in full
// once the diagram is zoomed in far enough to read them.
func boxWidth(n graph.Node, zoom float64) int {
	w := int(math.Round(n.Style.MinWidth * zoom / cellW))
	if zoom >= 0.5 {
		w = max(w, len([]rune(n.Label))+2)
	}
	return max(w, 1)
}

// drawDiagram draws g as seen through cam. selected and cursor are node ids
// to highlight; either may be empty.
func drawDiagram(g graph.Graph, cam view.Camera, w, h int, selected, cursor string) *canvas {
	c := newCanvas(w, h)
	type placed struct {
		x, y, w int
	}
	at := make(map[string]placed, len(g.Nodes))
	for _, n := range g.Nodes {
		x, y := cellOf(n, cam)
		at[n.ID] = placed{x, y, boxWidth(n, cam.Zoom)}
	}

	for _, e := range g.Edges {
		p, ok1 := at[e.Source]
		ch, ok2 := at[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		x1, y1 := p.x+p.w, p.y
		x2, y2 := ch.x-1, ch.y
		if y1 == y2 {
			c.hline(x1, x2, y1)
			continue
		}
		mid := (x1 + x2) / 2
		c.hline(x1, mid-1, y1)
		c.vline(mid, min(y1, y2)+1, max(y1, y2)-1)
		c.hline(mid+1, x2, y2)
		if y2 > y1 {
			c.set(mid, y1, '╮', paintEdge)
			c.set(mid, y2, '╰', paintEdge)
		} else {
			c.set(mid, y1, '╯', paintEdge)
			c.set(mid, y2, '╭', paintEdge)
		}
	}

	for _, n := range g.Nodes {
		pl := at[n.ID]
		if pl.y < 0 || pl.y >= c.h || pl.x+pl.w < 0 || pl.x >= c.w {
			continue
		}
		paint := paintCategory + int(n.Category)
		switch n.ID {
		case selected:
			paint = paintSelected
		case cursor:
			paint = paintCursor
		}
		label := nodeLabel(n.Label, pl.w)
		for i, r := range label {
			c.set(pl.x+i, pl.y, r, paint)
		}
		c.spans = append(c.spans, nodeSpan{id: n.ID, line: pl.y, x0: pl.x, x1: pl.x + pl.w - 1})
	}
	return c
}

// nodeLabel fits label into w cells with a space of padding each side.
func nodeLabel(label string, w int) []rune {
	if w < 3 {
		return []rune(strings.Repeat("■", w))
	}
	rs := []rune(label)
	if len(rs) > w-2 {
		rs = append(rs[:w-3], '…')
	}
	out := []rune(" " + string(rs))
	for len(out) < w {
		out = append(out, ' ')
	}
	return out
}
