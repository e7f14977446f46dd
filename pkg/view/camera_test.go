package view

import (
	"math"
	"testing"

	"github.com/matzehuels/descendants/pkg/graph"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCenterOn(t *testing.T) {
	bounds := graph.Rect{X: 250, Y: 80, W: 120, H: 36}
	vp := Size{W: 800, H: 600}

	tests := []struct {
		name     string
		zoom     float64
		wantZoom float64
	}{
		{"Focus", 1, 1},
		{"ZoomedIn", 1.5, 1.5},
		{"ClampHigh", 10, MaxZoom},
		{"ClampLow", 0.01, MinZoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CenterOn(bounds, vp, tt.zoom)
			if c.Zoom != tt.wantZoom {
				t.Errorf("Zoom = %v, want %v", c.Zoom, tt.wantZoom)
			}
			sx, sy := c.ToScreen(bounds.Center())
			if !approx(sx, 400) || !approx(sy, 300) {
				t.Errorf("node centre maps to (%v, %v), want (400, 300)", sx, sy)
			}
		})
	}
}

func TestFitBounds(t *testing.T) {
	bounds := graph.Rect{X: 0, Y: 0, W: 1000, H: 500}
	c := FitBounds(bounds, Size{W: 500, H: 500}, DefaultFitPadding)
	if !approx(c.Zoom, 0.35) {
		t.Errorf("Zoom = %v, want 0.35", c.Zoom)
	}
	x0, _ := c.ToScreen(0, 0)
	x1, _ := c.ToScreen(1000, 0)
	if !approx(x0, 75) || !approx(x1, 425) {
		t.Errorf("horizontal extent = [%v, %v], want [75, 425]", x0, x1)
	}

	if got := FitBounds(graph.Rect{}, Size{W: 10, H: 10}, 0.1); got != (Camera{Zoom: 1}) {
		t.Errorf("empty bounds = %+v", got)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	c := Camera{X: 10, Y: 20, Zoom: 1}
	dx, dy := c.ToDiagram(100, 100)

	z := c.ZoomAt(1.5, 100, 100)
	sx, sy := z.ToScreen(dx, dy)
	if !approx(sx, 100) || !approx(sy, 100) || z.Zoom != 1.5 {
		t.Errorf("anchor moved to (%v, %v) at zoom %v", sx, sy, z.Zoom)
	}

	if got := c.ZoomAt(100, 0, 0).Zoom; got != MaxZoom {
		t.Errorf("zoom not clamped: %v", got)
	}
}

func TestPan(t *testing.T) {
	c := Camera{Zoom: 1}.Pan(5, -3)
	if c.X != 5 || c.Y != -3 {
		t.Errorf("Pan = %+v", c)
	}
}

func TestCameraString(t *testing.T) {
	if got := (Camera{X: -10, Y: 2.5, Zoom: 1}).String(); got != "-10.00,2.50@1.000" {
		t.Errorf("String() = %q", got)
	}
}
