package view

import (
	"fmt"

	"github.com/matzehuels/descendants/pkg/graph"
)

const (
	MinZoom = 0.1
	MaxZoom = 2.0

	// DefaultFocusZoom is the zoom used when centring on a matched node.
	DefaultFocusZoom = 1.0

	// DefaultFitPadding is the fraction of the viewport left empty around the
	// diagram by [FitBounds].
	DefaultFitPadding = 0.15
)

// Size is a viewport size in screen units.
type Size struct {
	W, H float64
}

// Camera maps diagram coordinates to screen coordinates:
//
//	screen = diagram*Zoom + (X, Y)
type Camera struct {
	X, Y float64
	Zoom float64
}

// String formats the camera as "x,y@zoom".
func (c Camera) String() string {
	return fmt.Sprintf("%.2f,%.2f@%.3f", c.X, c.Y, c.Zoom)
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return min(max(z, MinZoom), MaxZoom)
}

// CenterOn returns a camera that puts the centre of bounds in the middle of
// the viewport at the given zoom, clamped.
func CenterOn(bounds graph.Rect, viewport Size, zoom float64) Camera {
	zoom = ClampZoom(zoom)
	cx, cy := bounds.Center()
	return Camera{
		X:    viewport.W/2 - cx*zoom,
		Y:    viewport.H/2 - cy*zoom,
		Zoom: zoom,
	}
}

// FitBounds returns a camera that shows all of bounds, leaving padding (a
// fraction of the viewport) around it. Empty bounds or viewports give an
// identity camera.
func FitBounds(bounds graph.Rect, viewport Size, padding float64) Camera {
	if bounds.W <= 0 || bounds.H <= 0 || viewport.W <= 0 || viewport.H <= 0 {
		return Camera{Zoom: 1}
	}
	usable := 1 - 2*padding
	if usable <= 0 {
		usable = 1
	}
	zoom := min(viewport.W*usable/bounds.W, viewport.H*usable/bounds.H)
	return CenterOn(bounds, viewport, zoom)
}

// ToScreen converts a diagram point to screen coordinates.
func (c Camera) ToScreen(x, y float64) (float64, float64) {
	return x*c.Zoom + c.X, y*c.Zoom + c.Y
}

// ToDiagram converts a screen point to diagram coordinates.
func (c Camera) ToDiagram(x, y float64) (float64, float64) {
	return (x - c.X) / c.Zoom, (y - c.Y) / c.Zoom
}

// Pan moves the camera by a screen-space offset.
func (c Camera) Pan(dx, dy float64) Camera {
	c.X += dx
	c.Y += dy
	return c
}

// ZoomAt scales by factor around the screen point (ax, ay), which stays fixed.
func (c Camera) ZoomAt(factor, ax, ay float64) Camera {
	z := ClampZoom(c.Zoom * factor)
	dx, dy := c.ToDiagram(ax, ay)
	return Camera{X: ax - dx*z, Y: ay - dy*z, Zoom: z}
}
