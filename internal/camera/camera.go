// Package camera tracks the pan offset and zoom factor that map screen
// pixels onto the board's scene coordinates.
package camera

import (
	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/geometry"
)

const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 1.1
)

type Direction int

const (
	ZoomIn Direction = iota
	ZoomOut
)

// WheelEvent is a scroll gesture. Zoom is set when the platform zoom
// modifier (ctrl or a pinch) accompanies the scroll.
type WheelEvent struct {
	Screen vec.Vec2 `json:"screen"`
	Delta  vec.Vec2 `json:"delta"`
	Zoom   bool     `json:"zoom"`
}

// Camera is the screen-space pan offset plus a zoom factor. The zero value
// is not usable; call New.
type Camera struct {
	Offset vec.Vec2 `json:"offset"`
	Zoom   float64  `json:"zoom"`
}

func New() *Camera {
	return &Camera{Zoom: 1}
}

// Pan moves the camera by delta screen pixels. The board is unbounded.
func (c *Camera) Pan(delta vec.Vec2) {
	c.Offset = c.Offset.Add(delta)
}

// ZoomAt changes the zoom by one step and moves the offset so the scene
// point under screen stays under it.
func (c *Camera) ZoomAt(screen vec.Vec2, dir Direction) {
	next := c.Zoom * ZoomStep
	if dir == ZoomOut {
		next = c.Zoom / ZoomStep
	}
	next = clamp(next, MinZoom, MaxZoom)
	if next == c.Zoom {
		return
	}

	// newOffset = screen - (screen - oldOffset) * (newZoom / oldZoom)
	c.Offset = screen.Sub(screen.Sub(c.Offset).Mul(next / c.Zoom))
	c.Zoom = next
}

// Wheel applies a scroll gesture: zoom around the cursor when the zoom
// modifier is held, otherwise pan by delta/zoom so that pan speed looks
// the same at every zoom level.
func (c *Camera) Wheel(ev WheelEvent) {
	if ev.Zoom {
		if ev.Delta.Y == 0 {
			return
		}
		dir := ZoomIn
		if ev.Delta.Y > 0 {
			dir = ZoomOut
		}
		c.ZoomAt(ev.Screen, dir)
		return
	}
	c.Pan(ev.Delta.Mul(-1 / c.Zoom))
}

func (c *Camera) ToScene(screen vec.Vec2) vec.Vec2 {
	return geometry.ToSceneCoordinates(screen, c.Offset, c.Zoom)
}

func (c *Camera) ToScreen(scene vec.Vec2) vec.Vec2 {
	return geometry.ToScreenCoordinates(scene, c.Offset, c.Zoom)
}

// Reset returns to the origin at 100%.
func (c *Camera) Reset() {
	c.Offset = vec.Vec2{}
	c.Zoom = 1
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
