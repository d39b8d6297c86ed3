package camera

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	c := New()
	cursor := vec.Vec2{X: 400, Y: 300}
	before := c.ToScene(cursor)

	c.ZoomAt(cursor, ZoomIn)

	if !near(c.Zoom, 1.1) {
		t.Errorf("Zoom = %v, want 1.1", c.Zoom)
	}
	if !near(c.Offset.X, -40) || !near(c.Offset.Y, -30) {
		t.Errorf("Offset = %v, want (-40, -30)", c.Offset)
	}
	back := c.ToScreen(before)
	if !near(back.X, cursor.X) || !near(back.Y, cursor.Y) {
		t.Errorf("scene point reprojects to %v, want %v", back, cursor)
	}
}

func TestZoomAtRoundTrip(t *testing.T) {
	c := New()
	c.Offset = vec.Vec2{X: 12, Y: -7}
	cursor := vec.Vec2{X: 250, Y: 80}
	c.ZoomAt(cursor, ZoomIn)
	c.ZoomAt(cursor, ZoomOut)
	if !near(c.Zoom, 1) || !near(c.Offset.X, 12) || !near(c.Offset.Y, -7) {
		t.Errorf("after in+out: zoom %v offset %v", c.Zoom, c.Offset)
	}
}

func TestZoomClamped(t *testing.T) {
	c := New()
	for i := 0; i < 50; i++ {
		c.ZoomAt(vec.Vec2{X: 100, Y: 100}, ZoomIn)
	}
	if c.Zoom > MaxZoom {
		t.Errorf("Zoom = %v exceeds max", c.Zoom)
	}
	if !near(c.Zoom, MaxZoom) {
		t.Errorf("Zoom = %v, want clamped to %v", c.Zoom, MaxZoom)
	}
	for i := 0; i < 50; i++ {
		c.ZoomAt(vec.Vec2{X: 100, Y: 100}, ZoomOut)
	}
	if !near(c.Zoom, MinZoom) {
		t.Errorf("Zoom = %v, want clamped to %v", c.Zoom, MinZoom)
	}
}

func TestZoomAtLimitLeavesOffset(t *testing.T) {
	c := New()
	c.Zoom = MaxZoom
	c.Offset = vec.Vec2{X: 3, Y: 4}
	c.ZoomAt(vec.Vec2{X: 500, Y: 500}, ZoomIn)
	if c.Offset != (vec.Vec2{X: 3, Y: 4}) {
		t.Errorf("Offset moved to %v at max zoom", c.Offset)
	}
}

func TestPan(t *testing.T) {
	c := New()
	c.Pan(vec.Vec2{X: 10, Y: -5})
	c.Pan(vec.Vec2{X: 1e6, Y: 1e6})
	if c.Offset != (vec.Vec2{X: 1e6 + 10, Y: 1e6 - 5}) {
		t.Errorf("Offset = %v", c.Offset)
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		name       string
		zoom       float64
		ev         WheelEvent
		wantZoom   float64
		wantOffset vec.Vec2
	}{
		{
			name:       "pan at 100%",
			zoom:       1,
			ev:         WheelEvent{Delta: vec.Vec2{X: 10, Y: 20}},
			wantZoom:   1,
			wantOffset: vec.Vec2{X: -10, Y: -20},
		},
		{
			name:       "pan at 200% is halved",
			zoom:       2,
			ev:         WheelEvent{Delta: vec.Vec2{X: 10, Y: 20}},
			wantZoom:   2,
			wantOffset: vec.Vec2{X: -5, Y: -10},
		},
		{
			name:       "ctrl scroll up zooms in",
			zoom:       1,
			ev:         WheelEvent{Screen: vec.Vec2{X: 400, Y: 300}, Delta: vec.Vec2{Y: -3}, Zoom: true},
			wantZoom:   1.1,
			wantOffset: vec.Vec2{X: -40, Y: -30},
		},
		{
			name:       "ctrl scroll down zooms out",
			zoom:       1,
			ev:         WheelEvent{Delta: vec.Vec2{Y: 3}, Zoom: true},
			wantZoom:   1 / 1.1,
			wantOffset: vec.Vec2{},
		},
		{
			name:     "ctrl horizontal scroll ignored",
			zoom:     1,
			ev:       WheelEvent{Delta: vec.Vec2{X: 3}, Zoom: true},
			wantZoom: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Zoom = tt.zoom
			c.Wheel(tt.ev)
			if !near(c.Zoom, tt.wantZoom) {
				t.Errorf("Zoom = %v, want %v", c.Zoom, tt.wantZoom)
			}
			if !near(c.Offset.X, tt.wantOffset.X) || !near(c.Offset.Y, tt.wantOffset.Y) {
				t.Errorf("Offset = %v, want %v", c.Offset, tt.wantOffset)
			}
		})
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
