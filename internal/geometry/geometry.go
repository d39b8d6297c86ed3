// Package geometry holds the pure functions the interaction engine is built
// on: coordinate mapping, freehand stroke bounds, rectangle overlap and
// handle-driven resizing.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/document"
)

var ErrInsufficientSamples = errors.New("at least two samples are required")

// ToSceneCoordinates maps a screen (client) point into scene space.
// The screen point is rounded to whole pixels first.
func ToSceneCoordinates(screen, camera vec.Vec2, zoom float64) vec.Vec2 {
	return vec.Vec2{
		X: (math.Round(screen.X) - camera.X) / zoom,
		Y: (math.Round(screen.Y) - camera.Y) / zoom,
	}
}

// ToScreenCoordinates is the inverse of ToSceneCoordinates, without rounding.
func ToScreenCoordinates(scene, camera vec.Vec2, zoom float64) vec.Vec2 {
	return scene.Mul(zoom).Add(camera)
}

// ComputeColor returns the CSS form of c. Absent or zero-valued colors are
// "transparent"; opaque colors are #rrggbb, translucent ones #rrggbbaa.
func ComputeColor(c *document.Color) string {
	if c.Clear() {
		return "transparent"
	}
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// PathBox is the extent of a freehand stroke together with its samples
// translated to be relative to the box's top-left corner.
type PathBox struct {
	document.XYWH
	Points [][3]float64
}

// BoundingBoxFromSamples computes the extent of (x, y, pressure) samples.
func BoundingBoxFromSamples(samples [][3]float64) (PathBox, error) {
	if len(samples) < 2 {
		return PathBox{}, ErrInsufficientSamples
	}

	minX, minY := samples[0][0], samples[0][1]
	maxX, maxY := minX, minY
	for _, s := range samples[1:] {
		minX = min(minX, s[0])
		minY = min(minY, s[1])
		maxX = max(maxX, s[0])
		maxY = max(maxY, s[1])
	}

	points := make([][3]float64, len(samples))
	for i, s := range samples {
		points[i] = [3]float64{s[0] - minX, s[1] - minY, s[2]}
	}

	return PathBox{
		XYWH:   document.XYWH{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY},
		Points: points,
	}, nil
}

// RectIntersects reports whether a and b share interior area. Boxes that
// only touch along an edge or at a corner do not intersect.
func RectIntersects(a, b document.XYWH) bool {
	return a.X < b.X+b.Width &&
		b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height &&
		b.Y < a.Y+a.Height
}

// RectFromPoints returns the box spanned by two opposite corners.
func RectFromPoints(a, b vec.Vec2) document.XYWH {
	return document.XYWH{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Contains checks if a point is inside the box, edges included.
func Contains(r document.XYWH, p vec.Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Union returns the smallest box containing all boxes. Degenerate boxes
// still contribute their position. Union of nothing is the zero box.
func Union(boxes ...document.XYWH) document.XYWH {
	if len(boxes) == 0 {
		return document.XYWH{}
	}
	minX, minY := boxes[0].X, boxes[0].Y
	maxX, maxY := boxes[0].X+boxes[0].Width, boxes[0].Y+boxes[0].Height
	for _, b := range boxes[1:] {
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X+b.Width)
		maxY = max(maxY, b.Y+b.Height)
	}
	return document.XYWH{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the center point of the box.
func Center(r document.XYWH) vec.Vec2 {
	return vec.Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
